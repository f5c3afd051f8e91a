package preview

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/npillmayer/pentype/core"
	"github.com/npillmayer/pentype/core/dimen"
	"github.com/npillmayer/pentype/core/motion"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
)

// Option configures rendering.
type Option func(*options)

type options struct {
	ppmm      float64 // pixels per millimetre
	pen       float64 // stroke width in millimetres
	precision float64 // flattening precision in millimetres
	ink       color.Color
	paper     color.Color
}

// Resolution sets the number of pixels per millimetre. The default is 4.
func Resolution(ppmm float64) Option {
	return func(o *options) { o.ppmm = ppmm }
}

// PenWidth sets the stroke width in millimetres. The default is 0.5.
func PenWidth(mm float64) Option {
	return func(o *options) { o.pen = mm }
}

// Colors sets the colours of ink and paper.
func Colors(ink, paper color.Color) Option {
	return func(o *options) { o.ink, o.paper = ink, paper }
}

// Render draws a single page of a motion program onto a new image of the
// given page size. Page breaks end the rendering; use RenderPages for
// programs spanning several pages.
func Render(prog motion.Program, page dimen.Point, opts ...Option) *image.NRGBA {
	o := options{ppmm: 4, pen: 0.5, ink: color.Black, paper: color.White}
	for _, opt := range opts {
		opt(&o)
	}
	o.precision = 0.5 / o.ppmm
	w := int(float64(page.X)*o.ppmm + 0.5)
	h := int(float64(page.Y)*o.ppmm + 0.5)
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(o.paper), image.Point{}, draw.Src)
	r := newRasterizer(img, o)
	r.height = float64(page.Y)
	down := false
	prog.Flatten(o.precision).Walk(func(_ int, from f64.Vec2, c motion.Command, to f64.Vec2) {
		switch c.Op {
		case motion.OpPenDown:
			down = true
		case motion.OpPenUp:
			down = false
			r.lift()
		case motion.OpMove, motion.OpLine:
			if down {
				r.line(from, to)
			} else {
				r.lift()
			}
		}
	})
	r.rasterize()
	tracer().Debugf("rendered page of %dx%d pixels", w, h)
	return img
}

// RenderPages draws every page of a motion program onto its own image.
func RenderPages(prog motion.Program, page dimen.Point, opts ...Option) []*image.NRGBA {
	pages := prog.SplitPages()
	imgs := make([]*image.NRGBA, len(pages))
	for i, p := range pages {
		imgs[i] = Render(p, page, opts...)
	}
	return imgs
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot encode preview: %v", err)
	}
	return nil
}

// --- Rasterizer ------------------------------------------------------------

type rasterizer struct {
	dasher  *rasterx.Dasher
	scale   float64
	height  float64 // page height in millimetres, for flipping y
	started bool
}

func newRasterizer(img draw.Image, o options) *rasterizer {
	width, height := img.Bounds().Dx(), img.Bounds().Dy()
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	r := &rasterizer{
		dasher: rasterx.NewDasher(width, height, scanner),
		scale:  o.ppmm,
	}
	stroke := o.pen * o.ppmm * 64
	r.dasher.SetStroke(fixed.Int26_6(stroke), 0, rasterx.RoundCap, rasterx.RoundCap,
		rasterx.RoundGap, rasterx.ArcClip, nil, 0)
	r.dasher.SetColor(o.ink)
	return r
}

// point converts plotter coordinates to image coordinates.
func (r *rasterizer) point(p f64.Vec2) fixed.Point26_6 {
	return rasterx.ToFixedP(p[0]*r.scale, (r.height-p[1])*r.scale)
}

func (r *rasterizer) line(from, to f64.Vec2) {
	if !r.started {
		r.dasher.Start(r.point(from))
		r.started = true
	}
	r.dasher.Line(r.point(to))
}

func (r *rasterizer) lift() {
	if r.started {
		r.dasher.Stop(false)
		r.started = false
	}
}

func (r *rasterizer) rasterize() {
	r.lift()
	r.dasher.Draw()
}
