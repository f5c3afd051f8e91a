package font

import (
	"fmt"
	"math"

	"github.com/npillmayer/pentype/core"
	"github.com/npillmayer/pentype/core/affine"
	"github.com/npillmayer/pentype/core/motion"
	"github.com/npillmayer/pentype/core/option"
	"golang.org/x/image/math/f64"
)

// DefaultCurvature is the relative length of the control legs of a
// connecting curve, see Glyph.Connect.
const DefaultCurvature = 0.3

// Glyph is the drawing of a single character.
//
// Its program starts at the glyph origin (0,0). Width, exit position and exit
// heading are derived from the program when the glyph is created and are
// kept consistent by every operation on the glyph.
type Glyph struct {
	program motion.Program
	width   float64
	exit    f64.Vec2
	heading option.Float64T
}

// NewGlyph creates a glyph from a motion program. If width is None, the
// width is measured from the program.
func NewGlyph(prog motion.Program, width option.Float64T) *Glyph {
	g := &Glyph{program: prog.Clone()}
	g.width = width.UnwrapOr(measureWidth(prog))
	g.exit = prog.LastPosition()
	g.heading = exitHeading(prog)
	return g
}

// Program returns the glyph's motion program.
func (g *Glyph) Program() motion.Program {
	return g.program.Clone()
}

// Width returns the horizontal extent of the glyph.
func (g *Glyph) Width() float64 {
	return g.width
}

// ExitPosition is the tool position after the glyph's program has run.
func (g *Glyph) ExitPosition() f64.Vec2 {
	return g.exit
}

// ExitHeading is the direction (in radians) in which the last arc or curve
// of the glyph ends. It is None if the glyph ends with a straight line or
// draws nothing.
func (g *Glyph) ExitHeading() option.Float64T {
	return g.heading
}

// StartPosition returns the position where drawing begins, i.e. the start
// of the glyph's first line, arc or curve. The second return value is false
// for glyphs which draw nothing.
func (g *Glyph) StartPosition() (f64.Vec2, bool) {
	start, found := f64.Vec2{}, false
	g.program.Walk(func(_ int, from f64.Vec2, c motion.Command, _ f64.Vec2) {
		if !found && c.Op.IsDrawing() {
			start, found = from, true
		}
	})
	return start, found
}

// Strokes returns the glyph's program from its first line, arc or curve on,
// dropping the moves and pen commands which position the tool before it.
func (g *Glyph) Strokes() motion.Program {
	first := len(g.program)
	g.program.Walk(func(i int, _ f64.Vec2, c motion.Command, _ f64.Vec2) {
		if i < first && c.Op.IsDrawing() {
			first = i
		}
	})
	return g.program[first:].Clone()
}

// Resize scales the glyph by factor, relative to its origin.
// Resizing by f and then by 1/f restores the glyph, up to rounding.
func (g *Glyph) Resize(factor float64) {
	g.program = g.program.Scale(factor)
	g.width *= factor
	g.exit = affine.Scale(g.exit, factor)
}

// Resized is like Resize, but returns a new glyph.
func (g *Glyph) Resized(factor float64) *Glyph {
	r := g.clone()
	r.Resize(factor)
	return r
}

func (g *Glyph) clone() *Glyph {
	c := *g
	c.program = g.program.Clone()
	return &c
}

// Connect returns a program joining the glyph to a preceding one in cursive
// writing, using DefaultCurvature.
func (g *Glyph) Connect(entry f64.Vec2, heading float64) (motion.Program, error) {
	return g.ConnectWithCurvature(entry, heading, DefaultCurvature)
}

// ConnectWithCurvature returns a program joining the glyph to a preceding
// one. entry is the exit position of the preceding glyph, relative to this
// glyph's origin, and heading is its exit heading.
//
// The glyph's first stroke must be a curve. It is replaced by a curve from
// entry to the same end point, leaving entry in direction heading and
// arriving with the original end heading. The result contains the new curve
// followed by the rest of the glyph. It does not lift the pen, it is meant to
// be drawn with the pen already down at entry.
func (g *Glyph) ConnectWithCurvature(entry f64.Vec2, heading, curvature float64) (motion.Program, error) {
	first, from := -1, f64.Vec2{}
	g.program.Walk(func(i int, f f64.Vec2, c motion.Command, _ f64.Vec2) {
		if first < 0 && c.Op.IsDrawing() {
			first, from = i, f
		}
	})
	if first < 0 {
		return nil, core.Error(core.EGLYPHSHAPE,
			"cannot connect to a glyph which draws nothing")
	}
	orig := g.program[first]
	if orig.Op != motion.OpCurve {
		return nil, core.Error(core.EGLYPHSHAPE,
			"cannot connect to a glyph starting with a %s", orig.Op)
	}
	end := orig.End(from)
	endHeading := motion.BezierOf(from, orig).EndHeading()
	leg := affine.Dist(entry, end) * curvature
	join := motion.CurveTo(end[0], end[1],
		affine.Polar(leg, heading),
		affine.Neg(affine.Polar(leg, endHeading)))
	join.Feed = orig.Feed
	tracer().Debugf("connect glyph at %v, heading %.3f", entry, heading)
	return append(motion.Program{join}, g.program[first+1:]...), nil
}

func (g *Glyph) String() string {
	h, _ := g.heading.Match(option.Maybe{
		option.None: "none",
		option.Some: func(v interface{}) (interface{}, error) {
			return fmt.Sprintf("%.3f", v.(option.Float64T).Unwrap()), nil
		},
	})
	return fmt.Sprintf("Glyph{width=%g, exit=(%g,%g), heading=%v, %d commands}",
		g.width, g.exit[0], g.exit[1], h, len(g.program))
}

// measureWidth is the maximum x-coordinate the tool reaches, including
// moves and the origin.
func measureWidth(prog motion.Program) float64 {
	w := 0.0
	prog.Walk(func(_ int, from f64.Vec2, c motion.Command, to f64.Vec2) {
		switch c.Op {
		case motion.OpArc:
			w = math.Max(w, motion.ArcOf(from, c).MaxX())
		case motion.OpCurve:
			w = math.Max(w, motion.BezierOf(from, c).MaxX())
		case motion.OpMove, motion.OpLine:
			w = math.Max(w, to[0])
		}
	})
	return w
}

func exitHeading(prog motion.Program) option.Float64T {
	h := option.Float64()
	prog.Walk(func(_ int, from f64.Vec2, c motion.Command, _ f64.Vec2) {
		switch c.Op {
		case motion.OpArc:
			h = option.SomeFloat64(motion.ArcOf(from, c).EndHeading())
		case motion.OpCurve:
			h = option.SomeFloat64(motion.BezierOf(from, c).EndHeading())
		case motion.OpLine:
			h = option.Float64()
		}
	})
	return h
}
