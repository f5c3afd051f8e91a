package layout

import (
	"io"
	"strings"

	"github.com/npillmayer/pentype/core"
	"github.com/npillmayer/pentype/core/affine"
	"github.com/npillmayer/pentype/core/font"
	"github.com/npillmayer/pentype/core/motion"
	params "github.com/npillmayer/pentype/core/parameters"
	"github.com/npillmayer/pentype/engine/khipu"
	"golang.org/x/image/math/f64"
)

// Engine lays out text with the glyphs of an alphabet.
//
// An engine owns its cursor and must not be used by more than one goroutine
// at a time. The alphabet is only read, so engines may share an alphabet.
type Engine struct {
	alphabet *font.Alphabet
	regs     *params.LayoutRegisters
	conf     config
	cursor   f64.Vec2       // insertion point of the next glyph
	atStart  bool           // nothing placed on the current line yet
	out      motion.Program // program under construction
	pages    int
}

// config is a snapshot of the layout registers, taken at the start of a
// layout run. All dimensions are in millimetres.
type config struct {
	pageWidth, pageHeight float64
	fontSize              float64
	lineSpacing           float64
	charSpacing           float64
	punctSpacing          float64
	spaceWidth            float64
	cursive               bool
	curvature             float64
	hyphen                string
	feedRate              float64
	flatten               float64
}

// New creates a layout engine. Glyphs of alphabet are used as they are, i.e.
// the alphabet has to be resized to the font size beforehand. If regs is nil,
// default layout parameters are used.
func New(alphabet *font.Alphabet, regs *params.LayoutRegisters) *Engine {
	if regs == nil {
		regs = params.NewLayoutRegisters()
	}
	return &Engine{alphabet: alphabet, regs: regs}
}

// Registers returns the layout registers of the engine. Changes to the
// registers take effect with the next layout run.
func (e *Engine) Registers() *params.LayoutRegisters {
	return e.regs
}

func (e *Engine) configure() {
	regs := e.regs
	e.conf = config{
		pageWidth:    regs.F(params.P_PAGEWIDTH),
		pageHeight:   regs.F(params.P_PAGEHEIGHT),
		fontSize:     regs.F(params.P_FONTSIZE),
		lineSpacing:  regs.F(params.P_LINESPACING),
		charSpacing:  regs.F(params.P_CHARSPACING),
		punctSpacing: float64(regs.PunctSpacing()),
		spaceWidth:   float64(regs.SpaceWidth()),
		cursive:      regs.B(params.P_CURSIVE),
		curvature:    regs.F(params.P_CURVATURE),
		hyphen:       regs.S(params.P_HYPHENCHAR),
		feedRate:     regs.F(params.P_FEEDRATE),
		flatten:      regs.F(params.P_FLATTEN),
	}
}

// Layout produces a canonical motion program for text. Layout is atomic:
// if an error occurs, no program is returned.
//
// If the layout registers specify a flattening precision, curves and arcs
// are flattened to lines. A feed rate given in the registers is added to all
// drawing commands.
func (e *Engine) Layout(text string) (motion.Program, error) {
	return e.LayoutKhipu(khipu.EncodeString(text))
}

// LayoutReader is like Layout, but reads the text from r.
func (e *Engine) LayoutReader(r io.Reader) (motion.Program, error) {
	return e.LayoutKhipu(khipu.KnotEncode(r))
}

// LayoutPages lays out text and splits the result into pages.
func (e *Engine) LayoutPages(text string) ([]motion.Program, error) {
	prog, err := e.Layout(text)
	if err != nil {
		return nil, err
	}
	return prog.SplitPages(), nil
}

// Pages returns the number of pages of the last layout run.
func (e *Engine) Pages() int {
	return e.pages
}

// LayoutKhipu produces a canonical motion program from the knots of kh.
func (e *Engine) LayoutKhipu(kh *khipu.Khipu) (motion.Program, error) {
	e.configure()
	e.start()
	cursor := khipu.NewCursor(kh)
	for cursor.Next() {
		knot := cursor.Knot()
		switch knot.Type {
		case khipu.KTParBreak:
			e.newLine()
		case khipu.KTBlankLine:
			// a paragraph break already starts a new line; only an empty first
			// paragraph needs one of its own
			if cursor.Position() == 0 {
				e.newLine()
			}
		case khipu.KTSpace:
			e.space()
		case khipu.KTWord:
			if err := e.word(knot.Graphemes); err != nil {
				e.out = nil
				tracer().Errorf("layout failed: %v", err)
				return nil, err
			}
		}
	}
	e.space()
	prog := e.out.Canonicalize()
	e.out = nil
	if e.conf.flatten > 0 {
		prog = prog.Flatten(e.conf.flatten)
	}
	if e.conf.feedRate > 0 {
		prog = prog.AddFeedRate(e.conf.feedRate)
	}
	tracer().Infof("layout of %d knots: %d commands on %d page(s)", kh.Length(), len(prog), e.pages)
	return prog, nil
}

// --- Cursor movement -------------------------------------------------------

func (e *Engine) initialPosition() f64.Vec2 {
	return f64.Vec2{0, e.conf.pageHeight - e.conf.fontSize}
}

func (e *Engine) start() {
	e.cursor = e.initialPosition()
	e.atStart = true
	e.pages = 1
	e.out = motion.Program{
		motion.PenUp(),
		motion.MoveTo(e.cursor[0], e.cursor[1]),
	}
}

func (e *Engine) emit(cmds ...motion.Command) {
	e.out = append(e.out, cmds...)
}

func (e *Engine) moveTo(p f64.Vec2) {
	e.emit(motion.MoveTo(p[0], p[1]))
}

func (e *Engine) space() {
	e.cursor[0] += e.conf.spaceWidth
	e.atStart = false
	e.moveTo(e.cursor)
}

func (e *Engine) newLine() {
	e.cursor = f64.Vec2{0, e.cursor[1] - e.conf.lineSpacing - e.conf.fontSize}
	e.atStart = true
	e.emit(motion.PenUp())
	e.moveTo(e.cursor)
	if e.cursor[1] < 0 {
		e.newPage()
	}
}

func (e *Engine) newPage() {
	e.cursor = e.initialPosition()
	e.atStart = true
	e.pages++
	tracer().Debugf("starting page %d", e.pages)
	e.emit(motion.PenUp())
	e.moveTo(e.cursor)
	e.emit(motion.PageBreak())
}

// --- Words and glyphs ------------------------------------------------------

// placed remembers a glyph placed at an origin, for cursive joins.
type placed struct {
	char   string
	glyph  *font.Glyph
	origin f64.Vec2
}

func (e *Engine) word(graphemes []string) error {
	glyphs := make([]*font.Glyph, len(graphemes))
	required := 0.0
	for i, ch := range graphemes {
		g, err := e.alphabet.Glyph(ch)
		if err != nil {
			return err
		}
		glyphs[i] = g
		required += g.Width() + e.conf.charSpacing
	}
	if !e.atStart && e.conf.pageWidth-e.cursor[0] < required {
		tracer().Debugf("word %q does not fit, break line", strings.Join(graphemes, ""))
		e.newLine()
	}
	var prev *placed
	for i, ch := range graphemes {
		p, err := e.glyph(ch, glyphs[i], prev)
		if err != nil {
			return err
		}
		prev = p
	}
	if e.conf.cursive {
		e.emit(motion.PenUp())
	}
	return nil
}

func (e *Engine) glyph(ch string, g *font.Glyph, prev *placed) (*placed, error) {
	punct := IsPunctuation(ch)
	var next f64.Vec2
	if punct {
		e.cursor[0] += e.conf.punctSpacing - e.conf.charSpacing
		next = f64.Vec2{e.cursor[0] + g.Width() + e.conf.punctSpacing, e.cursor[1]}
		e.emit(motion.PenUp())
		e.moveTo(e.cursor)
	} else {
		next = f64.Vec2{e.cursor[0] + g.Width() + e.conf.charSpacing, e.cursor[1]}
	}
	split := false
	if !punct && !e.atStart && e.cursor[0]+g.Width()+e.hyphenWidth() > e.conf.pageWidth {
		e.hyphenate()
		e.newLine()
		next = f64.Vec2{e.cursor[0] + g.Width() + e.conf.charSpacing, e.cursor[1]}
		split = true
	}
	if e.joins(ch, prev, split) {
		entry := affine.Sub(affine.Add(prev.origin, prev.glyph.ExitPosition()), e.cursor)
		heading := prev.glyph.ExitHeading().Unwrap()
		join, err := g.ConnectWithCurvature(entry, heading, e.conf.curvature)
		if err != nil {
			return nil, core.WrapError(err, core.EGLYPHSHAPE,
				"cannot join %q to %q: %s", ch, prev.char, core.UserMessage(err))
		}
		e.emit(motion.PenDown())
		e.emit(join.Translate(e.cursor)...)
	} else {
		e.stroke(g, e.cursor)
	}
	if !e.conf.cursive || IsDisconnected(ch) {
		e.emit(motion.PenUp())
		e.moveTo(next)
	}
	p := &placed{char: ch, glyph: g, origin: e.cursor}
	e.cursor = next
	e.atStart = false
	return p, nil
}

// joins is true if ch is to be connected to its predecessor.
func (e *Engine) joins(ch string, prev *placed, split bool) bool {
	return e.conf.cursive && prev != nil && !split &&
		!IsDisconnected(prev.char) && !IsDisconnected(ch) &&
		!prev.glyph.ExitHeading().IsNone()
}

// stroke draws g as an independent stroke with its origin at p.
func (e *Engine) stroke(g *font.Glyph, p f64.Vec2) {
	e.emit(motion.PenUp())
	start, ok := g.StartPosition()
	if !ok {
		return
	}
	e.moveTo(affine.Add(p, start))
	e.emit(motion.PenDown())
	e.emit(g.Strokes().Translate(p)...)
}

func (e *Engine) hyphenWidth() float64 {
	if g, err := e.alphabet.Glyph(e.conf.hyphen); err == nil {
		return g.Width()
	}
	return 0
}

// hyphenate marks a word split at the cursor. The hyphen glyph is drawn if it
// fits onto the line, otherwise a horizontal stroke at the hyphen's height is
// drawn up to the end of the line.
func (e *Engine) hyphenate() {
	room := e.conf.pageWidth - e.cursor[0]
	height := e.conf.fontSize / 2
	g, err := e.alphabet.Glyph(e.conf.hyphen)
	if err == nil {
		if g.Width() < room {
			e.stroke(g, e.cursor)
			e.emit(motion.PenUp())
			return
		}
		if start, ok := g.StartPosition(); ok {
			height = start[1]
		}
	}
	if room <= 0 {
		return
	}
	tracer().Debugf("hyphen truncated to %.3f", room)
	y := e.cursor[1] + height
	e.emit(motion.PenUp(), motion.MoveTo(e.cursor[0], y), motion.PenDown(),
		motion.LineTo(e.cursor[0]+room, y), motion.PenUp())
}
