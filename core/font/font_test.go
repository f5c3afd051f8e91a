package font

import (
	"bytes"
	"errors"
	"math"
	"os"
	"testing"

	"github.com/npillmayer/pentype/core"
	"github.com/npillmayer/pentype/core/motion"
	"github.com/npillmayer/pentype/core/option"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/f64"
)

func glyphOf(t *testing.T, text string) *Glyph {
	prog, err := motion.ParseString(text)
	require.NoError(t, err)
	return NewGlyph(prog, option.Float64())
}

func TestGlyphMeasureLines(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pentype.font")
	defer teardown()
	//
	g := glyphOf(t, "G0 Z9\nG1 X3 Y0\nG0 Z0\nG0 X4 Y1")
	assert.InDelta(t, 4.0, g.Width(), 1e-9)
	assert.Equal(t, f64.Vec2{4, 1}, g.ExitPosition())
	assert.True(t, g.ExitHeading().IsNone(), "glyph ending in a line has no exit heading")
	start, ok := g.StartPosition()
	assert.True(t, ok)
	assert.Equal(t, f64.Vec2{0, 0}, start)
}

func TestGlyphMeasureArcs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pentype.font")
	defer teardown()
	//
	circle := glyphOf(t, "G0 Z9\nG2 X0 Y0 I1 J0")
	assert.InDelta(t, 2.0, circle.Width(), 1e-9)
	require.False(t, circle.ExitHeading().IsNone())
	assert.InDelta(t, math.Pi/2, circle.ExitHeading().Unwrap(), 1e-9)
	//
	half := glyphOf(t, "G0 X0 Y1\nG0 Z9\nG2 X0 Y-1 I0 J-1")
	assert.InDelta(t, 1.0, half.Width(), 1e-9, "rightmost point is inside the arc")
	assert.InDelta(t, math.Pi, math.Abs(half.ExitHeading().Unwrap()), 1e-9)
}

func TestGlyphMeasureCurve(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pentype.font")
	defer teardown()
	//
	g := glyphOf(t, "G0 Z9\nG5 I2 J1 P2 Q1 X0 Y2")
	assert.InDelta(t, 1.5, g.Width(), 1e-6)
	assert.InDelta(t, math.Atan2(-1, -2), g.ExitHeading().Unwrap(), 1e-9)
	t.Logf("glyph = %s", g)
}

func TestGlyphExplicitWidth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pentype.font")
	defer teardown()
	//
	prog := motion.MustParse("G0 Z9\nG1 X3 Y0")
	g := NewGlyph(prog, option.SomeFloat64(5))
	assert.Equal(t, 5.0, g.Width())
}

func TestGlyphResizeReciprocal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pentype.font")
	defer teardown()
	//
	g := glyphOf(t, "G0 X1 Y0\nG0 Z9\nG3 X3 Y0 I1 J0\nG5 I1 J1 P0 Q2 X4 Y4\nG1 X4\nG0 Z0")
	orig := g.Program()
	w := g.Width()
	for _, f := range []float64{2, 0.3, 7.25} {
		r := g.Resized(f)
		assert.InDelta(t, w*f, r.Width(), 1e-9)
		r.Resize(1 / f)
		assert.InDelta(t, w, r.Width(), 1e-9)
		assert.True(t, orig.Equal(r.Program()), "resize by %g and back", f)
	}
	assert.True(t, orig.Equal(g.Program()), "Resized must not modify the glyph")
}

func TestGlyphConnect(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pentype.font")
	defer teardown()
	//
	g := glyphOf(t, "G5 I1 J0 P-1 Q0 X3 Y3\nG1 X3 Y0")
	prog, err := g.Connect(f64.Vec2{0, 0}, 0)
	require.NoError(t, err)
	require.Len(t, prog, 2)
	c := prog[0]
	assert.Equal(t, motion.OpCurve, c.Op)
	assert.Equal(t, f64.Vec2{3, 3}, c.End(f64.Vec2{}))
	b := motion.BezierOf(f64.Vec2{}, c)
	orig := motion.BezierOf(f64.Vec2{}, g.Program()[0])
	assert.InDelta(t, orig.EndHeading(), b.EndHeading(), 1e-12)
	leg := DefaultCurvature * math.Sqrt(18)
	assert.InDelta(t, leg, c.C1[0], 1e-9)
	assert.InDelta(t, 0, c.C1[1], 1e-9)
	assert.True(t, prog[1].Equal(motion.LineTo(3, 0)))
}

func TestGlyphConnectFromElsewhere(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pentype.font")
	defer teardown()
	//
	g := glyphOf(t, "G0 Z9\nG5 I1 J0 P-1 Q0 X3 Y3\nG1 X3 Y0")
	prog, err := g.ConnectWithCurvature(f64.Vec2{-2, 0}, math.Pi/4, 0.5)
	require.NoError(t, err)
	require.Len(t, prog, 2, "moves and pen commands before the first curve are dropped")
	leg := 0.5 * math.Sqrt(25+9)
	assert.InDelta(t, leg*math.Cos(math.Pi/4), prog[0].C1[0], 1e-9)
	assert.InDelta(t, leg*math.Sin(math.Pi/4), prog[0].C1[1], 1e-9)
	assert.InDelta(t, -leg, prog[0].C2[0], 1e-9)
}

func TestGlyphConnectUnsupported(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pentype.font")
	defer teardown()
	//
	g := glyphOf(t, "G0 Z9\nG1 X3 Y0\nG5 I1 J0 P-1 Q0 X3 Y3")
	_, err := g.Connect(f64.Vec2{}, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrUnsupportedGlyphShape))
	assert.Equal(t, core.EGLYPHSHAPE, core.Code(err))
	//
	empty := glyphOf(t, "G0 X1 Y1")
	_, err = empty.Connect(f64.Vec2{}, 0)
	assert.True(t, errors.Is(err, core.ErrUnsupportedGlyphShape))
}

func testAlphabet(t *testing.T) *Alphabet {
	a := NewAlphabet()
	a.Add("a", glyphOf(t, "G0 X1 Y2\nG0 Z9\nG2 X1 Y2 I0 J-1\nG0 Z0"))
	a.Add("b", glyphOf(t, "G0 Z9\nG1 X0 Y4\nG0 Z0\nG0 X0 Y1\nG0 Z9\nG3 X0 Y1 I1 J0\nG0 Z0"))
	a.Add("-", glyphOf(t, "G0 X0 Y1\nG0 Z9\nG1 X2 Y1 F300\nG0 Z0"))
	a.Add("e", glyphOf(t, "G5 I1 J0 P-1 Q0 X3 Y3\nG1 X3 Y0\n# exit"))
	return a
}

func TestAlphabet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pentype.font")
	defer teardown()
	//
	a := testAlphabet(t)
	assert.Equal(t, 4, a.Len())
	assert.Equal(t, []string{"-", "a", "b", "e"}, a.Characters())
	g, err := a.Glyph("a")
	require.NoError(t, err)
	assert.InDelta(t, 2.0, g.Width(), 1e-9)
	_, err = a.Glyph("z")
	assert.True(t, errors.Is(err, core.ErrUnknownGlyph))
	assert.Equal(t, core.EUNKNOWNGLYPH, core.Code(err))
	//
	err = a.Require("a", "x", "-", "y")
	require.Error(t, err)
	assert.Contains(t, core.UserMessage(err), "x y")
	assert.NoError(t, a.Require("a", "b"))
}

func TestAlphabetResize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pentype.font")
	defer teardown()
	//
	a := testAlphabet(t)
	b := a.Resized(2)
	ga, _ := a.Glyph("b")
	gb, _ := b.Glyph("b")
	assert.InDelta(t, 2*ga.Width(), gb.Width(), 1e-9)
	assert.InDelta(t, 4.0, a.Height(0.1), 1e-9)
	assert.InDelta(t, 8.0, b.Height(0.1), 1e-9)
	b.Resize(0.5)
	gb, _ = b.Glyph("b")
	assert.True(t, ga.Program().Equal(gb.Program()))
}

func TestSaveLoadStrings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pentype.font")
	defer teardown()
	//
	a := testAlphabet(t)
	var buf bytes.Buffer
	require.NoError(t, a.SaveStrings(&buf))
	b, err := LoadStrings(&buf, Require("a", "b"))
	require.NoError(t, err)
	assertSameAlphabet(t, a, b)
}

func TestSaveLoadJSON(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pentype.font")
	defer teardown()
	//
	a := testAlphabet(t)
	a.Add("w", NewGlyph(motion.MustParse("G0 Z9\nG1 X1 Y0"), option.SomeFloat64(3)))
	var buf bytes.Buffer
	require.NoError(t, a.SaveJSON(&buf))
	b, err := LoadJSON(&buf)
	require.NoError(t, err)
	assertSameAlphabet(t, a, b)
	w, _ := b.Glyph("w")
	assert.Equal(t, 3.0, w.Width(), "explicit widths survive")
}

func TestSaveLoadCBOR(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pentype.font")
	defer teardown()
	//
	a := testAlphabet(t)
	var buf1, buf2 bytes.Buffer
	require.NoError(t, a.SaveCBOR(&buf1))
	require.NoError(t, a.Clone().SaveCBOR(&buf2))
	assert.Equal(t, buf1.Bytes(), buf2.Bytes(), "encoding is deterministic")
	b, err := LoadCBOR(&buf1, Scaled(2))
	require.NoError(t, err)
	assertSameAlphabet(t, a.Resized(2), b)
}

func TestLoadErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pentype.font")
	defer teardown()
	//
	_, err := LoadStrings(bytes.NewBufferString(`{"a": "G9 X1"}`))
	assert.Equal(t, core.EMALFORMED, core.Code(err))
	_, err = LoadStrings(bytes.NewBufferString(`{"a": `))
	assert.Equal(t, core.EINVALID, core.Code(err))
	_, err = LoadStrings(bytes.NewBufferString(`{"a": "G1 X1"}`), Require("b"))
	assert.Equal(t, core.EUNKNOWNGLYPH, core.Code(err))
	_, err = LoadJSON(bytes.NewBufferString(`[{"char":"a","commands":[{"op":"curve","x":1,"y":1}]}]`))
	assert.Equal(t, core.EMALFORMED, core.Code(err))
	_, err = LoadJSON(bytes.NewBufferString(`[{"char":"a","glyph":[]}]`))
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestLoadTestdata(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pentype.font")
	defer teardown()
	//
	f, err := os.Open("testdata/strokes.json")
	require.NoError(t, err)
	defer f.Close()
	a, err := LoadStrings(f, Require("a", "b", "c", "-", "."))
	require.NoError(t, err)
	a.Each(func(ch string, g *Glyph) {
		assert.Greater(t, g.Width(), 0.0, "glyph %q", ch)
	})
	c, _ := a.Glyph("c")
	_, err = c.Connect(f64.Vec2{-1, 0}, 0)
	assert.NoError(t, err, "cursive glyphs start with a curve")
}

func assertSameAlphabet(t *testing.T, a, b *Alphabet) {
	t.Helper()
	require.Equal(t, a.Characters(), b.Characters())
	a.Each(func(ch string, ga *Glyph) {
		gb, err := b.Glyph(ch)
		require.NoError(t, err)
		assert.InDelta(t, ga.Width(), gb.Width(), 1e-9, "width of %q", ch)
		assert.True(t, ga.Program().Equal(gb.Program()), "program of %q", ch)
		assert.True(t, ga.ExitHeading().Equals(gb.ExitHeading()) ||
			math.Abs(ga.ExitHeading().Unwrap()-gb.ExitHeading().Unwrap()) < 1e-9)
	})
}

func TestCoverage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pentype.font")
	defer teardown()
	//
	a := testAlphabet(t)
	assert.NoError(t, a.Check("ab  ba\n-e"))
	err := a.Check("abc xyz c")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrUnknownGlyph))
	assert.Contains(t, core.UserMessage(err), "c x y z")
	assert.Equal(t, "ab-- e\n-", a.Sanitize("abcd e\nf", "-"))
	assert.Equal(t, "ab e", a.Sanitize("abcd e", ""))
}

func TestStrokes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pentype.font")
	defer teardown()
	//
	g := glyphOf(t, "G0 X1 Y2\nG0 Z9\nG1 X3 Y2\nG0 Z0\nG0 X1 Y1\nG0 Z9\nG1 X3")
	strokes := g.Strokes()
	require.Len(t, strokes, 5)
	assert.Equal(t, motion.OpLine, strokes[0].Op)
	start, _ := g.StartPosition()
	assert.Equal(t, f64.Vec2{1, 2}, start)
	assert.Len(t, glyphOf(t, "G0 X1 Y1").Strokes(), 0)
}
