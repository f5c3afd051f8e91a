package motion

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/npillmayer/pentype/core"
	"github.com/npillmayer/pentype/core/affine"
	"github.com/npillmayer/pentype/core/dimen"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/f64"
)

func TestParseSerialize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pentype.motion")
	defer teardown()
	//
	text := strings.Join([]string{
		"G0 X1 Y2",
		"G0 Z9",
		"G1 X4.5 Y-7 F1500",
		"G2 X3 Y0 I1 J0",
		"G3 X1 Y1 I0 J1",
		"G5 I1 J0 P0 Q1 X3 Y3",
		"G0 Y0.25",
		"M7",
		"# a comment",
		"",
		"G0 Z0",
	}, "\n")
	prog, err := ParseString(text)
	require.NoError(t, err)
	require.Len(t, prog, 11)
	assert.Equal(t, OpMove, prog[0].Op)
	assert.Equal(t, OpPenDown, prog[1].Op)
	assert.Equal(t, 1500.0, prog[2].Feed.Unwrap())
	assert.True(t, prog[3].Clockwise)
	assert.False(t, prog[4].Clockwise)
	assert.Equal(t, f64.Vec2{0, 1}, prog[5].C2)
	assert.True(t, prog[6].X.IsNone())
	assert.Equal(t, OpPageBreak, prog[7].Op)
	assert.Equal(t, "a comment", prog[8].Text)
	assert.Equal(t, OpNone, prog[9].Op)
	assert.Equal(t, text, prog.String())
	//
	var buf bytes.Buffer
	_, err = prog.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, text+"\n", buf.String())
}

func TestParseVariants(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pentype.motion")
	defer teardown()
	//
	prog, err := ParseString("  g01 x1 y2 \nPENUP\npendown\nM07")
	require.NoError(t, err)
	assert.Equal(t, "G1 X1 Y2\nG0 Z0\nG0 Z9\nM7", prog.String())
}

func TestParseMalformed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pentype.motion")
	defer teardown()
	//
	for _, line := range []string{
		"G1", "G7 X1", "G1 X1 Z3", "G2 X1 Y1 I1", "G0 X1 Z0", "Q17",
		"G1 Xfoo", "M7 X1", "G1 X1 X2", "G5 X1 Y1 I0 J0 P0", "G1 XNaN", "G", "G1 X",
	} {
		_, err := ParseCommand(line)
		assert.Error(t, err, line)
		assert.True(t, errors.Is(err, core.ErrMalformedCommand), line)
	}
	_, err := ParseString("G0 X1\nbogus")
	require.Error(t, err)
	assert.Equal(t, core.EMALFORMED, core.Code(err))
	assert.Contains(t, core.UserMessage(err), "line 2")
}

func TestCanonicalizeCarriesMoves(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pentype.motion")
	defer teardown()
	//
	prog := MustParse("G0 X1 Y2\nG0 X3\nG0 Y1\nG1 X4 Y7")
	canon := prog.Canonicalize()
	assert.Equal(t, "G0 X3 Y1\nG1 X4 Y7", canon.Pure().String())
	assert.True(t, canon.Equal(Program{MoveTo(3, 1), LineTo(4, 7)}))
	assert.Equal(t, "G0 X1 Y2 cleaned", canon[0].Text)
	assert.Len(t, canon, 4, "dropped commands are kept as comments")
	assert.Equal(t, "G0 X1 Y2\nG0 X3\nG0 Y1\nG1 X4 Y7", prog.String(), "receiver unchanged")
}

func TestCoalesceMoves(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pentype.motion")
	defer teardown()
	//
	cases := []struct{ in, out string }{
		{"G0 X1 Y2\nG0 X3\nG0 X5", "G0 X5 Y2"},
		{"G0 X1\n# note\n\nG0 Y3", "G0 X1 Y3"},
		{"G0 X1 Y2\nG0 Z9\nG0 X5", "G0 X1 Y2\nG0 Z9\nG0 X5"},
		{"G0 X1 Y2\nG1 X2 Y2\nG0 X5", "G0 X1 Y2\nG1 X2 Y2\nG0 X5"},
		{"G0 X1 Y2\nG0 Y3\nG1 X2\nG0 X4\nG0 Y1", "G0 X1 Y3\nG1 X2\nG0 X4 Y1"},
		{"G0 X7", "G0 X7"},
	}
	for _, c := range cases {
		assert.Equal(t, c.out, coalesceMoves(MustParse(c.in)).Pure().String(), c.in)
	}
}

func TestCanonicalizePens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pentype.motion")
	defer teardown()
	//
	prog := MustParse("G0 Z0\nG0 Z0\nG0 X1 Y1\nG0 Z9\nG1 X2 Y2\nG0 Z9\nG1 X3 Y3\nG0 Z0")
	canon := prog.Canonicalize()
	assert.Equal(t, "G0 Z0\nG0 X1 Y1\nG0 Z9\nG1 X2 Y2\nG1 X3 Y3\nG0 Z0", canon.Pure().String())
	down, known := canon.PenState()
	assert.True(t, known)
	assert.False(t, down)
}

func TestCanonicalizeRemovedPenJoinsMoves(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pentype.motion")
	defer teardown()
	//
	// the second pen-up is redundant, so the two moves around it form a run
	prog := MustParse("G0 Z0\nG0 X1 Y-10\nG0 Z0\nG0 X0 Y100\nM7")
	assert.Equal(t, "G0 Z0\nG0 X0 Y100\nM7", prog.Canonicalize().Pure().String())
}

func TestCanonicalizeIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pentype.motion")
	defer teardown()
	//
	prog := MustParse(`G0 Z0
G0 X1
G0 Y2
G0 Z9
G0 Z9
G1 X3 Y3
G0 Z0
G0 X5
# move on
G0 Y6
G0 Z0
G0 Z9
G5 I1 J0 P-1 Q0 X8 Y6`)
	once := prog.Canonicalize()
	twice := once.Canonicalize()
	assert.Equal(t, once.String(), twice.String())
	assert.True(t, once.Equal(twice))
}

func TestEqualityIgnoresComments(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pentype.motion")
	defer teardown()
	//
	text := "G0 Z0\nG0 X1 Y2\nG0 Z9\nG1 X4 Y7"
	a := MustParse(text).Canonicalize()
	b := MustParse(text + "\n# note").Canonicalize()
	assert.True(t, a.Equal(b))
	assert.True(t, MustParse("G1 X1000 Y1").Equal(MustParse("G1 X1000.0001 Y1.0000001")))
	assert.False(t, MustParse("G1 X1 Y1").Equal(MustParse("G1 X1.001 Y1")))
	assert.False(t, MustParse("G1 X1 Y1").Equal(MustParse("G1 X1")))
	assert.False(t, MustParse("G1 X1 Y1").Equal(MustParse("G1 X1 Y1\nG1 X2 Y2")))
	assert.False(t, MustParse("G2 X1 Y1 I1 J0").Equal(MustParse("G3 X1 Y1 I1 J0")))
}

func TestTranslate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pentype.motion")
	defer teardown()
	//
	prog := Program{MoveTo(3, 1), LineTo(4, 7)}
	moved := prog.Translate(f64.Vec2{1, 2})
	assert.True(t, moved.Equal(Program{MoveTo(4, 3), LineTo(5, 9)}))
	//
	prog = MustParse("G0 X3\nG2 X1 Y1 I1 J0\nG5 I1 J0 P0 Q1 X3 Y3")
	moved = prog.Translate(f64.Vec2{1, 2})
	assert.Equal(t, "G0 X4\nG2 X2 Y3 I1 J0\nG5 I1 J0 P0 Q1 X4 Y5", moved.String())
}

func TestRotate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pentype.motion")
	defer teardown()
	//
	prog := MustParse("G0 X1 Y0\nG1 Y1\nG5 I1 J0 P0 Q1 X3 Y3")
	rot := prog.Rotate(math.Pi / 2)
	expected := Program{
		MoveTo(0, 1),
		LineTo(-1, 1),
		CurveTo(-3, 3, f64.Vec2{0, 1}, f64.Vec2{-1, 0}),
	}
	assert.True(t, rot.Equal(expected), rot.String())
	back := rot.Rotate(-math.Pi / 2)
	assert.True(t, back.Equal(MustParse("G0 X1 Y0\nG1 X1 Y1\nG5 I1 J0 P0 Q1 X3 Y3")))
}

func TestMirrorFlipsArcs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pentype.motion")
	defer teardown()
	//
	prog := MustParse("G0 X1 Y0\nG2 X0 Y-1 I-1 J0")
	mirrored := prog.Mirror(AxisY)
	assert.Equal(t, "G0 X-1 Y0\nG3 X0 Y-1 I1 J0", mirrored.String())
	// mirroring commutes with flattening
	a := prog.Flatten(0.1).Mirror(AxisY)
	b := mirrored.Flatten(0.1)
	assert.True(t, a.Equal(b))
	assert.True(t, prog.Mirror(AxisX).Mirror(AxisX).Equal(prog))
}

func TestScale(t *testing.T) {
	prog := MustParse("G0 X1\nG3 X2 Y2 I1 J0\nG5 I1 J0 P0 Q1 X3 Y3")
	assert.Equal(t, "G0 X2\nG3 X4 Y4 I2 J0\nG5 I2 J0 P0 Q2 X6 Y6", prog.Scale(2).String())
	assert.True(t, prog.Scale(4).Scale(0.25).Equal(prog))
}

func TestFlattenArc(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pentype.motion")
	defer teardown()
	//
	prog := MustParse("G0 X1 Y0\nG3 X0 Y1 I-1 J0 F900")
	flat := prog.Flatten(0.1)
	require.Len(t, flat, 1+15) // arc length π/2 → 15 segments
	flat.Walk(func(i int, from f64.Vec2, c Command, to f64.Vec2) {
		if i == 0 {
			return
		}
		assert.Equal(t, OpLine, c.Op)
		assert.InDelta(t, 1.0, affine.Length(to), 1e-9, "point on circle")
		assert.LessOrEqual(t, affine.Dist(from, to), 0.11)
		assert.Equal(t, 900.0, c.Feed.Unwrap())
	})
	last := flat[len(flat)-1]
	assert.Equal(t, 0.0, last.X.Unwrap())
	assert.Equal(t, 1.0, last.Y.Unwrap())
}

func TestFlattenFullCircle(t *testing.T) {
	prog := MustParse("G0 X1 Y0\nG2 X1 Y0 I-1 J0")
	flat := prog.Flatten(0.5)
	assert.Len(t, flat, 1+12) // 2π / 0.5 → 12 segments
	b := prog.Bounds(0.01)
	assert.InDelta(t, -1.0, float64(b.Min.X), 1e-3)
	assert.InDelta(t, -1.0, float64(b.Min.Y), 1e-3)
}

func TestFlattenCurve(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pentype.motion")
	defer teardown()
	//
	prog := MustParse("G0 X0 Y0\nG5 I1 J0 P-1 Q0 X3 Y0")
	flat := prog.Flatten(0.5)
	assert.GreaterOrEqual(t, len(flat), 1+6)
	flat.Walk(func(i int, from f64.Vec2, c Command, to f64.Vec2) {
		assert.InDelta(t, 0.0, to[1], 1e-12)
		assert.LessOrEqual(t, affine.Dist(from, to), 0.5+1e-9)
	})
	assert.Equal(t, f64.Vec2{3, 0}, flat.LastPosition())
	//
	// a curve with a degenerate start tangent still terminates
	prog = MustParse("G0 X0 Y0\nG5 I0 J0 P0 Q0 X1 Y1")
	flat = prog.Flatten(0.05)
	assert.Equal(t, f64.Vec2{1, 1}, flat.LastPosition())
	for _, c := range flat[1:] {
		assert.Equal(t, OpLine, c.Op)
	}
}

func TestFlattenKeepsFeed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pentype.motion")
	defer teardown()
	//
	prog := MustParse("G0 X0 Y0\nG5 I1 J0 P-1 Q0 X3 Y0 F700")
	flat := prog.Flatten(0.5)
	for _, c := range flat[1:] {
		require.Equal(t, OpLine, c.Op)
		assert.Equal(t, 700.0, c.Feed.Unwrap())
	}
	//
	same := prog.Flatten(0)
	assert.True(t, prog.Equal(same), "non-positive segment length keeps the program")
	assert.Equal(t, OpCurve, same[1].Op)
	same[1] = PenUp()
	assert.Equal(t, OpCurve, prog[1].Op, "receiver is not shared")
	assert.NotPanics(t, func() { prog.Flatten(-1) })
}

func TestArcGeometry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pentype.motion")
	defer teardown()
	//
	cases := []struct {
		from    f64.Vec2
		cmd     string
		maxX    float64
		heading float64
	}{
		{f64.Vec2{1, 0}, "G3 X0 Y1 I-1 J0", 1, math.Pi},
		{f64.Vec2{0, 1}, "G2 X1 Y0 I0 J-1", 1, -math.Pi / 2},
		{f64.Vec2{0, 1}, "G3 X-1 Y0 I0 J-1", 0, -math.Pi / 2},
		{f64.Vec2{0, -1}, "G3 X0 Y1 I0 J1", 1, math.Pi},
		{f64.Vec2{0, -1}, "G2 X0 Y1 I0 J1", 0, 0},
	}
	for _, c := range cases {
		cmd, err := ParseCommand(c.cmd)
		require.NoError(t, err)
		arc := ArcOf(c.from, cmd)
		assert.InDelta(t, c.maxX, arc.MaxX(), 1e-12, c.cmd)
		assert.InDelta(t, c.heading, arc.EndHeading(), 1e-12, c.cmd)
	}
}

func TestBezierGeometry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pentype.motion")
	defer teardown()
	//
	cmd, err := ParseCommand("G5 I2 J1 P2 Q1 X0 Y2")
	require.NoError(t, err)
	b := BezierOf(f64.Vec2{0, 0}, cmd)
	// x(t) = 6t(1-t), maximal at t=1/2
	assert.InDelta(t, 1.5, b.MaxX(), 1e-6)
	assert.InDelta(t, affine.Angle(f64.Vec2{-2, -1}), b.EndHeading(), 1e-12)
	//
	cmd, _ = ParseCommand("G5 I1 J0 P0 Q0 X2 Y1")
	b = BezierOf(f64.Vec2{0, 0}, cmd)
	assert.InDelta(t, math.Atan2(1, 1), b.EndHeading(), 1e-12, "degenerate c2 falls back to c1")
}

func TestLimitsAndPages(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pentype.motion")
	defer teardown()
	//
	page := dimen.Page(dimen.DINA4)
	assert.NoError(t, MustParse("G0 X1 Y1\nG1 X200 Y290").CheckLimits(page))
	err := MustParse("G0 X1 Y1\nG1 X300 Y5").CheckLimits(page)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrCoordinateOutOfBounds))
	err = MustParse("G0 Y-0.5").CheckLimits(page)
	assert.Equal(t, core.EOUTOFBOUNDS, core.Code(err))
	//
	pages := MustParse("G0 X1 Y1\nM7\nG0 X2 Y2\nM7").SplitPages()
	require.Len(t, pages, 3)
	assert.Equal(t, "G0 X1 Y1", pages[0].String())
	assert.Equal(t, "G0 X2 Y2", pages[1].String())
	assert.Empty(t, pages[2])
}

func TestFeedRate(t *testing.T) {
	prog := MustParse("G1 X1 Y1\nG1 X2 Y2 F100\nG0 X0 Y0\nG2 X1 Y1 I1 J0\nG5 I1 J0 P-1 Q0 X3 Y1")
	assert.Equal(t, "G1 X1 Y1 F1500\nG1 X2 Y2 F100\nG0 X0 Y0\nG2 X1 Y1 I1 J0 F1500\nG5 I1 J0 P-1 Q0 X3 Y1 F1500",
		prog.AddFeedRate(1500).String())
}

func TestWalk(t *testing.T) {
	prog := MustParse("G0 X1 Y2\nG0 Z9\nG1 X5\n# here\nG1 Y7")
	assert.Equal(t, f64.Vec2{5, 7}, prog.LastPosition())
	down, known := prog.PenState()
	assert.True(t, down)
	assert.True(t, known)
	_, known = MustParse("G0 X1").PenState()
	assert.False(t, known)
	assert.Len(t, prog.Pure(), 4)
	assert.Len(t, prog.Append(PenUp(), PageBreak()), 7)
	assert.Len(t, prog, 5)
}
