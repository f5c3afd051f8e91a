package motion

import (
	"strconv"
	"strings"

	"github.com/npillmayer/pentype/core/option"
	"golang.org/x/image/math/f64"
)

// Op is the type of a motion command.
type Op uint8

const (
	OpNone      Op = iota // blank line
	OpMove                // G0
	OpLine                // G1
	OpArc                 // G2 (clockwise) or G3
	OpCurve               // G5
	OpPenUp               // G0 Z0
	OpPenDown             // G0 Z9
	OpPageBreak           // M7
	OpComment             // # …
)

var opNames = [...]string{"none", "move", "line", "arc", "curve", "penup", "pendown",
	"pagebreak", "comment"}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[int(op)]
	}
	return "Op(?)"
}

// IsPositional is true for commands which carry an end point.
func (op Op) IsPositional() bool {
	return op == OpMove || op == OpLine || op == OpArc || op == OpCurve
}

// IsDrawing is true for commands which put ink on paper (given the pen is down).
func (op Op) IsDrawing() bool {
	return op == OpLine || op == OpArc || op == OpCurve
}

// Command is a single motion command.
//
// X and Y are the end point. Moves and lines may leave one of them unset,
// arcs and curves always set both. Center, C1 and C2 are offsets, i.e.
// direction vectors: Center is relative to the start of an arc, C1 relative
// to the start of a curve and C2 relative to its end.
type Command struct {
	Op        Op
	X, Y      option.Float64T
	Center    f64.Vec2 // arcs
	C1, C2    f64.Vec2 // curves
	Clockwise bool     // arcs
	Feed      option.Float64T
	Text      string // comments
}

// Pen commands and page breaks never carry values.
var (
	penUp     = Command{Op: OpPenUp, X: option.Float64(), Y: option.Float64(), Feed: option.Float64()}
	penDown   = Command{Op: OpPenDown, X: option.Float64(), Y: option.Float64(), Feed: option.Float64()}
	pageBreak = Command{Op: OpPageBreak, X: option.Float64(), Y: option.Float64(), Feed: option.Float64()}
)

func MoveTo(x, y float64) Command {
	return Command{Op: OpMove, X: option.SomeFloat64(x), Y: option.SomeFloat64(y), Feed: option.Float64()}
}

// MoveToX moves horizontally, keeping the current Y.
func MoveToX(x float64) Command {
	return Command{Op: OpMove, X: option.SomeFloat64(x), Y: option.Float64(), Feed: option.Float64()}
}

// MoveToY moves vertically, keeping the current X.
func MoveToY(y float64) Command {
	return Command{Op: OpMove, X: option.Float64(), Y: option.SomeFloat64(y), Feed: option.Float64()}
}

func LineTo(x, y float64) Command {
	return Command{Op: OpLine, X: option.SomeFloat64(x), Y: option.SomeFloat64(y), Feed: option.Float64()}
}

// ArcTo draws a circular arc to (x,y) around the centre at offset center
// from the current position.
func ArcTo(x, y float64, center f64.Vec2, clockwise bool) Command {
	return Command{
		Op: OpArc,
		X:  option.SomeFloat64(x), Y: option.SomeFloat64(y),
		Center:    center,
		Clockwise: clockwise,
		Feed:      option.Float64(),
	}
}

// CurveTo draws a cubic Bézier curve to (x,y). Control point c1 is relative
// to the current position, c2 relative to (x,y).
func CurveTo(x, y float64, c1, c2 f64.Vec2) Command {
	return Command{
		Op: OpCurve,
		X:  option.SomeFloat64(x), Y: option.SomeFloat64(y),
		C1: c1, C2: c2,
		Feed: option.Float64(),
	}
}

func PenUp() Command     { return penUp }
func PenDown() Command   { return penDown }
func PageBreak() Command { return pageBreak }

func Comment(text string) Command {
	return Command{Op: OpComment, X: option.Float64(), Y: option.Float64(), Feed: option.Float64(), Text: text}
}

func blank() Command {
	return Command{Op: OpNone, X: option.Float64(), Y: option.Float64(), Feed: option.Float64()}
}

// End returns the end point of a positional command, starting from the
// current position from. Unset coordinates are taken from from.
func (c Command) End(from f64.Vec2) f64.Vec2 {
	if !c.Op.IsPositional() {
		return from
	}
	return f64.Vec2{c.X.UnwrapOr(from[0]), c.Y.UnwrapOr(from[1])}
}

// String returns the G-code line for c.
func (c Command) String() string {
	var b strings.Builder
	switch c.Op {
	case OpNone:
		return ""
	case OpComment:
		if c.Text == "" {
			return "#"
		}
		return "# " + c.Text
	case OpPenUp:
		return "G0 Z0"
	case OpPenDown:
		return "G0 Z9"
	case OpPageBreak:
		return "M7"
	case OpMove:
		b.WriteString("G0")
		writeOptWord(&b, 'X', c.X)
		writeOptWord(&b, 'Y', c.Y)
	case OpLine:
		b.WriteString("G1")
		writeOptWord(&b, 'X', c.X)
		writeOptWord(&b, 'Y', c.Y)
		writeOptWord(&b, 'F', c.Feed)
	case OpArc:
		if c.Clockwise {
			b.WriteString("G2")
		} else {
			b.WriteString("G3")
		}
		writeOptWord(&b, 'X', c.X)
		writeOptWord(&b, 'Y', c.Y)
		writeWord(&b, 'I', c.Center[0])
		writeWord(&b, 'J', c.Center[1])
		writeOptWord(&b, 'F', c.Feed)
	case OpCurve:
		b.WriteString("G5")
		writeWord(&b, 'I', c.C1[0])
		writeWord(&b, 'J', c.C1[1])
		writeWord(&b, 'P', c.C2[0])
		writeWord(&b, 'Q', c.C2[1])
		writeOptWord(&b, 'X', c.X)
		writeOptWord(&b, 'Y', c.Y)
		writeOptWord(&b, 'F', c.Feed)
	default:
		return "# ?"
	}
	return b.String()
}

func writeOptWord(b *strings.Builder, letter byte, v option.Float64T) {
	if !v.IsNone() {
		writeWord(b, letter, v.Unwrap())
	}
}

func writeWord(b *strings.Builder, letter byte, v float64) {
	b.WriteByte(' ')
	b.WriteByte(letter)
	b.WriteString(formatNumber(v))
}

// formatNumber uses the shortest representation which parses back to v.
func formatNumber(v float64) string {
	if v == 0 {
		return "0" // no negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
