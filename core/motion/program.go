package motion

import (
	"bufio"
	"io"
	"math"
	"strings"

	"github.com/npillmayer/pentype/core/option"
	"golang.org/x/image/math/f64"
)

// Program is a motion program, i.e. an ordered sequence of commands.
type Program []Command

// Clone returns a copy of p which does not share storage with p.
func (p Program) Clone() Program {
	if p == nil {
		return nil
	}
	c := make(Program, len(p))
	copy(c, p)
	return c
}

// Append returns a new program consisting of p followed by other.
func (p Program) Append(other ...Command) Program {
	c := make(Program, 0, len(p)+len(other))
	c = append(c, p...)
	return append(c, other...)
}

// String returns the text form of p, one command per line.
func (p Program) String() string {
	var b strings.Builder
	for i, c := range p {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(c.String())
	}
	return b.String()
}

// WriteTo writes the text form of p to w, each command terminated by a
// newline.
func (p Program) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, c := range p {
		k, err := bw.WriteString(c.String() + "\n")
		n += int64(k)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// Pure returns p without comments and blank lines.
func (p Program) Pure() Program {
	c := make(Program, 0, len(p))
	for _, cmd := range p {
		if cmd.Op != OpComment && cmd.Op != OpNone {
			c = append(c, cmd)
		}
	}
	return c
}

// Walk calls f for every command of p, together with the position of the
// tool before and after the command. The tool starts at the origin.
func (p Program) Walk(f func(i int, from f64.Vec2, c Command, to f64.Vec2)) {
	var pos f64.Vec2
	for i, c := range p {
		to := c.End(pos)
		f(i, pos, c, to)
		pos = to
	}
}

// LastPosition returns the position of the tool after executing p.
func (p Program) LastPosition() f64.Vec2 {
	var pos f64.Vec2
	for _, c := range p {
		pos = c.End(pos)
	}
	return pos
}

// PenState returns the pen state after executing p. If p contains no pen
// commands, known is false.
func (p Program) PenState() (down bool, known bool) {
	for i := len(p) - 1; i >= 0; i-- {
		switch p[i].Op {
		case OpPenUp:
			return false, true
		case OpPenDown:
			return true, true
		}
	}
	return false, false
}

// Equal compares two programs, ignoring comments and blank lines. Coordinates
// are compared with a tolerance relative to their magnitude.
func (p Program) Equal(other Program) bool {
	a, b := p.Pure(), other.Pure()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Tolerance is the relative tolerance for comparing coordinates.
const Tolerance = 1e-6

// Equal compares two commands. Comments are equal regardless of their text.
func (c Command) Equal(other Command) bool {
	if c.Op != other.Op {
		return false
	}
	switch c.Op {
	case OpArc:
		if c.Clockwise != other.Clockwise || !vecClose(c.Center, other.Center) {
			return false
		}
	case OpCurve:
		if !vecClose(c.C1, other.C1) || !vecClose(c.C2, other.C2) {
			return false
		}
	}
	return optClose(c.X, other.X) && optClose(c.Y, other.Y) && optClose(c.Feed, other.Feed)
}

func optClose(a, b option.Float64T) bool {
	if a.IsNone() || b.IsNone() {
		return a.IsNone() && b.IsNone()
	}
	return near(a.Unwrap(), b.Unwrap())
}

func vecClose(a, b f64.Vec2) bool {
	return near(a[0], b[0]) && near(a[1], b[1])
}

func near(a, b float64) bool {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= Tolerance*scale
}
