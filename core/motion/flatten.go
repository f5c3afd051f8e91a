package motion

import (
	"github.com/npillmayer/pentype/core/affine"
	"github.com/npillmayer/pentype/core/option"
	"golang.org/x/image/math/f64"
)

// Flatten replaces arcs and curves by sequences of lines, for devices
// lacking native curve support. Consecutive points are about maxSegment apart.
//
// Arcs are sampled uniformly by angle. Curves are stepped adaptively along
// their parameter, using the local speed of the curve. The number of steps
// per curve is capped by an estimate of its length; if the cap is hit, the
// end point is drawn directly. A segment length which is not positive leaves
// the program unchanged.
func (p Program) Flatten(maxSegment float64) Program {
	if maxSegment <= 0 {
		tracer().Errorf("flatten: segment length must be positive, is %g", maxSegment)
		return append(Program(nil), p...)
	}
	out := make(Program, 0, len(p))
	p.Walk(func(i int, from f64.Vec2, c Command, to f64.Vec2) {
		switch c.Op {
		case OpArc:
			out = append(out, flattenArc(ArcOf(from, c), maxSegment, c.Feed)...)
		case OpCurve:
			out = append(out, flattenCurve(BezierOf(from, c), maxSegment, c.Feed)...)
		default:
			out = append(out, c)
		}
	})
	return out
}

func flattenArc(a Arc, maxSegment float64, feed option.Float64T) Program {
	n := int(a.Length() / maxSegment)
	lines := make(Program, 0, n+1)
	for i := 1; i < n; i++ {
		q := a.Point(a.Start + a.Sweep*float64(i)/float64(n))
		lines = append(lines, feedLine(q, feed))
	}
	return append(lines, feedLine(a.To, feed))
}

func flattenCurve(b Bezier, maxSegment float64, feed option.Float64T) Program {
	chord := affine.Length(affine.Sub(b[2], b[1]))
	legs := affine.Length(affine.Sub(b[1], b[0])) + affine.Length(affine.Sub(b[3], b[2]))
	maxSteps := int((legs+chord)/maxSegment) + 1
	lines := make(Program, 0, maxSteps+1)
	t, done := 0.0, false
	for i := 0; i < maxSteps; i++ {
		speed := affine.Length(b.Velocity(t))
		if speed < 1e-12 {
			t += 1 / float64(maxSteps)
		} else {
			t += maxSegment / speed
		}
		if t > 1 {
			done = true
			break
		}
		q := b.Point(t)
		lines = append(lines, feedLine(q, feed))
	}
	if !done {
		tracer().Infof("flatten: curve to %v reached maximum number of steps (%d)", b[3], maxSteps)
	}
	return append(lines, feedLine(b[3], feed))
}

// feedLine keeps the feed rate of a flattened arc or curve.
func feedLine(q f64.Vec2, feed option.Float64T) Command {
	l := LineTo(q[0], q[1])
	l.Feed = feed
	return l
}
