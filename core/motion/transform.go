package motion

import (
	"github.com/npillmayer/pentype/core/affine"
	"github.com/npillmayer/pentype/core/option"
	"golang.org/x/image/math/f64"
)

// Axis denotes a coordinate axis.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Transform applies the affine transformation m to p. End points are
// transformed as points, arc centres and control points as vectors (they do
// not move under translation).
//
// If m maps x and y independently, omitted coordinates stay omitted.
// Otherwise they are resolved from the tool position first. Transformations
// which flip orientation reverse the direction of arcs.
func (p Program) Transform(m f64.Aff3) Program {
	out := make(Program, len(p))
	separable := affine.Separable(m)
	flip := affine.Det(m) < 0
	p.Walk(func(i int, from f64.Vec2, c Command, to f64.Vec2) {
		if c.Op.IsPositional() {
			if separable {
				c.X = c.X.Map(func(x float64) float64 { return x*m[0] + m[2] })
				c.Y = c.Y.Map(func(y float64) float64 { return y*m[4] + m[5] })
			} else {
				q := affine.Transform(m, to)
				c.X, c.Y = option.SomeFloat64(q[0]), option.SomeFloat64(q[1])
			}
			switch c.Op {
			case OpArc:
				c.Center = affine.TransformVector(m, c.Center)
				if flip {
					c.Clockwise = !c.Clockwise
				}
			case OpCurve:
				c.C1 = affine.TransformVector(m, c.C1)
				c.C2 = affine.TransformVector(m, c.C2)
			}
		}
		out[i] = c
	})
	return out
}

// Translate moves every absolute coordinate of p by v.
func (p Program) Translate(v f64.Vec2) Program {
	return p.Transform(affine.Offsetting(v))
}

// Rotate rotates p counter-clockwise around the origin.
func (p Program) Rotate(radians float64) Program {
	return p.Transform(affine.Rotating(radians))
}

// Scale scales p uniformly, relative to the origin.
func (p Program) Scale(factor float64) Program {
	return p.Transform(affine.Scaling(f64.Vec2{factor, factor}))
}

// Mirror reflects p across the given axis: AxisX negates y-coordinates,
// AxisY negates x-coordinates.
func (p Program) Mirror(axis Axis) Program {
	if axis == AxisX {
		return p.Transform(affine.Scaling(f64.Vec2{1, -1}))
	}
	return p.Transform(affine.Scaling(f64.Vec2{-1, 1}))
}
