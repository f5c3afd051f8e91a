package motion

import (
	"math"

	"github.com/npillmayer/pentype/core/affine"
	"golang.org/x/image/math/f64"
)

// Arc is the geometry of an arc command.
// Start is the angle of the start point as seen from the centre, Sweep the
// signed angle covered (negative for clockwise arcs).
type Arc struct {
	Center       f64.Vec2
	Radius       float64
	Start, Sweep float64
	From, To     f64.Vec2
}

// ArcOf returns the geometry of arc command c starting at from.
// An arc ending where it starts is a full circle.
func ArcOf(from f64.Vec2, c Command) Arc {
	to := c.End(from)
	center := affine.Add(from, c.Center)
	a0 := affine.Angle(affine.Sub(from, center))
	a1 := affine.Angle(affine.Sub(to, center))
	sweep := a1 - a0
	if c.Clockwise {
		if sweep >= 0 {
			sweep -= 2 * math.Pi
		}
	} else if sweep <= 0 {
		sweep += 2 * math.Pi
	}
	return Arc{
		Center: center,
		Radius: affine.Dist(center, from),
		Start:  a0,
		Sweep:  sweep,
		From:   from,
		To:     to,
	}
}

// Point returns the point on the circle at angle theta.
func (a Arc) Point(theta float64) f64.Vec2 {
	return affine.Add(a.Center, affine.Polar(a.Radius, theta))
}

// Length is the length of the arc.
func (a Arc) Length() float64 {
	return a.Radius * math.Abs(a.Sweep)
}

// MaxX is the largest x-coordinate on the arc. If the arc passes angle 0
// (the rightmost point of the circle), this is center.x + radius, otherwise
// it is reached at one of the arc's bounds.
func (a Arc) MaxX() float64 {
	lo, hi := a.Start, a.Start+a.Sweep
	if lo > hi {
		lo, hi = hi, lo
	}
	if k := math.Ceil(lo / (2 * math.Pi)); 2*math.Pi*k <= hi {
		return a.Center[0] + a.Radius
	}
	x0 := a.Point(a.Start)[0]
	x1 := a.Point(a.Start + a.Sweep)[0]
	return math.Max(x0, x1)
}

// EndHeading is the direction of travel at the end of the arc.
func (a Arc) EndHeading() float64 {
	theta := affine.Angle(affine.Sub(a.To, a.Center))
	if a.Sweep < 0 {
		return normAngle(theta - math.Pi/2)
	}
	return normAngle(theta + math.Pi/2)
}

// Bezier is a cubic Bézier curve given by its four control points.
type Bezier [4]f64.Vec2

// BezierOf returns the control points of curve command c starting at from.
func BezierOf(from f64.Vec2, c Command) Bezier {
	to := c.End(from)
	return Bezier{from, affine.Add(from, c.C1), affine.Add(to, c.C2), to}
}

// Point evaluates the curve at t ∈ [0,1].
func (b Bezier) Point(t float64) f64.Vec2 {
	u := 1 - t
	w0, w1, w2, w3 := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return f64.Vec2{
		w0*b[0][0] + w1*b[1][0] + w2*b[2][0] + w3*b[3][0],
		w0*b[0][1] + w1*b[1][1] + w2*b[2][1] + w3*b[3][1],
	}
}

// Velocity is the derivative of the curve at t.
func (b Bezier) Velocity(t float64) f64.Vec2 {
	u := 1 - t
	d0 := affine.Sub(b[1], b[0])
	d1 := affine.Sub(b[2], b[1])
	d2 := affine.Sub(b[3], b[2])
	return affine.Scale(affine.Add(
		affine.Scale(d0, u*u),
		affine.Scale(d1, 2*t*u),
		affine.Scale(d2, t*t),
	), 3)
}

// BezierSamples is the number of intervals MaxX evaluates a curve at.
const BezierSamples = 1000

// MaxX approximates the largest x-coordinate on the curve by sampling it
// at BezierSamples+1 evenly spaced parameter values.
func (b Bezier) MaxX() float64 {
	xmax := math.Inf(-1)
	for i := 0; i <= BezierSamples; i++ {
		if x := b.Point(float64(i) / BezierSamples)[0]; x > xmax {
			xmax = x
		}
	}
	return xmax
}

// EndHeading is the direction of travel at the end of the curve. For a
// degenerate second control point the direction from the first control point
// (or from the start) is used.
func (b Bezier) EndHeading() float64 {
	for _, p := range []f64.Vec2{b[2], b[1], b[0]} {
		if d := affine.Sub(b[3], p); affine.Length(d) > 1e-12 {
			return affine.Angle(d)
		}
	}
	return 0
}

// normAngle maps an angle to (-π, π].
func normAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	} else if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
