/*
Package affine implements 2-D vector and affine matrix operations on the
golang.org/x/image/math/f64 data types.

Matrices are in row-major order, as in f64.Aff3:

    | m[0] m[1] m[2] |
    | m[3] m[4] m[5] |
    |  0    0    1   |

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package affine

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Identity is the identity transform.
var Identity = f64.Aff3{
	1, 0, 0,
	0, 1, 0,
}

func mul(A, B f64.Aff3) (r f64.Aff3) {
	r[0] = A[0]*B[0] + A[1]*B[3]
	r[1] = A[0]*B[1] + A[1]*B[4]
	r[2] = A[0]*B[2] + A[1]*B[5] + A[2]
	r[3] = A[3]*B[0] + A[4]*B[3]
	r[4] = A[3]*B[1] + A[4]*B[4]
	r[5] = A[3]*B[2] + A[4]*B[5] + A[5]
	return r
}

// Mul multiplies matrices left to right. The resulting transform applies
// the rightmost matrix first.
func Mul(M ...f64.Aff3) (r f64.Aff3) {
	r = M[0]
	for i := 1; i < len(M); i++ {
		r = mul(r, M[i])
	}
	return r
}

func Offsetting(p f64.Vec2) f64.Aff3 {
	return f64.Aff3{
		1, 0, p[0],
		0, 1, p[1],
	}
}

func Scaling(s f64.Vec2) f64.Aff3 {
	return f64.Aff3{
		s[0], 0, 0,
		0, s[1], 0,
	}
}

// Rotating rotates counter-clockwise around the origin.
func Rotating(radians float64) f64.Aff3 {
	s, c := math.Sincos(radians)
	return f64.Aff3{
		c, -s, 0,
		s, c, 0,
	}
}

// Transform applies m to point p.
func Transform(m f64.Aff3, p f64.Vec2) f64.Vec2 {
	return f64.Vec2{
		p[0]*m[0] + p[1]*m[1] + m[2],
		p[0]*m[3] + p[1]*m[4] + m[5],
	}
}

// TransformVector applies the linear part of m to direction vector v.
func TransformVector(m f64.Aff3, v f64.Vec2) f64.Vec2 {
	return f64.Vec2{
		v[0]*m[0] + v[1]*m[1],
		v[0]*m[3] + v[1]*m[4],
	}
}

// Det is the determinant of the linear part of m. A negative determinant
// flips orientation.
func Det(m f64.Aff3) float64 {
	return m[0]*m[4] - m[1]*m[3]
}

// Separable is true if m maps x and y independently, i.e. the new x depends
// on the old x only, and likewise for y.
func Separable(m f64.Aff3) bool {
	return m[1] == 0 && m[3] == 0
}

// ---------------------------------------------------------------------------

func Scale(p f64.Vec2, s float64) f64.Vec2 {
	return f64.Vec2{p[0] * s, p[1] * s}
}

func Add(p ...f64.Vec2) f64.Vec2 {
	r := p[0]
	for i := 1; i < len(p); i++ {
		r = f64.Vec2{r[0] + p[i][0], r[1] + p[i][1]}
	}
	return r
}

func Sub(p ...f64.Vec2) f64.Vec2 {
	r := p[0]
	for i := 1; i < len(p); i++ {
		r = f64.Vec2{r[0] - p[i][0], r[1] - p[i][1]}
	}
	return r
}

func Neg(p f64.Vec2) f64.Vec2 {
	return f64.Vec2{-p[0], -p[1]}
}

func Dot(p0, p1 f64.Vec2) float64 {
	return p0[0]*p1[0] + p0[1]*p1[1]
}

func Length(p f64.Vec2) float64 {
	return math.Hypot(p[0], p[1])
}

func Dist(p0, p1 f64.Vec2) float64 {
	return Length(Sub(p1, p0))
}

// Angle is the direction of v in radians, in (-π, π].
func Angle(v f64.Vec2) float64 {
	return math.Atan2(v[1], v[0])
}

// Polar returns the vector of length r in direction theta.
func Polar(r, theta float64) f64.Vec2 {
	s, c := math.Sincos(theta)
	return f64.Vec2{r * c, r * s}
}
