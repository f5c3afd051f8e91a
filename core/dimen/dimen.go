// Package dimen implements dimensions and units.
//
/*
BSD License

Copyright (c) 2017–21, Norbert Pillmayer (norbert@pillmayer.com)

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.  */
package dimen

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Dimen is a dimension type.
// Values are in millimetres, the native unit of plotter coordinates.
// Bare numbers are taken as millimetres as well.
type Dimen float64

// Some pre-defined dimensions
const (
	Zero Dimen = 0
	MM   Dimen = 1
	CM   Dimen = 10
	IN   Dimen = 25.4
	BP   Dimen = 25.4 / 72    // big point (PDF) = 1/72 inch
	PT   Dimen = 25.4 / 72.27 // printers point 1/72.27 inch
)

// Infinity is the largest possible dimension
const Infinity = Dimen(math.MaxFloat64)

// Some common paper sizes
var DINA3 = Point{297 * MM, 420 * MM}
var DINA4 = Point{210 * MM, 297 * MM}
var DINA5 = Point{148 * MM, 210 * MM}
var USLetter = Point{216 * MM, 279 * MM}
var USLegal = Point{216 * MM, 357 * MM}

// Stringer implementation.
func (d Dimen) String() string {
	return strconv.FormatFloat(float64(d), 'f', -1, 64) + "mm"
}

// Points returns a dimension in big (PDF) points.
func (d Dimen) Points() float64 {
	return float64(d / BP)
}

// Point is a point on a page.
type Point struct {
	X, Y Dimen
}

// Origin is origin
var Origin = Point{0, 0}

// Shift a point along a vector.
func (p *Point) Shift(vector Point) *Point {
	p.X += vector.X
	p.Y += vector.Y
	return p
}

// Rect is a rectangle on a page, spanning from its lower left to its upper
// right corner (plotter coordinates grow upwards).
type Rect struct {
	Min, Max Point
}

// Page returns the rectangle of a page of the given size with the origin at
// its lower left corner.
func Page(size Point) Rect {
	return Rect{Min: Origin, Max: size}
}

// Width returns the width of a rectangle.
func (r Rect) Width() Dimen {
	return r.Max.X - r.Min.X
}

// Height returns the height of a rectangle.
func (r Rect) Height() Dimen {
	return r.Max.Y - r.Min.Y
}

// Contains is true if (x,y) is inside r or on its border.
func (r Rect) Contains(x, y Dimen) bool {
	return x >= r.Min.X && x <= r.Max.X && y >= r.Min.Y && y <= r.Max.Y
}

// ---------------------------------------------------------------------------

var dimenPattern = regexp.MustCompile(`^([+\-]?(?:[0-9]+\.?[0-9]*|\.[0-9]+))(%|[a-zA-Z]{2})?$`)

// ParseDimen parses a string to return a dimension. Syntax is CSS Unit.
// If a percentage value is given (`80%`), the second return value will be true
// and the dimension holds the fraction (0.8).
//
func ParseDimen(s string) (Dimen, bool, error) {
	d := dimenPattern.FindStringSubmatch(strings.TrimSpace(s))
	if len(d) < 2 {
		return 0, false, errors.New("format error parsing dimension")
	}
	scale := MM
	ispcnt := false
	if len(d) > 2 {
		switch d[2] {
		case "pt", "PT":
			scale = PT
		case "mm", "MM", "":
			scale = MM
		case "bp", "BP":
			scale = BP
		case "cm", "CM":
			scale = CM
		case "in", "IN":
			scale = IN
		case "%":
			scale, ispcnt = 0.01, true
		default:
			return 0, false, errors.New("format error parsing dimension")
		}
	}
	n, err := strconv.ParseFloat(d[1], 64)
	if err != nil {
		return 0, false, errors.New("format error parsing dimension")
	}
	return Dimen(n) * scale, ispcnt, nil
}

// ParsePaper returns the size of a named paper format, e.g. "A4". A trailing
// " landscape" swaps width and height.
func ParsePaper(name string) (Point, bool) {
	fields := strings.Fields(strings.ToLower(name))
	if len(fields) == 0 {
		return Origin, false
	}
	var p Point
	switch fields[0] {
	case "a3", "dina3":
		p = DINA3
	case "a4", "dina4":
		p = DINA4
	case "a5", "dina5":
		p = DINA5
	case "letter", "usletter":
		p = USLetter
	case "legal", "uslegal":
		p = USLegal
	default:
		return Origin, false
	}
	if len(fields) > 1 && fields[1] == "landscape" {
		p.X, p.Y = p.Y, p.X
	}
	return p, true
}

// ---------------------------------------------------------------------------

// Min returns the smaller of two dimensions.
func Min(a, b Dimen) Dimen {
	if a < b {
		return a
	}
	return b
}

// Max returns the greater of two dimensions.
func Max(a, b Dimen) Dimen {
	if a > b {
		return a
	}
	return b
}
