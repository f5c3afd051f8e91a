// Package percent implements a simple and straightforward type for percentage
// values, used for spacings relative to the font size.
package percent

import (
	"math"
	"strconv"
	"strings"
)

// Percent is a simple and straightforward type for percentage values in the
// range 0…100.
type Percent uint8

// FromInt clips n to 0…100.
func FromInt(n int) Percent {
	switch {
	case n <= 0:
		return Percent(0)
	case n >= 100:
		return Percent(100)
	}
	return Percent(n)
}

// FromFloat rounds f and clips it to 0…100.
func FromFloat(f float64) Percent {
	switch {
	case f <= 0 || math.IsNaN(f) || math.IsInf(f, -1):
		return Percent(0)
	case f >= 100 || math.IsInf(f, 1):
		return Percent(100)
	}
	return Percent(math.Round(f))
}

// FromString parses "25%" or "25".
func FromString(s string) (Percent, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return FromInt(n), nil
}

// Of returns p percent of x.
func (p Percent) Of(x float64) float64 {
	return x * float64(p) / 100
}

func (p Percent) String() string {
	return strconv.Itoa(int(p)) + "%"
}
