package option

import (
	"errors"
	"math"
	"strconv"
)

var ErrNoSuchMatchPattern = errors.New("no such match pattern")
var ErrCannotMatchUnsetValue = errors.New("cannot match unset value")

type MaybeOption int

const (
	None MaybeOption = iota
	Some
	Error
)

// Maybe is a type used for matching of optional types.
// It will match `Some` if a value is set, `None` if it is unset, or `Error`
// if an error occurs.
type Maybe map[MaybeOption]interface{}

// Type is a type for optional values.
type Type interface {
	Match(choices interface{}) (interface{}, error)
	Equals(other interface{}) bool
	IsNone() bool
}

// Match will do a standard matching of o against choices.
//
// choices are expected to be of type Maybe. Values of the map may be
// of any type; functions of type func(interface{}) (interface{}, error)
// are called with o.
//
// If choices is of unknown kind, nil and ErrNoSuchMatchPattern are returned.
//
func Match(o Type, choices interface{}) (value interface{}, err error) {
	if c, ok := choices.(Maybe); ok {
		return c.Match(o)
	}
	return nil, ErrNoSuchMatchPattern
}

func (maybe Maybe) Match(o Type) (value interface{}, err error) {
	if o.IsNone() {
		if expr, ok := maybe[None]; ok {
			value, err = valueOrExpr(expr, o)
		} else {
			err = ErrCannotMatchUnsetValue
		}
	} else if expr, ok := maybe[Some]; ok {
		value, err = valueOrExpr(expr, o)
	}
	if err != nil {
		tracer().Debugf("option match: %v", err)
		if expr, ok := maybe[Error]; ok {
			value, err = valueOrExpr(expr, o)
		}
	}
	return value, err
}

func valueOrExpr(op interface{}, value Type) (interface{}, error) {
	if f, ok := op.(func(interface{}) (interface{}, error)); ok {
		return f(value)
	}
	return op, nil
}

// --- Float64T --------------------------------------------------------------

// Float64T is an option type for float64.
type Float64T float64

// Float64None is used as an in-band null value for optional floats.
// Every NaN counts as None.
var Float64None = math.NaN()

// SomeFloat64 creates an optional float64 with an initial value of x.
func SomeFloat64(x float64) Float64T {
	return Float64T(x)
}

// Float64 creates an optional float64 without an initial value.
func Float64() Float64T {
	return Float64T(Float64None)
}

func (o Float64T) Match(choices interface{}) (value interface{}, err error) {
	return Match(o, choices)
}

// Equals is true if other is a number (or a Float64T) with the same value.
// Two unset values are equal.
func (o Float64T) Equals(other interface{}) bool {
	switch x := other.(type) {
	case Float64T:
		if o.IsNone() || x.IsNone() {
			return o.IsNone() == x.IsNone()
		}
		return o == x
	case float64:
		return float64(o) == x
	case float32:
		return float64(o) == float64(x)
	case int:
		return float64(o) == float64(x)
	}
	return false
}

// Unwrap returns the value of o. For an unset o, the result is NaN.
func (o Float64T) Unwrap() float64 {
	return float64(o)
}

// UnwrapOr returns the value of o, or dflt if o is unset.
func (o Float64T) UnwrapOr(dflt float64) float64 {
	if o.IsNone() {
		return dflt
	}
	return float64(o)
}

// IsNone returns true if o is unset.
func (o Float64T) IsNone() bool {
	return math.IsNaN(float64(o))
}

// Map applies f to a set value and leaves an unset value alone.
func (o Float64T) Map(f func(float64) float64) Float64T {
	if o.IsNone() {
		return o
	}
	return Float64T(f(float64(o)))
}

func (o Float64T) String() string {
	if o.IsNone() {
		return "Float64.None"
	}
	return strconv.FormatFloat(float64(o), 'f', -1, 64)
}
