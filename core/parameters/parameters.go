/*
Package parameters holds the layout registers which configure text layout.

Registers may be grouped: values pushed inside a group shadow the base values
until the group is closed again.

    regs := parameters.NewLayoutRegisters()
    regs.Begingroup()
    regs.Push(parameters.P_CURSIVE, true)
    …
    regs.Endgroup()   // cursive mode is off again

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parameters

import (
	"github.com/npillmayer/pentype/core/dimen"
	"github.com/npillmayer/pentype/core/percent"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pentype.core'.
func tracer() tracing.Trace {
	return tracing.Select("pentype.core")
}

// LayoutParameter is a key for a layout register.
type LayoutParameter int

//go:generate stringer -type=LayoutParameter
const (
	none            LayoutParameter = iota
	P_PAGEWIDTH                     // dimension, width of the writing area
	P_PAGEHEIGHT                    // dimension, height of the writing area
	P_FONTSIZE                      // dimension, height of a line of glyphs
	P_LINESPACING                   // dimension, gap between two lines
	P_CHARSPACING                   // dimension, gap between two glyphs
	P_PUNCTSPACING                  // dimension, gap around punctuation
	P_SPACEWIDTH                    // dimension, width of an inter-word space
	P_CURSIVE                       // bool, join glyphs cursively
	P_CURVATURE                     // float64, control point distance factor of cursive joins
	P_HYPHENCHAR                    // string, glyph to draw when splitting words
	P_FEEDRATE                      // float64, feed rate for drawing moves; 0 = none
	P_FLATTEN                       // dimension, max segment length for flattening; 0 = keep curves
	P_STOPPER
)

var parameterNames = [...]string{
	"none", "page_width", "page_height", "font_size", "line_spacing",
	"char_spacing", "punct_spacing", "space_width", "cursive", "curvature",
	"hyphen_char", "feed_rate", "flatten",
}

func (p LayoutParameter) String() string {
	if p <= none || p >= P_STOPPER {
		return "LayoutParameter(?)"
	}
	return parameterNames[p]
}

// ParameterGroup holds the register values pushed inside a group.
type ParameterGroup struct {
	params map[LayoutParameter]interface{}
	level  int
	next   *ParameterGroup
}

// LayoutRegisters is a set of layout parameters with grouping.
type LayoutRegisters struct {
	base       [P_STOPPER]interface{}
	groups     *ParameterGroup
	grouplevel int
}

// ----------------------------------------------------------------------

// NewLayoutRegisters creates a set of registers holding default values.
func NewLayoutRegisters() *LayoutRegisters {
	regs := &LayoutRegisters{}
	initParameters(&regs.base)
	return regs
}

// Defaults: DIN A4 portrait, 7mm glyphs, no char spacing.
// P_SPACEWIDTH and P_PUNCTSPACING are left unset; they will be derived
// from the font size (see SpaceWidth and PunctSpacing).
func initParameters(p *[P_STOPPER]interface{}) {
	p[P_PAGEWIDTH] = dimen.DINA4.X // dimension
	p[P_PAGEHEIGHT] = dimen.DINA4.Y
	p[P_FONTSIZE] = 7 * dimen.MM
	p[P_LINESPACING] = 3 * dimen.MM
	p[P_CHARSPACING] = dimen.Zero
	p[P_CURSIVE] = false
	p[P_CURVATURE] = 0.3
	p[P_HYPHENCHAR] = "-"
	p[P_FEEDRATE] = 0.0
	p[P_FLATTEN] = dimen.Zero
}

func (regs *LayoutRegisters) Begingroup() {
	regs.grouplevel++
}

func (regs *LayoutRegisters) Endgroup() {
	if regs.grouplevel > 0 {
		if regs.groups != nil && regs.groups.level == regs.grouplevel {
			regs.groups = regs.groups.next
		}
		regs.grouplevel--
	}
}

func (regs *LayoutRegisters) Push(key LayoutParameter, value interface{}) {
	if key <= none || key >= P_STOPPER {
		panic("parameter key outside range of layout parameters")
	}
	tracer().Debugf("push %s = %v (group level %d)", key, value, regs.grouplevel)
	if regs.grouplevel > 0 {
		var g *ParameterGroup
		if regs.groups == nil || regs.groups.level < regs.grouplevel {
			g = &ParameterGroup{}
			g.params = make(map[LayoutParameter]interface{})
			g.level = regs.grouplevel
			g.next = regs.groups
			regs.groups = g
		} else {
			g = regs.groups
		}
		g.params[key] = value
	} else {
		regs.base[key] = value
	}
}

func (regs *LayoutRegisters) Get(key LayoutParameter) interface{} {
	if key <= none || key >= P_STOPPER {
		panic("parameter key outside range of layout parameters")
	}
	var value interface{}
	if regs.grouplevel > 0 {
		for g := regs.groups; g != nil; g = g.next {
			value = g.params[key]
			if value != nil {
				break
			}
		}
	}
	if value == nil {
		value = regs.base[key]
	}
	return value
}

// IsSet is true if a value for key has been set (or has a default).
func (regs *LayoutRegisters) IsSet(key LayoutParameter) bool {
	return regs.Get(key) != nil
}

func (regs *LayoutRegisters) S(key LayoutParameter) string {
	return regs.Get(key).(string)
}

func (regs *LayoutRegisters) B(key LayoutParameter) bool {
	return regs.Get(key).(bool)
}

// F returns a numeric register as float64. Dimensions are returned in
// millimetres.
func (regs *LayoutRegisters) F(key LayoutParameter) float64 {
	switch v := regs.Get(key).(type) {
	case float64:
		return v
	case dimen.Dimen:
		return float64(v)
	case int:
		return float64(v)
	}
	panic("layout register " + key.String() + " is not numeric")
}

func (regs *LayoutRegisters) D(key LayoutParameter) dimen.Dimen {
	return dimen.Dimen(regs.F(key))
}

// Spacings derived from the font size, if not set explicitly.
const (
	DefaultSpaceWidth   = percent.Percent(25)
	DefaultPunctSpacing = percent.Percent(20)
)

// SpaceWidth returns the width of an inter-word space. If not set
// explicitly, it is 25% of the font size.
func (regs *LayoutRegisters) SpaceWidth() dimen.Dimen {
	if regs.IsSet(P_SPACEWIDTH) {
		return regs.D(P_SPACEWIDTH)
	}
	return dimen.Dimen(DefaultSpaceWidth.Of(regs.F(P_FONTSIZE)))
}

// PunctSpacing returns the spacing around punctuation. If not set explicitly,
// it is 20% of the font size for fonts without char spacing, and equal to
// the char spacing otherwise.
func (regs *LayoutRegisters) PunctSpacing() dimen.Dimen {
	if regs.IsSet(P_PUNCTSPACING) {
		return regs.D(P_PUNCTSPACING)
	}
	if regs.D(P_CHARSPACING) == 0 {
		return dimen.Dimen(DefaultPunctSpacing.Of(regs.F(P_FONTSIZE)))
	}
	return regs.D(P_CHARSPACING)
}
