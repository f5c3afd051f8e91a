/*
Package layout turns text into motion programs for pen plotters.

The layout engine is a small state machine, driven by the knots of a khipu
(see package khipu). It keeps a cursor, the insertion point for the next
glyph, which starts at the top-left writing position of a page and advances
to the right with every glyph and space. Words which do not fit onto the
remainder of a line are moved to the next line, words which do not fit onto
a line at all are split with a hyphen. Lines which would run below the
bottom of the page start a new page.

Glyphs are either drawn as independent strokes, or, for cursive alphabets,
connected to their predecessor within a word by a smooth curve.

Coordinates follow the plotter convention: the origin is at the bottom-left
corner of the page, y grows upwards, and lines are stacked top to bottom.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package layout

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pentype.layout'.
func tracer() tracing.Trace {
	return tracing.Select("pentype.layout")
}
