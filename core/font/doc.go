/*
Package font implements stroke fonts for pen plotters.

A stroke font is an alphabet of glyphs. Each glyph is a small motion
program (see package motion) drawing a single character, starting at the
glyph's origin (0,0). Glyphs are measured once, when they are created: the
width is the rightmost x-extent of the glyph's path, and the exit position
and exit heading describe where and in which direction the pen leaves the
glyph. Cursive text uses these to connect adjacent glyphs.

Alphabets are persisted in three forms: a JSON dictionary of G-code strings,
a structured JSON document, and a compact CBOR encoding of the structured
form.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package font

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pentype.font'.
func tracer() tracing.Trace {
	return tracing.Select("pentype.font")
}
