/*
Package khipu prepares text for layout.

A khipu is a sequence of knots, once used by the Inca to record information.
Our khipus record the structure of a text which matters to a pen plotter:
words (as sequences of grapheme clusters), spaces, paragraph breaks and
blank lines. The layout engine consumes a khipu knot by knot.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package khipu

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pentype.khipu'.
func tracer() tracing.Trace {
	return tracing.Select("pentype.khipu")
}
