/*
Package motion represents motion programs for pen plotters.

A motion program is a sequence of commands driving the position of a drawing
tool and its pen state. Its text form is a small subset of G-code:

    G0 X1 Y2          move, not drawing
    G1 X4 Y7          draw a straight line
    G2 X3 Y0 I1 J0    draw a clockwise arc, I/J = centre relative to start
    G3 …              draw a counter-clockwise arc
    G5 I1 J0 P0 Q1 X3 Y3
                      draw a cubic Bézier curve, I/J = first control point
                      relative to start, P/Q = second control point relative
                      to end
    G0 Z0 / G0 Z9     pen up / pen down
    M7                page break, the device pauses for a new sheet
    # text            comment

Moves and lines may omit a coordinate; the device keeps the previous value
for that axis. Program operations never modify their receiver, they return
a new program.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package motion

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pentype.motion'.
func tracer() tracing.Trace {
	return tracing.Select("pentype.motion")
}
