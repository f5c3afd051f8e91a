/*
Package preview renders motion programs to raster images.

A preview shows what a pen plotter would draw on a page: every line, arc and
curve drawn with the pen down is stroked with a round pen of configurable
width. Travel with the pen up leaves no trace. Previews are meant for
checking layouts before sending them to a device.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package preview

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pentype.preview'.
func tracer() tracing.Trace {
	return tracing.Select("pentype.preview")
}
