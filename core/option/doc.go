/*
Package option implements optional values with in-band null values.

Plotter commands may omit coordinates, and glyphs may lack a defined exit
heading. Both are modelled as option types which do not need a pointer or an
extra flag: a reserved bit pattern stands for "no value".

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package option

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pentype.core'.
func tracer() tracing.Trace {
	return tracing.Select("pentype.core")
}
