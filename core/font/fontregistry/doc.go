/*
Package fontregistry manages a registry for loaded alphabets.

Alphabets are stored at their design size under a normalized name. Clients
ask for an alphabet at a font size and receive a resized copy, which the
registry caches. Cached alphabets are shared and must not be modified.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontregistry

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("pentype.font")
}
