/*
Package resources resolves stroke fonts for an application.

As resource loading may be a time-consuming task, some functions in this
package will work in an async/await fashion by returning a promise.
Functions named

   Resolve…(…)

will return a resource-specific promise type, which the client will call later
to receive the loaded resource. The call to the promise-function will then block
until loading has completed.

Alphabets are looked up as a file, then in the directories of the search path
given by environment variable PENTYPE_FONTPATH, then among the alphabets packaged
with this module. Names starting with "http://" or "https://" are downloaded
to the user's cache directory first.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package resources

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'pentype.resources'.
func tracer() tracing.Trace {
	return tracing.Select("pentype.resources")
}
