/*
Package html reads text to plot from HTML documents.

Block elements (paragraphs, headings, list items, …) become paragraphs of
plain text, inline markup is dropped. A CSS selector may restrict the
extraction to parts of a document:

    text, err := html.Text(r, "article p")

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package html

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pentype.html'.
func tracer() tracing.Trace {
	return tracing.Select("pentype.html")
}
