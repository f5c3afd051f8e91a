package font

import (
	"strings"
	"sync"

	"github.com/npillmayer/pentype/core"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
	"golang.org/x/text/unicode/norm"
)

var setupGraphemes sync.Once

// graphemes splits NFC-normalized text into grapheme clusters.
func graphemes(text string) []string {
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	seg := segment.NewSegmenter(grapheme.NewBreaker(1))
	seg.Init(strings.NewReader(norm.NFC.String(text)))
	var clusters []string
	for seg.Next() {
		clusters = append(clusters, seg.Text())
	}
	return clusters
}

// layoutCluster is true for clusters which are handled by the layout engine
// itself and never need a glyph.
func layoutCluster(cluster string) bool {
	switch cluster {
	case " ", "\n", "\r\n", "\r":
		return true
	}
	return false
}

// Check verifies that the alphabet covers text. Spaces and line breaks need
// no glyphs. The error carries code core.EUNKNOWNGLYPH and lists every
// missing character once.
func (a *Alphabet) Check(text string) error {
	var missing []string
	seen := make(map[string]bool)
	for _, cl := range graphemes(text) {
		if layoutCluster(cl) || seen[cl] || a.Has(cl) {
			continue
		}
		seen[cl] = true
		missing = append(missing, cl)
	}
	if len(missing) > 0 {
		return core.Error(core.EUNKNOWNGLYPH, "alphabet lacks glyphs for %q",
			strings.Join(missing, " "))
	}
	return nil
}

// Sanitize replaces every character of text which the alphabet does not cover
// by replacement. An empty replacement drops those characters.
func (a *Alphabet) Sanitize(text, replacement string) string {
	var b strings.Builder
	for _, cl := range graphemes(text) {
		if layoutCluster(cl) || a.Has(cl) {
			b.WriteString(cl)
			continue
		}
		tracer().Debugf("sanitize: replacing %q", cl)
		b.WriteString(replacement)
	}
	return b.String()
}
