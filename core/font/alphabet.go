package font

import (
	"strings"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/pentype/core"
)

// Alphabet maps characters to glyphs. A character is a single grapheme
// cluster, usually a single code point.
//
// Alphabets are not safe for concurrent modification. The layout engine only
// reads from an alphabet, so a fully loaded alphabet may be shared.
type Alphabet struct {
	glyphs *treemap.Map
}

// NewAlphabet creates an empty alphabet.
func NewAlphabet() *Alphabet {
	return &Alphabet{glyphs: treemap.NewWithStringComparator()}
}

// Add sets the glyph for character ch, replacing an existing one.
func (a *Alphabet) Add(ch string, g *Glyph) {
	a.glyphs.Put(ch, g)
}

// Glyph returns the glyph for ch. If the alphabet has no glyph for ch,
// an error with code core.EUNKNOWNGLYPH is returned.
func (a *Alphabet) Glyph(ch string) (*Glyph, error) {
	if g, ok := a.glyphs.Get(ch); ok {
		return g.(*Glyph), nil
	}
	return nil, core.Error(core.EUNKNOWNGLYPH, "no glyph for character %q", ch)
}

// Has is true if the alphabet contains a glyph for ch.
func (a *Alphabet) Has(ch string) bool {
	_, ok := a.glyphs.Get(ch)
	return ok
}

// Len is the number of glyphs.
func (a *Alphabet) Len() int {
	return a.glyphs.Size()
}

// Characters returns the characters of the alphabet in sorted order.
func (a *Alphabet) Characters() []string {
	keys := a.glyphs.Keys()
	chars := make([]string, len(keys))
	for i, k := range keys {
		chars[i] = k.(string)
	}
	return chars
}

// Each calls f for every glyph, in the order of characters.
func (a *Alphabet) Each(f func(ch string, g *Glyph)) {
	a.glyphs.Each(func(k, v interface{}) {
		f(k.(string), v.(*Glyph))
	})
}

// Resize scales every glyph of the alphabet by factor.
func (a *Alphabet) Resize(factor float64) {
	tracer().Debugf("resize alphabet of %d glyphs by %g", a.Len(), factor)
	a.Each(func(_ string, g *Glyph) {
		g.Resize(factor)
	})
}

// Resized returns a copy of the alphabet, scaled by factor.
func (a *Alphabet) Resized(factor float64) *Alphabet {
	r := a.Clone()
	r.Resize(factor)
	return r
}

// Clone returns a deep copy of the alphabet.
func (a *Alphabet) Clone() *Alphabet {
	c := NewAlphabet()
	a.Each(func(ch string, g *Glyph) {
		c.Add(ch, g.clone())
	})
	return c
}

// Require checks that the alphabet contains glyphs for all of chars. The
// error lists every missing character and carries code core.EUNKNOWNGLYPH.
func (a *Alphabet) Require(chars ...string) error {
	var missing []string
	for _, ch := range chars {
		if !a.Has(ch) {
			missing = append(missing, ch)
		}
	}
	if len(missing) > 0 {
		return core.Error(core.EUNKNOWNGLYPH, "alphabet lacks glyphs for %q",
			strings.Join(missing, " "))
	}
	return nil
}

// Height returns the largest glyph height above the baseline, i.e. the
// maximum y-coordinate over all glyphs, with curves flattened to precision.
// It is used to relate an alphabet to a font size.
func (a *Alphabet) Height(precision float64) float64 {
	h := 0.0
	a.Each(func(_ string, g *Glyph) {
		if y := float64(g.program.Bounds(precision).Max.Y); y > h {
			h = y
		}
	})
	return h
}
