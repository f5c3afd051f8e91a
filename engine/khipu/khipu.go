package khipu

import (
	"strings"
)

// KnotType is the type of a knot.
type KnotType int8

// Knot types
const (
	KTWord      KnotType = iota // a word, i.e. a run of non-space graphemes
	KTSpace                     // a single space character
	KTParBreak                  // end of a paragraph
	KTBlankLine                 // a paragraph without content
)

var knotTypeNames = [...]string{"word", "space", "parbreak", "blankline"}

func (kt KnotType) String() string {
	if int(kt) < len(knotTypeNames) {
		return knotTypeNames[kt]
	}
	return "?"
}

// Knot is an element of a khipu.
type Knot struct {
	Type      KnotType
	Graphemes []string // for words
}

// Word creates a word knot from a sequence of grapheme clusters.
func Word(graphemes ...string) Knot {
	return Knot{Type: KTWord, Graphemes: graphemes}
}

// Space creates a space knot.
func Space() Knot { return Knot{Type: KTSpace} }

// ParBreak creates a paragraph break.
func ParBreak() Knot { return Knot{Type: KTParBreak} }

// BlankLine creates a knot for an empty paragraph.
func BlankLine() Knot { return Knot{Type: KTBlankLine} }

// Text returns the text a knot has been created from.
func (k Knot) Text() string {
	switch k.Type {
	case KTWord:
		return strings.Join(k.Graphemes, "")
	case KTSpace:
		return " "
	case KTParBreak:
		return "\n"
	}
	return ""
}

func (k Knot) String() string {
	switch k.Type {
	case KTWord:
		return "[" + k.Text() + "]"
	case KTSpace:
		return "_"
	case KTParBreak:
		return "¶"
	}
	return "∅"
}

// Khipu is a sequence of knots.
type Khipu struct {
	knots []Knot
}

// NewKhipu creates an empty khipu.
func NewKhipu() *Khipu {
	return &Khipu{knots: make([]Knot, 0, 32)}
}

// AppendKnot appends a knot to the khipu. Returns the khipu to allow for
// chaining.
func (kh *Khipu) AppendKnot(k Knot) *Khipu {
	kh.knots = append(kh.knots, k)
	return kh
}

// AppendKhipu appends all knots of k2 to kh.
func (kh *Khipu) AppendKhipu(k2 *Khipu) *Khipu {
	if k2 != nil {
		kh.knots = append(kh.knots, k2.knots...)
	}
	return kh
}

// Length returns the number of knots.
func (kh *Khipu) Length() int {
	return len(kh.knots)
}

// Knot returns the knot at position i.
func (kh *Khipu) Knot(i int) Knot {
	return kh.knots[i]
}

// Text returns the text of the knots from..to-1.
func (kh *Khipu) Text(from, to int) string {
	if from < 0 {
		from = 0
	}
	if to > len(kh.knots) {
		to = len(kh.knots)
	}
	var b strings.Builder
	for _, k := range kh.knots[from:to] {
		b.WriteString(k.Text())
	}
	return b.String()
}

// Graphemes returns the set of grapheme clusters used in words of the khipu,
// in order of first appearance.
func (kh *Khipu) Graphemes() []string {
	seen := make(map[string]bool)
	var gs []string
	for _, k := range kh.knots {
		for _, g := range k.Graphemes {
			if !seen[g] {
				seen[g] = true
				gs = append(gs, g)
			}
		}
	}
	return gs
}

func (kh *Khipu) String() string {
	var b strings.Builder
	for i, k := range kh.knots {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k.String())
	}
	return b.String()
}

// --- Cursor ----------------------------------------------------------------

// Cursor iterates over the knots of a khipu.
//
//     cursor := NewCursor(khipu)
//     for cursor.Next() {
//         knot := cursor.Knot()
//         …
//     }
type Cursor struct {
	khipu *Khipu
	pos   int
}

// NewCursor creates a cursor positioned before the first knot of kh.
func NewCursor(kh *Khipu) *Cursor {
	return &Cursor{khipu: kh, pos: -1}
}

// Next moves the cursor to the next knot. It returns false at the end of
// the khipu.
func (c *Cursor) Next() bool {
	if c.pos+1 >= c.khipu.Length() {
		c.pos = c.khipu.Length()
		return false
	}
	c.pos++
	return true
}

// Knot returns the knot at the cursor position.
func (c *Cursor) Knot() Knot {
	return c.khipu.knots[c.pos]
}

// Position returns the index of the current knot.
func (c *Cursor) Position() int {
	return c.pos
}

// Peek returns the knot after the cursor position, if there is one.
func (c *Cursor) Peek() (Knot, bool) {
	if c.pos+1 < c.khipu.Length() {
		return c.khipu.knots[c.pos+1], true
	}
	return Knot{}, false
}
