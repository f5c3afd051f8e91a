package font

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/fxamacker/cbor/v2"
	"github.com/npillmayer/pentype/core"
	"github.com/npillmayer/pentype/core/motion"
	"github.com/npillmayer/pentype/core/option"
	"golang.org/x/image/math/f64"
)

// LoadOption configures the loading of alphabets.
type LoadOption func(*loadConfig)

type loadConfig struct {
	required []string
	scale    float64
}

// Require makes loading fail if the alphabet lacks any of chars.
func Require(chars ...string) LoadOption {
	return func(c *loadConfig) {
		c.required = append(c.required, chars...)
	}
}

// Scaled resizes the alphabet by factor after loading.
func Scaled(factor float64) LoadOption {
	return func(c *loadConfig) {
		c.scale = factor
	}
}

func finishLoading(a *Alphabet, opts []LoadOption) (*Alphabet, error) {
	conf := loadConfig{scale: 1}
	for _, opt := range opts {
		opt(&conf)
	}
	if err := a.Require(conf.required...); err != nil {
		return nil, err
	}
	if conf.scale != 1 {
		a.Resize(conf.scale)
	}
	tracer().Infof("loaded alphabet of %d glyphs", a.Len())
	return a, nil
}

// --- String dictionary -----------------------------------------------------

// LoadStrings reads an alphabet from a JSON object mapping characters to
// motion programs in text form. Glyph widths are measured.
func LoadStrings(r io.Reader, opts ...LoadOption) (*Alphabet, error) {
	var dict map[string]string
	if err := json.NewDecoder(r).Decode(&dict); err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot decode glyph dictionary: %v", err)
	}
	a := NewAlphabet()
	for _, ch := range sortedKeys(dict) {
		prog, err := motion.ParseString(dict[ch])
		if err != nil {
			return nil, core.WrapError(err, core.EMALFORMED, "glyph %q: %v", ch, err)
		}
		a.Add(ch, NewGlyph(prog, option.Float64()))
	}
	return finishLoading(a, opts)
}

// SaveStrings writes the alphabet as a JSON object mapping characters to
// motion programs in text form. Widths are not stored.
func (a *Alphabet) SaveStrings(w io.Writer) error {
	dict := make(map[string]string, a.Len())
	a.Each(func(ch string, g *Glyph) {
		dict[ch] = g.program.String()
	})
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(dict)
}

// --- Structured records ----------------------------------------------------

// glyphRecord is the structured form of a glyph, used for JSON and CBOR.
type glyphRecord struct {
	Char     string          `json:"char" cbor:"1,keyasint"`
	Width    *float64        `json:"width,omitempty" cbor:"2,keyasint,omitempty"`
	Commands []commandRecord `json:"commands" cbor:"3,keyasint"`
}

type commandRecord struct {
	Op        string      `json:"op" cbor:"1,keyasint"`
	X         *float64    `json:"x,omitempty" cbor:"2,keyasint,omitempty"`
	Y         *float64    `json:"y,omitempty" cbor:"3,keyasint,omitempty"`
	Center    *[2]float64 `json:"center,omitempty" cbor:"4,keyasint,omitempty"`
	C1        *[2]float64 `json:"c1,omitempty" cbor:"5,keyasint,omitempty"`
	C2        *[2]float64 `json:"c2,omitempty" cbor:"6,keyasint,omitempty"`
	Clockwise bool        `json:"cw,omitempty" cbor:"7,keyasint,omitempty"`
	Feed      *float64    `json:"f,omitempty" cbor:"8,keyasint,omitempty"`
	Text      string      `json:"text,omitempty" cbor:"9,keyasint,omitempty"`
}

var opsByName = func() map[string]motion.Op {
	m := make(map[string]motion.Op)
	for op := motion.OpNone; op <= motion.OpComment; op++ {
		m[op.String()] = op
	}
	return m
}()

func (a *Alphabet) records() []glyphRecord {
	recs := make([]glyphRecord, 0, a.Len())
	a.Each(func(ch string, g *Glyph) {
		w := g.width
		rec := glyphRecord{Char: ch, Width: &w}
		for _, c := range g.program {
			rec.Commands = append(rec.Commands, toRecord(c))
		}
		recs = append(recs, rec)
	})
	return recs
}

func fromRecords(recs []glyphRecord, opts []LoadOption) (*Alphabet, error) {
	a := NewAlphabet()
	for _, rec := range recs {
		prog := make(motion.Program, 0, len(rec.Commands))
		for i, cr := range rec.Commands {
			c, err := fromRecord(cr)
			if err != nil {
				return nil, core.WrapError(err, core.EMALFORMED, "glyph %q, command %d: %v", rec.Char, i, err)
			}
			prog = append(prog, c)
		}
		width := option.Float64()
		if rec.Width != nil {
			width = option.SomeFloat64(*rec.Width)
		}
		a.Add(rec.Char, NewGlyph(prog, width))
	}
	return finishLoading(a, opts)
}

func toRecord(c motion.Command) commandRecord {
	r := commandRecord{Op: c.Op.String(), Text: c.Text}
	r.X, r.Y, r.Feed = optPtr(c.X), optPtr(c.Y), optPtr(c.Feed)
	switch c.Op {
	case motion.OpArc:
		r.Center = vecPtr(c.Center)
		r.Clockwise = c.Clockwise
	case motion.OpCurve:
		r.C1, r.C2 = vecPtr(c.C1), vecPtr(c.C2)
	}
	return r
}

func fromRecord(r commandRecord) (motion.Command, error) {
	op, ok := opsByName[r.Op]
	if !ok {
		return motion.Command{}, core.Error(core.EMALFORMED, "unknown operation %q", r.Op)
	}
	c := motion.Command{Op: op, X: ptrOpt(r.X), Y: ptrOpt(r.Y), Feed: ptrOpt(r.Feed), Text: r.Text}
	switch op {
	case motion.OpArc, motion.OpCurve:
		if c.X.IsNone() || c.Y.IsNone() {
			return c, core.Error(core.EMALFORMED, "%s requires both x and y", op)
		}
		if op == motion.OpArc {
			if r.Center == nil {
				return c, core.Error(core.EMALFORMED, "arc without centre")
			}
			c.Center, c.Clockwise = f64.Vec2(*r.Center), r.Clockwise
		} else {
			if r.C1 == nil || r.C2 == nil {
				return c, core.Error(core.EMALFORMED, "curve without control points")
			}
			c.C1, c.C2 = f64.Vec2(*r.C1), f64.Vec2(*r.C2)
		}
	case motion.OpMove, motion.OpLine:
		if c.X.IsNone() && c.Y.IsNone() {
			return c, core.Error(core.EMALFORMED, "%s without coordinates", op)
		}
	}
	return c, nil
}

func optPtr(o option.Float64T) *float64 {
	if o.IsNone() {
		return nil
	}
	v := o.Unwrap()
	return &v
}

func ptrOpt(p *float64) option.Float64T {
	if p == nil {
		return option.Float64()
	}
	return option.SomeFloat64(*p)
}

func vecPtr(v f64.Vec2) *[2]float64 {
	a := [2]float64(v)
	return &a
}

// LoadJSON reads an alphabet in structured JSON form, as written by SaveJSON.
func LoadJSON(r io.Reader, opts ...LoadOption) (*Alphabet, error) {
	var recs []glyphRecord
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&recs); err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot decode alphabet: %v", err)
	}
	return fromRecords(recs, opts)
}

// SaveJSON writes the alphabet in structured JSON form. Glyphs are written
// in the order of characters, including their widths.
func (a *Alphabet) SaveJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(a.records())
}

// LoadCBOR reads an alphabet in CBOR form, as written by SaveCBOR.
func LoadCBOR(r io.Reader, opts ...LoadOption) (*Alphabet, error) {
	dm, err := cbor.DecOptions{
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}.DecMode()
	if err != nil {
		return nil, core.WrapError(err, core.EINTERNAL, "cbor: %v", err)
	}
	var recs []glyphRecord
	if err := dm.NewDecoder(r).Decode(&recs); err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot decode alphabet: %v", err)
	}
	return fromRecords(recs, opts)
}

// SaveCBOR writes the alphabet in deterministic CBOR encoding. Saving equal
// alphabets yields identical bytes.
func (a *Alphabet) SaveCBOR(w io.Writer) error {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return core.WrapError(err, core.EINTERNAL, "cbor: %v", err)
	}
	return em.NewEncoder(w).Encode(a.records())
}

// sortedKeys is used for deterministic error reporting.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
