package parameters

import (
	"fmt"
	"io"

	"github.com/npillmayer/pentype/core"
	"github.com/npillmayer/pentype/core/dimen"
	"gopkg.in/yaml.v3"
)

// Config is the file representation of layout registers. Dimensions are
// strings in CSS unit syntax ("7mm", "0.5in"). Spacings may be given as
// percentages of the font size ("25%").
//
//     page: A4 landscape
//     font_size: 8mm
//     space_width: 30%
//     cursive: true
//
type Config struct {
	Page         string   `yaml:"page"`
	PageWidth    string   `yaml:"page_width"`
	PageHeight   string   `yaml:"page_height"`
	FontSize     string   `yaml:"font_size"`
	LineSpacing  string   `yaml:"line_spacing"`
	CharSpacing  string   `yaml:"char_spacing"`
	PunctSpacing string   `yaml:"punct_spacing"`
	SpaceWidth   string   `yaml:"space_width"`
	Cursive      *bool    `yaml:"cursive"`
	Curvature    *float64 `yaml:"curvature"`
	HyphenChar   string   `yaml:"hyphen_char"`
	FeedRate     *float64 `yaml:"feed_rate"`
	Flatten      string   `yaml:"flatten"`
}

// LoadConfig reads a YAML layout configuration and pushes its values into
// regs. If regs is nil, a new set of registers with defaults is created.
func LoadConfig(r io.Reader, regs *LayoutRegisters) (*LayoutRegisters, error) {
	if regs == nil {
		regs = NewLayoutRegisters()
	}
	var conf Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&conf); err != nil && err != io.EOF {
		return nil, core.WrapError(err, core.EINVALID, "cannot read layout configuration")
	}
	if err := conf.Apply(regs); err != nil {
		return nil, err
	}
	return regs, nil
}

// Apply pushes the configured values into regs. Settings left empty keep
// their current register values.
func (conf Config) Apply(regs *LayoutRegisters) error {
	if conf.Page != "" {
		p, ok := dimen.ParsePaper(conf.Page)
		if !ok {
			return core.Error(core.EINVALID, "unknown paper format %q", conf.Page)
		}
		regs.Push(P_PAGEWIDTH, p.X)
		regs.Push(P_PAGEHEIGHT, p.Y)
	}
	// font size first, spacings may be relative to it
	absolute := []struct {
		key LayoutParameter
		val string
	}{
		{P_PAGEWIDTH, conf.PageWidth},
		{P_PAGEHEIGHT, conf.PageHeight},
		{P_FONTSIZE, conf.FontSize},
		{P_FLATTEN, conf.Flatten},
	}
	for _, a := range absolute {
		if a.val == "" {
			continue
		}
		d, ispcnt, err := dimen.ParseDimen(a.val)
		if err != nil || ispcnt {
			return core.Error(core.EINVALID, "illegal value for %s: %q", a.key, a.val)
		}
		regs.Push(a.key, d)
	}
	relative := []struct {
		key LayoutParameter
		val string
	}{
		{P_LINESPACING, conf.LineSpacing},
		{P_CHARSPACING, conf.CharSpacing},
		{P_PUNCTSPACING, conf.PunctSpacing},
		{P_SPACEWIDTH, conf.SpaceWidth},
	}
	for _, rel := range relative {
		if rel.val == "" {
			continue
		}
		d, ispcnt, err := dimen.ParseDimen(rel.val)
		if err != nil {
			return core.Error(core.EINVALID, "illegal value for %s: %q", rel.key, rel.val)
		}
		if ispcnt {
			d = d * regs.D(P_FONTSIZE)
		}
		regs.Push(rel.key, d)
	}
	if conf.Cursive != nil {
		regs.Push(P_CURSIVE, *conf.Cursive)
	}
	if conf.Curvature != nil {
		if *conf.Curvature <= 0 {
			return core.Error(core.EINVALID, "curvature must be positive, is %g", *conf.Curvature)
		}
		regs.Push(P_CURVATURE, *conf.Curvature)
	}
	if conf.HyphenChar != "" {
		regs.Push(P_HYPHENCHAR, conf.HyphenChar)
	}
	if conf.FeedRate != nil {
		regs.Push(P_FEEDRATE, *conf.FeedRate)
	}
	tracer().Debugf("layout configuration applied: %s", regs)
	return nil
}

// String lists the current register values.
func (regs *LayoutRegisters) String() string {
	s := "{"
	for p := none + 1; p < P_STOPPER; p++ {
		if p > none+1 {
			s += ", "
		}
		s += fmt.Sprintf("%s=%v", p, regs.Get(p))
	}
	return s + "}"
}
