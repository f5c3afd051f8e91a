/*
Pentype lays out text with a stroke font and writes a motion program for a
pen plotter.

Usage:

	pentype [-font plain] [-config layout.yaml] [-o out.gcode] [-png preview] [file ...]

Text is read from the files given as arguments, or from standard input. With
flag -html, the input is read as HTML and flag -select restricts it to the
elements matching a CSS selector. With flag -i, pentype starts an
interactive session instead.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/pentype/backend/preview"
	"github.com/npillmayer/pentype/core"
	"github.com/npillmayer/pentype/core/dimen"
	"github.com/npillmayer/pentype/core/font"
	"github.com/npillmayer/pentype/core/font/fontregistry"
	"github.com/npillmayer/pentype/core/locate/resources"
	"github.com/npillmayer/pentype/core/motion"
	params "github.com/npillmayer/pentype/core/parameters"
	"github.com/npillmayer/pentype/engine/layout"
	"github.com/npillmayer/pentype/input/html"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'pentype.cli'
func tracer() tracing.Trace {
	return tracing.Select("pentype.cli")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":       "go",
		"trace.pentype.cli":     "Info",
		"trace.pentype.layout":  "Error",
		"trace.pentype.font":    "Error",
		"trace.pentype.motion":  "Error",
		"trace.pentype.preview": "Error",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "plain", "Stroke font to load: a packaged font, a file (.json or .cbor) or a URL")
	confname := flag.String("config", "", "Layout configuration (YAML)")
	paper := flag.String("paper", "", "Paper format, e.g. 'A5 landscape'")
	size := flag.String("size", "", "Font size, e.g. '8mm'")
	cursive := flag.Bool("cursive", false, "Join glyphs cursively")
	outname := flag.String("o", "", "Output file for the motion program (default stdout)")
	pngname := flag.String("png", "", "Write page previews as PNG with this name")
	pure := flag.Bool("pure", false, "Strip comments from the motion program")
	interactive := flag.Bool("i", false, "Start an interactive session")
	ishtml := flag.Bool("html", false, "Input is HTML")
	selector := flag.String("select", "", "CSS selector for the parts of HTML input to plot")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError) // will set the correct level later
	//
	regs, err := loadRegisters(*confname, *paper, *size, *cursive)
	if err != nil {
		pterm.Error.Println(core.UserMessage(err))
		os.Exit(2)
	}
	doc := newDocument(fontregistry.GlobalRegistry(), regs)
	doc.pure = *pure
	if err := doc.loadFont(*fontname); err != nil {
		pterm.Error.Println(core.UserMessage(err))
		os.Exit(3)
	}
	setTraceLevel(tracer(), *tlevel)
	tracer().Infof("Trace level is %s", *tlevel)
	if *interactive {
		pterm.Info.Println("Welcome to pentype") // colored welcome message
		repl, err := readline.New("pentype > ")
		if err != nil {
			tracer().Errorf("%v", err)
			os.Exit(4)
		}
		intp := &Intp{repl: repl, doc: doc}
		pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
		intp.REPL()                              // go into interactive mode
		return
	}
	text, err := readText(flag.Args())
	if err == nil && (*ishtml || *selector != "") {
		text, err = html.Text(strings.NewReader(text), *selector)
	}
	if err != nil {
		pterm.Error.Println(core.UserMessage(err))
		os.Exit(5)
	}
	doc.text = text
	if err := doc.typeset(); err != nil {
		pterm.Error.Println(core.UserMessage(err))
		os.Exit(6)
	}
	if *outname == "" {
		_, err = doc.writeProgram(os.Stdout)
	} else {
		err = doc.saveProgram(*outname)
	}
	if err == nil && *pngname != "" {
		err = doc.savePreview(*pngname)
	}
	if err != nil {
		pterm.Error.Println(core.UserMessage(err))
		os.Exit(7)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func setTraceLevel(t tracing.Trace, l string) {
	switch strings.ToLower(l) {
	case "debug":
		t.SetTraceLevel(tracing.LevelDebug)
	case "error":
		t.SetTraceLevel(tracing.LevelError)
	default:
		t.SetTraceLevel(tracing.LevelInfo)
	}
}

// loadRegisters sets up the layout registers from a configuration file and
// the command line. Command line flags take precedence.
func loadRegisters(confname, paper, size string, cursive bool) (*params.LayoutRegisters, error) {
	regs := params.NewLayoutRegisters()
	if confname != "" {
		f, err := os.Open(confname)
		if err != nil {
			return nil, core.WrapError(err, core.EMISSING, "cannot open configuration %s", confname)
		}
		defer f.Close()
		if _, err = params.LoadConfig(f, regs); err != nil {
			return nil, err
		}
	}
	conf := params.Config{Page: paper, FontSize: size}
	if cursive {
		conf.Cursive = &cursive
	}
	if err := conf.Apply(regs); err != nil {
		return nil, err
	}
	return regs, nil
}

func readText(names []string) (string, error) {
	if len(names) == 0 {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", core.WrapError(err, core.EMISSING, "cannot read standard input")
		}
		return string(b), nil
	}
	var buf bytes.Buffer
	for i, name := range names {
		b, err := os.ReadFile(name)
		if err != nil {
			return "", core.WrapError(err, core.EMISSING, "cannot read %s", name)
		}
		if i > 0 {
			buf.WriteString("\n\n")
		}
		buf.Write(b)
	}
	return buf.String(), nil
}

// --- Document --------------------------------------------------------------

// document holds the text to typeset and the result of the last layout run.
type document struct {
	registry *fontregistry.Registry
	regs     *params.LayoutRegisters
	fontname string // normalized name of the current alphabet
	text     string
	prog     motion.Program
	pages    int
	pure     bool
}

func newDocument(registry *fontregistry.Registry, regs *params.LayoutRegisters) *document {
	return &document{registry: registry, regs: regs}
}

// loadFont resolves a stroke font designed at unit height and makes it the
// current alphabet. Fonts already in the registry are not loaded again.
func (doc *document) loadFont(name string) error {
	normalized := fontregistry.NormalizeName(name)
	if !doc.registry.Has(normalized) {
		tracer().Infof("loading font %s", name)
		alphabet, err := resources.ResolveAlphabet(name).Alphabet()
		if err != nil {
			return err
		}
		doc.registry.StoreAlphabet(normalized, alphabet)
	}
	doc.fontname = normalized
	return nil
}

// alphabet returns the current alphabet at the current font size.
func (doc *document) alphabet() (*font.Alphabet, error) {
	return doc.registry.Alphabet(doc.fontname, doc.regs.F(params.P_FONTSIZE))
}

func (doc *document) typeset() error {
	alphabet, err := doc.alphabet()
	if err != nil {
		return err
	}
	if err := alphabet.Check(doc.text); err != nil {
		return err
	}
	engine := layout.New(alphabet, doc.regs)
	prog, err := engine.Layout(doc.text)
	if err != nil {
		return err
	}
	if err := prog.CheckLimits(doc.page()); err != nil {
		tracer().Errorf("%s", core.UserMessage(err))
	}
	if doc.pure {
		prog = prog.Pure()
	}
	doc.prog, doc.pages = prog, engine.Pages()
	tracer().Infof("%d commands on %d page(s)", len(prog), doc.pages)
	return nil
}

func (doc *document) page() dimen.Rect {
	return dimen.Page(dimen.Point{
		X: doc.regs.D(params.P_PAGEWIDTH),
		Y: doc.regs.D(params.P_PAGEHEIGHT),
	})
}

func (doc *document) writeProgram(w io.Writer) (int64, error) {
	return doc.prog.WriteTo(w)
}

func (doc *document) saveProgram(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return core.WrapError(err, core.EINVALID, "cannot create %s", name)
	}
	if _, err = doc.writeProgram(f); err != nil {
		f.Close()
		return core.WrapError(err, core.EINTERNAL, "cannot write %s", name)
	}
	return f.Close()
}

// savePreview writes one PNG per page. With more than one page, files are
// numbered: name-1.png, name-2.png, ...
func (doc *document) savePreview(name string) error {
	images := preview.RenderPages(doc.prog, doc.page().Max)
	base := strings.TrimSuffix(name, filepath.Ext(name))
	for i, img := range images {
		fname := base + ".png"
		if len(images) > 1 {
			fname = fmt.Sprintf("%s-%d.png", base, i+1)
		}
		f, err := os.Create(fname)
		if err != nil {
			return core.WrapError(err, core.EINVALID, "cannot create %s", fname)
		}
		if err = preview.WritePNG(f, img); err != nil {
			f.Close()
			return err
		}
		if err = f.Close(); err != nil {
			return err
		}
		tracer().Infof("page %d written to %s", i+1, fname)
	}
	return nil
}
