package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/pentype/core"
	"github.com/npillmayer/pentype/core/locate/resources"
	params "github.com/npillmayer/pentype/core/parameters"
	"github.com/pterm/pterm"
)

// Intp is our interpreter object
type Intp struct {
	repl *readline.Instance
	doc  *document
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := parseCommand(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		err, quit := intp.execute(cmd)
		if err != nil {
			pterm.Error.Println(core.UserMessage(err))
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Command codes of the interpreter
const (
	QUIT int = iota
	HELP
	TEXT
	SET
	SHOW
	PRINT
	WRITE
	PREVIEW
	CHECK
	CLEAR
	FONT
)

var commandNames = map[string]int{
	"quit":  QUIT,
	"help":  HELP,
	"set":   SET,
	"show":  SHOW,
	"print": PRINT,
	"write": WRITE,
	"png":   PREVIEW,
	"check": CHECK,
	"clear": CLEAR,
	"font":  FONT,
}

// Command is a parsed input line.
type Command struct {
	code int
	args []string
	text string
}

// parseCommand splits an input line. Lines starting with a colon are commands,
// everything else is text to append to the document.
func parseCommand(line string) (Command, error) {
	if !strings.HasPrefix(line, ":") {
		return Command{code: TEXT, text: line}, nil
	}
	fields := strings.Fields(line[1:])
	if len(fields) == 0 {
		return Command{}, errors.New("empty command")
	}
	code, ok := commandNames[strings.ToLower(fields[0])]
	if !ok {
		return Command{}, fmt.Errorf("unknown command :%s, try :help", fields[0])
	}
	return Command{code: code, args: fields[1:]}, nil
}

func (intp *Intp) execute(cmd Command) (error, bool) {
	doc := intp.doc
	switch cmd.code {
	case QUIT:
		return nil, true
	case HELP:
		help(getOptArg(cmd.args, 0))
	case TEXT:
		previous := doc.text
		if doc.text != "" {
			doc.text += "\n"
		}
		doc.text += cmd.text
		if err := doc.typeset(); err != nil {
			doc.text = previous
			return err, false
		}
		pterm.Printfln("%d commands on %d page(s)", len(doc.prog), doc.pages)
	case SET:
		if len(cmd.args) < 2 {
			return errors.New("usage: :set <parameter> <value>"), false
		}
		if err := intp.set(cmd.args[0], strings.Join(cmd.args[1:], " ")); err != nil {
			return err, false
		}
		if doc.text != "" {
			return doc.typeset(), false
		}
	case SHOW:
		pterm.Println(doc.regs.String())
	case PRINT:
		if _, err := doc.writeProgram(os.Stdout); err != nil {
			return err, false
		}
	case WRITE:
		name := getOptArg(cmd.args, 0)
		if name == "" {
			return errors.New("usage: :write <file>"), false
		}
		if err := doc.saveProgram(name); err != nil {
			return err, false
		}
		pterm.Info.Printfln("motion program written to %s", name)
	case PREVIEW:
		name := getOptArg(cmd.args, 0)
		if name == "" {
			return errors.New("usage: :png <file>"), false
		}
		return doc.savePreview(name), false
	case CHECK:
		alphabet, err := doc.alphabet()
		if err != nil {
			return err, false
		}
		if err := alphabet.Check(doc.text); err != nil {
			return err, false
		}
		pterm.Info.Println("all characters are covered by the font")
	case CLEAR:
		doc.text = ""
		doc.prog = nil
	case FONT:
		name := getOptArg(cmd.args, 0)
		if name == "" {
			pterm.Printfln("current font is %s, loaded: %s", doc.fontname,
				strings.Join(doc.registry.Names(), ", "))
			pterm.Printfln("packaged fonts: %s", strings.Join(resources.PackagedAlphabets(), ", "))
			return nil, false
		}
		if err := doc.loadFont(name); err != nil {
			return err, false
		}
		if doc.text != "" {
			return doc.typeset(), false
		}
	}
	return nil, false
}

// set changes a layout register. Parameter names and values are the same as
// in configuration files.
func (intp *Intp) set(key, value string) error {
	regs := intp.doc.regs
	_, err := params.LoadConfig(strings.NewReader(fmt.Sprintf("%s: %s\n", key, value)), regs)
	return err
}

func getOptArg(args []string, inx int) string {
	if len(args) > inx {
		return args[inx]
	}
	return ""
}

func help(topic string) {
	switch topic {
	case "set":
		pterm.Println(":set <parameter> <value>")
		pterm.Println("  Changes a layout parameter, e.g. ':set font_size 9mm' or ':set cursive true'.")
		pterm.Println("  Parameters: page, page_width, page_height, font_size, line_spacing,")
		pterm.Println("  char_spacing, punct_spacing, space_width, cursive, curvature,")
		pterm.Println("  hyphen_char, feed_rate, flatten")
	case "png":
		pterm.Println(":png <file>")
		pterm.Println("  Writes a preview image of every page.")
	default:
		pterm.Println("Type text to append it to the document, or one of")
		pterm.Println("  :set <parameter> <value>   change a layout parameter")
		pterm.Println("  :show                      list layout parameters")
		pterm.Println("  :print                     print the motion program")
		pterm.Println("  :write <file>              save the motion program")
		pterm.Println("  :png <file>                save page previews")
		pterm.Println("  :font [name]               switch to another font, or list fonts")
		pterm.Println("  :check                     check the document against the font")
		pterm.Println("  :clear                     start a new document")
		pterm.Println("  :help [topic]              this text")
		pterm.Println("  :quit                      leave")
	}
}
