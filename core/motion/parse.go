package motion

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/pentype/core"
	"github.com/npillmayer/pentype/core/option"
)

// Parse reads a motion program in its line-oriented text form.
// Blank lines and comments are kept.
//
// A line which cannot be parsed results in an error with code
// core.EMALFORMED, naming the line.
func Parse(r io.Reader) (Program, error) {
	var prog Program
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		cmd, err := ParseCommand(scanner.Text())
		if err != nil {
			return nil, core.WrapError(err, core.EMALFORMED, "line %d: %q: %v",
				lineno, scanner.Text(), core.UserMessage(err))
		}
		prog = append(prog, cmd)
	}
	if err := scanner.Err(); err != nil {
		return nil, core.WrapError(err, core.EINTERNAL, "reading motion program")
	}
	tracer().Debugf("parsed motion program of %d commands", len(prog))
	return prog, nil
}

// ParseString parses a motion program from a string.
func ParseString(s string) (Program, error) {
	return Parse(strings.NewReader(s))
}

// MustParse is like ParseString, but panics on errors. It is intended for
// programs known at compile time.
func MustParse(s string) Program {
	prog, err := ParseString(s)
	if err != nil {
		panic(err)
	}
	return prog
}

// ParseCommand parses a single line.
func ParseCommand(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return blank(), nil
	}
	if strings.HasPrefix(line, "#") {
		return Comment(strings.TrimSpace(line[1:])), nil
	}
	fields := strings.Fields(strings.ToUpper(line))
	switch fields[0] {
	case "PENUP":
		return single(fields, PenUp())
	case "PENDOWN":
		return single(fields, PenDown())
	case "M7", "M07":
		return single(fields, PageBreak())
	}
	if len(fields[0]) < 2 || fields[0][0] != 'G' {
		return blank(), malformed("unknown command %s", fields[0])
	}
	code, err := strconv.Atoi(fields[0][1:])
	if err != nil {
		return blank(), malformed("unknown command %s", fields[0])
	}
	words, err := parseWords(fields[1:])
	if err != nil {
		return blank(), err
	}
	switch code {
	case 0:
		if z, ok := words['Z']; ok {
			if len(words) > 1 {
				return blank(), malformed("pen command must not carry other words")
			}
			if z == 0 {
				return PenUp(), nil
			}
			return PenDown(), nil
		}
		return positional(OpMove, words, "XY", "XY")
	case 1:
		return positional(OpLine, words, "XYF", "XY")
	case 2, 3:
		cmd, err := positional(OpArc, words, "XYIJF", "")
		if err == nil {
			err = requireWords(words, "XYIJ")
		}
		cmd.Center[0], cmd.Center[1] = words['I'], words['J']
		cmd.Clockwise = code == 2
		return cmd, err
	case 5:
		cmd, err := positional(OpCurve, words, "XYIJPQF", "")
		if err == nil {
			err = requireWords(words, "XYIJPQ")
		}
		cmd.C1[0], cmd.C1[1] = words['I'], words['J']
		cmd.C2[0], cmd.C2[1] = words['P'], words['Q']
		return cmd, err
	}
	return blank(), malformed("unsupported command %s", fields[0])
}

func single(fields []string, cmd Command) (Command, error) {
	if len(fields) > 1 {
		return blank(), malformed("%s does not take arguments", fields[0])
	}
	return cmd, nil
}

func parseWords(fields []string) (map[byte]float64, error) {
	words := make(map[byte]float64, len(fields))
	for _, f := range fields {
		if len(f) < 2 {
			return nil, malformed("incomplete word %q", f)
		}
		letter := f[0]
		if _, dup := words[letter]; dup {
			return nil, malformed("duplicate word %c", letter)
		}
		v, err := strconv.ParseFloat(f[1:], 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, malformed("not a number: %q", f)
		}
		words[letter] = v
	}
	return words, nil
}

// positional creates a command from words, accepting only the letters in
// allowed and requiring at least one of oneOf (if non-empty).
func positional(op Op, words map[byte]float64, allowed, oneOf string) (Command, error) {
	cmd := blank()
	cmd.Op = op
	for letter := range words {
		if !strings.ContainsRune(allowed, rune(letter)) {
			return blank(), malformed("word %c not allowed for %s", letter, op)
		}
	}
	if oneOf != "" {
		found := false
		for i := 0; i < len(oneOf); i++ {
			_, ok := words[oneOf[i]]
			found = found || ok
		}
		if !found {
			return blank(), malformed("%s needs one of %s", op, oneOf)
		}
	}
	cmd.X = optWord(words, 'X')
	cmd.Y = optWord(words, 'Y')
	cmd.Feed = optWord(words, 'F')
	return cmd, nil
}

func requireWords(words map[byte]float64, letters string) error {
	for i := 0; i < len(letters); i++ {
		if _, ok := words[letters[i]]; !ok {
			return malformed("missing word %c", letters[i])
		}
	}
	return nil
}

func optWord(words map[byte]float64, letter byte) option.Float64T {
	if v, ok := words[letter]; ok {
		return option.SomeFloat64(v)
	}
	return option.Float64()
}

func malformed(format string, v ...interface{}) error {
	return core.Error(core.EMALFORMED, format, v...)
}
