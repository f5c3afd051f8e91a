package layout

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const punctuation = ".!,?:;"

// IsPunctuation is true for characters which are set with punctuation
// spacing instead of character spacing. Punctuation never causes a word to
// be split.
func IsPunctuation(ch string) bool {
	return utf8.RuneCountInString(ch) == 1 && strings.Contains(punctuation, ch)
}

// IsDisconnected is true for characters which are never joined to their
// neighbours in cursive writing: punctuation, hyphens, apostrophes and digits.
func IsDisconnected(ch string) bool {
	if IsPunctuation(ch) || ch == "-" || ch == "'" {
		return true
	}
	r, size := utf8.DecodeRuneInString(ch)
	return size == len(ch) && unicode.IsDigit(r)
}
