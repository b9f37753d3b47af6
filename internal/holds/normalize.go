package holds

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeID returns the lookup key for a typed identifier: NFKC folded,
// trimmed and upper-cased. Letter prefixes and suffixes ("D1350", "1350B")
// are part of the key.
func NormalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(norm.NFKC.String(id)))
}

var spokenDigits = map[string]string{
	"zero": "0", "oh": "0", "o": "0",
	"one": "1", "two": "2", "three": "3", "four": "4",
	"five": "5", "six": "6", "seven": "7",
	"eight": "8", "nine": "9",
}

var spokenFillers = map[string]bool{
	"hold": true, "number": true, "num": true, "find": true, "show": true, "me": true,
}

// NormalizeSpoken turns a speech transcript such as "hold d 13 50 b" or
// "one three five zero" into an identifier key. Single letters are kept as
// prefix or suffix letters; digit words become digits.
func NormalizeSpoken(transcript string) string {
	s := strings.ToLower(norm.NFKC.String(transcript))
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var b strings.Builder
	for _, f := range fields {
		if spokenFillers[f] {
			continue
		}
		// "o" is only a zero between digits; a leading "o" stays a letter.
		if d, ok := spokenDigits[f]; ok && !(f == "o" && b.Len() == 0) {
			b.WriteString(d)
			continue
		}
		b.WriteString(f)
	}
	return NormalizeID(b.String())
}
