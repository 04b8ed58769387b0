// Package segment turns raw section files into ordered paragraph units.
//
// A paragraph is one physical line. Files are split on "\n" only, each line is
// trimmed, and lines that are empty after trimming are dropped. Blank-line runs
// carry no meaning. Divider lines such as "***" are ordinary paragraphs here;
// the reader decides how to draw them.
package segment

import (
	"bytes"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/FocuswithJustin/risale/core/errors"
)

const bom = "\uFEFF"

// Decode converts file bytes to text ready for Segment. A leading byte-order
// mark selects UTF-8 or UTF-16 and is removed; without one the bytes must be
// valid UTF-8. Stray U+FEFF characters are removed everywhere and the result is
// trimmed.
func Decode(raw []byte) (string, error) {
	dec := xunicode.BOMOverride(encoding.UTF8Validator)
	out, _, err := transform.Bytes(dec, raw)
	if err != nil {
		return "", errors.NewParse("UTF-8", "", err.Error())
	}
	if !utf8.Valid(out) {
		return "", errors.NewParse("UTF-8", "", "invalid byte sequence")
	}
	text := string(bytes.ReplaceAll(out, []byte(bom), nil))
	return Trim(text), nil
}

// Segment splits text into trimmed, non-empty lines in source order.
func Segment(text string) []string {
	lines := strings.Split(text, "\n")
	paragraphs := make([]string, 0, len(lines))
	for _, line := range lines {
		if p := Trim(line); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// IsDivider reports whether p consists only of asterisks and spaces.
func IsDivider(p string) bool {
	if p == "" {
		return false
	}
	for _, r := range p {
		if r != '*' && r != ' ' {
			return false
		}
	}
	return true
}

// IsSpace is the whitespace set used for trimming: Unicode white space plus
// the ASCII information separators U+001C–U+001F.
func IsSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1C && r <= 0x1F)
}

// Trim removes leading and trailing IsSpace characters.
func Trim(s string) string {
	return strings.TrimFunc(s, IsSpace)
}
