// Package phrase extracts Arabic-script phrases from a paragraph and decides
// whether each one should render as a block or inline within Latin text.
package phrase

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/FocuswithJustin/risale/core/script"
	"github.com/FocuswithJustin/risale/core/segment"
)

// MaxInlineLength is the longest single-token phrase, in code points, that
// still renders inline.
const MaxInlineLength = 12

// joiner is what may sit between two Arabic runs of the same phrase.
const joiner = `\s\x0B\x{85}\p{Z}\x{1C}-\x{1F}.,;!?`

var (
	phrasePattern = regexp.MustCompile(
		`[` + script.RegexpClass() + `]+(?:[` + joiner + `]+[` + script.RegexpClass() + `]+)*`)
	tagPattern = regexp.MustCompile(`<[^>]+>`)
)

// Phrase is one Arabic-script phrase found in a paragraph.
type Phrase struct {
	Text  string `json:"text"`
	Block bool   `json:"block"`
}

// Extract returns the maximal Arabic phrases of paragraph in order. Phrases
// that are empty once markup tags are removed are not returned.
func Extract(paragraph string) []Phrase {
	matches := phrasePattern.FindAllString(paragraph, -1)
	if len(matches) == 0 {
		return nil
	}
	phrases := make([]Phrase, 0, len(matches))
	for _, m := range matches {
		clean := StripTags(m)
		block, ok := Classify(clean)
		if !ok {
			continue
		}
		phrases = append(phrases, Phrase{Text: segment.Trim(clean), Block: block})
	}
	return phrases
}

// Classify applies the rendering rule to s. ok is false when s is empty after
// trimming. Otherwise any whitespace makes it a block, then so does a length
// above MaxInlineLength; everything else is inline.
func Classify(s string) (block bool, ok bool) {
	s = segment.Trim(s)
	if s == "" {
		return false, false
	}
	if strings.IndexFunc(s, segment.IsSpace) >= 0 {
		return true, true
	}
	return utf8.RuneCountInString(s) > MaxInlineLength, true
}

// StripTags removes <...> markup from s.
func StripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

// Count tallies block and inline phrases of paragraph.
func Count(paragraph string) (blocks, inline int) {
	for _, p := range Extract(paragraph) {
		if p.Block {
			blocks++
		} else {
			inline++
		}
	}
	return blocks, inline
}
