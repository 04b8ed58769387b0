// Package suffix finds sacred terms written with an apostrophe-attached
// grammatical suffix ("Allah'ın", "Kur'an'ın") so a reviewer can check them.
//
// The scanner is a candidate detector. A term followed by an apostrophe and
// letters is reported whether or not the letters are really a suffix.
package suffix

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/FocuswithJustin/risale/core/lexicon"
)

// separators are the apostrophe forms accepted between term and suffix.
const separators = `'’`

// suffixChars is the alphabet a suffix may be written in.
const suffixChars = `a-zA-Z0-9ğüşıöçĞÜŞİÖÇ`

// Scanner matches a fixed list of terms followed by a suffix.
type Scanner struct {
	re *regexp.Regexp
}

// dottedI maps each Turkish I variant to a class of all four. Simple case
// folding pairs I with i and İ, ı with nothing, so (?i) alone misses
// "HALIK" for "Halık" and "ilah" for "İlah".
var dottedI = strings.NewReplacer(
	"I", "[Iiİı]",
	"i", "[Iiİı]",
	"İ", "[Iiİı]",
	"ı", "[Iiİı]",
)

// NewScanner compiles terms into one case-insensitive alternation. Terms are
// tried in the given order, so an earlier entry wins over a later one that
// matches at the same position. I, i, İ and ı are interchangeable.
func NewScanner(terms []string) *Scanner {
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = dottedI.Replace(regexp.QuoteMeta(t))
	}
	pattern := `(?i)(?:` + strings.Join(quoted, "|") + `)[` + separators + `][` + suffixChars + `]+`
	return &Scanner{re: regexp.MustCompile(pattern)}
}

var defaultScanner = NewScanner(lexicon.SacredTerms)

// Default returns the scanner built from lexicon.SacredTerms.
func Default() *Scanner {
	return defaultScanner
}

// Scan returns every term+suffix occurrence in text, in order. A match only
// counts when the character before the term is not a word character; when a
// match is rejected the search resumes one character later, so a term that
// starts inside the rejected text is still found.
func (s *Scanner) Scan(text string) []string {
	var out []string
	pos := 0
	for pos < len(text) {
		loc := s.re.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if !boundaryBefore(text, start) {
			_, size := utf8.DecodeRuneInString(text[start:])
			pos = start + size
			continue
		}
		out = append(out, text[start:end])
		pos = end
	}
	return out
}

// ScanInto adds every occurrence in text to set and returns how many
// occurrences were seen, including ones already present.
func (s *Scanner) ScanInto(text string, set Set) int {
	found := s.Scan(text)
	for _, m := range found {
		set.Add(m)
	}
	return len(found)
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordChar(r)
}

func isWordChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// Set is a deduplicating collection of occurrence strings. Entries are kept
// exactly as written; case and apostrophe variants are distinct.
type Set map[string]struct{}

// NewSet returns an empty Set.
func NewSet() Set {
	return make(Set)
}

// Add inserts s.
func (s Set) Add(v string) {
	s[v] = struct{}{}
}

// Has reports whether v is present.
func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Len returns the number of distinct entries.
func (s Set) Len() int {
	return len(s)
}

// Sorted returns the entries in byte order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Sample returns at most n entries from Sorted.
func (s Set) Sample(n int) []string {
	all := s.Sorted()
	if n >= 0 && len(all) > n {
		all = all[:n]
	}
	return all
}
