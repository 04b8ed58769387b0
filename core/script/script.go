// Package script classifies code points by writing system.
//
// Two range sets exist on purpose. Paragraph flags written at import time use
// only the primary Arabic block (U+0600–U+06FF); phrase extraction during audit
// also accepts the supplementary blocks. A paragraph made only of supplementary
// characters is therefore stored with is_arabic = 0 while the audit still counts
// its phrases. Changing either side changes persisted flag counts.
package script

import (
	"fmt"
	"strings"
	"unicode"
)

// Arabic is the primary Arabic block.
var Arabic = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0600, Hi: 0x06FF, Stride: 1},
	},
}

// ArabicExtended is the primary block plus Arabic Supplement, Arabic
// Extended-A and both presentation-form blocks.
var ArabicExtended = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0600, Hi: 0x06FF, Stride: 1},
		{Lo: 0x0750, Hi: 0x077F, Stride: 1},
		{Lo: 0x08A0, Hi: 0x08FF, Stride: 1},
		{Lo: 0xFB50, Hi: 0xFDFF, Stride: 1},
		{Lo: 0xFE70, Hi: 0xFEFF, Stride: 1},
	},
}

// IsArabicChar reports whether r is in the primary Arabic block.
func IsArabicChar(r rune) bool {
	return r >= 0x0600 && r <= 0x06FF
}

// IsArabicExtended reports whether r is in any recognized Arabic block.
func IsArabicExtended(r rune) bool {
	return unicode.Is(ArabicExtended, r)
}

// ContainsArabic reports whether s has at least one primary-block code point.
// This is the rule behind the stored is_arabic flag.
func ContainsArabic(s string) bool {
	for _, r := range s {
		if IsArabicChar(r) {
			return true
		}
	}
	return false
}

// ContainsArabicExtended is ContainsArabic over the extended blocks.
func ContainsArabicExtended(s string) bool {
	for _, r := range s {
		if IsArabicExtended(r) {
			return true
		}
	}
	return false
}

// RegexpClass renders the extended ranges as the body of a regexp character
// class, so pattern-based matchers and the rune predicates share one table.
func RegexpClass() string {
	return rangeClass(ArabicExtended)
}

func rangeClass(t *unicode.RangeTable) string {
	var b strings.Builder
	for _, r := range t.R16 {
		fmt.Fprintf(&b, `\x{%04X}-\x{%04X}`, r.Lo, r.Hi)
	}
	return b.String()
}
