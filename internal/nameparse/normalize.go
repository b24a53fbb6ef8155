package nameparse

import (
	"regexp"
	"strings"
)

var whitespaceRunRx = regexp.MustCompile(`\s+`)

// ToHalfWidth maps the full-width Unicode block (U+FF01–U+FF5E) onto its
// ASCII counterparts and the ideographic space (U+3000) to a regular
// space. Everything else passes through. Idempotent.
func ToHalfWidth(s string) string {
	if s == "" {
		return ""
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == 0x3000:
			return ' '
		case r >= 0xFF01 && r <= 0xFF5E:
			return r - 0xFEE0
		default:
			return r
		}
	}, s)
}

// NormalizeSpaces replaces non-breaking spaces with regular ones,
// collapses whitespace runs to a single space and trims the ends.
func NormalizeSpaces(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, " ", " ")
	return strings.TrimSpace(whitespaceRunRx.ReplaceAllString(s, " "))
}
