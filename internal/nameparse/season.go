package nameparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ──────────────────── Season Folder Detection ────────────────────
// Ordered rules over an existing subfolder name; first match wins.

var (
	seasonExactRx   = regexp.MustCompile(`(?i)^S(\d{1,2})$`)
	seasonWordRx    = regexp.MustCompile(`(?i)Season\s*(\d+)`)
	seasonCnDigitRx = regexp.MustCompile(`第\s*(\d+)\s*[季部]`)
	seasonCnNumRx   = regexp.MustCompile(`第([一二三四五六七八九十]+)[季部]`)
	seasonEmbedRx   = regexp.MustCompile(`(?i)S(\d{1,2})(?:\D|$)`)

	// Trailing bare number glued to (or spaced from) a name, optionally
	// followed by a parenthesized year: 庆余年2, Fargo 2 (2015).
	seasonTrailNumRx = regexp.MustCompile(`[\p{Han}a-zA-Z\s](\d{1,2})\s*(?:\((?:19|20)\d{2}\))?\s*$`)
)

var cnNumerals = map[rune]int{
	'一': 1, '二': 2, '三': 3, '四': 4, '五': 5,
	'六': 6, '七': 7, '八': 8, '九': 9, '十': 10,
}

// parseCnNumeral converts 一..十九 to an int; 0 when out of range.
func parseCnNumeral(s string) int {
	runes := []rune(s)
	switch len(runes) {
	case 1:
		return cnNumerals[runes[0]]
	case 2:
		if runes[0] == '十' {
			return 10 + cnNumerals[runes[1]]
		}
	}
	return 0
}

// ParseSeasonFolder decides whether a subfolder name denotes a season
// and extracts its number. ok is false for non-season folders.
func ParseSeasonFolder(name string) (season int, ok bool) {
	n := strings.TrimSpace(ToHalfWidth(name))

	if m := seasonExactRx.FindStringSubmatch(n); m != nil {
		s, _ := strconv.Atoi(m[1])
		return s, true
	}
	if m := seasonWordRx.FindStringSubmatch(n); m != nil {
		s, _ := strconv.Atoi(m[1])
		return s, true
	}
	if m := seasonCnDigitRx.FindStringSubmatch(n); m != nil {
		s, _ := strconv.Atoi(m[1])
		return s, true
	}
	if m := seasonCnNumRx.FindStringSubmatch(n); m != nil {
		if s := parseCnNumeral(m[1]); s > 0 {
			return s, true
		}
	}
	if m := seasonEmbedRx.FindStringSubmatch(n); m != nil {
		s, _ := strconv.Atoi(m[1])
		return s, true
	}
	if m := seasonTrailNumRx.FindStringSubmatch(n); m != nil {
		s, _ := strconv.Atoi(m[1])
		if s > 0 {
			return s, true
		}
	}
	return 0, false
}

// SeasonFolderName is the canonical zero-padded form season folders are
// renamed to.
func SeasonFolderName(season int) string {
	return fmt.Sprintf("S%02d", season)
}
