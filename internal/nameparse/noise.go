package nameparse

import (
	"regexp"
	"strconv"
	"strings"
)

// ──────────────────── Noise Patterns ────────────────────
// Organized by category; applied in order when cleaning movie titles.

var movieNoisePatterns = []*regexp.Regexp{
	// Resolution
	regexp.MustCompile(`(?i)\b(480p|720p|1080p|2160p|4k|8k)\b`),
	// Source
	regexp.MustCompile(`(?i)\b(BluRay|REMUX|WEB-?DL|WEBRip|HDTV|DVDRip|BDRip|UHD)\b`),
	// Codec / audio
	regexp.MustCompile(`(?i)\b(H\.?264|H\.?265|x264|x265|HEVC|AVC|DDP|AAC|AC3|DTS-HD|TrueHD|Atmos|HDR|DV|DoVi|10bit|10-bit)\b`),
	// Edition / release
	regexp.MustCompile(`(?i)\b(Repack|Proper|Limited|Complete|Uncut|Extended|Director's Cut|DC)\b`),
	// Bracketed spans, ASCII and full-width
	regexp.MustCompile(`\[.*?\]|\(.*?\)|【.*?】|〔.*?〕`),
	// Collection markers
	regexp.MustCompile(`(?i)\d+(?:-\d+)?部|合集|系列|Collection|Trilogy|Saga|动漫`),
	// Generic markers
	regexp.MustCompile(`电影|制片厂`),
}

// Year token bounded by start/end, whitespace, dots or brackets on both sides.
var yearRx = regexp.MustCompile(`(?:^|[.\s(\[【（)\]】）])((?:19|20)\d{2})(?:$|[.\s(\[【（)\]】）])`)

// Season tokens stripped from series search queries.
var seriesSeasonTokenRx = regexp.MustCompile(`(?i)S\d{1,2}(?:-S\d{1,2})?|Season\s*\d+|第?\s*\d+(?:-\d+)?\s*[季部]`)

// Reduced quality set for series queries.
var seriesQualityTokenRx = regexp.MustCompile(`(?i)1080p|2160p|4k|8k|HDR|DV|WEB-?DL|H\d{3}|AAC|DDP`)

var bracketSpanRx = regexp.MustCompile(`\[.*?\]|\(.*?\)|【.*?】`)

// CleanMovieNoise strips release noise from a movie title candidate:
// quality/source/codec/edition tokens, bracketed spans and collection
// markers, then turns dots into spaces.
func CleanMovieNoise(text string) string {
	t := text
	for _, rx := range movieNoisePatterns {
		t = rx.ReplaceAllString(t, " ")
	}
	t = strings.ReplaceAll(t, ".", " ")
	return strings.TrimSpace(t)
}

// ExtractMovieInfo pulls a (title, year) guess out of a raw folder or
// file name. The first bounded 19xx/20xx token becomes the year; only
// text before it is considered part of the title, anything after is
// release noise.
func ExtractMovieInfo(rawName string) (title string, year *int) {
	t := ToHalfWidth(rawName)

	if loc := yearRx.FindStringSubmatchIndex(t); loc != nil {
		y, err := strconv.Atoi(t[loc[2]:loc[3]])
		if err == nil {
			year = &y
		}
		title = CleanMovieNoise(t[:loc[0]])
	} else {
		title = CleanMovieNoise(t)
	}

	return NormalizeSpaces(title), year
}

// CleanSeriesQuery reduces a series folder name to a provider search
// query: season tokens, quality tokens and bracketed spans removed,
// dots turned into spaces.
func CleanSeriesQuery(text string) string {
	t := ToHalfWidth(text)
	t = seriesSeasonTokenRx.ReplaceAllString(t, " ")
	t = seriesQualityTokenRx.ReplaceAllString(t, " ")
	t = bracketSpanRx.ReplaceAllString(t, " ")
	t = strings.ReplaceAll(t, ".", " ")
	return NormalizeSpaces(t)
}

var collectionMarkerRx = regexp.MustCompile(`(?i)\d+部|合集|系列|Collection|Trilogy|Saga`)

// IsCollection reports whether a folder name carries a marker word that
// identifies it as holding multiple distinct movies.
func IsCollection(name string) bool {
	return collectionMarkerRx.MatchString(name)
}

// ExtractQualityTag returns the display quality suffix for a filename,
// preferring 4K over 1080p over 720p. At most one tag; empty when the
// name carries no recognizable resolution marker.
func ExtractQualityTag(filename string) string {
	lower := strings.ToLower(filename)
	switch {
	case strings.Contains(lower, "4k") || strings.Contains(lower, "2160p"):
		return "4K"
	case strings.Contains(lower, "1080p"):
		return "1080p"
	case strings.Contains(lower, "720p"):
		return "720p"
	}
	return ""
}
