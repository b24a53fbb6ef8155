package nameparse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/lzhang-md/drivetidy/internal/models"
)

// ──────────────────── Episode Patterns ────────────────────
// The root-context cascade runs in this fixed order; first match wins.

var (
	sxxEyyRx = regexp.MustCompile(`(?i)S(\d{1,2})\s*E(\d{1,3})`)
	cnEpRx   = regexp.MustCompile(`第\s*(\d{1,4})\s*[集话回]`)
	epNumRx  = regexp.MustCompile(`(?i)\b(?:EP|E)(\d{1,3})\b`)

	// Leading number after zero or more bracketed groups, followed by
	// whitespace. The 1–3 digit cap keeps 4-digit years out.
	leadingNumRx = regexp.MustCompile(`^(?:\s*(?:\[[^\]]*\]|【[^】]*】))*\s*(\d{1,3})\s`)

	trailingSepNumRx   = regexp.MustCompile(`[-_.](\d{1,3})$`)
	trailingSpaceNumRx = regexp.MustCompile(`[\s\-_](\d{1,3})$`)
	bareDigitsRx       = regexp.MustCompile(`^\d{1,3}$`)

	// Bounded digit run for the in-season fallback; a 4+ digit run is
	// never an episode number.
	anyShortNumRx = regexp.MustCompile(`(?:^|\D)(\d{1,3})(?:\D|$)`)
)

// stripExt removes the final .ext suffix from a file name.
func stripExt(name string) string {
	if idx := strings.LastIndex(name, "."); idx > 0 {
		return name[:idx]
	}
	return name
}

// ParseEpisode extracts a season/episode reference from a file name.
//
// With inSeasonFolder false the full cascade runs and a recognized
// SxxEyy supplies the season. With inSeasonFolder true the season is
// owned by the enclosing folder: any season digits in the name are
// informational only and the reduced cascade extracts the episode.
func ParseEpisode(name string, inSeasonFolder bool) models.EpisodeRef {
	stem := strings.TrimSpace(stripExt(name))

	if inSeasonFolder {
		return parseEpisodeInSeason(stem)
	}
	return parseEpisodeRoot(stem)
}

func parseEpisodeRoot(stem string) models.EpisodeRef {
	if m := sxxEyyRx.FindStringSubmatch(stem); m != nil {
		s, _ := strconv.Atoi(m[1])
		e, _ := strconv.Atoi(m[2])
		return models.EpisodeRef{Season: &s, Episode: &e}
	}
	if m := cnEpRx.FindStringSubmatch(stem); m != nil {
		e, _ := strconv.Atoi(m[1])
		return models.EpisodeRef{Episode: &e}
	}
	if m := epNumRx.FindStringSubmatch(stem); m != nil {
		e, _ := strconv.Atoi(m[1])
		return models.EpisodeRef{Episode: &e}
	}
	if m := leadingNumRx.FindStringSubmatch(stem); m != nil {
		e, _ := strconv.Atoi(m[1])
		return models.EpisodeRef{Episode: &e}
	}
	if m := trailingSepNumRx.FindStringSubmatch(stem); m != nil {
		e, _ := strconv.Atoi(m[1])
		return models.EpisodeRef{Episode: &e}
	}
	if m := trailingSpaceNumRx.FindStringSubmatch(stem); m != nil {
		e, _ := strconv.Atoi(m[1])
		return models.EpisodeRef{Episode: &e}
	}
	if bareDigitsRx.MatchString(stem) {
		e, _ := strconv.Atoi(stem)
		return models.EpisodeRef{Episode: &e}
	}
	return models.EpisodeRef{}
}

func parseEpisodeInSeason(stem string) models.EpisodeRef {
	if m := sxxEyyRx.FindStringSubmatch(stem); m != nil {
		e, _ := strconv.Atoi(m[2])
		return models.EpisodeRef{Episode: &e}
	}
	if m := epNumRx.FindStringSubmatch(stem); m != nil {
		e, _ := strconv.Atoi(m[1])
		return models.EpisodeRef{Episode: &e}
	}
	if m := cnEpRx.FindStringSubmatch(stem); m != nil {
		e, _ := strconv.Atoi(m[1])
		return models.EpisodeRef{Episode: &e}
	}
	if m := anyShortNumRx.FindStringSubmatch(stem); m != nil {
		e, _ := strconv.Atoi(m[1])
		return models.EpisodeRef{Episode: &e}
	}
	return models.EpisodeRef{}
}
