package nameparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEpisodeRoot(t *testing.T) {
	tests := []struct {
		name    string
		season  int // 0 = nil expected
		episode int // 0 = nil expected
	}{
		{"Show.S01E05.mkv", 1, 5},
		{"show s2e12 1080p.mp4", 2, 12},
		{"第 8 集.mkv", 0, 8},
		{"某剧第103话.mp4", 0, 103},
		{"Show.EP07.mkv", 0, 7},
		{"Show E3.mkv", 0, 3},
		{"[SubGroup] 03 title.mp4", 0, 3},
		{"03 something.mp4", 0, 3},
		{"show-05.mkv", 0, 5},
		{"show 12.mkv", 0, 12},
		{"007.mkv", 0, 7},
		// A 4-digit stem is a year, never an episode.
		{"2020.mkv", 0, 0},
		{"random name.mkv", 0, 0},
	}
	for _, tt := range tests {
		ref := ParseEpisode(tt.name, false)
		if tt.episode == 0 {
			assert.Nil(t, ref.Episode, "episode of %q", tt.name)
		} else {
			require.NotNil(t, ref.Episode, "episode of %q", tt.name)
			assert.Equal(t, tt.episode, *ref.Episode, "episode of %q", tt.name)
		}
		if tt.season == 0 {
			assert.Nil(t, ref.Season, "season of %q", tt.name)
		} else {
			require.NotNil(t, ref.Season, "season of %q", tt.name)
			assert.Equal(t, tt.season, *ref.Season, "season of %q", tt.name)
		}
	}
}

func TestParseEpisodeInSeasonFolder(t *testing.T) {
	tests := []struct {
		name    string
		episode int
	}{
		// Season digits in the name are informational; only the episode
		// is extracted.
		{"Show.S03E09.mkv", 9},
		{"EP11.mkv", 11},
		{"第5集.mkv", 5},
		{"intro 7 final.mkv", 7},
		{"no digits here.mkv", 0},
		// 4-digit runs are not episode numbers.
		{"1080p promo.mkv", 0},
	}
	for _, tt := range tests {
		ref := ParseEpisode(tt.name, true)
		assert.Nil(t, ref.Season, "season of %q", tt.name)
		if tt.episode == 0 {
			assert.Nil(t, ref.Episode, "episode of %q", tt.name)
		} else {
			require.NotNil(t, ref.Episode, "episode of %q", tt.name)
			assert.Equal(t, tt.episode, *ref.Episode, "episode of %q", tt.name)
		}
	}
}
