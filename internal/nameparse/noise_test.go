package nameparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMovieInfo(t *testing.T) {
	tests := []struct {
		name  string
		title string
		year  int // 0 = no year expected
	}{
		{"Inception.2010.1080p.BluRay.x264.mkv", "Inception", 2010},
		{"盗梦空间.2010.1080p", "盗梦空间", 2010},
		{"The.Matrix.1999.REMUX", "The Matrix", 1999},
		{"Some Movie", "Some Movie", 0},
		{"Movie.Title.2020.2160p.WEB-DL.trailing.junk", "Movie Title", 2020},
		{"【首发】大片（2021）", "大片", 2021},
	}
	for _, tt := range tests {
		title, year := ExtractMovieInfo(tt.name)
		assert.Equal(t, tt.title, title, "title of %q", tt.name)
		if tt.year == 0 {
			assert.Nil(t, year, "year of %q", tt.name)
		} else {
			require.NotNil(t, year, "year of %q", tt.name)
			assert.Equal(t, tt.year, *year, "year of %q", tt.name)
		}
	}
}

func TestExtractMovieInfoOnlyFirstYear(t *testing.T) {
	title, year := ExtractMovieInfo("Blade Runner 2049 (2017) 4K")
	require.NotNil(t, year)
	// "2049" is bounded by spaces on both sides, so it is the first match
	// and everything after it (including the release year) is dropped.
	assert.Equal(t, 2049, *year)
	assert.Equal(t, "Blade Runner", title)
}

func TestCleanMovieNoise(t *testing.T) {
	assert.Equal(t, "Dune", CleanMovieNoise("Dune.2160p.REMUX.HDR.x265"))
	assert.Equal(t, "流浪地球", CleanMovieNoise("流浪地球合集[4K]"))
	assert.Equal(t, "Alien", CleanMovieNoise("Alien (Director's Cut) Trilogy"))
}

func TestCleanSeriesQuery(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Breaking.Bad.S01-S05.1080p.WEB-DL", "Breaking Bad"},
		{"风骚律师 第3季 [1080P]", "风骚律师"},
		{"The Wire Season 2", "The Wire"},
		{"某剧 第1-3部 4K HDR", "某剧"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanSeriesQuery(tt.in), "query for %q", tt.in)
	}
}

func TestExtractQualityTag(t *testing.T) {
	assert.Equal(t, "4K", ExtractQualityTag("Movie.2160p.1080p.mkv"), "4K wins over 1080p")
	assert.Equal(t, "4K", ExtractQualityTag("movie 4k webrip"))
	assert.Equal(t, "1080p", ExtractQualityTag("Movie.1080P.720p.mkv"))
	assert.Equal(t, "720p", ExtractQualityTag("show.720p.hdtv.mp4"))
	assert.Equal(t, "", ExtractQualityTag("plain-name.mkv"))
}
