package nameparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSeasonFolder(t *testing.T) {
	tests := []struct {
		name   string
		season int
		ok     bool
	}{
		{"S01", 1, true},
		{"s3", 3, true},
		{"Season 2", 2, true},
		{"season10", 10, true},
		{"第2季", 2, true},
		{"第 4 部", 4, true},
		{"第二季", 2, true},
		{"第十季", 10, true},
		{"第十九季", 19, true},
		{"S02.1080p", 2, true},
		{"庆余年2", 2, true},
		{"Fargo 2 (2015)", 2, true},
		{"Extras", 0, false},
		{"幕后花絮", 0, false},
		{"2160p", 0, false},
	}
	for _, tt := range tests {
		season, ok := ParseSeasonFolder(tt.name)
		assert.Equal(t, tt.ok, ok, "ok for %q", tt.name)
		if tt.ok {
			assert.Equal(t, tt.season, season, "season of %q", tt.name)
		}
	}
}

func TestSeasonFolderName(t *testing.T) {
	assert.Equal(t, "S01", SeasonFolderName(1))
	assert.Equal(t, "S12", SeasonFolderName(12))
}
