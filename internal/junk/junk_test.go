package junk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lzhang-md/drivetidy/internal/models"
)

func file(name string) models.DirEntry {
	return models.DirEntry{ID: "f-" + name, Name: name}
}

func dir(name string) models.DirEntry {
	return models.DirEntry{ID: "d-" + name, Name: name, IsDir: true}
}

func TestIsJunkFiles(t *testing.T) {
	c := NewClassifier(DefaultRuleset())

	assert.True(t, c.IsJunk(file("MyMovie-DYGOD.mp4")), "marker match is case-insensitive")
	assert.True(t, c.IsJunk(file("www.example-release.mkv")))
	assert.True(t, c.IsJunk(file("高清资源.mp4")))
	assert.True(t, c.IsJunk(file("readme.txt")))
	assert.True(t, c.IsJunk(file("manual.PDF")))
	assert.False(t, c.IsJunk(file("Inception.2010.mkv")))
}

func TestIsJunkDirs(t *testing.T) {
	c := NewClassifier(DefaultRuleset())

	assert.True(t, c.IsJunk(dir("Sample")))
	assert.True(t, c.IsJunk(dir("SAMPLE")))
	assert.True(t, c.IsJunk(dir("__MACOSX")))
	assert.True(t, c.IsJunk(dir("字幕组")))
	assert.False(t, c.IsJunk(dir("Season 1")))
	// Directory names are matched whole, not by substring.
	assert.False(t, c.IsJunk(dir("sample footage archive")))
}

func TestPartition(t *testing.T) {
	c := NewClassifier(DefaultRuleset())
	entries := []models.DirEntry{
		file("movie.mkv"),
		file("ad-www.site.mkv"),
		dir("extras"),
		dir("S01"),
	}

	junkIDs, kept := c.Partition(entries)
	assert.Equal(t, []string{"f-ad-www.site.mkv", "d-extras"}, junkIDs)
	assert.Len(t, kept, 2)
	assert.Equal(t, "movie.mkv", kept[0].Name)
	assert.Equal(t, "S01", kept[1].Name)
}

func TestCustomRuleset(t *testing.T) {
	c := NewClassifier(Ruleset{
		FileMarkers:  []string{"promo"},
		MiscDirNames: map[string]bool{"trash": true},
	})

	assert.True(t, c.IsJunk(file("PROMO-clip.mp4")))
	assert.True(t, c.IsJunk(dir("Trash")))
	// Default markers are not in play when a custom set is injected.
	assert.False(t, c.IsJunk(file("something.txt")))
}
