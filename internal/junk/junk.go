// Package junk decides which directory entries are disposable clutter:
// advertising files dropped by release sites, OS metadata, sample and
// artwork folders. Directories are judged by name membership, files by
// marker substrings; neither is ever inspected by content.
package junk

import (
	"strings"

	"github.com/lzhang-md/drivetidy/internal/models"
)

// Ruleset is the immutable classification data a Classifier runs on.
// Callers may substitute their own sets; DefaultRuleset covers the
// common release-site clutter.
type Ruleset struct {
	// FileMarkers are substrings that mark a file as junk when its
	// lowercased name contains any of them.
	FileMarkers []string
	// MiscDirNames is the reserved set of junk directory names,
	// lowercased.
	MiscDirNames map[string]bool
}

// DefaultRuleset returns the built-in junk rules.
func DefaultRuleset() Ruleset {
	return Ruleset{
		FileMarkers: []string{
			"www.", ".com", ".net", ".org",
			"dygm", "dygod", "ygdy8", "piaohua",
			"迅雷", "下载", "资源", "首发", "免费", "搜索",
			".pdf", ".txt",
		},
		MiscDirNames: map[string]bool{
			"@eadir": true, "__macosx": true, ".ds_store": true,
			"sample": true, "samples": true,
			"screens": true, "screen": true, "screenshots": true,
			"extras": true, "extra": true, "bonus": true, "bts": true,
			"poster": true, "posters": true, "fanart": true,
			"thumb": true, "thumbs": true, "artwork": true,
			"cd1": true, "cd2": true,
			"subs": true, "sub": true, "subtitle": true, "subtitles": true,
			"字幕": true, "字幕组": true,
		},
	}
}

// Classifier partitions directory listings into junk and kept entries.
type Classifier struct {
	rules Ruleset
}

func NewClassifier(rules Ruleset) *Classifier {
	return &Classifier{rules: rules}
}

// IsJunk reports whether a single entry is disposable. Directories are
// junk only when their name is in the reserved set; files when their
// name contains any marker. Both checks are case-insensitive.
func (c *Classifier) IsJunk(e models.DirEntry) bool {
	lower := strings.ToLower(e.Name)
	if e.IsDir {
		return c.rules.MiscDirNames[lower]
	}
	for _, marker := range c.rules.FileMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// Partition splits entries into the IDs of junk items and the entries
// worth keeping, preserving listing order.
func (c *Classifier) Partition(entries []models.DirEntry) (junkIDs []string, kept []models.DirEntry) {
	for _, e := range entries {
		if c.IsJunk(e) {
			junkIDs = append(junkIDs, e.ID)
		} else {
			kept = append(kept, e)
		}
	}
	return junkIDs, kept
}

// JunkEntries returns the junk subset itself, for logging.
func (c *Classifier) JunkEntries(entries []models.DirEntry) []models.DirEntry {
	var out []models.DirEntry
	for _, e := range entries {
		if c.IsJunk(e) {
			out = append(out, e)
		}
	}
	return out
}
