package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanFolderList(t *testing.T) {
	cfg := &Config{CleanFolders: "abc123:Movies, def456:TV Shows ,ghi789"}

	folders := cfg.CleanFolderList()
	assert.Equal(t, []CleanFolder{
		{ID: "abc123", Name: "Movies"},
		{ID: "def456", Name: "TV Shows"},
		{ID: "ghi789", Name: "ghi789"},
	}, folders)
}

func TestCleanFolderListEmpty(t *testing.T) {
	cfg := &Config{CleanFolders: ""}
	assert.Empty(t, cfg.CleanFolderList())
}

func TestHasCMCC(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.HasCMCC())

	cfg.CMCCAuthorization = "Basic abc"
	assert.False(t, cfg.HasCMCC())

	cfg.CMCCCookie = "ORCHES-I-ACCOUNT-ENCRYPT=xyz"
	assert.True(t, cfg.HasCMCC())
}
