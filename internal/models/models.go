package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ──────────────────── Enums ────────────────────

type ActionType string

const (
	ActionRename ActionType = "rename"
	ActionMove   ActionType = "move"
	ActionMkdir  ActionType = "mkdir"
	ActionClean  ActionType = "clean"
	ActionSkip   ActionType = "skip"
	ActionInfo   ActionType = "info"
	ActionError  ActionType = "error"
)

type RunKind string

const (
	RunKindMovie  RunKind = "movie"
	RunKindSeries RunKind = "series"
	RunKindClean  RunKind = "clean"
)

type RunStatus string

const (
	RunStatusRunning RunStatus = "running"
	RunStatusDone    RunStatus = "done"
	RunStatusFailed  RunStatus = "failed"
)

// ──────────────────── Directory Entries ────────────────────

// DirEntry is one item returned by a drive listing. It is an immutable
// snapshot; only ID is stable across calls.
type DirEntry struct {
	ID        string `json:"file_id"`
	ParentID  string `json:"parent_file_id"`
	Name      string `json:"name"`
	IsDir     bool   `json:"is_dir"`
	Size      int64  `json:"size"`
	UpdatedAt string `json:"updated_at"`
}

// Ext returns the lowercased extension of the entry name, dot included.
// Empty for directories and names without a dot.
func (e DirEntry) Ext() string {
	if e.IsDir {
		return ""
	}
	idx := strings.LastIndex(e.Name, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(e.Name[idx:])
}

// ──────────────────── Users ────────────────────

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsAdmin      bool      `json:"is_admin" db:"is_admin"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// ──────────────────── Resolution Results ────────────────────

// MovieMeta is the resolved identity of one movie folder or file.
// TMDBID 0 means the provider never confirmed the match.
type MovieMeta struct {
	Title  string `json:"title"`
	Year   *int   `json:"year,omitempty"`
	TMDBID int    `json:"tmdb_id"`
}

// SeriesMeta is the resolved identity of one series folder.
type SeriesMeta struct {
	Name   string `json:"name"`
	Year   *int   `json:"year,omitempty"`
	TMDBID int    `json:"tmdb_id"`
}

// EpisodeRef is the season/episode extracted from one file name.
// A nil Episode means the file was not recognized as an episode and must
// be left alone. A nil Season means "caller decides" (default season 1
// at the series root, the folder's own number inside a season folder).
type EpisodeRef struct {
	Season  *int `json:"season,omitempty"`
	Episode *int `json:"episode,omitempty"`
}

// ──────────────────── Run Log ────────────────────

// ActionLog is one line of a reorganization run's audit trail. Every
// mutation the planner performs (or would perform under dry-run)
// produces exactly one entry, in execution order.
type ActionLog struct {
	Type        ActionType `json:"type"`
	Description string     `json:"description"`
}

// OrganizeRequest is the caller's contract for one organize/clean
// invocation. FolderName is trusted as given; the planner renames
// relative to it without re-fetching.
type OrganizeRequest struct {
	FolderID   string `json:"folder_id"`
	FolderName string `json:"folder_name"`
	DryRun     bool   `json:"dry_run"`
}

// OrganizeResult is the response for one finished run.
type OrganizeResult struct {
	Success bool        `json:"success"`
	Logs    []ActionLog `json:"logs"`
}

// OrganizeRun is the persisted summary of one finished run.
type OrganizeRun struct {
	ID         uuid.UUID   `json:"id" db:"id"`
	Kind       RunKind     `json:"kind" db:"kind"`
	FolderID   string      `json:"folder_id" db:"folder_id"`
	FolderName string      `json:"folder_name" db:"folder_name"`
	DryRun     bool        `json:"dry_run" db:"dry_run"`
	Status     RunStatus   `json:"status" db:"status"`
	Error      *string     `json:"error,omitempty" db:"error"`
	Logs       []ActionLog `json:"logs" db:"-"`
	StartedAt  time.Time   `json:"started_at" db:"started_at"`
	FinishedAt *time.Time  `json:"finished_at,omitempty" db:"finished_at"`
}
