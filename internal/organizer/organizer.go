// Package organizer plans and executes the reorganization of movie and
// series folders on a remote drive: junk removal, title resolution,
// folder/file renames and season/episode reconciliation.
package organizer

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/lzhang-md/drivetidy/internal/junk"
	"github.com/lzhang-md/drivetidy/internal/metadata"
	"github.com/lzhang-md/drivetidy/internal/models"
	"github.com/lzhang-md/drivetidy/internal/store"
)

// Notifier receives progress events for live streaming. May be nil.
type Notifier interface {
	Broadcast(event string, data any)
}

const (
	defaultMaxCleanDepth = 8
	defaultMaxCleanItems = 5000

	dryRunIDPrefix = "dry-run-id-"
)

// Organizer wires the parsing core to the external collaborators.
type Organizer struct {
	store         store.DirectoryStore
	resolver      *metadata.Resolver
	junk          *junk.Classifier
	notifier      Notifier
	maxCleanDepth int
	maxCleanItems int
}

type Option func(*Organizer)

func WithNotifier(n Notifier) Option {
	return func(o *Organizer) { o.notifier = n }
}

func WithCleanLimits(maxDepth, maxItems int) Option {
	return func(o *Organizer) {
		if maxDepth > 0 {
			o.maxCleanDepth = maxDepth
		}
		if maxItems > 0 {
			o.maxCleanItems = maxItems
		}
	}
}

func New(st store.DirectoryStore, resolver *metadata.Resolver, classifier *junk.Classifier, opts ...Option) *Organizer {
	o := &Organizer{
		store:         st,
		resolver:      resolver,
		junk:          classifier,
		maxCleanDepth: defaultMaxCleanDepth,
		maxCleanItems: defaultMaxCleanItems,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ──────────────────── Run State ────────────────────

// run carries the per-invocation state: the audit log, the dry-run flag
// and the sentinel id counter for folders that only exist on paper.
type run struct {
	o        *Organizer
	dryRun   bool
	logs     []models.ActionLog
	sentinel int
}

func (o *Organizer) newRun(dryRun bool) *run {
	return &run{o: o, dryRun: dryRun}
}

func (r *run) log(t models.ActionType, format string, args ...any) {
	entry := models.ActionLog{Type: t, Description: fmt.Sprintf(format, args...)}
	r.logs = append(r.logs, entry)
	if r.o.notifier != nil {
		r.o.notifier.Broadcast("run:log", entry)
	}
}

// mutation prefixes the description with [DRY] when the store call was
// not executed. Exactly one entry per (would-be) mutation.
func (r *run) mutation(t models.ActionType, format string, args ...any) {
	desc := fmt.Sprintf(format, args...)
	if r.dryRun {
		desc = "[DRY] " + desc
	}
	r.log(t, "%s", desc)
}

func (r *run) result() *models.OrganizeResult {
	return &models.OrganizeResult{Success: true, Logs: r.logs}
}

// sentinelID hands out placeholder ids for folders a dry-run would have
// created, so downstream steps can proceed without touching the store.
func (r *run) sentinelID() string {
	r.sentinel++
	return fmt.Sprintf("%s%d", dryRunIDPrefix, r.sentinel)
}

func isSentinelID(id string) bool {
	return strings.HasPrefix(id, dryRunIDPrefix)
}

// ──────────────────── Store Wrappers ────────────────────

// rename is a no-op (no call, no log) when the target equals the
// current name.
func (r *run) rename(ctx context.Context, id, oldName, newName string) error {
	if oldName == newName {
		return nil
	}
	if !r.dryRun {
		if err := r.o.store.Rename(ctx, id, newName); err != nil {
			return err
		}
	}
	r.mutation(models.ActionRename, "Rename: %s -> %s", oldName, newName)
	return nil
}

// renameSoft logs rename failures instead of propagating, so one bad
// item never aborts its siblings.
func (r *run) renameSoft(ctx context.Context, id, oldName, newName string) {
	if err := r.rename(ctx, id, oldName, newName); err != nil {
		log.Printf("Organizer: rename %s failed: %v", id, err)
		r.log(models.ActionError, "Rename failed: %s -> %s (%v)", oldName, newName, err)
	}
}

func (r *run) mkdir(ctx context.Context, parentID, name string) (string, error) {
	if r.dryRun {
		r.mutation(models.ActionMkdir, "Create folder: %s", name)
		return r.sentinelID(), nil
	}
	id, err := r.o.store.Mkdir(ctx, parentID, name)
	if err != nil {
		return "", err
	}
	r.mutation(models.ActionMkdir, "Create folder: %s", name)
	return id, nil
}

func (r *run) move(ctx context.Context, ids []string, destID, desc string) error {
	if !r.dryRun {
		if err := r.o.store.Move(ctx, ids, destID); err != nil {
			return err
		}
	}
	r.mutation(models.ActionMove, "Move: %s", desc)
	return nil
}

// removeJunk logs each junk entry and issues one batched delete. Real
// removal blocks until the backend reports completion (store contract),
// so dependent steps see the folder without its clutter.
func (r *run) removeJunk(ctx context.Context, entries []models.DirEntry) error {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
		r.mutation(models.ActionClean, "Remove junk: %s", e.Name)
	}
	if len(ids) == 0 || r.dryRun {
		return nil
	}
	return r.o.store.Remove(ctx, ids)
}

// listDir treats dry-run sentinel folders as empty instead of asking
// the store about ids it never created.
func (r *run) listDir(ctx context.Context, folderID string) ([]models.DirEntry, error) {
	if isSentinelID(folderID) {
		return nil, nil
	}
	return r.o.store.ListDir(ctx, folderID)
}

// ──────────────────── Shared Naming ────────────────────

func movieFolderName(meta models.MovieMeta) string {
	switch {
	case meta.TMDBID != 0 && meta.Year != nil:
		return fmt.Sprintf("%s (%d) [TMDB-%d]", meta.Title, *meta.Year, meta.TMDBID)
	case meta.Year != nil:
		return fmt.Sprintf("%s (%d)", meta.Title, *meta.Year)
	default:
		return meta.Title
	}
}

func movieFileName(meta models.MovieMeta, qualityTag, ext string) string {
	base := meta.Title
	if meta.Year != nil {
		base = fmt.Sprintf("%s (%d)", meta.Title, *meta.Year)
	}
	if qualityTag != "" {
		return base + " - " + qualityTag + ext
	}
	return base + ext
}

func seriesFolderName(meta models.SeriesMeta) string {
	if meta.Year != nil && meta.TMDBID != 0 {
		return fmt.Sprintf("%s (%d) [TMDB-%d]", meta.Name, *meta.Year, meta.TMDBID)
	}
	return meta.Name
}

func episodeFileName(seriesName string, season, episode int, qualityTag, ext string) string {
	if qualityTag != "" {
		return fmt.Sprintf("%s - S%02dE%02d - %s%s", seriesName, season, episode, qualityTag, ext)
	}
	return fmt.Sprintf("%s - S%02dE%02d%s", seriesName, season, episode, ext)
}
