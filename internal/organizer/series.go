package organizer

import (
	"context"
	"sort"

	"github.com/lzhang-md/drivetidy/internal/models"
	"github.com/lzhang-md/drivetidy/internal/nameparse"
)

// OrganizeSeries processes one series folder: resolve the series name,
// normalize season folders, sort loose episode files into seasons and
// reconcile the files already sitting inside season folders.
func (o *Organizer) OrganizeSeries(ctx context.Context, req models.OrganizeRequest) (*models.OrganizeResult, error) {
	r := o.newRun(req.DryRun)
	r.log(models.ActionInfo, "Processing series folder: %s", req.FolderName)

	meta := o.resolver.ResolveSeries(ctx, req.FolderName)
	r.renameSoft(ctx, req.FolderID, req.FolderName, seriesFolderName(meta))

	entries, err := r.listDir(ctx, req.FolderID)
	if err != nil {
		return nil, err
	}
	junkEntries := o.junk.JunkEntries(entries)
	_, kept := o.junk.Partition(entries)
	if err := r.removeJunk(ctx, junkEntries); err != nil {
		return nil, err
	}

	// Classify survivors: season subfolders feed the season map and get
	// canonical S%02d names; loose video/subtitle files queue up for
	// reconciliation.
	seasons := map[int]string{}
	var files []models.DirEntry
	for _, e := range kept {
		if e.IsDir {
			season, ok := nameparse.ParseSeasonFolder(e.Name)
			if !ok {
				continue
			}
			if _, exists := seasons[season]; exists {
				continue
			}
			seasons[season] = e.ID
			r.renameSoft(ctx, e.ID, e.Name, nameparse.SeasonFolderName(season))
			continue
		}
		if nameparse.IsVideoExt(e.Ext()) || nameparse.IsSubtitleExt(e.Ext()) {
			files = append(files, e)
		}
	}

	// Loose files at the series root: parse with the full cascade,
	// default to season 1, leave unrecognized files alone.
	for _, f := range files {
		if ctx.Err() != nil {
			r.log(models.ActionInfo, "Run canceled")
			return r.result(), nil
		}
		ref := nameparse.ParseEpisode(f.Name, false)
		if ref.Episode == nil {
			r.log(models.ActionSkip, "Skip (no episode number): %s", f.Name)
			continue
		}
		season := 1
		if ref.Season != nil {
			season = *ref.Season
		}

		seasonID, ok := seasons[season]
		if !ok {
			seasonID, err = r.mkdir(ctx, req.FolderID, nameparse.SeasonFolderName(season))
			if err != nil {
				r.log(models.ActionError, "Create season folder failed: S%02d (%v)", season, err)
				continue
			}
			seasons[season] = seasonID
		}

		if f.ParentID != seasonID {
			if err := r.move(ctx, []string{f.ID}, seasonID, f.Name+" -> "+nameparse.SeasonFolderName(season)+"/"); err != nil {
				r.log(models.ActionError, "Move failed: %s (%v)", f.Name, err)
				continue
			}
		}

		target := episodeFileName(meta.Name, season, *ref.Episode,
			nameparse.ExtractQualityTag(f.Name), f.Ext())
		r.renameSoft(ctx, f.ID, f.Name, target)
	}

	// Reconcile files already inside season folders: the folder owns
	// the season number, whatever the filenames claim.
	for _, season := range sortedSeasons(seasons) {
		if ctx.Err() != nil {
			r.log(models.ActionInfo, "Run canceled")
			return r.result(), nil
		}
		if err := r.reconcileSeason(ctx, meta.Name, season, seasons[season]); err != nil {
			r.log(models.ActionError, "Season S%02d reconciliation failed: %v", season, err)
		}
	}

	return r.result(), nil
}

func (r *run) reconcileSeason(ctx context.Context, seriesName string, season int, folderID string) error {
	entries, err := r.listDir(ctx, folderID)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir || !(nameparse.IsVideoExt(e.Ext()) || nameparse.IsSubtitleExt(e.Ext())) {
			continue
		}
		ref := nameparse.ParseEpisode(e.Name, true)
		if ref.Episode == nil {
			r.log(models.ActionSkip, "Skip (no episode number): %s", e.Name)
			continue
		}
		target := episodeFileName(seriesName, season, *ref.Episode,
			nameparse.ExtractQualityTag(e.Name), e.Ext())
		r.renameSoft(ctx, e.ID, e.Name, target)
	}
	return nil
}

func sortedSeasons(seasons map[int]string) []int {
	out := make([]int, 0, len(seasons))
	for s := range seasons {
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}
