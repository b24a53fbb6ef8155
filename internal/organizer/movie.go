package organizer

import (
	"context"
	"errors"

	"github.com/lzhang-md/drivetidy/internal/metadata"
	"github.com/lzhang-md/drivetidy/internal/models"
	"github.com/lzhang-md/drivetidy/internal/nameparse"
)

// OrganizeMovie processes one movie folder: junk removal, title
// resolution, folder rename and per-file renames. Collection folders
// (合集/系列/...) expand into one subfolder per contained movie.
func (o *Organizer) OrganizeMovie(ctx context.Context, req models.OrganizeRequest) (*models.OrganizeResult, error) {
	r := o.newRun(req.DryRun)
	r.log(models.ActionInfo, "Processing movie folder: %s", req.FolderName)

	if nameparse.IsCollection(req.FolderName) {
		if err := r.movieCollection(ctx, req); err != nil {
			return nil, err
		}
		return r.result(), nil
	}

	meta, err := o.resolver.ResolveMovie(ctx, req.FolderName)
	if errors.Is(err, metadata.ErrUnresolved) {
		r.log(models.ActionSkip, "Skip (unresolved): %s", req.FolderName)
		return r.result(), nil
	}
	if err != nil {
		return nil, err
	}

	// The folder id survives the rename, so listing afterwards is safe.
	r.renameSoft(ctx, req.FolderID, req.FolderName, movieFolderName(meta))

	entries, err := r.listDir(ctx, req.FolderID)
	if err != nil {
		return nil, err
	}
	junkEntries := o.junk.JunkEntries(entries)
	_, kept := o.junk.Partition(entries)
	if err := r.removeJunk(ctx, junkEntries); err != nil {
		return nil, err
	}

	for _, e := range kept {
		if ctx.Err() != nil {
			r.log(models.ActionInfo, "Run canceled")
			return r.result(), nil
		}
		if e.IsDir || !nameparse.IsVideoExt(e.Ext()) {
			continue
		}
		target := movieFileName(meta, nameparse.ExtractQualityTag(e.Name), e.Ext())
		r.renameSoft(ctx, e.ID, e.Name, target)
	}

	return r.result(), nil
}

// movieCollection flattens a collection folder: every video file inside
// becomes its own movie subfolder. Nested directories are surfaced for
// separate processing rather than recursed into.
func (r *run) movieCollection(ctx context.Context, req models.OrganizeRequest) error {
	bare := nameparse.NormalizeSpaces(nameparse.CleanMovieNoise(nameparse.ToHalfWidth(req.FolderName)))
	if bare == "" {
		bare = req.FolderName
	}
	r.log(models.ActionInfo, "Collection detected: %s", req.FolderName)
	r.renameSoft(ctx, req.FolderID, req.FolderName, bare)

	entries, err := r.listDir(ctx, req.FolderID)
	if err != nil {
		return err
	}
	junkEntries := r.o.junk.JunkEntries(entries)
	_, kept := r.o.junk.Partition(entries)
	if err := r.removeJunk(ctx, junkEntries); err != nil {
		return err
	}

	for _, e := range kept {
		if ctx.Err() != nil {
			r.log(models.ActionInfo, "Run canceled")
			return nil
		}
		if e.IsDir {
			r.log(models.ActionInfo, "Subfolder needs separate processing: %s", e.Name)
			continue
		}
		if !nameparse.IsVideoExt(e.Ext()) {
			continue
		}

		meta, err := r.o.resolver.ResolveMovie(ctx, e.Name)
		if errors.Is(err, metadata.ErrUnresolved) {
			r.log(models.ActionSkip, "Skip (unresolved): %s", e.Name)
			continue
		}
		if err != nil {
			r.log(models.ActionError, "Resolve failed: %s (%v)", e.Name, err)
			continue
		}

		folderName := movieFolderName(meta)
		subID, err := r.mkdir(ctx, req.FolderID, folderName)
		if err != nil {
			r.log(models.ActionError, "Create folder failed: %s (%v)", folderName, err)
			continue
		}
		if err := r.move(ctx, []string{e.ID}, subID, e.Name+" -> "+folderName+"/"); err != nil {
			r.log(models.ActionError, "Move failed: %s (%v)", e.Name, err)
			continue
		}
		target := movieFileName(meta, nameparse.ExtractQualityTag(e.Name), e.Ext())
		r.renameSoft(ctx, e.ID, e.Name, target)
	}

	return nil
}
