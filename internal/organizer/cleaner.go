package organizer

import (
	"context"
	"log"

	"github.com/lzhang-md/drivetidy/internal/models"
)

// Clean walks a folder tree breadth-first and trashes every junk entry
// it finds. The walk is bounded by depth and visited-item caps, and a
// failing subtree is logged and skipped rather than aborting the run.
func (o *Organizer) Clean(ctx context.Context, req models.OrganizeRequest) (*models.OrganizeResult, error) {
	r := o.newRun(req.DryRun)
	r.log(models.ActionInfo, "Cleaning folder tree: %s", req.FolderName)

	type queueItem struct {
		folderID string
		depth    int
	}
	queue := []queueItem{{folderID: req.FolderID, depth: 0}}
	visited := 0

	for len(queue) > 0 {
		if ctx.Err() != nil {
			r.log(models.ActionInfo, "Run canceled")
			return r.result(), nil
		}
		item := queue[0]
		queue = queue[1:]

		if item.depth > o.maxCleanDepth {
			r.log(models.ActionInfo, "Depth cap reached, not descending further")
			continue
		}

		entries, err := r.listDir(ctx, item.folderID)
		if err != nil {
			// One bad subtree must not abort the whole clean.
			log.Printf("Organizer: clean list %s failed: %v", item.folderID, err)
			r.log(models.ActionError, "List failed: %s (%v)", item.folderID, err)
			continue
		}

		junkEntries := o.junk.JunkEntries(entries)
		_, kept := o.junk.Partition(entries)
		if err := r.removeJunk(ctx, junkEntries); err != nil {
			log.Printf("Organizer: clean remove in %s failed: %v", item.folderID, err)
			r.log(models.ActionError, "Remove failed in %s (%v)", item.folderID, err)
		}

		for _, e := range kept {
			visited++
			if visited > o.maxCleanItems {
				r.log(models.ActionInfo, "Item cap reached, stopping traversal")
				return r.result(), nil
			}
			if e.IsDir {
				queue = append(queue, queueItem{folderID: e.ID, depth: item.depth + 1})
			}
		}
	}

	return r.result(), nil
}
