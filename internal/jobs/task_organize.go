package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"github.com/lzhang-md/drivetidy/internal/models"
	"github.com/lzhang-md/drivetidy/internal/organizer"
	"github.com/lzhang-md/drivetidy/internal/repository"
)

// OrganizeHandler runs organize and clean tasks against the drive,
// persisting each run's audit log and broadcasting progress over the
// WebSocket hub.
type OrganizeHandler struct {
	org      *organizer.Organizer
	runRepo  *repository.RunRepository
	notifier EventNotifier
}

func NewOrganizeHandler(org *organizer.Organizer, runRepo *repository.RunRepository, notifier EventNotifier) *OrganizeHandler {
	return &OrganizeHandler{org: org, runRepo: runRepo, notifier: notifier}
}

func (h *OrganizeHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var p OrganizePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}

	var kind models.RunKind
	switch t.Type() {
	case TaskOrganizeMovie:
		kind = models.RunKindMovie
	case TaskOrganizeSeries:
		kind = models.RunKindSeries
	case TaskCleanFolder:
		kind = models.RunKindClean
	default:
		return fmt.Errorf("unknown task type %q", t.Type())
	}

	req := models.OrganizeRequest{
		FolderID:   p.FolderID,
		FolderName: p.FolderName,
		DryRun:     p.DryRun,
	}

	run := &models.OrganizeRun{
		Kind:       kind,
		FolderID:   p.FolderID,
		FolderName: p.FolderName,
		DryRun:     p.DryRun,
		Status:     models.RunStatusRunning,
		StartedAt:  time.Now(),
	}
	runID, err := h.runRepo.Create(run)
	if err != nil {
		return fmt.Errorf("create run: %w", err)
	}

	log.Printf("Job: %s run %s starting on folder %q", kind, runID, p.FolderName)
	h.broadcast("run:start", map[string]interface{}{
		"run_id": runID.String(), "kind": kind, "folder_id": p.FolderID, "folder_name": p.FolderName,
	})

	var result *models.OrganizeResult
	switch kind {
	case models.RunKindMovie:
		result, err = h.org.OrganizeMovie(ctx, req)
	case models.RunKindSeries:
		result, err = h.org.OrganizeSeries(ctx, req)
	case models.RunKindClean:
		result, err = h.org.Clean(ctx, req)
	}

	if err != nil {
		msg := err.Error()
		var logs []models.ActionLog
		if result != nil {
			logs = result.Logs
		}
		if finErr := h.runRepo.Finish(runID, models.RunStatusFailed, &msg, logs); finErr != nil {
			log.Printf("Job: failed to record run %s failure: %v", runID, finErr)
		}
		h.broadcast("run:done", map[string]interface{}{
			"run_id": runID.String(), "kind": kind, "status": models.RunStatusFailed, "error": msg,
		})
		return fmt.Errorf("%s: %w", kind, err)
	}

	if finErr := h.runRepo.Finish(runID, models.RunStatusDone, nil, result.Logs); finErr != nil {
		log.Printf("Job: failed to record run %s result: %v", runID, finErr)
	}
	log.Printf("Job: %s run %s finished with %d log entries", kind, runID, len(result.Logs))
	h.broadcast("run:done", map[string]interface{}{
		"run_id": runID.String(), "kind": kind, "status": models.RunStatusDone, "log_count": len(result.Logs),
	})
	return nil
}

func (h *OrganizeHandler) broadcast(event string, data interface{}) {
	if h.notifier != nil {
		h.notifier.Broadcast(event, data)
	}
}
