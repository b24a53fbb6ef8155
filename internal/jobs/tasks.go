package jobs

import (
	"github.com/lzhang-md/drivetidy/internal/organizer"
	"github.com/lzhang-md/drivetidy/internal/repository"
)

// ──────── Payloads ────────

type OrganizePayload struct {
	FolderID   string `json:"folder_id"`
	FolderName string `json:"folder_name"`
	DryRun     bool   `json:"dry_run,omitempty"`
}

type EventNotifier interface {
	Broadcast(event string, data interface{})
}

// ──────── Register all handlers ────────

func RegisterHandlers(q *Queue, org *organizer.Organizer, runRepo *repository.RunRepository, notifier EventNotifier) {
	h := NewOrganizeHandler(org, runRepo, notifier)
	q.RegisterHandler(TaskOrganizeMovie, h)
	q.RegisterHandler(TaskOrganizeSeries, h)
	q.RegisterHandler(TaskCleanFolder, h)
}
