package api

import (
	"context"
	"net/http"

	"github.com/lzhang-md/drivetidy/internal/httputil"
	"github.com/lzhang-md/drivetidy/internal/jobs"
	"github.com/lzhang-md/drivetidy/internal/models"
)

// readOrganizeRequest decodes and validates the shared request body for
// the synchronous organize/clean endpoints.
func readOrganizeRequest(w http.ResponseWriter, r *http.Request) (models.OrganizeRequest, bool) {
	var req models.OrganizeRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return req, false
	}
	if req.FolderID == "" || req.FolderName == "" {
		httputil.WriteError(w, http.StatusBadRequest, "MISSING_FIELDS", "folder_id and folder_name are required")
		return req, false
	}
	return req, true
}

func (s *Server) handleOrganizeMovie(w http.ResponseWriter, r *http.Request) {
	s.runSync(w, r, s.organizer.OrganizeMovie)
}

func (s *Server) handleOrganizeSeries(w http.ResponseWriter, r *http.Request) {
	s.runSync(w, r, s.organizer.OrganizeSeries)
}

func (s *Server) handleClean(w http.ResponseWriter, r *http.Request) {
	s.runSync(w, r, s.organizer.Clean)
}

type runFunc func(context.Context, models.OrganizeRequest) (*models.OrganizeResult, error)

// runSync executes an organize/clean run inside the request and returns
// the full audit log. Long folders are better served by the job queue
// endpoint; this path exists for dry runs and small folders.
func (s *Server) runSync(w http.ResponseWriter, r *http.Request, fn runFunc) {
	if !s.requireOrganizer(w) {
		return
	}
	req, ok := readOrganizeRequest(w, r)
	if !ok {
		return
	}

	result, err := fn(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, http.StatusBadGateway, "RUN_FAILED", err.Error())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// handleEnqueueOrganize queues an organize/clean run on the worker. The
// kind field selects the task; the folder ID doubles as the dedupe key
// so a folder is never queued twice.
func (s *Server) handleEnqueueOrganize(w http.ResponseWriter, r *http.Request) {
	if !s.requireOrganizer(w) {
		return
	}

	var req struct {
		Kind       models.RunKind `json:"kind"`
		FolderID   string         `json:"folder_id"`
		FolderName string         `json:"folder_name"`
		DryRun     bool           `json:"dry_run"`
	}
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}
	if req.FolderID == "" || req.FolderName == "" {
		httputil.WriteError(w, http.StatusBadRequest, "MISSING_FIELDS", "folder_id and folder_name are required")
		return
	}

	var taskType string
	switch req.Kind {
	case models.RunKindMovie:
		taskType = jobs.TaskOrganizeMovie
	case models.RunKindSeries:
		taskType = jobs.TaskOrganizeSeries
	case models.RunKindClean:
		taskType = jobs.TaskCleanFolder
	default:
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_KIND", "kind must be movie, series or clean")
		return
	}

	payload := jobs.OrganizePayload{
		FolderID:   req.FolderID,
		FolderName: req.FolderName,
		DryRun:     req.DryRun,
	}
	taskID, err := s.jobQueue.EnqueueUnique(taskType, payload, string(req.Kind)+":"+req.FolderID)
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, "ENQUEUE_FAILED", err.Error())
		return
	}

	httputil.WriteJSON(w, http.StatusAccepted, map[string]interface{}{
		"task_id": taskID,
		"kind":    req.Kind,
	})
}
