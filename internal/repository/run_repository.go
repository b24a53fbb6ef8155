package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/lzhang-md/drivetidy/internal/models"
)

type RunRepository struct {
	db *sql.DB
}

func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create inserts a new run row in running state and returns its ID.
func (r *RunRepository) Create(run *models.OrganizeRun) (uuid.UUID, error) {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	query := `INSERT INTO organize_runs (id, kind, folder_id, folder_name, dry_run, status, logs, started_at)
		VALUES ($1, $2, $3, $4, $5, $6, '[]', $7)`
	_, err := r.db.Exec(query, run.ID, run.Kind, run.FolderID, run.FolderName,
		run.DryRun, run.Status, run.StartedAt)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create run: %w", err)
	}
	return run.ID, nil
}

// Finish records the terminal state and logs of a run.
func (r *RunRepository) Finish(id uuid.UUID, status models.RunStatus, runErr *string, logs []models.ActionLog) error {
	payload, err := json.Marshal(logs)
	if err != nil {
		return fmt.Errorf("failed to marshal run logs: %w", err)
	}
	query := `UPDATE organize_runs
		SET status = $2, error = $3, logs = $4, finished_at = CURRENT_TIMESTAMP
		WHERE id = $1`
	_, err = r.db.Exec(query, id, status, runErr, payload)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}

// GetByID returns a single run with its full log, or nil if not found.
func (r *RunRepository) GetByID(id uuid.UUID) (*models.OrganizeRun, error) {
	query := `SELECT id, kind, folder_id, folder_name, dry_run, status, error, logs, started_at, finished_at
		FROM organize_runs WHERE id = $1`
	run := &models.OrganizeRun{}
	var payload []byte
	err := r.db.QueryRow(query, id).Scan(&run.ID, &run.Kind, &run.FolderID,
		&run.FolderName, &run.DryRun, &run.Status, &run.Error, &payload,
		&run.StartedAt, &run.FinishedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	if err := json.Unmarshal(payload, &run.Logs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run logs: %w", err)
	}
	return run, nil
}

// List returns the most recent runs without their logs, newest first.
func (r *RunRepository) List(limit, offset int) ([]*models.OrganizeRun, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	query := `SELECT id, kind, folder_id, folder_name, dry_run, status, error, started_at, finished_at
		FROM organize_runs ORDER BY started_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.OrganizeRun
	for rows.Next() {
		run := &models.OrganizeRun{}
		if err := rows.Scan(&run.ID, &run.Kind, &run.FolderID, &run.FolderName,
			&run.DryRun, &run.Status, &run.Error, &run.StartedAt, &run.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
