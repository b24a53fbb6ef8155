// Package store defines the directory-storage abstraction the organizer
// drives. Implementations normalize backend quirks (pagination,
// response shapes, async task completion) so the core only ever sees
// clean DirEntry listings and synchronous-looking mutations.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/lzhang-md/drivetidy/internal/models"
)

// ErrNotConfigured indicates the backing store is missing required
// credentials; callers must detect this before issuing any calls.
var ErrNotConfigured = errors.New("directory store not configured")

// OperationError wraps a failed mutating call with enough context to
// report which item was touched.
type OperationError struct {
	Op  string // "rename", "move", "mkdir", "remove", "list"
	ID  string // the file/folder id the call targeted (batch: first id)
	Err error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.ID, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }

// DirectoryStore is the contract against the remote drive backend.
type DirectoryStore interface {
	// ListDir returns the full listing of a folder, following
	// pagination cursors until exhausted.
	ListDir(ctx context.Context, folderID string) ([]models.DirEntry, error)

	// Rename changes an item's display name. The id is stable across
	// the rename.
	Rename(ctx context.Context, id, newName string) error

	// Mkdir creates a directory under parent and returns its id.
	// Idempotent: an existing directory with the same name is returned
	// instead of duplicated.
	Mkdir(ctx context.Context, parentID, name string) (string, error)

	// Move relocates a batch of items. The backend may complete the
	// move asynchronously; Move returns only once the new location is
	// reliable.
	Move(ctx context.Context, ids []string, toParentID string) error

	// Remove soft-deletes a batch of items (trash). Returns once the
	// delete has reached a terminal state.
	Remove(ctx context.Context, ids []string) error
}
