// Package store defines the persistence contract for tasks.
package store

import (
	"context"
	"errors"

	"github.com/taskdeck/taskdeck/internal/task"
)

// ErrNotFound is returned when a task ID does not correspond to a stored row.
var ErrNotFound = errors.New("task not found")

// TaskRepository is the durable storage collaborator. It owns identity
// assignment and timestamps: Add sets both timestamps and the ID, Update
// refreshes UpdatedAt. Implementations must never create a row on Update.
type TaskRepository interface {
	// GetAll returns every task ordered by descending priority score.
	GetAll(ctx context.Context) ([]task.Task, error)

	// GetByID returns a single task or ErrNotFound.
	GetByID(ctx context.Context, id int64) (task.Task, error)

	// Add persists a new task, assigning its ID and setting both
	// timestamps to the current instant.
	Add(ctx context.Context, t *task.Task) error

	// Update overwrites a stored task's mutable fields and refreshes
	// UpdatedAt. Returns ErrNotFound when the ID has no stored row.
	Update(ctx context.Context, t *task.Task) error

	// Delete removes a task permanently. Deleting an absent ID is a no-op.
	Delete(ctx context.Context, id int64) error

	// Categories returns the seeded categories in sort order.
	Categories(ctx context.Context) ([]task.Category, error)
}
