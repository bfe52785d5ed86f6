package types

import (
	"context"
	"errors"
	"fmt"
)

// Capabilities is an immutable snapshot of optional schema features,
// resolved once when the store opens. All request handlers share the
// same snapshot; a schema change requires a process restart to be
// detected.
type Capabilities struct {
	// Step reports whether the todos table has the optional free-text
	// step column. When false, step values are never read or written.
	Step bool
}

// Store provides CRUD access to tasks. Every operation attempts the
// backing store exactly once; there are no retries. Concurrent updates
// to the same task are last-write-wins — the store adds no optimistic
// concurrency control.
type Store interface {
	// List returns all tasks ordered by creation time, newest first.
	// An empty store yields an empty slice, not an error.
	List(ctx context.Context) ([]Task, error)

	// Get retrieves the task with the given ID.
	// Returns ErrNotFound if no task exists with that ID.
	Get(ctx context.Context, id string) (*Task, error)

	// Create validates the input, generates the ID and creation
	// timestamp, and persists the task. A step value is silently
	// dropped when the schema lacks the column.
	Create(ctx context.Context, input NewTask) (*Task, error)

	// Update applies a partial patch to the task with the given ID and
	// returns the updated task. Fields absent from the patch are left
	// unmodified; explicit nulls clear the optional fields.
	// Returns ErrNotFound if no task exists with that ID.
	Update(ctx context.Context, id string, patch TaskPatch) (*Task, error)

	// Delete removes the task with the given ID. Reports whether a
	// matching task existed; deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) (bool, error)

	// Capabilities returns the schema capability snapshot.
	Capabilities() Capabilities
}

// Validation and lifecycle errors.
var (
	ErrNotFound        = errors.New("todo not found")
	ErrInvalidID       = errors.New("invalid todo ID")
	ErrTitleRequired   = errors.New("title must not be empty")
	ErrInvalidPriority = errors.New("invalid priority value")
	ErrStoreClosed     = errors.New("store is closed")
)

// StorageError wraps a failure of the backing store (connectivity,
// malformed query, cancellation). It is never used for expected
// absence; ErrNotFound and StorageError are distinct classes.
type StorageError struct {
	Op  string // Operation that failed, e.g. "list", "create".
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError reports whether err is (or wraps) a StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
