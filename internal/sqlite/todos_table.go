// CRUD operations over the todos table. Each operation hydrates or
// dehydrates between SQLite rows (snake_case, nullable optionals) and
// types.Task (camelCase JSON, nil for absent optionals). The step
// column is included in projections and writes only when the
// capability snapshot says it exists.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/todos/pkg/types"
)

// baseColumns is the projection shared by every read path. The step
// column is appended when available.
const baseColumns = "id, title, completed, created_at, due, priority"

// columns returns the read projection for the current capability snapshot.
func (s *Store) columns() string {
	if s.caps.Step {
		return baseColumns + ", step"
	}
	return baseColumns
}

// newTaskID generates a time-ordered unique ID. UUID v7 embeds a
// millisecond timestamp plus random bits, so IDs minted within the
// same millisecond stay unique.
func newTaskID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// List returns all tasks ordered by creation time descending. The id
// tiebreak keeps the order stable for tasks created within the same
// timestamp granularity.
func (s *Store) List(ctx context.Context) ([]types.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	query := "SELECT " + s.columns() + " FROM todos ORDER BY created_at DESC, id DESC"
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, storageErr("list", err)
	}
	defer rows.Close()

	tasks := []types.Task{}
	for rows.Next() {
		task, err := s.hydrateTask(rows.Scan)
		if err != nil {
			return nil, storageErr("list", err)
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list", err)
	}
	return tasks, nil
}

// Get retrieves a single task. Returns ErrNotFound for a missing ID;
// only store-level failures surface as StorageError.
func (s *Store) Get(ctx context.Context, id string) (*types.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getLocked(ctx, id)
}

// getLocked is Get without locking, for reuse inside write paths that
// already hold the mutex.
func (s *Store) getLocked(ctx context.Context, id string) (*types.Task, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	row := db.QueryRowContext(ctx,
		"SELECT "+s.columns()+" FROM todos WHERE id = ?", id)
	task, err := s.hydrateTask(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, storageErr("get", err)
	}
	return task, nil
}

// Create validates the input, fills in ID, creation timestamp, and
// default priority, and inserts the row. A supplied step value is
// silently dropped when the schema lacks the column. The returned task
// is re-read from the store so it reflects exactly what was persisted.
func (s *Store) Create(ctx context.Context, input types.NewTask) (*types.Task, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	id := newTaskID()
	createdAt := time.Now().UTC().Format(time.RFC3339)
	priority := input.Priority
	if priority == "" {
		priority = types.PriorityMedium
	}

	cols := []string{"id", "title", "completed", "created_at", "due", "priority"}
	args := []any{id, strings.TrimSpace(input.Title), false, createdAt, nullable(input.Due), string(priority)}
	if s.caps.Step && input.Step != nil {
		cols = append(cols, "step")
		args = append(args, *input.Step)
	}

	query := fmt.Sprintf("INSERT INTO todos (%s) VALUES (%s)",
		strings.Join(cols, ", "), placeholders(len(cols)))
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return nil, storageErr("create", err)
	}

	return s.getLocked(ctx, id)
}

// Update applies a partial patch. Fields absent from the patch stay
// untouched; explicit nulls clear due and step. Step changes are
// silently ignored without the capability. Returns ErrNotFound if no
// row matches the ID.
func (s *Store) Update(ctx context.Context, id string, patch types.TaskPatch) (*types.Task, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	// Existence first, so a missing ID reads as absence rather than a
	// zero-row update.
	var one int
	err = db.QueryRowContext(ctx, "SELECT 1 FROM todos WHERE id = ?", id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, storageErr("update", err)
	}

	var sets []string
	var args []any
	if patch.Title.Set {
		sets = append(sets, "title = ?")
		args = append(args, strings.TrimSpace(patch.Title.Value))
	}
	if patch.Completed.Set {
		sets = append(sets, "completed = ?")
		args = append(args, !patch.Completed.Null && patch.Completed.Value)
	}
	if patch.Due.Set {
		sets = append(sets, "due = ?")
		args = append(args, clearable(patch.Due))
	}
	if patch.Priority.Set {
		sets = append(sets, "priority = ?")
		args = append(args, string(patch.Priority.Value))
	}
	if s.caps.Step && patch.Step.Set {
		sets = append(sets, "step = ?")
		args = append(args, clearable(patch.Step))
	}

	// Everything in the patch was gated away (or it was empty); the
	// stored task is already the answer.
	if len(sets) == 0 {
		return s.getLocked(ctx, id)
	}

	args = append(args, id)
	query := "UPDATE todos SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return nil, storageErr("update", err)
	}

	return s.getLocked(ctx, id)
}

// Delete removes a task and reports whether it existed. Deleting a
// missing ID returns false without error, so the operation is
// idempotent.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, types.ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.conn()
	if err != nil {
		return false, err
	}

	res, err := db.ExecContext(ctx, "DELETE FROM todos WHERE id = ?", id)
	if err != nil {
		return false, storageErr("delete", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, storageErr("delete", err)
	}
	return n > 0, nil
}

// hydrateTask scans one row into a Task using the current projection.
// Null optionals become nil pointers, never empty strings.
func (s *Store) hydrateTask(scan func(dest ...any) error) (*types.Task, error) {
	var t types.Task
	var createdAt, priority string
	var due, step sql.NullString

	dest := []any{&t.ID, &t.Title, &t.Completed, &createdAt, &due, &priority}
	if s.caps.Step {
		dest = append(dest, &step)
	}
	if err := scan(dest...); err != nil {
		return nil, err
	}

	parsed, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	t.CreatedAt = parsed
	t.Priority = types.Priority(priority)
	if due.Valid {
		t.Due = &due.String
	}
	if step.Valid {
		t.Step = &step.String
	}
	return &t, nil
}

// nullable maps an absent optional to SQL NULL on full-row writes.
func nullable(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

// clearable maps a patch field to its SQL value: NULL for an explicit
// clear, the value otherwise.
func clearable(o types.Optional[string]) any {
	if o.Null {
		return nil
	}
	return o.Value
}

// placeholders returns n comma-separated "?" markers.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
