// JSONL export and import for the todos table, one JSON object per
// line. Exports use the atomic temp-file, fsync, rename pattern so a
// crash never leaves a truncated file behind.
package sqlite

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mesh-intelligence/todos/pkg/types"
)

// todoRecord is the JSONL line format. Field names match the storage
// schema, not the HTTP wire format.
type todoRecord struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Completed bool    `json:"completed"`
	CreatedAt string  `json:"created_at"`
	Due       *string `json:"due,omitempty"`
	Priority  string  `json:"priority"`
	Step      *string `json:"step,omitempty"`
}

// ExportJSONL writes every task to path, oldest first. The step field
// is exported only when the schema has the column.
func (s *Store) ExportJSONL(ctx context.Context, path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	db, err := s.conn()
	if err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx,
		"SELECT "+s.columns()+" FROM todos ORDER BY created_at ASC, id ASC")
	if err != nil {
		return storageErr("export", err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		task, err := s.hydrateTask(rows.Scan)
		if err != nil {
			return storageErr("export", err)
		}
		rec := todoRecord{
			ID:        task.ID,
			Title:     task.Title,
			Completed: task.Completed,
			CreatedAt: task.CreatedAt.Format(time.RFC3339),
			Due:       task.Due,
			Priority:  string(task.Priority),
			Step:      task.Step,
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshaling todo %s: %w", task.ID, err)
		}
		records = append(records, data)
	}
	if err := rows.Err(); err != nil {
		return storageErr("export", err)
	}

	return writeJSONL(path, records)
}

// ImportJSONL loads tasks from path into the table inside a single
// transaction. Existing rows with the same ID are replaced. Malformed
// lines are skipped; unknown fields are ignored. Step values from the
// file are dropped when the schema lacks the column.
func (s *Store) ImportJSONL(ctx context.Context, path string) error {
	records, err := readJSONL(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.conn()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("import", err)
	}
	defer tx.Rollback()

	for _, raw := range records {
		var rec todoRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		if rec.ID == "" || rec.Title == "" {
			continue
		}
		if rec.Priority == "" {
			rec.Priority = string(types.PriorityMedium)
		}

		if s.caps.Step {
			_, err = tx.ExecContext(ctx,
				"INSERT OR REPLACE INTO todos (id, title, completed, created_at, due, priority, step) VALUES (?, ?, ?, ?, ?, ?, ?)",
				rec.ID, rec.Title, rec.Completed, rec.CreatedAt, nullable(rec.Due), rec.Priority, nullable(rec.Step))
		} else {
			_, err = tx.ExecContext(ctx,
				"INSERT OR REPLACE INTO todos (id, title, completed, created_at, due, priority) VALUES (?, ?, ?, ?, ?, ?)",
				rec.ID, rec.Title, rec.Completed, rec.CreatedAt, nullable(rec.Due), rec.Priority)
		}
		if err != nil {
			return storageErr("import", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr("import", err)
	}
	return nil
}

// readJSONL returns each non-empty, parseable line of a JSONL file.
// Malformed lines are skipped rather than failing the whole read.
func readJSONL(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []json.RawMessage
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 || !json.Valid(line) {
			continue
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		records = append(records, json.RawMessage(cp))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, nil
}

// writeJSONL atomically writes records to path via a temp file in the
// same directory followed by fsync and rename.
func writeJSONL(path string, records []json.RawMessage) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	fail := func(step string, err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%s: %w", step, err)
	}

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			return fail("writing record", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fail("writing newline", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fail("flushing buffer", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("syncing temp file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
