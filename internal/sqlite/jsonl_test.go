package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/todos/pkg/types"
)

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := setupStore(t)

	first, err := src.Create(ctx, types.NewTask{
		Title:    "exported",
		Due:      strptr("2026-09-15"),
		Priority: types.PriorityHigh,
		Step:     strptr("details"),
	})
	require.NoError(t, err)
	second, err := src.Create(ctx, types.NewTask{Title: "plain"})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "todos.jsonl")
	require.NoError(t, src.ExportJSONL(ctx, path))

	dst := setupStore(t)
	require.NoError(t, dst.ImportJSONL(ctx, path))

	tasks, err := dst.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	got, err := dst.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	got, err = dst.Get(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestImportSkipsMalformedLines(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	path := filepath.Join(t.TempDir(), "todos.jsonl")
	content := `{"id":"a1","title":"good","completed":false,"created_at":"2026-08-01T10:00:00Z","priority":"Low"}
not json at all
{"id":"","title":"missing id","created_at":"2026-08-01T10:00:00Z","priority":"Low"}
{"id":"a2","title":"also good","completed":true,"created_at":"2026-08-02T10:00:00Z","priority":"High","unknown_field":42}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	require.NoError(t, s.ImportJSONL(ctx, path))

	tasks, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "also good", tasks[0].Title)
	assert.True(t, tasks[0].Completed)
	assert.Equal(t, "good", tasks[1].Title)
}

func TestImportIntoLegacySchemaDropsStep(t *testing.T) {
	ctx := context.Background()
	s := setupLegacyStore(t)

	path := filepath.Join(t.TempDir(), "todos.jsonl")
	content := `{"id":"a1","title":"stepped","completed":false,"created_at":"2026-08-01T10:00:00Z","priority":"Medium","step":"dropped"}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	require.NoError(t, s.ImportJSONL(ctx, path))

	got, err := s.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "stepped", got.Title)
	assert.Nil(t, got.Step)
}

func TestImportReplacesExistingIDs(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	path := filepath.Join(t.TempDir(), "todos.jsonl")
	content := `{"id":"a1","title":"first","completed":false,"created_at":"2026-08-01T10:00:00Z","priority":"Low"}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, s.ImportJSONL(ctx, path))

	content = `{"id":"a1","title":"replaced","completed":true,"created_at":"2026-08-01T10:00:00Z","priority":"High"}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, s.ImportJSONL(ctx, path))

	got, err := s.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "replaced", got.Title)
	assert.True(t, got.Completed)

	tasks, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}
