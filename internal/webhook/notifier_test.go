package webhook

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/todos/pkg/types"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTodoCreatedDelivers(t *testing.T) {
	received := make(chan []byte, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		received <- body
	}))
	defer srv.Close()

	n := New(srv.URL, discardLogger())
	n.TodoCreated(types.Task{ID: "t1", Title: "hello", Priority: types.PriorityMedium})
	n.Wait()

	var p payload
	require.NoError(t, json.Unmarshal(<-received, &p))
	assert.Equal(t, EventTodoCreated, p.Event)
	assert.Equal(t, "t1", p.Data.ID)
	assert.Equal(t, "hello", p.Data.Title)
}

func TestTodoCreatedSwallowsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := New(srv.URL, discardLogger())
	// Must not panic or block; failures are logged only.
	n.TodoCreated(types.Task{ID: "t1", Title: "x"})
	n.Wait()
}

func TestTodoCreatedUnreachableTarget(t *testing.T) {
	n := New("http://127.0.0.1:1/hook", discardLogger())
	n.TodoCreated(types.Task{ID: "t1", Title: "x"})
	n.Wait()
}

func TestEmptyURLDisablesDelivery(t *testing.T) {
	n := New("", discardLogger())
	n.TodoCreated(types.Task{ID: "t1", Title: "x"})
	n.Wait()
}
