// Package webhook delivers fire-and-forget event notifications.
// Delivery failures are logged and never propagate to the caller.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/mesh-intelligence/todos/pkg/types"
)

// EventTodoCreated is sent after a task is successfully created.
const EventTodoCreated = "todo.created"

// payload is the JSON body posted to the target URL.
type payload struct {
	Event string     `json:"event"`
	Data  types.Task `json:"data"`
}

// Notifier posts events to a configured target URL. A Notifier with an
// empty URL is valid and does nothing.
type Notifier struct {
	url    string
	client *http.Client
	log    *slog.Logger

	// wg tracks in-flight deliveries so tests and shutdown can drain them.
	wg sync.WaitGroup
}

// New returns a Notifier targeting url. Pass an empty url to disable
// notifications entirely.
func New(url string, log *slog.Logger) *Notifier {
	return &Notifier{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log,
	}
}

// TodoCreated delivers a todo.created event asynchronously. The caller
// never waits on the delivery and never sees its outcome; failures are
// logged and swallowed. Delivery uses a background context because the
// originating request may complete first.
func (n *Notifier) TodoCreated(task types.Task) {
	if n.url == "" {
		return
	}
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		n.deliver(context.Background(), payload{Event: EventTodoCreated, Data: task})
	}()
}

// Wait blocks until all in-flight deliveries have finished.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

func (n *Notifier) deliver(ctx context.Context, p payload) {
	body, err := json.Marshal(p)
	if err != nil {
		n.log.Error("webhook: marshal payload", "event", p.Event, "error", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		n.log.Error("webhook: build request", "event", p.Event, "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.log.Error("webhook: delivery failed", "event", p.Event, "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		n.log.Error("webhook: non-2xx response", "event", p.Event, "status", resp.StatusCode)
		return
	}
	n.log.Debug("webhook: delivered", "event", p.Event, "id", p.Data.ID)
}
