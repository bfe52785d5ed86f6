// Package httpapi exposes the task store over HTTP. Handlers are thin
// translators between requests and store calls; all business rules
// live in the store.
package httpapi

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/mesh-intelligence/todos/internal/webhook"
	"github.com/mesh-intelligence/todos/pkg/types"
)

// Server wires the fiber app, the task store, and the webhook notifier.
type Server struct {
	app      *fiber.App
	store    types.Store
	notifier *webhook.Notifier
	log      *slog.Logger

	// production suppresses diagnostic detail in 500 responses.
	production bool
}

// New builds the HTTP server around the given store. The notifier may
// be disabled (empty URL) but must not be nil.
func New(store types.Store, notifier *webhook.Notifier, log *slog.Logger, production bool) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(logger.New())

	s := &Server{
		app:        app,
		store:      store,
		notifier:   notifier,
		log:        log,
		production: production,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.app.Get("/health", s.health)

	s.app.Get("/todos", s.listTodos)
	s.app.Post("/todos", s.createTodo)
	s.app.Get("/todos/:id", s.getTodo)
	s.app.Put("/todos/:id", s.updateTodo)
	s.app.Delete("/todos/:id", s.deleteTodo)
}

// Listen blocks serving HTTP on addr until Shutdown is called.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server, then drains any in-flight
// webhook deliveries.
func (s *Server) Shutdown() error {
	err := s.app.Shutdown()
	s.notifier.Wait()
	return err
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
		"capabilities": fiber.Map{
			"step": s.store.Capabilities().Step,
		},
	})
}
