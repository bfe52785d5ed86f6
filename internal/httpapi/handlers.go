package httpapi

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mesh-intelligence/todos/pkg/types"
)

// ErrorResponse is the JSON body for every non-2xx outcome. Detail is
// populated only outside production mode.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// listTodos handles GET /todos.
func (s *Server) listTodos(c *fiber.Ctx) error {
	tasks, err := s.store.List(c.UserContext())
	if err != nil {
		return s.failure(c, "list todos", err)
	}
	return c.JSON(tasks)
}

// getTodo handles GET /todos/:id.
func (s *Server) getTodo(c *fiber.Ctx) error {
	task, err := s.store.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrInvalidID) {
			return notFound(c)
		}
		return s.failure(c, "get todo", err)
	}
	return c.JSON(task)
}

// createTodo handles POST /todos. The title must be a JSON string and
// non-empty after trimming; everything else is optional.
func (s *Server) createTodo(c *fiber.Ctx) error {
	var input types.NewTask
	if err := json.Unmarshal(c.Body(), &input); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := input.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	task, err := s.store.Create(c.UserContext(), input)
	if err != nil {
		if errors.Is(err, types.ErrTitleRequired) || errors.Is(err, types.ErrInvalidPriority) {
			return badRequest(c, err.Error())
		}
		return s.failure(c, "create todo", err)
	}

	// Fire-and-forget; the response never waits on the webhook.
	s.notifier.TodoCreated(*task)

	return c.Status(fiber.StatusCreated).JSON(task)
}

// updateTodo handles PUT /todos/:id with a partial patch. Omitted keys
// leave fields untouched; explicit nulls clear the optional fields.
func (s *Server) updateTodo(c *fiber.Ctx) error {
	var patch types.TaskPatch
	if err := json.Unmarshal(c.Body(), &patch); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := patch.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	task, err := s.store.Update(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrNotFound), errors.Is(err, types.ErrInvalidID):
			return notFound(c)
		case errors.Is(err, types.ErrTitleRequired), errors.Is(err, types.ErrInvalidPriority):
			return badRequest(c, err.Error())
		}
		return s.failure(c, "update todo", err)
	}
	return c.JSON(task)
}

// deleteTodo handles DELETE /todos/:id. Deleting twice yields 404 the
// second time; only store failures produce a 500.
func (s *Server) deleteTodo(c *fiber.Ctx) error {
	found, err := s.store.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, types.ErrInvalidID) {
			return notFound(c)
		}
		return s.failure(c, "delete todo", err)
	}
	if !found {
		return notFound(c)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: msg})
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "not found"})
}

// failure logs a store-level error with full detail and answers 500.
// The diagnostic detail is included in the body only outside production.
func (s *Server) failure(c *fiber.Ctx, op string, err error) error {
	s.log.Error(op+" failed", "path", c.Path(), "error", err)
	resp := ErrorResponse{Error: "failed to " + op}
	if !s.production {
		resp.Detail = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(resp)
}
