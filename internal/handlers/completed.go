package handlers

import (
	"github.com/gofiber/fiber/v2"

	"codetidbit/internal/middleware"
	"codetidbit/internal/models"
	"codetidbit/internal/services"
)

// CompletedHandler handles completed-marker endpoints.
type CompletedHandler struct {
	completed *services.CompletedService
}

// NewCompletedHandler creates a new completed handler
func NewCompletedHandler(completed *services.CompletedService) *CompletedHandler {
	return &CompletedHandler{completed: completed}
}

// Add marks a tidbit completed for the requesting user
// POST /completed
func (h *CompletedHandler) Add(c *fiber.Ctx) error {
	var req models.CompletedRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}

	if err := h.completed.AddCompleted(c.Context(), middleware.RequestingUser(c), req); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"completed": true})
}

// Remove unmarks a tidbit; absent markers remove cleanly
// POST /completed/remove
func (h *CompletedHandler) Remove(c *fiber.Ctx) error {
	var req models.CompletedRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}

	if err := h.completed.RemoveCompleted(c.Context(), middleware.RequestingUser(c), req); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"completed": false})
}

// Check reports whether the requesting user completed the tidbit
// GET /completed/:tidbitType/:id
func (h *CompletedHandler) Check(c *fiber.Ctx) error {
	tp, err := tidbitPointerFromParams(c)
	if err != nil {
		return writeError(c, err)
	}

	completed, err := h.completed.IsCompleted(c.Context(), middleware.RequestingUser(c), tp)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"completed": completed})
}
