package handlers

import (
	"github.com/gofiber/fiber/v2"

	"codetidbit/internal/middleware"
	"codetidbit/internal/models"
	"codetidbit/internal/services"
)

// OpinionHandler handles like/unlike endpoints.
type OpinionHandler struct {
	opinions *services.OpinionService
}

// NewOpinionHandler creates a new opinion handler
func NewOpinionHandler(opinions *services.OpinionService) *OpinionHandler {
	return &OpinionHandler{opinions: opinions}
}

// Add records an opinion; repeating it is a no-op
// POST /opinions
func (h *OpinionHandler) Add(c *fiber.Ctx) error {
	var req models.OpinionRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}

	if err := h.opinions.AddOpinion(c.Context(), middleware.RequestingUser(c), req); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "opinion recorded"})
}

// Remove withdraws an opinion; absent opinions remove cleanly
// POST /opinions/remove
func (h *OpinionHandler) Remove(c *fiber.Ctx) error {
	var req models.OpinionRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}

	if err := h.opinions.RemoveOpinion(c.Context(), middleware.RequestingUser(c), req); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "opinion removed"})
}

// Get returns the requesting user's opinion on one piece of content, null
// when they have none
// GET /opinions/:contentType/:id
func (h *OpinionHandler) Get(c *fiber.Ctx) error {
	cp, err := contentPointerFromParams(c)
	if err != nil {
		return writeError(c, err)
	}

	opinion, err := h.opinions.GetOpinion(c.Context(), middleware.RequestingUser(c), cp)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(opinion)
}
