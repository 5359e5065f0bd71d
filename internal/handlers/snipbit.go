package handlers

import (
	"github.com/gofiber/fiber/v2"

	"codetidbit/internal/middleware"
	"codetidbit/internal/models"
	"codetidbit/internal/services"
)

// SnipbitHandler handles single-file tidbit endpoints.
type SnipbitHandler struct {
	snipbits *services.SnipbitService
}

// NewSnipbitHandler creates a new snipbit handler
func NewSnipbitHandler(snipbits *services.SnipbitService) *SnipbitHandler {
	return &SnipbitHandler{snipbits: snipbits}
}

// Create publishes a new snipbit
// POST /snipbits
func (h *SnipbitHandler) Create(c *fiber.Ctx) error {
	var req models.AddSnipbitRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}

	user := middleware.RequestingUser(c)
	email, _ := c.Locals("user_email").(string)

	snipbit, err := h.snipbits.AddNewSnipbit(c.Context(), user, email, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(snipbit)
}

// Get fetches one snipbit
// GET /snipbits/:id
func (h *SnipbitHandler) Get(c *fiber.Ctx) error {
	snipbit, err := h.snipbits.GetSnipbit(c.Context(), c.Params("id"), middleware.RequestingUser(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(snipbit)
}
