package handlers

import (
	"github.com/gofiber/fiber/v2"

	"codetidbit/internal/middleware"
	"codetidbit/internal/models"
	"codetidbit/internal/services"
)

// BigbitHandler handles multi-file tidbit endpoints.
type BigbitHandler struct {
	bigbits *services.BigbitService
}

// NewBigbitHandler creates a new bigbit handler
func NewBigbitHandler(bigbits *services.BigbitService) *BigbitHandler {
	return &BigbitHandler{bigbits: bigbits}
}

// Create publishes a new bigbit
// POST /bigbits
func (h *BigbitHandler) Create(c *fiber.Ctx) error {
	var req models.AddBigbitRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}

	user := middleware.RequestingUser(c)
	email, _ := c.Locals("user_email").(string)

	bigbit, err := h.bigbits.AddNewBigbit(c.Context(), user, email, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(bigbit)
}

// Get fetches one bigbit
// GET /bigbits/:id
func (h *BigbitHandler) Get(c *fiber.Ctx) error {
	bigbit, err := h.bigbits.GetBigbit(c.Context(), c.Params("id"), middleware.RequestingUser(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(bigbit)
}
