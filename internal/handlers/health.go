package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"codetidbit/internal/database"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	mongodb *database.MongoDB
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(mongodb *database.MongoDB) *HealthHandler {
	return &HealthHandler{mongodb: mongodb}
}

// Handle responds with server health status
func (h *HealthHandler) Handle(c *fiber.Ctx) error {
	dbStatus := "healthy"
	if err := h.mongodb.Ping(c.Context()); err != nil {
		dbStatus = "unreachable"
	}

	return c.JSON(fiber.Map{
		"status":    "healthy",
		"database":  dbStatus,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
