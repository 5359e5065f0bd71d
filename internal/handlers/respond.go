package handlers

import (
	"github.com/gofiber/fiber/v2"

	"codetidbit/internal/apperrors"
)

// writeError renders a coded failure. The API contract keeps every coded
// failure at 400 except missing/invalid sessions, which read as 401; the
// body always carries {errorCode, message}.
func writeError(c *fiber.Ctx, err error) error {
	appErr := apperrors.AsError(err)
	status := fiber.StatusBadRequest
	if appErr.Code == apperrors.ErrUnauthorized {
		status = fiber.StatusUnauthorized
	}
	return c.Status(status).JSON(appErr)
}

// parseBody decodes the JSON body into out, mapping parse failures onto the
// generic internal code (malformed JSON carries no field-specific code).
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.New(apperrors.ErrInternal, "invalid request body")
	}
	return nil
}
