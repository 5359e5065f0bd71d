package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"codetidbit/internal/apperrors"
	"codetidbit/pkg/auth"
)

// SessionAuthMiddleware verifies the session token. The token normally rides
// in the session cookie; a Bearer header is accepted too for non-browser
// clients.
func SessionAuthMiddleware(sessionAuth *auth.SessionAuth) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := sessionToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(
				apperrors.New(apperrors.ErrUnauthorized, "authentication required"))
		}

		user, err := sessionAuth.VerifySessionToken(token)
		if err != nil {
			log.Printf("❌ Auth failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(
				apperrors.New(apperrors.ErrUnauthorized, "invalid or expired session"))
		}

		c.Locals("user_id", user.ID)
		c.Locals("user_email", user.Email)
		return c.Next()
	}
}

// OptionalSessionAuthMiddleware resolves the user when a valid session is
// present and continues anonymously otherwise. Read endpoints use this so
// vote compression can be relative to the requesting user.
func OptionalSessionAuthMiddleware(sessionAuth *auth.SessionAuth) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := sessionToken(c)
		if token == "" {
			c.Locals("user_id", "")
			return c.Next()
		}

		user, err := sessionAuth.VerifySessionToken(token)
		if err != nil {
			c.Locals("user_id", "")
			return c.Next()
		}

		c.Locals("user_id", user.ID)
		c.Locals("user_email", user.Email)
		return c.Next()
	}
}

func sessionToken(c *fiber.Ctx) string {
	if cookie := c.Cookies(auth.SessionCookieName); cookie != "" {
		return cookie
	}
	if authHeader := c.Get("Authorization"); authHeader != "" {
		if token, err := auth.ExtractToken(authHeader); err == nil {
			return token
		}
	}
	return ""
}

// RequestingUser returns the authenticated user ID from locals, empty for
// anonymous requests.
func RequestingUser(c *fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	return userID
}
