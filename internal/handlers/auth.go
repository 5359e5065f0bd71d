package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"codetidbit/internal/apperrors"
	"codetidbit/internal/middleware"
	"codetidbit/internal/models"
	"codetidbit/internal/services"
	"codetidbit/pkg/auth"
)

// AuthHandler handles account endpoints. Register and login both end with a
// session cookie set; logout clears it.
type AuthHandler struct {
	users       *services.UserService
	sessionAuth *auth.SessionAuth
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(users *services.UserService, sessionAuth *auth.SessionAuth) *AuthHandler {
	return &AuthHandler{
		users:       users,
		sessionAuth: sessionAuth,
	}
}

// Register creates a new account and starts a session
// POST /register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}

	user, err := h.users.Register(c.Context(), req)
	if err != nil {
		return writeError(c, err)
	}

	if err := h.startSession(c, user); err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user.ToResponse())
}

// Login checks credentials and starts a session
// POST /login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}

	user, err := h.users.Login(c.Context(), req)
	if err != nil {
		return writeError(c, err)
	}

	if err := h.startSession(c, user); err != nil {
		return writeError(c, err)
	}

	return c.JSON(user.ToResponse())
}

// Logout clears the session cookie. Always succeeds, session or not.
// GET /logOut
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return c.JSON(fiber.Map{"message": "logged out"})
}

// GetAccount returns the authenticated user's account
// GET /account
func (h *AuthHandler) GetAccount(c *fiber.Ctx) error {
	user, err := h.users.GetUserByID(c.Context(), middleware.RequestingUser(c))
	if err != nil {
		return writeError(c, err)
	}
	if user == nil {
		return writeError(c, apperrors.New(apperrors.ErrUnauthorized, "account no longer exists"))
	}
	return c.JSON(user.ToResponse())
}

// UpdateBio replaces the authenticated user's bio
// POST /account/setBio
func (h *AuthHandler) UpdateBio(c *fiber.Ctx) error {
	var req models.UpdateBioRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}

	if err := h.users.UpdateBio(c.Context(), middleware.RequestingUser(c), req); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "bio updated"})
}

// startSession signs a token and attaches the session cookie.
func (h *AuthHandler) startSession(c *fiber.Ctx, user *models.User) error {
	token, err := h.sessionAuth.GenerateSessionToken(user.ID.Hex(), user.Email)
	if err != nil {
		log.Printf("❌ [AUTH] Failed to sign session token: %v", err)
		return apperrors.Internal()
	}

	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Expires:  time.Now().Add(h.sessionAuth.SessionExpiry),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return nil
}
