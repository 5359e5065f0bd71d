package handlers

import (
	"github.com/gofiber/fiber/v2"

	"codetidbit/internal/middleware"
	"codetidbit/internal/models"
	"codetidbit/internal/services"
)

// StoryHandler handles story endpoints.
type StoryHandler struct {
	stories *services.StoryService
}

// NewStoryHandler creates a new story handler
func NewStoryHandler(stories *services.StoryService) *StoryHandler {
	return &StoryHandler{stories: stories}
}

// Create makes a new empty story from its information
// POST /stories
func (h *StoryHandler) Create(c *fiber.Ctx) error {
	var req models.StoryInformationRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}

	user := middleware.RequestingUser(c)
	email, _ := c.Locals("user_email").(string)

	story, err := h.stories.CreateStory(c.Context(), user, email, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(story)
}

// UpdateInformation replaces a story's name/description/tags
// POST /stories/:id/information
func (h *StoryHandler) UpdateInformation(c *fiber.Ctx) error {
	var req models.StoryInformationRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}

	err := h.stories.UpdateStoryInformation(c.Context(), middleware.RequestingUser(c), c.Params("id"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "story updated"})
}

// AddTidbits appends pages to a story
// POST /stories/:id/addTidbits
func (h *StoryHandler) AddTidbits(c *fiber.Ctx) error {
	var req models.AddTidbitsToStoryRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}

	story, err := h.stories.AddTidbitsToStory(c.Context(), middleware.RequestingUser(c), c.Params("id"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(story)
}

// Get fetches one story; ?expandStory=true resolves every page into its full
// tidbit payload
// GET /stories/:id
func (h *StoryHandler) Get(c *fiber.Ctx) error {
	user := middleware.RequestingUser(c)

	if c.QueryBool("expandStory") {
		expanded, err := h.stories.GetExpandedStory(c.Context(), c.Params("id"), user)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(expanded)
	}

	story, err := h.stories.GetStory(c.Context(), c.Params("id"), user)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(story)
}
