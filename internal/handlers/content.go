package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"codetidbit/internal/models"
	"codetidbit/internal/services"
)

// ContentHandler handles the cross-collection content search.
type ContentHandler struct {
	content *services.ContentService
}

// NewContentHandler creates a new content handler
func NewContentHandler(content *services.ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

// Search runs the aggregated content search
// GET /content
//
// Query params: includeSnipbits/includeBigbits/includeStories (all kinds when
// none set), author, searchQuery, languages (comma separated), pageNumber,
// pageSize.
func (h *ContentHandler) Search(c *fiber.Ctx) error {
	opts := models.ContentSearchOptions{
		IncludeSnipbits: c.QueryBool("includeSnipbits"),
		IncludeBigbits:  c.QueryBool("includeBigbits"),
		IncludeStories:  c.QueryBool("includeStories"),
		Author:          c.Query("author"),
		Query:           strings.TrimSpace(c.Query("searchQuery")),
		Page:            c.QueryInt("pageNumber"),
		PageSize:        c.QueryInt("pageSize"),
	}

	if languages := c.Query("languages"); languages != "" {
		for _, language := range strings.Split(languages, ",") {
			if language = strings.TrimSpace(language); language != "" {
				opts.Languages = append(opts.Languages, language)
			}
		}
	}

	result, err := h.content.Search(c.Context(), opts)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(result)
}
