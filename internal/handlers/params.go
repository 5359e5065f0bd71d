package handlers

import (
	"github.com/gofiber/fiber/v2"

	"codetidbit/internal/apperrors"
	"codetidbit/internal/models"
)

// contentTypeFromParam maps the URL segment to the content type tag. Both
// kind names and raw enum values are accepted.
func contentTypeFromParam(param string) (models.ContentType, bool) {
	switch param {
	case "snipbit", "snipbits", "1":
		return models.ContentSnipbit, true
	case "bigbit", "bigbits", "2":
		return models.ContentBigbit, true
	case "story", "stories", "3":
		return models.ContentStory, true
	}
	return 0, false
}

// tidbitPointerFromParams builds a validated tidbit pointer from
// :tidbitType/:id path segments.
func tidbitPointerFromParams(c *fiber.Ctx) (models.TidbitPointer, error) {
	contentType, ok := contentTypeFromParam(c.Params("tidbitType"))
	if !ok || !contentType.IsTidbit() {
		return models.TidbitPointer{}, apperrors.New(apperrors.ErrInvalidTidbitPointer, "tidbit type must be snipbit or bigbit")
	}

	tp := models.TidbitPointer{Type: contentType, TargetID: c.Params("id")}
	if err := tp.Validate(); err != nil {
		return models.TidbitPointer{}, err
	}
	return tp, nil
}

// contentPointerFromParams builds a validated content pointer from
// :contentType/:id path segments.
func contentPointerFromParams(c *fiber.Ctx) (models.ContentPointer, error) {
	contentType, ok := contentTypeFromParam(c.Params("contentType"))
	if !ok {
		return models.ContentPointer{}, apperrors.New(apperrors.ErrInvalidContentPointer, "unknown content type")
	}

	cp := models.ContentPointer{Type: contentType, TargetID: c.Params("id")}
	if err := cp.Validate(); err != nil {
		return models.ContentPointer{}, err
	}
	return cp, nil
}
