package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"codetidbit/internal/apperrors"
)

// ContentType tags the union of content kinds.
type ContentType int

const (
	ContentSnipbit ContentType = 1
	ContentBigbit  ContentType = 2
	ContentStory   ContentType = 3
)

// IsTidbit reports whether the type refers to a tidbit kind (not a story).
func (t ContentType) IsTidbit() bool {
	return t == ContentSnipbit || t == ContentBigbit
}

// ContentPointer is a tagged reference to any content record. Two pointers
// are equal only when both the tag and the target ID match.
type ContentPointer struct {
	Type     ContentType `bson:"contentType" json:"contentType"`
	TargetID string      `bson:"targetId" json:"targetId"`
}

// Equals compares tag and ID.
func (p ContentPointer) Equals(other ContentPointer) bool {
	return p.Type == other.Type && p.TargetID == other.TargetID
}

// Validate checks the tag is a known kind and the ID is a well-formed
// ObjectID hex string.
func (p ContentPointer) Validate() error {
	if p.Type != ContentSnipbit && p.Type != ContentBigbit && p.Type != ContentStory {
		return apperrors.New(apperrors.ErrInvalidContentPointer, "unknown content type")
	}
	if _, err := primitive.ObjectIDFromHex(p.TargetID); err != nil {
		return apperrors.New(apperrors.ErrInvalidContentPointer, "malformed content ID")
	}
	return nil
}

// TidbitPointer is a tagged reference restricted to tidbit kinds.
type TidbitPointer struct {
	Type     ContentType `bson:"tidbitType" json:"tidbitType"`
	TargetID string      `bson:"targetId" json:"targetId"`
}

// Equals compares tag and ID.
func (p TidbitPointer) Equals(other TidbitPointer) bool {
	return p.Type == other.Type && p.TargetID == other.TargetID
}

// Validate rejects story tags and malformed IDs.
func (p TidbitPointer) Validate() error {
	if !p.Type.IsTidbit() {
		return apperrors.New(apperrors.ErrInvalidTidbitPointer, "pointer must reference a snipbit or bigbit")
	}
	if _, err := primitive.ObjectIDFromHex(p.TargetID); err != nil {
		return apperrors.New(apperrors.ErrInvalidTidbitPointer, "malformed tidbit ID")
	}
	return nil
}

// ContentPointer widens a tidbit pointer to the content union.
func (p TidbitPointer) ContentPointer() ContentPointer {
	return ContentPointer{Type: p.Type, TargetID: p.TargetID}
}

// Content is the merged search-result shape returned by the aggregator.
// Exactly one of Snipbit/Bigbit/Story is set, matching Type.
type Content struct {
	Type    ContentType      `json:"contentType"`
	Snipbit *SnipbitResponse `json:"snipbit,omitempty"`
	Bigbit  *BigbitResponse  `json:"bigbit,omitempty"`
	Story   *StoryResponse   `json:"story,omitempty"`
}

// Name returns the display name regardless of kind.
func (c Content) Name() string {
	switch c.Type {
	case ContentSnipbit:
		return c.Snipbit.Name
	case ContentBigbit:
		return c.Bigbit.Name
	case ContentStory:
		return c.Story.Name
	}
	return ""
}

// LastModified returns the last-modified timestamp regardless of kind.
func (c Content) LastModified() time.Time {
	switch c.Type {
	case ContentSnipbit:
		return c.Snipbit.LastModified
	case ContentBigbit:
		return c.Bigbit.LastModified
	case ContentStory:
		return c.Story.LastModified
	}
	return time.Time{}
}

// TextScore returns the text-relevance score regardless of kind. Zero when
// the query ran without a text filter.
func (c Content) TextScore() float64 {
	switch c.Type {
	case ContentSnipbit:
		return c.Snipbit.TextScore
	case ContentBigbit:
		return c.Bigbit.TextScore
	case ContentStory:
		return c.Story.TextScore
	}
	return 0
}

// Shared field bounds for content metadata. The same limits apply to every
// kind, but each violation keeps its own error code.
const (
	MaxNameLength        = 50
	MaxDescriptionLength = 300
	MaxTagLength         = 25
	MaxTagCount          = 8
	MaxCommentLength     = 1000
)

func validateTags(tags []string) error {
	if err := validation.Validate(tags, validation.Required, validation.Length(1, MaxTagCount)); err != nil {
		return apperrors.New(apperrors.ErrInvalidTags, "between 1 and 8 tags are required")
	}
	for _, tag := range tags {
		if err := validation.Validate(tag, validation.Required, validation.Length(1, MaxTagLength)); err != nil {
			return apperrors.New(apperrors.ErrInvalidTag, "tags must be non-empty and at most 25 characters")
		}
	}
	return nil
}
