package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"codetidbit/internal/apperrors"
)

// Rating is a closed enum. Like is presently its only member; the type
// exists so dislikes can be added without a data migration.
type Rating int

const (
	RatingLike Rating = 1
)

// Validate checks enum membership.
func (r Rating) Validate() error {
	if r != RatingLike {
		return apperrors.New(apperrors.ErrInvalidRating, "unknown rating")
	}
	return nil
}

// Opinion records a user's rating on a piece of content. Unique per
// (content, user) pair.
type Opinion struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ContentPointer ContentPointer     `bson:"contentPointer" json:"contentPointer"`
	UserID         string             `bson:"userId" json:"userId"`
	Rating         Rating             `bson:"rating" json:"rating"`
}

// OpinionRequest is the request body for adding or removing an opinion.
type OpinionRequest struct {
	ContentPointer ContentPointer `json:"contentPointer"`
	Rating         Rating         `json:"rating"`
}

// Validate checks the pointer and the rating enum.
func (r OpinionRequest) Validate() error {
	if err := r.ContentPointer.Validate(); err != nil {
		return err
	}
	return r.Rating.Validate()
}

// Completed marks that a user finished a tidbit. Unique per (tidbit, user)
// pair, upsert semantics.
type Completed struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	TidbitPointer TidbitPointer      `bson:"tidbitPointer" json:"tidbitPointer"`
	UserID        string             `bson:"userId" json:"userId"`
}

// CompletedRequest is the request body for completed-marking endpoints.
type CompletedRequest struct {
	TidbitPointer TidbitPointer `json:"tidbitPointer"`
}

// Validate checks the pointer shape.
func (r CompletedRequest) Validate() error {
	return r.TidbitPointer.Validate()
}
