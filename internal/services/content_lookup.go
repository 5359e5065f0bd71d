package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"codetidbit/internal/apperrors"
	"codetidbit/internal/database"
	"codetidbit/internal/models"
)

// contentMeta is the slice of a content document that cross-cutting
// services (opinions, completed, notifications) need: who owns it and what
// to call it in a message.
type contentMeta struct {
	Author string `bson:"author"`
	Name   string `bson:"name"`
}

// contentLookup resolves content pointers against the three content
// collections without dragging in the full services.
type contentLookup struct {
	snipbits *mongo.Collection
	bigbits  *mongo.Collection
	stories  *mongo.Collection
}

func newContentLookup(mongodb *database.MongoDB) *contentLookup {
	if mongodb == nil {
		return &contentLookup{}
	}
	return &contentLookup{
		snipbits: mongodb.Collection(database.CollectionSnipbits),
		bigbits:  mongodb.Collection(database.CollectionBigbits),
		stories:  mongodb.Collection(database.CollectionStories),
	}
}

func (l *contentLookup) collectionFor(t models.ContentType) (*mongo.Collection, error) {
	switch t {
	case models.ContentSnipbit:
		return l.snipbits, nil
	case models.ContentBigbit:
		return l.bigbits, nil
	case models.ContentStory:
		return l.stories, nil
	}
	return nil, fmt.Errorf("unknown content type %d", t)
}

// meta fetches author and name for the pointed-at content. A missing
// document is reported with the content-does-not-exist code.
func (l *contentLookup) meta(ctx context.Context, cp models.ContentPointer) (*contentMeta, error) {
	collection, err := l.collectionFor(cp.Type)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrInvalidContentPointer, "unknown content type")
	}

	objectID, err := primitive.ObjectIDFromHex(cp.TargetID)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrInvalidContentPointer, "malformed content ID")
	}

	var meta contentMeta
	err = collection.FindOne(ctx,
		bson.M{"_id": objectID},
		options.FindOne().SetProjection(bson.M{"author": 1, "name": 1}),
	).Decode(&meta)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.New(apperrors.ErrContentDoesNotExist, "content does not exist")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content meta: %w", err)
	}
	return &meta, nil
}

// exists reports whether the pointed-at tidbit exists. Used for
// reference-time checks when pages are added to stories.
func (l *contentLookup) exists(ctx context.Context, tp models.TidbitPointer) (bool, error) {
	meta, err := l.meta(ctx, tp.ContentPointer())
	if err != nil {
		if appErr, ok := err.(*apperrors.Error); ok && appErr.Code == apperrors.ErrContentDoesNotExist {
			return false, nil
		}
		return false, err
	}
	return meta != nil, nil
}
