package services

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"codetidbit/internal/apperrors"
	"codetidbit/internal/database"
	"codetidbit/internal/models"
)

// CompletedService marks tidbits as finished per user. Upsert semantics:
// marking twice is a no-op, unmarking an unmarked tidbit is a no-op.
type CompletedService struct {
	mongodb       *database.MongoDB
	collection    *mongo.Collection
	lookup        *contentLookup
	notifications *NotificationService
}

// NewCompletedService creates a new completed service
func NewCompletedService(mongodb *database.MongoDB, notifications *NotificationService) *CompletedService {
	var collection *mongo.Collection
	if mongodb != nil {
		collection = mongodb.Collection(database.CollectionCompleted)
	}
	return &CompletedService{
		mongodb:       mongodb,
		collection:    collection,
		lookup:        newContentLookup(mongodb),
		notifications: notifications,
	}
}

// AddCompleted upserts the marker. A worthy completion-count crossing fires
// a notification to the tidbit author, fire-and-forget.
func (s *CompletedService) AddCompleted(ctx context.Context, userID string, req models.CompletedRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	meta, err := s.lookup.meta(ctx, req.TidbitPointer.ContentPointer())
	if err != nil {
		return apperrors.AsError(err)
	}

	filter := bson.M{
		"tidbitPointer.tidbitType": req.TidbitPointer.Type,
		"tidbitPointer.targetId":   req.TidbitPointer.TargetID,
		"userId":                   userID,
	}
	update := bson.M{"$set": bson.M{
		"tidbitPointer": req.TidbitPointer,
		"userId":        userID,
	}}

	if _, err := s.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		log.Printf("❌ [COMPLETED] Failed to upsert marker: %v", err)
		return apperrors.Internal()
	}

	if meta.Author != userID {
		go s.notifications.AddNotificationWrapper(context.Background(),
			s.completedCountNotification(req.TidbitPointer, meta))
	}

	return nil
}

func (s *CompletedService) completedCountNotification(tp models.TidbitPointer, meta *contentMeta) MakeNotifications {
	return func(ctx context.Context) ([]*models.Notification, error) {
		count, err := s.CountCompleted(ctx, tp)
		if err != nil {
			return nil, err
		}
		if !IsCountNotificationWorthy(count) {
			return nil, nil
		}

		return []*models.Notification{models.NewNotification(
			meta.Author,
			models.NotificationTidbitCompletedCount,
			fmt.Sprintf("%d people have completed \"%s\"!", count, meta.Name),
			actionLinkFor(tp.ContentPointer()),
		)}, nil
	}
}

// RemoveCompleted deletes the marker; removing an absent marker is fine.
func (s *CompletedService) RemoveCompleted(ctx context.Context, userID string, req models.CompletedRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if _, err := s.collection.DeleteOne(ctx, bson.M{
		"tidbitPointer.tidbitType": req.TidbitPointer.Type,
		"tidbitPointer.targetId":   req.TidbitPointer.TargetID,
		"userId":                   userID,
	}); err != nil {
		log.Printf("❌ [COMPLETED] Failed to delete marker: %v", err)
		return apperrors.Internal()
	}
	return nil
}

// IsCompleted reports whether the user finished the tidbit.
func (s *CompletedService) IsCompleted(ctx context.Context, userID string, tp models.TidbitPointer) (bool, error) {
	if err := tp.Validate(); err != nil {
		return false, err
	}

	count, err := s.collection.CountDocuments(ctx, bson.M{
		"tidbitPointer.tidbitType": tp.Type,
		"tidbitPointer.targetId":   tp.TargetID,
		"userId":                   userID,
	})
	if err != nil {
		log.Printf("❌ [COMPLETED] Failed to count markers: %v", err)
		return false, apperrors.Internal()
	}
	return count > 0, nil
}

// CountCompleted counts how many users finished the tidbit.
func (s *CompletedService) CountCompleted(ctx context.Context, tp models.TidbitPointer) (int64, error) {
	count, err := s.collection.CountDocuments(ctx, bson.M{
		"tidbitPointer.tidbitType": tp.Type,
		"tidbitPointer.targetId":   tp.TargetID,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count completed markers: %w", err)
	}
	return count, nil
}
