package services

import (
	"context"
	"fmt"
	"log"
	"time"

	cache "github.com/patrickmn/go-cache"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"codetidbit/internal/apperrors"
	"codetidbit/internal/database"
	"codetidbit/internal/models"
)

// OpinionService handles per-user ratings on content. One opinion per
// (content, user) pair, enforced by the unique index; adds are upserts.
type OpinionService struct {
	mongodb       *database.MongoDB
	collection    *mongo.Collection
	lookup        *contentLookup
	notifications *NotificationService
	countCache    *cache.Cache // short TTL cache for hot like counts
}

// NewOpinionService creates a new opinion service
func NewOpinionService(mongodb *database.MongoDB, notifications *NotificationService) *OpinionService {
	var collection *mongo.Collection
	if mongodb != nil {
		collection = mongodb.Collection(database.CollectionOpinions)
	}
	return &OpinionService{
		mongodb:       mongodb,
		collection:    collection,
		lookup:        newContentLookup(mongodb),
		notifications: notifications,
		countCache:    cache.New(1*time.Minute, 5*time.Minute),
	}
}

// AddOpinion upserts the user's rating on the pointed-at content. The
// content must exist at rating time. A worthy like-count crossing fires a
// notification to the content author, fire-and-forget.
func (s *OpinionService) AddOpinion(ctx context.Context, userID string, req models.OpinionRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	meta, err := s.lookup.meta(ctx, req.ContentPointer)
	if err != nil {
		return apperrors.AsError(err)
	}

	filter := bson.M{
		"contentPointer.contentType": req.ContentPointer.Type,
		"contentPointer.targetId":    req.ContentPointer.TargetID,
		"userId":                     userID,
	}
	update := bson.M{"$set": bson.M{
		"contentPointer": req.ContentPointer,
		"userId":         userID,
		"rating":         req.Rating,
	}}

	if _, err := s.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		log.Printf("❌ [OPINION] Failed to upsert opinion: %v", err)
		return apperrors.Internal()
	}

	s.countCache.Delete(countCacheKey(req.ContentPointer, req.Rating))

	// Author never gets notified about their own like.
	if meta.Author != userID {
		go s.notifications.AddNotificationWrapper(context.Background(),
			s.likeCountNotification(req.ContentPointer, req.Rating, meta))
	}

	return nil
}

// likeCountNotification builds the threshold-crossing notification, or
// nothing when the current count is not worthy.
func (s *OpinionService) likeCountNotification(cp models.ContentPointer, rating models.Rating, meta *contentMeta) MakeNotifications {
	return func(ctx context.Context) ([]*models.Notification, error) {
		count, err := s.CountOpinions(ctx, cp, rating)
		if err != nil {
			return nil, err
		}
		if !IsCountNotificationWorthy(count) {
			return nil, nil
		}

		notificationType := models.NotificationTidbitLikeCount
		if cp.Type == models.ContentStory {
			notificationType = models.NotificationStoryLikeCount
		}

		return []*models.Notification{models.NewNotification(
			meta.Author,
			notificationType,
			fmt.Sprintf("\"%s\" has reached %d likes!", meta.Name, count),
			actionLinkFor(cp),
		)}, nil
	}
}

// RemoveOpinion deletes the user's rating. Removing a rating that was never
// added reads as content-does-not-exist-class not found.
func (s *OpinionService) RemoveOpinion(ctx context.Context, userID string, req models.OpinionRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	result, err := s.collection.DeleteOne(ctx, bson.M{
		"contentPointer.contentType": req.ContentPointer.Type,
		"contentPointer.targetId":    req.ContentPointer.TargetID,
		"userId":                     userID,
		"rating":                     req.Rating,
	})
	if err != nil {
		log.Printf("❌ [OPINION] Failed to delete opinion: %v", err)
		return apperrors.Internal()
	}
	if result.DeletedCount == 0 {
		return apperrors.New(apperrors.ErrContentDoesNotExist, "no such opinion")
	}

	s.countCache.Delete(countCacheKey(req.ContentPointer, req.Rating))
	return nil
}

// GetOpinion returns the user's rating on the content, nil when none.
func (s *OpinionService) GetOpinion(ctx context.Context, userID string, cp models.ContentPointer) (*models.Opinion, error) {
	if err := cp.Validate(); err != nil {
		return nil, err
	}

	var opinion models.Opinion
	err := s.collection.FindOne(ctx, bson.M{
		"contentPointer.contentType": cp.Type,
		"contentPointer.targetId":    cp.TargetID,
		"userId":                     userID,
	}).Decode(&opinion)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		log.Printf("❌ [OPINION] Failed to fetch opinion: %v", err)
		return nil, apperrors.Internal()
	}
	return &opinion, nil
}

// CountOpinions counts ratings of one kind on one piece of content, with a
// short TTL cache in front of the store.
func (s *OpinionService) CountOpinions(ctx context.Context, cp models.ContentPointer, rating models.Rating) (int64, error) {
	key := countCacheKey(cp, rating)
	if cached, found := s.countCache.Get(key); found {
		return cached.(int64), nil
	}

	count, err := s.collection.CountDocuments(ctx, bson.M{
		"contentPointer.contentType": cp.Type,
		"contentPointer.targetId":    cp.TargetID,
		"rating":                     rating,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count opinions: %w", err)
	}

	s.countCache.Set(key, count, cache.DefaultExpiration)
	return count, nil
}

// HasOpinion reports whether the user rated the content.
func (s *OpinionService) HasOpinion(ctx context.Context, userID string, cp models.ContentPointer, rating models.Rating) (bool, error) {
	if userID == "" {
		return false, nil
	}
	opinion, err := s.GetOpinion(ctx, userID, cp)
	if err != nil {
		return false, err
	}
	return opinion != nil && opinion.Rating == rating, nil
}

func countCacheKey(cp models.ContentPointer, rating models.Rating) string {
	return fmt.Sprintf("%d:%s:%d", cp.Type, cp.TargetID, rating)
}

func actionLinkFor(cp models.ContentPointer) string {
	switch cp.Type {
	case models.ContentSnipbit:
		return "/snipbits/" + cp.TargetID
	case models.ContentBigbit:
		return "/bigbits/" + cp.TargetID
	case models.ContentStory:
		return "/stories/" + cp.TargetID
	}
	return ""
}
