package services

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"codetidbit/internal/apperrors"
	"codetidbit/internal/database"
	"codetidbit/internal/models"
)

// notificationRetryAttempts bounds best-effort persistence. No backoff:
// either the store recovers immediately or the notification is dropped.
const notificationRetryAttempts = 3

// notificationWorthyCounts are the fixed thresholds below 1000; above 1000
// every multiple of 1000 notifies.
var notificationWorthyCounts = map[int64]bool{
	5: true, 10: true, 25: true, 50: true, 75: true, 100: true,
	200: true, 300: true, 400: true, 500: true, 750: true, 1000: true,
}

// IsCountNotificationWorthy reports whether crossing count should notify.
func IsCountNotificationWorthy(count int64) bool {
	if count > 1000 {
		return count%1000 == 0
	}
	return notificationWorthyCounts[count]
}

// NotificationService persists best-effort notifications, deduplicated by
// semantic hash.
type NotificationService struct {
	mongodb    *database.MongoDB
	collection *mongo.Collection
	metrics    *Metrics
}

// NewNotificationService creates a new notification service
func NewNotificationService(mongodb *database.MongoDB, metrics *Metrics) *NotificationService {
	var collection *mongo.Collection
	if mongodb != nil {
		collection = mongodb.Collection(database.CollectionNotifications)
	}
	return &NotificationService{
		mongodb:    mongodb,
		collection: collection,
		metrics:    metrics,
	}
}

// AddNotification upserts by (userId, hash): it inserts only when absent, so
// replaying the same logical event never double-notifies.
func (s *NotificationService) AddNotification(ctx context.Context, n *models.Notification) error {
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"userId": n.UserID, "hash": n.Hash},
		bson.M{"$setOnInsert": n},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.NotificationsCreated.Inc()
	}
	return nil
}

// MakeNotifications builds zero or more notifications for an event. It may
// query other data (e.g. counts) to decide whether a threshold was crossed.
type MakeNotifications func(ctx context.Context) ([]*models.Notification, error)

// AddNotificationWrapper runs the constructor and persists each produced
// notification with bounded retries. Failures are logged and swallowed —
// notification delivery never fails the triggering request. Call on a
// goroutine; it is fire-and-forget.
func (s *NotificationService) AddNotificationWrapper(ctx context.Context, construct MakeNotifications) {
	notifications, err := construct(ctx)
	if err != nil {
		log.Printf("⚠️ [NOTIFY] Constructor failed: %v", err)
		return
	}

	for _, n := range notifications {
		if n == nil {
			continue
		}
		if !n.Type.Valid() {
			log.Printf("⚠️ [NOTIFY] Dropping malformed notification for user %s", n.UserID)
			continue
		}

		var lastErr error
		persisted := false
		for attempt := 1; attempt <= notificationRetryAttempts; attempt++ {
			if lastErr = s.AddNotification(ctx, n); lastErr == nil {
				persisted = true
				break
			}
			if s.metrics != nil {
				s.metrics.NotificationRetries.Inc()
			}
		}
		if !persisted {
			if s.metrics != nil {
				s.metrics.NotificationFailures.Inc()
			}
			log.Printf("❌ [NOTIFY] Dropped notification for user %s after %d attempts: %v",
				n.UserID, notificationRetryAttempts, lastErr)
		}
	}
}

// GetNotifications lists a user's notifications, unread first, newest first
// within each group.
func (s *NotificationService) GetNotifications(ctx context.Context, userID string, page, pageSize int) ([]models.NotificationResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > models.MaxPageSize {
		pageSize = models.DefaultPageSize
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "read", Value: 1}, {Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := s.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		log.Printf("❌ [NOTIFY] Failed to list notifications for %s: %v", userID, err)
		return nil, apperrors.Internal()
	}
	defer cursor.Close(ctx)

	var docs []models.Notification
	if err := cursor.All(ctx, &docs); err != nil {
		log.Printf("❌ [NOTIFY] Failed to decode notifications for %s: %v", userID, err)
		return nil, apperrors.Internal()
	}

	responses := make([]models.NotificationResponse, 0, len(docs))
	for i := range docs {
		responses = append(responses, docs[i].ToResponse())
	}
	return responses, nil
}

// MarkRead flags one of the user's notifications as read. The filter is
// scoped to the owner, so another user's notification reads as not found.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	objectID, err := primitive.ObjectIDFromHex(notificationID)
	if err != nil {
		return apperrors.New(apperrors.ErrInvalidID, "malformed notification ID")
	}

	result, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": objectID, "userId": userID},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		log.Printf("❌ [NOTIFY] Failed to mark notification %s read: %v", notificationID, err)
		return apperrors.Internal()
	}
	if result.MatchedCount == 0 {
		return apperrors.New(apperrors.ErrNotificationNotFound, "notification does not exist")
	}
	return nil
}

// DeleteReadOlderThan removes read notifications created before the cutoff.
// Used by the cleanup job.
func (s *NotificationService) DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.collection.DeleteMany(ctx, bson.M{
		"read":      true,
		"createdAt": bson.M{"$lt": cutoff},
	})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
