package jobs

import (
	"context"
	"log"
	"time"

	"codetidbit/internal/services"
)

// NotificationCleanupJob deletes read notifications older than the retention
// window. Unread notifications are never deleted regardless of age.
type NotificationCleanupJob struct {
	notifications *services.NotificationService
	maxAge        time.Duration
	period        time.Duration
}

// NewNotificationCleanupJob creates a new notification cleanup job
func NewNotificationCleanupJob(notifications *services.NotificationService, maxAge, period time.Duration) *NotificationCleanupJob {
	return &NotificationCleanupJob{
		notifications: notifications,
		maxAge:        maxAge,
		period:        period,
	}
}

func (j *NotificationCleanupJob) Name() string { return "notification-cleanup" }

func (j *NotificationCleanupJob) Interval() time.Duration { return j.period }

// Run deletes read notifications past the retention cutoff.
func (j *NotificationCleanupJob) Run(ctx context.Context) error {
	cutoff := time.Now().Add(-j.maxAge)

	deleted, err := j.notifications.DeleteReadOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}
	if deleted > 0 {
		log.Printf("🧹 [NOTIFICATIONS] Deleted %d read notifications older than %s", deleted, cutoff.Format(time.RFC3339))
	}
	return nil
}
