package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationType is a closed enum. Every type must be handled when
// rendering; adding a member means updating DefaultMessage below.
type NotificationType int

const (
	NotificationTidbitLikeCount      NotificationType = 1
	NotificationTidbitCompletedCount NotificationType = 2
	NotificationStoryLikeCount       NotificationType = 3
	NotificationNewQuestion          NotificationType = 4
	NotificationNewAnswer            NotificationType = 5
	NotificationNewQuestionComment   NotificationType = 6
	NotificationNewAnswerComment     NotificationType = 7
	NotificationQuestionPinned       NotificationType = 8
	NotificationAnswerPinned         NotificationType = 9
)

// Valid reports enum membership.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationTidbitLikeCount,
		NotificationTidbitCompletedCount,
		NotificationStoryLikeCount,
		NotificationNewQuestion,
		NotificationNewAnswer,
		NotificationNewQuestionComment,
		NotificationNewAnswerComment,
		NotificationQuestionPinned,
		NotificationAnswerPinned:
		return true
	}
	return false
}

// Notification is a best-effort message to a user. Hash is a deterministic
// digest of the notification's semantic identity; the (userId, hash) unique
// index makes replayed events collapse to a single document.
type Notification struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID     string             `bson:"userId" json:"userId"`
	Type       NotificationType   `bson:"type" json:"type"`
	Message    string             `bson:"message" json:"message"`
	ActionLink string             `bson:"actionLink,omitempty" json:"actionLink,omitempty"`
	Read       bool               `bson:"read" json:"read"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	Hash       string             `bson:"hash" json:"-"`
}

// NotificationResponse is the public shape.
type NotificationResponse struct {
	ID         string           `json:"id"`
	Type       NotificationType `json:"type"`
	Message    string           `json:"message"`
	ActionLink string           `json:"actionLink,omitempty"`
	Read       bool             `json:"read"`
	CreatedAt  time.Time        `json:"createdAt"`
}

// ToResponse renames the store key.
func (n *Notification) ToResponse() NotificationResponse {
	return NotificationResponse{
		ID:         n.ID.Hex(),
		Type:       n.Type,
		Message:    n.Message,
		ActionLink: n.ActionLink,
		Read:       n.Read,
		CreatedAt:  n.CreatedAt,
	}
}

// NewNotification builds a notification with its dedup hash computed from
// the semantic identity (recipient, type, message, action link). Two
// threshold crossings that render the same message hash identically and
// never double-notify; the action link keeps notifications about distinct
// questions or answers distinct.
func NewNotification(userID string, t NotificationType, message, actionLink string) *Notification {
	return &Notification{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		Type:       t,
		Message:    message,
		ActionLink: actionLink,
		Read:       false,
		CreatedAt:  time.Now(),
		Hash:       NotificationHash(userID, t, message, actionLink),
	}
}

// NotificationHash digests the semantic identity of a notification.
func NotificationHash(userID string, t NotificationType, message, actionLink string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%s|%s", userID, t, message, actionLink)))
	return hex.EncodeToString(sum[:])
}
