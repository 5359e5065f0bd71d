package models

import (
	"testing"
)

func TestNotificationHash_Deterministic(t *testing.T) {
	a := NotificationHash("user-1", NotificationTidbitLikeCount, "Your snipbit reached 5 likes", "/snipbits/x")
	b := NotificationHash("user-1", NotificationTidbitLikeCount, "Your snipbit reached 5 likes", "/snipbits/x")
	if a != b {
		t.Error("Expected identical inputs to hash identically")
	}
}

func TestNotificationHash_DistinguishesInputs(t *testing.T) {
	base := NotificationHash("user-1", NotificationNewQuestion, "Someone asked a question on your tidbit", "/snipbits/x/qa#q-1")

	if NotificationHash("user-2", NotificationNewQuestion, "Someone asked a question on your tidbit", "/snipbits/x/qa#q-1") == base {
		t.Error("Expected different users to hash differently")
	}
	if NotificationHash("user-1", NotificationNewAnswer, "Someone asked a question on your tidbit", "/snipbits/x/qa#q-1") == base {
		t.Error("Expected different types to hash differently")
	}
	// Same rendered message about two distinct questions must not collapse.
	if NotificationHash("user-1", NotificationNewQuestion, "Someone asked a question on your tidbit", "/snipbits/x/qa#q-2") == base {
		t.Error("Expected different action links to hash differently")
	}
}

func TestNewNotification(t *testing.T) {
	n := NewNotification("user-1", NotificationStoryLikeCount, "Your story reached 10 likes", "/stories/x")

	if n.Read {
		t.Error("Expected new notification to be unread")
	}
	if n.Hash == "" {
		t.Error("Expected hash to be set")
	}
	if n.CreatedAt.IsZero() {
		t.Error("Expected createdAt to be set")
	}
	if n.Hash != NotificationHash("user-1", NotificationStoryLikeCount, "Your story reached 10 likes", "/stories/x") {
		t.Error("Expected hash to match the semantic identity digest")
	}
}

func TestNotificationType_Valid(t *testing.T) {
	valid := []NotificationType{
		NotificationTidbitLikeCount, NotificationTidbitCompletedCount, NotificationStoryLikeCount,
		NotificationNewQuestion, NotificationNewAnswer, NotificationNewQuestionComment,
		NotificationNewAnswerComment, NotificationQuestionPinned, NotificationAnswerPinned,
	}
	for _, nt := range valid {
		if !nt.Valid() {
			t.Errorf("Expected type %d to be valid", nt)
		}
	}
	if NotificationType(0).Valid() || NotificationType(10).Valid() {
		t.Error("Expected out-of-range types to be invalid")
	}
}
