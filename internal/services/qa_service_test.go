package services

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"codetidbit/internal/models"
)

func TestVoteUpdate_Upvote(t *testing.T) {
	update := voteUpdate("questions", models.VoteUp, "user-1")

	expected := bson.M{
		"$addToSet": bson.M{"questions.$.upvotes": "user-1"},
		"$pull":     bson.M{"questions.$.downvotes": "user-1"},
	}
	if !reflect.DeepEqual(update, expected) {
		t.Errorf("voteUpdate = %v, expected %v", update, expected)
	}
}

func TestVoteUpdate_Downvote(t *testing.T) {
	update := voteUpdate("answers", models.VoteDown, "user-2")

	expected := bson.M{
		"$addToSet": bson.M{"answers.$.downvotes": "user-2"},
		"$pull":     bson.M{"answers.$.upvotes": "user-2"},
	}
	if !reflect.DeepEqual(update, expected) {
		t.Errorf("voteUpdate = %v, expected %v", update, expected)
	}
}

func TestAuthorScopedFilter(t *testing.T) {
	tests := []struct {
		arrayField string
		elementID  string
	}{
		{"questions", "q-1"},
		{"answers", "a-1"},
		{"questionComments", "qc-1"},
		{"answerComments", "ac-1"},
	}

	for _, tt := range tests {
		filter := authorScopedFilter("507f1f77bcf86cd799439011", tt.arrayField, tt.elementID, "user-1")

		expected := bson.M{
			"tidbitId":    "507f1f77bcf86cd799439011",
			tt.arrayField: bson.M{"$elemMatch": bson.M{"id": tt.elementID, "authorId": "user-1"}},
		}
		if !reflect.DeepEqual(filter, expected) {
			t.Errorf("authorScopedFilter(%s) = %v, expected %v", tt.arrayField, filter, expected)
		}
	}
}

func TestQuestionCascade(t *testing.T) {
	update := questionCascade("q-1")

	// The question is pulled by its own ID; answers and both comment arrays
	// are pulled by the question reference, so nothing pointing at q-1 can
	// survive the update.
	expected := bson.M{"$pull": bson.M{
		"questions":        bson.M{"id": "q-1"},
		"answers":          bson.M{"questionId": "q-1"},
		"questionComments": bson.M{"questionId": "q-1"},
		"answerComments":   bson.M{"questionId": "q-1"},
	}}
	if !reflect.DeepEqual(update, expected) {
		t.Errorf("questionCascade = %v, expected %v", update, expected)
	}
}

func TestAnswerCascade(t *testing.T) {
	update := answerCascade("a-1")

	// Comments on other answers and everything question-level stay put.
	expected := bson.M{"$pull": bson.M{
		"answers":        bson.M{"id": "a-1"},
		"answerComments": bson.M{"answerId": "a-1"},
	}}
	if !reflect.DeepEqual(update, expected) {
		t.Errorf("answerCascade = %v, expected %v", update, expected)
	}
}

func TestQAActionLink(t *testing.T) {
	tp := models.TidbitPointer{Type: models.ContentSnipbit, TargetID: "507f1f77bcf86cd799439011"}
	link := qaActionLink(tp, "q-1")
	if link != "/snipbits/507f1f77bcf86cd799439011/qa#q-1" {
		t.Errorf("Unexpected action link: %s", link)
	}

	tp.Type = models.ContentBigbit
	link = qaActionLink(tp, "a-9")
	if link != "/bigbits/507f1f77bcf86cd799439011/qa#a-9" {
		t.Errorf("Unexpected action link: %s", link)
	}
}

func TestQAService_CollectionFor_RejectsStories(t *testing.T) {
	service := NewQAService(nil, nil, nil)

	_, err := service.collectionFor(models.TidbitPointer{Type: models.ContentStory, TargetID: "507f1f77bcf86cd799439011"})
	if err == nil {
		t.Fatal("Expected error for story pointer")
	}
}
