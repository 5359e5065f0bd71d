package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"codetidbit/internal/apperrors"
	"codetidbit/internal/database"
	"codetidbit/internal/models"
)

// QAService mutates the one-QA-document-per-tidbit store. Every mutation is
// a single conditional update: validate input, issue one UpdateOne whose
// filter encodes both targeting and authorization, then inspect the write
// result. Cascade deletes pull from several embedded arrays in that one
// update, so they are atomic without transactions. Author-scoped filters
// that fail to match surface as not-found, which deliberately hides whether
// the element exists at all.
type QAService struct {
	mongodb       *database.MongoDB
	collections   map[models.ContentType]*mongo.Collection
	notifications *NotificationService
	metrics       *Metrics
}

// NewQAService creates a new QA service
func NewQAService(mongodb *database.MongoDB, notifications *NotificationService, metrics *Metrics) *QAService {
	collections := make(map[models.ContentType]*mongo.Collection)
	if mongodb != nil {
		collections[models.ContentSnipbit] = mongodb.Collection(database.CollectionSnipbitQA)
		collections[models.ContentBigbit] = mongodb.Collection(database.CollectionBigbitQA)
	}
	return &QAService{
		mongodb:       mongodb,
		collections:   collections,
		notifications: notifications,
		metrics:       metrics,
	}
}

func (s *QAService) collectionFor(tp models.TidbitPointer) (*mongo.Collection, error) {
	collection, ok := s.collections[tp.Type]
	if !ok {
		return nil, apperrors.New(apperrors.ErrInvalidTidbitPointer, "pointer must reference a snipbit or bigbit")
	}
	return collection, nil
}

// CreateBlankQA creates the tidbit's QA document exactly once. First write
// wins; a second attempt for the same tidbit is a reported conflict, not a
// silent no-op.
func (s *QAService) CreateBlankQA(ctx context.Context, tp models.TidbitPointer, tidbitAuthor string) error {
	if err := tp.Validate(); err != nil {
		return err
	}
	collection, err := s.collectionFor(tp)
	if err != nil {
		return err
	}

	qa := &models.QA{
		ID:               primitive.NewObjectID(),
		TidbitID:         tp.TargetID,
		TidbitAuthor:     tidbitAuthor,
		Questions:        []models.Question{},
		QuestionComments: []models.QuestionComment{},
		Answers:          []models.Answer{},
		AnswerComments:   []models.AnswerComment{},
	}

	if _, err := collection.InsertOne(ctx, qa); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.New(apperrors.ErrQAAlreadyExists, "QA document already exists for this tidbit")
		}
		log.Printf("❌ [QA] Failed to create QA document for %s: %v", tp.TargetID, err)
		return apperrors.Internal()
	}
	return nil
}

// GetQA fetches the tidbit's QA document with vote sets compressed relative
// to the requesting user.
func (s *QAService) GetQA(ctx context.Context, tp models.TidbitPointer, requestingUser string) (*models.QAResponse, error) {
	qa, err := s.fetchQA(ctx, tp, nil)
	if err != nil {
		return nil, err
	}
	return qa.ToResponse(requestingUser), nil
}

// fetchQA loads the QA document, optionally with a projection.
func (s *QAService) fetchQA(ctx context.Context, tp models.TidbitPointer, projection bson.M) (*models.QA, error) {
	if err := tp.Validate(); err != nil {
		return nil, err
	}
	collection, err := s.collectionFor(tp)
	if err != nil {
		return nil, err
	}

	findOpts := options.FindOne()
	if projection != nil {
		findOpts.SetProjection(projection)
	}

	var qa models.QA
	err = collection.FindOne(ctx, bson.M{"tidbitId": tp.TargetID}, findOpts).Decode(&qa)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NotFoundQA()
	}
	if err != nil {
		log.Printf("❌ [QA] Failed to fetch QA document for %s: %v", tp.TargetID, err)
		return nil, apperrors.Internal()
	}
	return &qa, nil
}

// applyUpdate runs the shared three-stage write check: the update must be
// acknowledged, must match a document, and (unless the operation is
// legitimately idempotent, like repeating a vote) must modify it.
func (s *QAService) applyUpdate(ctx context.Context, operation string, collection *mongo.Collection, filter, update bson.M, allowNoop bool) error {
	result, err := collection.UpdateOne(ctx, filter, update)
	if err != nil {
		log.Printf("❌ [QA] %s write failed: %v", operation, err)
		return apperrors.Internal()
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFoundQA()
	}
	if !allowNoop && result.ModifiedCount == 0 {
		log.Printf("❌ [QA] %s matched but modified nothing", operation)
		return apperrors.Internal()
	}

	if s.metrics != nil {
		s.metrics.QAMutations.WithLabelValues(operation).Inc()
	}
	return nil
}

// AskQuestion appends a question with a server-generated ID.
func (s *QAService) AskQuestion(ctx context.Context, tp models.TidbitPointer, userID string, req models.QuestionTextRequest) (*models.QuestionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// The fetch both confirms the parent document exists and yields the
	// tidbit author for the notification.
	qa, err := s.fetchQA(ctx, tp, bson.M{"tidbitAuthor": 1})
	if err != nil {
		return nil, err
	}

	collection, err := s.collectionFor(tp)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	question := models.Question{
		ID:           uuid.NewString(),
		AuthorID:     userID,
		QuestionText: req.QuestionText,
		Upvotes:      []string{},
		Downvotes:    []string{},
		CreatedAt:    now,
		LastModified: now,
	}

	err = s.applyUpdate(ctx, "ask",
		collection,
		bson.M{"tidbitId": tp.TargetID},
		bson.M{"$push": bson.M{"questions": question}},
		false,
	)
	if err != nil {
		return nil, err
	}

	if qa.TidbitAuthor != userID {
		go s.notifications.AddNotificationWrapper(context.Background(), staticNotification(
			qa.TidbitAuthor,
			models.NotificationNewQuestion,
			"Someone asked a question on your tidbit",
			qaActionLink(tp, question.ID),
		))
	}

	response := question.ToResponseFor(userID)
	return &response, nil
}

// EditQuestion replaces the text and bumps lastModified, scoped to
// (question ID, author).
func (s *QAService) EditQuestion(ctx context.Context, tp models.TidbitPointer, userID, questionID string, req models.QuestionTextRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if err := tp.Validate(); err != nil {
		return err
	}
	collection, err := s.collectionFor(tp)
	if err != nil {
		return err
	}

	return s.applyUpdate(ctx, "edit-question",
		collection,
		authorScopedFilter(tp.TargetID, "questions", questionID, userID),
		bson.M{"$set": bson.M{
			"questions.$.questionText": req.QuestionText,
			"questions.$.lastModified": time.Now(),
		}},
		false,
	)
}

// DeleteQuestion removes the question and cascades to its answers and every
// comment on either, in one update against the one document.
func (s *QAService) DeleteQuestion(ctx context.Context, tp models.TidbitPointer, userID, questionID string) error {
	if err := tp.Validate(); err != nil {
		return err
	}
	collection, err := s.collectionFor(tp)
	if err != nil {
		return err
	}

	return s.applyUpdate(ctx, "delete-question",
		collection,
		authorScopedFilter(tp.TargetID, "questions", questionID, userID),
		questionCascade(questionID),
		false,
	)
}

// AnswerQuestion appends an answer; the parent question must exist.
func (s *QAService) AnswerQuestion(ctx context.Context, tp models.TidbitPointer, userID, questionID string, req models.AnswerTextRequest) (*models.AnswerResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	parent, err := s.fetchQuestion(ctx, tp, questionID)
	if err != nil {
		return nil, err
	}

	collection, err := s.collectionFor(tp)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	answer := models.Answer{
		ID:           uuid.NewString(),
		QuestionID:   questionID,
		AuthorID:     userID,
		AnswerText:   req.AnswerText,
		Upvotes:      []string{},
		Downvotes:    []string{},
		CreatedAt:    now,
		LastModified: now,
	}

	err = s.applyUpdate(ctx, "answer",
		collection,
		bson.M{"tidbitId": tp.TargetID, "questions.id": questionID},
		bson.M{"$push": bson.M{"answers": answer}},
		false,
	)
	if err != nil {
		return nil, err
	}

	if parent.AuthorID != userID {
		go s.notifications.AddNotificationWrapper(context.Background(), staticNotification(
			parent.AuthorID,
			models.NotificationNewAnswer,
			"Your question received a new answer",
			qaActionLink(tp, answer.ID),
		))
	}

	response := answer.ToResponseFor(userID)
	return &response, nil
}

// EditAnswer replaces the text and bumps lastModified, scoped to
// (answer ID, author).
func (s *QAService) EditAnswer(ctx context.Context, tp models.TidbitPointer, userID, answerID string, req models.AnswerTextRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if err := tp.Validate(); err != nil {
		return err
	}
	collection, err := s.collectionFor(tp)
	if err != nil {
		return err
	}

	return s.applyUpdate(ctx, "edit-answer",
		collection,
		authorScopedFilter(tp.TargetID, "answers", answerID, userID),
		bson.M{"$set": bson.M{
			"answers.$.answerText":   req.AnswerText,
			"answers.$.lastModified": time.Now(),
		}},
		false,
	)
}

// DeleteAnswer removes the answer and cascades to its comments.
func (s *QAService) DeleteAnswer(ctx context.Context, tp models.TidbitPointer, userID, answerID string) error {
	if err := tp.Validate(); err != nil {
		return err
	}
	collection, err := s.collectionFor(tp)
	if err != nil {
		return err
	}

	return s.applyUpdate(ctx, "delete-answer",
		collection,
		authorScopedFilter(tp.TargetID, "answers", answerID, userID),
		answerCascade(answerID),
		false,
	)
}

// CommentOnQuestion appends a comment under a question.
func (s *QAService) CommentOnQuestion(ctx context.Context, tp models.TidbitPointer, userID, questionID string, req models.CommentTextRequest) (*models.QuestionComment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	parent, err := s.fetchQuestion(ctx, tp, questionID)
	if err != nil {
		return nil, err
	}

	collection, err := s.collectionFor(tp)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	comment := models.QuestionComment{
		ID:           uuid.NewString(),
		QuestionID:   questionID,
		AuthorID:     userID,
		CommentText:  req.CommentText,
		CreatedAt:    now,
		LastModified: now,
	}

	err = s.applyUpdate(ctx, "comment-question",
		collection,
		bson.M{"tidbitId": tp.TargetID, "questions.id": questionID},
		bson.M{"$push": bson.M{"questionComments": comment}},
		false,
	)
	if err != nil {
		return nil, err
	}

	if parent.AuthorID != userID {
		go s.notifications.AddNotificationWrapper(context.Background(), staticNotification(
			parent.AuthorID,
			models.NotificationNewQuestionComment,
			"Your question received a new comment",
			qaActionLink(tp, comment.ID),
		))
	}

	return &comment, nil
}

// EditQuestionComment replaces the text, scoped to (comment ID, author).
func (s *QAService) EditQuestionComment(ctx context.Context, tp models.TidbitPointer, userID, commentID string, req models.CommentTextRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if err := tp.Validate(); err != nil {
		return err
	}
	collection, err := s.collectionFor(tp)
	if err != nil {
		return err
	}

	return s.applyUpdate(ctx, "edit-question-comment",
		collection,
		authorScopedFilter(tp.TargetID, "questionComments", commentID, userID),
		bson.M{"$set": bson.M{
			"questionComments.$.commentText":  req.CommentText,
			"questionComments.$.lastModified": time.Now(),
		}},
		false,
	)
}

// DeleteQuestionComment removes one comment, scoped to (comment ID, author).
func (s *QAService) DeleteQuestionComment(ctx context.Context, tp models.TidbitPointer, userID, commentID string) error {
	if err := tp.Validate(); err != nil {
		return err
	}
	collection, err := s.collectionFor(tp)
	if err != nil {
		return err
	}

	return s.applyUpdate(ctx, "delete-question-comment",
		collection,
		authorScopedFilter(tp.TargetID, "questionComments", commentID, userID),
		bson.M{"$pull": bson.M{
			"questionComments": bson.M{"id": commentID, "authorId": userID},
		}},
		false,
	)
}

// CommentOnAnswer appends a comment under an answer. The comment records the
// answer's question ID too, so question-delete cascades catch it with a
// single array predicate.
func (s *QAService) CommentOnAnswer(ctx context.Context, tp models.TidbitPointer, userID, answerID string, req models.CommentTextRequest) (*models.AnswerComment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	parent, err := s.fetchAnswer(ctx, tp, answerID)
	if err != nil {
		return nil, err
	}

	collection, err := s.collectionFor(tp)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	comment := models.AnswerComment{
		ID:           uuid.NewString(),
		QuestionID:   parent.QuestionID,
		AnswerID:     answerID,
		AuthorID:     userID,
		CommentText:  req.CommentText,
		CreatedAt:    now,
		LastModified: now,
	}

	err = s.applyUpdate(ctx, "comment-answer",
		collection,
		bson.M{"tidbitId": tp.TargetID, "answers.id": answerID},
		bson.M{"$push": bson.M{"answerComments": comment}},
		false,
	)
	if err != nil {
		return nil, err
	}

	if parent.AuthorID != userID {
		go s.notifications.AddNotificationWrapper(context.Background(), staticNotification(
			parent.AuthorID,
			models.NotificationNewAnswerComment,
			"Your answer received a new comment",
			qaActionLink(tp, comment.ID),
		))
	}

	return &comment, nil
}

// EditAnswerComment replaces the text, scoped to (comment ID, author).
func (s *QAService) EditAnswerComment(ctx context.Context, tp models.TidbitPointer, userID, commentID string, req models.CommentTextRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if err := tp.Validate(); err != nil {
		return err
	}
	collection, err := s.collectionFor(tp)
	if err != nil {
		return err
	}

	return s.applyUpdate(ctx, "edit-answer-comment",
		collection,
		authorScopedFilter(tp.TargetID, "answerComments", commentID, userID),
		bson.M{"$set": bson.M{
			"answerComments.$.commentText":  req.CommentText,
			"answerComments.$.lastModified": time.Now(),
		}},
		false,
	)
}

// DeleteAnswerComment removes one comment, scoped to (comment ID, author).
func (s *QAService) DeleteAnswerComment(ctx context.Context, tp models.TidbitPointer, userID, commentID string) error {
	if err := tp.Validate(); err != nil {
		return err
	}
	collection, err := s.collectionFor(tp)
	if err != nil {
		return err
	}

	return s.applyUpdate(ctx, "delete-answer-comment",
		collection,
		authorScopedFilter(tp.TargetID, "answerComments", commentID, userID),
		bson.M{"$pull": bson.M{
			"answerComments": bson.M{"id": commentID, "authorId": userID},
		}},
		false,
	)
}

// RateQuestion records a vote. Set semantics keep each user in at most one
// of the two sets: the vote is added to one and pulled from the other in a
// single update. Repeating a vote is a legitimate no-op.
func (s *QAService) RateQuestion(ctx context.Context, tp models.TidbitPointer, userID, questionID string, req models.RateRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if err := tp.Validate(); err != nil {
		return err
	}
	collection, err := s.collectionFor(tp)
	if err != nil {
		return err
	}

	return s.applyUpdate(ctx, "vote-question",
		collection,
		bson.M{"tidbitId": tp.TargetID, "questions.id": questionID},
		voteUpdate("questions", req.Vote, userID),
		true,
	)
}

// RateAnswer records a vote on an answer.
func (s *QAService) RateAnswer(ctx context.Context, tp models.TidbitPointer, userID, answerID string, req models.RateRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if err := tp.Validate(); err != nil {
		return err
	}
	collection, err := s.collectionFor(tp)
	if err != nil {
		return err
	}

	return s.applyUpdate(ctx, "vote-answer",
		collection,
		bson.M{"tidbitId": tp.TargetID, "answers.id": answerID},
		voteUpdate("answers", req.Vote, userID),
		true,
	)
}

// authorScopedFilter targets one embedded element by ID and restricts the
// match to its author. A non-author caller fails the match and sees the same
// not-found as a caller targeting a nonexistent element.
func authorScopedFilter(tidbitID, arrayField, elementID, userID string) bson.M {
	return bson.M{
		"tidbitId": tidbitID,
		arrayField: bson.M{"$elemMatch": bson.M{"id": elementID, "authorId": userID}},
	}
}

// questionCascade builds the pull document removing a question together with
// its answers and every comment referencing it, directly or through an
// answer. One update, so the cascade is atomic on the document.
func questionCascade(questionID string) bson.M {
	return bson.M{"$pull": bson.M{
		"questions":        bson.M{"id": questionID},
		"answers":          bson.M{"questionId": questionID},
		"questionComments": bson.M{"questionId": questionID},
		"answerComments":   bson.M{"questionId": questionID},
	}}
}

// answerCascade builds the pull document removing an answer and its comments.
func answerCascade(answerID string) bson.M {
	return bson.M{"$pull": bson.M{
		"answers":        bson.M{"id": answerID},
		"answerComments": bson.M{"answerId": answerID},
	}}
}

// voteUpdate builds the addToSet/pull pair for one vote direction.
func voteUpdate(arrayField string, vote models.Vote, userID string) bson.M {
	addTo, pullFrom := "upvotes", "downvotes"
	if vote == models.VoteDown {
		addTo, pullFrom = "downvotes", "upvotes"
	}
	return bson.M{
		"$addToSet": bson.M{arrayField + ".$." + addTo: userID},
		"$pull":     bson.M{arrayField + ".$." + pullFrom: userID},
	}
}

// PinQuestion sets the pinned flag. Only the tidbit's original author may
// pin, enforced by author equality on the whole document rather than the
// individual question.
func (s *QAService) PinQuestion(ctx context.Context, tp models.TidbitPointer, userID, questionID string, req models.PinRequest) error {
	if err := tp.Validate(); err != nil {
		return err
	}
	collection, err := s.collectionFor(tp)
	if err != nil {
		return err
	}

	err = s.applyUpdate(ctx, "pin-question",
		collection,
		bson.M{
			"tidbitId":     tp.TargetID,
			"tidbitAuthor": userID,
			"questions.id": questionID,
		},
		bson.M{"$set": bson.M{"questions.$.pinned": req.Pin}},
		true,
	)
	if err != nil {
		return err
	}

	if req.Pin {
		s.notifyPinned(ctx, tp, userID, questionID, models.NotificationQuestionPinned, "Your question was pinned")
	}
	return nil
}

// PinAnswer sets the pinned flag on an answer, same authorization rule.
func (s *QAService) PinAnswer(ctx context.Context, tp models.TidbitPointer, userID, answerID string, req models.PinRequest) error {
	if err := tp.Validate(); err != nil {
		return err
	}
	collection, err := s.collectionFor(tp)
	if err != nil {
		return err
	}

	err = s.applyUpdate(ctx, "pin-answer",
		collection,
		bson.M{
			"tidbitId":     tp.TargetID,
			"tidbitAuthor": userID,
			"answers.id":   answerID,
		},
		bson.M{"$set": bson.M{"answers.$.pinned": req.Pin}},
		true,
	)
	if err != nil {
		return err
	}

	if req.Pin {
		s.notifyPinned(ctx, tp, userID, answerID, models.NotificationAnswerPinned, "Your answer was pinned")
	}
	return nil
}

func (s *QAService) notifyPinned(ctx context.Context, tp models.TidbitPointer, pinnedBy, elementID string, t models.NotificationType, message string) {
	qa, err := s.fetchQA(ctx, tp, nil)
	if err != nil {
		log.Printf("⚠️ [QA] Skipping pin notification, fetch failed: %v", err)
		return
	}

	var author string
	if t == models.NotificationQuestionPinned {
		for _, q := range qa.Questions {
			if q.ID == elementID {
				author = q.AuthorID
				break
			}
		}
	} else {
		for _, a := range qa.Answers {
			if a.ID == elementID {
				author = a.AuthorID
				break
			}
		}
	}
	if author == "" || author == pinnedBy {
		return
	}

	go s.notifications.AddNotificationWrapper(context.Background(), staticNotification(
		author, t, message, qaActionLink(tp, elementID)))
}

// fetchQuestion loads one question via elemMatch projection. A missing
// question is the not-found parent case.
func (s *QAService) fetchQuestion(ctx context.Context, tp models.TidbitPointer, questionID string) (*models.Question, error) {
	qa, err := s.fetchQA(ctx, tp, bson.M{
		"tidbitAuthor": 1,
		"questions":    bson.M{"$elemMatch": bson.M{"id": questionID}},
	})
	if err != nil {
		return nil, err
	}
	if len(qa.Questions) == 0 {
		return nil, apperrors.NotFoundQA()
	}
	return &qa.Questions[0], nil
}

// fetchAnswer loads one answer via elemMatch projection.
func (s *QAService) fetchAnswer(ctx context.Context, tp models.TidbitPointer, answerID string) (*models.Answer, error) {
	qa, err := s.fetchQA(ctx, tp, bson.M{
		"tidbitAuthor": 1,
		"answers":      bson.M{"$elemMatch": bson.M{"id": answerID}},
	})
	if err != nil {
		return nil, err
	}
	if len(qa.Answers) == 0 {
		return nil, apperrors.NotFoundQA()
	}
	return &qa.Answers[0], nil
}

// staticNotification wraps an already-built notification for the wrapper.
func staticNotification(userID string, t models.NotificationType, message, actionLink string) MakeNotifications {
	return func(ctx context.Context) ([]*models.Notification, error) {
		return []*models.Notification{models.NewNotification(userID, t, message, actionLink)}, nil
	}
}

func qaActionLink(tp models.TidbitPointer, elementID string) string {
	return fmt.Sprintf("%s/qa#%s", actionLinkFor(tp.ContentPointer()), elementID)
}
