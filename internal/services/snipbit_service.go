package services

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"codetidbit/internal/apperrors"
	"codetidbit/internal/database"
	"codetidbit/internal/models"
)

// SnipbitService handles single-file tidbit CRUD.
type SnipbitService struct {
	mongodb    *database.MongoDB
	collection *mongo.Collection
	languages  *LanguageService
	opinions   *OpinionService
	qa         *QAService
}

// NewSnipbitService creates a new snipbit service
func NewSnipbitService(mongodb *database.MongoDB, languages *LanguageService, opinions *OpinionService, qa *QAService) *SnipbitService {
	var collection *mongo.Collection
	if mongodb != nil {
		collection = mongodb.Collection(database.CollectionSnipbits)
	}
	return &SnipbitService{
		mongodb:    mongodb,
		collection: collection,
		languages:  languages,
		opinions:   opinions,
		qa:         qa,
	}
}

// AddNewSnipbit validates (including the async language restriction),
// inserts the document, and creates the snipbit's blank QA document. There
// are no transactions; if the QA creation fails the snipbit insert is undone
// with a best-effort delete.
func (s *SnipbitService) AddNewSnipbit(ctx context.Context, author, authorEmail string, req models.AddSnipbitRequest) (*models.SnipbitResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	valid, err := s.languages.IsValidLanguage(ctx, req.Language)
	if err != nil {
		log.Printf("❌ [SNIPBIT] Language lookup failed: %v", err)
		return nil, apperrors.Internal()
	}
	if !valid {
		return nil, apperrors.Newf(apperrors.ErrInvalidLanguage, "unknown language %q", req.Language)
	}

	snipbit := req.ToSnipbit(author, authorEmail, time.Now())

	if _, err := s.collection.InsertOne(ctx, snipbit); err != nil {
		log.Printf("❌ [SNIPBIT] Failed to insert snipbit: %v", err)
		return nil, apperrors.Internal()
	}

	pointer := models.TidbitPointer{Type: models.ContentSnipbit, TargetID: snipbit.ID.Hex()}
	if err := s.qa.CreateBlankQA(ctx, pointer, author); err != nil {
		// First-write-wins: a second creation attempt for the same tidbit is
		// a reported conflict, and any other failure is internal. Either way
		// the request failed, so the inserted snipbit must not linger.
		if _, delErr := s.collection.DeleteOne(ctx, bson.M{"_id": snipbit.ID}); delErr != nil {
			log.Printf("⚠️ [SNIPBIT] Failed to undo insert of %s after QA creation failure: %v", snipbit.ID.Hex(), delErr)
		}
		return nil, apperrors.AsError(err)
	}

	log.Printf("✅ [SNIPBIT] Created snipbit %s (%s)", snipbit.Name, snipbit.ID.Hex())
	return snipbit.ToResponse(), nil
}

// GetSnipbit fetches one snipbit with like counts computed from the
// opinions collection relative to the requesting user.
func (s *SnipbitService) GetSnipbit(ctx context.Context, id string, requestingUser string) (*models.SnipbitResponse, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrInvalidID, "malformed snipbit ID")
	}

	var snipbit models.Snipbit
	err = s.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&snipbit)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.New(apperrors.ErrTidbitDoesNotExist, "snipbit does not exist")
	}
	if err != nil {
		log.Printf("❌ [SNIPBIT] Failed to fetch snipbit %s: %v", id, err)
		return nil, apperrors.Internal()
	}

	response := snipbit.ToResponse()
	s.attachOpinionCounts(ctx, response)
	return response, nil
}

// GetSnipbits runs the per-kind leg of a content search.
func (s *SnipbitService) GetSnipbits(ctx context.Context, opts models.ContentSearchOptions) ([]*models.SnipbitResponse, bool, error) {
	filter := buildContentFilter(opts, "language")
	findOpts := buildContentFindOptions(opts)

	cursor, err := s.collection.Find(ctx, filter, findOpts)
	if err != nil {
		log.Printf("❌ [SNIPBIT] Search failed: %v", err)
		return nil, false, apperrors.Internal()
	}
	defer cursor.Close(ctx)

	var snipbits []models.Snipbit
	if err := cursor.All(ctx, &snipbits); err != nil {
		log.Printf("❌ [SNIPBIT] Failed to decode search results: %v", err)
		return nil, false, apperrors.Internal()
	}

	keep, hasMore := trimPageLen(len(snipbits), opts)
	responses := make([]*models.SnipbitResponse, 0, keep)
	for i := 0; i < keep; i++ {
		responses = append(responses, snipbits[i].ToResponse())
	}
	return responses, hasMore, nil
}

func (s *SnipbitService) attachOpinionCounts(ctx context.Context, response *models.SnipbitResponse) {
	cp := models.ContentPointer{Type: models.ContentSnipbit, TargetID: response.ID}
	if likes, err := s.opinions.CountOpinions(ctx, cp, models.RatingLike); err == nil {
		response.Likes = likes
	} else {
		log.Printf("⚠️ [SNIPBIT] Failed to count likes for %s: %v", response.ID, err)
	}
}
