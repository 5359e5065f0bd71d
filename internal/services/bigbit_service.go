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

// BigbitService handles multi-file tidbit CRUD.
type BigbitService struct {
	mongodb    *database.MongoDB
	collection *mongo.Collection
	languages  *LanguageService
	opinions   *OpinionService
	qa         *QAService
}

// NewBigbitService creates a new bigbit service
func NewBigbitService(mongodb *database.MongoDB, languages *LanguageService, opinions *OpinionService, qa *QAService) *BigbitService {
	var collection *mongo.Collection
	if mongodb != nil {
		collection = mongodb.Collection(database.CollectionBigbits)
	}
	return &BigbitService{
		mongodb:    mongodb,
		collection: collection,
		languages:  languages,
		opinions:   opinions,
		qa:         qa,
	}
}

// AddNewBigbit validates the request (every per-file language must be
// known), inserts the document, and creates the bigbit's blank QA document.
// There are no transactions; if the QA creation fails the bigbit insert is
// undone with a best-effort delete.
func (s *BigbitService) AddNewBigbit(ctx context.Context, author, authorEmail string, req models.AddBigbitRequest) (*models.BigbitResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	for _, language := range req.FS.Languages() {
		valid, err := s.languages.IsValidLanguage(ctx, language)
		if err != nil {
			log.Printf("❌ [BIGBIT] Language lookup failed: %v", err)
			return nil, apperrors.Internal()
		}
		if !valid {
			return nil, apperrors.Newf(apperrors.ErrInvalidLanguage, "unknown language %q", language)
		}
	}

	bigbit := req.ToBigbit(author, authorEmail, time.Now())

	if _, err := s.collection.InsertOne(ctx, bigbit); err != nil {
		log.Printf("❌ [BIGBIT] Failed to insert bigbit: %v", err)
		return nil, apperrors.Internal()
	}

	pointer := models.TidbitPointer{Type: models.ContentBigbit, TargetID: bigbit.ID.Hex()}
	if err := s.qa.CreateBlankQA(ctx, pointer, author); err != nil {
		if _, delErr := s.collection.DeleteOne(ctx, bson.M{"_id": bigbit.ID}); delErr != nil {
			log.Printf("⚠️ [BIGBIT] Failed to undo insert of %s after QA creation failure: %v", bigbit.ID.Hex(), delErr)
		}
		return nil, apperrors.AsError(err)
	}

	log.Printf("✅ [BIGBIT] Created bigbit %s (%s)", bigbit.Name, bigbit.ID.Hex())
	return bigbit.ToResponse(), nil
}

// GetBigbit fetches one bigbit with like counts from the opinions
// collection.
func (s *BigbitService) GetBigbit(ctx context.Context, id string, requestingUser string) (*models.BigbitResponse, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrInvalidID, "malformed bigbit ID")
	}

	var bigbit models.Bigbit
	err = s.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&bigbit)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.New(apperrors.ErrTidbitDoesNotExist, "bigbit does not exist")
	}
	if err != nil {
		log.Printf("❌ [BIGBIT] Failed to fetch bigbit %s: %v", id, err)
		return nil, apperrors.Internal()
	}

	response := bigbit.ToResponse()
	cp := models.ContentPointer{Type: models.ContentBigbit, TargetID: response.ID}
	if likes, err := s.opinions.CountOpinions(ctx, cp, models.RatingLike); err == nil {
		response.Likes = likes
	} else {
		log.Printf("⚠️ [BIGBIT] Failed to count likes for %s: %v", response.ID, err)
	}
	return response, nil
}

// GetBigbits runs the per-kind leg of a content search. Bigbits match a
// language filter when any file in the tree uses one of the languages.
func (s *BigbitService) GetBigbits(ctx context.Context, opts models.ContentSearchOptions) ([]*models.BigbitResponse, bool, error) {
	filter := buildContentFilter(opts, "languages")
	findOpts := buildContentFindOptions(opts)

	cursor, err := s.collection.Find(ctx, filter, findOpts)
	if err != nil {
		log.Printf("❌ [BIGBIT] Search failed: %v", err)
		return nil, false, apperrors.Internal()
	}
	defer cursor.Close(ctx)

	var bigbits []models.Bigbit
	if err := cursor.All(ctx, &bigbits); err != nil {
		log.Printf("❌ [BIGBIT] Failed to decode search results: %v", err)
		return nil, false, apperrors.Internal()
	}

	keep, hasMore := trimPageLen(len(bigbits), opts)
	responses := make([]*models.BigbitResponse, 0, keep)
	for i := 0; i < keep; i++ {
		responses = append(responses, bigbits[i].ToResponse())
	}
	return responses, hasMore, nil
}
