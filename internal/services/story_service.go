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

// StoryService handles story CRUD. Stories are author-owned; pages are
// tidbit pointers verified to exist at the time they are added, not
// continuously afterwards.
type StoryService struct {
	mongodb    *database.MongoDB
	collection *mongo.Collection
	lookup     *contentLookup
	opinions   *OpinionService
	snipbits   *SnipbitService
	bigbits    *BigbitService
}

// NewStoryService creates a new story service
func NewStoryService(mongodb *database.MongoDB, opinions *OpinionService, snipbits *SnipbitService, bigbits *BigbitService) *StoryService {
	var collection *mongo.Collection
	if mongodb != nil {
		collection = mongodb.Collection(database.CollectionStories)
	}
	return &StoryService{
		mongodb:    mongodb,
		collection: collection,
		lookup:     newContentLookup(mongodb),
		opinions:   opinions,
		snipbits:   snipbits,
		bigbits:    bigbits,
	}
}

// CreateStory inserts an empty story from its information.
func (s *StoryService) CreateStory(ctx context.Context, author, authorEmail string, req models.StoryInformationRequest) (*models.StoryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	story := &models.Story{
		ID:           primitive.NewObjectID(),
		Author:       author,
		AuthorEmail:  authorEmail,
		Name:         req.Name,
		Description:  req.Description,
		Tags:         req.Tags,
		Pages:        []models.TidbitPointer{},
		CreatedAt:    now,
		LastModified: now,
	}

	if _, err := s.collection.InsertOne(ctx, story); err != nil {
		log.Printf("❌ [STORY] Failed to insert story: %v", err)
		return nil, apperrors.Internal()
	}

	log.Printf("✅ [STORY] Created story %s (%s)", story.Name, story.ID.Hex())
	return story.ToResponse(), nil
}

// UpdateStoryInformation replaces name/description/tags, scoped to the
// author. A non-author update fails the filter and reads as not found.
func (s *StoryService) UpdateStoryInformation(ctx context.Context, author, storyID string, req models.StoryInformationRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	objectID, err := primitive.ObjectIDFromHex(storyID)
	if err != nil {
		return apperrors.New(apperrors.ErrInvalidID, "malformed story ID")
	}

	result, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": objectID, "author": author},
		bson.M{"$set": bson.M{
			"name":         req.Name,
			"description":  req.Description,
			"tags":         req.Tags,
			"lastModified": time.Now(),
		}},
	)
	if err != nil {
		log.Printf("❌ [STORY] Failed to update story %s: %v", storyID, err)
		return apperrors.Internal()
	}
	if result.MatchedCount == 0 {
		return apperrors.New(apperrors.ErrStoryDoesNotExist, "story does not exist")
	}
	return nil
}

// AddTidbitsToStory appends pages after verifying each pointed-at tidbit
// exists right now (reference-time check only).
func (s *StoryService) AddTidbitsToStory(ctx context.Context, author, storyID string, req models.AddTidbitsToStoryRequest) (*models.StoryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	objectID, err := primitive.ObjectIDFromHex(storyID)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrInvalidID, "malformed story ID")
	}

	for _, pointer := range req.Tidbits {
		exists, err := s.lookup.exists(ctx, pointer)
		if err != nil {
			log.Printf("❌ [STORY] Tidbit existence check failed: %v", err)
			return nil, apperrors.Internal()
		}
		if !exists {
			return nil, apperrors.Newf(apperrors.ErrTidbitDoesNotExist, "tidbit %s does not exist", pointer.TargetID)
		}
	}

	result, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": objectID, "author": author},
		bson.M{
			"$push": bson.M{"pages": bson.M{"$each": req.Tidbits}},
			"$set":  bson.M{"lastModified": time.Now()},
		},
	)
	if err != nil {
		log.Printf("❌ [STORY] Failed to add tidbits to story %s: %v", storyID, err)
		return nil, apperrors.Internal()
	}
	if result.MatchedCount == 0 {
		return nil, apperrors.New(apperrors.ErrStoryDoesNotExist, "story does not exist")
	}

	return s.GetStory(ctx, storyID, "")
}

// GetStory fetches one story with like counts attached.
func (s *StoryService) GetStory(ctx context.Context, id string, requestingUser string) (*models.StoryResponse, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrInvalidID, "malformed story ID")
	}

	var story models.Story
	err = s.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&story)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.New(apperrors.ErrStoryDoesNotExist, "story does not exist")
	}
	if err != nil {
		log.Printf("❌ [STORY] Failed to fetch story %s: %v", id, err)
		return nil, apperrors.Internal()
	}

	response := story.ToResponse()
	cp := models.ContentPointer{Type: models.ContentStory, TargetID: response.ID}
	if likes, err := s.opinions.CountOpinions(ctx, cp, models.RatingLike); err == nil {
		response.Likes = likes
	} else {
		log.Printf("⚠️ [STORY] Failed to count likes for %s: %v", response.ID, err)
	}
	return response, nil
}

// GetExpandedStory resolves every page into its full tidbit payload. Pages
// whose tidbits have since been deleted are skipped rather than failing the
// whole story.
func (s *StoryService) GetExpandedStory(ctx context.Context, id string, requestingUser string) (*models.ExpandedStoryResponse, error) {
	story, err := s.GetStory(ctx, id, requestingUser)
	if err != nil {
		return nil, err
	}

	expanded := &models.ExpandedStoryResponse{
		StoryResponse: *story,
		ExpandedPages: make([]models.Content, 0, len(story.Pages)),
	}

	for _, page := range story.Pages {
		switch page.Type {
		case models.ContentSnipbit:
			snipbit, err := s.snipbits.GetSnipbit(ctx, page.TargetID, requestingUser)
			if err != nil {
				log.Printf("⚠️ [STORY] Skipping missing snipbit page %s: %v", page.TargetID, err)
				continue
			}
			expanded.ExpandedPages = append(expanded.ExpandedPages, models.Content{Type: models.ContentSnipbit, Snipbit: snipbit})
		case models.ContentBigbit:
			bigbit, err := s.bigbits.GetBigbit(ctx, page.TargetID, requestingUser)
			if err != nil {
				log.Printf("⚠️ [STORY] Skipping missing bigbit page %s: %v", page.TargetID, err)
				continue
			}
			expanded.ExpandedPages = append(expanded.ExpandedPages, models.Content{Type: models.ContentBigbit, Bigbit: bigbit})
		}
	}

	return expanded, nil
}

// GetStories runs the per-kind leg of a content search. Stories carry no
// language data, so a language-restricted search excludes them entirely.
func (s *StoryService) GetStories(ctx context.Context, opts models.ContentSearchOptions) ([]*models.StoryResponse, bool, error) {
	if len(opts.Languages) > 0 {
		return nil, false, nil
	}

	filter := buildContentFilter(opts, "")
	findOpts := buildContentFindOptions(opts)

	cursor, err := s.collection.Find(ctx, filter, findOpts)
	if err != nil {
		log.Printf("❌ [STORY] Search failed: %v", err)
		return nil, false, apperrors.Internal()
	}
	defer cursor.Close(ctx)

	var stories []models.Story
	if err := cursor.All(ctx, &stories); err != nil {
		log.Printf("❌ [STORY] Failed to decode search results: %v", err)
		return nil, false, apperrors.Internal()
	}

	keep, hasMore := trimPageLen(len(stories), opts)
	responses := make([]*models.StoryResponse, 0, keep)
	for i := 0; i < keep; i++ {
		responses = append(responses, stories[i].ToResponse())
	}
	return responses, hasMore, nil
}
