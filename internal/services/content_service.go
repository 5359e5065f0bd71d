package services

import (
	"context"
	"sort"
	"time"

	"codetidbit/internal/models"
)

// ContentService is the cross-collection search aggregator: fan out one
// paginated query per included kind, merge, sort, report whether any kind
// had more.
type ContentService struct {
	snipbits  *SnipbitService
	bigbits   *BigbitService
	stories   *StoryService
	languages *LanguageService
	metrics   *Metrics
}

// NewContentService creates a new content service
func NewContentService(snipbits *SnipbitService, bigbits *BigbitService, stories *StoryService, languages *LanguageService, metrics *Metrics) *ContentService {
	return &ContentService{
		snipbits:  snipbits,
		bigbits:   bigbits,
		stories:   stories,
		languages: languages,
		metrics:   metrics,
	}
}

// Search normalizes the options, infers language filters out of the text
// query, fans out per-kind queries and merges the results under a single
// sort order.
func (s *ContentService) Search(ctx context.Context, opts models.ContentSearchOptions) (*models.ContentSearchResult, error) {
	started := time.Now()
	if s.metrics != nil {
		s.metrics.ContentSearches.Inc()
		defer func() {
			s.metrics.ContentSearchLatency.Observe(time.Since(started).Seconds())
		}()
	}

	if err := opts.Normalize(); err != nil {
		return nil, err
	}

	// Recognized language names in the query become language filters; the
	// residual text (possibly empty) is what actually gets text-searched.
	if opts.Query != "" {
		inferred, residual, err := s.languages.InferLanguages(ctx, opts.Query)
		if err != nil {
			return nil, err
		}
		opts.Languages = append(opts.Languages, inferred...)
		opts.Query = residual
	}
	opts.SortByTextScore = opts.Query != ""

	result := &models.ContentSearchResult{Items: []models.Content{}}

	if opts.IncludeSnipbits {
		snipbits, hasMore, err := s.snipbits.GetSnipbits(ctx, opts)
		if err != nil {
			return nil, err
		}
		result.HasMore = result.HasMore || hasMore
		for _, snipbit := range snipbits {
			result.Items = append(result.Items, models.Content{Type: models.ContentSnipbit, Snipbit: snipbit})
		}
	}

	if opts.IncludeBigbits {
		bigbits, hasMore, err := s.bigbits.GetBigbits(ctx, opts)
		if err != nil {
			return nil, err
		}
		result.HasMore = result.HasMore || hasMore
		for _, bigbit := range bigbits {
			result.Items = append(result.Items, models.Content{Type: models.ContentBigbit, Bigbit: bigbit})
		}
	}

	if opts.IncludeStories {
		stories, hasMore, err := s.stories.GetStories(ctx, opts)
		if err != nil {
			return nil, err
		}
		result.HasMore = result.HasMore || hasMore
		for _, story := range stories {
			result.Items = append(result.Items, models.Content{Type: models.ContentStory, Story: story})
		}
	}

	SortContent(result.Items, opts.SortByTextScore)
	return result, nil
}

// SortContent orders the merged result set: text-relevance descending or
// last-modified descending, with name ascending as tiebreak either way.
func SortContent(items []models.Content, byTextScore bool) {
	sort.SliceStable(items, func(i, j int) bool {
		if byTextScore {
			si, sj := items[i].TextScore(), items[j].TextScore()
			if si != sj {
				return si > sj
			}
		} else {
			ti, tj := items[i].LastModified(), items[j].LastModified()
			if !ti.Equal(tj) {
				return ti.After(tj)
			}
		}
		return items[i].Name() < items[j].Name()
	})
}
