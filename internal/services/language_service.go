package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	cache "github.com/patrickmn/go-cache"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"codetidbit/internal/database"
	"codetidbit/internal/models"
)

const languageTableCacheKey = "language-table"

// LanguageService maintains the known-language table: seeded from
// languages.json, stored in the languages collection, cached in-process.
// Tidbit validation and search-query language inference both read it.
type LanguageService struct {
	mongodb    *database.MongoDB
	collection *mongo.Collection
	tableCache *cache.Cache // single-entry TTL cache for the full table
}

// NewLanguageService creates a new language service
func NewLanguageService(mongodb *database.MongoDB) *LanguageService {
	var collection *mongo.Collection
	if mongodb != nil {
		collection = mongodb.Collection(database.CollectionLanguages)
	}
	return &LanguageService{
		mongodb:    mongodb,
		collection: collection,
		tableCache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

// Sync upserts every language from the seed file into the collection and
// drops the cache. Called at startup and again on languages.json changes.
func (s *LanguageService) Sync(ctx context.Context, cfg *models.LanguagesConfig) error {
	for _, lang := range cfg.Languages {
		_, err := s.collection.UpdateOne(ctx,
			bson.M{"name": lang.Name},
			bson.M{"$set": bson.M{"name": lang.Name, "aliases": lang.Aliases}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return fmt.Errorf("failed to upsert language %s: %w", lang.Name, err)
		}
	}

	s.tableCache.Delete(languageTableCacheKey)
	log.Printf("✅ Synced %d languages", len(cfg.Languages))
	return nil
}

// Table returns the full language table, from cache when fresh.
func (s *LanguageService) Table(ctx context.Context) ([]models.Language, error) {
	if cached, found := s.tableCache.Get(languageTableCacheKey); found {
		return cached.([]models.Language), nil
	}

	cursor, err := s.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch language table: %w", err)
	}
	defer cursor.Close(ctx)

	var table []models.Language
	if err := cursor.All(ctx, &table); err != nil {
		return nil, fmt.Errorf("failed to decode language table: %w", err)
	}

	s.tableCache.Set(languageTableCacheKey, table, cache.DefaultExpiration)
	return table, nil
}

// IsValidLanguage reports whether name matches a known language (name or
// alias, case-insensitive). This is the async restriction behind tidbit
// language validation.
func (s *LanguageService) IsValidLanguage(ctx context.Context, name string) (bool, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return false, err
	}
	return CanonicalLanguageName(table, name) != "", nil
}

// CanonicalLanguageName resolves a name or alias to the canonical language
// name, empty when unknown. Matching is case-insensitive and exact.
func CanonicalLanguageName(table []models.Language, name string) string {
	for _, lang := range table {
		if strings.EqualFold(lang.Name, name) {
			return lang.Name
		}
		for _, alias := range lang.Aliases {
			if strings.EqualFold(alias, name) {
				return lang.Name
			}
		}
	}
	return ""
}

// InferLanguages scans a free-text query for whole-word language mentions.
// Matched tokens move into the returned language list (canonical names,
// deduplicated) and are stripped from the residual query; a query that
// empties out is returned as "".
func (s *LanguageService) InferLanguages(ctx context.Context, query string) ([]string, string, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return nil, "", err
	}
	languages, residual := InferLanguagesFromTable(table, query)
	return languages, residual, nil
}

// InferLanguagesFromTable is the pure core of language inference.
func InferLanguagesFromTable(table []models.Language, query string) ([]string, string) {
	var languages []string
	var residual []string
	seen := make(map[string]bool)

	for _, token := range strings.Fields(query) {
		canonical := CanonicalLanguageName(table, token)
		if canonical == "" {
			residual = append(residual, token)
			continue
		}
		if !seen[canonical] {
			seen[canonical] = true
			languages = append(languages, canonical)
		}
	}

	return languages, strings.Join(residual, " ")
}
