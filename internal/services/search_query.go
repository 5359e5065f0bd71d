package services

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"codetidbit/internal/models"
)

// buildContentFilter translates search options into a collection filter.
// languageField names the per-collection language field: "language" for
// snipbits, "languages" for bigbits, "" for stories (no language data).
func buildContentFilter(opts models.ContentSearchOptions, languageField string) bson.M {
	filter := bson.M{}

	if opts.Author != "" {
		filter["author"] = opts.Author
	}
	if opts.Query != "" {
		filter["$text"] = bson.M{"$search": opts.Query}
	}
	if len(opts.Languages) > 0 && languageField != "" {
		filter[languageField] = bson.M{"$in": opts.Languages}
	}

	return filter
}

// buildContentFindOptions applies sort, pagination and the text-score
// projection. Fetches one row beyond the page size so the caller can detect
// a next page; single-author browses are expected small and skip pagination
// entirely.
func buildContentFindOptions(opts models.ContentSearchOptions) *options.FindOptions {
	findOpts := options.Find()

	if opts.SortByTextScore {
		findOpts.SetProjection(bson.M{"textScore": bson.M{"$meta": "textScore"}})
		findOpts.SetSort(bson.D{
			{Key: "textScore", Value: bson.M{"$meta": "textScore"}},
			{Key: "name", Value: 1},
		})
	} else {
		findOpts.SetSort(bson.D{
			{Key: "lastModified", Value: -1},
			{Key: "name", Value: 1},
		})
	}

	if opts.Author == "" {
		findOpts.SetSkip(int64((opts.Page - 1) * opts.PageSize))
		findOpts.SetLimit(int64(opts.PageSize + 1))
	}

	return findOpts
}

// trimPage applies the size+1 overfetch convention: returns at most
// pageSize items and whether more were available. Author browses fetched
// everything, so they never report more.
func trimPageLen(fetched int, opts models.ContentSearchOptions) (keep int, hasMore bool) {
	if opts.Author != "" {
		return fetched, false
	}
	if fetched > opts.PageSize {
		return opts.PageSize, true
	}
	return fetched, false
}
