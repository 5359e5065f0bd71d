package models

// Language is one row of the known-language table. Seeded from
// languages.json at startup and used both for tidbit validation and for
// inferring language filters out of free-text search queries.
type Language struct {
	Name    string   `bson:"name" json:"name"`
	Aliases []string `bson:"aliases,omitempty" json:"aliases,omitempty"`
}

// LanguagesConfig is the shape of the languages.json seed file.
type LanguagesConfig struct {
	Languages []Language `json:"languages"`
}
