package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SESSION_EXPIRY", "")
	t.Setenv("NOTIFICATION_MAX_AGE", "")

	cfg := Load()

	if cfg.Port != "3001" {
		t.Errorf("Expected default port 3001, got %s", cfg.Port)
	}
	if cfg.SessionExpiry != 7*24*time.Hour {
		t.Errorf("Expected 7 day session expiry, got %v", cfg.SessionExpiry)
	}
	if cfg.NotificationMaxAge != 30*24*time.Hour {
		t.Errorf("Expected 30 day notification retention, got %v", cfg.NotificationMaxAge)
	}
}

func TestGetDurationEnv(t *testing.T) {
	t.Setenv("TEST_DURATION_SECONDS", "90")
	if got := getDurationEnv("TEST_DURATION_SECONDS", time.Minute); got != 90*time.Second {
		t.Errorf("Expected 90s from bare seconds, got %v", got)
	}

	t.Setenv("TEST_DURATION_PARSED", "2h30m")
	if got := getDurationEnv("TEST_DURATION_PARSED", time.Minute); got != 2*time.Hour+30*time.Minute {
		t.Errorf("Expected 2h30m, got %v", got)
	}

	if got := getDurationEnv("TEST_DURATION_UNSET", time.Minute); got != time.Minute {
		t.Errorf("Expected default, got %v", got)
	}

	t.Setenv("TEST_DURATION_BAD", "not-a-duration")
	if got := getDurationEnv("TEST_DURATION_BAD", time.Minute); got != time.Minute {
		t.Errorf("Expected default for unparseable value, got %v", got)
	}
}

func TestLoadLanguages(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "languages.json")

	content := `{"languages": [{"name": "Elm", "aliases": []}, {"name": "Go", "aliases": ["golang"]}]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	cfg, err := LoadLanguages(path)
	if err != nil {
		t.Fatalf("Failed to load languages: %v", err)
	}
	if len(cfg.Languages) != 2 {
		t.Fatalf("Expected 2 languages, got %d", len(cfg.Languages))
	}
	if cfg.Languages[1].Name != "Go" || cfg.Languages[1].Aliases[0] != "golang" {
		t.Errorf("Unexpected language entry: %+v", cfg.Languages[1])
	}
}

func TestLoadLanguages_MissingFile(t *testing.T) {
	if _, err := LoadLanguages("/nonexistent/languages.json"); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadLanguages_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "languages.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	if _, err := LoadLanguages(path); err == nil {
		t.Error("Expected error for malformed JSON")
	}
}
