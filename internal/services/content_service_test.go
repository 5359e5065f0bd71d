package services

import (
	"testing"
	"time"

	"codetidbit/internal/models"
)

func snipbitItem(name string, lastModified time.Time, textScore float64) models.Content {
	return models.Content{
		Type: models.ContentSnipbit,
		Snipbit: &models.SnipbitResponse{
			Name:         name,
			LastModified: lastModified,
			TextScore:    textScore,
		},
	}
}

func storyItem(name string, lastModified time.Time, textScore float64) models.Content {
	return models.Content{
		Type: models.ContentStory,
		Story: &models.StoryResponse{
			Name:         name,
			LastModified: lastModified,
			TextScore:    textScore,
		},
	}
}

func names(items []models.Content) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Name())
	}
	return out
}

func TestSortContent_ByLastModified(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	items := []models.Content{
		snipbitItem("older", base.Add(-time.Hour), 0),
		storyItem("newest", base.Add(time.Hour), 0),
		snipbitItem("middle", base, 0),
	}

	SortContent(items, false)

	expected := []string{"newest", "middle", "older"}
	got := names(items)
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("Expected order %v, got %v", expected, got)
		}
	}
}

func TestSortContent_ByLastModified_NameTiebreak(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	items := []models.Content{
		snipbitItem("zebra", ts, 0),
		storyItem("apple", ts, 0),
		snipbitItem("mango", ts, 0),
	}

	SortContent(items, false)

	expected := []string{"apple", "mango", "zebra"}
	got := names(items)
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("Expected order %v, got %v", expected, got)
		}
	}
}

func TestSortContent_ByTextScore(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	items := []models.Content{
		snipbitItem("low", ts, 0.5),
		storyItem("high", ts, 2.0),
		snipbitItem("mid", ts, 1.0),
	}

	SortContent(items, true)

	expected := []string{"high", "mid", "low"}
	got := names(items)
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("Expected order %v, got %v", expected, got)
		}
	}
}

func TestSortContent_ByTextScore_NameTiebreak(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	items := []models.Content{
		snipbitItem("beta", ts, 1.0),
		storyItem("alpha", ts, 1.0),
	}

	SortContent(items, true)

	if items[0].Name() != "alpha" || items[1].Name() != "beta" {
		t.Errorf("Expected tie broken by name ascending, got %v", names(items))
	}
}
