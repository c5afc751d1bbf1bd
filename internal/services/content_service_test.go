package services

import (
	"context"
	"testing"

	"github.com/isdelr/lexilearn-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticPrefs models.Preferences

func (p staticPrefs) Preferences(context.Context, string) models.Preferences {
	return models.Preferences(p)
}

func catalogIDs() []string {
	var ids []string
	for _, item := range DefaultCatalog() {
		ids = append(ids, item.ID)
	}
	return ids
}

func catalogTitles() map[string]models.ContentItem {
	out := make(map[string]models.ContentItem)
	for _, item := range DefaultCatalog() {
		out[item.Title] = item
	}
	return out
}

func TestContentService_ListAndGet(t *testing.T) {
	svc := NewContentService(DefaultCatalog(), staticPrefs(models.DefaultPreferences()))

	items := svc.List()
	require.Len(t, items, 7)
	assert.Equal(t, "article_1", items[0].ID)
	assert.Equal(t, "exercise_2", items[6].ID)

	first, err := svc.Get("quiz_1")
	require.NoError(t, err)
	second, err := svc.Get("quiz_1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "Reading Comprehension Quiz", first.Title)

	_, err = svc.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContentService_Recommend_FallsBackWhenNothingMatches(t *testing.T) {
	prefs := staticPrefs{PreferredTopics: []string{"phonological_awareness"}, DifficultyLevel: models.DifficultyMedium}
	svc := NewContentService(DefaultCatalog(), prefs)

	for i := 0; i < 50; i++ {
		got := svc.Recommend(context.Background(), "u1")
		require.Len(t, got, 3)
		assert.Subset(t, catalogIDs(), got)
		assert.Len(t, uniq(got), 3, "sampling must be without replacement")
	}
}

func TestContentService_Recommend_FiltersByPreference(t *testing.T) {
	titles := catalogTitles()

	tests := []struct {
		name  string
		prefs staticPrefs
		want  []string
	}{
		{
			name:  "default medium",
			prefs: staticPrefs(models.DefaultPreferences()),
			want:  []string{"Understanding Dyslexia", "The Role of Technology in Dyslexia Support"},
		},
		{
			name:  "easy reading strategies",
			prefs: staticPrefs{PreferredTopics: []string{"reading_strategies"}, DifficultyLevel: models.DifficultyEasy},
			want:  []string{"Tips for Reading with Dyslexia"},
		},
		{
			name:  "medium with topic",
			prefs: staticPrefs{PreferredTopics: []string{"assistive_technology", "auditory_processing"}, DifficultyLevel: models.DifficultyMedium},
			want:  []string{"The Role of Technology in Dyslexia Support"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewContentService(DefaultCatalog(), tt.prefs)
			got := svc.Recommend(context.Background(), "u1")
			assert.ElementsMatch(t, tt.want, got)
			for _, title := range got {
				assert.Equal(t, tt.prefs.DifficultyLevel, titles[title].Difficulty)
			}
		})
	}
}

func TestContentService_Recommend_CapsSample(t *testing.T) {
	var catalog []models.ContentItem
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		catalog = append(catalog, models.ContentItem{ID: id, Title: "T-" + id, Topic: "t", Difficulty: models.DifficultyHard})
	}
	svc := NewContentService(catalog, staticPrefs{DifficultyLevel: models.DifficultyHard})
	svc.intN = func(n int) int { return n - 1 }

	got := svc.Recommend(context.Background(), "u1")
	assert.Equal(t, []string{"T-e", "T-a", "T-b"}, got)
}

func TestContentService_Recommend_EmptyCatalog(t *testing.T) {
	svc := NewContentService(nil, staticPrefs(models.DefaultPreferences()))
	got := svc.Recommend(context.Background(), "u1")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func uniq(xs []string) map[string]bool {
	out := make(map[string]bool, len(xs))
	for _, x := range xs {
		out[x] = true
	}
	return out
}
