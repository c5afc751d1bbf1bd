package services

import (
	"context"
	"math/rand/v2"
	"slices"

	"github.com/isdelr/lexilearn-be/internal/models"
)

// MaxRecommendations caps the size of a recommendation sample.
const MaxRecommendations = 3

// PreferenceSource resolves an identity's learning preferences.
type PreferenceSource interface {
	Preferences(ctx context.Context, identityID string) models.Preferences
}

// ContentServiceProvider defines the interface for content services.
type ContentServiceProvider interface {
	List() []models.ContentItem
	Get(id string) (models.ContentItem, error)
	Recommend(ctx context.Context, identityID string) []string
}

// ContentService serves the static catalog and recommendations from it.
type ContentService struct {
	catalog []models.ContentItem
	byID    map[string]int
	prefs   PreferenceSource
	intN    func(n int) int
}

// NewContentService creates a new ContentService over a fixed catalog.
func NewContentService(catalog []models.ContentItem, prefs PreferenceSource) *ContentService {
	byID := make(map[string]int, len(catalog))
	for i, item := range catalog {
		byID[item.ID] = i
	}
	return &ContentService{
		catalog: slices.Clone(catalog),
		byID:    byID,
		prefs:   prefs,
		intN:    rand.IntN,
	}
}

// List returns every catalog item in catalog order.
func (s *ContentService) List() []models.ContentItem {
	return slices.Clone(s.catalog)
}

// Get returns a single catalog item.
func (s *ContentService) Get(id string) (models.ContentItem, error) {
	i, ok := s.byID[id]
	if !ok {
		return models.ContentItem{}, ErrNotFound
	}
	return s.catalog[i], nil
}

// Recommend filters the catalog by the identity's difficulty level and, when
// set, its preferred topics, then samples up to MaxRecommendations titles.
// Items without a difficulty never match. With no match it falls back to a
// sample of catalog item ids regardless of preference.
func (s *ContentService) Recommend(ctx context.Context, identityID string) []string {
	prefs := s.prefs.Preferences(ctx, identityID)

	var titles []string
	for _, item := range s.catalog {
		if item.Difficulty != prefs.DifficultyLevel {
			continue
		}
		if len(prefs.PreferredTopics) > 0 && !slices.Contains(prefs.PreferredTopics, item.Topic) {
			continue
		}
		titles = append(titles, item.Title)
	}

	if len(titles) == 0 {
		ids := make([]string, len(s.catalog))
		for i, item := range s.catalog {
			ids[i] = item.ID
		}
		return s.sample(ids)
	}
	return s.sample(titles)
}

// sample draws min(MaxRecommendations, len(pool)) elements without replacement.
func (s *ContentService) sample(pool []string) []string {
	pool = slices.Clone(pool)
	k := min(MaxRecommendations, len(pool))
	for i := 0; i < k; i++ {
		j := i + s.intN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	out := make([]string, k)
	copy(out, pool)
	return out
}
