package services

import (
	"fmt"
	"os"

	"github.com/isdelr/lexilearn-be/internal/models"
	"gopkg.in/yaml.v3"
)

// DefaultCatalog returns the built-in learning catalog.
func DefaultCatalog() []models.ContentItem {
	return []models.ContentItem{
		{ID: "article_1", Title: "Understanding Dyslexia", Type: models.ContentArticle, Topic: "learning_disabilities", Difficulty: models.DifficultyMedium, Text: "Dyslexia is a learning disability...", TTSEnabled: true},
		{ID: "article_2", Title: "Tips for Reading with Dyslexia", Type: models.ContentArticle, Topic: "reading_strategies", Difficulty: models.DifficultyEasy, Text: "Use visual aids...", TTSEnabled: true},
		{ID: "exercise_1", Title: "Phonological Awareness Game", Type: models.ContentGame, Topic: "phonological_awareness", Instructions: "Listen to the sounds...", STTEnabled: true},
		{ID: "video_1", Title: "What is Auditory Processing Disorder?", Type: models.ContentVideo, Topic: "auditory_processing", URL: "https://example.com/video1", TTSAvailable: true},
		{ID: "quiz_1", Title: "Reading Comprehension Quiz", Type: models.ContentQuiz, Topic: "reading_comprehension", Questions: []string{"...", "..."}},
		{ID: "article_3", Title: "The Role of Technology in Dyslexia Support", Type: models.ContentArticle, Topic: "assistive_technology", Difficulty: models.DifficultyMedium, Text: "Many technological tools...", TTSEnabled: true},
		{ID: "exercise_2", Title: "Rhyming Words Challenge", Type: models.ContentGame, Topic: "phonological_awareness", Instructions: "Find words that rhyme...", STTEnabled: true},
	}
}

type catalogFile struct {
	Items []models.ContentItem `yaml:"items"`
}

// LoadCatalog reads a YAML catalog file. An empty path yields the built-in catalog.
func LoadCatalog(path string) ([]models.ContentItem, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates a YAML catalog document.
func ParseCatalog(data []byte) ([]models.ContentItem, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	seen := make(map[string]bool, len(file.Items))
	for i, item := range file.Items {
		if item.ID == "" || item.Title == "" || item.Topic == "" {
			return nil, fmt.Errorf("catalog item %d: id, title and topic are required", i)
		}
		if seen[item.ID] {
			return nil, fmt.Errorf("catalog item %d: duplicate id %q", i, item.ID)
		}
		if item.Difficulty != "" && !models.ValidDifficulty(item.Difficulty) {
			return nil, fmt.Errorf("catalog item %q: unknown difficulty %q", item.ID, item.Difficulty)
		}
		seen[item.ID] = true
	}
	return file.Items, nil
}
