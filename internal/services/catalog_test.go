package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/isdelr/lexilearn-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog_Shape(t *testing.T) {
	catalog := DefaultCatalog()
	require.Len(t, catalog, 7)

	var phonological []models.ContentItem
	for _, item := range catalog {
		assert.NotEmpty(t, item.Title)
		assert.NotEmpty(t, item.Topic)
		assert.NotEmpty(t, item.Type)
		if item.Topic == "phonological_awareness" {
			phonological = append(phonological, item)
		}
	}
	require.Len(t, phonological, 2)
	for _, item := range phonological {
		assert.Equal(t, models.ContentGame, item.Type)
		assert.Empty(t, item.Difficulty)
	}
}

func TestLoadCatalog_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := `
items:
  - id: article_9
    title: Phonics Basics
    type: article
    topic: phonological_awareness
    difficulty: easy
    text: Letters make sounds.
    tts_enabled: true
  - id: quiz_9
    title: Sound Quiz
    type: quiz
    topic: phonological_awareness
    questions: ["a?", "b?"]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	items, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Phonics Basics", items[0].Title)
	assert.True(t, items[0].TTSEnabled)
	assert.Equal(t, []string{"a?", "b?"}, items[1].Questions)
}

func TestLoadCatalog_DefaultAndErrors(t *testing.T) {
	items, err := LoadCatalog("")
	require.NoError(t, err)
	assert.Equal(t, DefaultCatalog(), items)

	_, err = LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	for name, doc := range map[string]string{
		"bad yaml":       "items: [",
		"missing title":  "items:\n  - id: a\n    topic: t\n",
		"duplicate id":   "items:\n  - {id: a, title: A, topic: t}\n  - {id: a, title: B, topic: t}\n",
		"bad difficulty": "items:\n  - {id: a, title: A, topic: t, difficulty: brutal}\n",
	} {
		_, err := ParseCatalog([]byte(doc))
		assert.Error(t, err, name)
	}
}
