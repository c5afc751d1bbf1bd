package models

// Content types in the catalog.
const (
	ContentArticle = "article"
	ContentGame    = "game"
	ContentVideo   = "video"
	ContentQuiz    = "quiz"
)

// ContentItem is a read-only learning catalog entry. Fields beyond
// title, type and topic depend on the content type.
type ContentItem struct {
	ID           string   `json:"id" yaml:"id"`
	Title        string   `json:"title" yaml:"title"`
	Type         string   `json:"type" yaml:"type"`
	Topic        string   `json:"topic" yaml:"topic"`
	Difficulty   string   `json:"difficulty,omitempty" yaml:"difficulty,omitempty"` // Optional; games and quizzes often have none
	Text         string   `json:"text,omitempty" yaml:"text,omitempty"`
	Instructions string   `json:"instructions,omitempty" yaml:"instructions,omitempty"`
	URL          string   `json:"url,omitempty" yaml:"url,omitempty"`
	Questions    []string `json:"questions,omitempty" yaml:"questions,omitempty"`
	TTSEnabled   bool     `json:"tts_enabled,omitempty" yaml:"tts_enabled,omitempty"`
	STTEnabled   bool     `json:"stt_enabled,omitempty" yaml:"stt_enabled,omitempty"`
	TTSAvailable bool     `json:"tts_available,omitempty" yaml:"tts_available,omitempty"`
}
