package models

import (
	"encoding/json"
	"time"
)

// Difficulty levels accepted for content and learner preferences.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// ValidDifficulty reports whether level is one of the fixed difficulty levels.
func ValidDifficulty(level string) bool {
	switch level {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Preferences are the learner settings that drive recommendations.
type Preferences struct {
	PreferredTopics []string `json:"preferred_topics"`
	DifficultyLevel string   `json:"difficulty_level"`
}

// DefaultPreferences returns the preferences a fresh identity starts with.
func DefaultPreferences() Preferences {
	return Preferences{PreferredTopics: []string{}, DifficultyLevel: DifficultyMedium}
}

// PreferencesPatch is a partial update; nil fields are left untouched.
type PreferencesPatch struct {
	PreferredTopics *[]string `json:"preferred_topics,omitempty"`
	DifficultyLevel *string   `json:"difficulty_level,omitempty"`
}

// UnmarshalJSON treats an explicit "preferred_topics": null as clearing the
// topics. An absent key leaves them untouched.
func (p *PreferencesPatch) UnmarshalJSON(data []byte) error {
	type plain PreferencesPatch
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	if _, ok := keys["preferred_topics"]; ok && v.PreferredTopics == nil {
		v.PreferredTopics = &[]string{}
	}
	*p = PreferencesPatch(v)
	return nil
}

// Identity represents a registered learner account.
type Identity struct {
	ID           string    `json:"user_id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose this to the client
	CreatedAt    time.Time `json:"createdAt"`
	Preferences
}

// Profile is the client-facing view of an identity.
type Profile struct {
	ID       string `json:"user_id"`
	Username string `json:"username"`
	Preferences
}

// Profile strips the credential material from the identity.
func (i Identity) Profile() Profile {
	topics := i.PreferredTopics
	if topics == nil {
		topics = []string{}
	}
	return Profile{
		ID:       i.ID,
		Username: i.Username,
		Preferences: Preferences{
			PreferredTopics: topics,
			DifficultyLevel: i.DifficultyLevel,
		},
	}
}
