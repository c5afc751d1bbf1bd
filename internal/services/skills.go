package services

import (
	"math/rand/v2"

	"github.com/isdelr/lexilearn-be/internal/models"
)

// SkillScore is a named skill with a percentage.
type SkillScore struct {
	Skill      string `json:"skill"`
	Percentage int    `json:"percentage"`
}

// SkillProfile groups a learner's strongest and weakest skills.
type SkillProfile struct {
	Strengths    []SkillScore
	Improvements []SkillScore
}

// SkillEstimator derives a skill profile for an identity.
type SkillEstimator interface {
	Estimate(identityID string, records []models.PerformanceRecord) SkillProfile
}

type skillRange struct {
	skill    string
	min, max int
}

var (
	placeholderStrengths = []skillRange{
		{"Reading Comprehension", 80, 95},
		{"Vocabulary", 75, 90},
	}
	placeholderImprovements = []skillRange{
		{"Phonological Awareness", 60, 70},
		{"Reading Speed", 65, 75},
	}
)

// PlaceholderSkills is demo filler: it ignores the ledger and returns random
// percentages in fixed ranges for a fixed set of skills. It is not a model of
// learner ability.
type PlaceholderSkills struct {
	// IntN returns a value in [0, n). Defaults to math/rand/v2.
	IntN func(n int) int
}

// Estimate returns randomized placeholder percentages.
func (p PlaceholderSkills) Estimate(_ string, _ []models.PerformanceRecord) SkillProfile {
	intN := p.IntN
	if intN == nil {
		intN = rand.IntN
	}
	draw := func(ranges []skillRange) []SkillScore {
		out := make([]SkillScore, len(ranges))
		for i, r := range ranges {
			out[i] = SkillScore{Skill: r.skill, Percentage: r.min + intN(r.max-r.min+1)}
		}
		return out
	}
	return SkillProfile{
		Strengths:    draw(placeholderStrengths),
		Improvements: draw(placeholderImprovements),
	}
}
