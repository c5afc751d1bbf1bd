package services

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/isdelr/lexilearn-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordsWith(metrics ...map[string]any) []models.PerformanceRecord {
	out := make([]models.PerformanceRecord, len(metrics))
	for i, m := range metrics {
		out[i] = models.PerformanceRecord{IdentityID: "u", Activity: "quiz", Metrics: m}
	}
	return out
}

func TestDescribe_TwoScores(t *testing.T) {
	report := Describe(recordsWith(map[string]any{"score": 5.0}, map[string]any{"score": 9.0}))

	s, ok := report["score"]
	require.True(t, ok)
	assert.Equal(t, 2.0, s.Count)
	assert.Equal(t, 7.0, s.Mean)
	require.NotNil(t, s.Std)
	assert.InDelta(t, math.Sqrt(8), *s.Std, 1e-9)
	assert.Equal(t, 5.0, s.Min)
	assert.Equal(t, 6.0, s.Q25)
	assert.Equal(t, 7.0, s.Q50)
	assert.Equal(t, 8.0, s.Q75)
	assert.Equal(t, 9.0, s.Max)
}

func TestDescribe_Quartiles(t *testing.T) {
	report := Describe(recordsWith(
		map[string]any{"n": 4.0}, map[string]any{"n": 1.0}, map[string]any{"n": 3.0},
		map[string]any{"n": 2.0}, map[string]any{"n": 10.0},
	))
	s := report["n"]
	assert.Equal(t, 5.0, s.Count)
	assert.Equal(t, 4.0, s.Mean)
	assert.Equal(t, 2.0, s.Q25)
	assert.Equal(t, 3.0, s.Q50)
	assert.Equal(t, 4.0, s.Q75)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 10.0, s.Max)
}

func TestDescribe_FieldSelection(t *testing.T) {
	report := Describe(recordsWith(
		map[string]any{"score": 1.0, "label": "a", "mixed": 1.0, "done": true, "timestamp": 1700000000000.0, "gap": nil},
		map[string]any{"time": 3.0, "mixed": "two"},
	))

	assert.Contains(t, report, "score")
	assert.Contains(t, report, "time")
	assert.NotContains(t, report, "label")
	assert.NotContains(t, report, "mixed")
	assert.NotContains(t, report, "done")
	assert.NotContains(t, report, "timestamp")
	assert.NotContains(t, report, "gap")

	// A single value has no sample deviation.
	assert.Equal(t, 1.0, report["score"].Count)
	assert.Nil(t, report["score"].Std)
	assert.Equal(t, 1.0, report["score"].Q75)
}

func TestDescribe_Empty(t *testing.T) {
	assert.Empty(t, Describe(nil))
}

func TestDescribe_ExtremeValuesStayEncodable(t *testing.T) {
	report := Describe(recordsWith(
		map[string]any{"score": math.MaxFloat64}, map[string]any{"score": -math.MaxFloat64},
	))

	s := report["score"]
	assert.Nil(t, s.Std)
	for _, v := range []float64{s.Mean, s.Min, s.Q25, s.Q50, s.Q75, s.Max} {
		assert.False(t, math.IsInf(v, 0) || math.IsNaN(v), "non-finite value %v", v)
	}
	_, err := json.Marshal(report)
	assert.NoError(t, err)
}
