package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/isdelr/lexilearn-be/internal/models"
	"github.com/isdelr/lexilearn-be/internal/store"
	"github.com/rs/zerolog/log"
)

// MaxMetricMagnitude bounds numeric metric values so sums and means over a
// ledger stay finite.
const MaxMetricMagnitude = 1e15

// PerformanceServiceProvider defines the interface for performance services.
type PerformanceServiceProvider interface {
	Record(ctx context.Context, identityID, activityType string, metrics map[string]any) error
	PersonalizedReport(ctx context.Context, identityID string) (Report, error)
	OverallReport(ctx context.Context) (Report, error)
	ActivityAnalytics(ctx context.Context, identityID string) (ActivityAnalytics, error)
}

// ProgressPoint is the average completion rate for one calendar day.
type ProgressPoint struct {
	Date     string  `json:"date"`
	Progress float64 `json:"progress"`
}

// ActivityAnalytics is the dashboard summary of a learner's ledger.
type ActivityAnalytics struct {
	AverageScore          float64         `json:"averageScore"`
	TotalTimeSpent        float64         `json:"totalTimeSpent"`
	AverageCompletionRate float64         `json:"averageCompletionRate"`
	ProgressOverTime      []ProgressPoint `json:"progressOverTime"`
	SkillStrengths        []SkillScore    `json:"skillStrengths"`
	SkillImprovements     []SkillScore    `json:"skillImprovements"`
}

// PerformanceService records activity and formats analytics over the ledger.
type PerformanceService struct {
	ledger store.LedgerStore
	events EventServiceProvider
	skills SkillEstimator
	now    func() time.Time
}

// NewPerformanceService creates a new PerformanceService. events may be nil.
func NewPerformanceService(ledger store.LedgerStore, events EventServiceProvider, skills SkillEstimator) *PerformanceService {
	if skills == nil {
		skills = PlaceholderSkills{}
	}
	return &PerformanceService{ledger: ledger, events: events, skills: skills, now: time.Now}
}

// Record appends an activity to the identity's ledger.
func (s *PerformanceService) Record(ctx context.Context, identityID, activityType string, metrics map[string]any) error {
	if activityType == "" || len(metrics) == 0 {
		return fmt.Errorf("activity_type and metrics are required: %w", ErrInvalidInput)
	}
	for field, v := range metrics {
		if n, ok := models.AsNumber(v); ok && (math.IsNaN(n) || math.Abs(n) > MaxMetricMagnitude) {
			return fmt.Errorf("%s: %w", field, ErrMetricOutOfRange)
		}
	}

	record := models.PerformanceRecord{
		IdentityID: identityID,
		Timestamp:  s.now().UTC(),
		Activity:   activityType,
		Metrics:    metrics,
	}
	if err := s.ledger.AppendRecord(ctx, record); err != nil {
		return fmt.Errorf("failed to record performance: %w", err)
	}

	if s.events != nil {
		if err := s.events.Publish(models.EventPerformanceRecorded, identityID, record); err != nil {
			log.Warn().Err(err).Str("user_id", identityID).Msg("Failed to publish performance event")
		}
	}
	return nil
}

// PersonalizedReport summarizes the identity's numeric metrics.
func (s *PerformanceService) PersonalizedReport(ctx context.Context, identityID string) (Report, error) {
	records, err := s.ledger.ListRecords(ctx, identityID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoData
	}
	return Describe(records), nil
}

// OverallReport summarizes numeric metrics across every identity.
func (s *PerformanceService) OverallReport(ctx context.Context) (Report, error) {
	records, err := s.ledger.ListAllRecords(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoData
	}
	return Describe(records), nil
}

// ActivityAnalytics derives dashboard metrics from the identity's ledger.
func (s *PerformanceService) ActivityAnalytics(ctx context.Context, identityID string) (ActivityAnalytics, error) {
	records, err := s.ledger.ListRecords(ctx, identityID)
	if err != nil {
		return ActivityAnalytics{}, err
	}
	if len(records) == 0 {
		return ActivityAnalytics{}, ErrNoData
	}

	var totalScore, totalTime, totalCompletion float64
	var scored int
	type bucket struct {
		total float64
		count int
	}
	byDate := make(map[string]*bucket)

	for _, r := range records {
		if score, ok := r.Number("score"); ok {
			totalScore += score
			scored++
		}
		if t, ok := r.Number("timeSpent"); ok {
			totalTime += t
		}
		completion, _ := r.Number("completionRate")
		totalCompletion += completion

		date := time.UnixMilli(r.TimestampMillis()).UTC().Format(time.DateOnly)
		b, ok := byDate[date]
		if !ok {
			b = &bucket{}
			byDate[date] = b
		}
		b.total += completion
		b.count++
	}

	out := ActivityAnalytics{
		TotalTimeSpent:        totalTime,
		AverageCompletionRate: round2(totalCompletion / float64(len(records))),
		ProgressOverTime:      make([]ProgressPoint, 0, len(byDate)),
	}
	if scored > 0 {
		out.AverageScore = round2(totalScore / float64(scored))
	}
	for date, b := range byDate {
		out.ProgressOverTime = append(out.ProgressOverTime, ProgressPoint{Date: date, Progress: round2(b.total / float64(b.count))})
	}
	sort.Slice(out.ProgressOverTime, func(i, j int) bool {
		return out.ProgressOverTime[i].Date < out.ProgressOverTime[j].Date
	})

	skills := s.skills.Estimate(identityID, records)
	out.SkillStrengths = skills.Strengths
	out.SkillImprovements = skills.Improvements
	return out, nil
}
