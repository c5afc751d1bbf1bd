package monitoring

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/isdelr/lexilearn-be/internal/models"
	"github.com/isdelr/lexilearn-be/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// ReportSource produces the cross-learner analytics report.
type ReportSource interface {
	OverallReport(ctx context.Context) (services.Report, error)
}

// Digest is the payload of an analytics digest event.
type Digest struct {
	Fields      int             `json:"fields"`
	Report      services.Report `json:"overall_report"`
	GeneratedAt time.Time       `json:"generatedAt"`
}

// DigestScheduler periodically computes the overall report and pushes it to
// every connected client.
type DigestScheduler struct {
	cron    *cron.Cron
	reports ReportSource
	events  services.EventServiceProvider
}

// NewDigestScheduler creates a scheduler for the given cron spec
// (standard five fields or descriptors such as "@hourly").
func NewDigestScheduler(spec string, reports ReportSource, events services.EventServiceProvider) (*DigestScheduler, error) {
	s := &DigestScheduler{
		cron:    cron.New(),
		reports: reports,
		events:  events,
	}
	if _, err := s.cron.AddFunc(spec, s.publishDigest); err != nil {
		return nil, fmt.Errorf("invalid digest schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start begins running the schedule in the background.
func (s *DigestScheduler) Start() {
	log.Info().Msg("Starting analytics digest scheduler...")
	s.cron.Start()
}

// Stop halts the scheduler and waits for a running digest to finish.
func (s *DigestScheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info().Msg("Stopped analytics digest scheduler.")
}

// publishDigest builds the report and broadcasts it. Empty ledgers are skipped.
func (s *DigestScheduler) publishDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	report, err := s.reports.OverallReport(ctx)
	if err != nil {
		if errors.Is(err, services.ErrNoData) {
			log.Debug().Msg("Digest: no performance data yet")
			return
		}
		log.Error().Err(err).Msg("Digest: failed to build overall report")
		return
	}

	digest := Digest{Fields: len(report), Report: report, GeneratedAt: time.Now().UTC()}
	if err := s.events.Publish(models.EventAnalyticsDigest, "", digest); err != nil {
		log.Error().Err(err).Msg("Digest: failed to publish")
		return
	}
	log.Info().Int("fields", digest.Fields).Msg("Digest: published overall analytics")
}
