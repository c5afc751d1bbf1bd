package services

import (
	"math"
	"sort"

	"github.com/isdelr/lexilearn-be/internal/models"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FieldSummary holds descriptive statistics for one numeric metric.
// Std is null when fewer than two values are present.
type FieldSummary struct {
	Count float64  `json:"count"`
	Mean  float64  `json:"mean"`
	Std   *float64 `json:"std"`
	Min   float64  `json:"min"`
	Q25   float64  `json:"25%"`
	Q50   float64  `json:"50%"`
	Q75   float64  `json:"75%"`
	Max   float64  `json:"max"`
}

// Report maps metric names to their summaries.
type Report map[string]FieldSummary

// reservedFields are carried in metrics but are not measurements.
var reservedFields = map[string]bool{"timestamp": true}

// Describe summarizes every numeric metric across records. A metric counts as
// numeric only when all of its non-null values are numbers.
func Describe(records []models.PerformanceRecord) Report {
	values := make(map[string][]float64)
	nonNumeric := make(map[string]bool)

	for _, r := range records {
		for field, v := range r.Metrics {
			if v == nil || reservedFields[field] {
				continue
			}
			n, ok := models.AsNumber(v)
			if !ok {
				nonNumeric[field] = true
				continue
			}
			values[field] = append(values[field], n)
		}
	}

	report := make(Report, len(values))
	for field, xs := range values {
		if nonNumeric[field] {
			continue
		}
		report[field] = summarize(xs)
	}
	return report
}

func summarize(xs []float64) FieldSummary {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)

	s := FieldSummary{
		Count: float64(len(sorted)),
		Min:   floats.Min(sorted),
		Max:   floats.Max(sorted),
		Q25:   quantile(sorted, 0.25),
		Q50:   quantile(sorted, 0.50),
		Q75:   quantile(sorted, 0.75),
	}
	if len(sorted) < 2 {
		s.Mean = sorted[0]
		return s
	}
	mean, std := stat.MeanStdDev(sorted, nil)
	s.Mean = mean
	if !math.IsInf(std, 0) && !math.IsNaN(std) {
		s.Std = &std
	}
	return s
}

// quantile interpolates linearly between closest ranks at h = (n-1)p.
// stat.Quantile's LinInterp works on the empirical CDF (h = np) and gives
// different quartiles for small samples.
func quantile(sorted []float64, p float64) float64 {
	h := float64(len(sorted)-1) * p
	lo := math.Floor(h)
	hi := math.Ceil(h)
	if lo == hi {
		return sorted[int(lo)]
	}
	f := h - lo
	return sorted[int(lo)]*(1-f) + sorted[int(hi)]*f
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
