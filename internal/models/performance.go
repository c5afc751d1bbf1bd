package models

import "time"

// PerformanceRecord is one entry of an identity's activity ledger.
type PerformanceRecord struct {
	IdentityID string         `json:"-"`
	Timestamp  time.Time      `json:"timestamp"`
	Activity   string         `json:"activity"`
	Metrics    map[string]any `json:"metrics"`
}

// Number returns the metric as a float64 if it is present and numeric.
func (p PerformanceRecord) Number(field string) (float64, bool) {
	return AsNumber(p.Metrics[field])
}

// TimestampMillis is the client supplied "timestamp" metric when numeric,
// otherwise the server-assigned timestamp.
func (p PerformanceRecord) TimestampMillis() int64 {
	if ms, ok := p.Number("timestamp"); ok {
		return int64(ms)
	}
	return p.Timestamp.UnixMilli()
}

// AsNumber converts decoded JSON / YAML numeric values to float64.
// Booleans and strings are not numbers.
func AsNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
