package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks missing or malformed request fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrConflict marks a duplicate registration.
	ErrConflict = errors.New("user already exists")
	// ErrNotFound marks an unknown identity or content item.
	ErrNotFound = errors.New("not found")
	// ErrNoData marks an analytics request over an empty ledger.
	ErrNoData = errors.New("no performance data available")
)

// ErrMetricOutOfRange marks a metric whose magnitude exceeds MaxMetricMagnitude.
var ErrMetricOutOfRange = fmt.Errorf("metric out of range: %w", ErrInvalidInput)
