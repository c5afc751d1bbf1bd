package models

import (
	"encoding/json"
	"time"
)

// Event types pushed over the live activity feed.
const (
	EventPerformanceRecorded = "performance.recorded"
	EventAnalyticsDigest     = "analytics.digest"
)

// Event represents a notification delivered to connected clients.
type Event struct {
	Type       string          `json:"type"`                 // e.g., "performance.recorded"
	IdentityID string          `json:"userId,omitempty"`     // Empty for broadcast events
	Payload    json.RawMessage `json:"payload,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}
