package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/isdelr/lexilearn-be/internal/models"
	"github.com/rs/zerolog/log"
)

// Broadcaster delivers encoded messages to live clients.
type Broadcaster interface {
	BroadcastTo(identityID string, message []byte)
	BroadcastAll(message []byte)
}

// EventServiceProvider defines the interface for event services.
type EventServiceProvider interface {
	Publish(eventType, identityID string, payload any) error
}

// EventService pushes events to the live activity feed.
type EventService struct {
	hub Broadcaster
	now func() time.Time
}

// NewEventService creates a new EventService.
func NewEventService(hub Broadcaster) *EventService {
	return &EventService{hub: hub, now: time.Now}
}

// Publish encodes an event and sends it to the identity's clients, or to every
// client when identityID is empty.
func (s *EventService) Publish(eventType, identityID string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s payload: %w", eventType, err)
	}
	msg, err := json.Marshal(models.Event{
		Type:       eventType,
		IdentityID: identityID,
		Payload:    raw,
		CreatedAt:  s.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", eventType, err)
	}

	if identityID == "" {
		s.hub.BroadcastAll(msg)
	} else {
		s.hub.BroadcastTo(identityID, msg)
	}
	log.Debug().Str("type", eventType).Str("user_id", identityID).Msg("Published event")
	return nil
}
