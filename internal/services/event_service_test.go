package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/isdelr/lexilearn-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHub struct {
	targeted map[string][][]byte
	all      [][]byte
}

func (h *fakeHub) BroadcastTo(identityID string, message []byte) {
	if h.targeted == nil {
		h.targeted = make(map[string][][]byte)
	}
	h.targeted[identityID] = append(h.targeted[identityID], message)
}

func (h *fakeHub) BroadcastAll(message []byte) {
	h.all = append(h.all, message)
}

func TestEventService_Publish(t *testing.T) {
	hub := &fakeHub{}
	svc := NewEventService(hub)
	svc.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }

	require.NoError(t, svc.Publish(models.EventPerformanceRecorded, "u1", map[string]any{"score": 3}))
	require.NoError(t, svc.Publish(models.EventAnalyticsDigest, "", map[string]int{"records": 4}))

	require.Len(t, hub.targeted["u1"], 1)
	require.Len(t, hub.all, 1)

	var ev models.Event
	require.NoError(t, json.Unmarshal(hub.targeted["u1"][0], &ev))
	assert.Equal(t, models.EventPerformanceRecorded, ev.Type)
	assert.Equal(t, "u1", ev.IdentityID)
	assert.JSONEq(t, `{"score":3}`, string(ev.Payload))
	assert.True(t, svc.now().Equal(ev.CreatedAt))

	require.NoError(t, json.Unmarshal(hub.all[0], &ev))
	assert.Equal(t, models.EventAnalyticsDigest, ev.Type)
}

func TestEventService_Publish_EncodeError(t *testing.T) {
	hub := &fakeHub{}
	err := NewEventService(hub).Publish("x", "u1", func() {})
	assert.Error(t, err)
	assert.Empty(t, hub.targeted)
}
