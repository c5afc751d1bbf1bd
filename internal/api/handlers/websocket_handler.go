package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	ws "github.com/isdelr/lexilearn-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

// WebSocketHandler upgrades authenticated connections and subscribes them to
// the caller's event stream.
type WebSocketHandler struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

// NewWebSocketHandler creates a new WebSocketHandler. Origins are checked by
// the CORS allow-list.
func NewWebSocketHandler(hub *ws.Hub, allowedOrigins []string) *WebSocketHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed["*"] || allowed[origin]
			},
		},
	}
}

// Serve handles the websocket connection request.
func (h *WebSocketHandler) Serve(identityID string, w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Str("user_id", identityID).Msg("Failed to upgrade websocket connection")
		return
	}

	client := ws.NewClient(h.hub, conn, identityID)
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump(h.handleIncomingWSMessage)
}

func (h *WebSocketHandler) handleIncomingWSMessage(client *ws.Client, message []byte) {
	var msg ws.Message
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Warn().Err(err).Str("user_id", client.IdentityID).Msg("Error unmarshalling websocket message")
		h.hub.Reply(client, ws.NewErrorMessage("invalid message"))
		return
	}

	switch msg.Action {
	case "ping":
		h.hub.Reply(client, ws.NewPongMessage())
	default:
		log.Debug().Str("action", msg.Action).Str("user_id", client.IdentityID).Msg("Unknown websocket action")
		h.hub.Reply(client, ws.NewErrorMessage("unknown action: "+msg.Action))
	}
}

