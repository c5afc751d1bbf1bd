package websocket

import "encoding/json"

// Message defines the structure for client-to-server websocket messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

// NewErrorMessage encodes an error notice for a client.
func NewErrorMessage(msg string) []byte {
	b, _ := json.Marshal(map[string]string{"type": "error", "message": msg})
	return b
}

// NewPongMessage encodes the reply to a client "ping" action.
func NewPongMessage() []byte {
	b, _ := json.Marshal(map[string]string{"type": "pong"})
	return b
}
