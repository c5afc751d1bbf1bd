package websocket

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 32
)

// Client is a middleman between one websocket connection and the hub.
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	IdentityID string

	// Buffered channel of outbound messages.
	Send chan []byte
}

// NewClient creates a client for an authenticated identity.
func NewClient(hub *Hub, conn *websocket.Conn, identityID string) *Client {
	return &Client{
		hub:        hub,
		conn:       conn,
		IdentityID: identityID,
		Send:       make(chan []byte, sendBuffer),
	}
}

// ReadPump reads messages from the connection until it closes, passing each
// to handle. It unregisters the client on exit.
func (c *Client) ReadPump(handle func(c *Client, message []byte)) {
	defer func() {
		select {
		case c.hub.Unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("user_id", c.IdentityID).Msg("Unexpected websocket close")
			}
			return
		}
		if handle != nil {
			handle(c, message)
		}
	}
}

// WritePump writes queued messages and keepalive pings to the connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
