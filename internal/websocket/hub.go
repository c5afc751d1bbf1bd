package websocket

import "github.com/rs/zerolog/log"

type targeted struct {
	identityID string
	message    []byte
}

type reply struct {
	client  *Client
	message []byte
}

// Hub maintains the set of active clients and routes messages to them. All
// map access happens on the Run goroutine.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Outbound messages for every client.
	broadcast chan []byte

	// Outbound messages for a single identity's clients.
	direct chan targeted

	// Outbound messages for one connection.
	replies chan reply

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// A map of identity IDs to the set of clients opened by that identity.
	subscriptions map[string]map[*Client]bool

	done chan struct{}
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		broadcast:     make(chan []byte, 64),
		direct:        make(chan targeted, 64),
		replies:       make(chan reply, 64),
		Register:      make(chan *Client),
		Unregister:    make(chan *Client),
		clients:       make(map[*Client]bool),
		subscriptions: make(map[string]map[*Client]bool),
		done:          make(chan struct{}),
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			for client := range h.clients {
				h.drop(client)
			}
			return
		case client := <-h.Register:
			h.clients[client] = true
			h.addSubscription(client)
			log.Info().Int("total_clients", len(h.clients)).Str("user_id", client.IdentityID).Msg("Client connected")
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
				log.Info().Int("total_clients", len(h.clients)).Msg("Client disconnected")
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				h.send(client, message)
			}
		case msg := <-h.direct:
			for client := range h.subscriptions[msg.identityID] {
				h.send(client, msg.message)
			}
		case r := <-h.replies:
			if h.clients[r.client] {
				h.send(r.client, r.message)
			}
		}
	}
}

// Stop ends the Run loop and closes every client's send channel.
func (h *Hub) Stop() {
	close(h.done)
}

// BroadcastAll queues a message for every connected client.
func (h *Hub) BroadcastAll(message []byte) {
	select {
	case h.broadcast <- message:
	case <-h.done:
	}
}

// BroadcastTo queues a message for the clients of one identity.
func (h *Hub) BroadcastTo(identityID string, message []byte) {
	select {
	case h.direct <- targeted{identityID: identityID, message: message}:
	case <-h.done:
	}
}

// Reply queues a message for a single connection. Messages for clients that
// have already left are discarded.
func (h *Hub) Reply(client *Client, message []byte) {
	select {
	case h.replies <- reply{client: client, message: message}:
	case <-h.done:
	}
}

// send drops clients whose buffers are full rather than blocking the hub.
func (h *Hub) send(client *Client, message []byte) {
	select {
	case client.Send <- message:
	default:
		log.Warn().Str("user_id", client.IdentityID).Msg("Dropping slow websocket client")
		h.drop(client)
	}
}

func (h *Hub) drop(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.Send)
	h.removeSubscription(client)
}

func (h *Hub) addSubscription(client *Client) {
	if h.subscriptions[client.IdentityID] == nil {
		h.subscriptions[client.IdentityID] = make(map[*Client]bool)
	}
	h.subscriptions[client.IdentityID][client] = true
}

func (h *Hub) removeSubscription(client *Client) {
	if subs, ok := h.subscriptions[client.IdentityID]; ok {
		delete(subs, client)
		if len(subs) == 0 {
			delete(h.subscriptions, client.IdentityID)
		}
	}
}
