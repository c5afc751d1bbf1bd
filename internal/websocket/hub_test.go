package websocket

import (
	"testing"
	"time"
)

func newTestClient(hub *Hub, identityID string) *Client {
	return &Client{hub: hub, IdentityID: identityID, Send: make(chan []byte, 4)}
}

func receive(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case msg, ok := <-c.Send:
		if !ok {
			t.Fatalf("send channel for %s closed", c.IdentityID)
		}
		return msg
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for message to %s", c.IdentityID)
	}
	return nil
}

func expectNothing(t *testing.T, c *Client) {
	t.Helper()
	select {
	case msg := <-c.Send:
		t.Fatalf("unexpected message to %s: %s", c.IdentityID, msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_RoutesByIdentity(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	alice1 := newTestClient(hub, "alice")
	alice2 := newTestClient(hub, "alice")
	bob := newTestClient(hub, "bob")
	hub.Register <- alice1
	hub.Register <- alice2
	hub.Register <- bob

	hub.BroadcastTo("alice", []byte("for-alice"))
	if got := string(receive(t, alice1)); got != "for-alice" {
		t.Fatalf("alice1 got %q", got)
	}
	if got := string(receive(t, alice2)); got != "for-alice" {
		t.Fatalf("alice2 got %q", got)
	}
	expectNothing(t, bob)

	hub.BroadcastAll([]byte("everyone"))
	for _, c := range []*Client{alice1, alice2, bob} {
		if got := string(receive(t, c)); got != "everyone" {
			t.Fatalf("%s got %q", c.IdentityID, got)
		}
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	c := newTestClient(hub, "carol")
	hub.Register <- c
	hub.Unregister <- c

	select {
	case _, ok := <-c.Send:
		if ok {
			t.Fatal("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatal("send channel was not closed")
	}

	// Messages for a departed identity are discarded.
	hub.BroadcastTo("carol", []byte("late"))
}

func TestHub_DropsSlowClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	slow := &Client{hub: hub, IdentityID: "slow", Send: make(chan []byte, 1)}
	slow.Send <- []byte("backlog")
	hub.Register <- slow
	hub.BroadcastTo("slow", []byte("x"))
	// Leave the backlog in place until the hub has tried to deliver.
	time.Sleep(100 * time.Millisecond)

	deadline := time.After(time.Second)
	for {
		select {
		case msg, ok := <-slow.Send:
			if !ok {
				return
			}
			if string(msg) != "backlog" {
				t.Fatalf("slow client should not receive %q", msg)
			}
		case <-deadline:
			t.Fatal("slow client was not dropped")
		}
	}
}

func TestHub_ReplyTargetsOneConnection(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	first := newTestClient(hub, "alice")
	second := newTestClient(hub, "alice")
	hub.Register <- first
	hub.Register <- second

	hub.Reply(first, []byte("pong"))
	if got := string(receive(t, first)); got != "pong" {
		t.Fatalf("first got %q", got)
	}
	expectNothing(t, second)

	hub.Unregister <- first
	hub.Reply(first, []byte("late"))
	expectNothing(t, second)
}
