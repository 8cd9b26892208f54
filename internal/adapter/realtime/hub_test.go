package realtime

import (
	"encoding/json"
	"testing"
	"time"

	"cotafrete/internal/domain/entities"
)

func nextFrame(t *testing.T, c *Client) outboundFrame {
	t.Helper()
	select {
	case b := <-c.send:
		var f outboundFrame
		if err := json.Unmarshal(b, &f); err != nil {
			t.Fatalf("invalid frame: %v", err)
		}
		return f
	case <-time.After(time.Second):
		t.Fatalf("expected a frame for user %s", c.user.ID)
	}
	return outboundFrame{}
}

func noFrame(t *testing.T, c *Client) {
	t.Helper()
	select {
	case b := <-c.send:
		t.Fatalf("unexpected frame for user %s: %s", c.user.ID, b)
	default:
	}
}

type outboundFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func TestHub_Broadcast(t *testing.T) {
	hub := NewHub()
	shipper := newClient(entities.User{ID: "shipper-1"}, nil)
	carrier := newClient(entities.User{ID: "carrier-1"}, nil)
	outsider := newClient(entities.User{ID: "other"}, nil)
	for _, c := range []*Client{shipper, carrier, outsider} {
		hub.register(c)
	}
	hub.join(shipper, RoomName("q-1"))
	hub.join(carrier, RoomName("q-1"))

	t.Run("new message reaches the room only", func(t *testing.T) {
		hub.NotifyNewMessage("q-1", entities.Message{ID: "m-1", Conteudo: "olá"})
		for _, c := range []*Client{shipper, carrier} {
			if f := nextFrame(t, c); f.Event != EventNewMessage {
				t.Fatalf("expected new-message, got %s", f.Event)
			}
		}
		noFrame(t, outsider)
	})

	t.Run("except skips the sender", func(t *testing.T) {
		hub.broadcast(RoomName("q-1"), encode(EventUserTyping, presencePayload{UserID: "carrier-1"}), carrier)
		if f := nextFrame(t, shipper); f.Event != EventUserTyping {
			t.Fatalf("expected user-typing, got %s", f.Event)
		}
		noFrame(t, carrier)
	})

	t.Run("messages read", func(t *testing.T) {
		hub.NotifyMessagesRead("q-1", "chat-1", []string{"m-1"})
		f := nextFrame(t, carrier)
		var p readPayload
		_ = json.Unmarshal(f.Data, &p)
		if f.Event != EventMessagesRead || p.ChatID != "chat-1" || len(p.MensagemIDs) != 1 {
			t.Fatalf("unexpected frame: %+v", f)
		}
		nextFrame(t, shipper)
	})
}

func TestHub_UnregisterCleansBothRegistries(t *testing.T) {
	hub := NewHub()
	tab1 := newClient(entities.User{ID: "carrier-1", Nome: "Transportadora"}, nil)
	tab2 := newClient(entities.User{ID: "carrier-1", Nome: "Transportadora"}, nil)
	shipper := newClient(entities.User{ID: "shipper-1"}, nil)
	for _, c := range []*Client{tab1, tab2, shipper} {
		hub.register(c)
	}
	hub.join(tab1, RoomName("q-1"))
	hub.join(shipper, RoomName("q-1"))

	hub.unregister(tab2)
	noFrame(t, shipper)
	if !hub.Online("carrier-1") {
		t.Fatalf("expected carrier still online")
	}

	hub.unregister(tab1)
	f := nextFrame(t, shipper)
	var p presencePayload
	_ = json.Unmarshal(f.Data, &p)
	if f.Event != EventUserOffline || p.UserID != "carrier-1" {
		t.Fatalf("expected user-offline for carrier-1, got %+v", f)
	}
	if hub.Online("carrier-1") {
		t.Fatalf("expected carrier offline")
	}
	if got := hub.RoomSize(RoomName("q-1")); got != 1 {
		t.Fatalf("expected 1 member left, got %d", got)
	}

	hub.unregister(shipper)
	if got := hub.RoomSize(RoomName("q-1")); got != 0 {
		t.Fatalf("expected empty room, got %d", got)
	}
}

func TestClient_EnqueueDoesNotBlock(t *testing.T) {
	c := newClient(entities.User{ID: "slow"}, nil)
	for i := 0; i < sendBuffer+10; i++ {
		c.enqueue([]byte("x"))
	}
	if len(c.send) != sendBuffer {
		t.Fatalf("expected full buffer, got %d", len(c.send))
	}
	c.close()
	c.close()
	c.enqueue([]byte("after close"))
}
