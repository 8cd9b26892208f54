package realtime

import (
	"log"
	"sync"
	"time"

	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase/interfaces"
)

// RoomName is the live room of a quote.
func RoomName(quoteID string) string { return "cotacao:" + quoteID }

type clientSet map[*Client]struct{}

// Hub keeps the presence registry (user → connections) and the room
// registry (room → connections). Both change under the same lock so a
// disconnect never leaves one of them stale.
type Hub struct {
	mu    sync.Mutex
	users map[string]clientSet
	rooms map[string]clientSet
	now   func() time.Time
}

var _ interfaces.IRoomNotifier = (*Hub)(nil)

func NewHub() *Hub {
	return &Hub{
		users: make(map[string]clientSet),
		rooms: make(map[string]clientSet),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.users[c.user.ID]
	if !ok {
		set = make(clientSet)
		h.users[c.user.ID] = set
	}
	set[c] = struct{}{}
	log.Printf("[realtime][hub] connected user_id=%s connections=%d", c.user.ID, len(set))
}

// unregister drops the connection from both registries. When it was the
// user's last connection, the rooms it had joined are told the user left.
func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	joined := make([]string, 0, len(c.rooms))
	for room := range c.rooms {
		joined = append(joined, room)
		if members, ok := h.rooms[room]; ok {
			delete(members, c)
			if len(members) == 0 {
				delete(h.rooms, room)
			}
		}
	}
	c.rooms = map[string]struct{}{}

	lastConnection := false
	if set, ok := h.users[c.user.ID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.users, c.user.ID)
			lastConnection = true
		}
	}
	h.mu.Unlock()

	c.close()
	log.Printf("[realtime][hub] disconnected user_id=%s last=%v rooms=%d", c.user.ID, lastConnection, len(joined))
	if !lastConnection {
		return
	}
	for _, room := range joined {
		h.broadcast(room, encode(EventUserOffline, presencePayload{
			UserID:    c.user.ID,
			UserName:  c.user.Nome,
			Timestamp: h.now(),
		}), nil)
	}
}

func (h *Hub) join(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.rooms[room]
	if !ok {
		members = make(clientSet)
		h.rooms[room] = members
	}
	members[c] = struct{}{}
	c.rooms[room] = struct{}{}
}

func (h *Hub) inRoom(c *Client, room string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := c.rooms[room]
	return ok
}

// Online reports whether the user has at least one live connection.
func (h *Hub) Online(userID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.users[userID]) > 0
}

// RoomSize is the number of connections joined to a room.
func (h *Hub) RoomSize(room string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[room])
}

func (h *Hub) broadcast(room string, frame []byte, except *Client) {
	h.mu.Lock()
	targets := make([]*Client, 0, len(h.rooms[room]))
	for c := range h.rooms[room] {
		if c != except {
			targets = append(targets, c)
		}
	}
	h.mu.Unlock()

	for _, c := range targets {
		c.enqueue(frame)
	}
}

func (h *Hub) NotifyNewMessage(quoteID string, m entities.Message) {
	h.broadcast(RoomName(quoteID), encode(EventNewMessage, m), nil)
}

func (h *Hub) NotifyMessagesRead(quoteID, chatID string, messageIDs []string) {
	h.broadcast(RoomName(quoteID), encode(EventMessagesRead, readPayload{
		CotacaoID:   quoteID,
		ChatID:      chatID,
		MensagemIDs: messageIDs,
	}), nil)
}
