package realtime

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"cotafrete/internal/domain/entities"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 16 * 1024
	sendBuffer     = 64
)

// Client is one websocket connection of an authenticated user. rooms is
// guarded by the hub lock.
type Client struct {
	user  entities.User
	conn  *websocket.Conn
	send  chan []byte
	rooms map[string]struct{}

	closeOnce sync.Once
	done      chan struct{}
}

func newClient(user entities.User, conn *websocket.Conn) *Client {
	return &Client{
		user:  user,
		conn:  conn,
		send:  make(chan []byte, sendBuffer),
		rooms: make(map[string]struct{}),
		done:  make(chan struct{}),
	}
}

// enqueue never blocks the broadcaster; a client that cannot keep up loses
// the frame.
func (c *Client) enqueue(frame []byte) {
	select {
	case <-c.done:
	case c.send <- frame:
	default:
		log.Printf("[realtime][client] send buffer full, dropping frame user_id=%s", c.user.ID)
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case <-c.done:
			_ = c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		case frame := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				log.Printf("[realtime][client] write failed user_id=%s err=%v", c.user.ID, err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump hands every decoded frame to dispatch until the peer goes away.
func (c *Client) readPump(dispatch func(Envelope)) {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[realtime][client] read failed user_id=%s err=%v", c.user.ID, err)
			}
			return
		}
		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil || env.Event == "" {
			c.enqueue(encode(EventError, errorPayload{Message: "Evento inválido"}))
			continue
		}
		dispatch(env)
	}
}
