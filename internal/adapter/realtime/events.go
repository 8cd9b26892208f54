package realtime

import (
	"encoding/json"
	"time"
)

// Client → server events.
const (
	EventJoin        = "join"
	EventSendMessage = "send-message"
	EventTyping      = "typing"
	EventMarkAsRead  = "mark-as-read"
)

// Server → client events.
const (
	EventNewMessage   = "new-message"
	EventUserTyping   = "user-typing"
	EventUserOnline   = "user-online"
	EventUserOffline  = "user-offline"
	EventMessagesRead = "messages-read"
	EventError        = "error"
)

// Envelope is the frame exchanged in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type outbound struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type roomPayload struct {
	CotacaoID string `json:"cotacaoId"`
	Conteudo  string `json:"conteudo,omitempty"`
	ChatID    string `json:"chatId,omitempty"`
}

type presencePayload struct {
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName,omitempty"`
	CotacaoID string    `json:"cotacaoId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type readPayload struct {
	CotacaoID   string   `json:"cotacaoId"`
	ChatID      string   `json:"chatId"`
	MensagemIDs []string `json:"mensagemIds"`
}

type errorPayload struct {
	Message string `json:"message"`
}

func encode(event string, data interface{}) []byte {
	b, err := json.Marshal(outbound{Event: event, Data: data})
	if err != nil {
		b, _ = json.Marshal(outbound{Event: EventError, Data: errorPayload{Message: "Erro ao serializar evento"}})
	}
	return b
}
