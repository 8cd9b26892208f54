package entities

import (
	"strings"
	"time"
)

type MessageKind string

const (
	MessageKindTexto   MessageKind = "texto"
	MessageKindArquivo MessageKind = "arquivo"
)

// MessageMaxLength bounds message content on every transport.
const MessageMaxLength = 2000

type Attachment struct {
	URL  string `json:"url"`
	Nome string `json:"nome"`
	Tipo string `json:"tipo"`
}

// Message belongs to a chat. Only Lida changes after creation.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (chat_id-index): chat_id, sort created_at
type Message struct {
	ID           string      `json:"id"`
	ChatID       string      `json:"chatId"`
	UserID       string      `json:"userId"`
	Conteudo     string      `json:"conteudo"`
	TipoMensagem MessageKind `json:"tipoMensagem"`
	Arquivo      *Attachment `json:"arquivo,omitempty"`
	Lida         bool        `json:"lida"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// Preview is the denormalized text stored on the chat for its last message.
func (m Message) Preview() string {
	if m.Arquivo != nil {
		return "[arquivo] " + m.Arquivo.Nome
	}
	return m.Conteudo
}

// SanitizeContent trims and truncates to MessageMaxLength runes.
func SanitizeContent(s string) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) > MessageMaxLength {
		return string(r[:MessageMaxLength])
	}
	return s
}
