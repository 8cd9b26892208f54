package entities

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var chatNamespace = uuid.MustParse("0b8f3d4e-8d4a-4f1b-bb0e-2f6a91c7e6d3")

type ChatStatus string

const (
	ChatStatusAberto            ChatStatus = "aberto"
	ChatStatusFechadoAutomatico ChatStatus = "fechado_automatico"
	ChatStatusFechado           ChatStatus = "fechado"
)

// Chat is the gated conversation between the quote owner and a carrier.
//
// Storage model (DynamoDB):
//   - PK: id (UUIDv5 of cotacao_id + sorted participants)
//   - GSI (cliente_id-index): cliente_id
//   - GSI (transportadora_id-index): transportadora_id
//
// StatusChat is a cache. Use IsOpen to decide whether the chat accepts messages.
type Chat struct {
	ID                 string     `json:"id"`
	CotacaoID          string     `json:"cotacaoId"`
	Participantes      []string   `json:"participantes"`
	ClienteID          string     `json:"clienteId"`
	TransportadoraID   string     `json:"transportadoraId"`
	HoraAbertura       time.Time  `json:"horaAbertura"`
	HoraFechamento     time.Time  `json:"horaFechamento"`
	StatusChat         ChatStatus `json:"statusChat"`
	UltimaMensagem     string     `json:"ultimaMensagem,omitempty"`
	UltimaMensagemData time.Time  `json:"ultimaMensagemData,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// ChatID derives the identifier of the chat for a quote and participant set.
// Participant order does not matter.
func ChatID(quoteID string, participants []string) string {
	ids := make([]string, 0, len(participants))
	for _, p := range participants {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	sort.Strings(ids)
	key := strings.TrimSpace(quoteID) + "|" + strings.Join(ids, ",")
	return uuid.NewSHA1(chatNamespace, []byte(key)).String()
}

// Expired reports whether the auto-close deadline passed.
func (c Chat) Expired(now time.Time) bool {
	return !c.HoraFechamento.IsZero() && now.After(c.HoraFechamento)
}

// IsOpen is the derived status: stored status open and deadline not passed.
func (c Chat) IsOpen(now time.Time) bool {
	return c.StatusChat == ChatStatusAberto && !c.Expired(now)
}

// EffectiveStatus returns the status a reader should see at now.
func (c Chat) EffectiveStatus(now time.Time) ChatStatus {
	if c.StatusChat == ChatStatusAberto && c.Expired(now) {
		return ChatStatusFechadoAutomatico
	}
	return c.StatusChat
}

func (c Chat) HasParticipant(userID string) bool {
	for _, p := range c.Participantes {
		if p == userID {
			return true
		}
	}
	return false
}
