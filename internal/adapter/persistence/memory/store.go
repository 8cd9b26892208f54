package memory

import (
	"context"
	"sync"

	"cotafrete/internal/domain/entities"
)

// Store is an in-process storage backend implementing the repository ports.
// Every conditional write of the DynamoDB adapter is reproduced under a
// single lock, so the same uniqueness and guard semantics hold.
type Store struct {
	mu sync.RWMutex

	quoteSeq int64
	quotes   map[string]entities.Quote
	offers   map[string]entities.Offer
	chats    map[string]entities.Chat
	messages map[string]entities.Message
	ledger   map[string]entities.LedgerEntry
	payments map[string]entities.Payment
}

func NewStore() *Store {
	return &Store{
		quotes:   make(map[string]entities.Quote),
		offers:   make(map[string]entities.Offer),
		chats:    make(map[string]entities.Chat),
		messages: make(map[string]entities.Message),
		ledger:   make(map[string]entities.LedgerEntry),
		payments: make(map[string]entities.Payment),
	}
}

func (s *Store) Quotes() *QuoteRepository           { return &QuoteRepository{s: s} }
func (s *Store) Offers() *OfferRepository           { return &OfferRepository{s: s} }
func (s *Store) Acceptances() *AcceptanceRepository { return &AcceptanceRepository{s: s} }
func (s *Store) Chats() *ChatRepository             { return &ChatRepository{s: s} }
func (s *Store) Messages() *MessageRepository       { return &MessageRepository{s: s} }
func (s *Store) Ledger() *LedgerRepository          { return &LedgerRepository{s: s} }
func (s *Store) Payments() *PaymentRepository       { return &PaymentRepository{s: s} }
func (s *Store) Settlements() *SettlementRepository { return &SettlementRepository{s: s} }

// alive fails fast when the caller's context is already done.
func alive(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

func cloneQuote(q entities.Quote) entities.Quote {
	if q.Documentos != nil {
		docs := make(map[entities.DocumentType]entities.TransportDocument, len(q.Documentos))
		for k, v := range q.Documentos {
			docs[k] = v
		}
		q.Documentos = docs
	}
	return q
}

func cloneChat(c entities.Chat) entities.Chat {
	c.Participantes = append([]string(nil), c.Participantes...)
	return c
}

func cloneMessage(m entities.Message) entities.Message {
	if m.Arquivo != nil {
		a := *m.Arquivo
		m.Arquivo = &a
	}
	return m
}

func clonePayment(p entities.Payment) entities.Payment {
	if p.MPPayloadRaw != nil {
		p.MPPayloadRaw = append([]byte(nil), p.MPPayloadRaw...)
	}
	return p
}
