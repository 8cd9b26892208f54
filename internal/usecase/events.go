package usecase

import (
	"time"

	"cotafrete/internal/domain/entities"
)

const (
	EventQuoteCreated        = "cotacao.criada"
	EventQuoteCanceled       = "cotacao.cancelada"
	EventQuoteAccepted       = "cotacao.aceita"
	EventCollectionConfirmed = "cotacao.coleta_confirmada"
	EventQuoteFinalized      = "cotacao.finalizada"
	EventPaymentConfirmed    = "pagamento.confirmado"
)

// DomainEvent is the payload published on the bus, keyed by quote id.
type DomainEvent struct {
	Type            string               `json:"type"`
	CotacaoID       string               `json:"cotacaoId"`
	UserID          string               `json:"userId,omitempty"`
	TransportadorID string               `json:"transportadorId,omitempty"`
	Status          entities.QuoteStatus `json:"status,omitempty"`
	Valor           float64              `json:"valor,omitempty"`
	OccurredAt      time.Time            `json:"occurredAt"`
}

func quoteEvent(kind string, q entities.Quote, at time.Time) DomainEvent {
	return DomainEvent{
		Type:            kind,
		CotacaoID:       q.ID,
		UserID:          q.UserID,
		TransportadorID: q.TransportadorID,
		Status:          q.Status,
		Valor:           q.ValorFinalTransportadora,
		OccurredAt:      at,
	}
}

// EventType lets the publisher tag the message without decoding the payload.
func (e DomainEvent) EventType() string { return e.Type }
