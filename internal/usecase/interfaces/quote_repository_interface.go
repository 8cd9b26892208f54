package interfaces

import (
	"context"
	"time"

	"cotafrete/internal/domain/entities"
)

// QuoteDetails are the descriptive fields a shipper may edit while the quote is open.
type QuoteDetails struct {
	Titulo        *string
	Descricao     *string
	Observacoes   *string
	Peso          *float64
	ValorEstimado *float64
}

// IQuoteRepository abstracts persistence for Quote.
//
// Guarded updates return a zero Quote (and nil error) when the item does not
// exist or its status is outside the allowed set, like a failed condition.
type IQuoteRepository interface {
	NextNumber(ctx context.Context) (int64, error)
	Create(ctx context.Context, q entities.Quote) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	ListByUserID(ctx context.Context, userID string) ([]entities.Quote, error)
	ListOpen(ctx context.Context, now time.Time) ([]entities.Quote, error)

	UpdateDetails(ctx context.Context, id string, d QuoteDetails, now time.Time) (entities.Quote, error)
	Cancel(ctx context.Context, id string, now time.Time) (entities.Quote, error)
	MarkViewed(ctx context.Context, id string, now time.Time) (entities.Quote, error)
	ConfirmPayment(ctx context.Context, id string, expected, next entities.QuoteStatus, now time.Time) (entities.Quote, error)
	// ConfirmCollection requires a collectable status and autorizado_coleta.
	ConfirmCollection(ctx context.Context, id string, now time.Time) (entities.Quote, error)
	// RegisterDocument is guarded by the status read by the caller (expected)
	// and moves the quote to next in the same write.
	RegisterDocument(ctx context.Context, id string, expected, next entities.QuoteStatus, docType entities.DocumentType, doc entities.TransportDocument, finalValue float64, now time.Time) (entities.Quote, error)
	RegisterTracking(ctx context.Context, id, url, code string, now time.Time) (entities.Quote, error)
	ReportDelay(ctx context.Context, id, reason string, newDate time.Time, now time.Time) (entities.Quote, error)
}
