package interfaces

import (
	"context"
	"time"

	"cotafrete/internal/domain/entities"
)

// AcceptCommand is everything written when a shipper accepts an offer.
type AcceptCommand struct {
	QuoteID          string
	OfferID          string
	CarrierID        string
	Price            float64
	ConfirmationCode string
	Authorization    entities.CollectionAuthorization
	Payment          entities.Payment
	Now              time.Time
}

// IAcceptanceRepository applies an acceptance as one atomic unit: the quote
// leaves its open state, the winning offer is flagged, every other offer is
// unflagged and the pending payment is stored. It returns ErrConcurrentUpdate
// when the quote was no longer open or already had a selected offer.
type IAcceptanceRepository interface {
	Accept(ctx context.Context, cmd AcceptCommand) (entities.Quote, error)
}
