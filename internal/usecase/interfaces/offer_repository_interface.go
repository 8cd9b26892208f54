package interfaces

import (
	"context"

	"cotafrete/internal/domain/entities"
)

// IOfferRepository abstracts persistence for Offer.
//
// Create must fail with ErrAlreadyExists when the (quote, carrier) pair
// already holds an offer.
type IOfferRepository interface {
	Create(ctx context.Context, o entities.Offer) (entities.Offer, error)
	GetByID(ctx context.Context, id string) (entities.Offer, error)
	ListByQuoteID(ctx context.Context, quoteID string) ([]entities.Offer, error)
	ListByCarrierID(ctx context.Context, carrierID string) ([]entities.Offer, error)
}
