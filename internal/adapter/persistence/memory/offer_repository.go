package memory

import (
	"context"

	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase/interfaces"
)

type OfferRepository struct {
	s *Store
}

var _ interfaces.IOfferRepository = (*OfferRepository)(nil)

func (r *OfferRepository) Create(ctx context.Context, o entities.Offer) (entities.Offer, error) {
	if err := alive(ctx); err != nil {
		return entities.Offer{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.offers[o.ID]; ok {
		return entities.Offer{}, interfaces.ErrAlreadyExists
	}
	r.s.offers[o.ID] = o
	return o, nil
}

func (r *OfferRepository) GetByID(ctx context.Context, id string) (entities.Offer, error) {
	if err := alive(ctx); err != nil {
		return entities.Offer{}, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.offers[id], nil
}

func (r *OfferRepository) ListByQuoteID(ctx context.Context, quoteID string) ([]entities.Offer, error) {
	return r.list(ctx, func(o entities.Offer) bool { return o.CotacaoID == quoteID })
}

func (r *OfferRepository) ListByCarrierID(ctx context.Context, carrierID string) ([]entities.Offer, error) {
	return r.list(ctx, func(o entities.Offer) bool { return o.TransportadorID == carrierID })
}

func (r *OfferRepository) list(ctx context.Context, keep func(entities.Offer) bool) ([]entities.Offer, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entities.Offer, 0)
	for _, o := range r.s.offers {
		if keep(o) {
			out = append(out, o)
		}
	}
	return out, nil
}
