package memory

import (
	"context"
	"encoding/json"
	"time"

	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase/interfaces"
)

type PaymentRepository struct {
	s *Store
}

var _ interfaces.IPaymentRepository = (*PaymentRepository)(nil)

func (r *PaymentRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	if err := alive(ctx); err != nil {
		return entities.Payment{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.payments[p.ID]; ok {
		return entities.Payment{}, interfaces.ErrAlreadyExists
	}
	r.s.payments[p.ID] = clonePayment(p)
	return clonePayment(p), nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	if err := alive(ctx); err != nil {
		return entities.Payment{}, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.payments[id]
	if !ok {
		return entities.Payment{}, nil
	}
	return clonePayment(p), nil
}

func (r *PaymentRepository) ListByQuoteID(ctx context.Context, quoteID string) ([]entities.Payment, error) {
	return r.list(ctx, func(p entities.Payment) bool { return p.CotacaoID == quoteID })
}

func (r *PaymentRepository) ListByUserID(ctx context.Context, userID string) ([]entities.Payment, error) {
	return r.list(ctx, func(p entities.Payment) bool { return p.UserID == userID })
}

func (r *PaymentRepository) list(ctx context.Context, keep func(entities.Payment) bool) ([]entities.Payment, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entities.Payment, 0)
	for _, p := range r.s.payments {
		if keep(p) {
			out = append(out, clonePayment(p))
		}
	}
	return out, nil
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, id string, status entities.PaymentStatus, now time.Time) (entities.Payment, error) {
	return r.update(ctx, id, func(p *entities.Payment) {
		p.Status = status
		p.UpdatedAt = now
	})
}

func (r *PaymentRepository) AttachProviderResponse(ctx context.Context, id, providerID, providerStatus string, raw json.RawMessage, now time.Time) (entities.Payment, error) {
	return r.update(ctx, id, func(p *entities.Payment) {
		p.ProviderPaymentID = providerID
		p.ProviderStatus = providerStatus
		p.MPPayloadRaw = append([]byte(nil), raw...)
		p.UpdatedAt = now
	})
}

func (r *PaymentRepository) update(ctx context.Context, id string, mutate func(*entities.Payment)) (entities.Payment, error) {
	if err := alive(ctx); err != nil {
		return entities.Payment{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payments[id]
	if !ok {
		return entities.Payment{}, nil
	}
	mutate(&p)
	r.s.payments[id] = p
	return clonePayment(p), nil
}
