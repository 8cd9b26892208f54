package memory

import (
	"context"
	"time"

	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase/interfaces"
)

type LedgerRepository struct {
	s *Store
}

var _ interfaces.ILedgerRepository = (*LedgerRepository)(nil)

func (r *LedgerRepository) GetByID(ctx context.Context, id string) (entities.LedgerEntry, error) {
	if err := alive(ctx); err != nil {
		return entities.LedgerEntry{}, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.ledger[id], nil
}

func (r *LedgerRepository) ListByCarrierID(ctx context.Context, carrierID string) ([]entities.LedgerEntry, error) {
	return r.list(ctx, func(e entities.LedgerEntry) bool { return e.TransportadoraID == carrierID })
}

func (r *LedgerRepository) ListAll(ctx context.Context) ([]entities.LedgerEntry, error) {
	return r.list(ctx, func(entities.LedgerEntry) bool { return true })
}

func (r *LedgerRepository) list(ctx context.Context, keep func(entities.LedgerEntry) bool) ([]entities.LedgerEntry, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entities.LedgerEntry, 0)
	for _, e := range r.s.ledger {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *LedgerRepository) UpdateStatus(ctx context.Context, id string, status entities.LedgerStatus, paidAt time.Time, now time.Time) (entities.LedgerEntry, error) {
	if err := alive(ctx); err != nil {
		return entities.LedgerEntry{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.ledger[id]
	if !ok {
		return entities.LedgerEntry{}, nil
	}
	e.Status = status
	e.DataPagamento = paidAt
	e.UpdatedAt = now
	r.s.ledger[id] = e
	return e, nil
}

// incrementLedger adds inc to the (carrier, month, year) entry, creating it
// on first use. The caller holds s.mu.
func (s *Store) incrementLedger(carrierID string, month, year int, inc entities.LedgerIncrement, now time.Time) entities.LedgerEntry {
	id := entities.LedgerEntryID(carrierID, month, year)
	e, ok := s.ledger[id]
	if !ok {
		e = entities.LedgerEntry{
			ID:               id,
			TransportadoraID: carrierID,
			Mes:              month,
			Ano:              year,
			Status:           entities.LedgerStatusPendente,
			CreatedAt:        now,
		}
	}
	e.TotalFaturado = e.TotalFaturado.Add(inc.Gross)
	e.TotalComissao = e.TotalComissao.Add(inc.Commission)
	e.TotalReceber = e.TotalReceber.Add(inc.Net)
	e.NumeroEntregas++
	e.UpdatedAt = now
	s.ledger[id] = e
	return e
}
