package memory

import (
	"context"

	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase/interfaces"
)

type SettlementRepository struct {
	s *Store
}

var _ interfaces.ISettlementRepository = (*SettlementRepository)(nil)

// Finalize mirrors the DynamoDB transaction: the status guard is checked
// and both writes are applied under the store lock.
func (r *SettlementRepository) Finalize(ctx context.Context, cmd interfaces.FinalizeCommand) (entities.Quote, entities.LedgerEntry, error) {
	if err := alive(ctx); err != nil {
		return entities.Quote{}, entities.LedgerEntry{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	q, ok := r.s.quotes[cmd.QuoteID]
	if !ok || q.Status != cmd.ExpectedStatus {
		return entities.Quote{}, entities.LedgerEntry{}, nil
	}
	q = cloneQuote(q)
	q.Status = entities.QuoteStatusFinalizada
	q.DocumentoCanhoto = cmd.ProofURL
	q.DataEntregaRealizada = cmd.Now
	q.UpdatedAt = cmd.Now
	r.s.quotes[q.ID] = q

	entry := r.s.incrementLedger(cmd.CarrierID, cmd.Month, cmd.Year, cmd.Increment, cmd.Now)
	return cloneQuote(q), entry, nil
}
