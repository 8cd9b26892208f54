package memory

import (
	"context"

	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase/interfaces"
)

type AcceptanceRepository struct {
	s *Store
}

var _ interfaces.IAcceptanceRepository = (*AcceptanceRepository)(nil)

// Accept mirrors the DynamoDB transaction: every condition is checked before
// any item is written.
func (r *AcceptanceRepository) Accept(ctx context.Context, cmd interfaces.AcceptCommand) (entities.Quote, error) {
	if err := alive(ctx); err != nil {
		return entities.Quote{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	q, ok := r.s.quotes[cmd.QuoteID]
	if !ok || !q.Status.IsOpen() || q.RespostaSelecionadaID != "" {
		return entities.Quote{}, interfaces.ErrConcurrentUpdate
	}
	winner, ok := r.s.offers[cmd.OfferID]
	if !ok || winner.CotacaoID != cmd.QuoteID {
		return entities.Quote{}, interfaces.ErrConcurrentUpdate
	}
	if _, ok := r.s.payments[cmd.Payment.ID]; ok {
		return entities.Quote{}, interfaces.ErrConcurrentUpdate
	}

	for id, o := range r.s.offers {
		if o.CotacaoID == cmd.QuoteID && o.Aceita && id != cmd.OfferID {
			o.Aceita = false
			o.UpdatedAt = cmd.Now
			r.s.offers[id] = o
		}
	}
	winner.Aceita = true
	winner.UpdatedAt = cmd.Now
	r.s.offers[winner.ID] = winner

	a := cmd.Authorization
	q = cloneQuote(q)
	q.Status = a.Status
	q.RespostaSelecionadaID = cmd.OfferID
	q.TransportadorID = cmd.CarrierID
	q.ValorFinalTransportadora = cmd.Price
	q.StatusPagamento = entities.PaymentStatePendente
	q.AutorizadoColeta = a.AutorizadoColeta
	q.MotivoBloqueioColeta = a.MotivoBloqueioColeta
	q.MetodosPagamento = a.MetodosPagamento
	q.RequerPagamentoObrigatorio = a.RequerPagamentoObrigatorio
	q.CodigoConfirmacaoColeta = cmd.ConfirmationCode
	q.UpdatedAt = cmd.Now
	r.s.quotes[q.ID] = q

	r.s.payments[cmd.Payment.ID] = clonePayment(cmd.Payment)
	return cloneQuote(q), nil
}
