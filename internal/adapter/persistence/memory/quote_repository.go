package memory

import (
	"context"
	"time"

	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase/interfaces"
)

type QuoteRepository struct {
	s *Store
}

var _ interfaces.IQuoteRepository = (*QuoteRepository)(nil)

func (r *QuoteRepository) NextNumber(ctx context.Context) (int64, error) {
	if err := alive(ctx); err != nil {
		return 0, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.quoteSeq++
	return r.s.quoteSeq, nil
}

func (r *QuoteRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	if err := alive(ctx); err != nil {
		return entities.Quote{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.quotes[q.ID]; ok {
		return entities.Quote{}, interfaces.ErrAlreadyExists
	}
	r.s.quotes[q.ID] = cloneQuote(q)
	return cloneQuote(q), nil
}

func (r *QuoteRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	if err := alive(ctx); err != nil {
		return entities.Quote{}, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return cloneQuote(r.s.quotes[id]), nil
}

func (r *QuoteRepository) ListByUserID(ctx context.Context, userID string) ([]entities.Quote, error) {
	return r.list(ctx, func(q entities.Quote) bool { return q.UserID == userID })
}

func (r *QuoteRepository) ListOpen(ctx context.Context, now time.Time) ([]entities.Quote, error) {
	return r.list(ctx, func(q entities.Quote) bool { return q.AcceptsOffers(now) })
}

func (r *QuoteRepository) list(ctx context.Context, keep func(entities.Quote) bool) ([]entities.Quote, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entities.Quote, 0)
	for _, q := range r.s.quotes {
		if keep(q) {
			out = append(out, cloneQuote(q))
		}
	}
	return out, nil
}

// guarded applies mutate when the stored quote satisfies cond. A missing
// quote or a failed condition yields a zero Quote, like the DynamoDB adapter.
func (r *QuoteRepository) guarded(ctx context.Context, id string, cond func(entities.Quote) bool, mutate func(*entities.Quote)) (entities.Quote, error) {
	if err := alive(ctx); err != nil {
		return entities.Quote{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q, ok := r.s.quotes[id]
	if !ok || !cond(q) {
		return entities.Quote{}, nil
	}
	q = cloneQuote(q)
	mutate(&q)
	r.s.quotes[id] = q
	return cloneQuote(q), nil
}

func statusIn(set ...entities.QuoteStatus) func(entities.Quote) bool {
	return func(q entities.Quote) bool { return q.Status.In(set...) }
}

func (r *QuoteRepository) UpdateDetails(ctx context.Context, id string, d interfaces.QuoteDetails, now time.Time) (entities.Quote, error) {
	return r.guarded(ctx, id, statusIn(entities.OpenQuoteStatuses...), func(q *entities.Quote) {
		if d.Titulo != nil {
			q.Titulo = *d.Titulo
		}
		if d.Descricao != nil {
			q.Descricao = *d.Descricao
		}
		if d.Observacoes != nil {
			q.Observacoes = *d.Observacoes
		}
		if d.Peso != nil {
			q.Peso = *d.Peso
		}
		if d.ValorEstimado != nil {
			q.ValorEstimado = *d.ValorEstimado
		}
		q.UpdatedAt = now
	})
}

func (r *QuoteRepository) Cancel(ctx context.Context, id string, now time.Time) (entities.Quote, error) {
	return r.guarded(ctx, id, statusIn(entities.OpenQuoteStatuses...), func(q *entities.Quote) {
		q.Status = entities.QuoteStatusCancelada
		q.UpdatedAt = now
	})
}

func (r *QuoteRepository) MarkViewed(ctx context.Context, id string, now time.Time) (entities.Quote, error) {
	return r.guarded(ctx, id, statusIn(entities.QuoteStatusAberta), func(q *entities.Quote) {
		q.Status = entities.QuoteStatusVisualizada
		q.UpdatedAt = now
	})
}

func (r *QuoteRepository) ConfirmPayment(ctx context.Context, id string, expected, next entities.QuoteStatus, now time.Time) (entities.Quote, error) {
	return r.guarded(ctx, id, statusIn(expected), func(q *entities.Quote) {
		q.Status = next
		q.StatusPagamento = entities.PaymentStateConfirmado
		q.AutorizadoColeta = true
		q.MotivoBloqueioColeta = ""
		q.PagamentoConfirmadoEm = now
		q.UpdatedAt = now
	})
}

func (r *QuoteRepository) ConfirmCollection(ctx context.Context, id string, now time.Time) (entities.Quote, error) {
	cond := func(q entities.Quote) bool {
		return q.AutorizadoColeta && q.Status.In(entities.CollectableQuoteStatuses...)
	}
	return r.guarded(ctx, id, cond, func(q *entities.Quote) {
		q.Status = entities.QuoteStatusEmTransito
		q.DataColetaRealizada = now
		q.UpdatedAt = now
	})
}

func (r *QuoteRepository) RegisterDocument(ctx context.Context, id string, expected, next entities.QuoteStatus, docType entities.DocumentType, doc entities.TransportDocument, finalValue float64, now time.Time) (entities.Quote, error) {
	return r.guarded(ctx, id, statusIn(expected), func(q *entities.Quote) {
		if q.Documentos == nil {
			q.Documentos = make(map[entities.DocumentType]entities.TransportDocument)
		}
		q.Documentos[docType] = doc
		if finalValue > 0 {
			q.ValorFinalTransportadora = finalValue
		}
		q.Status = next
		q.UpdatedAt = now
	})
}

func (r *QuoteRepository) RegisterTracking(ctx context.Context, id, url, code string, now time.Time) (entities.Quote, error) {
	return r.guarded(ctx, id, statusIn(entities.DocumentableQuoteStatuses...), func(q *entities.Quote) {
		if url != "" {
			q.URLRastreamento = url
		}
		if code != "" {
			q.CodigoRastreio = code
		}
		q.UpdatedAt = now
	})
}

func (r *QuoteRepository) ReportDelay(ctx context.Context, id, reason string, newDate, now time.Time) (entities.Quote, error) {
	return r.guarded(ctx, id, statusIn(entities.DocumentableQuoteStatuses...), func(q *entities.Quote) {
		q.MotivoAtraso = reason
		q.AtrasoInformado = true
		if !newDate.IsZero() {
			q.DataEntrega = newDate
		}
		q.UpdatedAt = now
	})
}
