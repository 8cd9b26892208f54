package usecase

import (
	"context"
	"log"
	"math"
	"strings"
	"time"

	"cotafrete/internal/domain/clock"
	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

// DocumentInput attaches a transport document; ValorFinal > 0 also submits
// the carrier's final value for approval.
type DocumentInput struct {
	Tipo       entities.DocumentType
	Codigo     string
	URL        string
	ValorFinal float64
}

// FinalizeResult is the finalized quote and the ledger entry it accrued to.
type FinalizeResult struct {
	Cotacao    entities.Quote
	Financeiro entities.LedgerEntry
}

// IDeliveryUseCase advances an accepted quote through pickup, transit and delivery.
type IDeliveryUseCase interface {
	ConfirmCollection(ctx context.Context, actor entities.User, quoteID, code string) (entities.Quote, error)
	RegisterDocument(ctx context.Context, actor entities.User, quoteID string, in DocumentInput) (entities.Quote, error)
	RegisterTracking(ctx context.Context, actor entities.User, quoteID, url, code string) (entities.Quote, error)
	ReportDelay(ctx context.Context, actor entities.User, quoteID, reason string, newDate time.Time) (entities.Quote, error)
	Finalize(ctx context.Context, actor entities.User, quoteID, proofURL string) (FinalizeResult, error)
}

type DeliveryUseCase struct {
	runtime
	quotes      interfaces.IQuoteRepository
	offers      interfaces.IOfferRepository
	settlements interfaces.ISettlementRepository
}

var _ IDeliveryUseCase = (*DeliveryUseCase)(nil)

func NewDeliveryUseCase(quotes interfaces.IQuoteRepository, offers interfaces.IOfferRepository, settlements interfaces.ISettlementRepository, events interfaces.IEventPublisher, clk clock.Clock) *DeliveryUseCase {
	return &DeliveryUseCase{runtime: newRuntime(clk, events), quotes: quotes, offers: offers, settlements: settlements}
}

// loadForCarrier returns the quote when actor is the carrier of its accepted offer.
func (u *DeliveryUseCase) loadForCarrier(ctx context.Context, actor entities.User, quoteID string) (entities.Quote, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}
	q, err := u.quotes.GetByID(ctx, quoteID)
	if err != nil {
		return entities.Quote{}, u.failed("entrega", "load quote", err)
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	if q.RespostaSelecionadaID == "" {
		return entities.Quote{}, ErrQuoteNotAccepted
	}
	if q.TransportadorID != actor.ID {
		return entities.Quote{}, ErrSelectedCarrierOnly
	}
	return q, nil
}

// ConfirmCollection may be called by the owner or the selected carrier.
func (u *DeliveryUseCase) ConfirmCollection(ctx context.Context, actor entities.User, quoteID, code string) (entities.Quote, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}
	ctx, cancel := u.bounded(ctx)
	defer cancel()

	q, err := u.quotes.GetByID(ctx, quoteID)
	if err != nil {
		return entities.Quote{}, u.failed("entrega", "load quote", err)
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	if q.UserID != actor.ID && (q.TransportadorID == "" || q.TransportadorID != actor.ID) {
		return entities.Quote{}, ErrCollectionForbidden
	}
	if !q.AutorizadoColeta && q.MotivoBloqueioColeta != "" {
		return entities.Quote{}, forbidden(q.MotivoBloqueioColeta)
	}
	if !q.Status.In(entities.CollectableQuoteStatuses...) {
		return entities.Quote{}, ErrQuoteNotReadyCollection
	}
	if !q.AutorizadoColeta {
		return entities.Quote{}, ErrCollectionBlocked
	}
	code = strings.TrimSpace(code)
	if q.CodigoConfirmacaoColeta != "" && code != q.CodigoConfirmacaoColeta {
		return entities.Quote{}, ErrInvalidConfirmationCode
	}

	now := u.now()
	updated, err := u.quotes.ConfirmCollection(ctx, q.ID, now)
	if err != nil {
		return entities.Quote{}, u.failed("entrega", "confirm collection", err)
	}
	if updated.ID == "" {
		return entities.Quote{}, ErrQuoteNotReadyCollection
	}
	log.Printf("[entrega][usecase] collection confirmed quote_id=%s by=%s", q.ID, actor.ID)
	u.publish(ctx, quoteEvent(EventCollectionConfirmed, updated, now))
	return updated, nil
}

func (u *DeliveryUseCase) RegisterDocument(ctx context.Context, actor entities.User, quoteID string, in DocumentInput) (entities.Quote, error) {
	in.Tipo = entities.DocumentType(strings.ToLower(strings.TrimSpace(string(in.Tipo))))
	if !in.Tipo.Valid() {
		return entities.Quote{}, ErrInvalidDocumentType
	}
	if in.ValorFinal < 0 || math.IsNaN(in.ValorFinal) || in.ValorFinal > entities.OfferMaxPrice {
		return entities.Quote{}, ErrInvalidDocumentValue
	}
	ctx, cancel := u.bounded(ctx)
	defer cancel()

	q, err := u.loadForCarrier(ctx, actor, quoteID)
	if err != nil {
		return entities.Quote{}, err
	}
	if !q.Status.In(entities.DocumentableQuoteStatuses...) {
		return entities.Quote{}, ErrQuoteNotDocumentable
	}

	next := q.Status
	// A final value sent before the payment settles is stored without moving
	// the quote past the payment gate.
	if in.ValorFinal > 0 && q.Status != entities.QuoteStatusAguardandoPagamento {
		next = entities.QuoteStatusAguardandoAprovacaoCte
	}
	doc := entities.TransportDocument{
		Codigo:     strings.TrimSpace(in.Codigo),
		URL:        strings.TrimSpace(in.URL),
		Registrado: true,
	}
	updated, err := u.quotes.RegisterDocument(ctx, q.ID, q.Status, next, in.Tipo, doc, math.Round(in.ValorFinal*100)/100, u.now())
	if err != nil {
		return entities.Quote{}, u.failed("entrega", "register document", err)
	}
	if updated.ID == "" {
		return entities.Quote{}, ErrQuoteNotDocumentable
	}
	log.Printf("[entrega][usecase] document registered quote_id=%s tipo=%s status=%s", q.ID, in.Tipo, updated.Status)
	return updated, nil
}

func (u *DeliveryUseCase) RegisterTracking(ctx context.Context, actor entities.User, quoteID, url, code string) (entities.Quote, error) {
	url = strings.TrimSpace(url)
	code = strings.TrimSpace(code)
	if url == "" && code == "" {
		return entities.Quote{}, invalidInput("URL ou código de rastreio é obrigatório")
	}
	ctx, cancel := u.bounded(ctx)
	defer cancel()

	q, err := u.loadForCarrier(ctx, actor, quoteID)
	if err != nil {
		return entities.Quote{}, err
	}
	updated, err := u.quotes.RegisterTracking(ctx, q.ID, url, code, u.now())
	if err != nil {
		return entities.Quote{}, u.failed("entrega", "register tracking", err)
	}
	if updated.ID == "" {
		return entities.Quote{}, ErrQuoteNotDocumentable
	}
	return updated, nil
}

// ReportDelay records the reason (and optionally a new date); status is unchanged.
func (u *DeliveryUseCase) ReportDelay(ctx context.Context, actor entities.User, quoteID, reason string, newDate time.Time) (entities.Quote, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return entities.Quote{}, invalidInput("Motivo do atraso é obrigatório")
	}
	now := u.now()
	if !newDate.IsZero() && !newDate.After(now) {
		return entities.Quote{}, ErrInvalidDelayDate
	}
	ctx, cancel := u.bounded(ctx)
	defer cancel()

	q, err := u.loadForCarrier(ctx, actor, quoteID)
	if err != nil {
		return entities.Quote{}, err
	}
	updated, err := u.quotes.ReportDelay(ctx, q.ID, truncateRunes(reason, entities.OfferMaxNoteLength), newDate.UTC(), now)
	if err != nil {
		return entities.Quote{}, u.failed("entrega", "report delay", err)
	}
	if updated.ID == "" {
		return entities.Quote{}, ErrQuoteNotDocumentable
	}
	log.Printf("[entrega][usecase] delay reported quote_id=%s", q.ID)
	return updated, nil
}

// Finalize closes the delivery and accrues the best-known value to the
// carrier's ledger entry for the current civil month. Both writes commit
// together, guarded by the status read here: a failed attempt leaves the
// quote finalizable, and a retry after success fails before the ledger.
func (u *DeliveryUseCase) Finalize(ctx context.Context, actor entities.User, quoteID, proofURL string) (FinalizeResult, error) {
	ctx, cancel := u.bounded(ctx)
	defer cancel()

	q, err := u.loadForCarrier(ctx, actor, quoteID)
	if err != nil {
		return FinalizeResult{}, err
	}
	if !q.Status.In(entities.FinalizableQuoteStatuses...) {
		return FinalizeResult{}, ErrQuoteNotInTransit
	}

	var offerPrice float64
	if q.ValorFinalTransportadora <= 0 && q.ValorEstimado <= 0 {
		o, err := u.offers.GetByID(ctx, q.RespostaSelecionadaID)
		if err != nil {
			return FinalizeResult{}, u.failed("entrega", "load accepted offer", err)
		}
		offerPrice = o.Valor
	}
	value := decimal.NewFromFloat(q.SettlementValue(offerPrice))

	now := u.now()
	month, year := clock.CivilMonth(now)
	finalized, entry, err := u.settlements.Finalize(ctx, interfaces.FinalizeCommand{
		QuoteID:        q.ID,
		ExpectedStatus: q.Status,
		ProofURL:       strings.TrimSpace(proofURL),
		CarrierID:      q.TransportadorID,
		Month:          month,
		Year:           year,
		Increment:      entities.SplitCommission(value),
		Now:            now,
	})
	if err != nil {
		return FinalizeResult{}, u.failed("entrega", "finalize", err)
	}
	if finalized.ID == "" {
		return FinalizeResult{}, ErrQuoteNotInTransit
	}
	log.Printf("[entrega][usecase] finalized quote_id=%s carrier_id=%s value=%s ledger_id=%s entregas=%d",
		q.ID, finalized.TransportadorID, value, entry.ID, entry.NumeroEntregas)
	u.publish(ctx, quoteEvent(EventQuoteFinalized, finalized, now))
	return FinalizeResult{Cotacao: finalized, Financeiro: entry}, nil
}
