package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"cotafrete/internal/domain/clock"
	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase/interfaces"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// AcceptanceResult is the quote after acceptance and its pending payment.
type AcceptanceResult struct {
	Cotacao   entities.Quote
	Pagamento entities.Payment
}

// IAcceptanceUseCase selects the winning offer of a quote and derives the
// collection authorization.
type IAcceptanceUseCase interface {
	Accept(ctx context.Context, actor entities.User, quoteID, offerID string) (AcceptanceResult, error)
	AcceptOffer(ctx context.Context, actor entities.User, offerID string) (AcceptanceResult, error)
}

type AcceptanceUseCase struct {
	runtime
	repo      interfaces.IAcceptanceRepository
	quotes    interfaces.IQuoteRepository
	offers    interfaces.IOfferRepository
	payments  interfaces.IPaymentRepository
	directory interfaces.IUserDirectory

	// sf collapses concurrent duplicates of the same (actor, quote, offer).
	sf singleflight.Group
}

var _ IAcceptanceUseCase = (*AcceptanceUseCase)(nil)

func NewAcceptanceUseCase(
	repo interfaces.IAcceptanceRepository,
	quotes interfaces.IQuoteRepository,
	offers interfaces.IOfferRepository,
	payments interfaces.IPaymentRepository,
	directory interfaces.IUserDirectory,
	events interfaces.IEventPublisher,
	clk clock.Clock,
) *AcceptanceUseCase {
	return &AcceptanceUseCase{
		runtime:   newRuntime(clk, events),
		repo:      repo,
		quotes:    quotes,
		offers:    offers,
		payments:  payments,
		directory: directory,
	}
}

func (u *AcceptanceUseCase) AcceptOffer(ctx context.Context, actor entities.User, offerID string) (AcceptanceResult, error) {
	offerID = strings.TrimSpace(offerID)
	if offerID == "" {
		return AcceptanceResult{}, ErrInvalidOfferID
	}
	lookupCtx, cancel := u.bounded(ctx)
	o, err := u.offers.GetByID(lookupCtx, offerID)
	cancel()
	if err != nil {
		return AcceptanceResult{}, u.failed("aceite", "load offer", err)
	}
	if o.ID == "" {
		return AcceptanceResult{}, ErrOfferNotFound
	}
	return u.Accept(ctx, actor, o.CotacaoID, offerID)
}

func (u *AcceptanceUseCase) Accept(ctx context.Context, actor entities.User, quoteID, offerID string) (AcceptanceResult, error) {
	quoteID = strings.TrimSpace(quoteID)
	offerID = strings.TrimSpace(offerID)
	if quoteID == "" {
		return AcceptanceResult{}, ErrInvalidQuoteID
	}
	if offerID == "" {
		return AcceptanceResult{}, ErrInvalidOfferID
	}

	// Collapsed callers share one call, so it must not die with the first
	// caller's context. accept bounds it with its own timeout.
	key := actor.ID + "|" + quoteID + "|" + offerID
	shared := context.WithoutCancel(ctx)
	v, err, collapsed := u.sf.Do(key, func() (interface{}, error) {
		return u.accept(shared, actor, quoteID, offerID)
	})
	if collapsed {
		log.Printf("[aceite][usecase] collapsed duplicate accept quote_id=%s offer_id=%s", quoteID, offerID)
	}
	if err != nil {
		return AcceptanceResult{}, err
	}
	return v.(AcceptanceResult), nil
}

func (u *AcceptanceUseCase) accept(ctx context.Context, actor entities.User, quoteID, offerID string) (AcceptanceResult, error) {
	log.Printf("[aceite][usecase] accept start quote_id=%s offer_id=%s user_id=%s", quoteID, offerID, actor.ID)
	ctx, cancel := u.bounded(ctx)
	defer cancel()

	q, err := u.quotes.GetByID(ctx, quoteID)
	if err != nil {
		return AcceptanceResult{}, u.failed("aceite", "load quote", err)
	}
	if q.ID == "" {
		return AcceptanceResult{}, ErrQuoteNotFound
	}
	if q.UserID != actor.ID {
		return AcceptanceResult{}, ErrAcceptForbidden
	}
	if q.RespostaSelecionadaID == offerID {
		return u.existingOutcome(ctx, q)
	}
	if !q.Status.IsOpen() || q.RespostaSelecionadaID != "" {
		return AcceptanceResult{}, ErrQuoteNotAcceptable
	}

	var (
		offer  entities.Offer
		credit bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		offer, err = u.offers.GetByID(gctx, offerID)
		return err
	})
	g.Go(func() error {
		var err error
		credit, err = u.directory.GetShipperCreditAuthorization(gctx, q.UserID)
		return err
	})
	if err := g.Wait(); err != nil {
		return AcceptanceResult{}, u.failed("aceite", "load offer and credit", err)
	}
	if offer.ID == "" {
		return AcceptanceResult{}, ErrOfferNotFound
	}
	if offer.CotacaoID != q.ID {
		return AcceptanceResult{}, ErrOfferNotInQuote
	}

	now := u.now()
	auth := entities.DeriveCollectionAuthorization(credit, offer.EhAutonomoCiot)
	payment := entities.Payment{
		ID:         uuid.NewString(),
		CotacaoID:  q.ID,
		RespostaID: offer.ID,
		UserID:     q.UserID,
		Valor:      offer.Valor,
		Metodo:     auth.MetodoPreferencial,
		Status:     entities.PaymentStatusPendente,
		Descricao:  fmt.Sprintf("Frete cotação #%d", q.Numero),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	accepted, err := u.repo.Accept(ctx, interfaces.AcceptCommand{
		QuoteID:          q.ID,
		OfferID:          offer.ID,
		CarrierID:        offer.TransportadorID,
		Price:            offer.Valor,
		ConfirmationCode: confirmationCode(),
		Authorization:    auth,
		Payment:          payment,
		Now:              now,
	})
	if errors.Is(err, interfaces.ErrConcurrentUpdate) {
		return u.afterLostRace(ctx, q.ID, offerID)
	}
	if err != nil {
		return AcceptanceResult{}, u.failed("aceite", "accept", err)
	}

	log.Printf("[aceite][usecase] accepted quote_id=%s offer_id=%s carrier_id=%s status=%s autorizado_coleta=%t metodo=%s",
		accepted.ID, offer.ID, offer.TransportadorID, accepted.Status, accepted.AutorizadoColeta, payment.Metodo)
	u.publish(ctx, quoteEvent(EventQuoteAccepted, accepted, now))
	return AcceptanceResult{Cotacao: accepted, Pagamento: payment}, nil
}

// afterLostRace re-reads the quote: a concurrent accept of the same offer is
// an idempotent success, anything else means the quote is no longer open.
func (u *AcceptanceUseCase) afterLostRace(ctx context.Context, quoteID, offerID string) (AcceptanceResult, error) {
	q, err := u.quotes.GetByID(ctx, quoteID)
	if err != nil {
		return AcceptanceResult{}, u.failed("aceite", "reload quote", err)
	}
	if q.RespostaSelecionadaID == offerID {
		return u.existingOutcome(ctx, q)
	}
	log.Printf("[aceite][usecase] lost acceptance race quote_id=%s offer_id=%s selected=%s", quoteID, offerID, q.RespostaSelecionadaID)
	return AcceptanceResult{}, ErrQuoteNotAcceptable
}

func (u *AcceptanceUseCase) existingOutcome(ctx context.Context, q entities.Quote) (AcceptanceResult, error) {
	payments, err := u.payments.ListByQuoteID(ctx, q.ID)
	if err != nil {
		return AcceptanceResult{}, u.failed("aceite", "load payment", err)
	}
	res := AcceptanceResult{Cotacao: q}
	for _, p := range payments {
		if p.RespostaID == q.RespostaSelecionadaID {
			res.Pagamento = p
			break
		}
	}
	log.Printf("[aceite][usecase] accept already applied quote_id=%s offer_id=%s payment_id=%s", q.ID, q.RespostaSelecionadaID, res.Pagamento.ID)
	return res, nil
}

// confirmationCode is the six digit code the shipper hands to the driver at pickup.
func confirmationCode() string {
	return fmt.Sprintf("%06d", uuid.New().ID()%1000000)
}
