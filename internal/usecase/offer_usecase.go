package usecase

import (
	"context"
	"errors"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"cotafrete/internal/domain/clock"
	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase/interfaces"
)

// SubmitOfferInput is a carrier's proposal for a quote.
type SubmitOfferInput struct {
	CotacaoID   string
	Valor       float64
	DataEntrega time.Time
	Descricao   string
}

// IOfferUseCase is the offer registry.
type IOfferUseCase interface {
	Submit(ctx context.Context, actor entities.User, in SubmitOfferInput) (entities.Offer, error)
	ListForQuote(ctx context.Context, actor entities.User, quoteID string) ([]entities.Offer, error)
	ListMine(ctx context.Context, actor entities.User, page, limit int) ([]entities.Offer, error)
}

type OfferUseCase struct {
	runtime
	repo      interfaces.IOfferRepository
	quotes    interfaces.IQuoteRepository
	directory interfaces.IUserDirectory
}

var _ IOfferUseCase = (*OfferUseCase)(nil)

func NewOfferUseCase(repo interfaces.IOfferRepository, quotes interfaces.IQuoteRepository, directory interfaces.IUserDirectory, clk clock.Clock) *OfferUseCase {
	return &OfferUseCase{runtime: newRuntime(clk, nil), repo: repo, quotes: quotes, directory: directory}
}

func (u *OfferUseCase) Submit(ctx context.Context, actor entities.User, in SubmitOfferInput) (entities.Offer, error) {
	if !actor.IsCarrier() {
		return entities.Offer{}, ErrCarrierOnly
	}
	in.CotacaoID = strings.TrimSpace(in.CotacaoID)
	if in.CotacaoID == "" || in.Valor == 0 || in.DataEntrega.IsZero() {
		return entities.Offer{}, ErrOfferMissingFields
	}
	now := u.now()
	if err := validateOffer(in, now); err != nil {
		return entities.Offer{}, err
	}

	ctx, cancel := u.bounded(ctx)
	defer cancel()

	q, err := u.quotes.GetByID(ctx, in.CotacaoID)
	if err != nil {
		return entities.Offer{}, u.failed("resposta", "load quote", err)
	}
	if q.ID == "" {
		return entities.Offer{}, ErrQuoteNotFound
	}
	if q.UserID == actor.ID {
		return entities.Offer{}, ErrOwnQuote
	}
	if !q.Status.IsOpen() {
		return entities.Offer{}, ErrQuoteClosedForOffers
	}
	if !q.AcceptsOffers(now) {
		return entities.Offer{}, ErrQuoteExpired
	}

	reg, err := u.directory.GetCarrierTaxRegistration(ctx, actor.ID)
	if err != nil {
		return entities.Offer{}, u.failed("resposta", "tax registration", err)
	}

	o := entities.Offer{
		ID:                entities.OfferID(q.ID, actor.ID),
		CotacaoID:         q.ID,
		TransportadorID:   actor.ID,
		Valor:             math.Round(in.Valor*100) / 100,
		DataEntrega:       in.DataEntrega.UTC(),
		Descricao:         truncateRunes(strings.TrimSpace(in.Descricao), entities.OfferMaxNoteLength),
		TipoTransportador: reg.Tipo,
		EhAutonomoCiot:    reg.RequiresCiot(),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	created, err := u.repo.Create(ctx, o)
	if errors.Is(err, interfaces.ErrAlreadyExists) {
		log.Printf("[resposta][usecase] duplicate offer quote_id=%s carrier_id=%s", q.ID, actor.ID)
		return entities.Offer{}, ErrOfferAlreadyExists
	}
	if err != nil {
		return entities.Offer{}, u.failed("resposta", "create", err)
	}
	log.Printf("[resposta][usecase] submitted offer_id=%s quote_id=%s carrier_id=%s valor=%.2f ciot=%t", created.ID, q.ID, actor.ID, created.Valor, created.EhAutonomoCiot)
	return created, nil
}

func validateOffer(in SubmitOfferInput, now time.Time) error {
	switch {
	case math.IsNaN(in.Valor) || in.Valor <= 0:
		return ErrOfferPriceInvalid
	case in.Valor > entities.OfferMaxPrice:
		return ErrOfferPriceTooHigh
	case !in.DataEntrega.After(now):
		return ErrOfferDatePast
	case in.DataEntrega.After(now.AddDate(0, 0, entities.OfferMaxDeliveryDays)):
		return ErrOfferDateTooFar
	}
	return nil
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}

// ListForQuote shows every offer to the owner and admins, accepted first and
// then by price. A carrier only sees its own offer.
func (u *OfferUseCase) ListForQuote(ctx context.Context, actor entities.User, quoteID string) ([]entities.Offer, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return nil, ErrInvalidQuoteID
	}
	ctx, cancel := u.bounded(ctx)
	defer cancel()

	q, err := u.quotes.GetByID(ctx, quoteID)
	if err != nil {
		return nil, u.failed("resposta", "load quote", err)
	}
	if q.ID == "" {
		return nil, ErrQuoteNotFound
	}

	owner := q.UserID == actor.ID || actor.IsAdmin()
	if !owner && !actor.IsCarrier() {
		return nil, ErrOffersForbidden
	}

	items, err := u.repo.ListByQuoteID(ctx, quoteID)
	if err != nil {
		return nil, u.failed("resposta", "list for quote", err)
	}
	if !owner {
		mine := make([]entities.Offer, 0, 1)
		for _, o := range items {
			if o.TransportadorID == actor.ID {
				mine = append(mine, o)
			}
		}
		if len(mine) == 0 {
			return nil, ErrOffersForbidden
		}
		return mine, nil
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Aceita != items[j].Aceita {
			return items[i].Aceita
		}
		return items[i].Valor < items[j].Valor
	})
	return items, nil
}

func (u *OfferUseCase) ListMine(ctx context.Context, actor entities.User, page, limit int) ([]entities.Offer, error) {
	if !actor.IsCarrier() {
		return nil, ErrCarrierOnly
	}
	ctx, cancel := u.bounded(ctx)
	defer cancel()

	items, err := u.repo.ListByCarrierID(ctx, actor.ID)
	if err != nil {
		return nil, u.failed("resposta", "list mine", err)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return paginate(items, page, limit), nil
}
