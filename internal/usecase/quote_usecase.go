package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"cotafrete/internal/domain/clock"
	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase/interfaces"

	"github.com/google/uuid"
)

// CreateQuoteInput is what a shipper supplies to open a transport request.
type CreateQuoteInput struct {
	Titulo           string
	Descricao        string
	Observacoes      string
	Coleta           entities.Address
	DataColeta       time.Time
	Entrega          entities.Address
	DataEntrega      time.Time
	Peso             float64
	ValorEstimado    float64
	MinutosExpiracao int
}

// QuoteFilter narrows the shipper's own listing.
type QuoteFilter struct {
	Status entities.QuoteStatus
	Page   int
	Limit  int
}

// IQuoteUseCase is the quote ledger: creation, reads and pre-acceptance edits.
type IQuoteUseCase interface {
	Create(ctx context.Context, actor entities.User, in CreateQuoteInput) (entities.Quote, error)
	ListMine(ctx context.Context, actor entities.User, f QuoteFilter) ([]entities.Quote, error)
	Get(ctx context.Context, actor entities.User, id string) (entities.Quote, error)
	Update(ctx context.Context, actor entities.User, id string, d interfaces.QuoteDetails) (entities.Quote, error)
	Cancel(ctx context.Context, actor entities.User, id string) (entities.Quote, error)
	ListAvailable(ctx context.Context, actor entities.User, page, limit int) ([]entities.Quote, error)
}

type QuoteUseCase struct {
	runtime
	repo   interfaces.IQuoteRepository
	offers interfaces.IOfferRepository
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(repo interfaces.IQuoteRepository, offers interfaces.IOfferRepository, events interfaces.IEventPublisher, clk clock.Clock) *QuoteUseCase {
	return &QuoteUseCase{runtime: newRuntime(clk, events), repo: repo, offers: offers}
}

func (u *QuoteUseCase) Create(ctx context.Context, actor entities.User, in CreateQuoteInput) (entities.Quote, error) {
	if !actor.IsShipper() {
		return entities.Quote{}, ErrShipperOnly
	}
	in.Coleta = upperAddress(in.Coleta)
	in.Entrega = upperAddress(in.Entrega)
	if in.Coleta.Cidade == "" || in.Entrega.Cidade == "" {
		return entities.Quote{}, ErrQuoteMissingFields
	}
	if in.Peso < 0 || in.ValorEstimado < 0 {
		return entities.Quote{}, invalidInput("Peso e valor estimado não podem ser negativos")
	}

	ctx, cancel := u.bounded(ctx)
	defer cancel()

	now := u.now()
	numero, err := u.repo.NextNumber(ctx)
	if err != nil {
		return entities.Quote{}, u.failed("cotacao", "next number", err)
	}

	minutes := entities.ClampExpiryMinutes(in.MinutosExpiracao)
	q := entities.Quote{
		ID:            uuid.NewString(),
		Numero:        numero,
		UserID:        actor.ID,
		Titulo:        strings.TrimSpace(in.Titulo),
		Descricao:     strings.TrimSpace(in.Descricao),
		Observacoes:   strings.TrimSpace(in.Observacoes),
		Status:        entities.QuoteStatusAberta,
		DataHoraFim:   now.Add(time.Duration(minutes) * time.Minute),
		Coleta:        in.Coleta,
		DataColeta:    in.DataColeta.UTC(),
		Entrega:       in.Entrega,
		DataEntrega:   in.DataEntrega.UTC(),
		Peso:          in.Peso,
		ValorEstimado: in.ValorEstimado,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if q.DataColeta.IsZero() {
		q.DataColeta = now
	}
	if q.Titulo == "" {
		q.Titulo = defaultQuoteTitle(q.Coleta.Cidade, q.DataColeta)
	}

	created, err := u.repo.Create(ctx, q)
	if err != nil {
		return entities.Quote{}, u.failed("cotacao", "create", err)
	}
	log.Printf("[cotacao][usecase] created quote_id=%s numero=%d user_id=%s expires_at=%s", created.ID, created.Numero, actor.ID, created.DataHoraFim.Format(time.RFC3339))
	u.publish(ctx, quoteEvent(EventQuoteCreated, created, now))
	return created, nil
}

func defaultQuoteTitle(city string, at time.Time) string {
	return fmt.Sprintf("COTAÇÃO %s - %s", city, clock.InCivilTime(at).Format("02/01/2006"))
}

func upperAddress(a entities.Address) entities.Address {
	up := func(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }
	return entities.Address{
		Nome:        up(a.Nome),
		Logradouro:  up(a.Logradouro),
		Bairro:      up(a.Bairro),
		Cidade:      up(a.Cidade),
		Estado:      up(a.Estado),
		Cep:         strings.TrimSpace(a.Cep),
		Complemento: up(a.Complemento),
	}
}

func (u *QuoteUseCase) ListMine(ctx context.Context, actor entities.User, f QuoteFilter) ([]entities.Quote, error) {
	ctx, cancel := u.bounded(ctx)
	defer cancel()

	items, err := u.repo.ListByUserID(ctx, actor.ID)
	if err != nil {
		return nil, u.failed("cotacao", "list mine", err)
	}
	out := make([]entities.Quote, 0, len(items))
	for _, q := range items {
		if f.Status == "" || q.Status == f.Status {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, f.Page, f.Limit), nil
}

// Get is allowed to the owner, admins, any carrier while the quote is open
// and carriers that hold an offer on it. A carrier opening an "aberta" quote
// marks it "visualizada".
func (u *QuoteUseCase) Get(ctx context.Context, actor entities.User, id string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}
	ctx, cancel := u.bounded(ctx)
	defer cancel()

	q, err := u.load(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.UserID == actor.ID || actor.IsAdmin() {
		return q, nil
	}
	if !actor.IsCarrier() {
		return entities.Quote{}, ErrNotQuoteOwner
	}
	if !q.Status.IsOpen() && q.TransportadorID != actor.ID {
		o, err := u.offers.GetByID(ctx, entities.OfferID(q.ID, actor.ID))
		if err != nil {
			return entities.Quote{}, u.failed("cotacao", "load offer", err)
		}
		if o.ID == "" {
			return entities.Quote{}, ErrNotQuoteOwner
		}
	}

	if q.Status == entities.QuoteStatusAberta {
		viewed, err := u.repo.MarkViewed(ctx, q.ID, u.now())
		if err != nil {
			log.Printf("[cotacao][usecase] mark viewed failed quote_id=%s err=%v", q.ID, err)
		} else if viewed.ID != "" {
			q = viewed
		}
	}
	return q, nil
}

func (u *QuoteUseCase) Update(ctx context.Context, actor entities.User, id string, d interfaces.QuoteDetails) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}
	if (d.Peso != nil && *d.Peso < 0) || (d.ValorEstimado != nil && *d.ValorEstimado < 0) {
		return entities.Quote{}, invalidInput("Peso e valor estimado não podem ser negativos")
	}
	ctx, cancel := u.bounded(ctx)
	defer cancel()

	q, err := u.load(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.UserID != actor.ID {
		return entities.Quote{}, ErrNotQuoteOwner
	}
	if !q.Status.IsOpen() {
		return entities.Quote{}, ErrQuoteNotEditable
	}

	updated, err := u.repo.UpdateDetails(ctx, id, d, u.now())
	if err != nil {
		return entities.Quote{}, u.failed("cotacao", "update", err)
	}
	if updated.ID == "" {
		return entities.Quote{}, ErrQuoteNotEditable
	}
	return updated, nil
}

func (u *QuoteUseCase) Cancel(ctx context.Context, actor entities.User, id string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}
	ctx, cancel := u.bounded(ctx)
	defer cancel()

	q, err := u.load(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.UserID != actor.ID {
		return entities.Quote{}, ErrNotQuoteOwner
	}
	if !q.Status.IsOpen() {
		return entities.Quote{}, ErrQuoteNotCancelable
	}

	now := u.now()
	canceled, err := u.repo.Cancel(ctx, id, now)
	if err != nil {
		return entities.Quote{}, u.failed("cotacao", "cancel", err)
	}
	if canceled.ID == "" {
		return entities.Quote{}, ErrQuoteNotCancelable
	}
	log.Printf("[cotacao][usecase] canceled quote_id=%s", id)
	u.publish(ctx, quoteEvent(EventQuoteCanceled, canceled, now))
	return canceled, nil
}

func (u *QuoteUseCase) ListAvailable(ctx context.Context, actor entities.User, page, limit int) ([]entities.Quote, error) {
	if !actor.IsCarrier() {
		return nil, ErrCarrierOnly
	}
	ctx, cancel := u.bounded(ctx)
	defer cancel()

	now := u.now()
	items, err := u.repo.ListOpen(ctx, now)
	if err != nil {
		return nil, u.failed("cotacao", "list open", err)
	}
	out := make([]entities.Quote, 0, len(items))
	for _, q := range items {
		if q.UserID != actor.ID && q.AcceptsOffers(now) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DataHoraFim.Before(out[j].DataHoraFim) })
	return paginate(out, page, limit), nil
}

func (u *QuoteUseCase) load(ctx context.Context, id string) (entities.Quote, error) {
	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, u.failed("cotacao", "load", err)
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return q, nil
}
