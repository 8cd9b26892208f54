package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cotafrete/internal/adapter/persistence/memory"
	"cotafrete/internal/domain/clock"
	"cotafrete/internal/domain/entities"
	"cotafrete/internal/infrastructure/directory"
	"cotafrete/internal/infrastructure/events"
	"cotafrete/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

var (
	shipper       = entities.User{ID: "shipper-1", Role: entities.RoleEmbarcador}
	shipperNoCred = entities.User{ID: "shipper-2", Role: entities.RoleEmbarcador}
	carrierA      = entities.User{ID: "carrier-a", Role: entities.RoleTransportador}
	carrierB      = entities.User{ID: "carrier-b", Role: entities.RoleTransportador}
	carrierCiot   = entities.User{ID: "carrier-ciot", Role: entities.RoleTransportador}
	admin         = entities.User{ID: "admin-1", Role: entities.RoleAdmin}
)

// flow wires every use case over one in-memory store, like the memory
// storage driver does at runtime.
type flow struct {
	clk        *clock.FixedClock
	store      *memory.Store
	quotes     *QuoteUseCase
	offers     *OfferUseCase
	acceptance *AcceptanceUseCase
	delivery   *DeliveryUseCase
	ledger     *LedgerUseCase
	chats      *ChatUseCase
	payments   *PaymentUseCase
}

func newFlow(t *testing.T) *flow {
	t.Helper()
	// 10:00 in Brasília.
	clk := clock.NewFixed(time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC))
	s := memory.NewStore()
	dir := directory.NewStaticDirectory(
		directory.SeedUser{User: shipper, AutorizadoBoleto: true},
		directory.SeedUser{User: shipperNoCred},
		directory.SeedUser{User: carrierA},
		directory.SeedUser{User: carrierB},
		directory.SeedUser{User: carrierCiot, RegistroFiscal: entities.TaxRegistration{Tipo: "autonomo", EhAutonomoCiot: true}},
		directory.SeedUser{User: admin},
	)
	pub := events.NoopPublisher{}
	ledger := NewLedgerUseCase(s.Ledger(), clk)
	return &flow{
		clk:        clk,
		store:      s,
		quotes:     NewQuoteUseCase(s.Quotes(), s.Offers(), pub, clk),
		offers:     NewOfferUseCase(s.Offers(), s.Quotes(), dir, clk),
		acceptance: NewAcceptanceUseCase(s.Acceptances(), s.Quotes(), s.Offers(), s.Payments(), dir, pub, clk),
		delivery:   NewDeliveryUseCase(s.Quotes(), s.Offers(), s.Settlements(), pub, clk),
		ledger:     ledger,
		chats:      NewChatUseCase(s.Chats(), s.Messages(), s.Quotes(), dir, nil, clk),
		payments:   NewPaymentUseCase(s.Payments(), s.Quotes(), nil, false, pub, clk),
	}
}

func (f *flow) quote(t *testing.T, owner entities.User) entities.Quote {
	t.Helper()
	q, err := f.quotes.Create(context.Background(), owner, CreateQuoteInput{
		Coleta:  entities.Address{Cidade: "londrina", Estado: "pr"},
		Entrega: entities.Address{Cidade: "santos", Estado: "sp"},
	})
	if err != nil {
		t.Fatalf("create quote: %v", err)
	}
	return q
}

func (f *flow) offer(t *testing.T, carrier entities.User, quoteID string, valor float64) entities.Offer {
	t.Helper()
	o, err := f.offers.Submit(context.Background(), carrier, SubmitOfferInput{
		CotacaoID:   quoteID,
		Valor:       valor,
		DataEntrega: f.clk.Now().AddDate(0, 0, 10),
	})
	if err != nil {
		t.Fatalf("submit offer: %v", err)
	}
	return o
}

func TestFlow_QuoteCreation(t *testing.T) {
	f := newFlow(t)
	q := f.quote(t, shipper)
	if q.Numero != 1 || q.Status != entities.QuoteStatusAberta {
		t.Fatalf("unexpected quote: numero=%d status=%s", q.Numero, q.Status)
	}
	if q.Coleta.Cidade != "LONDRINA" {
		t.Fatalf("expected upper-cased city, got %q", q.Coleta.Cidade)
	}
	if q.Titulo != "COTAÇÃO LONDRINA - 10/03/2026" {
		t.Fatalf("unexpected default title %q", q.Titulo)
	}
	if want := f.clk.Now().Add(120 * time.Minute); !q.DataHoraFim.Equal(want) {
		t.Fatalf("expected default expiry %s, got %s", want, q.DataHoraFim)
	}
	if _, err := f.quotes.Create(context.Background(), carrierA, CreateQuoteInput{}); !errors.Is(err, ErrShipperOnly) {
		t.Fatalf("expected ErrShipperOnly, got %v", err)
	}

	got, err := f.quotes.Get(context.Background(), carrierA, q.ID)
	if err != nil || got.Status != entities.QuoteStatusVisualizada {
		t.Fatalf("expected carrier view to mark visualizada, got %s err=%v", got.Status, err)
	}
}

func TestFlow_OfferRules(t *testing.T) {
	f := newFlow(t)
	q := f.quote(t, shipper)
	f.offer(t, carrierA, q.ID, 120)

	_, err := f.offers.Submit(context.Background(), carrierA, SubmitOfferInput{CotacaoID: q.ID, Valor: 100, DataEntrega: f.clk.Now().AddDate(0, 0, 5)})
	if !errors.Is(err, ErrOfferAlreadyExists) || !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict on second offer, got %v", err)
	}
	_, err = f.offers.Submit(context.Background(), carrierB, SubmitOfferInput{CotacaoID: q.ID, Valor: 100, DataEntrega: f.clk.Now().AddDate(0, 0, 91)})
	if !errors.Is(err, ErrOfferDateTooFar) {
		t.Fatalf("expected ErrOfferDateTooFar, got %v", err)
	}
	_, err = f.offers.Submit(context.Background(), carrierB, SubmitOfferInput{CotacaoID: q.ID, Valor: 2_000_000, DataEntrega: f.clk.Now().AddDate(0, 0, 5)})
	if !errors.Is(err, ErrOfferPriceTooHigh) {
		t.Fatalf("expected ErrOfferPriceTooHigh, got %v", err)
	}

	f.clk.Advance(3 * time.Hour)
	_, err = f.offers.Submit(context.Background(), carrierB, SubmitOfferInput{CotacaoID: q.ID, Valor: 100, DataEntrega: f.clk.Now().AddDate(0, 0, 5)})
	if !errors.Is(err, ErrQuoteExpired) {
		t.Fatalf("expected ErrQuoteExpired after deadline, got %v", err)
	}

	ciotQuote := f.quote(t, shipper)
	o := f.offer(t, carrierCiot, ciotQuote.ID, 80)
	if !o.EhAutonomoCiot || o.TipoTransportador != "autonomo" {
		t.Fatalf("expected tax snapshot on offer, got %+v", o)
	}
}

func TestFlow_AcceptWithCreditReleasesCollection(t *testing.T) {
	f := newFlow(t)
	ctx := context.Background()
	q := f.quote(t, shipper)
	f.offer(t, carrierA, q.ID, 120)
	o2 := f.offer(t, carrierB, q.ID, 90)

	res, err := f.acceptance.Accept(ctx, shipper, q.ID, o2.ID)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if res.Cotacao.Status != entities.QuoteStatusAguardandoColeta || !res.Cotacao.AutorizadoColeta {
		t.Fatalf("expected released collection, got status=%s autorizado=%t", res.Cotacao.Status, res.Cotacao.AutorizadoColeta)
	}
	if res.Cotacao.TransportadorID != carrierB.ID || res.Cotacao.ValorFinalTransportadora != 90 {
		t.Fatalf("unexpected carrier or value: %+v", res.Cotacao)
	}
	if res.Pagamento.Valor != 90 || res.Pagamento.Metodo != entities.PaymentMethodBoleto || res.Pagamento.Status != entities.PaymentStatusPendente {
		t.Fatalf("unexpected payment: %+v", res.Pagamento)
	}
	if len(res.Cotacao.CodigoConfirmacaoColeta) != 6 {
		t.Fatalf("expected six digit code, got %q", res.Cotacao.CodigoConfirmacaoColeta)
	}

	again, err := f.acceptance.Accept(ctx, shipper, q.ID, o2.ID)
	if err != nil || again.Pagamento.ID != res.Pagamento.ID {
		t.Fatalf("expected idempotent accept, got %+v err=%v", again.Pagamento, err)
	}
	pays, _ := f.store.Payments().ListByQuoteID(ctx, q.ID)
	if len(pays) != 1 {
		t.Fatalf("expected a single payment, got %d", len(pays))
	}

	offers, err := f.offers.ListForQuote(ctx, shipper, q.ID)
	if err != nil || len(offers) != 2 || offers[0].ID != o2.ID || !offers[0].Aceita || offers[1].Aceita {
		t.Fatalf("expected accepted offer first and only one accepted, got %+v err=%v", offers, err)
	}

	if _, err := f.offers.Submit(ctx, carrierCiot, SubmitOfferInput{CotacaoID: q.ID, Valor: 50, DataEntrega: f.clk.Now().AddDate(0, 0, 2)}); !errors.Is(err, ErrQuoteClosedForOffers) {
		t.Fatalf("expected closed quote, got %v", err)
	}
	if _, err := f.acceptance.Accept(ctx, carrierA, q.ID, o2.ID); !errors.Is(err, ErrAcceptForbidden) {
		t.Fatalf("expected ErrAcceptForbidden, got %v", err)
	}
}

func TestFlow_ConcurrentAcceptsHaveOneWinner(t *testing.T) {
	f := newFlow(t)
	q := f.quote(t, shipper)
	o1 := f.offer(t, carrierA, q.ID, 120)
	o2 := f.offer(t, carrierB, q.ID, 90)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		winners  []string
		failures int
	)
	for i := 0; i < 10; i++ {
		offerID := o1.ID
		if i%2 == 1 {
			offerID = o2.ID
		}
		wg.Add(1)
		go func(offerID string) {
			defer wg.Done()
			_, err := f.acceptance.Accept(context.Background(), shipper, q.ID, offerID)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				winners = append(winners, offerID)
				return
			}
			if !errors.Is(err, ErrInvalidState) {
				t.Errorf("expected InvalidState for the loser, got %v", err)
			}
			failures++
		}(offerID)
	}
	wg.Wait()

	if len(winners) == 0 {
		t.Fatalf("expected a winner")
	}
	for _, w := range winners {
		if w != winners[0] {
			t.Fatalf("two different offers won: %v", winners)
		}
	}
	stored, _ := f.store.Quotes().GetByID(context.Background(), q.ID)
	if stored.RespostaSelecionadaID != winners[0] {
		t.Fatalf("stored selection %s differs from winner %s", stored.RespostaSelecionadaID, winners[0])
	}
	pays, _ := f.store.Payments().ListByQuoteID(context.Background(), q.ID)
	if len(pays) != 1 {
		t.Fatalf("expected exactly one payment, got %d", len(pays))
	}
}

func TestFlow_AcceptOutlivesCanceledCaller(t *testing.T) {
	f := newFlow(t)
	q := f.quote(t, shipper)
	o := f.offer(t, carrierB, q.ID, 90)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := f.acceptance.Accept(ctx, shipper, q.ID, o.ID)
	if err != nil {
		t.Fatalf("expected accept to complete after the caller left, got %v", err)
	}
	if res.Cotacao.RespostaSelecionadaID != o.ID || res.Pagamento.ID == "" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestFlow_CiotCarrierBlocksUntilPayment(t *testing.T) {
	f := newFlow(t)
	ctx := context.Background()
	q := f.quote(t, shipper)
	o := f.offer(t, carrierCiot, q.ID, 200)

	res, err := f.acceptance.Accept(ctx, shipper, q.ID, o.ID)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if res.Cotacao.Status != entities.QuoteStatusAguardandoPagamento || res.Cotacao.MotivoBloqueioColeta != entities.MotivoBloqueioCiot {
		t.Fatalf("expected ciot block, got status=%s motivo=%q", res.Cotacao.Status, res.Cotacao.MotivoBloqueioColeta)
	}

	_, err = f.chats.Create(ctx, shipper, q.ID, []string{shipper.ID, carrierCiot.ID})
	var ue *Error
	if !errors.As(err, &ue) || ue.Kind != KindForbidden || ue.Message != entities.MotivoBloqueioCiot {
		t.Fatalf("expected forbidden with ciot reason, got %v", err)
	}
	_, err = f.delivery.ConfirmCollection(ctx, carrierCiot, q.ID, res.Cotacao.CodigoConfirmacaoColeta)
	if !errors.As(err, &ue) || ue.Kind != KindForbidden || ue.Message != entities.MotivoBloqueioCiot {
		t.Fatalf("expected collection blocked with ciot reason, got %v", err)
	}

	if _, err := f.payments.UpdateStatus(ctx, shipper, res.Pagamento.ID, entities.PaymentStatusAprovado); !errors.Is(err, ErrAdminOnly) {
		t.Fatalf("expected ErrAdminOnly, got %v", err)
	}
	paid, err := f.payments.UpdateStatus(ctx, admin, res.Pagamento.ID, entities.PaymentStatusAprovado)
	if err != nil || paid.Status != entities.PaymentStatusAprovado {
		t.Fatalf("approve: %+v err=%v", paid, err)
	}
	released, _ := f.store.Quotes().GetByID(ctx, q.ID)
	if released.Status != entities.QuoteStatusAguardandoColeta || !released.AutorizadoColeta || !released.PaymentConfirmed() {
		t.Fatalf("expected released quote, got %+v", released)
	}
	if _, err := f.chats.Create(ctx, shipper, q.ID, []string{shipper.ID, carrierCiot.ID}); err != nil {
		t.Fatalf("chat after payment: %v", err)
	}
}

func TestFlow_DeliveryAndLedger(t *testing.T) {
	f := newFlow(t)
	ctx := context.Background()

	deliver := func(valor float64, finalValue float64) entities.LedgerEntry {
		t.Helper()
		q := f.quote(t, shipper)
		o := f.offer(t, carrierB, q.ID, valor)
		res, err := f.acceptance.Accept(ctx, shipper, q.ID, o.ID)
		if err != nil {
			t.Fatalf("accept: %v", err)
		}
		if _, err := f.delivery.ConfirmCollection(ctx, carrierB, q.ID, "000000x"); !errors.Is(err, ErrInvalidConfirmationCode) {
			t.Fatalf("expected ErrInvalidConfirmationCode, got %v", err)
		}
		if _, err := f.delivery.ConfirmCollection(ctx, carrierA, q.ID, res.Cotacao.CodigoConfirmacaoColeta); !errors.Is(err, ErrCollectionForbidden) {
			t.Fatalf("expected ErrCollectionForbidden for another carrier, got %v", err)
		}
		collected, err := f.delivery.ConfirmCollection(ctx, carrierB, q.ID, res.Cotacao.CodigoConfirmacaoColeta)
		if err != nil || collected.Status != entities.QuoteStatusEmTransito {
			t.Fatalf("confirm collection: %s err=%v", collected.Status, err)
		}
		if finalValue > 0 {
			doc, err := f.delivery.RegisterDocument(ctx, carrierB, q.ID, DocumentInput{Tipo: "CTE", Codigo: "123", ValorFinal: finalValue})
			if err != nil || doc.Status != entities.QuoteStatusAguardandoAprovacaoCte || doc.ValorFinalTransportadora != finalValue {
				t.Fatalf("register document: %+v err=%v", doc, err)
			}
		}
		if _, err := f.delivery.Finalize(ctx, carrierA, q.ID, ""); !errors.Is(err, ErrSelectedCarrierOnly) {
			t.Fatalf("expected ErrSelectedCarrierOnly, got %v", err)
		}
		fin, err := f.delivery.Finalize(ctx, carrierB, q.ID, "https://files/canhoto.jpg")
		if err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if fin.Cotacao.Status != entities.QuoteStatusFinalizada || fin.Cotacao.DocumentoCanhoto == "" {
			t.Fatalf("unexpected finalized quote: %+v", fin.Cotacao)
		}
		if _, err := f.delivery.Finalize(ctx, carrierB, q.ID, ""); !errors.Is(err, ErrQuoteNotInTransit) {
			t.Fatalf("expected second finalize to fail, got %v", err)
		}
		return fin.Financeiro
	}

	first := deliver(90, 0)
	if !first.TotalFaturado.Equal(decimal.RequireFromString("90")) || !first.TotalComissao.Equal(decimal.RequireFromString("4.5")) || first.NumeroEntregas != 1 {
		t.Fatalf("unexpected first entry: faturado=%s comissao=%s entregas=%d", first.TotalFaturado, first.TotalComissao, first.NumeroEntregas)
	}
	second := deliver(100, 150.55)
	if second.ID != first.ID || second.NumeroEntregas != 2 {
		t.Fatalf("expected the same monthly entry incremented, got %+v", second)
	}
	if !second.TotalFaturado.Equal(decimal.RequireFromString("240.55")) {
		t.Fatalf("expected 240.55 gross, got %s", second.TotalFaturado)
	}
	if !second.TotalComissao.Equal(decimal.RequireFromString("12.0275")) {
		t.Fatalf("expected exact 12.0275 commission, got %s", second.TotalComissao)
	}
	third := deliver(100, 33.33)
	if !third.TotalFaturado.Equal(decimal.RequireFromString("273.88")) || third.NumeroEntregas != 3 {
		t.Fatalf("unexpected third entry: faturado=%s entregas=%d", third.TotalFaturado, third.NumeroEntregas)
	}
	for _, e := range []entities.LedgerEntry{first, second, third} {
		if !e.TotalComissao.Equal(e.TotalFaturado.Mul(entities.CommissionRate)) {
			t.Fatalf("commission %s is not 5%% of %s", e.TotalComissao, e.TotalFaturado)
		}
		if !e.TotalComissao.Add(e.TotalReceber).Equal(e.TotalFaturado) {
			t.Fatalf("commission + net must equal gross")
		}
	}

	items, err := f.ledger.ListForCarrier(ctx, carrierB, LedgerFilter{Mes: 3, Ano: 2026})
	if err != nil || len(items) != 1 {
		t.Fatalf("expected one entry, got %d err=%v", len(items), err)
	}
	if _, err := f.ledger.ListAll(ctx, carrierB, LedgerFilter{}); !errors.Is(err, ErrAdminOnly) {
		t.Fatalf("expected ErrAdminOnly, got %v", err)
	}
	paid, err := f.ledger.UpdateStatus(ctx, admin, first.ID, entities.LedgerStatusPago)
	if err != nil || paid.Status != entities.LedgerStatusPago || paid.DataPagamento.IsZero() {
		t.Fatalf("mark paid: %+v err=%v", paid, err)
	}
}

func TestFlow_ChatWindowAndLazyClose(t *testing.T) {
	f := newFlow(t)
	ctx := context.Background()
	q := f.quote(t, shipper)
	o := f.offer(t, carrierB, q.ID, 90)
	if _, err := f.acceptance.Accept(ctx, shipper, q.ID, o.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}

	f.clk.Set(time.Date(2026, 3, 10, 20, 30, 0, 0, time.UTC)) // 17:30 BRT
	if _, err := f.chats.Create(ctx, shipper, q.ID, []string{shipper.ID, carrierB.ID}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected window rejection, got %v", err)
	}

	f.clk.Set(time.Date(2026, 3, 10, 19, 59, 0, 0, time.UTC)) // 16:59 BRT
	c, err := f.chats.Create(ctx, shipper, q.ID, []string{carrierB.ID, shipper.ID})
	if err != nil {
		t.Fatalf("create chat: %v", err)
	}
	again, err := f.chats.Create(ctx, shipper, q.ID, []string{shipper.ID, carrierB.ID})
	if err != nil || again.ID != c.ID {
		t.Fatalf("expected idempotent chat, got %s err=%v", again.ID, err)
	}
	if _, err := f.chats.Create(ctx, shipper, q.ID, []string{shipper.ID, shipperNoCred.ID}); !errors.Is(err, ErrChatCarrierRequired) {
		t.Fatalf("expected ErrChatCarrierRequired, got %v", err)
	}

	if _, err := f.chats.SendMessage(ctx, carrierB, c.ID, MessageInput{Conteudo: "   "}); !errors.Is(err, ErrMessageEmpty) {
		t.Fatalf("expected ErrMessageEmpty, got %v", err)
	}
	if _, err := f.chats.SendMessage(ctx, carrierA, c.ID, MessageInput{Conteudo: "oi"}); !errors.Is(err, ErrChatAccessDenied) {
		t.Fatalf("expected ErrChatAccessDenied, got %v", err)
	}
	m, err := f.chats.SendMessage(ctx, carrierB, c.ID, MessageInput{Arquivo: &entities.Attachment{URL: "https://files/nf.pdf", Nome: "nf.pdf"}})
	if err != nil || m.TipoMensagem != entities.MessageKindArquivo {
		t.Fatalf("send file: %+v err=%v", m, err)
	}
	ids, err := f.chats.MarkRead(ctx, shipper, c.ID)
	if err != nil || len(ids) != 1 || ids[0] != m.ID {
		t.Fatalf("mark read: %v err=%v", ids, err)
	}
	if ids, _ := f.chats.MarkRead(ctx, shipper, c.ID); len(ids) != 0 {
		t.Fatalf("expected no-op on second mark read, got %v", ids)
	}

	// 00:00:01 BRT on the next day.
	f.clk.Set(time.Date(2026, 3, 11, 3, 0, 1, 0, time.UTC))
	if _, err := f.chats.SendMessage(ctx, shipper, c.ID, MessageInput{Conteudo: "ainda aí?"}); !errors.Is(err, ErrChatAutoClosed) {
		t.Fatalf("expected ErrChatAutoClosed, got %v", err)
	}
	stored, _ := f.store.Chats().GetByID(ctx, c.ID)
	if stored.StatusChat != entities.ChatStatusFechadoAutomatico {
		t.Fatalf("expected stored status flipped, got %s", stored.StatusChat)
	}
	detail, err := f.chats.Get(ctx, carrierB, c.ID)
	if err != nil || detail.Chat.StatusChat != entities.ChatStatusFechadoAutomatico || len(detail.Mensagens) != 1 {
		t.Fatalf("unexpected chat detail: %+v err=%v", detail, err)
	}
	if detail.Chat.UltimaMensagem != "[arquivo] nf.pdf" {
		t.Fatalf("unexpected preview %q", detail.Chat.UltimaMensagem)
	}
}

func TestFlow_ChatWindowEdges(t *testing.T) {
	cases := []struct {
		name    string
		at      time.Time
		allowed bool
	}{
		{"07:59 BRT", time.Date(2026, 3, 10, 10, 59, 0, 0, time.UTC), false},
		{"08:00 BRT", time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC), true},
		{"16:59:59 BRT", time.Date(2026, 3, 10, 19, 59, 59, 0, time.UTC), true},
		{"17:00 BRT", time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFlow(t)
			ctx := context.Background()
			q := f.quote(t, shipper)
			o := f.offer(t, carrierB, q.ID, 90)
			if _, err := f.acceptance.Accept(ctx, shipper, q.ID, o.ID); err != nil {
				t.Fatalf("accept: %v", err)
			}

			f.clk.Set(tc.at)
			c, err := f.chats.Create(ctx, shipper, q.ID, []string{shipper.ID, carrierB.ID})
			if tc.allowed {
				if err != nil || c.ID == "" {
					t.Fatalf("expected chat created, got %+v err=%v", c, err)
				}
				return
			}
			if !errors.Is(err, ErrForbidden) {
				t.Fatalf("expected window rejection, got %v", err)
			}
		})
	}
}

// flakySettlements fails its first Finalize before touching the store.
type flakySettlements struct {
	interfaces.ISettlementRepository
	failed bool
}

func (f *flakySettlements) Finalize(ctx context.Context, cmd interfaces.FinalizeCommand) (entities.Quote, entities.LedgerEntry, error) {
	if !f.failed {
		f.failed = true
		return entities.Quote{}, entities.LedgerEntry{}, context.DeadlineExceeded
	}
	return f.ISettlementRepository.Finalize(ctx, cmd)
}

func TestFlow_FinalizeRetriesAfterSettlementFailure(t *testing.T) {
	f := newFlow(t)
	ctx := context.Background()
	f.delivery = NewDeliveryUseCase(f.store.Quotes(), f.store.Offers(), &flakySettlements{ISettlementRepository: f.store.Settlements()}, events.NoopPublisher{}, f.clk)

	q := f.quote(t, shipper)
	o := f.offer(t, carrierB, q.ID, 90)
	res, err := f.acceptance.Accept(ctx, shipper, q.ID, o.ID)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := f.delivery.ConfirmCollection(ctx, carrierB, q.ID, res.Cotacao.CodigoConfirmacaoColeta); err != nil {
		t.Fatalf("confirm collection: %v", err)
	}

	if _, err := f.delivery.Finalize(ctx, carrierB, q.ID, ""); !errors.Is(err, ErrDependencyTimeout) {
		t.Fatalf("expected ErrDependencyTimeout, got %v", err)
	}
	stored, _ := f.store.Quotes().GetByID(ctx, q.ID)
	if stored.Status != entities.QuoteStatusEmTransito {
		t.Fatalf("expected quote still em_transito after failed settlement, got %s", stored.Status)
	}
	if entries, _ := f.ledger.ListForCarrier(ctx, carrierB, LedgerFilter{}); len(entries) != 0 {
		t.Fatalf("expected no ledger entry after failed settlement, got %d", len(entries))
	}

	fin, err := f.delivery.Finalize(ctx, carrierB, q.ID, "")
	if err != nil || fin.Cotacao.Status != entities.QuoteStatusFinalizada {
		t.Fatalf("expected retry to finalize, got %+v err=%v", fin.Cotacao, err)
	}
	if !fin.Financeiro.TotalFaturado.Equal(decimal.RequireFromString("90")) || fin.Financeiro.NumeroEntregas != 1 {
		t.Fatalf("unexpected ledger entry: %+v", fin.Financeiro)
	}
}

func TestFlow_QuoteRoom(t *testing.T) {
	f := newFlow(t)
	ctx := context.Background()
	q := f.quote(t, shipper)
	o := f.offer(t, carrierB, q.ID, 90)

	if _, err := f.chats.SendToQuoteRoom(ctx, shipper, q.ID, "oi"); !errors.Is(err, ErrQuoteChatNotFound) {
		t.Fatalf("expected ErrQuoteChatNotFound before acceptance, got %v", err)
	}
	if _, err := f.acceptance.Accept(ctx, shipper, q.ID, o.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := f.chats.AuthorizeRoom(ctx, carrierA, q.ID); !errors.Is(err, ErrRoomForbidden) {
		t.Fatalf("expected ErrRoomForbidden, got %v", err)
	}
	if _, err := f.chats.Create(ctx, shipper, q.ID, []string{shipper.ID, carrierB.ID}); err != nil {
		t.Fatalf("create chat: %v", err)
	}
	m, err := f.chats.SendToQuoteRoom(ctx, carrierB, q.ID, "  coleta confirmada  ")
	if err != nil || m.Conteudo != "coleta confirmada" {
		t.Fatalf("send to room: %+v err=%v", m, err)
	}
}

func TestFlow_CancelAndUpdate(t *testing.T) {
	f := newFlow(t)
	ctx := context.Background()
	q := f.quote(t, shipper)

	title := "Carga refrigerada"
	updated, err := f.quotes.Update(ctx, shipper, q.ID, interfaces.QuoteDetails{Titulo: &title})
	if err != nil || updated.Titulo != title {
		t.Fatalf("update: %+v err=%v", updated, err)
	}
	if _, err := f.quotes.Cancel(ctx, carrierA, q.ID); !errors.Is(err, ErrNotQuoteOwner) {
		t.Fatalf("expected ErrNotQuoteOwner, got %v", err)
	}
	canceled, err := f.quotes.Cancel(ctx, shipper, q.ID)
	if err != nil || canceled.Status != entities.QuoteStatusCancelada {
		t.Fatalf("cancel: %+v err=%v", canceled, err)
	}
	if _, err := f.quotes.Cancel(ctx, shipper, q.ID); !errors.Is(err, ErrQuoteNotCancelable) {
		t.Fatalf("expected ErrQuoteNotCancelable, got %v", err)
	}
	if _, err := f.quotes.Update(ctx, shipper, q.ID, interfaces.QuoteDetails{Titulo: &title}); !errors.Is(err, ErrQuoteNotEditable) {
		t.Fatalf("expected ErrQuoteNotEditable, got %v", err)
	}
	avail, err := f.quotes.ListAvailable(ctx, carrierA, 1, 10)
	if err != nil || len(avail) != 0 {
		t.Fatalf("expected no available quotes, got %d err=%v", len(avail), err)
	}
}
