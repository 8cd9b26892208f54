package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

var t0 = time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC)

func seedQuote(t *testing.T, s *Store, id string, status entities.QuoteStatus) entities.Quote {
	t.Helper()
	q, err := s.Quotes().Create(context.Background(), entities.Quote{
		ID:          id,
		UserID:      "shipper-1",
		Status:      status,
		DataHoraFim: t0.Add(2 * time.Hour),
		CreatedAt:   t0,
		UpdatedAt:   t0,
	})
	if err != nil {
		t.Fatalf("seed quote: %v", err)
	}
	return q
}

func seedOffer(t *testing.T, s *Store, quoteID, carrierID string) entities.Offer {
	t.Helper()
	o, err := s.Offers().Create(context.Background(), entities.Offer{
		ID:              entities.OfferID(quoteID, carrierID),
		CotacaoID:       quoteID,
		TransportadorID: carrierID,
		Valor:           100,
		CreatedAt:       t0,
	})
	if err != nil {
		t.Fatalf("seed offer: %v", err)
	}
	return o
}

func TestStore_Uniqueness(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedQuote(t, s, "q-1", entities.QuoteStatusAberta)
	o := seedOffer(t, s, "q-1", "c-1")

	t.Run("duplicate offer", func(t *testing.T) {
		if _, err := s.Offers().Create(ctx, o); !errors.Is(err, interfaces.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("duplicate quote", func(t *testing.T) {
		if _, err := s.Quotes().Create(ctx, entities.Quote{ID: "q-1"}); !errors.Is(err, interfaces.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("sequence is monotonic", func(t *testing.T) {
		a, _ := s.Quotes().NextNumber(ctx)
		b, _ := s.Quotes().NextNumber(ctx)
		if a != 1 || b != 2 {
			t.Fatalf("expected 1 and 2, got %d and %d", a, b)
		}
	})
}

func TestStore_GuardedUpdates(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedQuote(t, s, "q-1", entities.QuoteStatusAberta)

	t.Run("mark viewed only from aberta", func(t *testing.T) {
		q, err := s.Quotes().MarkViewed(ctx, "q-1", t0)
		if err != nil || q.Status != entities.QuoteStatusVisualizada {
			t.Fatalf("expected visualizada, got %+v err=%v", q, err)
		}
		q, err = s.Quotes().MarkViewed(ctx, "q-1", t0)
		if err != nil || q.ID != "" {
			t.Fatalf("expected zero quote on failed guard, got %+v err=%v", q, err)
		}
	})

	t.Run("collection needs authorization", func(t *testing.T) {
		seedQuote(t, s, "q-2", entities.QuoteStatusAguardandoColeta)
		q, err := s.Quotes().ConfirmCollection(ctx, "q-2", t0)
		if err != nil || q.ID != "" {
			t.Fatalf("expected zero quote without authorization, got %+v err=%v", q, err)
		}
	})

	t.Run("finalize from em_transito", func(t *testing.T) {
		seedQuote(t, s, "q-3", entities.QuoteStatusEmTransito)
		cmd := interfaces.FinalizeCommand{
			QuoteID:        "q-3",
			ExpectedStatus: entities.QuoteStatusEmTransito,
			ProofURL:       "https://proof",
			CarrierID:      "c-1",
			Month:          3,
			Year:           2026,
			Increment:      entities.SplitCommission(decimal.RequireFromString("90")),
			Now:            t0,
		}
		q, e, err := s.Settlements().Finalize(ctx, cmd)
		if err != nil || q.Status != entities.QuoteStatusFinalizada || q.DocumentoCanhoto != "https://proof" || e.NumeroEntregas != 1 {
			t.Fatalf("unexpected finalize result %+v %+v err=%v", q, e, err)
		}
		if q, e, _ := s.Settlements().Finalize(ctx, cmd); q.ID != "" || e.ID != "" {
			t.Fatalf("expected second finalize to fail the guard")
		}
		stored, _ := s.Ledger().GetByID(ctx, entities.LedgerEntryID("c-1", 3, 2026))
		if stored.NumeroEntregas != 1 {
			t.Fatalf("expected a single increment, got %d", stored.NumeroEntregas)
		}
	})

	t.Run("missing id", func(t *testing.T) {
		q, err := s.Quotes().Cancel(ctx, "nope", t0)
		if err != nil || q.ID != "" {
			t.Fatalf("expected zero quote, got %+v err=%v", q, err)
		}
	})
}

func TestStore_Accept(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedQuote(t, s, "q-1", entities.QuoteStatusVisualizada)
	a := seedOffer(t, s, "q-1", "c-1")
	b := seedOffer(t, s, "q-1", "c-2")

	cmd := interfaces.AcceptCommand{
		QuoteID:          "q-1",
		OfferID:          b.ID,
		CarrierID:        "c-2",
		Price:            90,
		ConfirmationCode: "123456",
		Authorization:    entities.DeriveCollectionAuthorization(true, false),
		Payment:          entities.Payment{ID: "pay-1", CotacaoID: "q-1"},
		Now:              t0,
	}
	q, err := s.Acceptances().Accept(ctx, cmd)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if q.Status != entities.QuoteStatusAguardandoColeta || q.ValorFinalTransportadora != 90 || q.CodigoConfirmacaoColeta != "123456" {
		t.Fatalf("unexpected quote %+v", q)
	}

	winner, _ := s.Offers().GetByID(ctx, b.ID)
	loser, _ := s.Offers().GetByID(ctx, a.ID)
	if !winner.Aceita || loser.Aceita {
		t.Fatalf("expected only the chosen offer flagged")
	}

	cmd.OfferID = a.ID
	cmd.Payment.ID = "pay-2"
	if _, err := s.Acceptances().Accept(ctx, cmd); !errors.Is(err, interfaces.ErrConcurrentUpdate) {
		t.Fatalf("expected ErrConcurrentUpdate, got %v", err)
	}
	pays, _ := s.Payments().ListByQuoteID(ctx, "q-1")
	if len(pays) != 1 {
		t.Fatalf("expected one payment, got %d", len(pays))
	}
}

func TestStore_LedgerIncrement(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	for i, gross := range []string{"90", "150.55", "0.2"} {
		id := fmt.Sprintf("q-%d", i)
		seedQuote(t, s, id, entities.QuoteStatusAguardandoAprovacaoCte)
		_, _, err := s.Settlements().Finalize(ctx, interfaces.FinalizeCommand{
			QuoteID:        id,
			ExpectedStatus: entities.QuoteStatusAguardandoAprovacaoCte,
			CarrierID:      "c-1",
			Month:          3,
			Year:           2026,
			Increment:      entities.SplitCommission(decimal.RequireFromString(gross)),
			Now:            t0,
		})
		if err != nil {
			t.Fatalf("finalize: %v", err)
		}
	}
	e, err := s.Ledger().GetByID(ctx, entities.LedgerEntryID("c-1", 3, 2026))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e.NumeroEntregas != 3 || !e.TotalFaturado.Equal(decimal.RequireFromString("240.75")) {
		t.Fatalf("unexpected entry %+v", e)
	}
	if !e.TotalComissao.Equal(decimal.RequireFromString("12.0375")) {
		t.Fatalf("expected exact commission 12.0375, got %s", e.TotalComissao)
	}
	if !e.TotalComissao.Add(e.TotalReceber).Equal(e.TotalFaturado) {
		t.Fatalf("commission and net must add up to gross")
	}

	paid, err := s.Ledger().UpdateStatus(ctx, e.ID, entities.LedgerStatusPago, t0, t0)
	if err != nil || paid.Status != entities.LedgerStatusPago || !paid.DataPagamento.Equal(t0) {
		t.Fatalf("unexpected paid entry %+v err=%v", paid, err)
	}
	if missing, _ := s.Ledger().UpdateStatus(ctx, "nope", entities.LedgerStatusPago, t0, t0); missing.ID != "" {
		t.Fatalf("expected zero entry for missing id")
	}
}

func TestStore_Chats(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	c := entities.Chat{
		ID:             entities.ChatID("q-1", []string{"shipper-1", "c-1"}),
		CotacaoID:      "q-1",
		Participantes:  []string{"shipper-1", "c-1"},
		HoraAbertura:   t0,
		HoraFechamento: t0.Add(time.Hour),
		StatusChat:     entities.ChatStatusAberto,
	}
	if _, err := s.Chats().Create(ctx, c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.Chats().Create(ctx, c); !errors.Is(err, interfaces.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	t.Run("read marks only the other side", func(t *testing.T) {
		for i, author := range []string{"c-1", "c-1", "shipper-1"} {
			m := entities.Message{ID: string(rune('a' + i)), ChatID: c.ID, UserID: author, CreatedAt: t0.Add(time.Duration(i) * time.Minute)}
			if _, err := s.Messages().Create(ctx, m); err != nil {
				t.Fatalf("message: %v", err)
			}
		}
		ids, err := s.Messages().MarkRead(ctx, c.ID, "shipper-1")
		if err != nil || len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
			t.Fatalf("expected a and b marked, got %v err=%v", ids, err)
		}
		if ids, _ := s.Messages().MarkRead(ctx, c.ID, "shipper-1"); len(ids) != 0 {
			t.Fatalf("expected nothing left to mark, got %v", ids)
		}
	})

	t.Run("auto close only after the deadline", func(t *testing.T) {
		got, _ := s.Chats().MarkAutoClosed(ctx, c.ID, t0.Add(30*time.Minute))
		if got.StatusChat != entities.ChatStatusAberto {
			t.Fatalf("expected chat still open, got %s", got.StatusChat)
		}
		got, _ = s.Chats().MarkAutoClosed(ctx, c.ID, t0.Add(2*time.Hour))
		if got.StatusChat != entities.ChatStatusFechadoAutomatico {
			t.Fatalf("expected fechado_automatico, got %s", got.StatusChat)
		}
	})

	t.Run("returned values are copies", func(t *testing.T) {
		got, _ := s.Chats().GetByID(ctx, c.ID)
		got.Participantes[0] = "mutated"
		again, _ := s.Chats().GetByID(ctx, c.ID)
		if again.Participantes[0] == "mutated" {
			t.Fatalf("store leaked its internal slice")
		}
	})
}

func TestStore_DoneContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewStore()
	if _, err := s.Quotes().GetByID(ctx, "q-1"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := s.Ledger().ListAll(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
