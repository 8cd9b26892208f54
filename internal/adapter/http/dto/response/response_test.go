package response

import (
	"encoding/json"
	"testing"
	"time"

	"cotafrete/internal/domain/entities"

	"github.com/shopspring/decimal"
)

func TestFromQuote(t *testing.T) {
	q := entities.Quote{ID: "q-1", UserID: "shipper-1", TransportadorID: "carrier-1", CodigoConfirmacaoColeta: "482913"}

	t.Run("owner sees confirmation code", func(t *testing.T) {
		res := FromQuote(q, entities.User{ID: "shipper-1", Role: entities.RoleEmbarcador})
		if res.CodigoConfirmacaoColeta != "482913" {
			t.Fatalf("expected code, got %q", res.CodigoConfirmacaoColeta)
		}
	})

	t.Run("carrier does not", func(t *testing.T) {
		res := FromQuote(q, entities.User{ID: "carrier-1", Role: entities.RoleTransportador})
		if res.CodigoConfirmacaoColeta != "" {
			t.Fatalf("expected hidden code, got %q", res.CodigoConfirmacaoColeta)
		}
		raw, _ := json.Marshal(res)
		var body map[string]any
		_ = json.Unmarshal(raw, &body)
		if _, ok := body["codigoConfirmacaoColeta"]; ok {
			t.Fatalf("unexpected code in body: %s", raw)
		}
		if body["id"] != "q-1" {
			t.Fatalf("expected embedded quote fields, got %s", raw)
		}
	})
}

func TestFromPayment(t *testing.T) {
	now := time.Now().UTC()
	p := entities.Payment{
		ID:           "pay-1",
		CotacaoID:    "q-1",
		Status:       entities.PaymentStatusPendente,
		Metodo:       entities.PaymentMethodPix,
		MPPayloadRaw: json.RawMessage(`{"id":123,"status":"pending"}`),
		CreatedAt:    now,
	}
	res := FromPayment(p)
	if res.ID != "pay-1" || res.Status != "pendente" || res.Metodo != "pix" {
		t.Fatalf("unexpected fields: %+v", res)
	}
	if res.MPPayload["status"] != "pending" {
		t.Fatalf("unexpected parsed payload: %+v", res.MPPayload)
	}

	p.MPPayloadRaw = json.RawMessage(`[1,2]`)
	res = FromPayment(p)
	if res.MPPayload != nil || res.MPPayloadRaw != "[1,2]" {
		t.Fatalf("expected raw only, got %+v", res)
	}
}

func TestFromLedgerEntry(t *testing.T) {
	e := entities.LedgerEntry{
		ID:            "c-1#2026-03",
		TotalFaturado: decimal.RequireFromString("90"),
		TotalComissao: decimal.RequireFromString("4.5"),
		TotalReceber:  decimal.RequireFromString("85.5"),
		Status:        entities.LedgerStatusPendente,
	}
	res := FromLedgerEntry(e)
	if res.TotalFaturado != "90.00" || res.TotalComissao != "4.50" || res.TotalReceber != "85.50" {
		t.Fatalf("unexpected totals: %+v", res)
	}
	if res.DataPagamento != nil {
		t.Fatalf("expected no payout date")
	}
}

func TestFromMarkRead(t *testing.T) {
	res := FromMarkRead("chat-1", nil)
	if res.MensagemIDs == nil || res.Total != 0 {
		t.Fatalf("unexpected response: %+v", res)
	}
}
