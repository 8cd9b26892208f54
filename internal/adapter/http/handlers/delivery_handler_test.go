package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cotafrete/internal/adapter/http/handlers/mocks"
	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestDeliveryHandler_ConfirmCollection(t *testing.T) {
	t.Run("wrong code", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIDeliveryUseCase(ctrl)
		h := NewDeliveryHandler(uc)

		r := withActor(carrier)
		r.POST("/v1/cotacoes/:id/confirmar-coleta", h.ConfirmCollection)

		uc.EXPECT().ConfirmCollection(gomock.Any(), carrier, "q-1", "000000").Return(entities.Quote{}, usecase.ErrInvalidConfirmationCode)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, postJSON("/v1/cotacoes/q-1/confirmar-coleta", `{"codigoConfirmacao":"000000"}`))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("blocked collection", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIDeliveryUseCase(ctrl)
		h := NewDeliveryHandler(uc)

		r := withActor(carrier)
		r.POST("/v1/cotacoes/:id/confirmar-coleta", h.ConfirmCollection)

		uc.EXPECT().ConfirmCollection(gomock.Any(), carrier, "q-1", "482913").Return(entities.Quote{}, usecase.ErrCollectionBlocked)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, postJSON("/v1/cotacoes/q-1/confirmar-coleta", `{"codigoConfirmacao":"482913"}`))

		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})
}

func TestDeliveryHandler_RegisterDocument(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIDeliveryUseCase(ctrl)
	h := NewDeliveryHandler(uc)

	r := withActor(carrier)
	r.POST("/v1/cotacoes/:id/documentos", h.RegisterDocument)

	uc.EXPECT().RegisterDocument(gomock.Any(), carrier, "q-1", usecase.DocumentInput{Tipo: entities.DocumentCTe, Codigo: "CTE-1", ValorFinal: 120}).
		Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusAguardandoAprovacaoCte}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, postJSON("/v1/cotacoes/q-1/documentos", `{"tipo":"cte","codigo":" CTE-1 ","valorFinal":120}`))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestDeliveryHandler_ReportDelay(t *testing.T) {
	t.Run("bad date", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := NewDeliveryHandler(mocks.NewMockIDeliveryUseCase(ctrl))

		r := withActor(carrier)
		r.POST("/v1/cotacoes/:id/atraso", h.ReportDelay)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, postJSON("/v1/cotacoes/q-1/atraso", `{"motivoAtraso":"chuva","novaDataEntrega":"amanhã"}`))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIDeliveryUseCase(ctrl)
		h := NewDeliveryHandler(uc)

		r := withActor(carrier)
		r.POST("/v1/cotacoes/:id/atraso", h.ReportDelay)

		want := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
		uc.EXPECT().ReportDelay(gomock.Any(), carrier, "q-1", "chuva", want).
			Return(entities.Quote{ID: "q-1", AtrasoInformado: true, MotivoAtraso: "chuva"}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, postJSON("/v1/cotacoes/q-1/atraso", `{"motivoAtraso":"chuva","novaDataEntrega":"2026-03-20"}`))

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestDeliveryHandler_Finalize(t *testing.T) {
	t.Run("double finalize", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIDeliveryUseCase(ctrl)
		h := NewDeliveryHandler(uc)

		r := withActor(carrier)
		r.POST("/v1/cotacoes/:id/finalizar", h.Finalize)

		uc.EXPECT().Finalize(gomock.Any(), carrier, "q-1", "").Return(usecase.FinalizeResult{}, usecase.ErrQuoteNotInTransit)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, postJSON("/v1/cotacoes/q-1/finalizar", `{}`))

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIDeliveryUseCase(ctrl)
		h := NewDeliveryHandler(uc)

		r := withActor(carrier)
		r.POST("/v1/cotacoes/:id/finalizar", h.Finalize)

		uc.EXPECT().Finalize(gomock.Any(), carrier, "q-1", "https://files/canhoto.jpg").Return(usecase.FinalizeResult{
			Cotacao: entities.Quote{ID: "q-1", Status: entities.QuoteStatusFinalizada},
			Financeiro: entities.LedgerEntry{
				ID:             "carrier-1#2026-03",
				TotalFaturado:  decimal.RequireFromString("90"),
				TotalComissao:  decimal.RequireFromString("4.5"),
				TotalReceber:   decimal.RequireFromString("85.5"),
				NumeroEntregas: 1,
			},
		}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, postJSON("/v1/cotacoes/q-1/finalizar", `{"documentoCanhoto":"https://files/canhoto.jpg"}`))

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body struct {
			Financeiro map[string]any `json:"financeiro"`
		}
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body.Financeiro["totalComissao"] != "4.50" || body.Financeiro["totalReceber"] != "85.50" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}
