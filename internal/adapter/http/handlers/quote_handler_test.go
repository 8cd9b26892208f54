package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cotafrete/internal/adapter/http/handlers/mocks"
	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase"

	"go.uber.org/mock/gomock"
)

func TestQuoteHandler_Create(t *testing.T) {
	t.Run("invalid payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := NewQuoteHandler(mocks.NewMockIQuoteUseCase(ctrl), mocks.NewMockIAcceptanceUseCase(ctrl))

		r := withActor(shipper)
		r.POST("/v1/cotacoes", h.Create)

		req := httptest.NewRequest(http.MethodPost, "/v1/cotacoes", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("carrier forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		quotes := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(quotes, mocks.NewMockIAcceptanceUseCase(ctrl))

		r := withActor(carrier)
		r.POST("/v1/cotacoes", h.Create)

		quotes.EXPECT().Create(gomock.Any(), carrier, gomock.Any()).Return(entities.Quote{}, usecase.ErrShipperOnly)

		req := httptest.NewRequest(http.MethodPost, "/v1/cotacoes", bytes.NewBufferString(`{"coleta":{"cidade":"Curitiba"},"entrega":{"cidade":"Santos"}}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		quotes := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(quotes, mocks.NewMockIAcceptanceUseCase(ctrl))

		r := withActor(shipper)
		r.POST("/v1/cotacoes", h.Create)

		quotes.EXPECT().Create(gomock.Any(), shipper, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ entities.User, in usecase.CreateQuoteInput) (entities.Quote, error) {
				if in.Coleta.Cidade != "Curitiba" || in.MinutosExpiracao != 60 {
					t.Fatalf("unexpected input: %+v", in)
				}
				return entities.Quote{ID: "q-1", UserID: shipper.ID, Status: entities.QuoteStatusAberta}, nil
			})

		req := httptest.NewRequest(http.MethodPost, "/v1/cotacoes", bytes.NewBufferString(`{"coleta":{"cidade":"Curitiba"},"entrega":{"cidade":"Santos"},"minutosExpiracao":60}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["id"] != "q-1" || body["status"] != "aberta" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestQuoteHandler_ListMine(t *testing.T) {
	ctrl := gomock.NewController(t)
	quotes := mocks.NewMockIQuoteUseCase(ctrl)
	h := NewQuoteHandler(quotes, mocks.NewMockIAcceptanceUseCase(ctrl))

	r := withActor(shipper)
	r.GET("/v1/cotacoes", h.ListMine)

	quotes.EXPECT().ListMine(gomock.Any(), shipper, usecase.QuoteFilter{Status: entities.QuoteStatusAberta, Page: 2, Limit: 5}).
		Return([]entities.Quote{{ID: "q-1"}, {ID: "q-2"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/cotacoes?status=aberta&page=2&limit=5", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body []map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if len(body) != 2 {
		t.Fatalf("expected 2 quotes, got %s", w.Body.String())
	}
}

func TestQuoteHandler_Get(t *testing.T) {
	quote := entities.Quote{ID: "q-1", UserID: shipper.ID, TransportadorID: carrier.ID, CodigoConfirmacaoColeta: "123456"}

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		quotes := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(quotes, mocks.NewMockIAcceptanceUseCase(ctrl))

		r := withActor(shipper)
		r.GET("/v1/cotacoes/:id", h.Get)

		quotes.EXPECT().Get(gomock.Any(), shipper, "missing").Return(entities.Quote{}, usecase.ErrQuoteNotFound)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/cotacoes/missing", nil))

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("code shown to owner only", func(t *testing.T) {
		for _, tt := range []struct {
			actor    entities.User
			wantCode bool
		}{{shipper, true}, {carrier, false}} {
			ctrl := gomock.NewController(t)
			quotes := mocks.NewMockIQuoteUseCase(ctrl)
			h := NewQuoteHandler(quotes, mocks.NewMockIAcceptanceUseCase(ctrl))

			r := withActor(tt.actor)
			r.GET("/v1/cotacoes/:id", h.Get)

			quotes.EXPECT().Get(gomock.Any(), tt.actor, "q-1").Return(quote, nil)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/cotacoes/q-1", nil))

			var body map[string]any
			_ = json.Unmarshal(w.Body.Bytes(), &body)
			_, has := body["codigoConfirmacaoColeta"]
			if has != tt.wantCode {
				t.Fatalf("actor=%s expected code=%v, got body %s", tt.actor.ID, tt.wantCode, w.Body.String())
			}
		}
	})
}

func TestQuoteHandler_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	quotes := mocks.NewMockIQuoteUseCase(ctrl)
	h := NewQuoteHandler(quotes, mocks.NewMockIAcceptanceUseCase(ctrl))

	r := withActor(shipper)
	r.PATCH("/v1/cotacoes/:id/cancelar", h.Cancel)

	quotes.EXPECT().Cancel(gomock.Any(), shipper, "q-1").Return(entities.Quote{}, usecase.ErrQuoteNotCancelable)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/v1/cotacoes/q-1/cancelar", nil))

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
}

func TestQuoteHandler_Accept(t *testing.T) {
	t.Run("missing offer id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := NewQuoteHandler(mocks.NewMockIQuoteUseCase(ctrl), mocks.NewMockIAcceptanceUseCase(ctrl))

		r := withActor(shipper)
		r.POST("/v1/cotacoes/:id/aceitar", h.Accept)

		req := httptest.NewRequest(http.MethodPost, "/v1/cotacoes/q-1/aceitar", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("lost race", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		acceptance := mocks.NewMockIAcceptanceUseCase(ctrl)
		h := NewQuoteHandler(mocks.NewMockIQuoteUseCase(ctrl), acceptance)

		r := withActor(shipper)
		r.POST("/v1/cotacoes/:id/aceitar", h.Accept)

		acceptance.EXPECT().Accept(gomock.Any(), shipper, "q-1", "o-2").Return(usecase.AcceptanceResult{}, usecase.ErrQuoteNotAcceptable)

		req := httptest.NewRequest(http.MethodPost, "/v1/cotacoes/q-1/aceitar", bytes.NewBufferString(`{"respostaId":"o-2"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		acceptance := mocks.NewMockIAcceptanceUseCase(ctrl)
		h := NewQuoteHandler(mocks.NewMockIQuoteUseCase(ctrl), acceptance)

		r := withActor(shipper)
		r.POST("/v1/cotacoes/:id/aceitar", h.Accept)

		acceptance.EXPECT().Accept(gomock.Any(), shipper, "q-1", "o-2").Return(usecase.AcceptanceResult{
			Cotacao:   entities.Quote{ID: "q-1", UserID: shipper.ID, Status: entities.QuoteStatusAguardandoPagamento, RespostaSelecionadaID: "o-2"},
			Pagamento: entities.Payment{ID: "pay-1", CotacaoID: "q-1", Valor: 90, Status: entities.PaymentStatusPendente},
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/cotacoes/q-1/aceitar", bytes.NewBufferString(`{"respostaId":"o-2"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body struct {
			Cotacao   map[string]any `json:"cotacao"`
			Pagamento map[string]any `json:"pagamento"`
		}
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body.Cotacao["respostaSelecionadaId"] != "o-2" || body.Pagamento["valor"] != float64(90) {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}
