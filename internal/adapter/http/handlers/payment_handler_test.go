package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cotafrete/internal/adapter/http/handlers/mocks"
	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase"

	"go.uber.org/mock/gomock"
)

type failingReadCloser struct{}

func (failingReadCloser) Read(_ []byte) (int, error) { return 0, errors.New("read error") }
func (failingReadCloser) Close() error               { return nil }

func TestPaymentHandler_Checkout(t *testing.T) {
	t.Run("invalid payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := NewPaymentHandler(mocks.NewMockIPaymentUseCase(ctrl), false)

		r := withActor(shipper)
		r.POST("/v1/pagamentos/:id/checkout", h.Checkout)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, postJSON("/v1/pagamentos/pay-1/checkout", "{"))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("invalid payload in mock mode falls back", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc, true)

		r := withActor(shipper)
		r.POST("/v1/pagamentos/:id/checkout", h.Checkout)

		uc.EXPECT().Checkout(gomock.Any(), shipper, "pay-1", json.RawMessage("{}")).Return(entities.Payment{ID: "pay-1"}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, postJSON("/v1/pagamentos/pay-1/checkout", "{"))

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("provider unauthorized", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc, false)

		r := withActor(shipper)
		r.POST("/v1/pagamentos/:id/checkout", h.Checkout)

		uc.EXPECT().Checkout(gomock.Any(), shipper, "pay-1", gomock.Any()).Return(entities.Payment{}, usecase.ErrPaymentGatewayUnauthorized)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, postJSON("/v1/pagamentos/pay-1/checkout", `{"payment_method_id":"pix"}`))

		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["code"] != "PAYMENT_PROVIDER_UNAUTHORIZED" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("success unwraps envelope", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc, false)

		r := withActor(shipper)
		r.POST("/v1/pagamentos/:id/checkout", h.Checkout)

		uc.EXPECT().Checkout(gomock.Any(), shipper, "pay-1", json.RawMessage(`{"payment_method_id":"pix"}`)).Return(entities.Payment{
			ID:             "pay-1",
			Status:         entities.PaymentStatusPendente,
			ProviderStatus: "pending",
			MPPayloadRaw:   json.RawMessage(`{"id":123}`),
		}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, postJSON("/v1/pagamentos/pay-1/checkout", `{"mp_payload":{"payment_method_id":"pix"}}`))

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["providerStatus"] != "pending" || body["mp_payload"] == nil {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestPaymentHandler_UpdateStatus(t *testing.T) {
	t.Run("not admin", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc, false)

		r := withActor(shipper)
		r.PATCH("/v1/pagamentos/:id/status", h.UpdateStatus)

		uc.EXPECT().UpdateStatus(gomock.Any(), shipper, "pay-1", entities.PaymentStatusAprovado).Return(entities.Payment{}, usecase.ErrAdminOnly)

		req := httptest.NewRequest(http.MethodPatch, "/v1/pagamentos/pay-1/status", postJSON("/", `{"status":"aprovado"}`).Body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("approved", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc, false)

		r := withActor(admin)
		r.PATCH("/v1/pagamentos/:id/status", h.UpdateStatus)

		uc.EXPECT().UpdateStatus(gomock.Any(), admin, "pay-1", entities.PaymentStatusAprovado).Return(entities.Payment{ID: "pay-1", Status: entities.PaymentStatusAprovado}, nil)

		req := httptest.NewRequest(http.MethodPatch, "/v1/pagamentos/pay-1/status", postJSON("/", `{"status":"aprovado"}`).Body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestReadMPPayload_ReadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewPaymentHandler(mocks.NewMockIPaymentUseCase(ctrl), false)

	r := withActor(shipper)
	r.POST("/v1/pagamentos/:id/checkout", h.Checkout)

	req := httptest.NewRequest(http.MethodPost, "/v1/pagamentos/pay-1/checkout", nil)
	req.Body = failingReadCloser{}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
