package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cotafrete/internal/adapter/http/handlers/mocks"
	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func TestLedgerHandler_ListMine(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockILedgerUseCase(ctrl)
	h := NewLedgerHandler(uc)

	r := withActor(carrier)
	r.GET("/v1/financeiro", h.ListMine)

	uc.EXPECT().ListForCarrier(gomock.Any(), carrier, usecase.LedgerFilter{Mes: 3, Ano: 2026}).Return([]entities.LedgerEntry{{
		ID:            "carrier-1#2026-03",
		Mes:           3,
		Ano:           2026,
		TotalFaturado: decimal.RequireFromString("190"),
		TotalComissao: decimal.RequireFromString("9.5"),
		TotalReceber:  decimal.RequireFromString("180.5"),
	}}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/financeiro?mes=3&ano=2026", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body []map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if len(body) != 1 || body[0]["totalFaturado"] != "190.00" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestLedgerHandler_ListAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockILedgerUseCase(ctrl)
	h := NewLedgerHandler(uc)

	r := withActor(carrier)
	r.GET("/v1/financeiro/admin", h.ListAll)

	uc.EXPECT().ListAll(gomock.Any(), carrier, gomock.Any()).Return(nil, usecase.ErrAdminOnly)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/financeiro/admin", nil))

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestLedgerHandler_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockILedgerUseCase(ctrl)
	h := NewLedgerHandler(uc)

	r := withActor(admin)
	r.PATCH("/v1/financeiro/:id/status", h.UpdateStatus)

	uc.EXPECT().UpdateStatus(gomock.Any(), admin, "carrier-1#2026-03", entities.LedgerStatusPago).
		Return(entities.LedgerEntry{ID: "carrier-1#2026-03", Status: entities.LedgerStatusPago}, nil)

	req := httptest.NewRequest(http.MethodPatch, "/v1/financeiro/carrier-1%232026-03/status", postJSON("/", `{"status":"pago"}`).Body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
}
