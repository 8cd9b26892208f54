package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	request "cotafrete/internal/adapter/http/dto/request"
	response "cotafrete/internal/adapter/http/dto/response"
	"cotafrete/internal/adapter/http/middleware"
	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase"

	"github.com/gin-gonic/gin"
)

// PaymentHandler handles HTTP requests for payments created at acceptance.
type PaymentHandler struct {
	usecase     usecase.IPaymentUseCase
	gatewayMock bool
}

func NewPaymentHandler(uc usecase.IPaymentUseCase, gatewayMock bool) *PaymentHandler {
	return &PaymentHandler{usecase: uc, gatewayMock: gatewayMock}
}

func (h *PaymentHandler) ListMine(c *gin.Context) {
	items, err := h.usecase.ListMine(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromPayments(items))
}

func (h *PaymentHandler) Get(c *gin.Context) {
	p, err := h.usecase.Get(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromPayment(p))
}

// Checkout creates the provider charge of a pending payment. The body is the
// Mercado Pago payload, bare or wrapped in `mp_payload`.
func (h *PaymentHandler) Checkout(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	paymentID := c.Param("id")
	log.Printf("[pagamento][handler] checkout start payment_id=%s user_id=%s", paymentID, actor.ID)
	mpPayload, err := readMPPayload(c)
	if err != nil {
		if !h.gatewayMock {
			log.Printf("[pagamento][handler] invalid payload payment_id=%s err=%v", paymentID, err)
			invalidRequest(c, "Payload de pagamento inválido")
			return
		}
		log.Printf("[pagamento][handler] payload invalid in mock mode; fallback to empty payload payment_id=%s err=%v", paymentID, err)
		mpPayload = json.RawMessage("{}")
	}

	p, err := h.usecase.Checkout(c.Request.Context(), actor, paymentID, mpPayload)
	if err != nil {
		log.Printf("[pagamento][handler] checkout failed payment_id=%s err=%v", paymentID, err)
		respondError(c, err)
		return
	}
	log.Printf("[pagamento][handler] checkout success payment_id=%s status=%s provider_status=%s", p.ID, p.Status, p.ProviderStatus)
	c.JSON(http.StatusOK, response.FromPayment(p))
}

func (h *PaymentHandler) UpdateStatus(c *gin.Context) {
	var payload request.PaymentStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		invalidRequest(c, "status é obrigatório")
		return
	}
	p, err := h.usecase.UpdateStatus(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), entities.PaymentStatus(payload.Status))
	if err != nil {
		log.Printf("[pagamento][handler] update status failed payment_id=%s status=%s err=%v", c.Param("id"), payload.Status, err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromPayment(p))
}
