package handlers

import (
	"log"
	"net/http"

	request "cotafrete/internal/adapter/http/dto/request"
	response "cotafrete/internal/adapter/http/dto/response"
	"cotafrete/internal/adapter/http/middleware"
	"cotafrete/internal/usecase"

	"github.com/gin-gonic/gin"
)

// DeliveryHandler handles the post-acceptance lifecycle of a quote.
type DeliveryHandler struct {
	usecase usecase.IDeliveryUseCase
}

func NewDeliveryHandler(uc usecase.IDeliveryUseCase) *DeliveryHandler {
	return &DeliveryHandler{usecase: uc}
}

func (h *DeliveryHandler) ConfirmCollection(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	var payload request.ConfirmCollectionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		invalidRequest(c, "Payload inválido")
		return
	}
	q, err := h.usecase.ConfirmCollection(c.Request.Context(), actor, c.Param("id"), payload.CodigoConfirmacao)
	if err != nil {
		log.Printf("[entrega][handler] confirm collection failed quote_id=%s err=%v", c.Param("id"), err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q, actor))
}

func (h *DeliveryHandler) RegisterDocument(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	var payload request.DocumentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		invalidRequest(c, "Tipo de documento é obrigatório")
		return
	}
	q, err := h.usecase.RegisterDocument(c.Request.Context(), actor, c.Param("id"), payload.ToInput())
	if err != nil {
		log.Printf("[entrega][handler] register document failed quote_id=%s tipo=%s err=%v", c.Param("id"), payload.Tipo, err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q, actor))
}

func (h *DeliveryHandler) RegisterTracking(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	var payload request.TrackingRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		invalidRequest(c, "Payload inválido")
		return
	}
	q, err := h.usecase.RegisterTracking(c.Request.Context(), actor, c.Param("id"), payload.URLRastreamento, payload.CodigoRastreio)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q, actor))
}

func (h *DeliveryHandler) ReportDelay(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	var payload request.DelayRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		invalidRequest(c, "motivoAtraso é obrigatório")
		return
	}
	newDate, err := request.ParseDate(payload.NovaDataEntrega)
	if err != nil {
		invalidRequest(c, "Nova data de entrega inválida")
		return
	}
	q, err := h.usecase.ReportDelay(c.Request.Context(), actor, c.Param("id"), payload.MotivoAtraso, newDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q, actor))
}

func (h *DeliveryHandler) Finalize(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	var payload request.FinalizeRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		invalidRequest(c, "Payload inválido")
		return
	}
	res, err := h.usecase.Finalize(c.Request.Context(), actor, c.Param("id"), payload.DocumentoCanhoto)
	if err != nil {
		log.Printf("[entrega][handler] finalize failed quote_id=%s err=%v", c.Param("id"), err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromFinalize(res, actor))
}
