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

// OfferHandler handles carrier offers (respostas).
type OfferHandler struct {
	offers     usecase.IOfferUseCase
	acceptance usecase.IAcceptanceUseCase
}

func NewOfferHandler(offers usecase.IOfferUseCase, acceptance usecase.IAcceptanceUseCase) *OfferHandler {
	return &OfferHandler{offers: offers, acceptance: acceptance}
}

func (h *OfferHandler) Submit(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	var payload request.SubmitOfferRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		invalidRequest(c, "Payload de resposta inválido")
		return
	}
	in, err := payload.ToInput()
	if err != nil {
		invalidRequest(c, "Data de entrega inválida")
		return
	}
	offer, err := h.offers.Submit(c.Request.Context(), actor, in)
	if err != nil {
		log.Printf("[resposta][handler] submit failed quote_id=%s user_id=%s err=%v", in.CotacaoID, actor.ID, err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, offer)
}

func (h *OfferHandler) ListForQuote(c *gin.Context) {
	items, err := h.offers.ListForQuote(c.Request.Context(), middleware.CurrentUser(c), c.Param("cotacaoId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *OfferHandler) ListMine(c *gin.Context) {
	items, err := h.offers.ListMine(c.Request.Context(), middleware.CurrentUser(c), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Accept selects the offer in the path; the quote is taken from the offer.
func (h *OfferHandler) Accept(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	res, err := h.acceptance.AcceptOffer(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		log.Printf("[resposta][handler] accept failed offer_id=%s err=%v", c.Param("id"), err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromAcceptance(res, actor))
}
