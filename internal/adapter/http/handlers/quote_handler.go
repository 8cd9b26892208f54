package handlers

import (
	"log"
	"net/http"

	request "cotafrete/internal/adapter/http/dto/request"
	response "cotafrete/internal/adapter/http/dto/response"
	"cotafrete/internal/adapter/http/middleware"
	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase"

	"github.com/gin-gonic/gin"
)

// QuoteHandler handles HTTP requests for quotes (cotações) and their acceptance.
type QuoteHandler struct {
	quotes     usecase.IQuoteUseCase
	acceptance usecase.IAcceptanceUseCase
}

func NewQuoteHandler(quotes usecase.IQuoteUseCase, acceptance usecase.IAcceptanceUseCase) *QuoteHandler {
	return &QuoteHandler{quotes: quotes, acceptance: acceptance}
}

func (h *QuoteHandler) Create(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	var payload request.CreateQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		invalidRequest(c, "Payload de cotação inválido")
		return
	}
	in, err := payload.ToInput()
	if err != nil {
		invalidRequest(c, "Data inválida")
		return
	}

	q, err := h.quotes.Create(c.Request.Context(), actor, in)
	if err != nil {
		log.Printf("[cotacao][handler] create failed user_id=%s err=%v", actor.ID, err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromQuote(q, actor))
}

func (h *QuoteHandler) ListMine(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	items, err := h.quotes.ListMine(c.Request.Context(), actor, usecase.QuoteFilter{
		Status: entities.QuoteStatus(c.Query("status")),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuotes(items, actor))
}

func (h *QuoteHandler) ListAvailable(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	items, err := h.quotes.ListAvailable(c.Request.Context(), actor, queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuotes(items, actor))
}

func (h *QuoteHandler) Get(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	q, err := h.quotes.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q, actor))
}

func (h *QuoteHandler) Update(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	var payload request.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		invalidRequest(c, "Payload de cotação inválido")
		return
	}
	q, err := h.quotes.Update(c.Request.Context(), actor, c.Param("id"), payload.ToDetails())
	if err != nil {
		log.Printf("[cotacao][handler] update failed quote_id=%s err=%v", c.Param("id"), err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q, actor))
}

func (h *QuoteHandler) Cancel(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	q, err := h.quotes.Cancel(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		log.Printf("[cotacao][handler] cancel failed quote_id=%s err=%v", c.Param("id"), err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q, actor))
}

// Accept selects an offer of the quote in the path.
func (h *QuoteHandler) Accept(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	quoteID := c.Param("id")
	var payload request.AcceptQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		invalidRequest(c, "respostaId é obrigatório")
		return
	}
	log.Printf("[cotacao][handler] accept start quote_id=%s offer_id=%s user_id=%s", quoteID, payload.RespostaID, actor.ID)

	res, err := h.acceptance.Accept(c.Request.Context(), actor, quoteID, payload.RespostaID)
	if err != nil {
		log.Printf("[cotacao][handler] accept failed quote_id=%s err=%v", quoteID, err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromAcceptance(res, actor))
}
