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

// ChatHandler is the REST side of the gated conversation channel.
type ChatHandler struct {
	usecase usecase.IChatUseCase
}

func NewChatHandler(uc usecase.IChatUseCase) *ChatHandler {
	return &ChatHandler{usecase: uc}
}

func (h *ChatHandler) List(c *gin.Context) {
	items, err := h.usecase.List(c.Request.Context(), middleware.CurrentUser(c), c.Query("busca"), queryInt(c, "limit"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ChatHandler) Get(c *gin.Context) {
	detail, err := h.usecase.Get(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromChatDetail(detail))
}

func (h *ChatHandler) Create(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	var payload request.CreateChatRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		invalidRequest(c, "Payload de chat inválido")
		return
	}
	chat, err := h.usecase.Create(c.Request.Context(), actor, payload.CotacaoID, payload.Participantes)
	if err != nil {
		log.Printf("[chat][handler] create failed quote_id=%s user_id=%s err=%v", payload.CotacaoID, actor.ID, err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, chat)
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	var payload request.SendMessageRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		invalidRequest(c, "Payload de mensagem inválido")
		return
	}
	msg, err := h.usecase.SendMessage(c.Request.Context(), actor, c.Param("id"), payload.ToInput())
	if err != nil {
		log.Printf("[chat][handler] send failed chat_id=%s user_id=%s err=%v", c.Param("id"), actor.ID, err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (h *ChatHandler) MarkRead(c *gin.Context) {
	chatID := c.Param("id")
	ids, err := h.usecase.MarkRead(c.Request.Context(), middleware.CurrentUser(c), chatID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromMarkRead(chatID, ids))
}
