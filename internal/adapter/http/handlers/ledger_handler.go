package handlers

import (
	"net/http"

	request "cotafrete/internal/adapter/http/dto/request"
	response "cotafrete/internal/adapter/http/dto/response"
	"cotafrete/internal/adapter/http/middleware"
	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase"

	"github.com/gin-gonic/gin"
)

// LedgerHandler exposes the monthly carrier ledger (financeiro).
type LedgerHandler struct {
	usecase usecase.ILedgerUseCase
}

func NewLedgerHandler(uc usecase.ILedgerUseCase) *LedgerHandler {
	return &LedgerHandler{usecase: uc}
}

func ledgerFilter(c *gin.Context) usecase.LedgerFilter {
	return usecase.LedgerFilter{
		Mes:    queryInt(c, "mes"),
		Ano:    queryInt(c, "ano"),
		Status: entities.LedgerStatus(c.Query("status")),
	}
}

func (h *LedgerHandler) ListMine(c *gin.Context) {
	items, err := h.usecase.ListForCarrier(c.Request.Context(), middleware.CurrentUser(c), ledgerFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromLedgerEntries(items))
}

func (h *LedgerHandler) ListAll(c *gin.Context) {
	items, err := h.usecase.ListAll(c.Request.Context(), middleware.CurrentUser(c), ledgerFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromLedgerEntries(items))
}

func (h *LedgerHandler) UpdateStatus(c *gin.Context) {
	var payload request.LedgerStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		invalidRequest(c, "status é obrigatório")
		return
	}
	e, err := h.usecase.UpdateStatus(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), entities.LedgerStatus(payload.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromLedgerEntry(e))
}
