package routes

import (
	"cotafrete/internal/adapter/http/handlers"
	"cotafrete/internal/adapter/realtime"

	"github.com/gin-gonic/gin"
)

const (
	PathQuotes   = "/cotacoes"
	PathOffers   = "/respostas"
	PathChats    = "/chats"
	PathPayments = "/pagamentos"
	PathLedger   = "/financeiro"
	PathRealtime = "/ws"
)

func addQuoteRoutes(rg *gin.RouterGroup, quotes *handlers.QuoteHandler, delivery *handlers.DeliveryHandler) {
	g := rg.Group(PathQuotes)
	{
		g.POST("", quotes.Create)
		g.GET("", quotes.ListMine)
		g.GET("/disponiveis", quotes.ListAvailable)
		g.GET("/:id", quotes.Get)
		g.PUT("/:id", quotes.Update)
		g.PATCH("/:id/cancelar", quotes.Cancel)
		g.POST("/:id/aceitar", quotes.Accept)

		g.POST("/:id/confirmar-coleta", delivery.ConfirmCollection)
		g.POST("/:id/documentos", delivery.RegisterDocument)
		g.POST("/:id/rastreamento", delivery.RegisterTracking)
		g.POST("/:id/finalizar", delivery.Finalize)
		g.POST("/:id/atraso", delivery.ReportDelay)
	}
}

func addOfferRoutes(rg *gin.RouterGroup, h *handlers.OfferHandler) {
	g := rg.Group(PathOffers)
	{
		g.POST("", h.Submit)
		g.GET("/cotacao/:cotacaoId", h.ListForQuote)
		g.GET("/minhas-respostas", h.ListMine)
		g.PUT("/:id/aceitar", h.Accept)
	}
}

func addChatRoutes(rg *gin.RouterGroup, h *handlers.ChatHandler) {
	g := rg.Group(PathChats)
	{
		g.GET("", h.List)
		g.POST("", h.Create)
		g.GET("/:id", h.Get)
		g.POST("/:id/mensagens", h.SendMessage)
		g.PATCH("/:id/lido", h.MarkRead)
	}
}

func addPaymentRoutes(rg *gin.RouterGroup, h *handlers.PaymentHandler) {
	g := rg.Group(PathPayments)
	{
		g.GET("", h.ListMine)
		g.GET("/:id", h.Get)
		g.POST("/:id/checkout", h.Checkout)
		g.PATCH("/:id/status", h.UpdateStatus)
	}
}

func addLedgerRoutes(rg *gin.RouterGroup, h *handlers.LedgerHandler) {
	g := rg.Group(PathLedger)
	{
		g.GET("", h.ListMine)
		g.GET("/admin", h.ListAll)
		g.PATCH("/:id/status", h.UpdateStatus)
	}
}

// The websocket endpoint authenticates itself before upgrading.
func addRealtimeRoutes(rg *gin.RouterGroup, h *realtime.Handler) {
	rg.GET(PathRealtime, h.ServeWS)
}
