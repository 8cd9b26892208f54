package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"cotafrete/internal/adapter/http/middleware"
	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase"
	"cotafrete/pkg"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const defaultEventTimeout = 5 * time.Second

// EventTimeout bounds each inbound event (REALTIME_EVENT_TIMEOUT, Go duration).
func EventTimeout() time.Duration {
	v := strings.TrimSpace(os.Getenv("REALTIME_EVENT_TIMEOUT"))
	if v == "" {
		return defaultEventTimeout
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("[realtime] invalid REALTIME_EVENT_TIMEOUT=%q, using %s", v, defaultEventTimeout)
		return defaultEventTimeout
	}
	return d
}

// Handler upgrades authenticated requests and routes client events to the
// chat use case.
type Handler struct {
	hub      *Hub
	identity usecase.IIdentityUseCase
	chats    usecase.IChatUseCase
	upgrader websocket.Upgrader
	timeout  time.Duration
}

// NewHandler builds the websocket endpoint. An empty allowedOrigins list
// accepts any origin, matching the CORS policy.
func NewHandler(hub *Hub, identity usecase.IIdentityUseCase, chats usecase.IChatUseCase, allowedOrigins []string) *Handler {
	h := &Handler{hub: hub, identity: identity, chats: chats, timeout: EventTimeout()}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return h
}

func originChecker(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if len(allowed) == 0 || origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || strings.EqualFold(o, origin) {
				return true
			}
		}
		log.Printf("[realtime][handler] origin rejected origin=%s", origin)
		return false
	}
}

// ServeWS resolves the bearer credential before upgrading; an unknown
// identity never gets a socket.
func (h *Handler) ServeWS(c *gin.Context) {
	user, err := h.identity.Resolve(c.Request.Context(), middleware.BearerToken(c.Request))
	if err != nil {
		log.Printf("[realtime][handler] connection rejected err=%v", err)
		appErr := pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Token ausente ou inválido", http.StatusUnauthorized)
		c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[realtime][handler] upgrade failed user_id=%s err=%v", user.ID, err)
		return
	}
	client := newClient(user, conn)
	h.hub.register(client)
	go client.writePump()

	client.readPump(func(env Envelope) { h.dispatch(client, env) })
	h.hub.unregister(client)
}

func (h *Handler) dispatch(c *Client, env Envelope) {
	var p roomPayload
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &p); err != nil {
			h.fail(c, env.Event, errors.New("payload inválido"), "Payload inválido")
			return
		}
	}
	p.CotacaoID = strings.TrimSpace(p.CotacaoID)

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	switch env.Event {
	case EventJoin:
		h.join(ctx, c, p)
	case EventSendMessage:
		h.sendMessage(ctx, c, p)
	case EventTyping:
		h.typing(c, p)
	case EventMarkAsRead:
		h.markAsRead(ctx, c, p)
	default:
		h.fail(c, env.Event, errors.New("unknown event"), "Evento desconhecido")
	}
}

func (h *Handler) join(ctx context.Context, c *Client, p roomPayload) {
	if p.CotacaoID == "" {
		h.fail(c, EventJoin, usecase.ErrInvalidQuoteID, usecase.ErrInvalidQuoteID.Message)
		return
	}
	if _, err := h.chats.AuthorizeRoom(ctx, c.user, p.CotacaoID); err != nil {
		log.Printf("[realtime][handler] join rejected user_id=%s quote_id=%s err=%v", c.user.ID, p.CotacaoID, err)
		h.fail(c, EventJoin, err, "")
		return
	}
	room := RoomName(p.CotacaoID)
	h.hub.join(c, room)
	log.Printf("[realtime][handler] joined user_id=%s room=%s", c.user.ID, room)
	h.hub.broadcast(room, encode(EventUserOnline, presencePayload{
		UserID:    c.user.ID,
		UserName:  c.user.Nome,
		CotacaoID: p.CotacaoID,
		Timestamp: h.hub.now(),
	}), nil)
}

// sendMessage persists through the chat use case; the hub, as its room
// notifier, broadcasts only what was stored.
func (h *Handler) sendMessage(ctx context.Context, c *Client, p roomPayload) {
	content := entities.SanitizeContent(p.Conteudo)
	if p.CotacaoID == "" || content == "" {
		h.fail(c, EventSendMessage, usecase.ErrMessageEmpty, "Mensagem vazia ou ID de cotação inválido")
		return
	}
	if !h.hub.inRoom(c, RoomName(p.CotacaoID)) {
		h.fail(c, EventSendMessage, errors.New("not in room"), "Você não está no chat desta cotação")
		return
	}
	if _, err := h.chats.SendToQuoteRoom(ctx, c.user, p.CotacaoID, content); err != nil {
		h.fail(c, EventSendMessage, err, "")
	}
}

func (h *Handler) typing(c *Client, p roomPayload) {
	room := RoomName(p.CotacaoID)
	if p.CotacaoID == "" || !h.hub.inRoom(c, room) {
		return
	}
	h.hub.broadcast(room, encode(EventUserTyping, presencePayload{
		UserID:    c.user.ID,
		UserName:  c.user.Nome,
		CotacaoID: p.CotacaoID,
		Timestamp: h.hub.now(),
	}), c)
}

func (h *Handler) markAsRead(ctx context.Context, c *Client, p roomPayload) {
	if !h.hub.inRoom(c, RoomName(p.CotacaoID)) {
		h.fail(c, EventMarkAsRead, errors.New("not in room"), "Você não está no chat desta cotação")
		return
	}
	if _, err := h.chats.MarkRead(ctx, c.user, strings.TrimSpace(p.ChatID)); err != nil {
		h.fail(c, EventMarkAsRead, err, "")
	}
}

// fail logs and emits an error event. Use-case errors keep their message;
// fallback is used otherwise.
func (h *Handler) fail(c *Client, event string, err error, fallback string) {
	message := fallback
	var ue *usecase.Error
	if errors.As(err, &ue) && ue.Message != "" {
		message = ue.Message
	}
	if message == "" {
		message = "Erro ao processar evento"
	}
	log.Printf("[realtime][handler] event failed event=%s user_id=%s err=%v", event, c.user.ID, err)
	c.enqueue(encode(EventError, errorPayload{Message: message}))
}
