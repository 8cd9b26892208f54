package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cotafrete/internal/adapter/http/handlers/mocks"
	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/mock/gomock"
)

var wsShipper = entities.User{ID: "shipper-1", Role: entities.RoleEmbarcador, Nome: "Embarcadora"}

func newTestServer(t *testing.T, hub *Hub, identity usecase.IIdentityUseCase, chats usecase.IChatUseCase) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/v1/ws", NewHandler(hub, identity, chats, nil).ServeWS)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, token string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/ws?token=" + token
	return websocket.DefaultDialer.Dial(url, nil)
}

func send(t *testing.T, conn *websocket.Conn, event string, data any) {
	t.Helper()
	raw, _ := json.Marshal(data)
	if err := conn.WriteJSON(Envelope{Event: event, Data: raw}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func receive(t *testing.T, conn *websocket.Conn) outboundFrame {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var f outboundFrame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	return f
}

func TestHandler_RejectsBeforeUpgrade(t *testing.T) {
	ctrl := gomock.NewController(t)
	identity := mocks.NewMockIIdentityUseCase(ctrl)
	identity.EXPECT().Resolve(gomock.Any(), "bad").Return(entities.User{}, usecase.ErrUnauthenticated)

	srv := newTestServer(t, NewHub(), identity, mocks.NewMockIChatUseCase(ctrl))
	_, resp, err := dial(t, srv, "bad")
	if err == nil {
		t.Fatalf("expected handshake error")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %+v", resp)
	}
}

func TestHandler_JoinDenied(t *testing.T) {
	ctrl := gomock.NewController(t)
	identity := mocks.NewMockIIdentityUseCase(ctrl)
	chats := mocks.NewMockIChatUseCase(ctrl)
	identity.EXPECT().Resolve(gomock.Any(), "tok").Return(wsShipper, nil)
	chats.EXPECT().AuthorizeRoom(gomock.Any(), wsShipper, "q-9").Return(entities.Quote{}, usecase.ErrRoomForbidden)

	hub := NewHub()
	srv := newTestServer(t, hub, identity, chats)
	conn, _, err := dial(t, srv, "tok")
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	send(t, conn, EventJoin, map[string]string{"cotacaoId": "q-9"})
	f := receive(t, conn)
	var p errorPayload
	_ = json.Unmarshal(f.Data, &p)
	if f.Event != EventError || p.Message != usecase.ErrRoomForbidden.Message {
		t.Fatalf("unexpected frame: %+v", f)
	}
	if hub.RoomSize(RoomName("q-9")) != 0 {
		t.Fatalf("expected no room membership")
	}
}

func TestHandler_SendRequiresMembership(t *testing.T) {
	ctrl := gomock.NewController(t)
	identity := mocks.NewMockIIdentityUseCase(ctrl)
	identity.EXPECT().Resolve(gomock.Any(), "tok").Return(wsShipper, nil)

	srv := newTestServer(t, NewHub(), identity, mocks.NewMockIChatUseCase(ctrl))
	conn, _, err := dial(t, srv, "tok")
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	send(t, conn, EventSendMessage, map[string]string{"cotacaoId": "q-1", "conteudo": "olá"})
	if f := receive(t, conn); f.Event != EventError {
		t.Fatalf("expected error event, got %s", f.Event)
	}
}

func TestHandler_JoinAndSend(t *testing.T) {
	ctrl := gomock.NewController(t)
	identity := mocks.NewMockIIdentityUseCase(ctrl)
	chats := mocks.NewMockIChatUseCase(ctrl)
	hub := NewHub()

	identity.EXPECT().Resolve(gomock.Any(), "tok").Return(wsShipper, nil)
	chats.EXPECT().AuthorizeRoom(gomock.Any(), wsShipper, "q-1").Return(entities.Quote{ID: "q-1", UserID: wsShipper.ID}, nil)
	chats.EXPECT().SendToQuoteRoom(gomock.Any(), wsShipper, "q-1", "olá").DoAndReturn(
		func(_ context.Context, actor entities.User, quoteID, content string) (entities.Message, error) {
			m := entities.Message{ID: "m-1", UserID: actor.ID, Conteudo: content}
			hub.NotifyNewMessage(quoteID, m)
			return m, nil
		})

	srv := newTestServer(t, hub, identity, chats)
	conn, _, err := dial(t, srv, "tok")
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	send(t, conn, EventJoin, map[string]string{"cotacaoId": "q-1"})
	if f := receive(t, conn); f.Event != EventUserOnline {
		t.Fatalf("expected user-online, got %s", f.Event)
	}

	send(t, conn, EventSendMessage, map[string]string{"cotacaoId": "q-1", "conteudo": "  olá  "})
	f := receive(t, conn)
	var m entities.Message
	_ = json.Unmarshal(f.Data, &m)
	if f.Event != EventNewMessage || m.ID != "m-1" || m.Conteudo != "olá" {
		t.Fatalf("unexpected frame: %+v", f)
	}
}

func TestHandler_InvalidFrame(t *testing.T) {
	ctrl := gomock.NewController(t)
	identity := mocks.NewMockIIdentityUseCase(ctrl)
	identity.EXPECT().Resolve(gomock.Any(), "tok").Return(wsShipper, nil)

	srv := newTestServer(t, NewHub(), identity, mocks.NewMockIChatUseCase(ctrl))
	conn, _, err := dial(t, srv, "tok")
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if f := receive(t, conn); f.Event != EventError {
		t.Fatalf("expected error event, got %s", f.Event)
	}
}

func TestEventTimeout(t *testing.T) {
	t.Setenv("REALTIME_EVENT_TIMEOUT", "")
	if EventTimeout() != defaultEventTimeout {
		t.Fatalf("expected default timeout")
	}
	t.Setenv("REALTIME_EVENT_TIMEOUT", "250ms")
	if EventTimeout() != 250*time.Millisecond {
		t.Fatalf("expected 250ms, got %s", EventTimeout())
	}
	t.Setenv("REALTIME_EVENT_TIMEOUT", "nope")
	if EventTimeout() != defaultEventTimeout {
		t.Fatalf("expected default timeout for invalid value")
	}
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://app.cotafrete.com.br"})
	req := httptest.NewRequest(http.MethodGet, "/v1/ws", nil)
	req.Header.Set("Origin", "https://evil.example")
	if check(req) {
		t.Fatalf("expected origin rejected")
	}
	req.Header.Set("Origin", "https://app.cotafrete.com.br")
	if !check(req) {
		t.Fatalf("expected origin accepted")
	}
}
