package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"cotafrete/internal/adapter/http/handlers/mocks"
	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		url    string
		want   string
	}{
		{name: "header", header: "Bearer abc", url: "/x", want: "abc"},
		{name: "lowercase scheme", header: "bearer  abc ", url: "/x", want: "abc"},
		{name: "query fallback", url: "/x?token=q1", want: "q1"},
		{name: "other scheme ignored", header: "Basic zzz", url: "/x", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if got := BearerToken(req); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("rejects unresolvable identity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		identity := mocks.NewMockIIdentityUseCase(ctrl)
		identity.EXPECT().Resolve(gomock.Any(), "bad").Return(entities.User{}, usecase.ErrUnauthenticated)

		r := gin.New()
		r.GET("/v1/me", Authenticate(identity), func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
		req.Header.Set("Authorization", "Bearer bad")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("stores the actor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		identity := mocks.NewMockIIdentityUseCase(ctrl)
		identity.EXPECT().Resolve(gomock.Any(), "good").Return(entities.User{ID: "u-1", Role: entities.RoleEmbarcador}, nil)

		r := gin.New()
		r.GET("/v1/me", Authenticate(identity), func(c *gin.Context) {
			c.String(http.StatusOK, CurrentUser(c).ID)
		})

		req := httptest.NewRequest(http.MethodGet, "/v1/me?token=good", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK || w.Body.String() != "u-1" {
			t.Fatalf("expected 200 u-1, got %d %s", w.Code, w.Body.String())
		}
	})
}
