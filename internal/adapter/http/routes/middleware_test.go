package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestSetMiddlewares(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	setMiddlewares(r)

	if got := len(r.Handlers); got != 2 {
		t.Fatalf("expected logger and recovery only, got %d handlers", got)
	}

	r.GET("/boom", func(c *gin.Context) { panic("boom") })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestPaymentGatewayMock(t *testing.T) {
	cases := []struct {
		name    string
		gateway string
		legacy  string
		want    bool
	}{
		{"unset", "", "", false},
		{"true", "true", "", true},
		{"mock keyword", " MOCK ", "", true},
		{"legacy key", "", "1", true},
		{"off", "false", "no", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("PAYMENT_GATEWAY_MOCK", tc.gateway)
			t.Setenv("MERCADOPAGO_MOCK", tc.legacy)
			if got := paymentGatewayMock(); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
