package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"cotafrete/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

// MercadoPagoGateway creates the Pix or boleto charge of a freight payment.
// In mock mode it answers locally with a provider-shaped response.
type MercadoPagoGateway struct {
	client     payment.Client
	mockMode   bool
	mockStatus string
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

// Config is read once at startup. MockStatus defaults to approved.
type Config struct {
	AccessToken string
	Mock        bool
	MockStatus  string
}

func NewMercadoPagoGateway(cfg Config) (*MercadoPagoGateway, error) {
	if cfg.Mock {
		status := strings.TrimSpace(cfg.MockStatus)
		if status == "" {
			status = "approved"
		}
		log.Printf("[pagamento][gateway] mock mode enabled status=%s", status)
		return &MercadoPagoGateway{mockMode: true, mockStatus: status}, nil
	}

	accessToken := strings.TrimSpace(cfg.AccessToken)
	if accessToken == "" {
		log.Printf("[pagamento][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	sdkCfg, err := config.New(accessToken)
	if err != nil {
		log.Printf("[pagamento][gateway] failed creating sdk config err=%v", err)
		return nil, err
	}
	log.Printf("[pagamento][gateway] Mercado Pago client initialized")

	return NewMercadoPagoGatewayWithClient(payment.NewClient(sdkCfg)), nil
}

// NewMercadoPagoGatewayWithClient wraps an existing SDK payment client.
func NewMercadoPagoGatewayWithClient(client payment.Client) *MercadoPagoGateway {
	return &MercadoPagoGateway{client: client}
}

func (g *MercadoPagoGateway) CreatePayment(ctx context.Context, requestPayload json.RawMessage) (providerPaymentID string, providerStatus string, providerResponse json.RawMessage, err error) {
	if g != nil && g.mockMode {
		return g.mockCreate(requestPayload)
	}

	if g == nil || g.client == nil {
		log.Printf("[pagamento][gateway] gateway not configured")
		return "", "", nil, ErrMercadoPagoGatewayNotConfigured
	}
	log.Printf("[pagamento][gateway] create start payload_len=%d", len(requestPayload))

	var req payment.Request
	if err := json.Unmarshal(requestPayload, &req); err != nil {
		log.Printf("[pagamento][gateway] payload unmarshal failed err=%v", err)
		return "", "", nil, err
	}

	resp, err := g.client.Create(ctx, req)
	if err != nil {
		log.Printf("[pagamento][gateway] sdk create failed err=%v", err)
		return "", "", nil, err
	}

	b, err := json.Marshal(resp)
	if err != nil {
		log.Printf("[pagamento][gateway] response marshal failed err=%v", err)
		return "", "", nil, err
	}
	log.Printf("[pagamento][gateway] create success provider_payment_id=%d provider_status=%s", resp.ID, resp.Status)

	return fmt.Sprintf("%d", resp.ID), resp.Status, b, nil
}

// mockCreate echoes the request enriched with provider fields. Pix requests
// also receive a copy-and-paste code so clients can render the charge.
func (g *MercadoPagoGateway) mockCreate(requestPayload json.RawMessage) (string, string, json.RawMessage, error) {
	log.Printf("[pagamento][gateway] mock create start payload_len=%d", len(requestPayload))

	resp := map[string]any{}
	if len(requestPayload) > 0 && json.Valid(requestPayload) {
		if err := json.Unmarshal(requestPayload, &resp); err != nil {
			resp = map[string]any{"request_payload_raw": string(requestPayload)}
		}
	}

	id := strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
	now := time.Now().UTC().Format(time.RFC3339Nano)
	resp["id"] = id
	resp["status"] = g.mockStatus
	resp["date_created"] = now
	if g.mockStatus == "approved" {
		resp["status_detail"] = "accredited"
		resp["date_approved"] = now
	} else {
		resp["status_detail"] = "pending_waiting_transfer"
	}
	if method, _ := resp["payment_method_id"].(string); method == "pix" {
		resp["point_of_interaction"] = map[string]any{
			"type": "PIX",
			"transaction_data": map[string]any{
				"qr_code": "00020126580014br.gov.bcb.pix0136" + uuid.NewString() + "5204000053039865802BR",
			},
		}
	}

	b, err := json.Marshal(resp)
	if err != nil {
		log.Printf("[pagamento][gateway] mock response marshal failed err=%v", err)
		return "", "", nil, err
	}

	log.Printf("[pagamento][gateway] mock create success provider_payment_id=%s provider_status=%s", id, g.mockStatus)
	return id, g.mockStatus, b, nil
}
