package entities

import (
	"encoding/json"
	"time"
)

// PaymentStatus represents the payment processing outcome.
type PaymentStatus string

const (
	PaymentStatusPendente PaymentStatus = "pendente"
	PaymentStatusAprovado PaymentStatus = "aprovado"
	PaymentStatusNegado   PaymentStatus = "negado"
)

type PaymentMethod string

const (
	PaymentMethodBoleto PaymentMethod = "boleto"
	PaymentMethodPix    PaymentMethod = "pix"
)

// Payment is the record created when a shipper accepts an offer.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (cotacao_id-index): cotacao_id
//   - GSI (user_id-index): user_id
//
// MercadoPago payload:
//   - MPPayloadRaw keeps the provider response for traceability.
type Payment struct {
	ID                string        `json:"id"`
	CotacaoID         string        `json:"cotacaoId"`
	RespostaID        string        `json:"respostaId"`
	UserID            string        `json:"userId"`
	Valor             float64       `json:"valor"`
	Metodo            PaymentMethod `json:"metodo"`
	Status            PaymentStatus `json:"status"`
	Descricao         string        `json:"descricao"`
	ProviderPaymentID string        `json:"providerPaymentId,omitempty"`
	ProviderStatus    string        `json:"providerStatus,omitempty"`

	MPPayloadRaw json.RawMessage `json:"mpPayloadRaw,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
