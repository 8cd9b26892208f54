package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// offerNamespace scopes the deterministic offer ids.
var offerNamespace = uuid.MustParse("5f0c7a52-3f1e-4c55-9a4b-6b1b5e8f2c01")

// Offer (resposta) is a carrier's priced proposal against a quote.
//
// Storage model (DynamoDB):
//   - PK: id (UUIDv5 of cotacao_id + transportador_id, one offer per pair)
//   - GSI (cotacao_id-index): cotacao_id
//   - GSI (transportador_id-index): transportador_id
//
// TipoTransportador and EhAutonomoCiot are snapshots taken at submission time.
type Offer struct {
	ID                string    `json:"id"`
	CotacaoID         string    `json:"cotacaoId"`
	TransportadorID   string    `json:"transportadorId"`
	Valor             float64   `json:"valor"`
	DataEntrega       time.Time `json:"dataEntrega"`
	Descricao         string    `json:"descricao,omitempty"`
	Aceita            bool      `json:"aceita"`
	TipoTransportador string    `json:"tipoTransportador,omitempty"`
	EhAutonomoCiot    bool      `json:"ehAutonomoCiot"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// OfferID derives the identifier of the single offer a carrier may hold on a quote.
func OfferID(quoteID, carrierID string) string {
	key := strings.TrimSpace(quoteID) + "|" + strings.TrimSpace(carrierID)
	return uuid.NewSHA1(offerNamespace, []byte(key)).String()
}

const (
	OfferMaxPrice        = 1_000_000.0
	OfferMaxDeliveryDays = 90
	OfferMaxNoteLength   = 1000
)
