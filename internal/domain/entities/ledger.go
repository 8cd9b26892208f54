package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type LedgerStatus string

const (
	LedgerStatusPendente LedgerStatus = "pendente"
	LedgerStatusPago     LedgerStatus = "pago"
)

// CommissionRate is the platform fee over each finalized delivery.
var CommissionRate = decimal.RequireFromString("0.05")

// LedgerEntry is the per-carrier monthly running total (financeiro).
//
// Storage model (DynamoDB):
//   - PK: id (transportadora_id#YYYY-MM)
//   - GSI (transportadora_id-index): transportadora_id
//
// Totals are only ever incremented in place.
type LedgerEntry struct {
	ID               string          `json:"id"`
	TransportadoraID string          `json:"transportadoraId"`
	Mes              int             `json:"mes"`
	Ano              int             `json:"ano"`
	TotalFaturado    decimal.Decimal `json:"totalFaturado"`
	TotalComissao    decimal.Decimal `json:"totalComissao"`
	TotalReceber     decimal.Decimal `json:"totalReceber"`
	NumeroEntregas   int64           `json:"numeroEntregas"`
	Status           LedgerStatus    `json:"status"`
	DataPagamento    time.Time       `json:"dataPagamento,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

func LedgerEntryID(carrierID string, month, year int) string {
	return fmt.Sprintf("%s#%04d-%02d", carrierID, year, month)
}

// LedgerIncrement is one finalization's contribution to a monthly entry.
type LedgerIncrement struct {
	Gross      decimal.Decimal
	Commission decimal.Decimal
	Net        decimal.Decimal
}

// SplitCommission computes commission as exactly CommissionRate × gross and
// net as the remainder. Nothing is rounded here; responses format to cents.
func SplitCommission(gross decimal.Decimal) LedgerIncrement {
	commission := gross.Mul(CommissionRate)
	return LedgerIncrement{
		Gross:      gross,
		Commission: commission,
		Net:        gross.Sub(commission),
	}
}
