package response

import (
	"time"

	"cotafrete/internal/domain/entities"
)

// LedgerResponse renders money as fixed two-decimal strings.
type LedgerResponse struct {
	ID               string     `json:"id"`
	TransportadoraID string     `json:"transportadoraId"`
	Mes              int        `json:"mes"`
	Ano              int        `json:"ano"`
	TotalFaturado    string     `json:"totalFaturado"`
	TotalComissao    string     `json:"totalComissao"`
	TotalReceber     string     `json:"totalReceber"`
	NumeroEntregas   int64      `json:"numeroEntregas"`
	Status           string     `json:"status"`
	DataPagamento    *time.Time `json:"dataPagamento,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

func FromLedgerEntry(e entities.LedgerEntry) LedgerResponse {
	res := LedgerResponse{
		ID:               e.ID,
		TransportadoraID: e.TransportadoraID,
		Mes:              e.Mes,
		Ano:              e.Ano,
		TotalFaturado:    e.TotalFaturado.StringFixed(2),
		TotalComissao:    e.TotalComissao.StringFixed(2),
		TotalReceber:     e.TotalReceber.StringFixed(2),
		NumeroEntregas:   e.NumeroEntregas,
		Status:           string(e.Status),
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
	if !e.DataPagamento.IsZero() {
		paid := e.DataPagamento
		res.DataPagamento = &paid
	}
	return res
}

func FromLedgerEntries(items []entities.LedgerEntry) []LedgerResponse {
	out := make([]LedgerResponse, 0, len(items))
	for _, e := range items {
		out = append(out, FromLedgerEntry(e))
	}
	return out
}
