package response

import (
	"encoding/json"
	"time"

	"cotafrete/internal/domain/entities"
)

type PaymentResponse struct {
	ID                string    `json:"id"`
	CotacaoID         string    `json:"cotacaoId"`
	RespostaID        string    `json:"respostaId"`
	UserID            string    `json:"userId"`
	Valor             float64   `json:"valor"`
	Metodo            string    `json:"metodo"`
	Status            string    `json:"status"`
	Descricao         string    `json:"descricao,omitempty"`
	ProviderPaymentID string    `json:"providerPaymentId,omitempty"`
	ProviderStatus    string    `json:"providerStatus,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`

	MPPayloadRaw string                 `json:"mp_payload_raw,omitempty"`
	MPPayload    map[string]interface{} `json:"mp_payload,omitempty"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	res := PaymentResponse{
		ID:                p.ID,
		CotacaoID:         p.CotacaoID,
		RespostaID:        p.RespostaID,
		UserID:            p.UserID,
		Valor:             p.Valor,
		Metodo:            string(p.Metodo),
		Status:            string(p.Status),
		Descricao:         p.Descricao,
		ProviderPaymentID: p.ProviderPaymentID,
		ProviderStatus:    p.ProviderStatus,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
	if len(p.MPPayloadRaw) > 0 {
		res.MPPayloadRaw = string(p.MPPayloadRaw)
		var parsed map[string]interface{}
		if err := json.Unmarshal(p.MPPayloadRaw, &parsed); err == nil {
			res.MPPayload = parsed
		}
	}
	return res
}

func FromPayments(items []entities.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(items))
	for _, p := range items {
		out = append(out, FromPayment(p))
	}
	return out
}
