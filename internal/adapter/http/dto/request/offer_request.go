package request

import (
	"strings"

	"cotafrete/internal/usecase"
)

// SubmitOfferRequest is the payload of POST /respostas.
type SubmitOfferRequest struct {
	CotacaoID   string  `json:"cotacaoId"`
	Valor       float64 `json:"valor"`
	DataEntrega string  `json:"dataEntrega"`
	Descricao   string  `json:"descricao"`
}

func (r SubmitOfferRequest) ToInput() (usecase.SubmitOfferInput, error) {
	date, err := ParseDate(r.DataEntrega)
	if err != nil {
		return usecase.SubmitOfferInput{}, err
	}
	return usecase.SubmitOfferInput{
		CotacaoID:   strings.TrimSpace(r.CotacaoID),
		Valor:       r.Valor,
		DataEntrega: date,
		Descricao:   r.Descricao,
	}, nil
}
