package response

import (
	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase"
)

// QuoteResponse is the quote as seen by a given viewer. The pickup
// confirmation code is only disclosed to the quote owner, who hands it to
// the driver at collection time.
type QuoteResponse struct {
	entities.Quote
	CodigoConfirmacaoColeta string `json:"codigoConfirmacaoColeta,omitempty"`
}

func FromQuote(q entities.Quote, viewer entities.User) QuoteResponse {
	res := QuoteResponse{Quote: q}
	if viewer.ID != "" && viewer.ID == q.UserID {
		res.CodigoConfirmacaoColeta = q.CodigoConfirmacaoColeta
	}
	return res
}

func FromQuotes(items []entities.Quote, viewer entities.User) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(items))
	for _, q := range items {
		out = append(out, FromQuote(q, viewer))
	}
	return out
}

type AcceptanceResponse struct {
	Cotacao   QuoteResponse   `json:"cotacao"`
	Pagamento PaymentResponse `json:"pagamento"`
}

func FromAcceptance(r usecase.AcceptanceResult, viewer entities.User) AcceptanceResponse {
	return AcceptanceResponse{
		Cotacao:   FromQuote(r.Cotacao, viewer),
		Pagamento: FromPayment(r.Pagamento),
	}
}

type FinalizeResponse struct {
	Cotacao    QuoteResponse  `json:"cotacao"`
	Financeiro LedgerResponse `json:"financeiro"`
}

func FromFinalize(r usecase.FinalizeResult, viewer entities.User) FinalizeResponse {
	return FinalizeResponse{
		Cotacao:    FromQuote(r.Cotacao, viewer),
		Financeiro: FromLedgerEntry(r.Financeiro),
	}
}
