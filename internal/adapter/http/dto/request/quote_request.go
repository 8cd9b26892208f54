package request

import (
	"strings"

	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase"
	"cotafrete/internal/usecase/interfaces"
)

type AddressRequest struct {
	Nome        string `json:"nome"`
	Logradouro  string `json:"logradouro"`
	Bairro      string `json:"bairro"`
	Cidade      string `json:"cidade"`
	Estado      string `json:"estado"`
	Cep         string `json:"cep"`
	Complemento string `json:"complemento"`
}

func (a AddressRequest) ToAddress() entities.Address {
	return entities.Address(a)
}

// CreateQuoteRequest is the payload of POST /cotacoes.
type CreateQuoteRequest struct {
	Titulo           string         `json:"titulo"`
	Descricao        string         `json:"descricao"`
	Observacoes      string         `json:"observacoes"`
	Coleta           AddressRequest `json:"coleta"`
	DataColeta       string         `json:"dataColeta"`
	Entrega          AddressRequest `json:"entrega"`
	DataEntrega      string         `json:"dataEntrega"`
	Peso             float64        `json:"peso"`
	ValorEstimado    float64        `json:"valorEstimado"`
	MinutosExpiracao int            `json:"minutosExpiracao"`
}

func (r CreateQuoteRequest) ToInput() (usecase.CreateQuoteInput, error) {
	coleta, err := ParseDate(r.DataColeta)
	if err != nil {
		return usecase.CreateQuoteInput{}, err
	}
	entrega, err := ParseDate(r.DataEntrega)
	if err != nil {
		return usecase.CreateQuoteInput{}, err
	}
	return usecase.CreateQuoteInput{
		Titulo:           strings.TrimSpace(r.Titulo),
		Descricao:        strings.TrimSpace(r.Descricao),
		Observacoes:      strings.TrimSpace(r.Observacoes),
		Coleta:           r.Coleta.ToAddress(),
		DataColeta:       coleta,
		Entrega:          r.Entrega.ToAddress(),
		DataEntrega:      entrega,
		Peso:             r.Peso,
		ValorEstimado:    r.ValorEstimado,
		MinutosExpiracao: r.MinutosExpiracao,
	}, nil
}

// UpdateQuoteRequest only carries descriptive fields; status is not editable.
type UpdateQuoteRequest struct {
	Titulo        *string  `json:"titulo"`
	Descricao     *string  `json:"descricao"`
	Observacoes   *string  `json:"observacoes"`
	Peso          *float64 `json:"peso"`
	ValorEstimado *float64 `json:"valorEstimado"`
}

func (r UpdateQuoteRequest) ToDetails() interfaces.QuoteDetails {
	return interfaces.QuoteDetails(r)
}

type AcceptQuoteRequest struct {
	RespostaID string `json:"respostaId" binding:"required"`
}

type ConfirmCollectionRequest struct {
	CodigoConfirmacao string `json:"codigoConfirmacao"`
}

type DocumentRequest struct {
	Tipo       string  `json:"tipo" binding:"required"`
	Codigo     string  `json:"codigo"`
	URL        string  `json:"url"`
	ValorFinal float64 `json:"valorFinal"`
}

func (r DocumentRequest) ToInput() usecase.DocumentInput {
	return usecase.DocumentInput{
		Tipo:       entities.DocumentType(r.Tipo),
		Codigo:     strings.TrimSpace(r.Codigo),
		URL:        strings.TrimSpace(r.URL),
		ValorFinal: r.ValorFinal,
	}
}

type TrackingRequest struct {
	URLRastreamento string `json:"urlRastreamento"`
	CodigoRastreio  string `json:"codigoRastreio"`
}

type FinalizeRequest struct {
	DocumentoCanhoto string `json:"documentoCanhoto"`
}

type DelayRequest struct {
	MotivoAtraso    string `json:"motivoAtraso" binding:"required"`
	NovaDataEntrega string `json:"novaDataEntrega"`
}
