package entities

import "time"

// QuoteStatus represents the lifecycle of a transport request (cotação).
//
//   aberta/visualizada/em_andamento -> aguardando_pagamento | aguardando_coleta
//   -> [aguardando_aprovacao_cte] -> em_transito -> finalizada
//   open states -> cancelada
type QuoteStatus string

const (
	QuoteStatusAberta                 QuoteStatus = "aberta"
	QuoteStatusVisualizada            QuoteStatus = "visualizada"
	QuoteStatusEmAndamento            QuoteStatus = "em_andamento"
	QuoteStatusAguardandoPagamento    QuoteStatus = "aguardando_pagamento"
	QuoteStatusAguardandoColeta       QuoteStatus = "aguardando_coleta"
	QuoteStatusAguardandoAprovacaoCte QuoteStatus = "aguardando_aprovacao_cte"
	QuoteStatusEmTransito             QuoteStatus = "em_transito"
	QuoteStatusFinalizada             QuoteStatus = "finalizada"
	QuoteStatusCancelada              QuoteStatus = "cancelada"
)

// OpenQuoteStatuses are the sub-states in which a quote accepts offers.
var OpenQuoteStatuses = []QuoteStatus{QuoteStatusAberta, QuoteStatusVisualizada, QuoteStatusEmAndamento}

// CollectableQuoteStatuses are the states from which collection can be confirmed.
var CollectableQuoteStatuses = []QuoteStatus{QuoteStatusAguardandoColeta, QuoteStatusAguardandoAprovacaoCte}

// FinalizableQuoteStatuses are the states from which delivery can be finalized.
var FinalizableQuoteStatuses = []QuoteStatus{QuoteStatusEmTransito, QuoteStatusAguardandoAprovacaoCte}

// DocumentableQuoteStatuses accept document registration.
var DocumentableQuoteStatuses = []QuoteStatus{
	QuoteStatusAguardandoPagamento,
	QuoteStatusAguardandoColeta,
	QuoteStatusAguardandoAprovacaoCte,
	QuoteStatusEmTransito,
}

func (s QuoteStatus) IsOpen() bool { return s.In(OpenQuoteStatuses...) }

func (s QuoteStatus) In(set ...QuoteStatus) bool {
	for _, v := range set {
		if s == v {
			return true
		}
	}
	return false
}

// PaymentState mirrors statusPagamento on the quote.
type PaymentState string

const (
	PaymentStatePendente   PaymentState = "pendente"
	PaymentStateConfirmado PaymentState = "confirmado"
)

const (
	QuoteMinExpiryMinutes     = 15
	QuoteMaxExpiryMinutes     = 1440
	QuoteDefaultExpiryMinutes = 120
)

// ClampExpiryMinutes bounds the caller-supplied lifetime of a quote.
func ClampExpiryMinutes(minutes int) int {
	if minutes <= 0 {
		minutes = QuoteDefaultExpiryMinutes
	}
	if minutes < QuoteMinExpiryMinutes {
		return QuoteMinExpiryMinutes
	}
	if minutes > QuoteMaxExpiryMinutes {
		return QuoteMaxExpiryMinutes
	}
	return minutes
}

type Address struct {
	Nome        string `json:"nome,omitempty"`
	Logradouro  string `json:"logradouro,omitempty"`
	Bairro      string `json:"bairro,omitempty"`
	Cidade      string `json:"cidade,omitempty"`
	Estado      string `json:"estado,omitempty"`
	Cep         string `json:"cep,omitempty"`
	Complemento string `json:"complemento,omitempty"`
}

type DocumentType string

const (
	DocumentCTe  DocumentType = "cte"
	DocumentCIOT DocumentType = "ciot"
	DocumentMDFe DocumentType = "mdfe"
)

func (d DocumentType) Valid() bool {
	return d == DocumentCTe || d == DocumentCIOT || d == DocumentMDFe
}

// TransportDocument is a tax/transport document attached by the carrier.
// The URL is opaque and stored verbatim.
type TransportDocument struct {
	Codigo     string `json:"codigo"`
	URL        string `json:"url"`
	Registrado bool   `json:"registrado"`
}

type PaymentMethods struct {
	Boleto bool `json:"boleto"`
	Pix    bool `json:"pix"`
}

// Quote is the shipper's transport request persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (user_id-index): user_id
type Quote struct {
	ID          string      `json:"id"`
	Numero      int64       `json:"numero"`
	UserID      string      `json:"userId"`
	Titulo      string      `json:"titulo"`
	Descricao   string      `json:"descricao"`
	Observacoes string      `json:"observacoes,omitempty"`
	Status      QuoteStatus `json:"status"`
	DataHoraFim time.Time   `json:"dataHoraFim"`

	Coleta      Address   `json:"coleta"`
	DataColeta  time.Time `json:"dataColeta"`
	Entrega     Address   `json:"entrega"`
	DataEntrega time.Time `json:"dataEntrega,omitempty"`

	Peso          float64 `json:"peso,omitempty"`
	ValorEstimado float64 `json:"valorEstimado,omitempty"`

	RespostaSelecionadaID      string         `json:"respostaSelecionadaId,omitempty"`
	TransportadorID            string         `json:"transportadorId,omitempty"`
	ValorFinalTransportadora   float64        `json:"valorFinalTransportadora,omitempty"`
	StatusPagamento            PaymentState   `json:"statusPagamento,omitempty"`
	AutorizadoColeta           bool           `json:"autorizadoColeta"`
	MotivoBloqueioColeta       string         `json:"motivoBloqueioColeta,omitempty"`
	MetodosPagamento           PaymentMethods `json:"metodosPagamento"`
	RequerPagamentoObrigatorio bool           `json:"requerPagamentoObrigatorio"`
	PagamentoConfirmadoEm      time.Time      `json:"pagamentoConfirmadoEm,omitempty"`

	CodigoConfirmacaoColeta string    `json:"-"`
	DataColetaRealizada     time.Time `json:"dataColetaRealizada,omitempty"`

	Documentos      map[DocumentType]TransportDocument `json:"documentos,omitempty"`
	URLRastreamento string                             `json:"urlRastreamento,omitempty"`
	CodigoRastreio  string                             `json:"codigoRastreio,omitempty"`
	MotivoAtraso    string                             `json:"motivoAtraso,omitempty"`
	AtrasoInformado bool                               `json:"atrasoInformado"`

	DocumentoCanhoto     string    `json:"documentoCanhoto,omitempty"`
	DataEntregaRealizada time.Time `json:"dataEntregaRealizada,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AcceptsOffers evaluates both the status and the expiry against now.
func (q Quote) AcceptsOffers(now time.Time) bool {
	if !q.Status.IsOpen() {
		return false
	}
	return q.DataHoraFim.IsZero() || !now.After(q.DataHoraFim)
}

// PaymentConfirmed reports whether the shipper's payment settled.
func (q Quote) PaymentConfirmed() bool {
	return q.StatusPagamento == PaymentStateConfirmado
}

// ConversationAllowed is the payment gate shared by chat creation and messaging.
func (q Quote) ConversationAllowed() bool {
	return q.AutorizadoColeta || q.PaymentConfirmed()
}

// SettlementValue is the best-known value used for the financial ledger.
func (q Quote) SettlementValue(offerPrice float64) float64 {
	switch {
	case q.ValorFinalTransportadora > 0:
		return q.ValorFinalTransportadora
	case q.ValorEstimado > 0:
		return q.ValorEstimado
	case offerPrice > 0:
		return offerPrice
	}
	return 0
}
