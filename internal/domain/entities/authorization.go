package entities

const (
	MotivoBloqueioCiot    = "Pagamento antecipado obrigatório para transportador CIOT."
	MotivoBloqueioCredito = "Pagamento pendente via Pix para liberar coleta."
)

// CollectionAuthorization is the outcome of accepting an offer.
type CollectionAuthorization struct {
	AutorizadoColeta           bool
	MotivoBloqueioColeta       string
	MetodoPreferencial         PaymentMethod
	MetodosPagamento           PaymentMethods
	RequerPagamentoObrigatorio bool
	Status                     QuoteStatus
}

// DeriveCollectionAuthorization combines the shipper's credit (boleto)
// authorization with the carrier's CIOT requirement. Collection is released
// only with credit and no CIOT; when both block, the CIOT reason wins.
func DeriveCollectionAuthorization(shipperHasCredit, carrierRequiresCiot bool) CollectionAuthorization {
	a := CollectionAuthorization{
		AutorizadoColeta:           shipperHasCredit && !carrierRequiresCiot,
		MetodoPreferencial:         PaymentMethodPix,
		RequerPagamentoObrigatorio: carrierRequiresCiot || !shipperHasCredit,
		MetodosPagamento: PaymentMethods{
			Boleto: shipperHasCredit,
			Pix:    !shipperHasCredit || carrierRequiresCiot,
		},
	}
	if shipperHasCredit {
		a.MetodoPreferencial = PaymentMethodBoleto
	}

	switch {
	case a.AutorizadoColeta:
		a.Status = QuoteStatusAguardandoColeta
	case carrierRequiresCiot:
		a.MotivoBloqueioColeta = MotivoBloqueioCiot
		a.Status = QuoteStatusAguardandoPagamento
	default:
		a.MotivoBloqueioColeta = MotivoBloqueioCredito
		a.Status = QuoteStatusAguardandoPagamento
	}
	return a
}
