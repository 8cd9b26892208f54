package usecase

import (
	"context"
	"errors"
)

// Kind classifies use-case failures; handlers map it to a transport status.
type Kind string

const (
	KindUnauthenticated   Kind = "UNAUTHENTICATED"
	KindInvalidInput      Kind = "INVALID_INPUT"
	KindForbidden         Kind = "FORBIDDEN"
	KindNotFound          Kind = "NOT_FOUND"
	KindConflict          Kind = "CONFLICT"
	KindInvalidState      Kind = "INVALID_STATE"
	KindDependencyTimeout Kind = "DEPENDENCY_TIMEOUT"
)

// Error carries a kind and the user-facing reason. The same message is shown
// by the REST surface and by the realtime transport.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches kind-only targets (ErrForbidden, ErrNotFound, ...) against any
// error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func invalidInput(message string) *Error { return newError(KindInvalidInput, message) }
func forbidden(message string) *Error    { return newError(KindForbidden, message) }

// Kind-only targets for errors.Is.
var (
	ErrInvalidInput      = &Error{Kind: KindInvalidInput}
	ErrForbidden         = &Error{Kind: KindForbidden}
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrConflict          = &Error{Kind: KindConflict}
	ErrInvalidState      = &Error{Kind: KindInvalidState}
	ErrDependencyTimeout = &Error{Kind: KindDependencyTimeout}
)

var (
	ErrQuoteNotFound   = newError(KindNotFound, "Cotação não encontrada")
	ErrOfferNotFound   = newError(KindNotFound, "Resposta não encontrada")
	ErrChatNotFound    = newError(KindNotFound, "Chat não encontrado")
	ErrPaymentNotFound = newError(KindNotFound, "Pagamento não encontrado")
	ErrLedgerNotFound  = newError(KindNotFound, "Registro financeiro não encontrado")

	ErrInvalidQuoteID   = invalidInput("ID da cotação inválido")
	ErrInvalidOfferID   = invalidInput("ID da resposta inválido")
	ErrInvalidChatID    = invalidInput("ID do chat inválido")
	ErrInvalidPaymentID = invalidInput("ID do pagamento inválido")

	ErrQuoteMissingFields = invalidInput("Dados obrigatórios faltando: cidade de coleta ou de entrega")
	ErrNotQuoteOwner      = forbidden("Não autorizado")
	ErrShipperOnly        = forbidden("Apenas embarcadores podem criar cotações")
	ErrQuoteNotEditable   = newError(KindInvalidState, "Cotação não pode mais ser alterada")
	ErrQuoteNotCancelable = newError(KindInvalidState, "Cotação não pode mais ser cancelada")

	ErrOfferMissingFields   = invalidInput("Campo obrigatório faltando: cotacaoId, valor, dataEntrega")
	ErrOfferPriceInvalid    = invalidInput("Valor deve ser maior que zero")
	ErrOfferPriceTooHigh    = invalidInput("Valor proposto excede o limite máximo (R$ 1.000.000)")
	ErrOfferDatePast        = invalidInput("Data de entrega deve ser no futuro")
	ErrOfferDateTooFar      = invalidInput("Data de entrega não pode ser mais de 90 dias no futuro")
	ErrCarrierOnly          = forbidden("Apenas transportadores podem responder cotações")
	ErrOwnQuote             = forbidden("Você não pode responder sua própria cotação")
	ErrQuoteClosedForOffers = newError(KindInvalidState, "Cotação não está aberta para respostas")
	ErrQuoteExpired         = newError(KindInvalidState, "Prazo da cotação expirou")
	ErrOfferAlreadyExists   = newError(KindConflict, "Você já respondeu esta cotação")
	ErrOffersForbidden      = forbidden("Você não tem permissão para ver as respostas desta cotação")

	ErrAcceptForbidden    = forbidden("Você não tem permissão para aceitar respostas desta cotação")
	ErrQuoteNotAcceptable = newError(KindInvalidState, "Cotação não está disponível para aceitar respostas")
	ErrOfferNotInQuote    = newError(KindInvalidState, "Resposta não pertence a esta cotação")

	ErrSelectedCarrierOnly     = forbidden("Apenas a transportadora selecionada pode executar esta operação")
	ErrCollectionForbidden     = forbidden("Não autorizado")
	ErrQuoteNotReadyCollection = newError(KindInvalidState, "Cotação não está pronta para coleta")
	ErrCollectionBlocked       = forbidden("Coleta bloqueada até confirmação de pagamento/autorização.")
	ErrInvalidConfirmationCode = invalidInput("Código de confirmação inválido")
	ErrInvalidDocumentType     = invalidInput("Tipo de documento inválido (cte, ciot ou mdfe)")
	ErrInvalidDocumentValue    = invalidInput("Valor final inválido")
	ErrQuoteNotDocumentable    = newError(KindInvalidState, "Cotação não aceita registro de documentos neste status")
	ErrQuoteNotInTransit       = newError(KindInvalidState, "Cotação não está em trânsito para ser finalizada")
	ErrQuoteNotAccepted        = newError(KindInvalidState, "Cotação ainda não possui resposta aceita")
	ErrInvalidDelayDate        = invalidInput("Nova data de entrega inválida")

	ErrChatParticipantsInvalid = invalidInput("Participantes inválidos (mínimo 2)")
	ErrChatQuoteRequired       = invalidInput("cotacaoId é obrigatório para abrir chat")
	ErrChatShipperOnly         = forbidden("Apenas embarcadores podem abrir chats")
	ErrChatQuoteNotOwned       = forbidden("Cotação inválida ou não pertence ao embarcador")
	ErrChatCarrierRequired     = invalidInput("É necessário um participante transportador para abrir chat")
	ErrChatPaymentBlocked      = forbidden("Pagamento não confirmado. Chat bloqueado até liberação.")
	ErrChatAccessDenied        = forbidden("Você não é participante deste chat")
	ErrChatAutoClosed          = forbidden("Chat fechado automaticamente após 23:59")
	ErrChatNotOpen             = forbidden("Chat não está aberto para mensagens")
	ErrMessageEmpty            = invalidInput("Conteúdo ou arquivo é obrigatório")
	ErrRoomForbidden           = forbidden("Você não tem permissão para acessar este chat")
	ErrQuoteChatNotFound       = newError(KindNotFound, "Chat da cotação não encontrado")

	ErrPaymentForbidden      = forbidden("Acesso negado")
	ErrPaymentInvalidStatus  = invalidInput("Status de pagamento inválido")
	ErrPaymentNotPending     = newError(KindInvalidState, "Pagamento não está pendente")
	ErrPaymentGatewayMissing = newError(KindInvalidState, "Gateway de pagamento não configurado")
	ErrAdminOnly             = forbidden("Acesso restrito a administradores")
	ErrLedgerInvalidStatus   = invalidInput("Status financeiro inválido")

	ErrUnauthenticated = newError(KindUnauthenticated, "Token ausente ou inválido")
)

// classify turns storage/collaborator failures into the taxonomy: deadline
// exceeded is a retryable DependencyTimeout, everything else passes through.
func classify(err error, message string) error {
	if err == nil {
		return nil
	}
	var ue *Error
	if errors.As(err, &ue) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindDependencyTimeout, Message: message, Err: err}
	}
	return err
}

const dependencyTimeoutMessage = "Serviço temporariamente indisponível. Tente novamente."
