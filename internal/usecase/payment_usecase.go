package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"cotafrete/internal/domain/clock"
	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase/interfaces"
)

var (
	ErrInvalidMPPayload               = invalidInput("Payload de pagamento inválido")
	ErrPaymentGatewayBadRequest       = invalidInput("Pagamento recusado pelo provedor")
	ErrPaymentGatewayUnauthorized     = newError(KindInvalidState, "Credenciais do provedor de pagamento inválidas")
	ErrPaymentGatewayInvalidUsers     = invalidInput("Pagador inválido para este pagamento")
	ErrPaymentGatewayCustomerNotFound = invalidInput("Pagador não encontrado no provedor de pagamento")
	ErrPaymentQuoteChanged            = newError(KindInvalidState, "Cotação mudou de estado durante a confirmação do pagamento")
)

// IPaymentUseCase manages the payment created by an acceptance: reads, the
// Pix checkout through Mercado Pago and the confirmation that releases pickup.
type IPaymentUseCase interface {
	ListMine(ctx context.Context, actor entities.User) ([]entities.Payment, error)
	Get(ctx context.Context, actor entities.User, id string) (entities.Payment, error)
	Checkout(ctx context.Context, actor entities.User, id string, mpPayload json.RawMessage) (entities.Payment, error)
	UpdateStatus(ctx context.Context, actor entities.User, id string, status entities.PaymentStatus) (entities.Payment, error)
}

type PaymentUseCase struct {
	runtime
	repo    interfaces.IPaymentRepository
	quotes  interfaces.IQuoteRepository
	gateway interfaces.IPaymentGateway
	// gatewayMock mirrors the gateway's mock mode; payloads are optional then.
	gatewayMock bool
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(repo interfaces.IPaymentRepository, quotes interfaces.IQuoteRepository, gateway interfaces.IPaymentGateway, gatewayMock bool, events interfaces.IEventPublisher, clk clock.Clock) *PaymentUseCase {
	return &PaymentUseCase{runtime: newRuntime(clk, events), repo: repo, quotes: quotes, gateway: gateway, gatewayMock: gatewayMock}
}

func (u *PaymentUseCase) ListMine(ctx context.Context, actor entities.User) ([]entities.Payment, error) {
	ctx, cancel := u.bounded(ctx)
	defer cancel()

	items, err := u.repo.ListByUserID(ctx, actor.ID)
	if err != nil {
		return nil, u.failed("payment", "list mine", err)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

func (u *PaymentUseCase) Get(ctx context.Context, actor entities.User, id string) (entities.Payment, error) {
	ctx, cancel := u.bounded(ctx)
	defer cancel()
	return u.load(ctx, actor, id)
}

func (u *PaymentUseCase) load(ctx context.Context, actor entities.User, id string) (entities.Payment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Payment{}, ErrInvalidPaymentID
	}
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Payment{}, u.failed("payment", "load", err)
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	if p.UserID != actor.ID && !actor.IsAdmin() {
		return entities.Payment{}, ErrPaymentForbidden
	}
	return p, nil
}

// Checkout charges a pending payment through the gateway. The amount and the
// reconciliation reference always come from the stored payment.
func (u *PaymentUseCase) Checkout(ctx context.Context, actor entities.User, id string, mpPayload json.RawMessage) (entities.Payment, error) {
	log.Printf("[payment][usecase] checkout start payment_id=%q payload_len=%d", id, len(mpPayload))
	mockMode := u.gatewayMock
	if len(mpPayload) == 0 {
		mpPayload = json.RawMessage("{}")
	}
	if !json.Valid(mpPayload) {
		log.Printf("[payment][usecase] invalid payload (not-json) payment_id=%s", id)
		return entities.Payment{}, ErrInvalidMPPayload
	}
	if u.gateway == nil {
		log.Printf("[payment][usecase] gateway not configured payment_id=%s", id)
		return entities.Payment{}, ErrPaymentGatewayMissing
	}

	ctx, cancel := u.bounded(ctx)
	defer cancel()

	p, err := u.load(ctx, actor, id)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.Status != entities.PaymentStatusPendente {
		return entities.Payment{}, ErrPaymentNotPending
	}

	var reqMap map[string]any
	if err := json.Unmarshal(mpPayload, &reqMap); err != nil || reqMap == nil {
		log.Printf("[payment][usecase] payload unmarshal failed payment_id=%s err=%v", p.ID, err)
		return entities.Payment{}, ErrInvalidMPPayload
	}
	if !hasNonEmptyString(reqMap, "payment_method_id") {
		reqMap["payment_method_id"] = mercadoPagoMethod(p.Metodo)
	}
	if !mockMode {
		normalizeSandboxPayerFromUserID(reqMap)
		ensurePayerDefaults(reqMap)
		if !hasPayer(reqMap) {
			log.Printf("[payment][usecase] missing/invalid payer payment_id=%s", p.ID)
			return entities.Payment{}, ErrInvalidMPPayload
		}
	}
	reqMap["external_reference"] = p.CotacaoID
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = p.Descricao
	}
	reqMap["transaction_amount"] = p.Valor
	enriched, err := json.Marshal(reqMap)
	if err != nil {
		return entities.Payment{}, err
	}

	log.Printf("[payment][usecase] calling payment gateway payment_id=%s quote_id=%s amount=%.2f", p.ID, p.CotacaoID, p.Valor)
	providerID, providerStatus, providerResp, err := u.gateway.CreatePayment(ctx, enriched)
	if err != nil {
		log.Printf("[payment][usecase] payment gateway failed payment_id=%s err=%v", p.ID, err)
		return entities.Payment{}, mapGatewayError(err)
	}
	log.Printf("[payment][usecase] payment gateway success payment_id=%s provider_payment_id=%s provider_status=%s", p.ID, providerID, providerStatus)

	updated, err := u.repo.AttachProviderResponse(ctx, p.ID, providerID, providerStatus, providerResp, u.now())
	if err != nil {
		return entities.Payment{}, u.failed("payment", "attach provider response", err)
	}
	if updated.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	if providerStatus == "approved" {
		return u.approve(ctx, updated)
	}
	return updated, nil
}

func mercadoPagoMethod(m entities.PaymentMethod) string {
	if m == entities.PaymentMethodBoleto {
		return "bolbradesco"
	}
	return "pix"
}

func mapGatewayError(err error) error {
	switch {
	case isGatewayCustomerNotFound(err):
		return ErrPaymentGatewayCustomerNotFound
	case isGatewayInvalidUsers(err):
		return ErrPaymentGatewayInvalidUsers
	case isGatewayUnauthorized(err):
		return ErrPaymentGatewayUnauthorized
	case isGatewayBadRequest(err):
		return ErrPaymentGatewayBadRequest
	}
	return classify(err, dependencyTimeoutMessage)
}

// UpdateStatus is the admin/webhook entrypoint for provider outcomes.
func (u *PaymentUseCase) UpdateStatus(ctx context.Context, actor entities.User, id string, status entities.PaymentStatus) (entities.Payment, error) {
	if !actor.IsAdmin() {
		return entities.Payment{}, ErrAdminOnly
	}
	switch status {
	case entities.PaymentStatusAprovado, entities.PaymentStatusNegado, entities.PaymentStatusPendente:
	default:
		return entities.Payment{}, ErrPaymentInvalidStatus
	}
	ctx, cancel := u.bounded(ctx)
	defer cancel()

	p, err := u.load(ctx, actor, id)
	if err != nil {
		return entities.Payment{}, err
	}
	if status == entities.PaymentStatusAprovado {
		return u.approve(ctx, p)
	}
	updated, err := u.repo.UpdateStatus(ctx, p.ID, status, u.now())
	if err != nil {
		return entities.Payment{}, u.failed("payment", "update status", err)
	}
	if updated.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	log.Printf("[payment][usecase] status updated payment_id=%s status=%s", p.ID, status)
	return updated, nil
}

// approve settles the payment and releases pickup on the quote: payment
// confirmed, collection authorized and an awaiting-payment quote moved on.
func (u *PaymentUseCase) approve(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	now := u.now()
	updated, err := u.repo.UpdateStatus(ctx, p.ID, entities.PaymentStatusAprovado, now)
	if err != nil {
		return entities.Payment{}, u.failed("payment", "approve", err)
	}
	if updated.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}

	q, err := u.quotes.GetByID(ctx, p.CotacaoID)
	if err != nil {
		return entities.Payment{}, u.failed("payment", "load quote", err)
	}
	if q.ID == "" {
		return entities.Payment{}, ErrQuoteNotFound
	}
	if q.PaymentConfirmed() {
		return updated, nil
	}
	next := q.Status
	if q.Status == entities.QuoteStatusAguardandoPagamento {
		next = entities.QuoteStatusAguardandoColeta
	}
	confirmed, err := u.quotes.ConfirmPayment(ctx, q.ID, q.Status, next, now)
	if err != nil {
		return entities.Payment{}, u.failed("payment", "confirm quote", err)
	}
	if confirmed.ID == "" {
		log.Printf("[payment][usecase] quote changed during confirmation quote_id=%s expected=%s", q.ID, q.Status)
		return entities.Payment{}, ErrPaymentQuoteChanged
	}
	log.Printf("[payment][usecase] payment confirmed payment_id=%s quote_id=%s status=%s", p.ID, q.ID, confirmed.Status)
	u.publish(ctx, DomainEvent{
		Type:            EventPaymentConfirmed,
		CotacaoID:       q.ID,
		UserID:          q.UserID,
		TransportadorID: q.TransportadorID,
		Status:          confirmed.Status,
		Valor:           p.Valor,
		OccurredAt:      now,
	})
	return updated, nil
}

func hasNonEmptyString(m map[string]any, key string) bool {
	v, ok := m[key]
	if !ok {
		return false
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	return strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	v, ok := m["payer"]
	if !ok {
		return false
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	return s != "" && s != "<nil>"
}

func ensurePayerDefaults(m map[string]any) {
	v, ok := m["payer"]
	if !ok || v == nil {
		v = map[string]any{}
		m["payer"] = v
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return
	}
	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}

	// Sandbox accepts either payer.id or payer.email; fill email only when both are missing.
	if !hasPayerID(payer) && !hasNonEmptyString(payer, "email") {
		if email := strings.TrimSpace(os.Getenv("MERCADOPAGO_TEST_PAYER_EMAIL")); email != "" {
			payer["email"] = email
		} else if strings.HasPrefix(strings.TrimSpace(os.Getenv("MERCADOPAGO_ACCESS_TOKEN")), "TEST-") {
			payer["email"] = "test_user_br@testuser.com"
		}
	}
}

func normalizeSandboxPayerFromUserID(m map[string]any) {
	payer, ok := m["payer"].(map[string]any)
	if !ok || !hasPayerID(payer) || hasNonEmptyString(payer, "email") {
		return
	}
	if !strings.HasPrefix(strings.TrimSpace(os.Getenv("MERCADOPAGO_ACCESS_TOKEN")), "TEST-") {
		return
	}
	configuredUserID := strings.TrimSpace(os.Getenv("MERCADOPAGO_TEST_PAYER_USER_ID"))
	configuredEmail := strings.TrimSpace(os.Getenv("MERCADOPAGO_TEST_PAYER_EMAIL"))
	if configuredUserID == "" || configuredEmail == "" {
		return
	}
	if strings.TrimSpace(fmt.Sprintf("%v", payer["id"])) != configuredUserID {
		return
	}
	payer["email"] = configuredEmail
	delete(payer, "id")
	log.Printf("[payment][usecase] mapped sandbox payer user_id to payer.email")
}

func isGatewayBadRequest(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400")
}

func isGatewayUnauthorized(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401")
}

func isGatewayInvalidUsers(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034")
}

func isGatewayCustomerNotFound(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002")
}
