package request

import "encoding/json"

// CheckoutRequest is the payload of POST /pagamentos/:id/checkout.
//
// `mp_payload` is forwarded as-is (raw JSON) to support varying Mercado Pago
// schemas; a bare Mercado Pago body without the envelope is accepted too.
type CheckoutRequest struct {
	MPPayload json.RawMessage `json:"mp_payload"`
}

type PaymentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type LedgerStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
