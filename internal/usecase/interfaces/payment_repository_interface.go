package interfaces

import (
	"context"
	"encoding/json"
	"time"

	"cotafrete/internal/domain/entities"
)

// IPaymentRepository abstracts persistence for Payment.
type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	ListByQuoteID(ctx context.Context, quoteID string) ([]entities.Payment, error)
	ListByUserID(ctx context.Context, userID string) ([]entities.Payment, error)
	UpdateStatus(ctx context.Context, id string, status entities.PaymentStatus, now time.Time) (entities.Payment, error)
	AttachProviderResponse(ctx context.Context, id, providerID, providerStatus string, raw json.RawMessage, now time.Time) (entities.Payment, error)
}
