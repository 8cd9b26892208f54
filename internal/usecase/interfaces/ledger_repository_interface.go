package interfaces

import (
	"context"
	"time"

	"cotafrete/internal/domain/entities"
)

// ILedgerRepository abstracts persistence for the monthly financial ledger.
//
// Entries are only created or incremented through ISettlementRepository, as
// part of a delivery's finalization.
type ILedgerRepository interface {
	GetByID(ctx context.Context, id string) (entities.LedgerEntry, error)
	ListByCarrierID(ctx context.Context, carrierID string) ([]entities.LedgerEntry, error)
	ListAll(ctx context.Context) ([]entities.LedgerEntry, error)
	UpdateStatus(ctx context.Context, id string, status entities.LedgerStatus, paidAt time.Time, now time.Time) (entities.LedgerEntry, error)
}
