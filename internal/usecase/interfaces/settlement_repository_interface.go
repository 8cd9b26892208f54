package interfaces

import (
	"context"
	"time"

	"cotafrete/internal/domain/entities"
)

// FinalizeCommand closes a delivery and accrues its value to the carrier's
// ledger entry for (Month, Year).
type FinalizeCommand struct {
	QuoteID        string
	ExpectedStatus entities.QuoteStatus
	ProofURL       string
	CarrierID      string
	Month          int
	Year           int
	Increment      entities.LedgerIncrement
	Now            time.Time
}

// ISettlementRepository writes the finalize transition and the ledger
// increment as one atomic unit: either both are stored or neither is.
//
// When the quote is missing or no longer in ExpectedStatus it returns zero
// values and a nil error, like the other guarded updates.
type ISettlementRepository interface {
	Finalize(ctx context.Context, cmd FinalizeCommand) (entities.Quote, entities.LedgerEntry, error)
}
