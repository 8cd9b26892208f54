package repository

import (
	"context"
	"errors"
	"log"

	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// SettlementDynamoRepository finalizes a delivery with TransactWriteItems
// across the quotes and ledger tables.
type SettlementDynamoRepository struct {
	ddb    DynamoAPI
	quotes *QuoteDynamoRepository
	ledger *LedgerDynamoRepository
}

var _ interfaces.ISettlementRepository = (*SettlementDynamoRepository)(nil)

func NewSettlementDynamoRepository(ddb DynamoAPI) *SettlementDynamoRepository {
	return &SettlementDynamoRepository{
		ddb:    ddb,
		quotes: NewQuoteDynamoRepository(ddb),
		ledger: NewLedgerDynamoRepository(ddb),
	}
}

// Finalize writes the quote transition and the ledger increment in one
// transaction. The request token makes an SDK retry of a transaction that
// already committed succeed instead of failing the status guard.
func (r *SettlementDynamoRepository) Finalize(ctx context.Context, cmd interfaces.FinalizeCommand) (entities.Quote, entities.LedgerEntry, error) {
	_, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		ClientRequestToken: aws.String("finalize-" + cmd.QuoteID),
		TransactItems: []types.TransactWriteItem{
			finalizeUpdate(r.quotes.tableName, cmd),
			ledgerIncrementUpdate(r.ledger.tableName, cmd.CarrierID, cmd.Month, cmd.Year, cmd.Increment, cmd.Now),
		},
	})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			log.Printf("[entrega][repository] finalize transaction canceled quote_id=%s reasons=%s",
				cmd.QuoteID, cancellationCodes(tce))
			if len(tce.CancellationReasons) > 0 && aws.ToString(tce.CancellationReasons[0].Code) == "ConditionalCheckFailed" {
				return entities.Quote{}, entities.LedgerEntry{}, nil
			}
		}
		return entities.Quote{}, entities.LedgerEntry{}, err
	}

	q, err := r.quotes.GetByID(ctx, cmd.QuoteID)
	if err != nil {
		return entities.Quote{}, entities.LedgerEntry{}, err
	}
	entry, err := r.ledger.GetByID(ctx, entities.LedgerEntryID(cmd.CarrierID, cmd.Month, cmd.Year))
	if err != nil {
		return entities.Quote{}, entities.LedgerEntry{}, err
	}
	return q, entry, nil
}
