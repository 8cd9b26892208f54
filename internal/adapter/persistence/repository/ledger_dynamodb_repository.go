package repository

import (
	"context"
	"strconv"
	"time"

	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const (
	defaultLedgerTableName = "financeiro"
	ledgerCarrierIDIndex   = "transportadora_id-index"
)

// ledgerItem holds the scalar attributes; the money totals are DynamoDB
// numbers read straight into decimal.Decimal by fromLedgerAttributes.
type ledgerItem struct {
	ID               string `dynamodbav:"id"`
	TransportadoraID string `dynamodbav:"transportadora_id"`
	Mes              int    `dynamodbav:"mes"`
	Ano              int    `dynamodbav:"ano"`
	NumeroEntregas   int64  `dynamodbav:"numero_entregas"`
	Status           string `dynamodbav:"status"`
	DataPagamento    string `dynamodbav:"data_pagamento,omitempty"`
	CreatedAt        string `dynamodbav:"created_at"`
	UpdatedAt        string `dynamodbav:"updated_at"`
}

// LedgerDynamoRepository persists the monthly financial ledger in DynamoDB.
//
// Table requirements:
//   - PK: id (string, carrier#YYYY-MM)
//   - GSI: transportadora_id-index (PK: transportadora_id)
type LedgerDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.ILedgerRepository = (*LedgerDynamoRepository)(nil)

func NewLedgerDynamoRepository(ddb DynamoAPI) *LedgerDynamoRepository {
	return &LedgerDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("LEDGER_TABLE", defaultLedgerTableName),
	}
}

func (r *LedgerDynamoRepository) GetByID(ctx context.Context, id string) (entities.LedgerEntry, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.LedgerEntry{}, err
	}
	if len(out.Item) == 0 {
		return entities.LedgerEntry{}, nil
	}
	return fromLedgerAttributes(out.Item)
}

func (r *LedgerDynamoRepository) ListByCarrierID(ctx context.Context, carrierID string) ([]entities.LedgerEntry, error) {
	raw, err := queryAll(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(ledgerCarrierIDIndex),
		KeyConditionExpression: aws.String("transportadora_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": str(carrierID),
		},
	})
	if err != nil {
		return nil, err
	}
	return decodeLedger(raw)
}

func (r *LedgerDynamoRepository) ListAll(ctx context.Context) ([]entities.LedgerEntry, error) {
	raw, err := scanAll(ctx, r.ddb, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	return decodeLedger(raw)
}

func (r *LedgerDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.LedgerStatus, paidAt time.Time, now time.Time) (entities.LedgerEntry, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 idKey(id),
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #status = :status, data_pagamento = :paid_at, updated_at = :now"),
		ExpressionAttributeNames: map[string]string{
			"#id":     "id",
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status":  str(string(status)),
			":paid_at": str(formatTime(paidAt)),
			":now":     str(formatTime(now)),
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.LedgerEntry{}, nil
		}
		return entities.LedgerEntry{}, err
	}
	return fromLedgerAttributes(out.Attributes)
}

func decodeLedger(raw []map[string]types.AttributeValue) ([]entities.LedgerEntry, error) {
	out := make([]entities.LedgerEntry, 0, len(raw))
	for _, item := range raw {
		e, err := fromLedgerAttributes(item)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func fromLedgerAttributes(av map[string]types.AttributeValue) (entities.LedgerEntry, error) {
	var it ledgerItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.LedgerEntry{}, err
	}
	e := entities.LedgerEntry{
		ID:               it.ID,
		TransportadoraID: it.TransportadoraID,
		Mes:              it.Mes,
		Ano:              it.Ano,
		NumeroEntregas:   it.NumeroEntregas,
		Status:           entities.LedgerStatus(it.Status),
		DataPagamento:    parseTime(it.DataPagamento),
		CreatedAt:        parseTime(it.CreatedAt),
		UpdatedAt:        parseTime(it.UpdatedAt),
	}
	var err error
	if e.TotalFaturado, err = decimalAttr(av, "total_faturado"); err != nil {
		return entities.LedgerEntry{}, err
	}
	if e.TotalComissao, err = decimalAttr(av, "total_comissao"); err != nil {
		return entities.LedgerEntry{}, err
	}
	if e.TotalReceber, err = decimalAttr(av, "total_receber"); err != nil {
		return entities.LedgerEntry{}, err
	}
	return e, nil
}

func decimalAttr(av map[string]types.AttributeValue, name string) (decimal.Decimal, error) {
	n, ok := av[name].(*types.AttributeValueMemberN)
	if !ok {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(n.Value)
}

// ledgerIncrementUpdate is the transactional write that adds inc to the
// (carrier, month, year) entry: ADD accumulates the totals and if_not_exists
// seeds the entry on the first delivery of the month.
func ledgerIncrementUpdate(table, carrierID string, month, year int, inc entities.LedgerIncrement, now time.Time) types.TransactWriteItem {
	ts := formatTime(now)
	return types.TransactWriteItem{
		Update: &types.Update{
			TableName: aws.String(table),
			Key:       idKey(entities.LedgerEntryID(carrierID, month, year)),
			UpdateExpression: aws.String("SET transportadora_id = :carrier, mes = :mes, ano = :ano, " +
				"#status = if_not_exists(#status, :pendente), created_at = if_not_exists(created_at, :now), updated_at = :now " +
				"ADD total_faturado :gross, total_comissao :commission, total_receber :net, numero_entregas :one"),
			ExpressionAttributeNames: map[string]string{
				"#status": "status",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":carrier":    str(carrierID),
				":mes":        &types.AttributeValueMemberN{Value: strconv.Itoa(month)},
				":ano":        &types.AttributeValueMemberN{Value: strconv.Itoa(year)},
				":pendente":   str(string(entities.LedgerStatusPendente)),
				":now":        str(ts),
				":gross":      &types.AttributeValueMemberN{Value: inc.Gross.String()},
				":commission": &types.AttributeValueMemberN{Value: inc.Commission.String()},
				":net":        &types.AttributeValueMemberN{Value: inc.Net.String()},
				":one":        &types.AttributeValueMemberN{Value: "1"},
			},
		},
	}
}
