package repository

import (
	"context"
	"time"

	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultOffersTableName = "respostas"
	offersQuoteIDIndex     = "cotacao_id-index"
	offersCarrierIDIndex   = "transportador_id-index"
)

type offerItem struct {
	ID                string  `dynamodbav:"id"`
	CotacaoID         string  `dynamodbav:"cotacao_id"`
	TransportadorID   string  `dynamodbav:"transportador_id"`
	Valor             float64 `dynamodbav:"valor"`
	DataEntrega       string  `dynamodbav:"data_entrega"`
	Descricao         string  `dynamodbav:"descricao,omitempty"`
	Aceita            bool    `dynamodbav:"aceita"`
	TipoTransportador string  `dynamodbav:"tipo_transportador,omitempty"`
	EhAutonomoCiot    bool    `dynamodbav:"eh_autonomo_ciot"`
	CreatedAt         string  `dynamodbav:"created_at"`
	UpdatedAt         string  `dynamodbav:"updated_at"`
}

// OfferDynamoRepository persists Offer entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: cotacao_id-index (PK: cotacao_id)
//   - GSI: transportador_id-index (PK: transportador_id)
//
// The id is derived from (cotacao_id, transportador_id), so the conditional
// put is what enforces one offer per carrier and quote.
type OfferDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IOfferRepository = (*OfferDynamoRepository)(nil)

func NewOfferDynamoRepository(ddb DynamoAPI) *OfferDynamoRepository {
	return &OfferDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("OFFERS_TABLE", defaultOffersTableName),
	}
}

func (r *OfferDynamoRepository) Create(ctx context.Context, o entities.Offer) (entities.Offer, error) {
	av, err := attributevalue.MarshalMap(toOfferItem(o))
	if err != nil {
		return entities.Offer{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.Offer{}, interfaces.ErrAlreadyExists
		}
		return entities.Offer{}, err
	}
	return o, nil
}

func (r *OfferDynamoRepository) GetByID(ctx context.Context, id string) (entities.Offer, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Offer{}, err
	}
	if len(out.Item) == 0 {
		return entities.Offer{}, nil
	}

	var it offerItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Offer{}, err
	}
	return fromOfferItem(it), nil
}

func (r *OfferDynamoRepository) ListByQuoteID(ctx context.Context, quoteID string) ([]entities.Offer, error) {
	return r.listByIndex(ctx, offersQuoteIDIndex, "cotacao_id", quoteID)
}

func (r *OfferDynamoRepository) ListByCarrierID(ctx context.Context, carrierID string) ([]entities.Offer, error) {
	return r.listByIndex(ctx, offersCarrierIDIndex, "transportador_id", carrierID)
}

func (r *OfferDynamoRepository) listByIndex(ctx context.Context, index, attr, value string) ([]entities.Offer, error) {
	raw, err := queryAll(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String(attr + " = :v"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": str(value),
		},
	})
	if err != nil {
		return nil, err
	}
	return decodeAll(raw, fromOfferItem)
}

func toOfferItem(o entities.Offer) offerItem {
	return offerItem{
		ID:                o.ID,
		CotacaoID:         o.CotacaoID,
		TransportadorID:   o.TransportadorID,
		Valor:             o.Valor,
		DataEntrega:       formatTime(o.DataEntrega),
		Descricao:         o.Descricao,
		Aceita:            o.Aceita,
		TipoTransportador: o.TipoTransportador,
		EhAutonomoCiot:    o.EhAutonomoCiot,
		CreatedAt:         formatTime(o.CreatedAt),
		UpdatedAt:         formatTime(o.UpdatedAt),
	}
}

func fromOfferItem(it offerItem) entities.Offer {
	return entities.Offer{
		ID:                it.ID,
		CotacaoID:         it.CotacaoID,
		TransportadorID:   it.TransportadorID,
		Valor:             it.Valor,
		DataEntrega:       parseTime(it.DataEntrega),
		Descricao:         it.Descricao,
		Aceita:            it.Aceita,
		TipoTransportador: it.TipoTransportador,
		EhAutonomoCiot:    it.EhAutonomoCiot,
		CreatedAt:         parseTime(it.CreatedAt),
		UpdatedAt:         parseTime(it.UpdatedAt),
	}
}

// offerFlagUpdate builds the transactional write that sets aceita on one offer.
func offerFlagUpdate(table, id, quoteID string, accepted bool, now time.Time) types.TransactWriteItem {
	return types.TransactWriteItem{
		Update: &types.Update{
			TableName:           aws.String(table),
			Key:                 idKey(id),
			ConditionExpression: aws.String("cotacao_id = :qid"),
			UpdateExpression:    aws.String("SET aceita = :aceita, updated_at = :updated_at"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":qid":        str(quoteID),
				":aceita":     boolean(accepted),
				":updated_at": str(formatTime(now)),
			},
		},
	}
}
