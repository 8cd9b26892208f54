package repository

import (
	"context"
	"encoding/json"
	"time"

	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPaymentsTableName = "pagamentos"
	paymentsQuoteIDIndex     = "cotacao_id-index"
	paymentsUserIDIndex      = "user_id-index"
)

type paymentItem struct {
	ID                string                 `dynamodbav:"id"`
	CotacaoID         string                 `dynamodbav:"cotacao_id"`
	RespostaID        string                 `dynamodbav:"resposta_id"`
	UserID            string                 `dynamodbav:"user_id"`
	Valor             float64                `dynamodbav:"valor"`
	Metodo            string                 `dynamodbav:"metodo"`
	Status            string                 `dynamodbav:"status"`
	Descricao         string                 `dynamodbav:"descricao"`
	ProviderPaymentID string                 `dynamodbav:"provider_payment_id,omitempty"`
	ProviderStatus    string                 `dynamodbav:"provider_status,omitempty"`
	MPPayload         map[string]interface{} `dynamodbav:"mp_payload,omitempty"`
	MPPayloadRaw      string                 `dynamodbav:"mp_payload_raw,omitempty"`
	CreatedAt         string                 `dynamodbav:"created_at"`
	UpdatedAt         string                 `dynamodbav:"updated_at"`
}

// PaymentDynamoRepository persists Payment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: cotacao_id-index (PK: cotacao_id)
//   - GSI: user_id-index (PK: user_id)
type PaymentDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb DynamoAPI) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PAYMENTS_TABLE", defaultPaymentsTableName),
	}
}

func (r *PaymentDynamoRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	av, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return entities.Payment{}, err
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
			return entities.Payment{}, interfaces.ErrAlreadyExists
		}
		return entities.Payment{}, err
	}
	return p, nil
}

func (r *PaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Payment{}, err
	}
	if len(out.Item) == 0 {
		return entities.Payment{}, nil
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

func (r *PaymentDynamoRepository) ListByQuoteID(ctx context.Context, quoteID string) ([]entities.Payment, error) {
	return r.listByIndex(ctx, paymentsQuoteIDIndex, "cotacao_id", quoteID)
}

func (r *PaymentDynamoRepository) ListByUserID(ctx context.Context, userID string) ([]entities.Payment, error) {
	return r.listByIndex(ctx, paymentsUserIDIndex, "user_id", userID)
}

func (r *PaymentDynamoRepository) listByIndex(ctx context.Context, index, attr, value string) ([]entities.Payment, error) {
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
	return decodeAll(raw, fromPaymentItem)
}

func (r *PaymentDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.PaymentStatus, now time.Time) (entities.Payment, error) {
	return r.update(ctx, id, "SET #status = :status, #updated_at = :updated_at",
		map[string]types.AttributeValue{
			":status":     str(string(status)),
			":updated_at": str(formatTime(now)),
		},
		map[string]string{
			"#status":     "status",
			"#updated_at": "updated_at",
		},
	)
}

// AttachProviderResponse stores the gateway response verbatim and, when it is
// a JSON object, as a native map so it can be inspected in the console.
func (r *PaymentDynamoRepository) AttachProviderResponse(ctx context.Context, id, providerID, providerStatus string, raw json.RawMessage, now time.Time) (entities.Payment, error) {
	expr := "SET provider_payment_id = :pid, provider_status = :pstatus, mp_payload_raw = :raw, #updated_at = :updated_at"
	vals := map[string]types.AttributeValue{
		":pid":        str(providerID),
		":pstatus":    str(providerStatus),
		":raw":        str(string(raw)),
		":updated_at": str(formatTime(now)),
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err == nil && len(payload) > 0 {
		av, err := attributevalue.Marshal(payload)
		if err != nil {
			return entities.Payment{}, err
		}
		expr += ", mp_payload = :payload"
		vals[":payload"] = av
	}
	return r.update(ctx, id, expr, vals, map[string]string{"#updated_at": "updated_at"})
}

func (r *PaymentDynamoRepository) update(
	ctx context.Context,
	id string,
	updateExpr string,
	values map[string]types.AttributeValue,
	names map[string]string,
) (entities.Payment, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       idKey(id),
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.Payment{}, nil
		}
		return entities.Payment{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Payment{}, nil
	}
	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

func toPaymentItem(p entities.Payment) paymentItem {
	return paymentItem{
		ID:                p.ID,
		CotacaoID:         p.CotacaoID,
		RespostaID:        p.RespostaID,
		UserID:            p.UserID,
		Valor:             p.Valor,
		Metodo:            string(p.Metodo),
		Status:            string(p.Status),
		Descricao:         p.Descricao,
		ProviderPaymentID: p.ProviderPaymentID,
		ProviderStatus:    p.ProviderStatus,
		MPPayloadRaw:      string(p.MPPayloadRaw),
		CreatedAt:         formatTime(p.CreatedAt),
		UpdatedAt:         formatTime(p.UpdatedAt),
	}
}

func fromPaymentItem(it paymentItem) entities.Payment {
	p := entities.Payment{
		ID:                it.ID,
		CotacaoID:         it.CotacaoID,
		RespostaID:        it.RespostaID,
		UserID:            it.UserID,
		Valor:             it.Valor,
		Metodo:            entities.PaymentMethod(it.Metodo),
		Status:            entities.PaymentStatus(it.Status),
		Descricao:         it.Descricao,
		ProviderPaymentID: it.ProviderPaymentID,
		ProviderStatus:    it.ProviderStatus,
		CreatedAt:         parseTime(it.CreatedAt),
		UpdatedAt:         parseTime(it.UpdatedAt),
	}
	if it.MPPayloadRaw != "" {
		p.MPPayloadRaw = json.RawMessage(it.MPPayloadRaw)
	}
	return p
}
