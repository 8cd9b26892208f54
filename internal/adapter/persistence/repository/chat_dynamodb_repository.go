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
	defaultChatsTableName = "chats"
	chatsShipperIDIndex   = "cliente_id-index"
	chatsCarrierIDIndex   = "transportadora_id-index"
)

type chatItem struct {
	ID                 string   `dynamodbav:"id"`
	CotacaoID          string   `dynamodbav:"cotacao_id"`
	Participantes      []string `dynamodbav:"participantes"`
	ClienteID          string   `dynamodbav:"cliente_id"`
	TransportadoraID   string   `dynamodbav:"transportadora_id"`
	HoraAbertura       string   `dynamodbav:"hora_abertura"`
	HoraFechamento     string   `dynamodbav:"hora_fechamento"`
	StatusChat         string   `dynamodbav:"status_chat"`
	UltimaMensagem     string   `dynamodbav:"ultima_mensagem,omitempty"`
	UltimaMensagemData string   `dynamodbav:"ultima_mensagem_data,omitempty"`
	CreatedAt          string   `dynamodbav:"created_at"`
	UpdatedAt          string   `dynamodbav:"updated_at"`
}

// ChatDynamoRepository persists Chat entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: cliente_id-index (PK: cliente_id)
//   - GSI: transportadora_id-index (PK: transportadora_id)
type ChatDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IChatRepository = (*ChatDynamoRepository)(nil)

func NewChatDynamoRepository(ddb DynamoAPI) *ChatDynamoRepository {
	return &ChatDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("CHATS_TABLE", defaultChatsTableName),
	}
}

func (r *ChatDynamoRepository) Create(ctx context.Context, c entities.Chat) (entities.Chat, error) {
	av, err := attributevalue.MarshalMap(toChatItem(c))
	if err != nil {
		return entities.Chat{}, err
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
			return entities.Chat{}, interfaces.ErrAlreadyExists
		}
		return entities.Chat{}, err
	}
	return c, nil
}

func (r *ChatDynamoRepository) GetByID(ctx context.Context, id string) (entities.Chat, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Chat{}, err
	}
	if len(out.Item) == 0 {
		return entities.Chat{}, nil
	}

	var it chatItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Chat{}, err
	}
	return fromChatItem(it), nil
}

// ListByParticipant merges both participant indexes; a user appears on
// either side depending on the role.
func (r *ChatDynamoRepository) ListByParticipant(ctx context.Context, userID string) ([]entities.Chat, error) {
	seen := make(map[string]struct{})
	out := make([]entities.Chat, 0)
	for _, idx := range []struct{ index, attr string }{
		{chatsShipperIDIndex, "cliente_id"},
		{chatsCarrierIDIndex, "transportadora_id"},
	} {
		raw, err := queryAll(ctx, r.ddb, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String(idx.index),
			KeyConditionExpression: aws.String(idx.attr + " = :uid"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":uid": str(userID),
			},
		})
		if err != nil {
			return nil, err
		}
		chats, err := decodeAll(raw, fromChatItem)
		if err != nil {
			return nil, err
		}
		for _, c := range chats {
			if _, dup := seen[c.ID]; dup {
				continue
			}
			seen[c.ID] = struct{}{}
			out = append(out, c)
		}
	}
	return out, nil
}

// MarkAutoClosed flips status_chat only while it is still aberto and the
// stored deadline is before now; otherwise it returns the current item.
func (r *ChatDynamoRepository) MarkAutoClosed(ctx context.Context, id string, now time.Time) (entities.Chat, error) {
	ts := formatTime(now)
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 idKey(id),
		ConditionExpression: aws.String("attribute_exists(#id) AND status_chat = :aberto AND hora_fechamento < :now"),
		UpdateExpression:    aws.String("SET status_chat = :fechado, updated_at = :now"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":aberto":  str(string(entities.ChatStatusAberto)),
			":fechado": str(string(entities.ChatStatusFechadoAutomatico)),
			":now":     str(ts),
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return r.GetByID(ctx, id)
		}
		return entities.Chat{}, err
	}
	var it chatItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Chat{}, err
	}
	return fromChatItem(it), nil
}

func (r *ChatDynamoRepository) UpdateLastMessage(ctx context.Context, id, preview string, at time.Time) error {
	ts := formatTime(at)
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 idKey(id),
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET ultima_mensagem = :preview, ultima_mensagem_data = :at, updated_at = :at"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":preview": str(preview),
			":at":      str(ts),
		},
	})
	if err != nil && !isConditionFailed(err) {
		return err
	}
	return nil
}

func toChatItem(c entities.Chat) chatItem {
	return chatItem{
		ID:                 c.ID,
		CotacaoID:          c.CotacaoID,
		Participantes:      c.Participantes,
		ClienteID:          c.ClienteID,
		TransportadoraID:   c.TransportadoraID,
		HoraAbertura:       formatTime(c.HoraAbertura),
		HoraFechamento:     formatTime(c.HoraFechamento),
		StatusChat:         string(c.StatusChat),
		UltimaMensagem:     c.UltimaMensagem,
		UltimaMensagemData: formatTime(c.UltimaMensagemData),
		CreatedAt:          formatTime(c.CreatedAt),
		UpdatedAt:          formatTime(c.UpdatedAt),
	}
}

func fromChatItem(it chatItem) entities.Chat {
	return entities.Chat{
		ID:                 it.ID,
		CotacaoID:          it.CotacaoID,
		Participantes:      it.Participantes,
		ClienteID:          it.ClienteID,
		TransportadoraID:   it.TransportadoraID,
		HoraAbertura:       parseTime(it.HoraAbertura),
		HoraFechamento:     parseTime(it.HoraFechamento),
		StatusChat:         entities.ChatStatus(it.StatusChat),
		UltimaMensagem:     it.UltimaMensagem,
		UltimaMensagemData: parseTime(it.UltimaMensagemData),
		CreatedAt:          parseTime(it.CreatedAt),
		UpdatedAt:          parseTime(it.UpdatedAt),
	}
}
