package repository

import (
	"context"
	"sort"

	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultMessagesTableName = "mensagens"
	messagesChatIDIndex      = "chat_id-index"
)

type attachmentItem struct {
	URL  string `dynamodbav:"url"`
	Nome string `dynamodbav:"nome"`
	Tipo string `dynamodbav:"tipo"`
}

type messageItem struct {
	ID           string          `dynamodbav:"id"`
	ChatID       string          `dynamodbav:"chat_id"`
	UserID       string          `dynamodbav:"user_id"`
	Conteudo     string          `dynamodbav:"conteudo"`
	TipoMensagem string          `dynamodbav:"tipo_mensagem"`
	Arquivo      *attachmentItem `dynamodbav:"arquivo,omitempty"`
	Lida         bool            `dynamodbav:"lida"`
	CreatedAt    string          `dynamodbav:"created_at"`
}

// MessageDynamoRepository persists Message entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: chat_id-index (PK: chat_id, SK: created_at)
type MessageDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IMessageRepository = (*MessageDynamoRepository)(nil)

func NewMessageDynamoRepository(ddb DynamoAPI) *MessageDynamoRepository {
	return &MessageDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("MESSAGES_TABLE", defaultMessagesTableName),
	}
}

func (r *MessageDynamoRepository) Create(ctx context.Context, m entities.Message) (entities.Message, error) {
	av, err := attributevalue.MarshalMap(toMessageItem(m))
	if err != nil {
		return entities.Message{}, err
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
			return entities.Message{}, interfaces.ErrAlreadyExists
		}
		return entities.Message{}, err
	}
	return m, nil
}

func (r *MessageDynamoRepository) ListByChatID(ctx context.Context, chatID string) ([]entities.Message, error) {
	raw, err := queryAll(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(messagesChatIDIndex),
		KeyConditionExpression: aws.String("chat_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": str(chatID),
		},
		ScanIndexForward: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	return decodeAll(raw, fromMessageItem)
}

// MarkRead flips each unread message of the other participant with its own
// conditional update; a message already read by a concurrent call is skipped.
func (r *MessageDynamoRepository) MarkRead(ctx context.Context, chatID, readerID string) ([]string, error) {
	msgs, err := r.ListByChatID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0)
	for _, m := range msgs {
		if m.Lida || m.UserID == readerID {
			continue
		}
		_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
			TableName:           aws.String(r.tableName),
			Key:                 idKey(m.ID),
			ConditionExpression: aws.String("attribute_exists(#id) AND lida = :false"),
			UpdateExpression:    aws.String("SET lida = :true"),
			ExpressionAttributeNames: map[string]string{
				"#id": "id",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":false": boolean(false),
				":true":  boolean(true),
			},
		})
		if err != nil {
			if isConditionFailed(err) {
				continue
			}
			return ids, err
		}
		ids = append(ids, m.ID)
	}
	sort.Strings(ids)
	return ids, nil
}

func toMessageItem(m entities.Message) messageItem {
	it := messageItem{
		ID:           m.ID,
		ChatID:       m.ChatID,
		UserID:       m.UserID,
		Conteudo:     m.Conteudo,
		TipoMensagem: string(m.TipoMensagem),
		Lida:         m.Lida,
		CreatedAt:    formatTime(m.CreatedAt),
	}
	if m.Arquivo != nil {
		a := attachmentItem(*m.Arquivo)
		it.Arquivo = &a
	}
	return it
}

func fromMessageItem(it messageItem) entities.Message {
	m := entities.Message{
		ID:           it.ID,
		ChatID:       it.ChatID,
		UserID:       it.UserID,
		Conteudo:     it.Conteudo,
		TipoMensagem: entities.MessageKind(it.TipoMensagem),
		Lida:         it.Lida,
		CreatedAt:    parseTime(it.CreatedAt),
	}
	if it.Arquivo != nil {
		a := entities.Attachment(*it.Arquivo)
		m.Arquivo = &a
	}
	return m
}
