package database

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// TableAPI is the subset of the DynamoDB client used for bootstrapping.
type TableAPI interface {
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

type index struct {
	name    string
	hashKey string
	sortKey string
}

type tableDef struct {
	envKey  string
	name    string
	indexes []index
}

// tables lists every table and GSI the repositories query.
var tables = []tableDef{
	{envKey: "QUOTES_TABLE", name: "cotacoes", indexes: []index{{name: "user_id-index", hashKey: "user_id"}}},
	{envKey: "OFFERS_TABLE", name: "respostas", indexes: []index{
		{name: "cotacao_id-index", hashKey: "cotacao_id"},
		{name: "transportador_id-index", hashKey: "transportador_id"},
	}},
	{envKey: "CHATS_TABLE", name: "chats", indexes: []index{
		{name: "cliente_id-index", hashKey: "cliente_id"},
		{name: "transportadora_id-index", hashKey: "transportadora_id"},
	}},
	{envKey: "MESSAGES_TABLE", name: "mensagens", indexes: []index{
		{name: "chat_id-index", hashKey: "chat_id", sortKey: "created_at"},
	}},
	{envKey: "LEDGER_TABLE", name: "financeiro", indexes: []index{
		{name: "transportadora_id-index", hashKey: "transportadora_id"},
	}},
	{envKey: "PAYMENTS_TABLE", name: "pagamentos", indexes: []index{
		{name: "cotacao_id-index", hashKey: "cotacao_id"},
		{name: "user_id-index", hashKey: "user_id"},
	}},
	{envKey: "COUNTERS_TABLE", name: "contadores"},
}

// AutoCreateTablesEnabled reads DYNAMODB_AUTO_CREATE_TABLES.
func AutoCreateTablesEnabled() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("DYNAMODB_AUTO_CREATE_TABLES"))) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// EnsureTables creates the missing tables on a local DynamoDB. Tables that
// already exist are left untouched.
func EnsureTables(ctx context.Context, api TableAPI) error {
	for _, t := range tables {
		name := getenvDefault(t.envKey, t.name)
		_, err := api.CreateTable(ctx, createTableInput(name, t.indexes))
		if err != nil {
			var inUse *types.ResourceInUseException
			if errors.As(err, &inUse) {
				continue
			}
			log.Printf("[database][dynamodb] create table failed table=%s err=%v", name, err)
			return err
		}
		log.Printf("[database][dynamodb] table created table=%s", name)
	}
	return nil
}

func createTableInput(name string, indexes []index) *dynamodb.CreateTableInput {
	attrs := map[string]struct{}{"id": {}}
	gsis := make([]types.GlobalSecondaryIndex, 0, len(indexes))
	for _, idx := range indexes {
		keys := []types.KeySchemaElement{{AttributeName: aws.String(idx.hashKey), KeyType: types.KeyTypeHash}}
		attrs[idx.hashKey] = struct{}{}
		if idx.sortKey != "" {
			keys = append(keys, types.KeySchemaElement{AttributeName: aws.String(idx.sortKey), KeyType: types.KeyTypeRange})
			attrs[idx.sortKey] = struct{}{}
		}
		gsis = append(gsis, types.GlobalSecondaryIndex{
			IndexName:  aws.String(idx.name),
			KeySchema:  keys,
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
		})
	}

	defs := make([]types.AttributeDefinition, 0, len(attrs))
	for a := range attrs {
		defs = append(defs, types.AttributeDefinition{AttributeName: aws.String(a), AttributeType: types.ScalarAttributeTypeS})
	}

	in := &dynamodb.CreateTableInput{
		TableName:            aws.String(name),
		BillingMode:          types.BillingModePayPerRequest,
		AttributeDefinitions: defs,
		KeySchema:            []types.KeySchemaElement{{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash}},
	}
	if len(gsis) > 0 {
		in.GlobalSecondaryIndexes = gsis
	}
	return in
}
