package database

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type fakeTableAPI struct {
	created  []string
	existing map[string]bool
	failOn   string
}

func (f *fakeTableAPI) CreateTable(_ context.Context, in *dynamodb.CreateTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	name := aws.ToString(in.TableName)
	if name == f.failOn {
		return nil, errors.New("boom")
	}
	if f.existing[name] {
		return nil, &types.ResourceInUseException{Message: aws.String("exists")}
	}
	f.created = append(f.created, name)
	return &dynamodb.CreateTableOutput{}, nil
}

func TestEnsureTables(t *testing.T) {
	t.Run("creates missing tables and skips existing ones", func(t *testing.T) {
		api := &fakeTableAPI{existing: map[string]bool{"cotacoes": true}}
		if err := EnsureTables(context.Background(), api); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if len(api.created) != len(tables)-1 {
			t.Fatalf("expected %d created tables, got %v", len(tables)-1, api.created)
		}
		for _, name := range api.created {
			if name == "cotacoes" {
				t.Fatalf("expected existing table to be skipped")
			}
		}
	})

	t.Run("honors table name overrides", func(t *testing.T) {
		t.Setenv("CHATS_TABLE", "chats_test")
		api := &fakeTableAPI{}
		if err := EnsureTables(context.Background(), api); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		found := false
		for _, name := range api.created {
			if name == "chats_test" {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected chats_test to be created, got %v", api.created)
		}
	})

	t.Run("returns unexpected errors", func(t *testing.T) {
		api := &fakeTableAPI{failOn: "respostas"}
		if err := EnsureTables(context.Background(), api); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestCreateTableInput(t *testing.T) {
	in := createTableInput("mensagens", []index{{name: "chat_id-index", hashKey: "chat_id", sortKey: "created_at"}})
	if len(in.AttributeDefinitions) != 3 {
		t.Fatalf("expected 3 attribute definitions, got %d", len(in.AttributeDefinitions))
	}
	if len(in.GlobalSecondaryIndexes) != 1 || len(in.GlobalSecondaryIndexes[0].KeySchema) != 2 {
		t.Fatalf("expected one GSI with hash and range keys, got %+v", in.GlobalSecondaryIndexes)
	}
	if in.BillingMode != types.BillingModePayPerRequest {
		t.Fatalf("expected on-demand billing, got %v", in.BillingMode)
	}

	plain := createTableInput("contadores", nil)
	if plain.GlobalSecondaryIndexes != nil {
		t.Fatalf("expected no GSIs, got %+v", plain.GlobalSecondaryIndexes)
	}
}
