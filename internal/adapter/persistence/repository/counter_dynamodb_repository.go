package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultCountersTableName = "contadores"

// CounterDynamoRepository hands out monotonic sequence numbers.
//
// Table requirements:
//   - PK: id (string), one item per sequence name
type CounterDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

func NewCounterDynamoRepository(ddb DynamoAPI) *CounterDynamoRepository {
	return &CounterDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("COUNTERS_TABLE", defaultCountersTableName),
	}
}

// Next atomically increments the named sequence, creating it on first use.
func (r *CounterDynamoRepository) Next(ctx context.Context, name string) (int64, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.tableName),
		Key:              idKey(name),
		UpdateExpression: aws.String("ADD #seq :one"),
		ExpressionAttributeNames: map[string]string{
			"#seq": "seq",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, err
	}
	n, ok := out.Attributes["seq"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("counter %s: missing seq attribute", name)
	}
	return strconv.ParseInt(n.Value, 10, 64)
}
