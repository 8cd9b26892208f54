package repository

import (
	"context"
	"errors"
	"log"

	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// AcceptanceDynamoRepository writes an acceptance with TransactWriteItems
// across the quotes, offers and payments tables.
type AcceptanceDynamoRepository struct {
	ddb      DynamoAPI
	quotes   *QuoteDynamoRepository
	offers   *OfferDynamoRepository
	payments *PaymentDynamoRepository
}

var _ interfaces.IAcceptanceRepository = (*AcceptanceDynamoRepository)(nil)

func NewAcceptanceDynamoRepository(ddb DynamoAPI) *AcceptanceDynamoRepository {
	return &AcceptanceDynamoRepository{
		ddb:      ddb,
		quotes:   NewQuoteDynamoRepository(ddb),
		offers:   NewOfferDynamoRepository(ddb),
		payments: NewPaymentDynamoRepository(ddb),
	}
}

func (r *AcceptanceDynamoRepository) Accept(ctx context.Context, cmd interfaces.AcceptCommand) (entities.Quote, error) {
	offers, err := r.offers.ListByQuoteID(ctx, cmd.QuoteID)
	if err != nil {
		return entities.Quote{}, err
	}

	paymentAV, err := attributevalue.MarshalMap(toPaymentItem(cmd.Payment))
	if err != nil {
		return entities.Quote{}, err
	}
	methodsAV, err := attributevalue.Marshal(paymentMethodsItem(cmd.Authorization.MetodosPagamento))
	if err != nil {
		return entities.Quote{}, err
	}

	statusNames, statusValues, openCond := statusSet(entities.OpenQuoteStatuses)
	values := map[string]types.AttributeValue{
		":next":       str(string(cmd.Authorization.Status)),
		":offer":      str(cmd.OfferID),
		":carrier":    str(cmd.CarrierID),
		":price":      num(cmd.Price),
		":pendente":   str(string(entities.PaymentStatePendente)),
		":autorizado": boolean(cmd.Authorization.AutorizadoColeta),
		":motivo":     str(cmd.Authorization.MotivoBloqueioColeta),
		":metodos":    methodsAV,
		":requer":     boolean(cmd.Authorization.RequerPagamentoObrigatorio),
		":code":       str(cmd.ConfirmationCode),
		":updated_at": str(formatTime(cmd.Now)),
		":empty":      str(""),
	}
	for k, v := range statusValues {
		values[k] = v
	}

	items := []types.TransactWriteItem{
		{
			Update: &types.Update{
				TableName: aws.String(r.quotes.tableName),
				Key:       idKey(cmd.QuoteID),
				ConditionExpression: aws.String("attribute_exists(#id) AND " + openCond +
					" AND (attribute_not_exists(resposta_selecionada_id) OR resposta_selecionada_id = :empty)"),
				UpdateExpression: aws.String("SET #status = :next, resposta_selecionada_id = :offer, " +
					"transportador_id = :carrier, valor_final_transportadora = :price, " +
					"status_pagamento = :pendente, autorizado_coleta = :autorizado, " +
					"motivo_bloqueio_coleta = :motivo, metodos_pagamento = :metodos, " +
					"requer_pagamento_obrigatorio = :requer, codigo_confirmacao_coleta = :code, " +
					"updated_at = :updated_at"),
				ExpressionAttributeNames:  mergeNames(statusNames, map[string]string{"#id": "id"}),
				ExpressionAttributeValues: values,
			},
		},
		offerFlagUpdate(r.offers.tableName, cmd.OfferID, cmd.QuoteID, true, cmd.Now),
	}
	for _, o := range offers {
		if o.Aceita && o.ID != cmd.OfferID {
			items = append(items, offerFlagUpdate(r.offers.tableName, o.ID, cmd.QuoteID, false, cmd.Now))
		}
	}
	items = append(items, types.TransactWriteItem{
		Put: &types.Put{
			TableName:           aws.String(r.payments.tableName),
			Item:                paymentAV,
			ConditionExpression: aws.String("attribute_not_exists(#id)"),
			ExpressionAttributeNames: map[string]string{
				"#id": "id",
			},
		},
	})

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			log.Printf("[cotacao][repository] accept transaction canceled quote_id=%s offer_id=%s reasons=%s",
				cmd.QuoteID, cmd.OfferID, cancellationCodes(tce))
			return entities.Quote{}, interfaces.ErrConcurrentUpdate
		}
		return entities.Quote{}, err
	}
	return r.quotes.GetByID(ctx, cmd.QuoteID)
}

func cancellationCodes(tce *types.TransactionCanceledException) string {
	out := ""
	for i, reason := range tce.CancellationReasons {
		if i > 0 {
			out += ","
		}
		out += aws.ToString(reason.Code)
	}
	return out
}
