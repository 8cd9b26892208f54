package repository

import (
	"context"
	"strings"
	"time"

	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultQuotesTableName = "cotacoes"
	quotesUserIDIndex      = "user_id-index"
	quoteNumberSequence    = "cotacoes"
)

type addressItem struct {
	Nome        string `dynamodbav:"nome,omitempty"`
	Logradouro  string `dynamodbav:"logradouro,omitempty"`
	Bairro      string `dynamodbav:"bairro,omitempty"`
	Cidade      string `dynamodbav:"cidade,omitempty"`
	Estado      string `dynamodbav:"estado,omitempty"`
	Cep         string `dynamodbav:"cep,omitempty"`
	Complemento string `dynamodbav:"complemento,omitempty"`
}

type documentItem struct {
	Codigo     string `dynamodbav:"codigo"`
	URL        string `dynamodbav:"url"`
	Registrado bool   `dynamodbav:"registrado"`
}

type paymentMethodsItem struct {
	Boleto bool `dynamodbav:"boleto"`
	Pix    bool `dynamodbav:"pix"`
}

type quoteItem struct {
	ID          string `dynamodbav:"id"`
	Numero      int64  `dynamodbav:"numero"`
	UserID      string `dynamodbav:"user_id"`
	Titulo      string `dynamodbav:"titulo"`
	Descricao   string `dynamodbav:"descricao"`
	Observacoes string `dynamodbav:"observacoes,omitempty"`
	Status      string `dynamodbav:"status"`
	DataHoraFim string `dynamodbav:"data_hora_fim,omitempty"`

	Coleta      addressItem `dynamodbav:"coleta"`
	DataColeta  string      `dynamodbav:"data_coleta,omitempty"`
	Entrega     addressItem `dynamodbav:"entrega"`
	DataEntrega string      `dynamodbav:"data_entrega,omitempty"`

	Peso          float64 `dynamodbav:"peso"`
	ValorEstimado float64 `dynamodbav:"valor_estimado"`

	RespostaSelecionadaID      string             `dynamodbav:"resposta_selecionada_id"`
	TransportadorID            string             `dynamodbav:"transportador_id,omitempty"`
	ValorFinalTransportadora   float64            `dynamodbav:"valor_final_transportadora"`
	StatusPagamento            string             `dynamodbav:"status_pagamento"`
	AutorizadoColeta           bool               `dynamodbav:"autorizado_coleta"`
	MotivoBloqueioColeta       string             `dynamodbav:"motivo_bloqueio_coleta"`
	MetodosPagamento           paymentMethodsItem `dynamodbav:"metodos_pagamento"`
	RequerPagamentoObrigatorio bool               `dynamodbav:"requer_pagamento_obrigatorio"`
	PagamentoConfirmadoEm      string             `dynamodbav:"pagamento_confirmado_em,omitempty"`

	CodigoConfirmacaoColeta string `dynamodbav:"codigo_confirmacao_coleta,omitempty"`
	DataColetaRealizada     string `dynamodbav:"data_coleta_realizada,omitempty"`

	Documentos      map[string]documentItem `dynamodbav:"documentos"`
	URLRastreamento string                  `dynamodbav:"url_rastreamento,omitempty"`
	CodigoRastreio  string                  `dynamodbav:"codigo_rastreio,omitempty"`
	MotivoAtraso    string                  `dynamodbav:"motivo_atraso,omitempty"`
	AtrasoInformado bool                    `dynamodbav:"atraso_informado"`

	DocumentoCanhoto     string `dynamodbav:"documento_canhoto,omitempty"`
	DataEntregaRealizada string `dynamodbav:"data_entrega_realizada,omitempty"`

	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// QuoteDynamoRepository persists Quote entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: user_id-index (PK: user_id)
//
// Every lifecycle transition is a single UpdateItem whose condition carries
// the allowed source statuses, so concurrent transitions cannot both apply.
type QuoteDynamoRepository struct {
	ddb       DynamoAPI
	counter   *CounterDynamoRepository
	tableName string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb DynamoAPI) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{
		ddb:       ddb,
		counter:   NewCounterDynamoRepository(ddb),
		tableName: getenvDefault("QUOTES_TABLE", defaultQuotesTableName),
	}
}

func (r *QuoteDynamoRepository) NextNumber(ctx context.Context) (int64, error) {
	return r.counter.Next(ctx, quoteNumberSequence)
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	av, err := attributevalue.MarshalMap(toQuoteItem(q))
	if err != nil {
		return entities.Quote{}, err
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
			return entities.Quote{}, interfaces.ErrAlreadyExists
		}
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Quote{}, err
	}
	if len(out.Item) == 0 {
		return entities.Quote{}, nil
	}

	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func (r *QuoteDynamoRepository) ListByUserID(ctx context.Context, userID string) ([]entities.Quote, error) {
	raw, err := queryAll(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(quotesUserIDIndex),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": str(userID),
		},
	})
	if err != nil {
		return nil, err
	}
	return decodeAll(raw, fromQuoteItem)
}

// ListOpen scans for the open sub-states and drops the expired ones in memory.
func (r *QuoteDynamoRepository) ListOpen(ctx context.Context, now time.Time) ([]entities.Quote, error) {
	names, values, in := statusSet(entities.OpenQuoteStatuses)
	raw, err := scanAll(ctx, r.ddb, &dynamodb.ScanInput{
		TableName:                 aws.String(r.tableName),
		FilterExpression:          aws.String(in),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	if err != nil {
		return nil, err
	}
	all, err := decodeAll(raw, fromQuoteItem)
	if err != nil {
		return nil, err
	}
	open := make([]entities.Quote, 0, len(all))
	for _, q := range all {
		if q.AcceptsOffers(now) {
			open = append(open, q)
		}
	}
	return open, nil
}

func (r *QuoteDynamoRepository) UpdateDetails(ctx context.Context, id string, d interfaces.QuoteDetails, now time.Time) (entities.Quote, error) {
	sets := []string{"#updated_at = :updated_at"}
	vals := map[string]types.AttributeValue{":updated_at": str(formatTime(now))}
	names := map[string]string{"#updated_at": "updated_at"}
	add := func(attr string, v types.AttributeValue) {
		sets = append(sets, "#"+attr+" = :"+attr)
		names["#"+attr] = attr
		vals[":"+attr] = v
	}
	if d.Titulo != nil {
		add("titulo", str(*d.Titulo))
	}
	if d.Descricao != nil {
		add("descricao", str(*d.Descricao))
	}
	if d.Observacoes != nil {
		add("observacoes", str(*d.Observacoes))
	}
	if d.Peso != nil {
		add("peso", num(*d.Peso))
	}
	if d.ValorEstimado != nil {
		add("valor_estimado", num(*d.ValorEstimado))
	}
	return r.update(ctx, id, entities.OpenQuoteStatuses, "", "SET "+strings.Join(sets, ", "), vals, names)
}

func (r *QuoteDynamoRepository) Cancel(ctx context.Context, id string, now time.Time) (entities.Quote, error) {
	return r.setStatus(ctx, id, entities.OpenQuoteStatuses, entities.QuoteStatusCancelada, now)
}

func (r *QuoteDynamoRepository) MarkViewed(ctx context.Context, id string, now time.Time) (entities.Quote, error) {
	return r.setStatus(ctx, id, []entities.QuoteStatus{entities.QuoteStatusAberta}, entities.QuoteStatusVisualizada, now)
}

func (r *QuoteDynamoRepository) setStatus(ctx context.Context, id string, from []entities.QuoteStatus, to entities.QuoteStatus, now time.Time) (entities.Quote, error) {
	return r.update(ctx, id, from, "",
		"SET #status = :next, #updated_at = :updated_at",
		map[string]types.AttributeValue{
			":next":       str(string(to)),
			":updated_at": str(formatTime(now)),
		},
		map[string]string{"#updated_at": "updated_at"},
	)
}

func (r *QuoteDynamoRepository) ConfirmPayment(ctx context.Context, id string, expected, next entities.QuoteStatus, now time.Time) (entities.Quote, error) {
	ts := formatTime(now)
	return r.update(ctx, id, []entities.QuoteStatus{expected}, "",
		"SET #status = :next, status_pagamento = :confirmado, autorizado_coleta = :true, "+
			"motivo_bloqueio_coleta = :empty, pagamento_confirmado_em = :ts, #updated_at = :ts",
		map[string]types.AttributeValue{
			":next":       str(string(next)),
			":confirmado": str(string(entities.PaymentStateConfirmado)),
			":true":       boolean(true),
			":empty":      str(""),
			":ts":         str(ts),
		},
		map[string]string{"#updated_at": "updated_at"},
	)
}

func (r *QuoteDynamoRepository) ConfirmCollection(ctx context.Context, id string, now time.Time) (entities.Quote, error) {
	ts := formatTime(now)
	return r.update(ctx, id, entities.CollectableQuoteStatuses, "autorizado_coleta = :true",
		"SET #status = :next, data_coleta_realizada = :ts, #updated_at = :ts",
		map[string]types.AttributeValue{
			":next": str(string(entities.QuoteStatusEmTransito)),
			":true": boolean(true),
			":ts":   str(ts),
		},
		map[string]string{"#updated_at": "updated_at"},
	)
}

func (r *QuoteDynamoRepository) RegisterDocument(ctx context.Context, id string, expected, next entities.QuoteStatus, docType entities.DocumentType, doc entities.TransportDocument, finalValue float64, now time.Time) (entities.Quote, error) {
	docAV, err := attributevalue.Marshal(documentItem{Codigo: doc.Codigo, URL: doc.URL, Registrado: doc.Registrado})
	if err != nil {
		return entities.Quote{}, err
	}
	expr := "SET documentos.#doc = :doc, #status = :next, #updated_at = :updated_at"
	vals := map[string]types.AttributeValue{
		":doc":        docAV,
		":next":       str(string(next)),
		":updated_at": str(formatTime(now)),
	}
	if finalValue > 0 {
		expr += ", valor_final_transportadora = :final"
		vals[":final"] = num(finalValue)
	}
	return r.update(ctx, id, []entities.QuoteStatus{expected}, "", expr, vals,
		map[string]string{"#doc": string(docType), "#updated_at": "updated_at"},
	)
}

func (r *QuoteDynamoRepository) RegisterTracking(ctx context.Context, id, url, code string, now time.Time) (entities.Quote, error) {
	expr := "SET #updated_at = :updated_at"
	vals := map[string]types.AttributeValue{":updated_at": str(formatTime(now))}
	if url != "" {
		expr += ", url_rastreamento = :url"
		vals[":url"] = str(url)
	}
	if code != "" {
		expr += ", codigo_rastreio = :code"
		vals[":code"] = str(code)
	}
	return r.update(ctx, id, entities.DocumentableQuoteStatuses, "", expr, vals,
		map[string]string{"#updated_at": "updated_at"},
	)
}

func (r *QuoteDynamoRepository) ReportDelay(ctx context.Context, id, reason string, newDate, now time.Time) (entities.Quote, error) {
	expr := "SET motivo_atraso = :reason, atraso_informado = :true, #updated_at = :updated_at"
	vals := map[string]types.AttributeValue{
		":reason":     str(reason),
		":true":       boolean(true),
		":updated_at": str(formatTime(now)),
	}
	if !newDate.IsZero() {
		expr += ", data_entrega = :new_date"
		vals[":new_date"] = str(formatTime(newDate))
	}
	return r.update(ctx, id, entities.DocumentableQuoteStatuses, "", expr, vals,
		map[string]string{"#updated_at": "updated_at"},
	)
}

// finalizeUpdate is the transactional write that closes a delivery. It is
// guarded by the status the caller read, so a retried finalize cannot apply twice.
func finalizeUpdate(table string, cmd interfaces.FinalizeCommand) types.TransactWriteItem {
	ts := formatTime(cmd.Now)
	return types.TransactWriteItem{
		Update: &types.Update{
			TableName:           aws.String(table),
			Key:                 idKey(cmd.QuoteID),
			ConditionExpression: aws.String("attribute_exists(#id) AND #status = :expected"),
			UpdateExpression:    aws.String("SET #status = :next, documento_canhoto = :proof, data_entrega_realizada = :ts, updated_at = :ts"),
			ExpressionAttributeNames: map[string]string{
				"#id":     "id",
				"#status": "status",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":expected": str(string(cmd.ExpectedStatus)),
				":next":     str(string(entities.QuoteStatusFinalizada)),
				":proof":    str(cmd.ProofURL),
				":ts":       str(ts),
			},
		},
	}
}

// update applies updateExpr when the item exists, its status is one of from
// and the optional extra condition holds. A failed condition yields a zero Quote.
func (r *QuoteDynamoRepository) update(
	ctx context.Context,
	id string,
	from []entities.QuoteStatus,
	extra string,
	updateExpr string,
	values map[string]types.AttributeValue,
	names map[string]string,
) (entities.Quote, error) {
	statusNames, statusValues, in := statusSet(from)
	cond := "attribute_exists(#id) AND " + in
	if extra != "" {
		cond += " AND " + extra
	}
	for k, v := range statusValues {
		values[k] = v
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       idKey(id),
		ConditionExpression:       aws.String(cond),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(mergeNames(names, statusNames), map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.Quote{}, nil
		}
		return entities.Quote{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Quote{}, nil
	}
	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

// statusSet renders "#status IN (:s0, :s1, ...)" for a condition or filter.
func statusSet(set []entities.QuoteStatus) (map[string]string, map[string]types.AttributeValue, string) {
	values := make(map[string]types.AttributeValue, len(set))
	keys := make([]string, 0, len(set))
	for _, s := range set {
		k := ":st_" + string(s)
		keys = append(keys, k)
		values[k] = str(string(s))
	}
	return map[string]string{"#status": "status"}, values, "#status IN (" + strings.Join(keys, ", ") + ")"
}

func toAddressItem(a entities.Address) addressItem {
	return addressItem(a)
}

func toQuoteItem(q entities.Quote) quoteItem {
	docs := make(map[string]documentItem, len(q.Documentos))
	for k, d := range q.Documentos {
		docs[string(k)] = documentItem{Codigo: d.Codigo, URL: d.URL, Registrado: d.Registrado}
	}
	return quoteItem{
		ID:                         q.ID,
		Numero:                     q.Numero,
		UserID:                     q.UserID,
		Titulo:                     q.Titulo,
		Descricao:                  q.Descricao,
		Observacoes:                q.Observacoes,
		Status:                     string(q.Status),
		DataHoraFim:                formatTime(q.DataHoraFim),
		Coleta:                     toAddressItem(q.Coleta),
		DataColeta:                 formatTime(q.DataColeta),
		Entrega:                    toAddressItem(q.Entrega),
		DataEntrega:                formatTime(q.DataEntrega),
		Peso:                       q.Peso,
		ValorEstimado:              q.ValorEstimado,
		RespostaSelecionadaID:      q.RespostaSelecionadaID,
		TransportadorID:            q.TransportadorID,
		ValorFinalTransportadora:   q.ValorFinalTransportadora,
		StatusPagamento:            string(q.StatusPagamento),
		AutorizadoColeta:           q.AutorizadoColeta,
		MotivoBloqueioColeta:       q.MotivoBloqueioColeta,
		MetodosPagamento:           paymentMethodsItem(q.MetodosPagamento),
		RequerPagamentoObrigatorio: q.RequerPagamentoObrigatorio,
		PagamentoConfirmadoEm:      formatTime(q.PagamentoConfirmadoEm),
		CodigoConfirmacaoColeta:    q.CodigoConfirmacaoColeta,
		DataColetaRealizada:        formatTime(q.DataColetaRealizada),
		Documentos:                 docs,
		URLRastreamento:            q.URLRastreamento,
		CodigoRastreio:             q.CodigoRastreio,
		MotivoAtraso:               q.MotivoAtraso,
		AtrasoInformado:            q.AtrasoInformado,
		DocumentoCanhoto:           q.DocumentoCanhoto,
		DataEntregaRealizada:       formatTime(q.DataEntregaRealizada),
		CreatedAt:                  formatTime(q.CreatedAt),
		UpdatedAt:                  formatTime(q.UpdatedAt),
	}
}

func fromQuoteItem(it quoteItem) entities.Quote {
	var docs map[entities.DocumentType]entities.TransportDocument
	if len(it.Documentos) > 0 {
		docs = make(map[entities.DocumentType]entities.TransportDocument, len(it.Documentos))
		for k, d := range it.Documentos {
			docs[entities.DocumentType(k)] = entities.TransportDocument{Codigo: d.Codigo, URL: d.URL, Registrado: d.Registrado}
		}
	}
	return entities.Quote{
		ID:                         it.ID,
		Numero:                     it.Numero,
		UserID:                     it.UserID,
		Titulo:                     it.Titulo,
		Descricao:                  it.Descricao,
		Observacoes:                it.Observacoes,
		Status:                     entities.QuoteStatus(it.Status),
		DataHoraFim:                parseTime(it.DataHoraFim),
		Coleta:                     entities.Address(it.Coleta),
		DataColeta:                 parseTime(it.DataColeta),
		Entrega:                    entities.Address(it.Entrega),
		DataEntrega:                parseTime(it.DataEntrega),
		Peso:                       it.Peso,
		ValorEstimado:              it.ValorEstimado,
		RespostaSelecionadaID:      it.RespostaSelecionadaID,
		TransportadorID:            it.TransportadorID,
		ValorFinalTransportadora:   it.ValorFinalTransportadora,
		StatusPagamento:            entities.PaymentState(it.StatusPagamento),
		AutorizadoColeta:           it.AutorizadoColeta,
		MotivoBloqueioColeta:       it.MotivoBloqueioColeta,
		MetodosPagamento:           entities.PaymentMethods(it.MetodosPagamento),
		RequerPagamentoObrigatorio: it.RequerPagamentoObrigatorio,
		PagamentoConfirmadoEm:      parseTime(it.PagamentoConfirmadoEm),
		CodigoConfirmacaoColeta:    it.CodigoConfirmacaoColeta,
		DataColetaRealizada:        parseTime(it.DataColetaRealizada),
		Documentos:                 docs,
		URLRastreamento:            it.URLRastreamento,
		CodigoRastreio:             it.CodigoRastreio,
		MotivoAtraso:               it.MotivoAtraso,
		AtrasoInformado:            it.AtrasoInformado,
		DocumentoCanhoto:           it.DocumentoCanhoto,
		DataEntregaRealizada:       parseTime(it.DataEntregaRealizada),
		CreatedAt:                  parseTime(it.CreatedAt),
		UpdatedAt:                  parseTime(it.UpdatedAt),
	}
}
