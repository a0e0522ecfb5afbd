package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"sorteios_api/internal/domain/entities"
	"sorteios_api/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPaymentsTableName   = "payments"
	paymentsTransactionIDIndex = "transaction_id-index"
	paymentsStatusIndex        = "status-index"
)

type paymentItem struct {
	ID                 string                 `dynamodbav:"id"`
	TransactionID      string                 `dynamodbav:"transaction_id"`
	Provider           string                 `dynamodbav:"provider"`
	Status             string                 `dynamodbav:"status"`
	ProviderStatus     string                 `dynamodbav:"provider_status"`
	CreatedAt          string                 `dynamodbav:"created_at"`
	UpdatedAt          string                 `dynamodbav:"updated_at"`
	LastReconciledAt   string                 `dynamodbav:"last_reconciled_at"`
	ProviderPayload    map[string]interface{} `dynamodbav:"provider_payload,omitempty"`
	ProviderPayloadRaw string                 `dynamodbav:"provider_payload_raw,omitempty"`
}

// PaymentDynamoRepository persists Payment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string, provider payment id)
//   - GSI: transaction_id-index (PK: transaction_id)
//   - GSI: status-index (PK: status, SK: last_reconciled_at)
//
// Status writes are conditional on the stored status so that two reconciliations
// racing on the same payment can never move it backwards.

type PaymentDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb *dynamodb.Client) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{
		ddb:       ddb,
		tableName: tableFromEnv("PAYMENTS_TABLE", defaultPaymentsTableName),
	}
}

func (r *PaymentDynamoRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	it := toPaymentItem(p)
	av, err := attributevalue.MarshalMap(it)
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
		return entities.Payment{}, err
	}
	return p, nil
}

func (r *PaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
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

func (r *PaymentDynamoRepository) ListByTransactionID(ctx context.Context, transactionID string) ([]entities.Payment, error) {
	return r.query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsTransactionIDIndex),
		KeyConditionExpression: aws.String("transaction_id = :tid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":tid": &types.AttributeValueMemberS{Value: transactionID},
		},
	}, 0)
}

// ListByStatus returns up to limit payments in status, least recently reconciled first.
func (r *PaymentDynamoRepository) ListByStatus(ctx context.Context, status entities.PaymentStatus, limit int) ([]entities.Payment, error) {
	return r.query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsStatusIndex),
		KeyConditionExpression: aws.String("#status = :status"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(status)},
		},
		ScanIndexForward: aws.Bool(true),
	}, limit)
}

func (r *PaymentDynamoRepository) query(ctx context.Context, in *dynamodb.QueryInput, limit int) ([]entities.Payment, error) {
	items := make([]entities.Payment, 0)
	paginator := dynamodb.NewQueryPaginator(r.ddb, in)
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it paymentItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			items = append(items, fromPaymentItem(it))
			if limit > 0 && len(items) >= limit {
				return items, nil
			}
		}
	}
	return items, nil
}

func (r *PaymentDynamoRepository) UpdateStatus(
	ctx context.Context,
	id string,
	update entities.PaymentStatusUpdate,
	allowedFrom []entities.PaymentStatus,
) (entities.Payment, bool, error) {
	if len(allowedFrom) == 0 {
		current, err := r.GetByID(ctx, id)
		return current, false, err
	}

	condition, condValues := statusGuardCondition(allowedFrom)
	values := map[string]types.AttributeValue{
		":status":          &types.AttributeValueMemberS{Value: string(update.Status)},
		":provider_status": &types.AttributeValueMemberS{Value: update.ProviderStatus},
		":updated_at":      &types.AttributeValueMemberS{Value: formatStoredTime(update.UpdatedAt)},
		":reconciled_at":   &types.AttributeValueMemberS{Value: formatStoredTime(update.UpdatedAt)},
		":raw":             &types.AttributeValueMemberS{Value: string(update.ProviderPayloadRaw)},
	}
	for k, v := range condValues {
		values[k] = v
	}
	expr := "SET #status = :status, #provider_status = :provider_status, #updated_at = :updated_at, #reconciled_at = :reconciled_at, #raw = :raw"
	names := map[string]string{
		"#id":              "id",
		"#status":          "status",
		"#provider_status": "provider_status",
		"#updated_at":      "updated_at",
		"#reconciled_at":   "last_reconciled_at",
		"#raw":             "provider_payload_raw",
	}
	if update.ProviderPayload != nil {
		payload, err := attributevalue.Marshal(update.ProviderPayload)
		if err != nil {
			return entities.Payment{}, false, err
		}
		values[":payload"] = payload
		names["#payload"] = "provider_payload"
		expr += ", #payload = :payload"
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String(condition),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  names,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			current, gerr := r.GetByID(ctx, id)
			return current, false, gerr
		}
		return entities.Payment{}, false, err
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Payment{}, false, err
	}
	return fromPaymentItem(it), true, nil
}

// MarkReconciled moves last_reconciled_at so the pending sweep rotates past
// payments whose status did not change. A missing payment is not an error.
func (r *PaymentDynamoRepository) MarkReconciled(ctx context.Context, id string, at time.Time) error {
	_, err := r.ddb.UpdateItem(ctx, markReconciledInput(r.tableName, id, at))
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return nil
		}
		return err
	}
	return nil
}

func markReconciledInput(tableName, id string, at time.Time) *dynamodb.UpdateItemInput {
	return &dynamodb.UpdateItemInput{
		TableName: aws.String(tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #reconciled_at = :reconciled_at"),
		ExpressionAttributeNames: map[string]string{
			"#id":            "id",
			"#reconciled_at": "last_reconciled_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":reconciled_at": &types.AttributeValueMemberS{Value: formatStoredTime(at)},
		},
	}
}

// statusGuardCondition builds "attribute_exists(#id) AND #status IN (:from0, ...)".
func statusGuardCondition(allowedFrom []entities.PaymentStatus) (string, map[string]types.AttributeValue) {
	placeholders := make([]string, 0, len(allowedFrom))
	values := make(map[string]types.AttributeValue, len(allowedFrom))
	for i, s := range allowedFrom {
		key := fmt.Sprintf(":from%d", i)
		placeholders = append(placeholders, key)
		values[key] = &types.AttributeValueMemberS{Value: string(s)}
	}
	return "attribute_exists(#id) AND #status IN (" + strings.Join(placeholders, ", ") + ")", values
}

func toPaymentItem(p entities.Payment) paymentItem {
	reconciledAt := p.LastReconciledAt
	if reconciledAt.IsZero() {
		reconciledAt = p.CreatedAt
	}
	return paymentItem{
		ID:                 p.ID,
		TransactionID:      p.TransactionID,
		Provider:           p.Provider,
		Status:             string(p.Status),
		ProviderStatus:     p.ProviderStatus,
		CreatedAt:          formatStoredTime(p.CreatedAt),
		UpdatedAt:          formatStoredTime(p.UpdatedAt),
		LastReconciledAt:   formatStoredTime(reconciledAt),
		ProviderPayload:    p.ProviderPayload,
		ProviderPayloadRaw: string(p.ProviderPayloadRaw),
	}
}

func fromPaymentItem(it paymentItem) entities.Payment {
	createdAt, _ := parseStoredTime(it.CreatedAt)
	updatedAt, _ := parseStoredTime(it.UpdatedAt)
	reconciledAt, _ := parseStoredTime(it.LastReconciledAt)
	var raw json.RawMessage
	if it.ProviderPayloadRaw != "" {
		raw = json.RawMessage(it.ProviderPayloadRaw)
	}
	return entities.Payment{
		ID:                 it.ID,
		TransactionID:      it.TransactionID,
		Provider:           it.Provider,
		Status:             entities.PaymentStatus(it.Status),
		ProviderStatus:     it.ProviderStatus,
		CreatedAt:          createdAt,
		UpdatedAt:          updatedAt,
		LastReconciledAt:   reconciledAt,
		ProviderPayload:    it.ProviderPayload,
		ProviderPayloadRaw: raw,
	}
}
