package repository

import (
	"encoding/json"
	"testing"
	"time"

	"sorteios_api/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func TestStatusGuardCondition(t *testing.T) {
	expr, values := statusGuardCondition([]entities.PaymentStatus{entities.PaymentStatusPending, entities.PaymentStatusPaid})
	if expr != "attribute_exists(#id) AND #status IN (:from0, :from1)" {
		t.Fatalf("unexpected condition: %s", expr)
	}
	if len(values) != 2 {
		t.Fatalf("expected 2 values, got %d", len(values))
	}
	v, ok := values[":from1"].(*types.AttributeValueMemberS)
	if !ok || v.Value != "paid" {
		t.Fatalf("unexpected :from1 value: %#v", values[":from1"])
	}
}

func TestPaymentItemRoundTrip(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 30, 0, 123, time.UTC)
	p := entities.Payment{
		ID:                 "pay-1",
		TransactionID:      "tx-1",
		Provider:           "mercadopago",
		Status:             entities.PaymentStatusPaid,
		ProviderStatus:     "approved",
		CreatedAt:          now,
		UpdatedAt:          now,
		ProviderPayloadRaw: json.RawMessage(`{"id":1}`),
		ProviderPayload:    map[string]interface{}{"id": float64(1)},
	}

	got := fromPaymentItem(toPaymentItem(p))
	if got.ID != "pay-1" || got.TransactionID != "tx-1" || got.Status != entities.PaymentStatusPaid {
		t.Fatalf("unexpected payment: %+v", got)
	}
	if !got.UpdatedAt.Equal(now) || !got.CreatedAt.Equal(now) {
		t.Fatalf("unexpected dates: %+v", got)
	}
	if !got.LastReconciledAt.Equal(now) {
		t.Fatalf("expected last_reconciled_at to default to created_at, got %v", got.LastReconciledAt)
	}
	if string(got.ProviderPayloadRaw) != `{"id":1}` {
		t.Fatalf("unexpected raw payload: %s", got.ProviderPayloadRaw)
	}
}

func TestFromPaymentItem_EmptyRawPayload(t *testing.T) {
	got := fromPaymentItem(paymentItem{ID: "pay-1", Status: "pending"})
	if got.ProviderPayloadRaw != nil {
		t.Fatalf("expected nil raw payload, got %q", got.ProviderPayloadRaw)
	}
	if !got.UpdatedAt.IsZero() {
		t.Fatalf("expected zero updated_at, got %v", got.UpdatedAt)
	}
}

func TestToPaymentItem_KeepsLastReconciledAt(t *testing.T) {
	created := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	reconciled := created.Add(6 * time.Hour)

	it := toPaymentItem(entities.Payment{ID: "pay-1", CreatedAt: created, UpdatedAt: created, LastReconciledAt: reconciled})
	if it.LastReconciledAt != "2024-01-15T16:00:00Z" {
		t.Fatalf("unexpected last_reconciled_at: %s", it.LastReconciledAt)
	}
}

func TestMarkReconciledInput(t *testing.T) {
	at := time.Date(2024, 2, 1, 8, 0, 0, 0, time.FixedZone("BRT", -3*60*60))
	in := markReconciledInput("payments", "pay-1", at)

	if *in.TableName != "payments" {
		t.Fatalf("unexpected table: %s", *in.TableName)
	}
	if *in.UpdateExpression != "SET #reconciled_at = :reconciled_at" {
		t.Fatalf("unexpected update expression: %s", *in.UpdateExpression)
	}
	if *in.ConditionExpression != "attribute_exists(#id)" {
		t.Fatalf("unexpected condition: %s", *in.ConditionExpression)
	}
	if in.ExpressionAttributeNames["#reconciled_at"] != "last_reconciled_at" {
		t.Fatalf("unexpected names: %v", in.ExpressionAttributeNames)
	}
	v, ok := in.ExpressionAttributeValues[":reconciled_at"].(*types.AttributeValueMemberS)
	if !ok || v.Value != "2024-02-01T11:00:00Z" {
		t.Fatalf("unexpected :reconciled_at value: %#v", in.ExpressionAttributeValues[":reconciled_at"])
	}
	key, ok := in.Key["id"].(*types.AttributeValueMemberS)
	if !ok || key.Value != "pay-1" {
		t.Fatalf("unexpected key: %#v", in.Key)
	}
}
