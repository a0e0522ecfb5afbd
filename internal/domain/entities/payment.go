package entities

import (
	"encoding/json"
	"time"
)

// Payment is the local payment record persisted by the service.
//
// Storage model (DynamoDB):
//   - PK: id (provider payment id)
//   - GSI1 (transaction_id-index): transaction_id
//   - GSI2 (status-index): status, sorted by last_reconciled_at
//
// Provider payload:
//   - ProviderPayloadRaw keeps the last provider body (JSON) seen by reconciliation.
//   - ProviderPayload is the parsed representation, useful for querying/debugging.
type Payment struct {
	ID             string        `json:"id"`
	TransactionID  string        `json:"transaction_id"`
	Provider       string        `json:"provider"`
	Status         PaymentStatus `json:"status"`
	ProviderStatus string        `json:"provider_status"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`

	// LastReconciledAt moves on every reconciliation run, including runs that
	// leave the status unchanged. It defaults to CreatedAt.
	LastReconciledAt time.Time `json:"last_reconciled_at"`

	ProviderPayloadRaw json.RawMessage        `json:"provider_payload_raw,omitempty"`
	ProviderPayload    map[string]interface{} `json:"provider_payload,omitempty"`
}

// ProviderPayment is the state of a payment as reported by the payment provider.
type ProviderPayment struct {
	ID           string
	Status       string
	StatusDetail string
	UpdatedAt    time.Time
	Raw          json.RawMessage
}

// PaymentStatusUpdate is what reconciliation writes over a stored payment.
type PaymentStatusUpdate struct {
	Status             PaymentStatus
	ProviderStatus     string
	UpdatedAt          time.Time
	ProviderPayloadRaw json.RawMessage
	ProviderPayload    map[string]interface{}
}

// PaymentStatusChangedEvent is published after reconciliation moves a payment status.
type PaymentStatusChangedEvent struct {
	EventID        string        `json:"event_id"`
	PaymentID      string        `json:"payment_id"`
	TransactionID  string        `json:"transaction_id"`
	Provider       string        `json:"provider"`
	PreviousStatus PaymentStatus `json:"previous_status"`
	Status         PaymentStatus `json:"status"`
	ProviderStatus string        `json:"provider_status"`
	OccurredAt     time.Time     `json:"occurred_at"`
}
