package response

import (
	"time"

	"sorteios_api/internal/domain/entities"
	"sorteios_api/internal/usecase"
)

type ReconcileResponse struct {
	PaymentID      string    `json:"paymentId"`
	Status         string    `json:"status"`
	Provider       string    `json:"provider"`
	ProviderStatus string    `json:"providerStatus"`
	UpdatedAt      time.Time `json:"updatedAt"`
	Changed        bool      `json:"changed"`
}

func FromReconciliation(r usecase.ReconciliationResult) ReconcileResponse {
	return ReconcileResponse{
		PaymentID:      r.PaymentID,
		Status:         string(r.Status),
		Provider:       r.Provider,
		ProviderStatus: r.ProviderStatus,
		UpdatedAt:      r.UpdatedAt,
		Changed:        r.Changed,
	}
}

type PaymentResponse struct {
	ID             string    `json:"id"`
	TransactionID  string    `json:"transaction_id"`
	Provider       string    `json:"provider"`
	Status         string    `json:"status"`
	ProviderStatus string    `json:"provider_status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	ProviderPayloadRaw string                 `json:"provider_payload_raw,omitempty"`
	ProviderPayload    map[string]interface{} `json:"provider_payload,omitempty"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                 p.ID,
		TransactionID:      p.TransactionID,
		Provider:           p.Provider,
		Status:             string(p.Status),
		ProviderStatus:     p.ProviderStatus,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
		ProviderPayloadRaw: string(p.ProviderPayloadRaw),
		ProviderPayload:    p.ProviderPayload,
	}
}

type WebhookResponse struct {
	Outcome string `json:"outcome"`
}
