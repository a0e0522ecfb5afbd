package request

import (
	"encoding/json"
	"strconv"
	"strings"
)

type ReconcilePaymentRequest struct {
	ProviderPaymentID string `json:"providerPaymentId" binding:"required"`
}

// PaymentWebhookRequest accepts both notification shapes:
// Asaas sends {"payment":{"id":...}} and Mercado Pago sends {"data":{"id":...}}.
// Ids may arrive as JSON strings or numbers.
type PaymentWebhookRequest struct {
	Event   string         `json:"event,omitempty"`
	Action  string         `json:"action,omitempty"`
	Payment *webhookObject `json:"payment,omitempty"`
	Data    *webhookObject `json:"data,omitempty"`
}

type webhookObject struct {
	ID json.RawMessage `json:"id"`
}

func (r PaymentWebhookRequest) ResolvePaymentID() string {
	for _, obj := range []*webhookObject{r.Payment, r.Data} {
		if obj == nil {
			continue
		}
		if id := rawID(obj.ID); id != "" {
			return id
		}
	}
	return ""
}

func rawID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if i, err := n.Int64(); err == nil {
			return strconv.FormatInt(i, 10)
		}
	}
	return ""
}
