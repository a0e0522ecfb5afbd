package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"sorteios_api/internal/domain/entities"
	"sorteios_api/internal/usecase/interfaces"
)

const (
	AsaasProviderName     = "asaas"
	DefaultAsaasBaseURL   = "https://api.asaas.com/v3"
	asaasMaxResponseBytes = 1 << 20
)

var ErrMissingAsaasAPIKey = errors.New("missing ASAAS_API_KEY")

// asaasStatusTable maps Asaas payment statuses. Overdue, dunning, refund and
// chargeback requests are still open at the provider and stay pending; a
// pending report never overwrites a stored paid or settled payment.
var asaasStatusTable = entities.StatusTable{
	"pending":                      entities.PaymentStatusPending,
	"awaiting_risk_analysis":       entities.PaymentStatusPending,
	"overdue":                      entities.PaymentStatusPending,
	"dunning_requested":            entities.PaymentStatusPending,
	"refund_requested":             entities.PaymentStatusPending,
	"refund_in_progress":           entities.PaymentStatusPending,
	"chargeback_requested":         entities.PaymentStatusPending,
	"chargeback_dispute":           entities.PaymentStatusPending,
	"awaiting_chargeback_reversal": entities.PaymentStatusPending,
	"confirmed":                    entities.PaymentStatusPaid,
	"received":                     entities.PaymentStatusSettled,
	"received_in_cash":             entities.PaymentStatusSettled,
	"dunning_received":             entities.PaymentStatusSettled,
	"refunded":                     entities.PaymentStatusRefunded,
}

type asaasPayment struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	DateCreated string `json:"dateCreated"`
	PaymentDate string `json:"paymentDate"`
}

type asaasErrorBody struct {
	Errors []struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"errors"`
}

// AsaasGateway reads payments from the Asaas REST API.
type AsaasGateway struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

var _ interfaces.IPaymentGateway = (*AsaasGateway)(nil)

func NewAsaasGateway(baseURL, apiKey string, httpClient *http.Client) (*AsaasGateway, error) {
	if strings.TrimSpace(apiKey) == "" {
		log.Printf("[payment][gateway] missing ASAAS_API_KEY")
		return nil, ErrMissingAsaasAPIKey
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultAsaasBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	log.Printf("[payment][gateway] Asaas client initialized base_url=%s", baseURL)
	return &AsaasGateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}, nil
}

func (g *AsaasGateway) Name() string { return AsaasProviderName }

func (g *AsaasGateway) StatusTable() entities.StatusTable { return asaasStatusTable }

func (g *AsaasGateway) GetPayment(ctx context.Context, providerPaymentID string) (entities.ProviderPayment, error) {
	endpoint := g.baseURL + "/payments/" + url.PathEscape(providerPaymentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return entities.ProviderPayment{}, err
	}
	req.Header.Set("access_token", g.apiKey)
	req.Header.Set("Accept", "application/json")

	log.Printf("[payment][gateway] get start provider=%s provider_payment_id=%s", AsaasProviderName, providerPaymentID)
	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Printf("[payment][gateway] http get failed provider=%s provider_payment_id=%s err=%v", AsaasProviderName, providerPaymentID, err)
		return entities.ProviderPayment{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, asaasMaxResponseBytes))
	if err != nil {
		return entities.ProviderPayment{}, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		perr := &interfaces.ProviderError{
			Provider:    AsaasProviderName,
			StatusCode:  resp.StatusCode,
			Description: asaasErrorDescription(body),
		}
		log.Printf("[payment][gateway] get failed provider=%s provider_payment_id=%s status=%d description=%q",
			AsaasProviderName, providerPaymentID, resp.StatusCode, perr.Description)
		return entities.ProviderPayment{}, perr
	}

	var p asaasPayment
	if err := json.Unmarshal(body, &p); err != nil {
		log.Printf("[payment][gateway] response unmarshal failed provider=%s err=%v", AsaasProviderName, err)
		return entities.ProviderPayment{}, fmt.Errorf("decode asaas payment: %w", err)
	}
	log.Printf("[payment][gateway] get success provider=%s provider_payment_id=%s provider_status=%s", AsaasProviderName, p.ID, p.Status)

	return entities.ProviderPayment{
		ID:        p.ID,
		Status:    p.Status,
		UpdatedAt: time.Now().UTC(),
		Raw:       json.RawMessage(body),
	}, nil
}

func asaasErrorDescription(body []byte) string {
	var eb asaasErrorBody
	if err := json.Unmarshal(body, &eb); err == nil && len(eb.Errors) > 0 {
		parts := make([]string, 0, len(eb.Errors))
		for _, e := range eb.Errors {
			if e.Description != "" {
				parts = append(parts, e.Description)
			}
		}
		return strings.Join(parts, "; ")
	}
	return strings.TrimSpace(string(body))
}
