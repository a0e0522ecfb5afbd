package payments

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"sorteios_api/internal/domain/entities"
	"sorteios_api/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
)

const MercadoPagoProviderName = "mercadopago"

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

// mercadoPagoStatusTable covers every payment status documented by Mercado Pago.
var mercadoPagoStatusTable = entities.StatusTable{
	"approved":     entities.PaymentStatusPaid,
	"pending":      entities.PaymentStatusPending,
	"authorized":   entities.PaymentStatusPending,
	"in_process":   entities.PaymentStatusPending,
	"in_mediation": entities.PaymentStatusPending,
	"rejected":     entities.PaymentStatusFailed,
	"cancelled":    entities.PaymentStatusFailed,
	"refunded":     entities.PaymentStatusRefunded,
	"charged_back": entities.PaymentStatusRefunded,
}

type MercadoPagoGateway struct {
	client     payment.Client
	mockMode   bool
	mockStatus string
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string) (*MercadoPagoGateway, error) {
	if IsPaymentGatewayMockEnabled() {
		status := strings.TrimSpace(os.Getenv("PAYMENT_GATEWAY_MOCK_STATUS"))
		if status == "" {
			status = "approved"
		}
		log.Printf("[payment][gateway] mock mode enabled provider=%s status=%s", MercadoPagoProviderName, status)
		return &MercadoPagoGateway{mockMode: true, mockStatus: status}, nil
	}

	if accessToken == "" {
		log.Printf("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.Printf("[payment][gateway] failed creating sdk config err=%v", err)
		return nil, err
	}
	log.Printf("[payment][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{client: payment.NewClient(cfg)}, nil
}

func (g *MercadoPagoGateway) Name() string { return MercadoPagoProviderName }

func (g *MercadoPagoGateway) StatusTable() entities.StatusTable { return mercadoPagoStatusTable }

func (g *MercadoPagoGateway) GetPayment(ctx context.Context, providerPaymentID string) (entities.ProviderPayment, error) {
	if g != nil && g.mockMode {
		return g.mockPayment(providerPaymentID)
	}
	if g == nil || g.client == nil {
		log.Printf("[payment][gateway] gateway not configured")
		return entities.ProviderPayment{}, ErrMercadoPagoGatewayNotConfigured
	}

	// Mercado Pago payment ids are numeric; anything else cannot exist upstream.
	id, err := strconv.Atoi(strings.TrimSpace(providerPaymentID))
	if err != nil {
		log.Printf("[payment][gateway] non numeric payment id provider_payment_id=%q", providerPaymentID)
		return entities.ProviderPayment{}, &interfaces.ProviderError{
			Provider:    MercadoPagoProviderName,
			StatusCode:  http.StatusNotFound,
			Description: "payment id must be numeric",
		}
	}

	log.Printf("[payment][gateway] get start provider_payment_id=%d", id)
	resp, err := g.client.Get(ctx, id)
	if err != nil {
		log.Printf("[payment][gateway] sdk get failed provider_payment_id=%d err=%v", id, err)
		return entities.ProviderPayment{}, classifyMercadoPagoError(ctx, err)
	}

	b, err := json.Marshal(resp)
	if err != nil {
		log.Printf("[payment][gateway] response marshal failed err=%v", err)
		return entities.ProviderPayment{}, err
	}
	log.Printf("[payment][gateway] get success provider_payment_id=%d provider_status=%s", resp.ID, resp.Status)

	updatedAt := resp.DateLastUpdated.UTC()
	if resp.DateLastUpdated.IsZero() {
		updatedAt = time.Now().UTC()
	}
	return entities.ProviderPayment{
		ID:           strconv.Itoa(resp.ID),
		Status:       resp.Status,
		StatusDetail: resp.StatusDetail,
		UpdatedAt:    updatedAt,
		Raw:          b,
	}, nil
}

func (g *MercadoPagoGateway) mockPayment(providerPaymentID string) (entities.ProviderPayment, error) {
	now := time.Now().UTC()
	raw, err := json.Marshal(map[string]any{
		"id":                providerPaymentID,
		"status":            g.mockStatus,
		"status_detail":     "mock",
		"date_last_updated": now.Format(time.RFC3339Nano),
	})
	if err != nil {
		return entities.ProviderPayment{}, err
	}
	log.Printf("[payment][gateway] mock get success provider_payment_id=%s provider_status=%s", providerPaymentID, g.mockStatus)
	return entities.ProviderPayment{
		ID:           providerPaymentID,
		Status:       g.mockStatus,
		StatusDetail: "mock",
		UpdatedAt:    now,
		Raw:          raw,
	}, nil
}

// classifyMercadoPagoError turns SDK errors into ProviderError. The SDK only
// exposes the upstream status inside the error text.
func classifyMercadoPagoError(ctx context.Context, err error) error {
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	msg := err.Error()
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "404") || strings.Contains(lower, "not found") || strings.Contains(lower, "not_found"):
		return &interfaces.ProviderError{Provider: MercadoPagoProviderName, StatusCode: http.StatusNotFound, Description: msg}
	case strings.Contains(lower, "401") || strings.Contains(lower, "unauthorized"):
		return &interfaces.ProviderError{Provider: MercadoPagoProviderName, StatusCode: http.StatusUnauthorized, Description: msg}
	case strings.Contains(lower, "400") || strings.Contains(lower, "bad request"):
		return &interfaces.ProviderError{Provider: MercadoPagoProviderName, StatusCode: http.StatusBadRequest, Description: msg}
	default:
		return &interfaces.ProviderError{Provider: MercadoPagoProviderName, StatusCode: http.StatusBadGateway, Description: msg}
	}
}

func IsPaymentGatewayMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}
