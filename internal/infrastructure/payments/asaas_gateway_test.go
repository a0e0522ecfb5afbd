package payments

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sorteios_api/internal/domain/entities"
	"sorteios_api/internal/usecase/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAsaasGateway_MissingKey(t *testing.T) {
	_, err := NewAsaasGateway("", "  ", nil)
	require.ErrorIs(t, err, ErrMissingAsaasAPIKey)
}

func TestAsaasGateway_GetPayment(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v3/payments/pay_123", r.URL.Path)
			assert.Equal(t, "key", r.Header.Get("access_token"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"object":"payment","id":"pay_123","status":"RECEIVED"}`))
		}))
		defer srv.Close()

		g, err := NewAsaasGateway(srv.URL+"/v3/", "key", srv.Client())
		require.NoError(t, err)

		p, err := g.GetPayment(context.Background(), "pay_123")
		require.NoError(t, err)
		assert.Equal(t, "pay_123", p.ID)
		assert.Equal(t, "RECEIVED", p.Status)
		assert.Equal(t, entities.PaymentStatusSettled, g.StatusTable().Map(p.Status))
		assert.JSONEq(t, `{"object":"payment","id":"pay_123","status":"RECEIVED"}`, string(p.Raw))
	})

	t.Run("not found keeps provider description", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"errors":[{"code":"invalid_action","description":"Cobranca inexistente."}]}`))
		}))
		defer srv.Close()

		g, err := NewAsaasGateway(srv.URL, "key", srv.Client())
		require.NoError(t, err)

		_, err = g.GetPayment(context.Background(), "pay_missing")
		require.Error(t, err)
		assert.True(t, errors.Is(err, interfaces.ErrProviderPaymentNotFound))

		var pe *interfaces.ProviderError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, "Cobranca inexistente.", pe.Description)
		assert.Equal(t, AsaasProviderName, pe.Provider)
	})

	t.Run("server error is not a not-found", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("upstream down"))
		}))
		defer srv.Close()

		g, err := NewAsaasGateway(srv.URL, "key", srv.Client())
		require.NoError(t, err)

		_, err = g.GetPayment(context.Background(), "pay_1")
		require.Error(t, err)
		assert.False(t, errors.Is(err, interfaces.ErrProviderPaymentNotFound))

		var pe *interfaces.ProviderError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, http.StatusInternalServerError, pe.StatusCode)
		assert.Equal(t, "upstream down", pe.Description)
	})

	t.Run("context deadline", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}))
		defer srv.Close()

		g, err := NewAsaasGateway(srv.URL, "key", srv.Client())
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err = g.GetPayment(ctx, "pay_1")
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
	})
}

func TestAsaasStatusTable_UnknownIsPending(t *testing.T) {
	g := &AsaasGateway{}
	assert.Equal(t, entities.PaymentStatusPending, g.StatusTable().Map("SOMETHING_NEW"))
	assert.Equal(t, entities.PaymentStatusPaid, g.StatusTable().Map("CONFIRMED"))
	assert.Equal(t, entities.PaymentStatusSettled, g.StatusTable().Map("RECEIVED"))
}

func TestAsaasStatusTable_OpenStatesArePending(t *testing.T) {
	g := &AsaasGateway{}
	for _, raw := range []string{"OVERDUE", "DUNNING_REQUESTED", "REFUND_REQUESTED", "REFUND_IN_PROGRESS", "CHARGEBACK_REQUESTED", "CHARGEBACK_DISPUTE", "AWAITING_CHARGEBACK_REVERSAL"} {
		assert.Equal(t, entities.PaymentStatusPending, g.StatusTable().Map(raw), raw)
	}

	// An overdue payment that is paid later must still be able to move forward.
	overdue := g.StatusTable().Map("OVERDUE")
	assert.True(t, overdue.CanTransitionTo(g.StatusTable().Map("CONFIRMED")))
	assert.True(t, overdue.CanTransitionTo(g.StatusTable().Map("RECEIVED")))
}
