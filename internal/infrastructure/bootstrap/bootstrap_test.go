package bootstrap

import (
	"testing"

	"sorteios_api/internal/infrastructure/config"
	"sorteios_api/internal/infrastructure/payments"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaymentGateway(t *testing.T) {
	t.Setenv("PAYMENT_GATEWAY_MOCK", "")
	t.Setenv("MERCADOPAGO_MOCK", "")

	t.Run("asaas", func(t *testing.T) {
		g, err := NewPaymentGateway(config.PaymentConfig{Provider: config.ProviderAsaas, AsaasAPIKey: "key"})
		require.NoError(t, err)
		assert.Equal(t, payments.AsaasProviderName, g.Name())
	})

	t.Run("mercadopago without token", func(t *testing.T) {
		g, err := NewPaymentGateway(config.PaymentConfig{Provider: config.ProviderMercadoPago})
		assert.ErrorIs(t, err, payments.ErrMissingMercadoPagoAccessToken)
		assert.Nil(t, g)
	})

	t.Run("mercadopago mock", func(t *testing.T) {
		t.Setenv("PAYMENT_GATEWAY_MOCK", "1")
		g, err := NewPaymentGateway(config.PaymentConfig{Provider: config.ProviderMercadoPago})
		require.NoError(t, err)
		assert.Equal(t, payments.MercadoPagoProviderName, g.Name())
	})

	t.Run("unknown", func(t *testing.T) {
		g, err := NewPaymentGateway(config.PaymentConfig{Provider: "paypal"})
		assert.Error(t, err)
		assert.Nil(t, g)
	})
}

func TestNewPaymentEventPublisher(t *testing.T) {
	p, err := NewPaymentEventPublisher(config.EventsConfig{Broker: config.EventBrokerNone})
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = NewPaymentEventPublisher(config.EventsConfig{Broker: config.EventBrokerKafka, KafkaBrokers: []string{"localhost:9092"}})
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.NoError(t, p.Close())

	_, err = NewPaymentEventPublisher(config.EventsConfig{Broker: "sqs"})
	assert.Error(t, err)
}
