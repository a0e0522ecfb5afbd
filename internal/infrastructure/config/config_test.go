package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "PAYMENT_PROVIDER", "PROVIDER_TIMEOUT", "EVENT_BROKER", "KAFKA_BROKERS", "REDIS_ADDR", "RECONCILE_SWEEP_LIMIT"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, ProviderMercadoPago, cfg.Payment.Provider)
	assert.Equal(t, 15*time.Second, cfg.Payment.Timeout)
	assert.Equal(t, EventBrokerNone, cfg.Events.Broker)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Events.KafkaBrokers)
	assert.Equal(t, "", cfg.Redis.Addr)
	assert.Equal(t, 100, cfg.Sweep.Limit)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PAYMENT_PROVIDER", "ASAAS")
	t.Setenv("PROVIDER_TIMEOUT", "5")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("REDIS_TLS", "true")
	t.Setenv("REDIS_DB", "nope")
	t.Setenv("RECONCILE_LOCK_TTL", "45s")

	cfg := Load()
	assert.Equal(t, ProviderAsaas, cfg.Payment.Provider)
	assert.Equal(t, 5*time.Second, cfg.Payment.Timeout)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Events.KafkaBrokers)
	assert.True(t, cfg.Redis.TLS)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, 45*time.Second, cfg.Redis.LockTTL)
}
