package bootstrap

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"sorteios_api/internal/adapter/persistence/repository"
	"sorteios_api/internal/infrastructure/cache"
	"sorteios_api/internal/infrastructure/config"
	"sorteios_api/internal/infrastructure/database"
	"sorteios_api/internal/infrastructure/messaging"
	"sorteios_api/internal/infrastructure/payments"
	"sorteios_api/internal/usecase"
	"sorteios_api/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

// Container holds the use cases shared by the HTTP API and the reconciler CLI.
type Container struct {
	TicketUseCase  *usecase.TicketUseCase
	PaymentUseCase *usecase.PaymentUseCase

	redis     *redis.Client
	publisher interfaces.IPaymentEventPublisher
}

// Build connects every backing service described by cfg. Optional collaborators
// (gateway, Redis lock, event broker) are left nil when not configured, and the
// use cases degrade accordingly.
func Build(ctx context.Context, cfg *config.Config) (*Container, error) {
	ddb, err := database.ConnectDynamoDB(ctx)
	if err != nil {
		return nil, err
	}

	paymentRepo := repository.NewPaymentDynamoRepository(ddb)
	ticketRepo := repository.NewTicketPurchaseDynamoRepository(ddb)

	c := &Container{}

	gateway, err := NewPaymentGateway(cfg.Payment)
	if err != nil {
		log.Printf("[bootstrap] payment gateway not configured provider=%s err=%v", cfg.Payment.Provider, err)
		gateway = nil
	}

	var lock interfaces.IReconciliationLock
	if c.redis = cache.ConnectRedis(ctx, cache.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TLS:      cfg.Redis.TLS,
	}); c.redis != nil {
		redisLock, err := cache.NewRedisReconciliationLock(c.redis, cfg.Redis.LockTTL)
		if err != nil {
			return nil, err
		}
		lock = redisLock
	}

	c.publisher, err = NewPaymentEventPublisher(cfg.Events)
	if err != nil {
		log.Printf("[bootstrap] event publisher disabled broker=%s err=%v", cfg.Events.Broker, err)
		c.publisher = nil
	}

	c.TicketUseCase = usecase.NewTicketUseCase(ticketRepo)
	c.PaymentUseCase = usecase.NewPaymentUseCase(paymentRepo, gateway, lock, c.publisher, cfg.Payment.Timeout)
	return c, nil
}

// Close releases broker and Redis connections.
func (c *Container) Close() {
	if c.publisher != nil {
		if err := c.publisher.Close(); err != nil {
			log.Printf("[bootstrap] publisher close failed err=%v", err)
		}
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Printf("[bootstrap] redis close failed err=%v", err)
		}
	}
}

// NewPaymentGateway returns the gateway for the configured provider. A nil
// interface (never a typed nil) is returned on error.
func NewPaymentGateway(cfg config.PaymentConfig) (interfaces.IPaymentGateway, error) {
	switch cfg.Provider {
	case config.ProviderMercadoPago:
		g, err := payments.NewMercadoPagoGateway(cfg.MercadoPagoAccessToken)
		if err != nil {
			return nil, err
		}
		return g, nil
	case config.ProviderAsaas:
		g, err := payments.NewAsaasGateway(cfg.AsaasBaseURL, cfg.AsaasAPIKey, &http.Client{Timeout: cfg.Timeout})
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("unknown payment provider %q", cfg.Provider)
	}
}

// NewPaymentEventPublisher returns nil, nil when no broker is configured.
func NewPaymentEventPublisher(cfg config.EventsConfig) (interfaces.IPaymentEventPublisher, error) {
	switch cfg.Broker {
	case "", config.EventBrokerNone:
		return nil, nil
	case config.EventBrokerKafka:
		return messaging.NewKafkaPaymentEventPublisher(cfg.KafkaBrokers, cfg.KafkaTopic), nil
	case config.EventBrokerRabbitMQ:
		p, err := messaging.NewRabbitMQPaymentEventPublisher(cfg.RabbitMQURL, cfg.RabbitMQQueue)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown event broker %q", cfg.Broker)
	}
}
