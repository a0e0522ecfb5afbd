package interfaces

import (
	"context"
	"sorteios_api/internal/domain/entities"
)

// IPaymentEventPublisher streams payment status changes to downstream consumers
// (ticket issuing, notifications).

type IPaymentEventPublisher interface {
	PublishStatusChanged(ctx context.Context, event entities.PaymentStatusChangedEvent) error
	Close() error
}
