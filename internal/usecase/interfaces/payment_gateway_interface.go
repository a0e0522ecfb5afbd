package interfaces

import (
	"context"
	"errors"
	"fmt"

	"sorteios_api/internal/domain/entities"
)

var ErrProviderPaymentNotFound = errors.New("provider payment not found")

// IPaymentGateway abstracts external payment providers (e.g. Mercado Pago, Asaas).
//
// The service only reads payment state back from the provider to reconcile the
// local record. Each provider speaks its own status vocabulary, exposed through
// StatusTable so the use case can normalize it.
type IPaymentGateway interface {
	Name() string
	GetPayment(ctx context.Context, providerPaymentID string) (entities.ProviderPayment, error)
	StatusTable() entities.StatusTable
}

// ProviderError carries the HTTP status and the description returned by a
// payment provider. A 404 matches ErrProviderPaymentNotFound.
type ProviderError struct {
	Provider    string
	StatusCode  int
	Description string
}

func (e *ProviderError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("%s: provider returned status %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s: provider returned status %d: %s", e.Provider, e.StatusCode, e.Description)
}

func (e *ProviderError) Is(target error) bool {
	return target == ErrProviderPaymentNotFound && e.StatusCode == 404
}
