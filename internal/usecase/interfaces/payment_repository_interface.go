package interfaces

import (
	"context"
	"time"

	"sorteios_api/internal/domain/entities"
)

// IPaymentRepository abstracts DynamoDB persistence for Payment.
//
// UpdateStatus must apply the update only while the stored status is one of
// allowedFrom, atomically. When the guard rejects the write it returns the
// current record and applied=false.
//
// ListByStatus returns the least recently reconciled payments first.
// MarkReconciled only records that a reconciliation ran; it never touches status.

type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	ListByTransactionID(ctx context.Context, transactionID string) ([]entities.Payment, error)
	ListByStatus(ctx context.Context, status entities.PaymentStatus, limit int) ([]entities.Payment, error)
	MarkReconciled(ctx context.Context, id string, at time.Time) error
	UpdateStatus(ctx context.Context, id string, update entities.PaymentStatusUpdate, allowedFrom []entities.PaymentStatus) (current entities.Payment, applied bool, err error)
}
