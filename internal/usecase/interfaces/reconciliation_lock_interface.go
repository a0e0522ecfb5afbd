package interfaces

import "context"

// IReconciliationLock serializes reconciliation runs for the same payment id
// across service instances. Acquire returns acquired=false when another run
// holds the lock; release must only drop a lock the caller still owns.
type IReconciliationLock interface {
	Acquire(ctx context.Context, paymentID string) (release func(context.Context) error, acquired bool, err error)
}
