package entities

import "strings"

// PaymentStatus is the canonical status every payment and transaction vocabulary
// is normalized into.
//
// Domain notes:
//   - Unknown raw values map to pending, so an ambiguous state is never shown as
//     paid and never written off as failed.
//   - Statuses are ranked (pending < paid, failed < refunded, settled) and the
//     reconciler only moves a stored status forward.
type PaymentStatus string

const (
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusRefunded PaymentStatus = "refunded"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusSettled  PaymentStatus = "settled"
)

// AllPaymentStatuses lists the canonical statuses in rank order.
var AllPaymentStatuses = []PaymentStatus{
	PaymentStatusPending,
	PaymentStatusPaid,
	PaymentStatusFailed,
	PaymentStatusRefunded,
	PaymentStatusSettled,
}

// StatusTable maps a lower-case raw status of some vocabulary to a canonical status.
type StatusTable map[string]PaymentStatus

// Map resolves raw case-insensitively. Misses, including the empty string, are pending.
func (t StatusTable) Map(raw string) PaymentStatus {
	if s, ok := t[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s
	}
	return PaymentStatusPending
}

// TransactionStatusTable is the vocabulary of the transactions table.
var TransactionStatusTable = StatusTable{
	"paid":       PaymentStatusPaid,
	"confirmed":  PaymentStatusPaid,
	"completed":  PaymentStatusPaid,
	"pending":    PaymentStatusPending,
	"processing": PaymentStatusPending,
	"refunded":   PaymentStatusRefunded,
	"failed":     PaymentStatusFailed,
	"cancelled":  PaymentStatusFailed,
	"settled":    PaymentStatusSettled,
}

// NormalizePaymentStatus maps a transaction status string to its canonical status.
func NormalizePaymentStatus(raw string) PaymentStatus {
	return TransactionStatusTable.Map(raw)
}

// IsValid reports whether s is one of the canonical statuses.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPaid, PaymentStatusPending, PaymentStatusRefunded, PaymentStatusFailed, PaymentStatusSettled:
		return true
	}
	return false
}

func (s PaymentStatus) rank() int {
	switch s {
	case PaymentStatusPaid, PaymentStatusFailed:
		return 1
	case PaymentStatusRefunded, PaymentStatusSettled:
		return 2
	default:
		return 0
	}
}

// CanTransitionTo reports whether a stored status s may be overwritten by next.
//
// A status only moves up the rank order. A refund is the one terminal reversal
// accepted from any other status.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	if s == next || !next.IsValid() {
		return false
	}
	if next == PaymentStatusRefunded {
		return true
	}
	return next.rank() > s.rank()
}

// AllowedPredecessors returns every canonical status that may transition to s.
// Stores use it to guard conditional writes.
func (s PaymentStatus) AllowedPredecessors() []PaymentStatus {
	out := make([]PaymentStatus, 0, len(AllPaymentStatuses))
	for _, from := range AllPaymentStatuses {
		if from.CanTransitionTo(s) {
			out = append(out, from)
		}
	}
	return out
}
