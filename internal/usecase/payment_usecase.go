package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"sorteios_api/internal/domain/entities"
	"sorteios_api/internal/usecase/interfaces"

	"github.com/google/uuid"
)

const (
	DefaultProviderTimeout     = 15 * time.Second
	DefaultReconcileSweepLimit = 100
	maxReconcileSweepLimit     = 1000
)

var (
	ErrPaymentNotFound             = errors.New("payment not found")
	ErrInvalidProviderPaymentID    = errors.New("invalid provider payment id")
	ErrInvalidTransactionID        = errors.New("invalid transaction id")
	ErrPaymentGatewayNotConfigured = errors.New("payment gateway not configured")
	ErrReconciliationInProgress    = errors.New("reconciliation already in progress")
	ErrProviderUnavailable         = errors.New("payment provider unavailable")
	ErrProviderTimeout             = errors.New("payment provider timeout")
	ErrProviderPaymentNotFound     = interfaces.ErrProviderPaymentNotFound
	ErrPaymentAlreadyRegistered    = errors.New("payment already registered")
)

// ReconciliationResult is the state of a payment after a reconciliation run.
//
// Status is the stored canonical status (unchanged when the provider reported
// something the status order does not allow). ProviderStatus is what the
// provider reported on this run.
type ReconciliationResult struct {
	PaymentID      string
	Provider       string
	Status         entities.PaymentStatus
	ProviderStatus string
	UpdatedAt      time.Time
	Changed        bool
}

// ReconciliationSummary reports a sweep over pending payments. Failures are
// keyed by payment id.
type ReconciliationSummary struct {
	Checked   int
	Changed   int
	Unchanged int
	Failures  map[string]string
}

type WebhookOutcome string

const (
	WebhookReconciled WebhookOutcome = "reconciled"
	WebhookIgnored    WebhookOutcome = "ignored"
	WebhookInProgress WebhookOutcome = "in_progress"
)

// IPaymentUseCase encapsulates payment lookup and reconciliation with the provider.
//
// Reconciliation behavior:
//   - The provider is the source of truth, but the local record stays authoritative
//     until the provider answers: any provider failure leaves the stored status untouched.
//   - Runs that leave the status unchanged only move LastReconciledAt, which
//     orders the pending sweep.
//   - Stored statuses only move forward (see entities.PaymentStatus.CanTransitionTo).

type IPaymentUseCase interface {
	Reconcile(ctx context.Context, providerPaymentID string) (ReconciliationResult, error)
	ReconcilePending(ctx context.Context, limit int) (ReconciliationSummary, error)
	HandleWebhook(ctx context.Context, providerPaymentID string) (WebhookOutcome, error)
	Register(ctx context.Context, providerPaymentID, transactionID string) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	ListByTransactionID(ctx context.Context, transactionID string) ([]entities.Payment, error)
}

type PaymentUseCase struct {
	repo            interfaces.IPaymentRepository
	gateway         interfaces.IPaymentGateway
	lock            interfaces.IReconciliationLock
	publisher       interfaces.IPaymentEventPublisher
	providerTimeout time.Duration
	now             func() time.Time
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

// NewPaymentUseCase wires the reconciler. lock and publisher are optional.
// providerTimeout is capped at DefaultProviderTimeout.
func NewPaymentUseCase(
	repo interfaces.IPaymentRepository,
	gateway interfaces.IPaymentGateway,
	lock interfaces.IReconciliationLock,
	publisher interfaces.IPaymentEventPublisher,
	providerTimeout time.Duration,
) *PaymentUseCase {
	if providerTimeout <= 0 || providerTimeout > DefaultProviderTimeout {
		providerTimeout = DefaultProviderTimeout
	}
	return &PaymentUseCase{
		repo:            repo,
		gateway:         gateway,
		lock:            lock,
		publisher:       publisher,
		providerTimeout: providerTimeout,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

func (u *PaymentUseCase) Reconcile(ctx context.Context, providerPaymentID string) (ReconciliationResult, error) {
	id := strings.TrimSpace(providerPaymentID)
	log.Printf("[payment][usecase] reconcile start provider_payment_id=%q", id)
	if id == "" {
		return ReconciliationResult{}, ErrInvalidProviderPaymentID
	}
	if u.gateway == nil {
		log.Printf("[payment][usecase] gateway not configured provider_payment_id=%s", id)
		return ReconciliationResult{}, ErrPaymentGatewayNotConfigured
	}

	if u.lock != nil {
		release, acquired, err := u.lock.Acquire(ctx, id)
		switch {
		case err != nil:
			// The conditional status write still guards concurrent runs.
			log.Printf("[payment][usecase] lock unavailable, continuing unlocked provider_payment_id=%s err=%v", id, err)
		case !acquired:
			log.Printf("[payment][usecase] reconciliation already running provider_payment_id=%s", id)
			return ReconciliationResult{}, ErrReconciliationInProgress
		default:
			defer func() {
				if err := release(context.WithoutCancel(ctx)); err != nil {
					log.Printf("[payment][usecase] lock release failed provider_payment_id=%s err=%v", id, err)
				}
			}()
		}
	}

	local, err := u.repo.GetByID(ctx, id)
	if err != nil {
		log.Printf("[payment][usecase] failed loading payment provider_payment_id=%s err=%v", id, err)
		return ReconciliationResult{}, err
	}
	if local.ID == "" {
		log.Printf("[payment][usecase] payment not found provider_payment_id=%s", id)
		return ReconciliationResult{}, ErrPaymentNotFound
	}

	callCtx, cancel := context.WithTimeout(ctx, u.providerTimeout)
	defer cancel()

	log.Printf("[payment][usecase] calling payment gateway provider=%s provider_payment_id=%s", u.gateway.Name(), id)
	remote, err := u.gateway.GetPayment(callCtx, id)
	if err != nil {
		log.Printf("[payment][usecase] payment gateway failed provider_payment_id=%s err=%v", id, err)
		return ReconciliationResult{}, classifyProviderError(callCtx, err)
	}

	next := u.gateway.StatusTable().Map(remote.Status)
	log.Printf("[payment][usecase] payment gateway success provider_payment_id=%s provider_status=%s canonical=%s stored=%s",
		id, remote.Status, next, local.Status)

	result := ReconciliationResult{
		PaymentID:      local.ID,
		Provider:       u.gateway.Name(),
		Status:         local.Status,
		ProviderStatus: remote.Status,
		UpdatedAt:      local.UpdatedAt,
	}

	if !local.Status.CanTransitionTo(next) {
		if local.Status != next {
			log.Printf("[payment][usecase] transition blocked provider_payment_id=%s from=%s to=%s", id, local.Status, next)
		}
		u.markReconciled(ctx, id)
		return result, nil
	}

	update := entities.PaymentStatusUpdate{
		Status:             next,
		ProviderStatus:     remote.Status,
		UpdatedAt:          u.now(),
		ProviderPayloadRaw: remote.Raw,
	}
	if len(remote.Raw) > 0 {
		var parsed map[string]interface{}
		if err := json.Unmarshal(remote.Raw, &parsed); err != nil {
			log.Printf("[payment][usecase] provider response unmarshal failed provider_payment_id=%s err=%v", id, err)
		} else {
			update.ProviderPayload = parsed
		}
	}

	current, applied, err := u.repo.UpdateStatus(ctx, id, update, next.AllowedPredecessors())
	if err != nil {
		log.Printf("[payment][usecase] payment repository update failed provider_payment_id=%s err=%v", id, err)
		return ReconciliationResult{}, err
	}
	if !applied {
		log.Printf("[payment][usecase] concurrent update kept stored status provider_payment_id=%s stored=%s wanted=%s", id, current.Status, next)
		result.Status = current.Status
		result.UpdatedAt = current.UpdatedAt
		return result, nil
	}

	result.Status = current.Status
	result.UpdatedAt = current.UpdatedAt
	result.Changed = true
	log.Printf("[payment][usecase] reconcile success provider_payment_id=%s from=%s to=%s", id, local.Status, current.Status)

	u.publishStatusChanged(ctx, local, current)
	return result, nil
}

func (u *PaymentUseCase) markReconciled(ctx context.Context, id string) {
	if err := u.repo.MarkReconciled(ctx, id, u.now()); err != nil {
		log.Printf("[payment][usecase] mark reconciled failed provider_payment_id=%s err=%v", id, err)
	}
}

func (u *PaymentUseCase) publishStatusChanged(ctx context.Context, before, after entities.Payment) {
	if u.publisher == nil {
		return
	}
	event := entities.PaymentStatusChangedEvent{
		EventID:        uuid.NewString(),
		PaymentID:      after.ID,
		TransactionID:  after.TransactionID,
		Provider:       after.Provider,
		PreviousStatus: before.Status,
		Status:         after.Status,
		ProviderStatus: after.ProviderStatus,
		OccurredAt:     after.UpdatedAt,
	}
	// The status is already persisted; a lost event is recovered by consumers
	// reading the payment record.
	if err := u.publisher.PublishStatusChanged(ctx, event); err != nil {
		log.Printf("[payment][usecase] publish status change failed payment_id=%s event_id=%s err=%v", after.ID, event.EventID, err)
	}
}

func classifyProviderError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrProviderTimeout, err)
	}
	if errors.Is(err, ErrProviderPaymentNotFound) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
}

// ProviderDescription extracts the description a provider attached to err, if any.
func ProviderDescription(err error) string {
	var pe *interfaces.ProviderError
	if errors.As(err, &pe) {
		return pe.Description
	}
	return ""
}

func (u *PaymentUseCase) ReconcilePending(ctx context.Context, limit int) (ReconciliationSummary, error) {
	if limit <= 0 {
		limit = DefaultReconcileSweepLimit
	}
	if limit > maxReconcileSweepLimit {
		limit = maxReconcileSweepLimit
	}

	pending, err := u.repo.ListByStatus(ctx, entities.PaymentStatusPending, limit)
	if err != nil {
		log.Printf("[payment][sweep] list pending failed err=%v", err)
		return ReconciliationSummary{}, err
	}
	log.Printf("[payment][sweep] start pending=%d limit=%d", len(pending), limit)

	summary := ReconciliationSummary{Failures: map[string]string{}}
	for _, p := range pending {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.Checked++
		res, err := u.Reconcile(ctx, p.ID)
		if err != nil {
			summary.Failures[p.ID] = err.Error()
			// Failed payments rotate to the back of the queue like unchanged ones.
			if !errors.Is(err, ErrReconciliationInProgress) {
				u.markReconciled(ctx, p.ID)
			}
			continue
		}
		if res.Changed {
			summary.Changed++
		} else {
			summary.Unchanged++
		}
	}
	log.Printf("[payment][sweep] done checked=%d changed=%d unchanged=%d failed=%d",
		summary.Checked, summary.Changed, summary.Unchanged, len(summary.Failures))
	return summary, nil
}

// HandleWebhook reconciles the payment a provider notification points at.
// The notification body is never trusted for the status itself.
func (u *PaymentUseCase) HandleWebhook(ctx context.Context, providerPaymentID string) (WebhookOutcome, error) {
	_, err := u.Reconcile(ctx, providerPaymentID)
	switch {
	case err == nil:
		return WebhookReconciled, nil
	case errors.Is(err, ErrPaymentNotFound):
		log.Printf("[payment][webhook] unknown payment ignored provider_payment_id=%s", providerPaymentID)
		return WebhookIgnored, nil
	case errors.Is(err, ErrReconciliationInProgress):
		return WebhookInProgress, nil
	default:
		return "", err
	}
}

// Register backfills a local pending record for a payment created outside this
// service, so that reconciliation can pick it up.
func (u *PaymentUseCase) Register(ctx context.Context, providerPaymentID, transactionID string) (entities.Payment, error) {
	id := strings.TrimSpace(providerPaymentID)
	if id == "" {
		return entities.Payment{}, ErrInvalidProviderPaymentID
	}
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return entities.Payment{}, ErrInvalidTransactionID
	}
	if u.gateway == nil {
		return entities.Payment{}, ErrPaymentGatewayNotConfigured
	}

	existing, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Payment{}, err
	}
	if existing.ID != "" {
		log.Printf("[payment][usecase] register skipped, already exists provider_payment_id=%s", id)
		return existing, ErrPaymentAlreadyRegistered
	}

	now := u.now()
	p := entities.Payment{
		ID:            id,
		TransactionID: transactionID,
		Provider:      u.gateway.Name(),
		Status:        entities.PaymentStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	created, err := u.repo.Create(ctx, p)
	if err != nil {
		log.Printf("[payment][usecase] register failed provider_payment_id=%s err=%v", id, err)
		return entities.Payment{}, err
	}
	log.Printf("[payment][usecase] register success provider_payment_id=%s transaction_id=%s", id, transactionID)
	return created, nil
}

func (u *PaymentUseCase) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Payment{}, ErrInvalidProviderPaymentID
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	return p, nil
}

func (u *PaymentUseCase) ListByTransactionID(ctx context.Context, transactionID string) ([]entities.Payment, error) {
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return nil, ErrInvalidTransactionID
	}
	return u.repo.ListByTransactionID(ctx, transactionID)
}
