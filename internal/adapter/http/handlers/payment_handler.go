package handlers

import (
	"errors"
	"log"
	"net/http"

	request "sorteios_api/internal/adapter/http/dto/request"
	response "sorteios_api/internal/adapter/http/dto/response"
	"sorteios_api/internal/usecase"
	"sorteios_api/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidPaymentRequest = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)

// PaymentHandler exposes payment lookups, on-demand reconciliation and the
// provider notification endpoint.

type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
}

func NewPaymentHandler(uc usecase.IPaymentUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc}
}

// Reconcile re-reads a payment from the provider and applies the reported status.
func (h *PaymentHandler) Reconcile(c *gin.Context) {
	var payload request.ReconcilePaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[payment][handler] reconcile invalid payload err=%v", err)
		c.JSON(errInvalidPaymentRequest.HTTPStatus, errInvalidPaymentRequest.ToHTTPError())
		return
	}

	res, err := h.usecase.Reconcile(c.Request.Context(), payload.ProviderPaymentID)
	if err != nil {
		log.Printf("[payment][handler] reconcile failed provider_payment_id=%s err=%v", payload.ProviderPaymentID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] reconcile success provider_payment_id=%s status=%s changed=%t", res.PaymentID, res.Status, res.Changed)

	c.JSON(http.StatusOK, response.FromReconciliation(res))
}

func (h *PaymentHandler) GetPayment(c *gin.Context) {
	paymentID := c.Param("payment_id")
	log.Printf("[payment][handler] get start payment_id=%s", paymentID)

	p, err := h.usecase.GetByID(c.Request.Context(), paymentID)
	if err != nil {
		log.Printf("[payment][handler] get failed payment_id=%s err=%v", paymentID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayment(p))
}

// GetLatestByTransactionID returns the most recently updated payment of a transaction.
func (h *PaymentHandler) GetLatestByTransactionID(c *gin.Context) {
	transactionID := c.Param("transaction_id")
	log.Printf("[payment][handler] get-by-transaction start transaction_id=%s", transactionID)

	payments, err := h.usecase.ListByTransactionID(c.Request.Context(), transactionID)
	if err != nil {
		log.Printf("[payment][handler] get-by-transaction failed transaction_id=%s err=%v", transactionID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	if len(payments) == 0 {
		log.Printf("[payment][handler] get-by-transaction not-found transaction_id=%s", transactionID)
		appErr := pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	latest := payments[0]
	for _, p := range payments[1:] {
		if p.UpdatedAt.After(latest.UpdatedAt) {
			latest = p
		}
	}
	log.Printf("[payment][handler] get-by-transaction success transaction_id=%s payment_id=%s status=%s", transactionID, latest.ID, latest.Status)

	c.JSON(http.StatusOK, response.FromPayment(latest))
}

// Webhook handles provider notifications. The body only identifies the payment;
// its status is always re-read from the provider.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	var payload request.PaymentWebhookRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[payment][webhook] invalid payload err=%v", err)
		c.JSON(errInvalidPaymentRequest.HTTPStatus, errInvalidPaymentRequest.ToHTTPError())
		return
	}

	paymentID := payload.ResolvePaymentID()
	if paymentID == "" {
		log.Printf("[payment][webhook] notification without payment id event=%q action=%q", payload.Event, payload.Action)
		c.JSON(http.StatusOK, response.WebhookResponse{Outcome: string(usecase.WebhookIgnored)})
		return
	}

	outcome, err := h.usecase.HandleWebhook(c.Request.Context(), paymentID)
	if err != nil {
		// A non-2xx answer makes the provider retry the notification later.
		log.Printf("[payment][webhook] reconcile failed provider_payment_id=%s err=%v", paymentID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][webhook] handled provider_payment_id=%s outcome=%s", paymentID, outcome)

	c.JSON(http.StatusOK, response.WebhookResponse{Outcome: string(outcome)})
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidProviderPaymentID), errors.Is(err, usecase.ErrInvalidTransactionID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrReconciliationInProgress):
		return pkg.NewDomainErrorSimple("RECONCILIATION_IN_PROGRESS", "Payment reconciliation already in progress", http.StatusConflict)
	case errors.Is(err, usecase.ErrProviderTimeout):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_TIMEOUT", "Payment provider timeout", http.StatusGatewayTimeout)
	case errors.Is(err, usecase.ErrProviderPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_NOT_FOUND", "Payment not found at provider", http.StatusBadGateway).
			WithDetails(usecase.ProviderDescription(err))
	case errors.Is(err, usecase.ErrProviderUnavailable):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_ERROR", "Payment provider error", http.StatusBadGateway).
			WithDetails(usecase.ProviderDescription(err))
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured):
		return pkg.NewDomainError("PAYMENT_PROVIDER_NOT_CONFIGURED", "Payment provider not configured", err, http.StatusInternalServerError)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
