package routes

import (
	"sorteios_api/internal/adapter/http/handlers"
	"sorteios_api/internal/adapter/http/middleware"
	"sorteios_api/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

const (
	PathPayments     = "/payments"
	PathTransactions = "/transactions"
	PathWebhooks     = "/webhooks"
)

func addPaymentRoutes(rg *gin.RouterGroup, auth config.AuthConfig, paymentHandler *handlers.PaymentHandler) {
	requireAuth := middleware.RequireAuth(auth.JWTSecret)

	payments := rg.Group(PathPayments, requireAuth)
	{
		payments.POST("/reconcile", paymentHandler.Reconcile)
		payments.GET("/:payment_id", paymentHandler.GetPayment)
	}

	transactions := rg.Group(PathTransactions, requireAuth)
	{
		transactions.GET("/:transaction_id/payments", paymentHandler.GetLatestByTransactionID)
	}

	webhooks := rg.Group(PathWebhooks, middleware.RequireWebhookToken(auth.WebhookToken))
	{
		webhooks.POST("/payments", paymentHandler.Webhook)
	}
}
