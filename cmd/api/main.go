package main

import (
	_ "sorteios_api/docs"
	"sorteios_api/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Sorteios API
// @version         1.0
// @description     Buyer-facing raffle ticket listing (one entry per raffle, cursor paginated)
// @description     and reconciliation of local payment records with Mercado Pago or Asaas.
// @description     Payment statuses only move forward: pending, then paid or failed, then settled or refunded.

// @tag.name         tickets
// @tag.description  Consolidated tickets of the authenticated buyer
// @tag.name         payments
// @tag.description  Payment lookup and on-demand reconciliation
// @tag.name         webhooks
// @tag.description  Provider notifications; the status is always re-fetched from the provider

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	routes.Run()
}
