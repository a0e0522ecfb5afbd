package interfaces

import (
	"context"
	"sorteios_api/internal/domain/entities"
)

// ITicketPurchaseRepository abstracts DynamoDB reads of ticket purchase rows.
//
// ListByBuyerUserID returns every row owned by the buyer, most recent first.
// Rows are read-only for this service.

type ITicketPurchaseRepository interface {
	ListByBuyerUserID(ctx context.Context, buyerUserID string) ([]entities.RawTicketRow, error)
}
