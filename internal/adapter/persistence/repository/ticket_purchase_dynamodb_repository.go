package repository

import (
	"context"
	"log"
	"time"

	"sorteios_api/internal/domain/entities"
	"sorteios_api/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultTicketPurchasesTableName = "ticket_purchases"
	ticketPurchasesBuyerIndex       = "buyer_user_id-index"
)

// ticketPurchaseItem is one (transaction, raffle) row written by the checkout flow.
// Raffle display fields are denormalized onto the row.
type ticketPurchaseItem struct {
	ID               string        `dynamodbav:"id"`
	TransactionID    string        `dynamodbav:"transaction_id"`
	RaffleID         string        `dynamodbav:"raffle_id"`
	RaffleTitle      string        `dynamodbav:"raffle_title"`
	RaffleImageURL   *string       `dynamodbav:"raffle_image_url,omitempty"`
	PurchaseDate     string        `dynamodbav:"purchase_date"`
	Status           string        `dynamodbav:"status"`
	Value            float64       `dynamodbav:"value"`
	TicketCount      int           `dynamodbav:"ticket_count"`
	PurchasedNumbers []interface{} `dynamodbav:"purchased_numbers"`
	ProgressPctMoney float64       `dynamodbav:"progress_pct_money"`
	DrawDate         string        `dynamodbav:"draw_date,omitempty"`
	BuyerUserID      string        `dynamodbav:"buyer_user_id"`
	GoalAmount       float64       `dynamodbav:"goal_amount"`
	AmountRaised     float64       `dynamodbav:"amount_raised"`
	WinningNumber    *string       `dynamodbav:"winning_number,omitempty"`
}

// TicketPurchaseDynamoRepository reads ticket purchase rows from DynamoDB.
//
// Table requirements:
//   - PK: id (string, "<transaction_id>#<raffle_id>")
//   - GSI: buyer_user_id-index (PK: buyer_user_id, SK: purchase_date)

type TicketPurchaseDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ITicketPurchaseRepository = (*TicketPurchaseDynamoRepository)(nil)

func NewTicketPurchaseDynamoRepository(ddb *dynamodb.Client) *TicketPurchaseDynamoRepository {
	return &TicketPurchaseDynamoRepository{
		ddb:       ddb,
		tableName: tableFromEnv("TICKET_PURCHASES_TABLE", defaultTicketPurchasesTableName),
	}
}

// ListByBuyerUserID reads every page of the buyer index, most recent purchase first.
func (r *TicketPurchaseDynamoRepository) ListByBuyerUserID(ctx context.Context, buyerUserID string) ([]entities.RawTicketRow, error) {
	paginator := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(ticketPurchasesBuyerIndex),
		KeyConditionExpression: aws.String("buyer_user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: buyerUserID},
		},
		ScanIndexForward: aws.Bool(false),
	})

	rows := make([]entities.RawTicketRow, 0)
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it ticketPurchaseItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			rows = append(rows, fromTicketPurchaseItem(it))
		}
	}
	return rows, nil
}

func fromTicketPurchaseItem(it ticketPurchaseItem) entities.RawTicketRow {
	purchaseDate, err := parseStoredTime(it.PurchaseDate)
	if err != nil {
		log.Printf("[ticket][repository] invalid purchase_date id=%s value=%q err=%v", it.ID, it.PurchaseDate, err)
	}
	var drawDate *time.Time
	if it.DrawDate != "" {
		if dt, err := parseStoredTime(it.DrawDate); err == nil {
			dt = dt.UTC()
			drawDate = &dt
		}
	}
	return entities.RawTicketRow{
		RaffleID:         it.RaffleID,
		RaffleTitle:      it.RaffleTitle,
		RaffleImageURL:   it.RaffleImageURL,
		PurchaseDate:     purchaseDate.UTC(),
		RawStatus:        it.Status,
		Value:            it.Value,
		TicketCount:      it.TicketCount,
		PurchasedNumbers: it.PurchasedNumbers,
		ProgressPctMoney: it.ProgressPctMoney,
		DrawDate:         drawDate,
		TransactionID:    it.TransactionID,
		BuyerUserID:      it.BuyerUserID,
		GoalAmount:       it.GoalAmount,
		AmountRaised:     it.AmountRaised,
		WinningNumber:    it.WinningNumber,
	}
}
