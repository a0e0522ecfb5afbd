package entities

import "time"

// RawTicketRow is one (transaction, raffle) pairing as stored by the purchase flow.
//
// PurchasedNumbers is ragged: it may nest lists and carry nulls or non-string
// entries written by older clients.
type RawTicketRow struct {
	RaffleID         string
	RaffleTitle      string
	RaffleImageURL   *string
	PurchaseDate     time.Time
	RawStatus        string
	Value            float64
	TicketCount      int
	PurchasedNumbers []any
	ProgressPctMoney float64
	DrawDate         *time.Time
	TransactionID    string
	BuyerUserID      string
	GoalAmount       float64
	AmountRaised     float64
	WinningNumber    *string
}

// ConsolidatedTicket is the per-raffle view of a buyer's purchases. It only lives
// for the duration of a request and is never persisted.
type ConsolidatedTicket struct {
	RaffleID         string        `json:"raffleId"`
	RaffleTitle      string        `json:"raffleTitle"`
	RaffleImageURL   *string       `json:"raffleImageUrl"`
	PurchaseDate     time.Time     `json:"purchaseDate"`
	Status           PaymentStatus `json:"status"`
	TransactionID    string        `json:"transactionId"`
	Value            float64       `json:"value"`
	TicketCount      int           `json:"ticketCount"`
	PurchasedNumbers []string      `json:"purchasedNumbers"`
	ProgressPctMoney float64       `json:"progressPctMoney"`
	DrawDate         *time.Time    `json:"drawDate"`
	GoalAmount       float64       `json:"goalAmount"`
	AmountRaised     float64       `json:"amountRaised"`
	WinningNumber    *string       `json:"winningNumber"`
	IsWinner         bool          `json:"isWinner"`
}
