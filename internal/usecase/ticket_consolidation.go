package usecase

import (
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"sorteios_api/internal/domain/entities"
)

// ConsolidateTickets merges a buyer's raw purchase rows into one record per raffle.
//
// Every row must belong to buyerUserID; a single foreign row rejects the whole
// batch with ErrTicketOwnershipViolation. Amounts and ticket counts are summed,
// ticket numbers are unioned, the winning number is taken from whichever row
// carries one, and the latest purchase decides purchase date,
// status and transaction id. Equal purchase dates are resolved by the greater
// transaction id so the result does not depend on row order.
//
// The result is sorted by purchase date desc, then raffle id desc.
func ConsolidateTickets(rows []entities.RawTicketRow, buyerUserID string) ([]entities.ConsolidatedTicket, error) {
	buyerUserID = strings.TrimSpace(buyerUserID)
	if buyerUserID == "" {
		return nil, ErrInvalidBuyerUserID
	}

	byRaffle := make(map[string]*consolidationState, len(rows))
	for _, row := range rows {
		if row.BuyerUserID != buyerUserID {
			log.Printf("[ticket][consolidate] ownership violation transaction_id=%s raffle_id=%s expected_buyer=%s found_buyer=%s",
				row.TransactionID, row.RaffleID, buyerUserID, row.BuyerUserID)
			return nil, ErrTicketOwnershipViolation
		}

		numbers := flattenTicketNumbers(row.PurchasedNumbers)

		st, ok := byRaffle[row.RaffleID]
		if !ok {
			byRaffle[row.RaffleID] = newConsolidationState(row, numbers)
			continue
		}

		st.ticket.Value += row.Value
		st.ticket.TicketCount += row.TicketCount
		st.addNumbers(numbers)
		if st.ticket.WinningNumber == nil && row.WinningNumber != nil {
			st.ticket.WinningNumber = row.WinningNumber
		}
		if isLaterPurchase(row, st.ticket) {
			st.ticket.PurchaseDate = row.PurchaseDate
			st.ticket.Status = entities.NormalizePaymentStatus(row.RawStatus)
			st.ticket.TransactionID = row.TransactionID
		}
	}

	out := make([]entities.ConsolidatedTicket, 0, len(byRaffle))
	for _, st := range byRaffle {
		t := st.ticket
		t.IsWinner = t.WinningNumber != nil && st.seen[strings.TrimSpace(*t.WinningNumber)]
		out = append(out, t)
	}
	sortConsolidatedTickets(out)
	return out, nil
}

type consolidationState struct {
	ticket entities.ConsolidatedTicket
	seen   map[string]bool
}

func newConsolidationState(row entities.RawTicketRow, numbers []string) *consolidationState {
	st := &consolidationState{
		ticket: entities.ConsolidatedTicket{
			RaffleID:         row.RaffleID,
			RaffleTitle:      row.RaffleTitle,
			RaffleImageURL:   row.RaffleImageURL,
			PurchaseDate:     row.PurchaseDate,
			Status:           entities.NormalizePaymentStatus(row.RawStatus),
			TransactionID:    row.TransactionID,
			Value:            row.Value,
			TicketCount:      row.TicketCount,
			PurchasedNumbers: make([]string, 0, len(numbers)),
			ProgressPctMoney: clampPercent(row.ProgressPctMoney),
			DrawDate:         row.DrawDate,
			GoalAmount:       row.GoalAmount,
			AmountRaised:     row.AmountRaised,
			WinningNumber:    row.WinningNumber,
		},
		seen: make(map[string]bool, len(numbers)),
	}
	st.addNumbers(numbers)
	return st
}

func (st *consolidationState) addNumbers(numbers []string) {
	for _, n := range numbers {
		if st.seen[n] {
			continue
		}
		st.seen[n] = true
		st.ticket.PurchasedNumbers = append(st.ticket.PurchasedNumbers, n)
	}
}

func isLaterPurchase(row entities.RawTicketRow, current entities.ConsolidatedTicket) bool {
	if row.PurchaseDate.After(current.PurchaseDate) {
		return true
	}
	return row.PurchaseDate.Equal(current.PurchaseDate) && row.TransactionID > current.TransactionID
}

// flattenTicketNumbers walks a ragged collection and keeps non-empty strings
// in order of appearance.
func flattenTicketNumbers(raw []any) []string {
	out := make([]string, 0, len(raw))
	var walk func(v any)
	walk = func(v any) {
		switch x := v.(type) {
		case string:
			if s := strings.TrimSpace(x); s != "" {
				out = append(out, s)
			}
		case []any:
			for _, item := range x {
				walk(item)
			}
		case []string:
			for _, item := range x {
				walk(item)
			}
		}
	}
	for _, v := range raw {
		walk(v)
	}
	return out
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func sortConsolidatedTickets(items []entities.ConsolidatedTicket) {
	sort.Slice(items, func(i, j int) bool {
		return ticketSortsBefore(items[i].PurchaseDate, items[i].RaffleID, items[j].PurchaseDate, items[j].RaffleID)
	})
}

// ticketSortsBefore reports whether (aDate, aID) sorts before (bDate, bID) in the
// descending listing order.
func ticketSortsBefore(aDate time.Time, aID string, bDate time.Time, bID string) bool {
	if c := aDate.Compare(bDate); c != 0 {
		return c > 0
	}
	return aID > bID
}
