package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"sorteios_api/internal/domain/entities"
	"sorteios_api/internal/usecase/interfaces"
)

const (
	DefaultTicketPageLimit = 20
	MaxTicketPageLimit     = 50

	ticketCursorSeparator = "|"
)

var (
	ErrInvalidBuyerUserID       = errors.New("invalid buyer user id")
	ErrInvalidTicketCursor      = errors.New("invalid ticket cursor")
	ErrInvalidTicketLimit       = errors.New("invalid ticket limit")
	ErrTicketOwnershipViolation = errors.New("ticket ownership violation")
)

// TicketListQuery is the input of the "my tickets" listing.
//
// Limit 0 means the default page size; values above MaxTicketPageLimit are clamped.
type TicketListQuery struct {
	BuyerUserID string
	Cursor      string
	Limit       int
	WonOnly     bool
}

// TicketPage is one page of consolidated tickets. NextCursor is nil on the last page.
type TicketPage struct {
	Items      []entities.ConsolidatedTicket
	NextCursor *string
}

// TicketCursor marks the last consolidated ticket a client has seen.
type TicketCursor struct {
	PurchaseDate time.Time
	RaffleID     string
}

// ITicketUseCase exposes the buyer's consolidated ticket listing.
//
// Pages are cut over consolidated raffles, never over raw purchase rows, so a
// raffle bought in several transactions is always returned whole on one page.

type ITicketUseCase interface {
	ListByBuyer(ctx context.Context, q TicketListQuery) (TicketPage, error)
}

type TicketUseCase struct {
	repo interfaces.ITicketPurchaseRepository
}

var _ ITicketUseCase = (*TicketUseCase)(nil)

func NewTicketUseCase(repo interfaces.ITicketPurchaseRepository) *TicketUseCase {
	return &TicketUseCase{repo: repo}
}

func (u *TicketUseCase) ListByBuyer(ctx context.Context, q TicketListQuery) (TicketPage, error) {
	buyerUserID := strings.TrimSpace(q.BuyerUserID)
	if buyerUserID == "" {
		return TicketPage{}, ErrInvalidBuyerUserID
	}

	limit, err := resolveTicketLimit(q.Limit)
	if err != nil {
		return TicketPage{}, err
	}

	var cursor *TicketCursor
	if strings.TrimSpace(q.Cursor) != "" {
		c, err := DecodeTicketCursor(q.Cursor)
		if err != nil {
			return TicketPage{}, err
		}
		cursor = &c
	}

	log.Printf("[ticket][usecase] list start buyer_user_id=%s limit=%d won_only=%t has_cursor=%t", buyerUserID, limit, q.WonOnly, cursor != nil)

	rows, err := u.repo.ListByBuyerUserID(ctx, buyerUserID)
	if err != nil {
		log.Printf("[ticket][usecase] repository list failed buyer_user_id=%s err=%v", buyerUserID, err)
		return TicketPage{}, err
	}

	tickets, err := ConsolidateTickets(rows, buyerUserID)
	if err != nil {
		return TicketPage{}, err
	}

	page := paginateTickets(filterTickets(tickets, q.WonOnly), cursor, limit)
	log.Printf("[ticket][usecase] list success buyer_user_id=%s raw_rows=%d items=%d has_more=%t", buyerUserID, len(rows), len(page.Items), page.NextCursor != nil)
	return page, nil
}

func resolveTicketLimit(limit int) (int, error) {
	switch {
	case limit == 0:
		return DefaultTicketPageLimit, nil
	case limit < 0:
		return 0, ErrInvalidTicketLimit
	case limit > MaxTicketPageLimit:
		return MaxTicketPageLimit, nil
	default:
		return limit, nil
	}
}

func filterTickets(items []entities.ConsolidatedTicket, wonOnly bool) []entities.ConsolidatedTicket {
	if !wonOnly {
		return items
	}
	out := make([]entities.ConsolidatedTicket, 0, len(items))
	for _, t := range items {
		if t.IsWinner {
			out = append(out, t)
		}
	}
	return out
}

// paginateTickets windows an already sorted listing: it skips everything up to
// and including the cursor, then takes limit+1 items to detect a next page.
func paginateTickets(items []entities.ConsolidatedTicket, cursor *TicketCursor, limit int) TicketPage {
	start := 0
	if cursor != nil {
		for start < len(items) && !ticketSortsBefore(cursor.PurchaseDate, cursor.RaffleID, items[start].PurchaseDate, items[start].RaffleID) {
			start++
		}
	}

	end := start + limit + 1
	if end > len(items) {
		end = len(items)
	}
	window := items[start:end]

	page := TicketPage{Items: make([]entities.ConsolidatedTicket, 0, limit)}
	if len(window) > limit {
		page.Items = append(page.Items, window[:limit]...)
		last := page.Items[len(page.Items)-1]
		next := EncodeTicketCursor(TicketCursor{PurchaseDate: last.PurchaseDate, RaffleID: last.RaffleID})
		page.NextCursor = &next
		return page
	}
	page.Items = append(page.Items, window...)
	return page
}

// EncodeTicketCursor renders "<RFC3339Nano purchase date>|<raffle id>".
func EncodeTicketCursor(c TicketCursor) string {
	return c.PurchaseDate.UTC().Format(time.RFC3339Nano) + ticketCursorSeparator + c.RaffleID
}

// DecodeTicketCursor parses a cursor produced by EncodeTicketCursor. The date part
// never contains the separator, so raffle ids may.
func DecodeTicketCursor(raw string) (TicketCursor, error) {
	datePart, raffleID, ok := strings.Cut(strings.TrimSpace(raw), ticketCursorSeparator)
	if !ok || strings.TrimSpace(raffleID) == "" {
		return TicketCursor{}, ErrInvalidTicketCursor
	}
	dt, err := time.Parse(time.RFC3339Nano, datePart)
	if err != nil {
		return TicketCursor{}, fmt.Errorf("%w: %v", ErrInvalidTicketCursor, err)
	}
	return TicketCursor{PurchaseDate: dt.UTC(), RaffleID: raffleID}, nil
}
