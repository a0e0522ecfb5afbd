package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"sorteios_api/internal/domain/entities"
	mock_interfaces "sorteios_api/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestTicketUseCase_ListByBuyer(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	// 5 raffles, the newest one bought in two transactions.
	rows := func() []entities.RawTicketRow {
		out := []entities.RawTicketRow{}
		for i := 0; i < 5; i++ {
			out = append(out, ticketRow(fmt.Sprintf("R%d", i), fmt.Sprintf("T%d", i), base.Add(time.Duration(i)*time.Hour), "paid", 10, 1, fmt.Sprintf("%02d", i)))
		}
		out = append(out, ticketRow("R4", "T9", base.Add(-time.Hour), "pending", 5, 1, "99"))
		return out
	}

	t.Run("invalid buyer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mock_interfaces.NewMockITicketPurchaseRepository(ctrl)
		uc := NewTicketUseCase(repo)

		_, err := uc.ListByBuyer(ctx, TicketListQuery{BuyerUserID: "  "})
		if !errors.Is(err, ErrInvalidBuyerUserID) {
			t.Fatalf("expected ErrInvalidBuyerUserID, got %v", err)
		}
	})

	t.Run("negative limit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mock_interfaces.NewMockITicketPurchaseRepository(ctrl)
		uc := NewTicketUseCase(repo)

		_, err := uc.ListByBuyer(ctx, TicketListQuery{BuyerUserID: "user-1", Limit: -1})
		if !errors.Is(err, ErrInvalidTicketLimit) {
			t.Fatalf("expected ErrInvalidTicketLimit, got %v", err)
		}
	})

	t.Run("invalid cursor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mock_interfaces.NewMockITicketPurchaseRepository(ctrl)
		uc := NewTicketUseCase(repo)

		_, err := uc.ListByBuyer(ctx, TicketListQuery{BuyerUserID: "user-1", Cursor: "not-a-cursor"})
		if !errors.Is(err, ErrInvalidTicketCursor) {
			t.Fatalf("expected ErrInvalidTicketCursor, got %v", err)
		}
	})

	t.Run("repository error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mock_interfaces.NewMockITicketPurchaseRepository(ctrl)
		uc := NewTicketUseCase(repo)

		boom := errors.New("dynamo down")
		repo.EXPECT().ListByBuyerUserID(gomock.Any(), "user-1").Return(nil, boom)

		_, err := uc.ListByBuyer(ctx, TicketListQuery{BuyerUserID: "user-1"})
		if !errors.Is(err, boom) {
			t.Fatalf("expected repository error, got %v", err)
		}
	})

	t.Run("ownership violation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mock_interfaces.NewMockITicketPurchaseRepository(ctrl)
		uc := NewTicketUseCase(repo)

		foreign := rows()
		foreign[2].BuyerUserID = "user-2"
		repo.EXPECT().ListByBuyerUserID(gomock.Any(), "user-1").Return(foreign, nil)

		_, err := uc.ListByBuyer(ctx, TicketListQuery{BuyerUserID: "user-1"})
		if !errors.Is(err, ErrTicketOwnershipViolation) {
			t.Fatalf("expected ErrTicketOwnershipViolation, got %v", err)
		}
	})

	t.Run("default limit returns everything without cursor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mock_interfaces.NewMockITicketPurchaseRepository(ctrl)
		uc := NewTicketUseCase(repo)

		repo.EXPECT().ListByBuyerUserID(gomock.Any(), "user-1").Return(rows(), nil)

		page, err := uc.ListByBuyer(ctx, TicketListQuery{BuyerUserID: "user-1"})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if len(page.Items) != 5 || page.NextCursor != nil {
			t.Fatalf("expected 5 items and no cursor, got %d cursor=%v", len(page.Items), page.NextCursor)
		}
		if page.Items[0].RaffleID != "R4" || page.Items[0].TicketCount != 2 {
			t.Fatalf("expected consolidated R4 first, got %+v", page.Items[0])
		}
	})

	t.Run("walks every page exactly once", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mock_interfaces.NewMockITicketPurchaseRepository(ctrl)
		uc := NewTicketUseCase(repo)

		repo.EXPECT().ListByBuyerUserID(gomock.Any(), "user-1").Return(rows(), nil).Times(3)

		seen := map[string]int{}
		cursor := ""
		pages := 0
		for {
			page, err := uc.ListByBuyer(ctx, TicketListQuery{BuyerUserID: "user-1", Limit: 2, Cursor: cursor})
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			pages++
			for _, it := range page.Items {
				seen[it.RaffleID]++
			}
			if page.NextCursor == nil {
				break
			}
			if pages > 3 {
				t.Fatalf("pagination did not terminate")
			}
			cursor = *page.NextCursor
		}

		if pages != 3 {
			t.Fatalf("expected 3 pages, got %d", pages)
		}
		if len(seen) != 5 {
			t.Fatalf("expected 5 raffles, got %v", seen)
		}
		for id, n := range seen {
			if n != 1 {
				t.Fatalf("raffle %s returned %d times", id, n)
			}
		}
	})

	t.Run("won only", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mock_interfaces.NewMockITicketPurchaseRepository(ctrl)
		uc := NewTicketUseCase(repo)

		rs := rows()
		rs[1].WinningNumber = strPtr("01")
		repo.EXPECT().ListByBuyerUserID(gomock.Any(), "user-1").Return(rs, nil)

		page, err := uc.ListByBuyer(ctx, TicketListQuery{BuyerUserID: "user-1", WonOnly: true})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if len(page.Items) != 1 || page.Items[0].RaffleID != "R1" || !page.Items[0].IsWinner {
			t.Fatalf("expected only R1, got %+v", page.Items)
		}
	})

	t.Run("empty listing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mock_interfaces.NewMockITicketPurchaseRepository(ctrl)
		uc := NewTicketUseCase(repo)

		repo.EXPECT().ListByBuyerUserID(gomock.Any(), "user-1").Return(nil, nil)

		page, err := uc.ListByBuyer(ctx, TicketListQuery{BuyerUserID: "user-1"})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if page.Items == nil || len(page.Items) != 0 || page.NextCursor != nil {
			t.Fatalf("expected empty non-nil page, got %+v", page)
		}
	})
}

func TestResolveTicketLimit(t *testing.T) {
	tests := []struct {
		in      int
		want    int
		wantErr bool
	}{
		{0, DefaultTicketPageLimit, false},
		{1, 1, false},
		{50, 50, false},
		{51, MaxTicketPageLimit, false},
		{1000, MaxTicketPageLimit, false},
		{-5, 0, true},
	}
	for _, tt := range tests {
		got, err := resolveTicketLimit(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("limit %d: unexpected err %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("limit %d: expected %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestTicketCursor_RoundTrip(t *testing.T) {
	c := TicketCursor{PurchaseDate: time.Date(2024, 3, 1, 12, 0, 0, 123, time.UTC), RaffleID: "raffle|with|pipes"}

	got, err := DecodeTicketCursor(EncodeTicketCursor(c))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !got.PurchaseDate.Equal(c.PurchaseDate) || got.RaffleID != c.RaffleID {
		t.Fatalf("expected %+v, got %+v", c, got)
	}

	for _, raw := range []string{"", "2024-03-01T12:00:00Z", "2024-03-01T12:00:00Z|", "yesterday|R1"} {
		if _, err := DecodeTicketCursor(raw); !errors.Is(err, ErrInvalidTicketCursor) {
			t.Fatalf("cursor %q: expected ErrInvalidTicketCursor, got %v", raw, err)
		}
	}
}

func TestPaginateTickets_CursorOnZeroDate(t *testing.T) {
	items := []entities.ConsolidatedTicket{
		{RaffleID: "R3", PurchaseDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{RaffleID: "R2", PurchaseDate: time.Time{}},
		{RaffleID: "R1", PurchaseDate: time.Time{}},
	}

	first := paginateTickets(items, nil, 2)
	if len(first.Items) != 2 || first.NextCursor == nil {
		t.Fatalf("expected 2 items and a cursor, got %+v", first)
	}
	cursor, err := DecodeTicketCursor(*first.NextCursor)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	second := paginateTickets(items, &cursor, 2)
	if len(second.Items) != 1 || second.Items[0].RaffleID != "R1" || second.NextCursor != nil {
		t.Fatalf("expected only R1 on the last page, got %+v", second)
	}
}
