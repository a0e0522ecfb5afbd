package usecase

import (
	"errors"
	"math"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"sorteios_api/internal/domain/entities"
)

func strPtr(s string) *string { return &s }

func ticketRow(raffleID, txID string, date time.Time, status string, value float64, count int, numbers ...any) entities.RawTicketRow {
	return entities.RawTicketRow{
		RaffleID:         raffleID,
		RaffleTitle:      "Raffle " + raffleID,
		PurchaseDate:     date,
		RawStatus:        status,
		Value:            value,
		TicketCount:      count,
		PurchasedNumbers: numbers,
		TransactionID:    txID,
		BuyerUserID:      "user-1",
	}
}

func TestConsolidateTickets_MergesSameRaffle(t *testing.T) {
	d1 := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 1, 12, 10, 0, 0, 0, time.UTC)
	rows := []entities.RawTicketRow{
		ticketRow("R1", "T1", d1, "paid", 10, 2, "01", "02"),
		ticketRow("R1", "T2", d2, "pending", 5, 1, "03"),
	}

	got, err := ConsolidateTickets(rows, "user-1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 consolidated ticket, got %d", len(got))
	}
	tk := got[0]
	if tk.Value != 15 || tk.TicketCount != 3 {
		t.Fatalf("unexpected totals: value=%v count=%d", tk.Value, tk.TicketCount)
	}
	if !reflect.DeepEqual(tk.PurchasedNumbers, []string{"01", "02", "03"}) {
		t.Fatalf("unexpected numbers: %v", tk.PurchasedNumbers)
	}
	if !tk.PurchaseDate.Equal(d2) || tk.Status != entities.PaymentStatusPending || tk.TransactionID != "T2" {
		t.Fatalf("latest purchase must win: %+v", tk)
	}
}

func TestConsolidateTickets_DeduplicatesRaggedNumbers(t *testing.T) {
	d := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	rows := []entities.RawTicketRow{
		ticketRow("R1", "T1", d, "paid", 1, 1, []any{"07", nil, []any{" 08 ", 9}}, ""),
		ticketRow("R1", "T2", d.Add(time.Minute), "paid", 1, 1, []string{"07", "10"}),
	}

	got, err := ConsolidateTickets(rows, "user-1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !reflect.DeepEqual(got[0].PurchasedNumbers, []string{"07", "08", "10"}) {
		t.Fatalf("unexpected numbers: %v", got[0].PurchasedNumbers)
	}
}

func TestConsolidateTickets_ClampsProgress(t *testing.T) {
	d := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	high := ticketRow("R1", "T1", d, "paid", 1, 1)
	high.ProgressPctMoney = 137
	low := ticketRow("R2", "T2", d, "paid", 1, 1)
	low.ProgressPctMoney = -20
	nan := ticketRow("R3", "T3", d, "paid", 1, 1)
	nan.ProgressPctMoney = math.NaN()

	got, err := ConsolidateTickets([]entities.RawTicketRow{high, low, nan}, "user-1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	byID := map[string]float64{}
	for _, tk := range got {
		byID[tk.RaffleID] = tk.ProgressPctMoney
	}
	if byID["R1"] != 100 || byID["R2"] != 0 || byID["R3"] != 0 {
		t.Fatalf("unexpected progress: %v", byID)
	}
}

func TestConsolidateTickets_RejectsForeignRow(t *testing.T) {
	d := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	foreign := ticketRow("R2", "T9", d, "paid", 1, 1)
	foreign.BuyerUserID = "user-2"
	rows := []entities.RawTicketRow{ticketRow("R1", "T1", d, "paid", 1, 1), foreign}

	got, err := ConsolidateTickets(rows, "user-1")
	if !errors.Is(err, ErrTicketOwnershipViolation) {
		t.Fatalf("expected ErrTicketOwnershipViolation, got %v", err)
	}
	if got != nil {
		t.Fatalf("no partial result may leak, got %v", got)
	}
}

func TestConsolidateTickets_EmptyBuyer(t *testing.T) {
	if _, err := ConsolidateTickets(nil, " "); !errors.Is(err, ErrInvalidBuyerUserID) {
		t.Fatalf("expected ErrInvalidBuyerUserID, got %v", err)
	}
}

func TestConsolidateTickets_EmptyInput(t *testing.T) {
	got, err := ConsolidateTickets(nil, "user-1")
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty result, got %v err=%v", got, err)
	}
}

func TestConsolidateTickets_SortedDesc(t *testing.T) {
	d := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	rows := []entities.RawTicketRow{
		ticketRow("A", "T1", d, "paid", 1, 1),
		ticketRow("C", "T2", d.Add(time.Hour), "paid", 1, 1),
		ticketRow("B", "T3", d, "paid", 1, 1),
	}
	got, err := ConsolidateTickets(rows, "user-1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ids := []string{got[0].RaffleID, got[1].RaffleID, got[2].RaffleID}
	if !reflect.DeepEqual(ids, []string{"C", "B", "A"}) {
		t.Fatalf("unexpected order: %v", ids)
	}
}

func TestConsolidateTickets_OrderIndependent(t *testing.T) {
	d := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	rows := []entities.RawTicketRow{
		ticketRow("R1", "T1", d, "paid", 10, 1, "01"),
		ticketRow("R1", "T2", d, "refunded", 10, 1, "02"),
		ticketRow("R1", "T3", d.Add(-time.Hour), "failed", 10, 1, "03"),
		ticketRow("R2", "T4", d.Add(time.Hour), "pending", 3, 1, "04"),
		ticketRow("R3", "T5", d.Add(-2*time.Hour), "settled", 7, 2, "05", "06"),
	}

	want, err := ConsolidateTickets(rows, "user-1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	// Equal dates tie-break on the greater transaction id.
	if want[1].RaffleID != "R1" || want[1].TransactionID != "T2" || want[1].Status != entities.PaymentStatusRefunded {
		t.Fatalf("unexpected tie-break result: %+v", want[1])
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]entities.RawTicketRow(nil), rows...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got, err := ConsolidateTickets(shuffled, "user-1")
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if len(got) != len(want) {
			t.Fatalf("shuffle %d: unexpected length %d", i, len(got))
		}
		for j := range want {
			if got[j].RaffleID != want[j].RaffleID || got[j].TransactionID != want[j].TransactionID ||
				got[j].Value != want[j].Value || got[j].TicketCount != want[j].TicketCount ||
				len(got[j].PurchasedNumbers) != len(want[j].PurchasedNumbers) {
				t.Fatalf("shuffle %d: item %d differs: %+v vs %+v", i, j, got[j], want[j])
			}
		}
	}
}

func TestConsolidateTickets_Winner(t *testing.T) {
	d := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	won := ticketRow("R1", "T1", d, "paid", 1, 1, "07", "13")
	won.WinningNumber = strPtr("13")
	lost := ticketRow("R2", "T2", d, "paid", 1, 1, "01")
	lost.WinningNumber = strPtr("99")
	open := ticketRow("R3", "T3", d, "paid", 1, 1, "01")

	got, err := ConsolidateTickets([]entities.RawTicketRow{won, lost, open}, "user-1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	winners := map[string]bool{}
	for _, tk := range got {
		winners[tk.RaffleID] = tk.IsWinner
	}
	if !winners["R1"] || winners["R2"] || winners["R3"] {
		t.Fatalf("unexpected winners: %v", winners)
	}
}

func TestConsolidateTickets_WinningNumberFromAnyRow(t *testing.T) {
	d := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	plain := ticketRow("R1", "T1", d, "paid", 1, 1, "07")
	marked := ticketRow("R1", "T2", d.Add(-time.Hour), "paid", 1, 1, "13")
	marked.WinningNumber = strPtr("13")

	for _, rows := range [][]entities.RawTicketRow{{plain, marked}, {marked, plain}} {
		got, err := ConsolidateTickets(rows, "user-1")
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if got[0].WinningNumber == nil || *got[0].WinningNumber != "13" || !got[0].IsWinner {
			t.Fatalf("expected winner regardless of row order, got %+v", got[0])
		}
	}
}

func TestConsolidateTickets_SortsDatesOutsideNanoRange(t *testing.T) {
	modern := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	ancient := time.Date(1500, 1, 1, 0, 0, 0, 0, time.UTC)
	future := time.Date(2400, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []entities.RawTicketRow{
		ticketRow("zero", "T1", time.Time{}, "paid", 1, 1),
		ticketRow("modern", "T2", modern, "paid", 1, 1),
		ticketRow("ancient", "T3", ancient, "paid", 1, 1),
		ticketRow("future", "T4", future, "paid", 1, 1),
	}

	got, err := ConsolidateTickets(rows, "user-1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ids := []string{got[0].RaffleID, got[1].RaffleID, got[2].RaffleID, got[3].RaffleID}
	if !reflect.DeepEqual(ids, []string{"future", "modern", "ancient", "zero"}) {
		t.Fatalf("unexpected order: %v", ids)
	}
}
