package repository

import (
	"testing"
	"time"
)

func TestTableFromEnv(t *testing.T) {
	t.Setenv("PAYMENTS_TABLE", "   ")
	if got := tableFromEnv("PAYMENTS_TABLE", "payments"); got != "payments" {
		t.Fatalf("expected fallback for blank value, got %q", got)
	}

	t.Setenv("PAYMENTS_TABLE", " payments_staging ")
	if got := tableFromEnv("PAYMENTS_TABLE", "payments"); got != "payments_staging" {
		t.Fatalf("expected trimmed override, got %q", got)
	}
}

func TestStoredTime_SortsLexically(t *testing.T) {
	brt := time.FixedZone("BRT", -3*60*60)
	earlier := formatStoredTime(time.Date(2024, 3, 1, 22, 0, 0, 0, brt))
	later := formatStoredTime(time.Date(2024, 3, 2, 0, 30, 0, 0, time.UTC))
	if earlier >= later {
		t.Fatalf("expected %s to sort before %s", earlier, later)
	}

	got, err := parseStoredTime(" " + earlier + " ")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Location() != time.UTC || got.Hour() != 1 {
		t.Fatalf("expected UTC 01:00, got %v", got)
	}

	if _, err := parseStoredTime("yesterday"); err == nil {
		t.Fatalf("expected error for invalid timestamp")
	}
}
