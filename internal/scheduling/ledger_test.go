package scheduling

import (
	"errors"
	"testing"

	"scheduler-backend/internal/capacities"
	"scheduler-backend/internal/operations"
)

func testLedger(rows []capacities.Capacity) *Ledger {
	ops := []operations.Operation{
		{ID: "op-cut", Name: "Cut", SequenceIndex: 1, DefaultDailyLimit: 10},
	}
	return NewLedger(ops, rows)
}

func TestLedgerAvailableOnFallsBackToDefault(t *testing.T) {
	l := testLedger(nil)
	if got := l.AvailableOn("op-cut", day0); got != 10 {
		t.Fatalf("available: got %d, want 10", got)
	}
	if got := l.AvailableOn("unknown-op", day0); got != 0 {
		t.Fatalf("unknown op available: got %d, want 0", got)
	}
}

func TestLedgerAvailableOnUsesExplicitRow(t *testing.T) {
	l := testLedger([]capacities.Capacity{
		{ID: "cap-1", OperationID: "op-cut", Date: day0, DailyLimit: 4, Consumed: 1},
	})
	if got := l.AvailableOn("op-cut", day0); got != 3 {
		t.Fatalf("available: got %d, want 3", got)
	}
}

func TestLedgerReserveCreatesRowLazily(t *testing.T) {
	l := testLedger(nil)
	if err := l.Reserve("op-cut", day0, 7); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if got := l.AvailableOn("op-cut", day0); got != 3 {
		t.Fatalf("available after reserve: got %d, want 3", got)
	}

	dirty := l.DirtyRows()
	if len(dirty) != 1 {
		t.Fatalf("dirty rows: got %d, want 1", len(dirty))
	}
	row := dirty[0]
	if row.ID == "" || row.DailyLimit != 10 || row.Consumed != 7 {
		t.Fatalf("dirty row: %+v", row)
	}
}

func TestLedgerReserveRejectsOverAsk(t *testing.T) {
	l := testLedger(nil)
	if err := l.Reserve("op-cut", day0, 11); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("error: got %v, want %v", err, ErrCapacityExceeded)
	}
	if err := l.Reserve("op-cut", day0, 0); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("zero amount: got %v, want %v", err, ErrCapacityExceeded)
	}
}

func TestLedgerReleaseCreditsBack(t *testing.T) {
	l := testLedger([]capacities.Capacity{
		{ID: "cap-1", OperationID: "op-cut", Date: day0, DailyLimit: 10, Consumed: 10},
	})
	l.Release([]Entry{
		{OrderID: "order-1", OperationID: "op-cut", Date: day0, Quantity: 6},
	})
	if got := l.AvailableOn("op-cut", day0); got != 6 {
		t.Fatalf("available after release: got %d, want 6", got)
	}

	// Releasing more than consumed clamps at zero instead of going negative.
	l.Release([]Entry{
		{OrderID: "order-1", OperationID: "op-cut", Date: day0, Quantity: 99},
	})
	if got := l.AvailableOn("op-cut", day0); got != 10 {
		t.Fatalf("available after over-release: got %d, want 10", got)
	}
}

func TestLedgerNextAvailableDateSkipsFullDays(t *testing.T) {
	l := testLedger([]capacities.Capacity{
		{ID: "cap-1", OperationID: "op-cut", Date: day0, DailyLimit: 10, Consumed: 10},
		{ID: "cap-2", OperationID: "op-cut", Date: day(1), DailyLimit: 10, Consumed: 10},
	})
	got, err := l.NextAvailableDate("op-cut", day0, 365)
	if err != nil {
		t.Fatalf("next available: %v", err)
	}
	if !got.Equal(day(2)) {
		t.Fatalf("date: got %s, want %s", got.Format(DateFormat), day(2).Format(DateFormat))
	}
}

func TestLedgerNextAvailableDateHorizonExhausted(t *testing.T) {
	l := NewLedger([]operations.Operation{
		{ID: "op-cut", Name: "Cut", SequenceIndex: 1, DefaultDailyLimit: 0},
	}, nil)
	_, err := l.NextAvailableDate("op-cut", day0, 365)
	if !errors.Is(err, ErrNoCapacityWithinHorizon) {
		t.Fatalf("error: got %v, want %v", err, ErrNoCapacityWithinHorizon)
	}
}
