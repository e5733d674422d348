package processors

import (
	"testing"
	"time"

	"github.com/username/finboard/backend/src/models"
)

func statementsOn(dates ...string) []models.Statement {
	statements := make([]models.Statement, 0, len(dates))
	for _, d := range dates {
		statements = append(statements, models.Statement{Date: d})
	}
	return statements
}

func TestFindNearestStatement(t *testing.T) {
	statements := statementsOn("2023-03-31", "2023-06-30", "2023-09-30")

	got := FindNearestStatement(statements, "2023-08-01")
	if got == nil {
		t.Fatal("got nil, want a statement")
	}
	// 2023-06-30 is 32 days away, 2023-09-30 is 60.
	if got.Date != "2023-06-30" {
		t.Errorf("nearest = %q, want 2023-06-30", got.Date)
	}
}

func TestFindNearestStatementExactMatchWins(t *testing.T) {
	statements := statementsOn("2023-06-29", "2023-06-30", "2023-07-01")

	got := FindNearestStatement(statements, "2023-06-30")
	if got == nil || got.Date != "2023-06-30" {
		t.Fatalf("nearest = %v, want the exact match 2023-06-30", got)
	}
}

func TestFindNearestStatementTieBreaksOnInputOrder(t *testing.T) {
	// Both statements are exactly one day from the target; the first wins.
	statements := statementsOn("2023-06-29", "2023-07-01")

	got := FindNearestStatement(statements, "2023-06-30")
	if got == nil || got.Date != "2023-06-29" {
		t.Fatalf("nearest = %v, want first occurrence 2023-06-29", got)
	}
}

func TestFindNearestStatementEmptyInput(t *testing.T) {
	if got := FindNearestStatement(nil, "2023-01-01"); got != nil {
		t.Errorf("nearest of empty = %v, want nil", got)
	}
}

func TestFindNearestStatementSkipsUnparsableDates(t *testing.T) {
	statements := statementsOn("not-a-date", "2023-06-30")

	got := FindNearestStatement(statements, "2023-01-01")
	if got == nil || got.Date != "2023-06-30" {
		t.Fatalf("nearest = %v, want 2023-06-30", got)
	}
}

func TestIntervalStartDate(t *testing.T) {
	now := time.Date(2023, time.August, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		interval string
		want     time.Time
	}{
		{IntervalLast30Days, now.AddDate(0, 0, -30)},
		{IntervalQuarterToDate, time.Date(2023, time.July, 1, 0, 0, 0, 0, time.UTC)},
		{IntervalLastQuarter, time.Date(2023, time.July, 1, 0, 0, 0, 0, time.UTC)},
		{IntervalYearToDate, time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{IntervalLastYear, now.AddDate(-1, 0, 0)},
		{Interval3Years, now.AddDate(-3, 0, 0)},
		{Interval5Years, now.AddDate(-5, 0, 0)},
		{Interval10Years, now.AddDate(-10, 0, 0)},
		// The range mapping deliberately bounds "all" at five years.
		{IntervalAll, now.AddDate(-5, 0, 0)},
		{"bogus", now.AddDate(0, 0, -30)},
	}
	for _, tt := range tests {
		t.Run(tt.interval, func(t *testing.T) {
			if got := IntervalStartDate(tt.interval, now); !got.Equal(tt.want) {
				t.Errorf("IntervalStartDate(%q) = %v, want %v", tt.interval, got, tt.want)
			}
		})
	}
}

func TestFilterStatementsByIntervalBoundariesInclusive(t *testing.T) {
	now := time.Date(2023, time.August, 30, 0, 0, 0, 0, time.UTC)
	statements := statementsOn(
		"2023-07-31", // start boundary for last30days
		"2023-08-30", // now boundary
		"2023-07-30", // one day before the window
		"2023-08-31", // one day after now
	)

	got := FilterStatementsByInterval(statements, IntervalLast30Days, now)
	if len(got) != 2 {
		t.Fatalf("got %d statements, want 2: %+v", len(got), got)
	}
	if got[0].Date != "2023-07-31" || got[1].Date != "2023-08-30" {
		t.Errorf("boundary statements missing: %+v", got)
	}
}

func TestFilterStatementsByIntervalAllDatesPassesThrough(t *testing.T) {
	statements := statementsOn("1999-01-01", "not-a-date", "2023-08-30")

	for _, interval := range []string{IntervalAll, IntervalAllDates, ""} {
		got := FilterStatementsByInterval(statements, interval, time.Now())
		if len(got) != len(statements) {
			t.Errorf("interval %q filtered to %d items, want unchanged %d", interval, len(got), len(statements))
		}
	}
}

func TestFilterStatementsByIntervalDropsMissingDates(t *testing.T) {
	now := time.Date(2023, time.August, 30, 0, 0, 0, 0, time.UTC)
	statements := statementsOn("", "garbage", "2023-08-15")

	got := FilterStatementsByInterval(statements, IntervalLast30Days, now)
	if len(got) != 1 || got[0].Date != "2023-08-15" {
		t.Fatalf("got %+v, want only the parsable statement", got)
	}
}

func TestFilterTransactionsByRange(t *testing.T) {
	start := time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, time.June, 30, 0, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		{Date: "2023-06-01", Amount: 1, Type: models.TransactionCredit},
		{Date: "2023-06-30", Amount: 2, Type: models.TransactionDebit},
		{Date: "2023-05-31", Amount: 3, Type: models.TransactionCredit},
		{Date: "", Amount: 4, Type: models.TransactionCredit},
	}

	got := FilterTransactionsByRange(txs, start, end)
	if len(got) != 2 {
		t.Fatalf("got %d transactions, want 2 (boundaries inclusive, bad dates dropped)", len(got))
	}
}

func TestAvailableDates(t *testing.T) {
	statements := statementsOn("2023-03-31", "2023-09-30", "2023-03-31", "bad-date", "2023-06-30")

	got := AvailableDates(statements)
	want := []string{"2023-09-30", "2023-06-30", "2023-03-31"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("dates[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSortStatementsByDateDoesNotMutateInput(t *testing.T) {
	statements := statementsOn("2023-09-30", "2023-03-31")

	sorted := SortStatementsByDate(statements)
	if sorted[0].Date != "2023-03-31" {
		t.Errorf("sorted[0] = %q, want 2023-03-31", sorted[0].Date)
	}
	if statements[0].Date != "2023-09-30" {
		t.Error("input slice was mutated")
	}
}
