package processors

import (
	"sort"
	"time"

	"github.com/username/finboard/backend/src/logger"
	"github.com/username/finboard/backend/src/models"
	"github.com/username/finboard/backend/src/utils"
)

// Interval tokens accepted by the filtering entry points.
const (
	IntervalLast30Days    = "last30days"
	IntervalLastQuarter   = "lastQuarter"
	IntervalQuarterToDate = "quarterToDate"
	IntervalYearToDate    = "yearToDate"
	IntervalLastYear      = "lastYear"
	Interval3Years        = "3years"
	Interval5Years        = "5years"
	Interval10Years       = "10years"
	IntervalAll           = "all"
	IntervalAllDates      = "allDates"
)

// FindNearestStatement returns the statement whose date is closest to the
// target. Returns nil only for an empty collection. An exact timestamp match
// wins outright; otherwise the first statement achieving the strictly
// smallest absolute distance wins, so ties break on input order.
func FindNearestStatement(statements []models.Statement, targetDate string) *models.Statement {
	if len(statements) == 0 {
		return nil
	}

	target, ok := utils.ParseDate(targetDate)
	if !ok {
		// An unusable target degrades to "nearest to today" rather than failing.
		warnLog("target date unparsable, using current date", "targetDate", targetDate)
		target = time.Now()
	}

	var best *models.Statement
	var bestDiff time.Duration
	for i := range statements {
		ts, ok := utils.ParseDate(statements[i].Date)
		if !ok {
			warnLog("skipping statement with unparsable date in nearest lookup", "date", statements[i].Date)
			continue
		}
		if ts.Equal(target) {
			return &statements[i]
		}
		diff := absDuration(ts.Sub(target))
		if best == nil || diff < bestDiff {
			best = &statements[i]
			bestDiff = diff
		}
	}
	if best == nil {
		// Every date was unparsable; the contract still promises a statement.
		return &statements[0]
	}
	return best
}

// IntervalStartDate maps an interval token to the start of its [start, now]
// window. Note: this mapping treats "all" as five years back, while the
// statement filter passes "all"/"allDates" through unfiltered. The two
// conventions coexist upstream; call sites rely on both.
func IntervalStartDate(interval string, now time.Time) time.Time {
	switch interval {
	case IntervalLast30Days:
		return now.AddDate(0, 0, -30)
	case IntervalLastQuarter, IntervalQuarterToDate:
		quarterStart := (int(now.Month())-1)/3*3 + 1
		return time.Date(now.Year(), time.Month(quarterStart), 1, 0, 0, 0, 0, now.Location())
	case IntervalYearToDate:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	case IntervalLastYear:
		return now.AddDate(-1, 0, 0)
	case Interval3Years:
		return now.AddDate(-3, 0, 0)
	case Interval5Years, IntervalAll, IntervalAllDates:
		return now.AddDate(-5, 0, 0)
	case Interval10Years:
		return now.AddDate(-10, 0, 0)
	default:
		return now.AddDate(0, 0, -30)
	}
}

// FilterStatementsByInterval keeps statements falling inside the interval's
// window, boundaries inclusive. "all"/"allDates" (and an empty token) return
// the input unchanged. Statements with unparsable dates are dropped and
// logged, never fatal.
func FilterStatementsByInterval(statements []models.Statement, interval string, now time.Time) []models.Statement {
	if interval == "" || interval == IntervalAll || interval == IntervalAllDates {
		return statements
	}

	start := IntervalStartDate(interval, now)
	filtered := make([]models.Statement, 0, len(statements))
	for _, s := range statements {
		ts, ok := utils.ParseDate(s.Date)
		if !ok {
			warnLog("dropping statement with unparsable date from interval filter", "date", s.Date, "interval", interval)
			continue
		}
		if !ts.Before(start) && !ts.After(now) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// FilterTransactionsByRange keeps transactions with start <= date <= end.
// Items with unparsable dates are dropped and logged.
func FilterTransactionsByRange(transactions []models.Transaction, start, end time.Time) []models.Transaction {
	filtered := make([]models.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		ts, ok := utils.ParseDate(tx.Date)
		if !ok {
			warnLog("dropping transaction with unparsable date from range filter", "date", tx.Date)
			continue
		}
		if !ts.Before(start) && !ts.After(end) {
			filtered = append(filtered, tx)
		}
	}
	return filtered
}

// AvailableDates returns all distinct statement dates, newest first.
// Unparsable dates are excluded.
func AvailableDates(statements []models.Statement) []string {
	type dated struct {
		raw string
		ts  time.Time
	}
	seen := make(map[string]bool)
	dates := make([]dated, 0, len(statements))
	for _, s := range statements {
		if seen[s.Date] {
			continue
		}
		ts, ok := utils.ParseDate(s.Date)
		if !ok {
			continue
		}
		seen[s.Date] = true
		dates = append(dates, dated{raw: s.Date, ts: ts})
	}
	sort.SliceStable(dates, func(i, j int) bool { return dates[i].ts.After(dates[j].ts) })

	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.raw)
	}
	return out
}

// SortStatementsByDate returns a new slice sorted ascending by parsed date;
// the input is never mutated. Unparsable dates sort first in input order.
func SortStatementsByDate(statements []models.Statement) []models.Statement {
	sorted := make([]models.Statement, len(statements))
	copy(sorted, statements)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, oki := utils.ParseDate(sorted[i].Date)
		tj, okj := utils.ParseDate(sorted[j].Date)
		if !oki {
			return okj
		}
		if !okj {
			return false
		}
		return ti.Before(tj)
	})
	return sorted
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

// warnLog logs through the global logger when it is initialized; the core
// stays usable in tests that skip logger setup.
func warnLog(msg string, args ...any) {
	if logger.L != nil {
		logger.L.Warn(msg, args...)
	}
}
