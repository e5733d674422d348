package utils

import "time"

const DefaultDateFormat = "2006-01-02"

// dateLayouts are tried in order when parsing statement/transaction dates.
// The frontend sends ISO calendar dates; some upstream exports carry a time
// component as well.
var dateLayouts = []string{
	DefaultDateFormat,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
}

// ParseDate parses a date string. The second return value reports whether
// parsing succeeded; callers drop (and log) items with unparsable dates
// instead of failing.
func ParseDate(dateStr string) (time.Time, bool) {
	if dateStr == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// MonthLabel formats a date as "Jan 2006", the label used for
// statement-derived chart series.
func MonthLabel(t time.Time) string {
	return t.Format("Jan 2006")
}

// DayKey formats a date as "2006-01-02", the bucket key and label used for
// transaction-derived chart series.
func DayKey(t time.Time) string {
	return t.Format(DefaultDateFormat)
}
