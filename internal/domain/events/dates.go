package events

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Relative-date keyword synonyms. Lookups route through this table before
// giving up, so "tonight" resolves the same window as "today".
var relativeDateKeywords = map[string]string{
	"today":        "today",
	"tonight":      "today",
	"tomorrow":     "tomorrow",
	"tmrw":         "tomorrow",
	"weekend":      "weekend",
	"this weekend": "weekend",
}

// ParseDateString normalizes a dataset date-time string into a calendar date.
// Two shapes are accepted: ISO8601 with a time component (fractional seconds
// truncated before parsing) and plain YYYY-MM-DD. Anything else is treated as
// absent — the dataset is full of junk dates and a junk date must never fail
// a batch.
func ParseDateString(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}

	if strings.Contains(value, "T") {
		trimmed, _, _ := strings.Cut(value, ".")
		parsed, err := time.Parse("2006-01-02T15:04:05", trimmed)
		if err != nil {
			log.Debug().Str("date", value).Msg("failed to parse date")
			return time.Time{}, false
		}
		return truncateToDate(parsed), true
	}

	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		log.Debug().Str("date", value).Msg("failed to parse date")
		return time.Time{}, false
	}
	return truncateToDate(parsed), true
}

// RelativeDateWindow resolves a keyword like "today" or "weekend" into an
// inclusive (from, to) pair of ISO date strings. Unrecognized keywords return
// ("", "") so callers keep whatever explicit bounds they already have.
func RelativeDateWindow(keyword string) (string, string) {
	return relativeDateWindowAt(keyword, today())
}

func relativeDateWindowAt(keyword string, now time.Time) (string, string) {
	normalized := strings.ToLower(strings.TrimSpace(keyword))
	if normalized == "" {
		return "", ""
	}

	switch normalized {
	case "today":
		day := isoDate(now)
		return day, day
	case "tomorrow":
		day := isoDate(now.AddDate(0, 0, 1))
		return day, day
	case "weekend":
		// Monday=0 ... Sunday=6; a Saturday "weekend" starts today.
		weekday := (int(now.Weekday()) + 6) % 7
		saturday := now.AddDate(0, 0, (5-weekday+7)%7)
		sunday := saturday.AddDate(0, 0, 1)
		return isoDate(saturday), isoDate(sunday)
	}

	if mapped, ok := relativeDateKeywords[normalized]; ok && mapped != normalized {
		return relativeDateWindowAt(mapped, now)
	}

	return "", ""
}

func isoDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func today() time.Time {
	return truncateToDate(time.Now())
}
