package shelflife

import (
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02.01.2006",
}

// ParseDate parses the date formats the back office exchanges. Unparseable or
// blank input yields the zero time, which the classifier reads as unknown.
func ParseDate(s string) time.Time {
	t, _ := parseDate(s)
	return t
}

// LooksLikeDate reports whether s parses as one of the accepted date formats
func LooksLikeDate(s string) bool {
	_, ok := parseDate(s)
	return ok
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
