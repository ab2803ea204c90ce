package domain

import (
	"fmt"
	"time"
)

// Layouts accepted for server timestamps that carry no timezone marker.
// The log store emits naive strings for rows written by the database and
// RFC3339 strings for rows written by the API layer.
var naiveLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
}

// ParseServerTime parses a server-provided timestamp. Strings with an
// explicit timezone or offset are honored as-is; naive strings are
// interpreted as UTC.
func ParseServerTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp: %q", value)
}

// FormatLocal renders a server timestamp in the viewer's local time.
// Unparseable input is returned verbatim so rows stay renderable.
func FormatLocal(value string) string {
	t, err := ParseServerTime(value)
	if err != nil {
		return value
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
