package push

import (
	"fmt"
	"strconv"

	"github.com/cristianoliveira/activity-tray/internal/domain"
)

// genericMessage is used for event types this build does not know about.
const genericMessage = "New activity recorded"

// FormatMessage produces the display message for a push event. Pure:
// the same type and data always yield the same string.
func FormatMessage(eventType string, data map[string]interface{}) string {
	user := stringField(data, "user_name")
	if user == "" {
		user = "Someone"
	}
	switch domain.Action(eventType) {
	case domain.ActionBookBorrowed:
		return fmt.Sprintf("%s borrowed %d item(s)", user, intField(data, "total_items", 1))
	case domain.ActionBookReturned:
		return fmt.Sprintf("%s returned %d item(s)", user, intField(data, "total_items", 1))
	case domain.ActionPenaltyPaid:
		if amount := stringOrNumberField(data, "amount"); amount != "" {
			return fmt.Sprintf("%s paid a penalty of %s", user, amount)
		}
		return fmt.Sprintf("%s paid a penalty", user)
	default:
		return genericMessage
	}
}

// stringField extracts a string value from loosely-typed event data.
func stringField(data map[string]interface{}, key string) string {
	if data == nil {
		return ""
	}
	if s, ok := data[key].(string); ok {
		return s
	}
	return ""
}

// intField extracts an integer; JSON numbers decode as float64.
func intField(data map[string]interface{}, key string, fallback int) int {
	if data == nil {
		return fallback
	}
	switch v := data[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// stringOrNumberField renders a value that servers send either as a
// string or as a number.
func stringOrNumberField(data map[string]interface{}, key string) string {
	if data == nil {
		return ""
	}
	switch v := data[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	}
	return ""
}
