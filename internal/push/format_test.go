package push

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name      string
		eventType string
		data      map[string]interface{}
		want      string
	}{
		{
			name:      "borrowed",
			eventType: "BOOK_BORROWED",
			data:      map[string]interface{}{"user_name": "J. Cruz", "total_items": float64(2)},
			want:      "J. Cruz borrowed 2 item(s)",
		},
		{
			name:      "returned defaults to one item",
			eventType: "BOOK_RETURNED",
			data:      map[string]interface{}{"user_name": "A. Reyes"},
			want:      "A. Reyes returned 1 item(s)",
		},
		{
			name:      "penalty with numeric amount",
			eventType: "PENALTY_PAID",
			data:      map[string]interface{}{"user_name": "A. Reyes", "amount": float64(50)},
			want:      "A. Reyes paid a penalty of 50",
		},
		{
			name:      "penalty without amount",
			eventType: "PENALTY_PAID",
			data:      map[string]interface{}{"user_name": "A. Reyes"},
			want:      "A. Reyes paid a penalty",
		},
		{
			name:      "missing user",
			eventType: "BOOK_BORROWED",
			data:      map[string]interface{}{"total_items": float64(3)},
			want:      "Someone borrowed 3 item(s)",
		},
		{
			name:      "unknown type",
			eventType: "SHELF_REORGANIZED",
			data:      map[string]interface{}{"user_name": "J. Cruz"},
			want:      "New activity recorded",
		},
		{
			name:      "nil data",
			eventType: "BOOK_BORROWED",
			data:      nil,
			want:      "Someone borrowed 1 item(s)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FormatMessage(tt.eventType, tt.data))
		})
	}
}

func TestFormatMessageIsPure(t *testing.T) {
	data := map[string]interface{}{"user_name": "J. Cruz", "total_items": float64(2)}
	first := FormatMessage("BOOK_BORROWED", data)
	second := FormatMessage("BOOK_BORROWED", data)
	require.Equal(t, first, second)
}
