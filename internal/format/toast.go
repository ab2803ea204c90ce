package format

import (
	"fmt"

	"github.com/cristianoliveira/activity-tray/internal/colors"
	"github.com/cristianoliveira/activity-tray/internal/toast"
)

// ToastLine renders one toast for plain terminal output.
func ToastLine(t toast.Toast) string {
	timeStr := t.CreatedAt.Local().Format("15:04:05")
	return fmt.Sprintf("[%s] %s", timeStr, t.Message)
}

// ColoredToastLine renders one toast with its action color.
func ColoredToastLine(t toast.Toast) string {
	line := ToastLine(t)
	color := toastColorForType(t.Type)
	if color == "" {
		return line
	}
	return color + line + colors.Reset
}

func toastColorForType(toastType string) string {
	switch toastType {
	case "BOOK_BORROWED":
		return colors.Cyan
	case "BOOK_RETURNED":
		return colors.Green
	case "PENALTY_PAID":
		return colors.Yellow
	default:
		return ""
	}
}

// Badge renders the unread counter for the status line.
func Badge(count int) string {
	if count <= 0 {
		return "no unread activity"
	}
	return fmt.Sprintf("%d unread", count)
}
