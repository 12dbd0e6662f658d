package shared

import (
	"fmt"
	"time"
)

// FormatDuration formats duration into human-readable format (e.g., "2m 30s").
// Durations under ten seconds keep one decimal ("1.5s").
func FormatDuration(duration time.Duration) string {
	if duration < 0 {
		duration = 0
	}

	if duration < 10*time.Second {
		return fmt.Sprintf("%.1fs", duration.Seconds())
	}

	duration = duration.Round(time.Second)
	hours := duration / time.Hour
	duration %= time.Hour
	minutes := duration / time.Minute
	duration %= time.Minute
	seconds := duration / time.Second

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	} else if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}

	return fmt.Sprintf("%ds", seconds)
}
