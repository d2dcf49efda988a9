package stringutil

import (
	"fmt"
	"time"
)

// FormatDuration renders a duration as H:MM:SS, truncated to whole seconds.
// Durations of a day or more keep accumulating hours rather than rolling
// over.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
}
