package transcript

import (
	"fmt"
	"math"
)

// formatTimestamp renders seconds as HH:MM:SS<sep>mmm with zero padding. The
// hours field is two digits minimum and widens when the source runs past 100
// hours. Offsets are rounded to whole milliseconds.
func formatTimestamp(seconds float64, sep byte) string {
	totalMillis := int64(math.Round(seconds * 1000))
	if totalMillis < 0 {
		totalMillis = 0
	}
	hours := totalMillis / 3_600_000
	minutes := (totalMillis % 3_600_000) / 60_000
	secs := (totalMillis % 60_000) / 1000
	millis := totalMillis % 1000
	return fmt.Sprintf("%02d:%02d:%02d%c%03d", hours, minutes, secs, sep, millis)
}
