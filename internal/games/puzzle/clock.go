package puzzle

import "fmt"

// FormatClock renders whole seconds as MM:SS. Negative values show 00:00.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
