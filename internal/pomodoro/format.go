package pomodoro

import "fmt"

// Format renders seconds as MM:SS. Negative input renders as 00:00 and the
// minute field grows past two digits when needed.
func Format(remainingSeconds int) string {
	if remainingSeconds < 0 {
		remainingSeconds = 0
	}
	return fmt.Sprintf("%02d:%02d", remainingSeconds/60, remainingSeconds%60)
}
