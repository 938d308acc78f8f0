package round

import "fmt"

// FormatRemaining renders seconds as mm:ss
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// ScoreText renders the score line shown at the end of a round
func ScoreText(correct, total int) string {
	return fmt.Sprintf("Score: %d/%d", correct, total)
}
