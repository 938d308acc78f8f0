package round

import "testing"

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		seconds  int
		expected string
	}{
		{120, "02:00"},
		{119, "01:59"},
		{61, "01:01"},
		{9, "00:09"},
		{0, "00:00"},
		{-5, "00:00"},
	}
	for _, tt := range tests {
		if got := FormatRemaining(tt.seconds); got != tt.expected {
			t.Errorf("FormatRemaining(%d) = %q, want %q", tt.seconds, got, tt.expected)
		}
	}
}

func TestScoreText(t *testing.T) {
	if got := ScoreText(7, 10); got != "Score: 7/10" {
		t.Errorf("ScoreText(7, 10) = %q", got)
	}
}
