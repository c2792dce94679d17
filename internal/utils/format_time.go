package utils

import (
	"fmt"
	"time"
)

// FormatGameDate renders a match creation timestamp (milliseconds) relative to now.
func FormatGameDate(timestamp int64, now time.Time) string {
	t := time.UnixMilli(timestamp).In(now.Location())
	elapsed := now.Sub(t)

	if elapsed < 24*time.Hour && t.Day() == now.Day() {
		return t.Format("Today at 3:04 PM")
	} else if elapsed < 48*time.Hour {
		return t.Format("Yesterday at 3:04 PM")
	}

	return t.Format("Jan 2 at 3:04 PM")
}

// FormatDuration renders a game length in seconds as m:ss.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
