// utils/dates.go
package utils

import "time"

// Today returns the local calendar date in YYYY-MM-DD form.
func Today() string {
	return time.Now().Format("2006-01-02")
}

// NowClock returns the local wall-clock time in HH:mm form.
func NowClock() string {
	return time.Now().Format("15:04")
}
