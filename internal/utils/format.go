package utils

import (
	"math"
	"strconv"
)

// FormatUSD renders a wager amount as whole-dollar USD with comma grouping,
// e.g. 1234567.8 -> "$1,234,568"
func FormatUSD(amount float64) string {
	neg := amount < 0
	n := int64(math.Round(math.Abs(amount)))
	digits := strconv.FormatInt(n, 10)

	var grouped []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, d)
	}

	if neg {
		return "-$" + string(grouped)
	}
	return "$" + string(grouped)
}

// FormatLevel renders a level value as plain text, "-" when the feed did not
// provide one
func FormatLevel(level float64, hasLevel bool) string {
	if !hasLevel {
		return "-"
	}
	return strconv.FormatFloat(level, 'f', -1, 64)
}

// DecomposeDuration splits a whole-second duration into days, hours, minutes
// and seconds. Negative inputs decompose to all zeros.
func DecomposeDuration(seconds int64) (days, hours, minutes, secs int64) {
	if seconds < 0 {
		return 0, 0, 0, 0
	}
	days = seconds / 86400
	hours = (seconds % 86400) / 3600
	minutes = (seconds % 3600) / 60
	secs = seconds % 60
	return days, hours, minutes, secs
}
