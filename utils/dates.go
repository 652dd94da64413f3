package utils

import "time"

// DateLayout is the wire format for availability and booking dates.
const DateLayout = "2006-01-02"

// DefaultSlotTimes is the seeded working window, 9 AM to 5 PM on the hour.
var DefaultSlotTimes = []string{
	"09:00", "10:00", "11:00", "12:00",
	"13:00", "14:00", "15:00", "16:00", "17:00",
}

// RollingDates returns n consecutive dates starting at from, formatted with
// DateLayout. Used to keep each provider's availability a rolling window.
func RollingDates(from time.Time, n int) []string {
	dates := make([]string, 0, n)
	for i := 0; i < n; i++ {
		dates = append(dates, from.AddDate(0, 0, i).Format(DateLayout))
	}
	return dates
}
