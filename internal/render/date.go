package render

import "time"

// DateLayout is the fixed en-US header format
const DateLayout = "Monday, January 2, 2006"

// FormatDate renders t as e.g. "Sunday, July 20, 1969"
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DayDate returns the given month/day in the year of ref, keeping ref's location.
// February 29 in a non-leap year rolls over to March 1.
func DayDate(ref time.Time, month, day int) time.Time {
	return time.Date(ref.Year(), time.Month(month), day, 0, 0, 0, 0, ref.Location())
}
