// Package busday converts between stored UTC instants and business dates.
// The business timezone is a fixed +3h offset, so the business day boundary
// sits at 21:00 UTC of the previous calendar day. All stored instants are
// UTC; all user-facing dates are business dates.
package busday

import "time"

// Offset is the fixed business timezone offset from UTC.
const Offset = 3 * time.Hour

// Location is the business timezone. Fixed offset on purpose: the helper must
// not depend on the process's local timezone or on DST tables.
var Location = time.FixedZone("business", int(Offset/time.Second))

// Date returns the business date of an instant as a midnight-UTC time.Time.
// An event at 20:59:59 UTC belongs to the previous business date; at
// 21:00:00 UTC to the next.
func Date(instant time.Time) time.Time {
	shifted := instant.UTC().Add(Offset)
	return time.Date(shifted.Year(), shifted.Month(), shifted.Day(), 0, 0, 0, 0, time.UTC)
}

// Span returns the UTC half-open interval [start, end) covering the given
// business date.
func Span(date time.Time) (time.Time, time.Time) {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	start := d.Add(-Offset)
	return start, start.Add(24 * time.Hour)
}

// Today returns the current business date.
func Today() time.Time {
	return Date(time.Now())
}

// At converts a clock time on a business date into the UTC instant it names.
func At(date time.Time, hour, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, Location).UTC()
}

// ParseDate parses a YYYY-MM-DD business date.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", value, time.UTC)
}

// FormatDate renders a business date as YYYY-MM-DD.
func FormatDate(date time.Time) string {
	return date.Format("2006-01-02")
}
