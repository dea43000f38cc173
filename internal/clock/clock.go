// Package clock converts between wall-clock times and the minutes-of-day
// values driven by the time slider.
package clock

import (
	"regexp"
	"strconv"
	"time"
)

const (
	MinutesInHour = 60
	MinutesInDay  = 24 * MinutesInHour
	// LastMinute is 23:59, the upper end of the time slider.
	LastMinute = MinutesInDay - 1

	DateLayout = "2006-01-02"
	TimeLayout = "3:04 PM"
)

var dateRe = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// MinutesOfDay returns the minutes elapsed since local midnight of t.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*MinutesInHour + t.Minute()
}

// WithMinutes moves t to the given minute of its day. Seconds are kept.
func WithMinutes(t time.Time, minutes int) time.Time {
	if minutes < 0 {
		minutes = 0
	}
	if minutes > LastMinute {
		minutes = LastMinute
	}
	return time.Date(t.Year(), t.Month(), t.Day(),
		minutes/MinutesInHour, minutes%MinutesInHour, t.Second(), t.Nanosecond(), t.Location())
}

// WithDate returns date's calendar day at current's time of day, in current's
// location.
func WithDate(current, date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		current.Hour(), current.Minute(), current.Second(), current.Nanosecond(), current.Location())
}

// FormatHHMM renders t as "3:04 PM".
func FormatHHMM(t time.Time) string { return t.Format(TimeLayout) }

// FormatMinutes renders a minute of the day as "3:04 PM".
func FormatMinutes(minutes int) string {
	return FormatHHMM(WithMinutes(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), minutes))
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string { return t.Format(DateLayout) }

// ParseDate applies a YYYY-MM-DD value to now, keeping now's time of day.
// Out-of-range days roll over into the next month. Anything else returns now
// unchanged and false.
func ParseDate(value string, now time.Time) (time.Time, bool) {
	m := dateRe.FindStringSubmatch(value)
	if m == nil {
		return now, false
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location())
	return WithDate(now, d), true
}
