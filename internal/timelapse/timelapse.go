// Package timelapse plays the selected date forward at a configurable speed,
// looping inside a window of the day.
package timelapse

import (
	"time"

	"github.com/edward-ap/daylight/internal/clock"
)

const (
	// DefaultSpeed is in simulated minutes per real second.
	DefaultSpeed = 30.0
	// MaxSpeed keeps a single frame well below a day.
	MaxSpeed = 720.0
	// DefaultInterval is the real time between two frames.
	DefaultInterval = 50 * time.Millisecond
)

// Window is a span of minutes of the day, both ends included.
type Window struct {
	Start int
	End   int
}

// FullDay is the window that never wraps.
var FullDay = Window{Start: 0, End: clock.LastMinute}

// Normalized clamps both ends into the day and orders them.
func (w Window) Normalized() Window {
	w.Start = clampMinute(w.Start)
	w.End = clampMinute(w.End)
	if w.Start > w.End {
		w.Start, w.End = w.End, w.Start
	}
	return w
}

// Full reports whether the window covers the whole day.
func (w Window) Full() bool {
	w = w.Normalized()
	return w.Start == 0 && w.End == clock.LastMinute
}

// Contains reports whether the minute of day of t lies inside the window.
func (w Window) Contains(t time.Time) bool {
	w = w.Normalized()
	m := clock.MinutesOfDay(t)
	return m >= w.Start && m <= w.End
}

func clampMinute(m int) int {
	if m < 0 {
		return 0
	}
	if m > clock.LastMinute {
		return clock.LastMinute
	}
	return m
}

// Step converts real elapsed time into simulated time at speed.
func Step(elapsed time.Duration, speed float64) time.Duration {
	return time.Duration(float64(elapsed) * speed * float64(time.Minute) / float64(time.Second))
}

// Advance moves date forward by elapsed real time played at speed. With a
// full-day window the date simply runs on into the next days; otherwise it
// loops from the end of the window back to its start on the same day. A date
// outside the window jumps to the window start.
func Advance(date time.Time, elapsed time.Duration, speed float64, w Window) time.Time {
	next := date.Add(Step(elapsed, speed))
	if w.Full() {
		return next
	}
	w = w.Normalized()
	y, mo, d := date.Date()
	start := time.Date(y, mo, d, 0, w.Start, 0, 0, date.Location())
	end := time.Date(y, mo, d, 0, w.End+1, 0, 0, date.Location())
	if date.Before(start) || !date.Before(end) {
		return start
	}
	span := end.Sub(start)
	off := next.Sub(start) % span
	if off < 0 {
		off += span
	}
	return start.Add(off)
}
