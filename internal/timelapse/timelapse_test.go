package timelapse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(h, m int) time.Time { return time.Date(2024, 6, 21, h, m, 0, 0, time.UTC) }

func TestStep(t *testing.T) {
	assert.Equal(t, 30*time.Minute, Step(time.Second, 30))
	assert.Equal(t, 30*time.Minute, Step(500*time.Millisecond, 60))
	assert.Equal(t, time.Duration(0), Step(0, DefaultSpeed))
}

func TestAdvance(t *testing.T) {
	daytime := Window{Start: 6 * 60, End: 18 * 60}
	tests := []struct {
		name    string
		date    time.Time
		elapsed time.Duration
		speed   float64
		window  Window
		want    time.Time
	}{
		{name: "full day runs into tomorrow", date: at(23, 50), elapsed: time.Second, speed: 30, window: FullDay,
			want: time.Date(2024, 6, 22, 0, 20, 0, 0, time.UTC)},
		{name: "inside window", date: at(12, 0), elapsed: time.Second, speed: 30, window: daytime, want: at(12, 30)},
		{name: "wraps to window start", date: at(17, 50), elapsed: time.Second, speed: 30, window: daytime, want: at(6, 19)},
		{name: "before window jumps to start", date: at(3, 0), elapsed: time.Second, speed: 30, window: daytime, want: at(6, 0)},
		{name: "after window jumps to start", date: at(22, 0), elapsed: time.Second, speed: 30, window: daytime, want: at(6, 0)},
		{name: "reversed window", date: at(12, 0), elapsed: time.Second, speed: 30, window: Window{Start: 18 * 60, End: 6 * 60}, want: at(12, 30)},
		{name: "no time passes", date: at(8, 15), elapsed: 0, speed: 30, window: daytime, want: at(8, 15)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Advance(tt.date, tt.elapsed, tt.speed, tt.window))
		})
	}
}

func TestWindow(t *testing.T) {
	assert.True(t, FullDay.Full())
	assert.True(t, Window{Start: -5, End: 5000}.Full())
	assert.False(t, Window{Start: 0, End: 1438}.Full())
	assert.Equal(t, Window{Start: 60, End: 120}, Window{Start: 120, End: 60}.Normalized())

	w := Window{Start: 6 * 60, End: 18 * 60}
	assert.True(t, w.Contains(at(6, 0)))
	assert.True(t, w.Contains(at(18, 0)))
	assert.False(t, w.Contains(at(18, 1)))
}
