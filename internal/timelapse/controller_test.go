package timelapse

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestControllerTicks(t *testing.T) {
	ticks := make(chan time.Time, 64)
	running := make(chan bool, 4)
	start := at(12, 0)
	c := NewController(zaptest.NewLogger(t).Sugar(), start, Options{
		Speed:    60,
		Window:   FullDay,
		Interval: 5 * time.Millisecond,
		OnTick: func(d time.Time) {
			select {
			case ticks <- d:
			default:
			}
		},
		OnRunning: func(on bool) { running <- on },
	})

	c.Start()
	c.Start()
	assert.True(t, c.Running())
	assert.True(t, <-running)

	prev := start
	for i := 0; i < 3; i++ {
		select {
		case d := <-ticks:
			assert.True(t, d.After(prev), "tick %d did not advance", i)
			prev = d
		case <-time.After(2 * time.Second):
			t.Fatal("no tick")
		}
	}

	c.Stop()
	c.Stop()
	assert.False(t, c.Running())
	assert.False(t, <-running)
	assert.Empty(t, running)
	assert.False(t, c.Date().Before(prev))
}

func TestControllerToggle(t *testing.T) {
	c := NewController(zaptest.NewLogger(t).Sugar(), at(6, 0), Options{Interval: time.Hour})
	assert.True(t, c.Toggle())
	assert.True(t, c.Running())
	assert.False(t, c.Toggle())
	assert.False(t, c.Running())
	c.Close()
}

func TestControllerSettings(t *testing.T) {
	c := NewController(zaptest.NewLogger(t).Sugar(), at(6, 0), Options{Speed: -1})
	assert.Equal(t, DefaultSpeed, c.Speed())

	c.SetSpeed(1e6)
	assert.Equal(t, MaxSpeed, c.Speed())
	c.SetSpeed(90)
	assert.Equal(t, 90.0, c.Speed())

	c.SetWindow(Window{Start: 900, End: 300})
	assert.Equal(t, Window{Start: 300, End: 900}, c.Window())

	c.SetDate(at(9, 30))
	assert.Equal(t, at(9, 30), c.Date())
}

func TestControllerPostsCallbacks(t *testing.T) {
	var posted atomic.Int32
	done := make(chan struct{})
	c := NewController(zaptest.NewLogger(t).Sugar(), at(6, 0), Options{
		Interval: time.Millisecond,
		Post: func(f func()) {
			posted.Add(1)
			f()
		},
		OnTick: func(time.Time) {
			select {
			case <-done:
			default:
				close(done)
			}
		},
	})
	c.Start()
	require.Eventually(t, func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, 2*time.Second, time.Millisecond)
	c.Stop()
	assert.Positive(t, posted.Load())
}
