package timelapse

import (
	"context"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Options configure a Controller.
type Options struct {
	Speed    float64
	Window   Window
	Interval time.Duration

	// Post runs callbacks on the UI thread. Nil runs them on the ticking
	// goroutine.
	Post func(func())
	// OnTick receives every simulated date while running.
	OnTick func(time.Time)
	// OnRunning is told when playback starts or stops.
	OnRunning func(bool)
}

// Controller advances a date on a background goroutine. All methods are safe
// to call from any goroutine.
type Controller struct {
	logger *zap.SugaredLogger

	mu       sync.Mutex
	cancel   context.CancelFunc
	date     time.Time
	speed    float64
	window   Window
	interval time.Duration
	post     func(func())
	onTick   func(time.Time)
	onRun    func(bool)
}

// NewController builds a stopped controller.
func NewController(logger *zap.SugaredLogger, date time.Time, opts Options) *Controller {
	c := &Controller{
		logger:   logger.Named("timelapse"),
		date:     date,
		speed:    sanitizeSpeed(opts.Speed),
		window:   opts.Window.Normalized(),
		interval: opts.Interval,
		post:     opts.Post,
		onTick:   opts.OnTick,
		onRun:    opts.OnRunning,
	}
	if c.interval <= 0 {
		c.interval = DefaultInterval
	}
	if c.post == nil {
		c.post = func(f func()) { f() }
	}
	return c
}

func sanitizeSpeed(s float64) float64 {
	if math.IsNaN(s) || s <= 0 {
		return DefaultSpeed
	}
	return math.Min(s, MaxSpeed)
}

// Running reports whether playback is active.
func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancel != nil
}

// Date returns the current simulated date.
func (c *Controller) Date() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.date
}

// SetDate moves the simulated date, e.g. after the user dragged the time
// slider. A running timelapse continues from there.
func (c *Controller) SetDate(t time.Time) {
	c.mu.Lock()
	c.date = t
	c.mu.Unlock()
}

// SetSpeed sets simulated minutes per real second. Non-positive values reset
// to DefaultSpeed.
func (c *Controller) SetSpeed(s float64) {
	c.mu.Lock()
	c.speed = sanitizeSpeed(s)
	c.mu.Unlock()
}

// Speed returns the playback speed.
func (c *Controller) Speed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

// SetWindow changes the looping window.
func (c *Controller) SetWindow(w Window) {
	c.mu.Lock()
	c.window = w.Normalized()
	c.mu.Unlock()
}

// Window returns the looping window.
func (c *Controller) Window() Window {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.window
}

// Start begins playback. Starting a running controller does nothing.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.cancel != nil {
		c.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	interval := c.interval
	c.mu.Unlock()

	c.logger.Debugw("Timelapse started", "speed", c.Speed(), "window", c.Window())
	c.notifyRunning(true)
	go c.run(ctx, interval)
}

// Stop ends playback. Stopping a stopped controller does nothing.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.cancel == nil {
		c.mu.Unlock()
		return
	}
	c.cancel()
	c.cancel = nil
	c.mu.Unlock()

	c.logger.Debug("Timelapse stopped")
	c.notifyRunning(false)
}

// Toggle flips playback and returns the new state.
func (c *Controller) Toggle() bool {
	if c.Running() {
		c.Stop()
		return false
	}
	c.Start()
	return true
}

// Close stops playback.
func (c *Controller) Close() { c.Stop() }

func (c *Controller) notifyRunning(on bool) {
	if c.onRun != nil {
		c.post(func() { c.onRun(on) })
	}
}

func (c *Controller) run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			elapsed := now.Sub(last)
			last = now

			c.mu.Lock()
			// a Stop may have raced with this frame
			if ctx.Err() != nil {
				c.mu.Unlock()
				return
			}
			c.date = Advance(c.date, elapsed, c.speed, c.window)
			date := c.date
			c.mu.Unlock()

			if c.onTick != nil {
				c.post(func() { c.onTick(date) })
			}
		}
	}
}
