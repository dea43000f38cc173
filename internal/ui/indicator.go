package ui

import (
	"image/color"
	"math"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
)

var indicatorIdle = color.NRGBA{0x80, 0x80, 0x80, 0xFF}

const (
	glowLowHue  = 12.0 // deep orange
	glowHighHue = 52.0 // warm yellow
	glowStep    = 4.0
)

// TimelapseIndicator is a small dot that glows through sunrise colours while
// the timelapse runs and turns gray when it stops.
type TimelapseIndicator struct {
	holder *fyne.Container
	dot    *canvas.Circle

	mu   sync.Mutex
	stop chan struct{}
	tick time.Duration
}

// NewTimelapseIndicator builds an indicator with the given diameter.
func NewTimelapseIndicator(diameter float32) *TimelapseIndicator {
	c := canvas.NewCircle(indicatorIdle)
	c.StrokeColor = color.Transparent
	inner := container.New(layout.NewGridWrapLayout(fyne.NewSize(diameter, diameter)), c)
	return &TimelapseIndicator{
		holder: container.NewCenter(inner),
		dot:    c,
		tick:   90 * time.Millisecond,
	}
}

// CanvasObject returns the object to place in layouts.
func (ti *TimelapseIndicator) CanvasObject() fyne.CanvasObject { return ti.holder }

// Running reports whether the glow animation is active.
func (ti *TimelapseIndicator) Running() bool {
	ti.mu.Lock()
	defer ti.mu.Unlock()
	return ti.stop != nil
}

// SetRunning starts or stops the glow. Safe to call from any goroutine.
func (ti *TimelapseIndicator) SetRunning(on bool) {
	ti.mu.Lock()
	defer ti.mu.Unlock()
	switch {
	case on && ti.stop == nil:
		ti.stop = make(chan struct{})
		go ti.glow(ti.stop, ti.tick)
	case !on && ti.stop != nil:
		close(ti.stop)
		ti.stop = nil
		CallOnMain(func() { ti.paint(indicatorIdle) })
	}
}

func (ti *TimelapseIndicator) glow(stop <-chan struct{}, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for n := 0; ; n++ {
		select {
		case <-stop:
			return
		case <-t.C:
			col := hsvToNRGBA(glowHue(n), 0.8, 1)
			CallOnMain(func() {
				// a stop may have raced with this frame
				if ti.Running() {
					ti.paint(col)
				}
			})
		}
	}
}

func (ti *TimelapseIndicator) paint(col color.NRGBA) {
	ti.dot.FillColor = col
	ti.dot.Refresh()
}

// glowHue bounces between the low and high hue, one step per frame.
func glowHue(frame int) float64 {
	span := glowHighHue - glowLowHue
	period := 2 * span / glowStep
	pos := math.Mod(float64(frame), period) * glowStep
	if pos > span {
		pos = 2*span - pos
	}
	return glowLowHue + pos
}

// hsvToNRGBA converts HSV (0..360, 0..1, 0..1) to color.NRGBA.
func hsvToNRGBA(h, s, v float64) color.NRGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return color.NRGBA{
		R: uint8((r+m)*255 + 0.5),
		G: uint8((g+m)*255 + 0.5),
		B: uint8((b+m)*255 + 0.5),
		A: 0xFF,
	}
}
