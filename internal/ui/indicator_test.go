package ui

import (
	"image/color"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
)

func TestHsvToNRGBA(t *testing.T) {
	tests := []struct {
		name    string
		h, s, v float64
		want    color.NRGBA
	}{
		{name: "red", h: 0, s: 1, v: 1, want: color.NRGBA{255, 0, 0, 255}},
		{name: "green", h: 120, s: 1, v: 1, want: color.NRGBA{0, 255, 0, 255}},
		{name: "blue", h: 240, s: 1, v: 1, want: color.NRGBA{0, 0, 255, 255}},
		{name: "gray", h: 90, s: 0, v: 0.5, want: color.NRGBA{128, 128, 128, 255}},
		{name: "wraps", h: 480, s: 1, v: 1, want: color.NRGBA{0, 255, 0, 255}},
		{name: "negative", h: -120, s: 1, v: 1, want: color.NRGBA{0, 0, 255, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hsvToNRGBA(tt.h, tt.s, tt.v))
		})
	}
}

func TestGlowHueBounces(t *testing.T) {
	assert.Equal(t, glowLowHue, glowHue(0))
	assert.Equal(t, glowLowHue+glowStep, glowHue(1))
	assert.Equal(t, glowHighHue, glowHue(10))
	assert.Equal(t, glowHighHue-glowStep, glowHue(11))
	assert.Equal(t, glowLowHue, glowHue(20))
	for n := 0; n < 100; n++ {
		h := glowHue(n)
		assert.GreaterOrEqual(t, h, glowLowHue)
		assert.LessOrEqual(t, h, glowHighHue)
	}
}

func TestTimelapseIndicatorToggle(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	ti := NewTimelapseIndicator(10)
	assert.False(t, ti.Running())

	ti.SetRunning(true)
	ti.SetRunning(true)
	assert.True(t, ti.Running())

	ti.SetRunning(false)
	assert.False(t, ti.Running())
	assert.Equal(t, indicatorIdle, ti.dot.FillColor)
}
