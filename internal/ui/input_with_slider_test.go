package ui

import (
	"math"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"github.com/edward-ap/daylight/internal/slider"
)

func TestFormatDefault(t *testing.T) {
	tests := []struct {
		value     float64
		precision int
		want      string
	}{
		{value: 2.5, precision: 2, want: "2.5"},
		{value: 2.345, precision: 2, want: "2.35"},
		{value: 720, precision: 0, want: "720"},
		{value: 719.6, precision: 0, want: "720"},
		{value: -33.8688, precision: 2, want: "-33.87"},
		{value: 0.0000001, precision: 8, want: "0.0000001"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDefault(tt.value, tt.precision), "value %v", tt.value)
	}
}

func TestParseDefault(t *testing.T) {
	tests := []struct {
		text      string
		precision int
		want      float64
	}{
		{text: "12", want: 12},
		{text: " 12.345 ", precision: 2, want: 12.35},
		{text: "-", want: 0},
		{text: "", want: 0},
		{text: "abc", want: 0},
		{text: "NaN", want: 0},
		{text: "Inf", want: 0},
		{text: "1e2", want: 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseDefault(tt.text, tt.precision), "text %q", tt.text)
	}
}

func TestInputWithSliderCommitClampsAndFormats(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	in := NewInputWithSlider(-90, 90, 0.01, 10)
	w := test.NewWindow(in)
	defer w.Close()

	var got []float64
	in.OnChanged = func(v float64) { got = append(got, v) }

	in.entry.SetText("123")
	in.entry.OnSubmitted(in.entry.Text)
	assert.Equal(t, "90", in.Text())
	assert.Equal(t, 90.0, in.Value)

	in.entry.SetText("0")
	in.entry.OnSubmitted(in.entry.Text)
	assert.Equal(t, "0", in.Text())

	in.entry.SetText("-12.3456")
	in.entry.FocusLost()
	assert.Equal(t, "-12.35", in.Text())

	assert.Equal(t, []float64{90, 0, -12.35}, got)
	assert.Equal(t, slider.Single(-12.35), in.slider.Value)
}

func TestInputWithSliderBlurCommitsOnlyEdits(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	in := NewInputWithSlider(0, 10, 1, 5)
	w := test.NewWindow(in)
	defer w.Close()

	var got []float64
	in.OnChanged = func(v float64) { got = append(got, v) }

	in.entry.FocusGained()
	in.entry.SetText("7")
	in.entry.OnSubmitted(in.entry.Text)
	in.entry.FocusLost()
	assert.Equal(t, []float64{7}, got, "enter then blur commits once")

	in.entry.FocusGained()
	in.entry.FocusLost()
	assert.Equal(t, []float64{7}, got, "blur without an edit does not commit")

	in.entry.FocusGained()
	in.entry.SetText("3")
	in.entry.FocusLost()
	assert.Equal(t, []float64{7, 3}, got)
	assert.Equal(t, "3", in.Text())
}

func TestInputWithSliderKeepsPartialText(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	in := NewInputWithSlider(-10, 10, 1, 5)
	called := false
	in.OnChanged = func(float64) { called = true }

	in.entry.SetText("-")
	assert.Equal(t, "-", in.Text())
	assert.False(t, called)
	assert.Equal(t, slider.SinglePos(50), in.slider.engine.Position(), "unparsable text parks the slider at 0")
}

func TestInputWithSliderNonFiniteFallsBackToMin(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	in := NewInputWithSlider(3, 9, 1, 5)
	in.Parse = func(string, int) float64 { return math.NaN() }
	var got []float64
	in.OnChanged = func(v float64) { got = append(got, v) }

	in.entry.SetText("x")
	in.entry.OnSubmitted(in.entry.Text)
	assert.Equal(t, []float64{3}, got)
	assert.Equal(t, "3", in.Text())
}

func TestInputWithSliderFollowsSlider(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	in := NewInputWithSlider(0, 1, 0.25, 0)
	in.Unit = "x"
	in.HasDots = true
	in.Refresh()
	w := test.NewWindow(in)
	defer w.Close()

	var got []float64
	in.OnChanged = func(v float64) { got = append(got, v) }

	s := in.slider
	s.Resize(fyne.NewSize(100+2*s.trackInset(), 20))
	s.MouseDown(press(xAt(s, 50)))
	assert.Equal(t, "0.5", in.Text(), "live drag reformats the entry")
	assert.Empty(t, got)

	s.Dragged(drag(xAt(s, 80)))
	assert.Equal(t, "0.75", in.Text())
	s.DragEnd()
	assert.Equal(t, []float64{0.75}, got)

	s.thumbs[slider.ThumbMax].TypedKey(&fyne.KeyEvent{Name: fyne.KeyHome})
	assert.Equal(t, "0", in.Text())
	assert.Equal(t, []float64{0.75, 0}, got)
}

func TestInputWithSliderExternalValue(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	in := NewInputWithSlider(0, 100, 1, 0)
	called := false
	in.OnChanged = func(float64) { called = true }

	in.SetValue(250)
	assert.Equal(t, "100", in.Text())
	in.SetValue(math.NaN())
	assert.Equal(t, "", in.Text())
	assert.False(t, called)
}

func TestInputWithSliderDisable(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	in := NewInputWithSlider(0, 10, 1, 2)
	in.Disable()
	assert.True(t, in.entry.Disabled())
	assert.True(t, in.slider.Disabled())
	in.Enable()
	assert.False(t, in.slider.Disabled())
}
