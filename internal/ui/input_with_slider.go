package ui

import (
	"math"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/edward-ap/daylight/internal/slider"
)

// InputWithSlider pairs a numeric entry with a single-thumb RangeSlider.
// The entry keeps its own text, so half-typed input such as "-" survives
// until the entry loses focus or Enter is pressed.
type InputWithSlider struct {
	widget.DisableableWidget

	Min   float64
	Max   float64
	Step  float64
	Value float64
	// Unit is shown after the entry, e.g. "°" or "x".
	Unit string

	HasDots bool
	Hovered bool
	Active  bool

	Format Formatter
	Parse  Parser

	// OnChanged receives values committed from either half.
	OnChanged func(float64)

	entry  *numberEntry
	unit   *widget.Label
	slider *RangeSlider
}

// NewInputWithSlider creates the composite over [min, max] with the given
// step.
func NewInputWithSlider(min, max, step, value float64) *InputWithSlider {
	w := &InputWithSlider{
		Min:    min,
		Max:    max,
		Step:   step,
		Value:  value,
		Format: FormatDefault,
		Parse:  ParseDefault,
		unit:   widget.NewLabel(""),
		slider: NewSlider(min, max, value),
	}
	w.slider.Step = step
	w.entry = newNumberEntry(w)
	w.entry.OnChanged = w.typed
	w.entry.OnSubmitted = w.commitText
	w.slider.OnChanged = w.sliderCommitted
	w.slider.OnMouseMove = w.sliderMoved
	w.ExtendBaseWidget(w)
	w.syncFromValue()
	return w
}

// SetValue adopts an external value without firing OnChanged. Non-finite
// values clear the entry.
func (w *InputWithSlider) SetValue(v float64) {
	w.Value = v
	w.syncFromValue()
}

// Text returns the current entry text.
func (w *InputWithSlider) Text() string { return w.entry.Text }

func (w *InputWithSlider) precision() int { return slider.PrecisionOf(w.Step) }

func (w *InputWithSlider) format(v float64) string {
	if w.Format == nil {
		return FormatDefault(v, w.precision())
	}
	return w.Format(v, w.precision())
}

func (w *InputWithSlider) parse(text string) float64 {
	if w.Parse == nil {
		return ParseDefault(text, w.precision())
	}
	return w.Parse(text, w.precision())
}

func (w *InputWithSlider) syncFromValue() {
	text := ""
	if !math.IsNaN(w.Value) && !math.IsInf(w.Value, 0) {
		v := slider.Clamp(w.Value, w.Min, w.Max)
		text = w.format(v)
		w.slider.Value = slider.Single(v)
	}
	w.entry.SetText(text)
	w.Refresh()
}

// typed moves the slider along with the text being edited.
func (w *InputWithSlider) typed(text string) {
	w.slider.SetValue(slider.Single(w.parse(strings.TrimSpace(text))))
}

func (w *InputWithSlider) commitText(text string) {
	v := w.parse(strings.TrimSpace(text))
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = w.Min
	}
	v = slider.Clamp(v, w.Min, w.Max)
	w.Value = v
	w.entry.SetText(w.format(v))
	w.slider.SetValue(slider.Single(v))
	if w.OnChanged != nil {
		w.OnChanged(v)
	}
}

// blurred commits the text unless it still shows the current value.
func (w *InputWithSlider) blurred(text string) {
	text = strings.TrimSpace(text)
	if math.IsNaN(w.Value) || math.IsInf(w.Value, 0) {
		if text == "" {
			return
		}
	} else if text == w.format(slider.Clamp(w.Value, w.Min, w.Max)) {
		return
	}
	w.commitText(text)
}

func (w *InputWithSlider) sliderCommitted(v slider.Value) {
	w.Value = v.X
	w.entry.SetText(w.format(v.X))
	if w.OnChanged != nil {
		w.OnChanged(v.X)
	}
}

func (w *InputWithSlider) sliderMoved(v slider.Value) {
	w.entry.SetText(w.format(v.X))
}

// Refresh pushes the exported fields down to both halves.
func (w *InputWithSlider) Refresh() {
	s := w.slider
	s.Min, s.Max, s.Step = w.Min, w.Max, w.Step
	s.HasDots = w.HasDots
	s.Hovered = w.Hovered || w.entry.focused
	s.Active = w.Active
	w.unit.SetText(w.Unit)
	if w.Unit == "" {
		w.unit.Hide()
	} else {
		w.unit.Show()
	}
	if w.Disabled() {
		w.entry.Disable()
		s.Disable()
	} else {
		w.entry.Enable()
		s.Enable()
	}
	s.Refresh()
	w.BaseWidget.Refresh()
}

func (w *InputWithSlider) CreateRenderer() fyne.WidgetRenderer {
	row := container.NewBorder(nil, nil, nil, w.unit, w.entry)
	return widget.NewSimpleRenderer(container.NewVBox(row, w.slider))
}

// numberEntry reports blur to its composite.
type numberEntry struct {
	widget.Entry
	owner   *InputWithSlider
	focused bool
}

func newNumberEntry(owner *InputWithSlider) *numberEntry {
	e := &numberEntry{owner: owner}
	e.ExtendBaseWidget(e)
	return e
}

func (e *numberEntry) FocusGained() {
	e.Entry.FocusGained()
	e.focused = true
	e.owner.Refresh()
}

func (e *numberEntry) FocusLost() {
	e.Entry.FocusLost()
	e.focused = false
	e.owner.blurred(e.Text)
	e.owner.Refresh()
}
