package ui

import (
	"math"
	"strconv"
	"strings"

	"github.com/edward-ap/daylight/internal/slider"
)

// Formatter renders a value for the text half of an InputWithSlider.
type Formatter func(value float64, precision int) string

// Parser turns entry text back into a number.
type Parser func(text string, precision int) float64

// FormatDefault rounds to precision and prints the shortest form, so 2.50
// becomes "2.5".
func FormatDefault(value float64, precision int) string {
	return strconv.FormatFloat(slider.RoundTo(value, precision), 'f', -1, 64)
}

// ParseDefault rounds the parsed text to precision. Text that is not a
// finite number parses as 0.
func ParseDefault(text string, precision int) float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return slider.RoundTo(v, precision)
}
