package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

var (
	sunPrimary = color.NRGBA{R: 0xF2, G: 0x99, B: 0x1E, A: 0xFF}
	sunFocus   = color.NRGBA{R: 0xF2, G: 0x99, B: 0x1E, A: 0x7F}
)

// daylightTheme wraps the active theme and swaps the primary and focus
// colours for a warm sunlight tone.
type daylightTheme struct{ fyne.Theme }

func (t daylightTheme) Color(n fyne.ThemeColorName, v fyne.ThemeVariant) color.Color {
	switch n {
	case theme.ColorNamePrimary:
		return sunPrimary
	case theme.ColorNameFocus:
		return sunFocus
	}
	return t.Theme.Color(n, v)
}

// UseDaylightTheme applies the theme wrapper to the current app.
func UseDaylightTheme() {
	app := fyne.CurrentApp()
	if app == nil {
		return
	}
	current := app.Settings().Theme()
	if _, ok := current.(daylightTheme); ok {
		return
	}
	app.Settings().SetTheme(daylightTheme{Theme: current})
}
