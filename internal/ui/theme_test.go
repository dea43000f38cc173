package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
)

func TestUseDaylightTheme(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	UseDaylightTheme()
	UseDaylightTheme()

	th, ok := a.Settings().Theme().(daylightTheme)
	assert.True(t, ok)
	_, nested := th.Theme.(daylightTheme)
	assert.False(t, nested, "theme wrapped twice")

	assert.Equal(t, sunPrimary, th.Color(theme.ColorNamePrimary, theme.VariantLight))
	assert.Equal(t, th.Theme.Color(theme.ColorNameBackground, theme.VariantLight),
		th.Color(theme.ColorNameBackground, theme.VariantLight))
}
