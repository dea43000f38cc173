//go:build !windows

package windowpos

import "fyne.io/fyne/v2"

// Get is unavailable off Windows and always reports failure.
func Get(fyne.Window) (Position, bool) { return Position{}, false }

// Apply is unavailable off Windows and always reports failure.
func Apply(fyne.Window, Position) bool { return false }
