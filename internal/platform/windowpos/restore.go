// Package windowpos saves and restores native window coordinates where fyne
// does not expose them. Only Windows is supported; elsewhere the window
// manager decides.
package windowpos

import (
	"time"

	"fyne.io/fyne/v2"
)

// Position is the top-left corner of a window in screen pixels.
type Position struct {
	X, Y int
}

const (
	restoreAttempts = 10
	restoreEvery    = 150 * time.Millisecond
)

// Restore moves w to pos. The native window may not exist until it is shown,
// so failed attempts are retried in the background for a short while.
func Restore(w fyne.Window, pos Position) {
	retry(func() bool { return Apply(w, pos) }, restoreAttempts, restoreEvery)
}

// retry calls apply once inline and, if it fails, up to attempts more times
// on a goroutine. It returns a channel closed when retrying is over.
func retry(apply func() bool, attempts int, every time.Duration) <-chan struct{} {
	done := make(chan struct{})
	if apply() {
		close(done)
		return done
	}
	go func() {
		defer close(done)
		for i := 0; i < attempts; i++ {
			time.Sleep(every)
			if apply() {
				return
			}
		}
	}()
	return done
}
