//go:build windows

package windowpos

import (
	"sync"
	"syscall"
	"unsafe"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver"
)

var (
	user32            = syscall.NewLazyDLL("user32.dll")
	procGetWindowRect = user32.NewProc("GetWindowRect")
	procSetWindowPos  = user32.NewProc("SetWindowPos")
)

type rect struct {
	Left, Top, Right, Bottom int32
}

const (
	swpNoSize     = 0x0001
	swpNoZOrder   = 0x0004
	swpNoActivate = 0x0010
)

// Get returns the top-left corner of the native window behind w.
func Get(w fyne.Window) (Position, bool) {
	var pos Position
	ok := withHWND(w, func(hwnd uintptr) bool {
		var r rect
		ret, _, err := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&r)))
		if ret == 0 {
			if err != syscall.Errno(0) {
				fyne.LogError("GetWindowRect failed", err)
			}
			return false
		}
		pos = Position{X: int(r.Left), Y: int(r.Top)}
		return true
	})
	return pos, ok
}

// Apply moves the native window without resizing it or changing its Z-order.
func Apply(w fyne.Window, pos Position) bool {
	return withHWND(w, func(hwnd uintptr) bool {
		ret, _, err := procSetWindowPos.Call(hwnd, 0, uintptr(int32(pos.X)), uintptr(int32(pos.Y)), 0, 0,
			swpNoSize|swpNoZOrder|swpNoActivate)
		if ret == 0 {
			if err != syscall.Errno(0) {
				fyne.LogError("SetWindowPos failed", err)
			}
			return false
		}
		return true
	})
}

// withHWND runs fn with the window handle on the GUI thread and waits for it.
func withHWND(w fyne.Window, fn func(hwnd uintptr) bool) bool {
	nw, ok := w.(driver.NativeWindow)
	if !ok {
		return false
	}
	var (
		success bool
		wg      sync.WaitGroup
	)
	wg.Add(1)
	nw.RunNative(func(ctx any) {
		defer wg.Done()
		winCtx, ok := ctx.(driver.WindowsWindowContext)
		if !ok || winCtx.HWND == 0 {
			return
		}
		success = fn(winCtx.HWND)
	})
	wg.Wait()
	return success
}
