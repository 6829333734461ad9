package window

import (
	"github.com/cockroachdb/errors"
	"github.com/veandco/go-sdl2/sdl"
)

// HWND returns the Win32 handle of the window.
func (w *Window) HWND() (uintptr, error) {
	if w.window == nil {
		return 0, ErrNotCreated
	}
	info, err := w.window.GetWMInfo()
	if err != nil {
		return 0, errors.Wrap(err, "query native window")
	}
	if uint32(info.Subsystem) != uint32(sdl.SYSWM_WINDOWS) {
		return 0, errors.Newf("window subsystem %d is not Win32", info.Subsystem)
	}
	hwnd := uintptr(info.GetWindowsInfo().Window)
	if hwnd == 0 {
		return 0, errors.New("window has no HWND")
	}
	return hwnd, nil
}
