//go:build !windows

package window

import (
	"runtime"

	"github.com/cockroachdb/errors"
)

// HWND is only available on Windows.
func (w *Window) HWND() (uintptr, error) {
	if w.window == nil {
		return 0, ErrNotCreated
	}
	return 0, errors.Newf("no HWND on %s", runtime.GOOS)
}
