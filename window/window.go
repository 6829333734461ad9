// Package window opens the SDL2 window the swap chain presents to and pumps
// its events.
package window

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/veandco/go-sdl2/sdl"
)

var ErrNotCreated = errors.New("window has not been created")

type Window struct {
	window    *sdl.Window
	closed    bool
	minimized bool
}

// Create initializes SDL video and opens a fixed-size window centered on the
// primary display.
func (w *Window) Create(title string, width, height uint32) error {
	if err := w.Destroy(); err != nil {
		return err
	}

	if width == 0 || height == 0 {
		return errors.Newf("create window: size %dx%d", width, height)
	}
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return errors.Wrap(err, "init SDL video")
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, int32(width), int32(height), sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return errors.Wrap(err, "create window")
	}
	w.window = window
	w.closed = false
	w.minimized = false
	return nil
}

// Poll handles every pending event and reports whether the window is still
// open.
func (w *Window) Poll() bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		w.handle(event)
	}
	return !w.closed
}

// Wait blocks for at most timeout until an event arrives, then handles every
// pending event like Poll.
func (w *Window) Wait(timeout time.Duration) bool {
	if event := sdl.WaitEventTimeout(int(timeout / time.Millisecond)); event != nil {
		w.handle(event)
	}
	return w.Poll()
}

func (w *Window) handle(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		w.closed = true
	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_CLOSE:
			w.closed = true
		case sdl.WINDOWEVENT_MINIMIZED:
			w.minimized = true
		case sdl.WINDOWEVENT_RESTORED, sdl.WINDOWEVENT_SHOWN:
			w.minimized = false
		}
	}
}

// Minimized reports whether the window is iconified. Nothing needs drawing
// while it is.
func (w *Window) Minimized() bool {
	return w.minimized
}

// Size is the client area in pixels.
func (w *Window) Size() (width, height uint32) {
	if w.window == nil {
		return 0, 0
	}
	cw, ch := w.window.GetSize()
	if cw < 0 || ch < 0 {
		return 0, 0
	}
	return uint32(cw), uint32(ch)
}

// Destroy closes the window and shuts SDL down. SDL is shut down even when
// destroying the window fails, and a second call is a no-op.
func (w *Window) Destroy() error {
	if w.window == nil {
		return nil
	}
	err := w.window.Destroy()
	w.window = nil
	sdl.Quit()
	return errors.Wrap(err, "destroy window")
}
