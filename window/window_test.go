package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"
)

func TestHandle(t *testing.T) {
	assert := assert.New(t)

	var w Window
	w.handle(&sdl.WindowEvent{Event: sdl.WINDOWEVENT_MINIMIZED})
	assert.True(w.Minimized())
	w.handle(&sdl.WindowEvent{Event: sdl.WINDOWEVENT_RESTORED})
	assert.False(w.Minimized())
	assert.False(w.closed)

	w.handle(&sdl.KeyboardEvent{})
	assert.False(w.closed)

	w.handle(&sdl.QuitEvent{})
	assert.True(w.closed)

	w = Window{}
	w.handle(&sdl.WindowEvent{Event: sdl.WINDOWEVENT_CLOSE})
	assert.True(w.closed)
}

func TestUncreated(t *testing.T) {
	var w Window
	width, height := w.Size()
	assert.Zero(t, width)
	assert.Zero(t, height)

	_, err := w.HWND()
	assert.ErrorIs(t, err, ErrNotCreated)

	assert.NoError(t, w.Destroy())
	assert.NoError(t, w.Destroy())
	assert.Error(t, w.Create("Game", 0, 720))
}
