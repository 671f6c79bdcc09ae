// Package window is a desktop LED-matrix emulator built on ebiten.
package window

import (
	"errors"
	"sync"

	"github.com/lisheld/matrixslide/internal/adapters/matrix"
)

// ErrUnavailable is returned by Run in builds without cgo.
var ErrUnavailable = errors.New("window display requires cgo (build with CGO_ENABLED=1)")

// DefaultScale is the number of screen pixels per LED.
const DefaultScale = 8

// Window shows frames in a desktop window. Show may be called from any
// goroutine; Run must be called from the main goroutine.
type Window struct {
	*matrix.Headless
	scale int
	title string

	done     chan struct{}
	doneOnce sync.Once
}

// New creates a window display. It opens nothing until Run.
func New(width, height, bitDepth, scale int, title string) *Window {
	if scale <= 0 {
		scale = DefaultScale
	}
	if title == "" {
		title = "matrixslide"
	}
	return &Window{
		Headless: matrix.NewHeadless(width, height, bitDepth),
		scale:    scale,
		title:    title,
		done:     make(chan struct{}),
	}
}

// Close stops the render loop; later Show calls fail.
func (w *Window) Close() error {
	w.doneOnce.Do(func() { close(w.done) })
	return w.Headless.Close()
}
