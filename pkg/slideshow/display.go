package slideshow

import (
	"tinygo.org/x/drivers"

	"github.com/lisheld/matrixslide/internal/adapters/matrix"
)

// Displayer is a tinygo display driver, such as *hub75.Device.
type Displayer = drivers.Displayer

// NewDriverDisplay adapts a tinygo display driver for WithDisplay. The
// matrix size is taken from dev.Size(); bitDepth is bits per colour
// channel, 1 to 8.
func NewDriverDisplay(dev Displayer, bitDepth int) Display {
	return matrix.NewDriver(dev, bitDepth)
}

// NewHeadlessDisplay returns a display that keeps frames in memory only.
func NewHeadlessDisplay(width, height, bitDepth int) Display {
	return matrix.NewHeadless(width, height, bitDepth)
}
