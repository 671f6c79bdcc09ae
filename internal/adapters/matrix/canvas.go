package matrix

import (
	"image/color"

	"github.com/lisheld/matrixslide/internal/domain"
)

// Canvas lets tinygo drawing code (tinyfont, tinydraw) paint into a Frame.
// It implements drivers.Displayer.
type Canvas struct {
	frame *domain.Frame
}

// NewCanvas wraps f.
func NewCanvas(f *domain.Frame) *Canvas {
	return &Canvas{frame: f}
}

func (c *Canvas) Size() (x, y int16) {
	return int16(c.frame.Width()), int16(c.frame.Height())
}

func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	c.frame.Set(int(x), int(y), col)
}

// Display is a no-op; the frame is the output.
func (c *Canvas) Display() error { return nil }

// Frame returns the frame being drawn on.
func (c *Canvas) Frame() *domain.Frame { return c.frame }
