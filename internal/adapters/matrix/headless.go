package matrix

import "github.com/lisheld/matrixslide/internal/domain"

// Headless is a display with no output device.
type Headless struct {
	*buffer
}

// NewHeadless creates a width x height in-memory matrix.
func NewHeadless(width, height, bitDepth int) *Headless {
	return &Headless{buffer: newBuffer(width, height, bitDepth)}
}

// Show replaces the visible frame.
func (h *Headless) Show(f *domain.Frame) error {
	_, err := h.swap(f)
	return err
}

// Close marks the display closed; later Show calls fail.
func (h *Headless) Close() error {
	h.close()
	return nil
}
