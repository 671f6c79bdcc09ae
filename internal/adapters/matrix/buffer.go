package matrix

import (
	"fmt"
	"sync"

	"github.com/lisheld/matrixslide/internal/domain"
)

// buffer holds the frame currently on screen.
type buffer struct {
	width, height int
	bits          int

	mu      sync.RWMutex
	current *domain.Frame
	shows   int
	closed  bool
}

func newBuffer(width, height, bits int) *buffer {
	if bits <= 0 {
		bits = DefaultBitDepth
	}
	return &buffer{
		width:   width,
		height:  height,
		bits:    bits,
		current: domain.NewFrame(width, height),
	}
}

func (b *buffer) Size() (int, int) { return b.width, b.height }

// swap stores a depth-reduced copy of f as the visible frame.
func (b *buffer) swap(f *domain.Frame) (*domain.Frame, error) {
	if f == nil {
		return nil, fmt.Errorf("matrix: nil frame")
	}
	if f.Width() != b.width || f.Height() != b.height {
		return nil, fmt.Errorf("matrix: frame is %dx%d, panel is %dx%d", f.Width(), f.Height(), b.width, b.height)
	}
	next := ReduceDepth(f, b.bits)
	next.Source = f.Source

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, fmt.Errorf("matrix: display closed")
	}
	b.current = next
	b.shows++
	return next, nil
}

// Current returns a copy of the frame on screen.
func (b *buffer) Current() *domain.Frame {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.current.Clone()
}

// Shows returns how many frames have been displayed.
func (b *buffer) Shows() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.shows
}

func (b *buffer) close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
}
