package matrix

import (
	"fmt"
	"sync"

	"tinygo.org/x/drivers"

	"github.com/lisheld/matrixslide/internal/domain"
)

// Driver shows frames on a tinygo display driver, such as a HUB75 panel
// or an SPI TFT.
type Driver struct {
	*buffer
	dev drivers.Displayer

	// flush serializes pushes to the device.
	flush sync.Mutex
}

// NewDriver adapts dev. The matrix size is the device size.
func NewDriver(dev drivers.Displayer, bitDepth int) *Driver {
	w, h := dev.Size()
	return &Driver{buffer: newBuffer(int(w), int(h), bitDepth), dev: dev}
}

// Show writes every pixel of f to the device and flushes it.
func (d *Driver) Show(f *domain.Frame) error {
	next, err := d.swap(f)
	if err != nil {
		return err
	}

	d.flush.Lock()
	defer d.flush.Unlock()
	for y := 0; y < next.Height(); y++ {
		for x := 0; x < next.Width(); x++ {
			d.dev.SetPixel(int16(x), int16(y), next.At(x, y))
		}
	}
	if err := d.dev.Display(); err != nil {
		return fmt.Errorf("matrix: flush: %w", err)
	}
	return nil
}

func (d *Driver) Close() error {
	d.close()
	return nil
}
