package convert

import (
	"fmt"

	"github.com/lisheld/matrixslide/internal/domain"
)

// Options controls a conversion.
type Options struct {
	Width  int
	Height int

	Brightness float64
	Contrast   float64
	Saturation float64

	// Quantize reduces the image to a 256 colour median-cut palette.
	Quantize bool

	// Dither reduces the image to 64 colours with Floyd-Steinberg error
	// diffusion. Applied after Quantize when both are set.
	Dither bool
}

// Palette sizes used by Quantize and Dither.
const (
	QuantizeColors = 256
	DitherColors   = 64
)

// DefaultOptions returns the settings tuned for a 64x64 HUB75 panel.
func DefaultOptions() Options {
	return Options{
		Width:      domain.MatrixWidth,
		Height:     domain.MatrixHeight,
		Brightness: 0.7,
		Contrast:   1.2,
		Saturation: 1.1,
	}
}

// Validate checks the options.
func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("size must be positive, got %dx%d", o.Width, o.Height)
	}
	if o.Brightness <= 0 {
		return fmt.Errorf("brightness must be positive, got %v", o.Brightness)
	}
	if o.Contrast <= 0 {
		return fmt.Errorf("contrast must be positive, got %v", o.Contrast)
	}
	if o.Saturation < 0 {
		return fmt.Errorf("saturation must not be negative, got %v", o.Saturation)
	}
	return nil
}
