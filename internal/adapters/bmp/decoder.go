// Package bmp decodes Windows bitmaps into display frames.
package bmp

import (
	"bytes"
	"fmt"

	"golang.org/x/image/bmp"

	"github.com/lisheld/matrixslide/internal/domain"
)

// Decoder implements ports.Decoder for BMP files.
type Decoder struct{}

// NewDecoder creates a BMP decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode parses data as a BMP. The bitmap must match the display size
// exactly; it is never scaled.
func (d *Decoder) Decode(data []byte, width, height int) (*domain.Frame, error) {
	if len(data) < 2 || data[0] != 'B' || data[1] != 'M' {
		return nil, fmt.Errorf("%w: missing BM signature", domain.ErrDecode)
	}

	cfg, err := bmp.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDecode, err)
	}
	if cfg.Width != width || cfg.Height != height {
		return nil, fmt.Errorf("%w: bitmap is %dx%d, display is %dx%d",
			domain.ErrDecode, cfg.Width, cfg.Height, width, height)
	}

	img, err := bmp.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDecode, err)
	}
	return domain.FrameFromImage(img), nil
}
