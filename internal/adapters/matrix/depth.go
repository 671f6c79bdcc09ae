package matrix

import (
	"image/color"

	"github.com/lisheld/matrixslide/internal/domain"
)

// DefaultBitDepth matches the panel's default bit-plane count.
const DefaultBitDepth = 4

// reduceChannel keeps the top bits of v and rescales to 0..255.
func reduceChannel(v uint8, bits int) uint8 {
	if bits >= 8 {
		return v
	}
	levels := uint32(1)<<bits - 1
	q := uint32(v) >> (8 - bits)
	return uint8(q * 255 / levels)
}

// ReduceDepth returns a copy of f with each channel limited to bits bits.
// Depths outside 1..8 are clamped.
func ReduceDepth(f *domain.Frame, bits int) *domain.Frame {
	if bits < 1 {
		bits = 1
	}
	out := f.Clone()
	if bits >= 8 {
		return out
	}
	for y := 0; y < out.Height(); y++ {
		for x := 0; x < out.Width(); x++ {
			c := out.At(x, y)
			out.Set(x, y, color.RGBA{
				R: reduceChannel(c.R, bits),
				G: reduceChannel(c.G, bits),
				B: reduceChannel(c.B, bits),
				A: 255,
			})
		}
	}
	return out
}
