package window

import (
	"image"
	"image/color"

	"github.com/lisheld/matrixslide/internal/domain"
)

// dotMask returns a scale x scale coverage mask of a filled circle, with a
// one pixel gap to the neighbouring LED when scale allows.
func dotMask(scale int) []bool {
	mask := make([]bool, scale*scale)
	if scale <= 2 {
		for i := range mask {
			mask[i] = true
		}
		return mask
	}
	r := float64(scale-1) / 2
	c := float64(scale-1) / 2
	limit := (r - 0.25) * (r - 0.25)
	for y := 0; y < scale; y++ {
		for x := 0; x < scale; x++ {
			dx, dy := float64(x)-c, float64(y)-c
			mask[y*scale+x] = dx*dx+dy*dy <= limit
		}
	}
	return mask
}

// renderLEDs paints f into dst as round LEDs, scale pixels per LED. Unlit
// space is dark grey so the grid stays visible.
func renderLEDs(dst *image.RGBA, f *domain.Frame, mask []bool, scale int) {
	off := color.RGBA{R: 12, G: 12, B: 12, A: 255}
	for y := 0; y < f.Height(); y++ {
		for x := 0; x < f.Width(); x++ {
			led := f.At(x, y)
			led.A = 255
			for my := 0; my < scale; my++ {
				row := (y*scale + my) * dst.Stride
				for mx := 0; mx < scale; mx++ {
					c := off
					if mask[my*scale+mx] {
						c = led
					}
					i := row + (x*scale+mx)*4
					dst.Pix[i+0] = c.R
					dst.Pix[i+1] = c.G
					dst.Pix[i+2] = c.B
					dst.Pix[i+3] = c.A
				}
			}
		}
	}
}
