package convert

import (
	"image"
	"math"
)

// luma is the ITU-R 601-2 grey level of an RGB triple.
func luma(r, g, b uint8) int {
	return (int(r)*299 + int(g)*587 + int(b)*114 + 500) / 1000
}

func clamp8(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// blend moves v away from base by factor: factor 0 yields base, 1 yields v.
func blend(base, v, factor float64) uint8 {
	return clamp8(base + factor*(v-base))
}

// adjustContrast scales every channel around the image's mean grey level.
func adjustContrast(img *image.RGBA, factor float64) {
	p := img.Pix
	n := len(p) / 4
	if n == 0 {
		return
	}
	var sum int
	for i := 0; i+3 < len(p); i += 4 {
		sum += luma(p[i], p[i+1], p[i+2])
	}
	mean := math.Round(float64(sum) / float64(n))
	for i := 0; i+3 < len(p); i += 4 {
		p[i+0] = blend(mean, float64(p[i+0]), factor)
		p[i+1] = blend(mean, float64(p[i+1]), factor)
		p[i+2] = blend(mean, float64(p[i+2]), factor)
	}
}

// adjustBrightness scales every channel towards black.
func adjustBrightness(img *image.RGBA, factor float64) {
	p := img.Pix
	for i := 0; i+3 < len(p); i += 4 {
		p[i+0] = blend(0, float64(p[i+0]), factor)
		p[i+1] = blend(0, float64(p[i+1]), factor)
		p[i+2] = blend(0, float64(p[i+2]), factor)
	}
}

// adjustSaturation scales each pixel around its own grey level.
func adjustSaturation(img *image.RGBA, factor float64) {
	p := img.Pix
	for i := 0; i+3 < len(p); i += 4 {
		grey := float64(luma(p[i], p[i+1], p[i+2]))
		p[i+0] = blend(grey, float64(p[i+0]), factor)
		p[i+1] = blend(grey, float64(p[i+1]), factor)
		p[i+2] = blend(grey, float64(p[i+2]), factor)
	}
}
