package convert

import (
	"image"
	"image/color"

	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/draw"
)

// medianCutPalette builds a palette of at most n colours.
func medianCutPalette(img image.Image, n int) color.Palette {
	q := quantize.MedianCutQuantizer{}
	return q.Quantize(make(color.Palette, 0, n), img)
}

// quantizeColors maps every pixel to its nearest colour in a median-cut
// palette of n colours.
func quantizeColors(img *image.RGBA, n int) *image.RGBA {
	pal := image.NewPaletted(img.Bounds(), medianCutPalette(img, n))
	draw.Draw(pal, pal.Bounds(), img, img.Bounds().Min, draw.Src)
	return toRGBA(pal)
}

// ditherColors reduces img to n colours with Floyd-Steinberg diffusion.
func ditherColors(img *image.RGBA, n int) *image.RGBA {
	pal := image.NewPaletted(img.Bounds(), medianCutPalette(img, n))
	draw.FloydSteinberg.Draw(pal, pal.Bounds(), img, img.Bounds().Min)
	return toRGBA(pal)
}

func toRGBA(src image.Image) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	return dst
}
