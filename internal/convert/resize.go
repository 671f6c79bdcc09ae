package convert

import (
	"image"

	"golang.org/x/image/draw"
)

// centerCrop returns the largest rectangle of b with the aspect ratio
// w:h, centred in b.
func centerCrop(b image.Rectangle, w, h int) image.Rectangle {
	srcW, srcH := b.Dx(), b.Dy()
	imgRatio := float64(srcW) / float64(srcH)
	targetRatio := float64(w) / float64(h)

	switch {
	case imgRatio > targetRatio:
		newW := int(float64(srcH) * targetRatio)
		left := (srcW - newW) / 2
		return image.Rect(b.Min.X+left, b.Min.Y, b.Min.X+left+newW, b.Max.Y)
	case imgRatio < targetRatio:
		newH := int(float64(srcW) / targetRatio)
		top := (srcH - newH) / 2
		return image.Rect(b.Min.X, b.Min.Y+top, b.Max.X, b.Min.Y+top+newH)
	default:
		return b
	}
}

// cropResize centre-crops src to w:h and resamples it to w x h with a
// Catmull-Rom filter. The result is fully opaque.
func cropResize(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	// Transparent areas flatten onto black.
	draw.Draw(dst, dst.Bounds(), image.Black, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, centerCrop(src.Bounds(), w, h), draw.Over, nil)
	return dst
}
