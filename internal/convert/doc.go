// Package convert turns photos into bitmaps tuned for an LED matrix.
//
// Each image is centre-cropped to the panel's aspect ratio, resampled to
// the panel size, enhanced (contrast up, brightness down, a little more
// saturation) and optionally quantized or dithered, then written as a
// 24-bit BMP the slideshow can fetch as is.
package convert
