package domain

import (
	"image"
	"image/color"
)

// Matrix dimensions of the panel the slideshow drives.
const (
	MatrixWidth  = 64
	MatrixHeight = 64
)

// Frame is one decoded image, exactly the size of the matrix.
type Frame struct {
	// Source is the URL the frame was decoded from, empty for generated frames.
	Source string

	img *image.RGBA
}

// NewFrame returns a black frame of the given size.
func NewFrame(width, height int) *Frame {
	return &Frame{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// FrameFromImage copies src into a new frame. The frame takes the bounds
// of src, translated to the origin.
func FrameFromImage(src image.Image) *Frame {
	b := src.Bounds()
	f := NewFrame(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.RGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
			f.img.SetRGBA(x, y, c)
		}
	}
	return f
}

// Width returns the frame width in pixels.
func (f *Frame) Width() int { return f.img.Rect.Dx() }

// Height returns the frame height in pixels.
func (f *Frame) Height() int { return f.img.Rect.Dy() }

// At returns the colour at (x, y). Out-of-range coordinates read as black.
func (f *Frame) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= f.Width() || y >= f.Height() {
		return color.RGBA{}
	}
	return f.img.RGBAAt(x, y)
}

// Set writes the colour at (x, y), ignoring out-of-range coordinates.
func (f *Frame) Set(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= f.Width() || y >= f.Height() {
		return
	}
	f.img.SetRGBA(x, y, c)
}

// Fill paints every pixel with c.
func (f *Frame) Fill(c color.RGBA) {
	p := f.img.Pix
	for i := 0; i+3 < len(p); i += 4 {
		p[i+0] = c.R
		p[i+1] = c.G
		p[i+2] = c.B
		p[i+3] = c.A
	}
}

// Image exposes the frame as a read-only image.Image.
func (f *Frame) Image() image.Image { return f.img }

// Clone returns a deep copy.
func (f *Frame) Clone() *Frame {
	cp := &Frame{Source: f.Source, img: image.NewRGBA(f.img.Rect)}
	copy(cp.img.Pix, f.img.Pix)
	return cp
}

// Equal reports whether both frames hold identical pixels.
func (f *Frame) Equal(o *Frame) bool {
	if f == nil || o == nil {
		return f == o
	}
	if f.img.Rect != o.img.Rect {
		return false
	}
	for i := range f.img.Pix {
		if f.img.Pix[i] != o.img.Pix[i] {
			return false
		}
	}
	return true
}
