package matrix

import (
	"image/color"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"github.com/lisheld/matrixslide/internal/domain"
)

// SplashText is shown while the network comes up.
const SplashText = "LOADING..."

// SplashColor is the splash text colour.
var SplashColor = color.RGBA{R: 255, A: 255}

// SplashFrame renders text centred on a black width x height frame.
func SplashFrame(width, height int, text string, c color.RGBA) *domain.Frame {
	frame := domain.NewFrame(width, height)
	frame.Source = "splash"
	canvas := NewCanvas(frame)

	font := &proggy.TinySZ8pt7b
	_, outbox := tinyfont.LineWidth(font, text)
	x := (int16(width) - int16(outbox)) / 2
	if x < 0 {
		x = 0
	}
	// y is the baseline; proggy glyphs are about 7 pixels tall.
	y := int16(height)/2 + 3
	tinyfont.WriteLine(canvas, font, x, y, text, c)
	return frame
}
