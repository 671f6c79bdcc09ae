//go:build cgo

package window

import (
	"context"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Available reports whether this build can open a window.
const Available = true

// Run opens the window and blocks until it is closed, ctx is done or
// Close is called.
func (w *Window) Run(ctx context.Context) error {
	width, height := w.Size()
	g := &game{w: w, ctx: ctx, mask: dotMask(w.scale), version: -1}
	ebiten.SetWindowTitle(w.title)
	ebiten.SetWindowSize(width*w.scale, height*w.scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(30)
	return ebiten.RunGame(g)
}

type game struct {
	w    *Window
	ctx  context.Context
	mask []bool

	img     *image.RGBA
	leds    *ebiten.Image
	version int
}

func (g *game) Update() error {
	select {
	case <-g.ctx.Done():
		return ebiten.Termination
	case <-g.w.done:
		return ebiten.Termination
	default:
		return nil
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	w, h := g.Layout(0, 0)
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, w, h))
		g.leds = ebiten.NewImage(w, h)
	}

	// Re-render only when a new frame has been shown.
	if shows := g.w.Shows(); shows != g.version {
		renderLEDs(g.img, g.w.Current(), g.mask, g.w.scale)
		g.leds.WritePixels(g.img.Pix)
		g.version = shows
	}
	screen.DrawImage(g.leds, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	width, height := g.w.Size()
	return width * g.w.scale, height * g.w.scale
}
