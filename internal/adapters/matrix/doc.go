// Package matrix provides the LED matrix backends.
//
// Every backend keeps its own copy of the frame on screen and replaces it
// in one locked swap, so a render loop reading concurrently never sees a
// half-drawn image. Frames are reduced to the configured colour depth
// before they are stored, the way the panel's bit-plane driver would.
//
//   - Headless keeps the frame in memory only.
//   - window.Window (subpackage) renders a desktop emulator with ebiten.
//   - Driver pushes pixels into any tinygo drivers.Displayer.
package matrix
