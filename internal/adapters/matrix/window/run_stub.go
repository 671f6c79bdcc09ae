//go:build !cgo

package window

import "context"

// Available reports whether this build can open a window.
const Available = false

// Run reports that the window backend is unavailable.
func (w *Window) Run(_ context.Context) error {
	return ErrUnavailable
}
