package slideshow

import (
	"time"

	"github.com/lisheld/matrixslide/internal/app"
)

// State is the lifecycle state of a Slideshow.
type State int

const (
	StateStopped State = iota
	StateConnecting
	StateLooping
	StateStopping
	StateCrashed
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StateConnecting:
		return "Connecting"
	case StateLooping:
		return "Looping"
	case StateStopping:
		return "Stopping"
	case StateCrashed:
		return "Crashed"
	default:
		return "Unknown"
	}
}

// StateChangeEvent describes a lifecycle transition.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// FrameShownEvent is emitted after an image reached the display.
type FrameShownEvent struct {
	Index    int
	URL      string
	Duration time.Duration
}

// FrameSkippedEvent is emitted when an image could not be fetched, decoded
// or displayed.
type FrameSkippedEvent struct {
	Index int
	URL   string
	Error error
}

// EventHandler receives slideshow events. Calls are made synchronously
// from the slideshow goroutine and should return quickly.
type EventHandler interface {
	OnStateChange(event StateChangeEvent)
	OnFrameShown(event FrameShownEvent)
	OnFrameSkipped(event FrameSkippedEvent)
}

// BaseEventHandler implements EventHandler with no-ops. Embed it to
// override only some methods.
type BaseEventHandler struct{}

func (BaseEventHandler) OnStateChange(StateChangeEvent)   {}
func (BaseEventHandler) OnFrameShown(FrameShownEvent)     {}
func (BaseEventHandler) OnFrameSkipped(FrameSkippedEvent) {}

// eventEmitterWrapper adapts EventHandler to the internal emitter interfaces.
type eventEmitterWrapper struct {
	handler EventHandler
}

func (e *eventEmitterWrapper) OnStateChange(previous, current app.State, reason string) {
	if e.handler == nil {
		return
	}
	e.handler.OnStateChange(StateChangeEvent{
		Previous: convertState(previous),
		Current:  convertState(current),
		Reason:   reason,
	})
}

func (e *eventEmitterWrapper) OnFrameShown(index int, url string, d time.Duration) {
	if e.handler == nil {
		return
	}
	e.handler.OnFrameShown(FrameShownEvent{Index: index, URL: url, Duration: d})
}

func (e *eventEmitterWrapper) OnFrameSkipped(index int, url string, err error) {
	if e.handler == nil {
		return
	}
	e.handler.OnFrameSkipped(FrameSkippedEvent{Index: index, URL: url, Error: err})
}

func convertState(s app.State) State {
	switch s {
	case app.StateStopped:
		return StateStopped
	case app.StateConnecting:
		return StateConnecting
	case app.StateLooping:
		return StateLooping
	case app.StateStopping:
		return StateStopping
	case app.StateCrashed:
		return StateCrashed
	default:
		return StateStopped
	}
}
