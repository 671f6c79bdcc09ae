package app

import (
	"context"
	"sync"
	"time"

	"github.com/lisheld/matrixslide/internal/domain"
	"github.com/lisheld/matrixslide/internal/ports"
)

// ShutdownTimeout is the maximum time to wait for graceful shutdown.
const ShutdownTimeout = 10 * time.Second

// State is where the slideshow sits in its connect/loop lifecycle.
type State int

const (
	StateStopped State = iota
	StateConnecting
	StateLooping
	StateStopping
	StateCrashed
)

var stateNames = [...]string{
	StateStopped:    "Stopped",
	StateConnecting: "Connecting",
	StateLooping:    "Looping",
	StateStopping:   "Stopping",
	StateCrashed:    "Crashed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}

// idle states accept Start and nothing else.
func (s State) idle() bool { return s == StateStopped || s == StateCrashed }

// transitions lists the legal targets for each state.
var transitions = map[State][]State{
	StateStopped:    {StateConnecting},
	StateCrashed:    {StateConnecting},
	StateConnecting: {StateLooping, StateStopping, StateCrashed},
	StateLooping:    {StateStopping, StateCrashed},
	StateStopping:   {StateStopped, StateCrashed},
}

func validTransition(from, to State) error {
	for _, s := range transitions[from] {
		if s == to {
			return nil
		}
	}
	if from.idle() {
		return domain.ErrNotRunning
	}
	return domain.ErrAlreadyRunning
}

// EventEmitter is called when lifecycle state changes.
type EventEmitter interface {
	OnStateChange(previous, current State, reason string)
}

// Lifecycle guards the slideshow state machine, the cancel func of the
// running loop and the goroutines it started.
type Lifecycle struct {
	mu        sync.RWMutex
	state     State
	changedAt time.Time
	err       error
	cancel    context.CancelFunc
	wg        sync.WaitGroup

	logger  ports.Logger
	emitter EventEmitter
}

// NewLifecycle returns a Lifecycle in StateStopped.
func NewLifecycle(logger ports.Logger, emitter EventEmitter) *Lifecycle {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Lifecycle{
		state:     StateStopped,
		changedAt: time.Now(),
		logger:    logger,
		emitter:   emitter,
	}
}

func (l *Lifecycle) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// Since reports how long the current state has lasted.
func (l *Lifecycle) Since() time.Duration {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return time.Since(l.changedAt)
}

// Err returns the error recorded by the last Fail. Entering
// StateConnecting clears it.
func (l *Lifecycle) Err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.err
}

// TransitionTo moves to newState or returns ErrNotRunning/ErrAlreadyRunning
// when the move is illegal from the current state.
func (l *Lifecycle) TransitionTo(newState State, reason string) error {
	return l.transition(newState, reason, nil)
}

// Fail records err and moves to StateCrashed.
func (l *Lifecycle) Fail(err error) error {
	return l.transition(StateCrashed, err.Error(), err)
}

func (l *Lifecycle) transition(to State, reason string, cause error) error {
	l.mu.Lock()
	from := l.state
	if err := validTransition(from, to); err != nil {
		l.mu.Unlock()
		return err
	}
	l.state = to
	l.changedAt = time.Now()
	switch {
	case cause != nil:
		l.err = cause
	case to == StateConnecting:
		l.err = nil
	}
	l.mu.Unlock()

	if l.emitter != nil {
		l.emitter.OnStateChange(from, to, reason)
	}
	l.logger.Info("state transition",
		ports.String("from", from.String()),
		ports.String("to", to.String()),
		ports.String("reason", reason),
	)
	return nil
}

// CanStart reports whether Start may be called.
func (l *Lifecycle) CanStart() bool {
	return l.State().idle()
}

// CanStop reports whether there is a loop to stop.
func (l *Lifecycle) CanStop() bool {
	s := l.State()
	return s == StateConnecting || s == StateLooping
}

// SetCancel stores the cancel func of the running loop.
func (l *Lifecycle) SetCancel(cancel context.CancelFunc) {
	l.mu.Lock()
	l.cancel = cancel
	l.mu.Unlock()
}

// Cancel calls the stored cancel func, if any.
func (l *Lifecycle) Cancel() {
	l.mu.RLock()
	cancel := l.cancel
	l.mu.RUnlock()
	if cancel != nil {
		cancel()
	}
}

// Go runs fn on a tracked goroutine; Wait blocks on it.
func (l *Lifecycle) Go(fn func()) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		fn()
	}()
}

// Wait blocks until every Go worker returns or timeout passes, in which
// case it returns ErrShutdownTimeout.
func (l *Lifecycle) Wait(timeout time.Duration) error {
	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()

	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-done:
		return nil
	case <-t.C:
		l.logger.Warn("shutdown timeout, forcing exit", ports.Duration("timeout", timeout))
		return domain.ErrShutdownTimeout
	}
}
