package convert

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lisheld/matrixslide/pkg/log"
)

// DefaultDebounce is how long a file must stay quiet before it is converted.
const DefaultDebounce = 500 * time.Millisecond

// ErrOutputIsInput is returned by Watcher.Run when the output directory is
// the watched directory; every written BMP would be converted again.
var ErrOutputIsInput = errors.New("output directory is the watched directory")

// Watcher converts images as they appear in a directory.
type Watcher struct {
	conv     *Converter
	inDir    string
	outDir   string
	debounce time.Duration

	// OnConverted, when set, is called after each conversion attempt.
	OnConverted func(input string, err error)

	mu     sync.Mutex
	timers map[string]*time.Timer
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher for inDir writing into outDir.
func NewWatcher(conv *Converter, inDir, outDir string, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		conv:     conv,
		inDir:    inDir,
		outDir:   outDir,
		debounce: debounce,
		timers:   map[string]*time.Timer{},
	}
}

// Run blocks until ctx is done. Pending conversions finish before it returns.
func (w *Watcher) Run(ctx context.Context) error {
	if SameDir(w.inDir, w.outDir) {
		return fmt.Errorf("%w: %s", ErrOutputIsInput, w.inDir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.inDir); err != nil {
		return fmt.Errorf("watch %s: %w", w.inDir, err)
	}
	w.conv.logger.Info("watching for images", log.String("dir", w.inDir), log.String("output", w.outDir))

	defer w.wg.Wait()
	defer w.stopTimers()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !candidate(event.Name) || isTemp(event.Name) {
				continue
			}
			w.schedule(event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.conv.logger.Warn("watcher error", log.Err(err))
		}
	}
}

// schedule (re)starts the debounce timer for path.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[path]; ok {
		if t.Stop() {
			w.wg.Done()
		}
	}
	w.wg.Add(1)
	var t *time.Timer
	t = time.AfterFunc(w.debounce, func() {
		defer w.wg.Done()
		w.mu.Lock()
		if w.timers[path] == t {
			delete(w.timers, path)
		}
		w.mu.Unlock()

		err := w.conv.ConvertFile(path, OutputPath(path, w.outDir))
		if err != nil {
			w.conv.logger.Error("conversion failed", log.String("input", path), log.Err(err))
		}
		if w.OnConverted != nil {
			w.OnConverted(path, err)
		}
	})
	w.timers[path] = t
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.timers {
		if t.Stop() {
			w.wg.Done()
		}
		delete(w.timers, path)
	}
}

// SameDir reports whether a and b name the same directory once made
// absolute and, where they exist, resolved through symlinks.
func SameDir(a, b string) bool {
	return resolveDir(a) == resolveDir(b)
}

func resolveDir(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

func isTemp(path string) bool {
	base := filepath.Base(path)
	return len(base) > 0 && base[0] == '.'
}
