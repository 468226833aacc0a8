package profile

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/standardbeagle/lpa/internal/debug"
	lpaerrors "github.com/standardbeagle/lpa/internal/errors"
)

// Watcher monitors a profile directory and rebuilds a fresh registry
// when definitions change. Registries stay immutable: a reload produces
// a new *Registry handed to the callback, never an in-place mutation.
type Watcher struct {
	dir      string
	watcher  *fsnotify.Watcher
	debounce time.Duration

	onReload func(*Registry, *lpaerrors.MultiError)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// DefaultDebounce batches editor-style save bursts into one reload.
const DefaultDebounce = 250 * time.Millisecond

// NewWatcher creates a watcher over dir. onReload receives each freshly
// loaded registry together with its load diagnostics.
func NewWatcher(dir string, debounce time.Duration, onReload func(*Registry, *lpaerrors.MultiError)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		dir:      dir,
		watcher:  fsw,
		debounce: debounce,
		onReload: onReload,
		ctx:      ctx,
		cancel:   cancel,
	}
	return w, nil
}

// Start begins watching. Events are debounced; a quiet period after the
// last relevant event triggers one reload.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.dir); err != nil {
		return err
	}

	w.wg.Add(1)
	go w.run()
	return nil
}

// Stop cancels watching and waits for the event loop to exit.
func (w *Watcher) Stop() error {
	w.cancel()
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			debug.LogProfiles("watcher event: %s %s", event.Op, event.Name)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			debug.LogProfiles("watcher error: %v", err)

		case <-timerC:
			timer = nil
			timerC = nil
			registry, diags := Load(w.dir)
			debug.LogProfiles("reloaded %d profiles from %s", len(registry.AvailableLanguages()), w.dir)
			if w.onReload != nil {
				w.onReload(registry, diags)
			}
		}
	}
}

// relevant filters events down to definition file changes.
func relevant(event fsnotify.Event) bool {
	if !strings.EqualFold(filepath.Ext(event.Name), ".toml") {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}
