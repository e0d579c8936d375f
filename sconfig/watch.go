package sconfig

import (
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/jpfluger/shiftsolve/serr"
)

// Watcher reloads Config from path whenever the file changes, for callers
// that want config edits picked up without a process restart. A reload only
// ever replaces the value Current() returns between compile sessions —
// nothing here mutates a smodel.Builder, since a Builder already handed to
// a running compile must see no shared mutable state.
type Watcher struct {
	path     string
	override Config
	watcher  *fsnotify.Watcher
	errs     chan error

	mu      sync.RWMutex
	current Config
}

// NewWatcher loads the initial config and starts watching path for writes.
func NewWatcher(path string, override Config) (*Watcher, error) {
	cfg, err := Load(path, override)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, serr.NewKind(serr.KindConfig, "start config watcher: %v", err)
	}
	if err := fw.Add(path); err != nil {
		fw.Close()
		return nil, serr.NewKind(serr.KindConfig, "watch config file %q: %v", path, err)
	}

	w := &Watcher{path: path, override: override, watcher: fw, current: cfg, errs: make(chan error, 1)}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := Load(w.path, w.override)
			if err != nil {
				select {
				case w.errs <- err:
				default:
				}
				continue
			}
			w.mu.Lock()
			w.current = cfg
			w.mu.Unlock()
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// Current returns the most recently loaded config. Safe to call between
// compile sessions; not safe to call concurrently with a reload mid-compile,
// per the "no shared mutable state between compiles" rule this module
// follows by construction (callers snapshot Current() once per compile).
func (w *Watcher) Current() Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
