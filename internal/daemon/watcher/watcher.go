// Package watcher watches the SusOps workspace for config changes made
// outside the tray (the CLI, an editor, `susops config`).
package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce collapses bursts of writes to the same file.
const DefaultDebounce = 100 * time.Millisecond

// Event reports that the watched file changed.
type Event struct {
	Path string
	Op   fsnotify.Op
}

// Watcher watches a single file by watching its parent directory, so atomic
// replace-by-rename writes are seen as well.
type Watcher struct {
	fsWatcher  *fsnotify.Watcher
	path       string
	debounce   time.Duration
	eventsChan chan Event
	done       chan struct{}
	stopOnce   sync.Once
	log        zerolog.Logger

	timerMu sync.Mutex
	timer   *time.Timer
}

// New creates a watcher for the file at path.
func New(path string, debounce time.Duration, logger zerolog.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		fsWatcher:  fsWatcher,
		path:       filepath.Clean(path),
		debounce:   debounce,
		eventsChan: make(chan Event, 16),
		done:       make(chan struct{}),
		log:        logger.With().Str("module", "watcher").Logger(),
	}, nil
}

// Events returns the channel for receiving debounced change events.
func (w *Watcher) Events() <-chan Event {
	return w.eventsChan
}

// Start begins watching. The parent directory must exist.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return err
	}
	w.log.Debug().Str("dir", dir).Str("file", filepath.Base(w.path)).Msg("watching")

	go w.processEvents()
	return nil
}

// Stop stops the watcher. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fsWatcher.Close()

		w.timerMu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.timerMu.Unlock()
	})
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("watcher error")
		}
	}
}

// handleEvent filters events down to writes, creates and renames of the
// watched file. Rename matters: `yq -i` and editors replace the file.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.log.Debug().Str("op", event.Op.String()).Msg("config changed")
		select {
		case w.eventsChan <- Event{Path: w.path, Op: event.Op}:
		case <-w.done:
		}
	})
}
