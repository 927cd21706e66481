// Package watcher follows the capture directory and triggers analysis when
// the external tracker finishes writing a session log.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultSettle is how long a session log must stay quiet before it is
// analyzed. The tracker writes the whole log at stop time, but large sessions
// arrive in several writes.
const DefaultSettle = 2 * time.Second

// Handler processes one settled session log.
type Handler func(path string) error

// Watcher debounces file events per path and hands settled files to the
// handler. One goroutine runs the event loop; handlers run on timer
// goroutines, one per settled file.
type Watcher struct {
	log     *zap.Logger
	dir     string
	pattern string
	settle  time.Duration
	handler Handler

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func New(log *zap.Logger, dir, pattern string, settle time.Duration, handler Handler) *Watcher {
	if settle <= 0 {
		settle = DefaultSettle
	}
	return &Watcher{
		log:     log,
		dir:     dir,
		pattern: pattern,
		settle:  settle,
		handler: handler,
		timers:  make(map[string]*time.Timer),
	}
}

// Run watches the capture directory until the context is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watcher: watch %s: %w", w.dir, err)
	}
	w.log.Info("Watching capture directory",
		zap.String("dir", w.dir),
		zap.String("pattern", w.pattern))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !w.matches(event.Name) {
				continue
			}
			w.schedule(event.Name)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Error("Watch error", zap.Error(err))
		}
	}
}

// matches reports whether the file name fits the session log pattern.
func (w *Watcher) matches(path string) bool {
	ok, err := filepath.Match(w.pattern, filepath.Base(path))
	return err == nil && ok
}

// schedule (re)starts the settle timer for a path. Every new write pushes the
// analysis back, so the handler only ever sees finished files.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.timers[path]; ok {
		timer.Reset(w.settle)
		return
	}
	w.timers[path] = time.AfterFunc(w.settle, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()

		w.log.Info("Session log settled, analyzing", zap.String("path", path))
		if err := w.handler(path); err != nil {
			w.log.Error("Failed to process session log",
				zap.String("path", path),
				zap.Error(err))
		}
	})
}
