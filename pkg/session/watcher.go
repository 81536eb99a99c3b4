package session

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// dirWatcher invalidates the index cache whenever anything in the session
// directory changes.
type dirWatcher struct {
	watcher  *fsnotify.Watcher
	onChange func()
	done     chan struct{}
	stopOnce sync.Once
	logger   zerolog.Logger
}

func newDirWatcher(dir string, onChange func(), logger zerolog.Logger) (*dirWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w := &dirWatcher{
		watcher:  watcher,
		onChange: onChange,
		done:     make(chan struct{}),
		logger:   logger,
	}
	go w.loop()
	return w, nil
}

func (w *dirWatcher) loop() {
	for {
		select {
		case _, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.onChange()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Msg("Watcher error")
		case <-w.done:
			return
		}
	}
}

// Stop shuts the watcher down. Safe to call more than once.
func (w *dirWatcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.watcher.Close()
	})
}
