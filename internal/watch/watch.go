// Package watch implements development-mode file watching. Changes under the
// watched paths are debounced and surfaced on a reload channel; the serve
// loop restarts the HTTP server when it fires.
package watch

import (
	"context"
	"time"

	"chatbackend/pkg/logger"

	"github.com/fsnotify/fsnotify"
	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

// Watcher observes a set of paths and reports change bursts.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	reload   chan struct{}
}

// New creates a Watcher over the given paths. Paths that cannot be watched
// (typically: not yet created) are logged and skipped rather than failing
// startup; at least one path must be watchable.
func New(ctx context.Context, paths []string, debounce time.Duration) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "could not create fsnotify watcher")
	}

	watched := 0
	for _, path := range paths {
		if err := fs.Add(path); err != nil {
			logger.Warn(ctx, "could not watch path", zap.String("path", path), zap.Error(err))

			continue
		}
		watched++
	}

	if watched == 0 {
		_ = fs.Close()

		return nil, errors.New("no watchable paths")
	}

	return &Watcher{
		fs:       fs,
		debounce: debounce,
		reload:   make(chan struct{}, 1),
	}, nil
}

// Start begins event processing in a goroutine. It returns immediately; the
// goroutine exits when ctx is done or the watcher is closed.
func (w *Watcher) Start(ctx context.Context) {
	go w.run(ctx)
}

// Reload returns the channel that fires after a debounced burst of changes.
// The channel has capacity one; signals arriving while a reload is already
// pending are coalesced.
func (w *Watcher) Reload() <-chan struct{} {
	return w.reload
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	if err := w.fs.Close(); err != nil {
		return errors.Wrap(err, "could not close fsnotify watcher")
	}

	return nil
}

const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

func (w *Watcher) run(ctx context.Context) {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !ev.Op.Has(relevantOps) {
				continue
			}

			logger.Debug(ctx, "file changed",
				zap.String("path", ev.Name),
				zap.String("op", ev.Op.String()),
			)

			// editors save in bursts; coalesce them before signalling
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logger.Warn(ctx, "watcher error", zap.Error(err))

		case <-timerC:
			select {
			case w.reload <- struct{}{}:
			default:
			}
		}
	}
}
