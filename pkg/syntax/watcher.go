package syntax

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/glint/pkg/errors"
	"github.com/arthur-debert/glint/pkg/logging"
)

// debounceWindow coalesces the burst of fsnotify events editors produce for
// a single save.
const debounceWindow = 200 * time.Millisecond

// Watcher reloads a Loader whenever one of its rule files changes. Because
// Loader.Load compiles everything before swapping the registry, a reload
// triggered by a half-saved or broken file leaves the previous rule sets in
// place.
type Watcher struct {
	loader   *Loader
	logger   zerolog.Logger
	onReload func()
}

// NewWatcher creates a Watcher for the loader's rule files.
func NewWatcher(loader *Loader) *Watcher {
	return &Watcher{
		loader: loader,
		logger: logging.GetLogger("syntax.watcher"),
	}
}

// OnReload registers a callback invoked after each successful reload. Must be
// set before Watch is called.
func (w *Watcher) OnReload(fn func()) {
	w.onReload = fn
}

// Watch blocks until ctx is done, reloading the registry when a watched rule
// file is written, created, or renamed.
func (w *Watcher) Watch(ctx context.Context) error {
	files := w.loader.Files()
	if len(files) == 0 {
		<-ctx.Done()
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "creating file watcher")
	}
	defer func() { _ = fsw.Close() }()

	for _, path := range files {
		if err := fsw.Add(path); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "watching %s", path)
		}
		w.logger.Debug().Str("file", path).Msg("watching rule file")
	}

	var timer *time.Timer
	reload := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug().
				Str("file", event.Name).
				Str("op", event.Op.String()).
				Msg("rule file changed")
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceWindow, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case <-reload:
			if err := w.loader.Load(); err != nil {
				w.logger.Warn().Err(err).Msg("reload failed, keeping previous rule sets")
				continue
			}
			w.logger.Info().Msg("rule sets reloaded")
			if w.onReload != nil {
				w.onReload()
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("file watcher error")
		}
	}
}
