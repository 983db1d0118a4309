package config

import (
	"log/slog"
	"sync"

	"github.com/dshills/marksearch/internal/config/watcher"
)

// Reloader watches a config file and delivers a freshly loaded Config
// after every change. Configs are delivered on a channel so the host can
// apply them on its own event loop.
type Reloader struct {
	path    string
	opts    []Option
	watcher *watcher.Watcher
	logger  *slog.Logger

	updates chan Config
	errs    chan error
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// Watch starts watching path. A removed file keeps the last good config.
func Watch(path string, logger *slog.Logger, opts ...Option) (*Reloader, error) {
	return WatchWith(path, logger, nil, opts...)
}

// WatchWith is Watch with explicit watcher options.
func WatchWith(path string, logger *slog.Logger, wopts []watcher.Option, opts ...Option) (*Reloader, error) {
	w, err := watcher.New(path, wopts...)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := &Reloader{
		path:    path,
		opts:    opts,
		watcher: w,
		logger:  logger.With("component", "config"),
		updates: make(chan Config, 1),
		errs:    make(chan error, 1),
		done:    make(chan struct{}),
	}
	r.wg.Add(1)
	go r.loop()
	return r, nil
}

// Updates returns the channel of reloaded configs.
func (r *Reloader) Updates() <-chan Config {
	return r.updates
}

// Errors returns the channel of load and watch errors.
func (r *Reloader) Errors() <-chan error {
	return r.errs
}

// Close stops watching.
func (r *Reloader) Close() error {
	var err error
	r.once.Do(func() {
		close(r.done)
		err = r.watcher.Close()
		r.wg.Wait()
	})
	return err
}

func (r *Reloader) loop() {
	defer r.wg.Done()

	events := r.watcher.Events()
	errs := r.watcher.Errors()
	for {
		select {
		case <-r.done:
			return

		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
				r.logger.Info("config file removed, keeping current settings", "path", ev.Path)
				continue
			}
			cfg, err := Load(r.path, r.opts...)
			if err != nil {
				r.logger.Warn("config reload failed", "path", ev.Path, "err", err)
				r.sendErr(err)
				continue
			}
			r.logger.Debug("config reloaded", "path", ev.Path, "op", ev.Op)
			select {
			case r.updates <- cfg:
			case <-r.done:
				return
			}

		case err, ok := <-errs:
			if !ok {
				return
			}
			r.sendErr(err)
		}
	}
}

func (r *Reloader) sendErr(err error) {
	select {
	case r.errs <- err:
	case <-r.done:
	}
}
