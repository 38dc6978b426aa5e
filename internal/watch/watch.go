// Package watch reports changes to the configuration files of a project.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"rnconfig/internal/logger"

	"github.com/fsnotify/fsnotify"
)

// DefaultDelay is the quiet period before a burst of file events is
// reported as one change.
const DefaultDelay = 100 * time.Millisecond

// ErrClosed is returned by Run after Close.
var ErrClosed = errors.New("watcher closed")

// Watcher watches the search places of one project directory.
type Watcher struct {
	fsw    *fsnotify.Watcher
	root   string
	places map[string]bool
	delay  time.Duration
	log    *logger.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDelay sets the debounce delay.
func WithDelay(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.delay = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.log = l
		}
	}
}

// New watches root for changes to any of searchPlaces, given relative to
// root with forward slashes.
func New(root string, searchPlaces []string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		fsw:    fsw,
		root:   abs,
		places: make(map[string]bool, len(searchPlaces)),
		delay:  DefaultDelay,
		log:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}

	dirs := map[string]bool{abs: true}
	for _, place := range searchPlaces {
		w.places[filepath.Clean(filepath.FromSlash(place))] = true
		dirs[filepath.Dir(filepath.Join(abs, filepath.FromSlash(place)))] = true
	}

	for dir := range dirs {
		if err := w.add(dir); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// add watches dir when it exists. Missing subdirectories are picked up when
// they are created.
func (w *Watcher) add(dir string) error {
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil
	}
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	return nil
}

// Run calls onChange with the last changed search place after each burst of
// changes, until ctx is done. onChange runs on the Run goroutine.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context, path string)) error {
	timer := time.NewTimer(w.delay)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	var pending string

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return ErrClosed
			}
			if !w.relevant(ev) {
				continue
			}
			w.log.Debug().Str("path", ev.Name).Str("op", ev.Op.String()).Msg("config file event")
			pending = ev.Name
			timer.Reset(w.delay)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return ErrClosed
			}
			w.log.Warn().Err(err).Msg("watch error")

		case <-timer.C:
			if pending != "" {
				onChange(ctx, pending)
				pending = ""
			}
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Has(fsnotify.Create) {
		// a new .config directory
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.add(ev.Name); err != nil {
				w.log.Warn().Err(err).Msg("watch error")
			}
			return false
		}
	}
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}

	rel, err := filepath.Rel(w.root, ev.Name)
	if err != nil {
		return false
	}
	return w.places[rel]
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
