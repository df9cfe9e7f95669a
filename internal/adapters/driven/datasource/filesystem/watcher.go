package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/spotkit/spotkit/internal/logger"
)

// defaultWatchDebounce is the quiet period after the last filesystem
// event before one change notification is emitted. Editors write,
// rename, and chmod in quick succession; the window coalesces the
// burst into a single notification.
const defaultWatchDebounce = 500 * time.Millisecond

// Watch monitors the source root and delivers a signal on the returned
// channel after each coalesced burst of filesystem changes. The
// channel has a one-slot buffer and never blocks the event loop; an
// undelivered signal absorbs later ones. The channel is closed when
// ctx is cancelled or the underlying watcher fails.
func (s *Source) Watch(ctx context.Context) (<-chan struct{}, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	if err := s.addWatchDirs(fsw); err != nil {
		fsw.Close()
		return nil, err
	}

	debounce := s.cfg.WatchDebounce
	if debounce <= 0 {
		debounce = defaultWatchDebounce
	}

	changes := make(chan struct{}, 1)
	go s.watchLoop(ctx, fsw, changes, debounce)
	return changes, nil
}

// watchLoop coalesces fsnotify events into notifications on changes.
func (s *Source) watchLoop(ctx context.Context, fsw *fsnotify.Watcher, changes chan<- struct{}, debounce time.Duration) {
	defer close(changes)
	defer fsw.Close()

	var (
		mu    sync.Mutex
		timer *time.Timer
	)

	// At most two notifications per second regardless of how fast
	// bursts settle, so a churning tree cannot starve the consumer.
	limiter := rate.NewLimiter(rate.Limit(2), 1)

	fire := func() {
		if ctx.Err() != nil {
			return
		}
		if !limiter.Allow() {
			mu.Lock()
			if timer != nil {
				timer.Reset(debounce)
			}
			mu.Unlock()
			return
		}
		select {
		case changes <- struct{}{}:
		default:
		}
	}

	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case evt, ok := <-fsw.Events:
			if !ok {
				return
			}
			if s.ignoreEvent(evt) {
				continue
			}
			// Extend coverage to directories created after startup.
			if evt.Has(fsnotify.Create) {
				s.maybeWatchDir(fsw, evt.Name)
			}
			mu.Lock()
			if timer == nil {
				timer = time.AfterFunc(debounce, fire)
			} else {
				timer.Reset(debounce)
			}
			mu.Unlock()

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("Watcher error on %s: %v", s.root, err)
		}
	}
}

// addWatchDirs registers the root and every eligible subdirectory.
func (s *Source) addWatchDirs(fsw *fsnotify.Watcher) error {
	return filepath.WalkDir(s.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Skipping unwatchable path %s: %v", path, err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != s.root {
			if strings.HasPrefix(d.Name(), ".") && !s.cfg.IncludeHidden {
				return filepath.SkipDir
			}
			if s.cfg.MaxDepth > 0 && s.depth(path) >= s.cfg.MaxDepth {
				return filepath.SkipDir
			}
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

// maybeWatchDir adds path to the watcher if it is an eligible
// directory.
func (s *Source) maybeWatchDir(fsw *fsnotify.Watcher, path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if strings.HasPrefix(filepath.Base(path), ".") && !s.cfg.IncludeHidden {
		return
	}
	if s.cfg.MaxDepth > 0 && s.depth(path) >= s.cfg.MaxDepth {
		return
	}
	if err := fsw.Add(path); err != nil {
		logger.Warn("Cannot watch new directory %s: %v", path, err)
	}
}

// ignoreEvent filters events that cannot change the item set: chmod
// noise and hidden entries when hidden files are excluded.
func (s *Source) ignoreEvent(evt fsnotify.Event) bool {
	if evt.Op == fsnotify.Chmod {
		return true
	}
	if !s.cfg.IncludeHidden && strings.HasPrefix(filepath.Base(evt.Name), ".") {
		return true
	}
	return false
}
