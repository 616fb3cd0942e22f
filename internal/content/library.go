package content

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Zachkp/folio/internal/logger"
)

// Library publishes the current Store. Readers always see a complete,
// eagerly loaded store; a reload swaps the whole thing at once.
type Library struct {
	fsys  fs.FS
	dir   string
	log   *logger.Logger
	store atomic.Pointer[Store]
}

// NewLibrary loads dir from fsys and returns a library serving it.
func NewLibrary(fsys fs.FS, dir string, log *logger.Logger) (*Library, error) {
	if log == nil {
		log = logger.Discard()
	}
	l := &Library{fsys: fsys, dir: dir, log: log}
	if err := l.Reload(); err != nil {
		return nil, err
	}
	return l, nil
}

// Store returns the store currently being served.
func (l *Library) Store() *Store {
	return l.store.Load()
}

// Reload re-reads the whole directory. On failure the previous store stays.
func (l *Library) Reload() error {
	s, err := Load(l.fsys, l.dir)
	if err != nil {
		return err
	}
	l.store.Store(s)
	l.log.InfoWithFields("loaded posts", []logger.Field{
		logger.F("count", s.Len()), logger.F("dir", l.dir),
	})
	return nil
}

// reloadDelay coalesces bursts of editor writes into one reload.
const reloadDelay = 250 * time.Millisecond

// Watch reloads the library whenever files in osDir change, until ctx ends.
// osDir must be the on-disk directory backing the library's fs.FS.
func (l *Library) Watch(ctx context.Context, osDir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			l.log.Warn("failed to close watcher: %v", err)
		}
	}()

	if err := watcher.Add(filepath.Clean(osDir)); err != nil {
		return fmt.Errorf("watch %s: %w", osDir, err)
	}
	l.log.Info("watching %s for post changes", osDir)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				pending = time.After(reloadDelay)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			l.log.Warn("watcher error: %v", err)
		case <-pending:
			pending = nil
			if err := l.Reload(); err != nil {
				l.log.Error("reload posts: %v", err)
			}
		}
	}
}
