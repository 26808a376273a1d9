// Package watch reloads the pipeline when one of its source files changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/KaramelBytes/districtlens-cli/internal/pipeline"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Reloader is the part of the pipeline the watcher drives.
type Reloader interface {
	Load() (*pipeline.Snapshot, error)
	Paths() []string
}

// Watcher debounces filesystem events on the source files and reloads.
type Watcher struct {
	reloader Reloader
	debounce time.Duration
	log      *zap.Logger

	files   map[string]struct{}
	reloads atomic.Int64
}

// New creates a watcher. A non-positive debounce defaults to 500ms.
func New(r Reloader, debounce time.Duration, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	w := &Watcher{reloader: r, debounce: debounce, log: log, files: map[string]struct{}{}}
	for _, p := range r.Paths() {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		w.files[abs] = struct{}{}
	}
	return w, nil
}

// Reloads counts completed reloads.
func (w *Watcher) Reloads() int64 { return w.reloads.Load() }

// Run blocks until ctx is cancelled. Directories are watched rather than
// files so editors that replace files on save are still picked up.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	dirs := map[string]struct{}{}
	for f := range w.files {
		dirs[filepath.Dir(f)] = struct{}{}
	}
	for d := range dirs {
		if err := fw.Add(d); err != nil {
			return fmt.Errorf("watch %s: %w", d, err)
		}
		w.log.Info("watching", zap.String("dir", d))
	}

	tick := w.debounce / 4
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	var last time.Time // zero when nothing is pending
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if w.relevant(ev) {
				w.log.Debug("source changed", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
				last = time.Now()
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", zap.Error(err))
		case <-ticker.C:
			if !last.IsZero() && time.Since(last) >= w.debounce {
				last = time.Time{}
				w.reload()
			}
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	_, ok := w.files[abs]
	return ok
}

func (w *Watcher) reload() {
	snap, err := w.reloader.Load()
	w.reloads.Add(1)
	if err != nil {
		// the snapshot still carries the sources that did load
		w.log.Warn("reload finished with unavailable sources", zap.Error(err))
		return
	}
	w.log.Info("reloaded", zap.Time("loaded_at", snap.LoadedAt), zap.Bool("degraded", snap.Degraded()))
}
