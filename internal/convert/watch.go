package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Watch waits for edits to settle.
const DefaultDebounce = 300 * time.Millisecond

// ReportFunc receives the outcome of every conversion done by Watch.
type ReportFunc func(Result, error)

// Watch converts changed markdown sources until ctx is cancelled.
// Bursts of events are debounced and each changed file is converted once.
func (c *Converter) Watch(ctx context.Context, debounce time.Duration, report ReportFunc) error {
	if err := c.prepare(); err != nil {
		return err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := c.addDirsRecursive(watcher, c.opts.Src); err != nil {
		return err
	}
	c.log.Info("Watching help sources", "src", c.opts.Src)

	pending := newPendingSet()
	flush := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	trigger := func() {
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounce, func() {
			select {
			case flush <- struct{}{}:
			default:
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if c.handleEvent(watcher, ev, pending) {
				trigger()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.log.Warn("Watcher error", "error", err)
		case <-flush:
			for _, path := range pending.drain() {
				r, err := c.ConvertFile(path)
				if err != nil {
					c.log.Warn("Conversion failed", "path", path, "error", err)
				}
				if report != nil {
					report(r, err)
				}
			}
		}
	}
}

// handleEvent records a changed source and reports whether a conversion
// should be scheduled.
func (c *Converter) handleEvent(w *fsnotify.Watcher, ev fsnotify.Event, pending *pendingSet) bool {
	if shouldIgnoreEvent(ev.Name) {
		return false
	}
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := c.addDirsRecursive(w, ev.Name); err != nil {
				c.log.Warn("Failed to watch new directory", "dir", ev.Name, "error", err)
			}
			return false
		}
	}
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return false
	}
	if _, ok, _ := c.jobFor(ev.Name); !ok {
		return false
	}
	pending.add(ev.Name)
	return true
}

func (c *Converter) addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if err := w.Add(path); err != nil {
				c.log.Warn("watch add failed", "dir", path, "error", err)
			}
		}
		return nil
	})
}

// shouldIgnoreEvent returns true for hidden files and editor leftovers.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}

	// Editor temp/swap files
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}

	return base == "Thumbs.db"
}

type pendingSet struct {
	mu    sync.Mutex
	paths map[string]struct{}
}

func newPendingSet() *pendingSet {
	return &pendingSet{paths: map[string]struct{}{}}
}

func (p *pendingSet) add(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paths[path] = struct{}{}
}

// drain returns the pending paths in sorted order and empties the set.
func (p *pendingSet) drain() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.paths))
	for path := range p.paths {
		out = append(out, path)
	}
	p.paths = map[string]struct{}{}
	sort.Strings(out)
	return out
}

