package workspace

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dhamidi/parseltongue/project"
)

// DefaultDelay is how long a Watcher waits for a burst of events to settle.
const DefaultDelay = 100 * time.Millisecond

// Watcher reports Parseltongue sources that are created or written below
// a set of directories. Events for the same file that arrive within Delay
// of each other are reported once.
type Watcher struct {
	// OnChange receives the changed paths of one burst, sorted.
	OnChange func(paths []string)
	// Skip, when set, filters paths: directories it returns true for are
	// not watched and files it returns true for are not reported.
	Skip  func(path string) bool
	Delay time.Duration

	fs *fsnotify.Watcher
}

func NewWatcher(onChange func(paths []string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		OnChange: onChange,
		Delay:    DefaultDelay,
		fs:       fsw,
	}, nil
}

// ForProject returns a Watcher that honors the project's exclude patterns.
func ForProject(proj *project.Project, onChange func(paths []string)) (*Watcher, error) {
	w, err := NewWatcher(onChange)
	if err != nil {
		return nil, err
	}
	w.Skip = func(path string) bool {
		rel, err := filepath.Rel(proj.RootDir, path)
		if err != nil {
			rel = path
		}
		return proj.Config.Excluded(rel)
	}
	return w, nil
}

// AddTree watches root and every directory below it, except hidden and
// skipped ones. It returns the sources already present.
func (w *Watcher) AddTree(root string) ([]string, error) {
	var sources []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			if w.wants(path) {
				sources = append(sources, path)
			}
			return nil
		}
		if path != root && (strings.HasPrefix(d.Name(), ".") || w.skip(path)) {
			return filepath.SkipDir
		}
		log.Debugf("watching %s", path)
		return w.fs.Add(path)
	})
	return sources, err
}

func (w *Watcher) skip(path string) bool {
	return w.Skip != nil && w.Skip(path)
}

func (w *Watcher) wants(path string) bool {
	return filepath.Ext(path) == project.SourceExt && !w.skip(path)
}

// Run delivers changes until ctx is done or the Watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	pending := make(map[string]bool)
	var settle <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					// Files may land in a new directory before it is watched.
					found, err := w.AddTree(event.Name)
					if err != nil {
						log.Warningf("watching %s: %s", event.Name, err)
					}
					for _, path := range found {
						pending[path] = true
					}
					if len(found) > 0 {
						settle = time.After(w.Delay)
					}
					continue
				}
			}
			if !w.wants(event.Name) {
				continue
			}
			pending[event.Name] = true
			settle = time.After(w.Delay)

		case <-settle:
			settle = nil
			paths := make([]string, 0, len(pending))
			for path := range pending {
				paths = append(paths, path)
			}
			sort.Strings(paths)
			clear(pending)
			if w.OnChange != nil {
				w.OnChange(paths)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			log.Warningf("watcher: %s", err)
		}
	}
}

// Close stops watching. A running Run returns nil.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
