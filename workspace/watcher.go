package workspace

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for a burst of events to
// settle before rescanning.
const DefaultDebounce = 300 * time.Millisecond

// Watcher keeps a workspace in sync with the files on disk. Events are
// batched; after each batch the changed paths are rescanned or removed and
// OnChange, when set, receives them.
type Watcher struct {
	ws        *Workspace
	discovery *Discovery
	watcher   *fsnotify.Watcher

	// Debounce is read by Start.
	Debounce time.Duration
	// OnChange is called from the watch goroutine after a batch is applied.
	OnChange func(paths []string)

	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

// NewWatcher watches every directory under the discovery root that is not
// excluded.
func NewWatcher(ws *Workspace, d *Discovery) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create file watcher")
	}
	w := &Watcher{
		ws:        ws,
		discovery: d,
		watcher:   fw,
		Debounce:  DefaultDebounce,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
	if err := w.addTree(d.Root()); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if path != w.discovery.Root() && w.discovery.Excluded(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return errors.Wrapf(err, "watch %s", path)
		}
		return nil
	})
}

func (w *Watcher) Start(ctx context.Context) {
	go w.watch(ctx)
}

// Stop ends the watch goroutine and waits for it.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		<-w.doneCh
		w.watcher.Close()
	})
}

func (w *Watcher) watch(ctx context.Context) {
	defer close(w.doneCh)

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()
	pending := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if !w.discovery.Excluded(event.Name) {
						if err := w.addTree(event.Name); err != nil {
							log.Warningf("%s", err)
						}
					}
					continue
				}
			}
			if !w.relevant(event) {
				continue
			}
			pending[event.Name] = true
			timer.Reset(debounce)

		case <-timer.C:
			w.apply(ctx, pending)
			pending = make(map[string]bool)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Errorf("file watcher: %s", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	return w.discovery.Match(event.Name)
}

// apply rescans files that still exist and forgets the rest.
func (w *Watcher) apply(ctx context.Context, pending map[string]bool) {
	if len(pending) == 0 {
		return
	}
	paths := make([]string, 0, len(pending))
	for p := range pending {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	start := time.Now()
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			w.ws.RemoveFile(p)
			continue
		}
		if err := w.ws.ScanFile(ctx, p); err != nil {
			log.Warningf("rescan %s: %s", p, err)
		}
	}
	log.Infof("applied %d change(s) in %s", len(paths), time.Since(start))
	if w.OnChange != nil {
		w.OnChange(paths)
	}
}
