package prefabs

import (
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce drops repeat events for one file inside this window; editors
// often write a file several times per save.
const reloadDebounce = 100 * time.Millisecond

var reloadableExts = map[string]bool{
	".yaml":  true,
	".yml":   true,
	".tengo": true,
}

func reloadable(path string) bool {
	return reloadableExts[strings.ToLower(filepath.Ext(path))]
}

// Watcher collects prefab and script files that change on disk until the
// game drains them with Pending.
type Watcher struct {
	fs   *fsnotify.Watcher
	done chan struct{}
	once sync.Once

	mu      sync.Mutex
	pending []string
	queued  map[string]bool
	last    map[string]time.Time
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:     fw,
		done:   make(chan struct{}),
		queued: make(map[string]bool),
		last:   make(map[string]time.Time),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			w.record(event.Name, time.Now())
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Printf("prefabs: watch: %v", err)
		case <-w.done:
			return
		}
	}
}

// record queues path unless it is not a prefab or script, was seen within
// the debounce window, or is already waiting to be drained.
func (w *Watcher) record(path string, now time.Time) bool {
	if !reloadable(path) {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.last[path]; ok && now.Sub(t) < reloadDebounce {
		return false
	}
	w.last[path] = now
	if w.queued[path] {
		return false
	}
	w.queued[path] = true
	w.pending = append(w.pending, path)
	return true
}

// Pending returns the distinct changed paths in arrival order and clears the
// queue. It never blocks.
func (w *Watcher) Pending() []string {
	if w == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	out := w.pending
	w.pending = nil
	clear(w.queued)
	return out
}
