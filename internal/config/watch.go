package config

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/aiz-project/ai-z/internal/log"
)

// Watcher republishes Config on every write to the config file, so edits
// made on disk take effect without restarting (an ambient capability, not
// an explicit spec.md key). Grounded on the teacher's direct dependency on
// fsnotify for watching component config directories.
type Watcher struct {
	fsw *fsnotify.Watcher
	ch  chan Config
}

// WatchDefault starts watching the canonical config file path. The
// returned channel receives a freshly-parsed Config after every write
// event; callers should drain it from a single goroutine.
func WatchDefault() (*Watcher, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return Watch(path)
}

// Watch starts watching a specific config file path.
func Watch(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory, not the file: editors commonly replace a file
	// via rename rather than writing it in place, which drops a direct
	// watch on the inode.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{fsw: fsw, ch: make(chan Config, 1)}
	go w.loop(path)
	return w, nil
}

func (w *Watcher) loop(path string) {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				close(w.ch)
				return
			}
			if ev.Name != path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			cfg, err := LoadFrom(path)
			if err != nil {
				log.Logger.Warnw("config: reload failed", "path", path, "error", err)
				continue
			}
			select {
			case w.ch <- cfg:
			default:
				// drop the stale pending reload, keep only the latest
				select {
				case <-w.ch:
				default:
				}
				w.ch <- cfg
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Logger.Warnw("config: watcher error", "error", err)
		}
	}
}

// Changes returns the channel of reloaded configs.
func (w *Watcher) Changes() <-chan Config { return w.ch }

// Close stops the watcher.
func (w *Watcher) Close() error { return w.fsw.Close() }
