// Package watch reports changes to a single file.
package watch

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the file must stay unchanged before an event
// is sent.
const DefaultDebounce = 100 * time.Millisecond

// Watcher sends the file name on Events after the file is written,
// created, renamed or removed and then left alone for the debounce
// interval. The containing directory is watched so that
// editors that replace the file are still noticed.
type Watcher struct {
	fs       *fsnotify.Watcher
	name     string
	debounce time.Duration

	Events chan string
	Errors chan error

	done chan struct{}
	once sync.Once
}

// New starts watching file. A debounce of zero uses DefaultDebounce.
func New(file string, debounce time.Duration) (*Watcher, error) {
	name, err := filepath.Abs(file)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(name)); err != nil {
		_ = fw.Close()
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		fs:       fw,
		name:     name,
		debounce: debounce,
		Events:   make(chan string, 16),
		Errors:   make(chan error, 1),
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher. Events and Errors are closed once the watch
// loop has exited.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	// events are reported once the file has been quiet for w.debounce, so
	// a truncate followed by a write yields one event after the write
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.name {
				continue
			}
			timer.Reset(w.debounce)
			fire = timer.C
		case <-fire:
			fire = nil
			select {
			case w.Events <- w.name:
			case <-w.done:
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			case <-w.done:
				return
			}
		case <-w.done:
			return
		}
	}
}
