package graphics

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ShaderWatcher reports edits to a fixed set of shader files.
//
// The containing directories are watched rather than the files themselves
// because editors commonly save by renaming a temp file over the original.
type ShaderWatcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]bool
	onChange func(path string)

	done chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// WatchShaders starts watching paths. onChange runs on the watcher's
// goroutine and must not touch the GL context.
func WatchShaders(paths []string, onChange func(path string)) (*ShaderWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create shader watcher: %w", err)
	}

	sw := &ShaderWatcher{
		watcher:  w,
		files:    make(map[string]bool, len(paths)),
		onChange: onChange,
		done:     make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			w.Close()
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		sw.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	sw.wg.Add(1)
	go sw.loop()
	return sw, nil
}

func (sw *ShaderWatcher) loop() {
	defer sw.wg.Done()
	for {
		select {
		case <-sw.done:
			return
		case ev, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil || !sw.files[abs] {
				continue
			}
			sw.onChange(abs)
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("shader watcher: %v", err)
		}
	}
}

// Close stops the watcher and waits for its goroutine. Safe to call twice.
func (sw *ShaderWatcher) Close() error {
	var err error
	sw.once.Do(func() {
		close(sw.done)
		err = sw.watcher.Close()
		sw.wg.Wait()
	})
	return err
}
