package shaders

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/nw-engine/vision/logging"
)

// ReloadResult reports the outcome of reloading one program
type ReloadResult struct {
	Program *ShaderProgram
	Err     error
}

// Watcher recompiles shader programs when the files they were loaded from change.
//
// File events are collected in the background, but reloading only happens in Poll,
// which must be called on the thread owning the graphics context (e.g. once per frame).
type Watcher struct {
	fsw *fsnotify.Watcher

	mu          sync.Mutex
	programs    map[string][]*ShaderProgram
	watchedDirs map[string]struct{}
	pending     map[string]struct{}

	done chan struct{}
	wg   sync.WaitGroup
}

func NewWatcher() (*Watcher, error) {

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader watcher: %w", err)
	}

	w := &Watcher{
		fsw:         fsw,
		programs:    make(map[string][]*ShaderProgram),
		watchedDirs: make(map[string]struct{}),
		pending:     make(map[string]struct{}),
		done:        make(chan struct{}),
	}

	w.wg.Add(1)
	go w.watchEvents()

	return w, nil
}

// Watch starts watching the file sp was loaded from
func (w *Watcher) Watch(sp *ShaderProgram) error {

	if sp.Path() == "" {
		return fmt.Errorf("failed to watch shader program '%s' because it was not loaded from a file", sp.Name())
	}

	path, err := filepath.Abs(sp.Path())
	if err != nil {
		return fmt.Errorf("failed to watch shader program '%s': %w", sp.Name(), err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	// Editors often save by replacing the file, so we watch the directory instead of the file
	dir := filepath.Dir(path)
	if _, ok := w.watchedDirs[dir]; !ok {

		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("failed to watch shader program '%s': %w", sp.Name(), err)
		}

		w.watchedDirs[dir] = struct{}{}
	}

	for _, p := range w.programs[path] {
		if p == sp {
			return nil
		}
	}

	w.programs[path] = append(w.programs[path], sp)
	return nil
}

// Unwatch stops reloading sp. The directory watch is dropped once no watched file remains in it.
func (w *Watcher) Unwatch(sp *ShaderProgram) {

	if sp.Path() == "" {
		return
	}

	path, err := filepath.Abs(sp.Path())
	if err != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	found := false
	progs := w.programs[path]
	for i := 0; i < len(progs); i++ {

		if progs[i] != sp {
			continue
		}

		w.programs[path] = append(progs[:i], progs[i+1:]...)
		found = true
		break
	}

	if !found || len(w.programs[path]) > 0 {
		return
	}

	delete(w.programs, path)
	delete(w.pending, path)

	dir := filepath.Dir(path)
	for p := range w.programs {
		if filepath.Dir(p) == dir {
			return
		}
	}

	if _, ok := w.watchedDirs[dir]; !ok {
		return
	}

	delete(w.watchedDirs, dir)
	if err := w.fsw.Remove(dir); err != nil {
		logging.WarnLog.Printf("Failed to stop watching shader directory '%s'. Err: %s\n", dir, err)
	}
}

// Poll reloads and recompiles every program whose file changed since the last call
func (w *Watcher) Poll() []ReloadResult {

	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return nil
	}

	toReload := make([]*ShaderProgram, 0, len(w.pending))
	for path := range w.pending {
		toReload = append(toReload, w.programs[path]...)
	}
	clear(w.pending)
	w.mu.Unlock()

	results := make([]ReloadResult, 0, len(toReload))
	for _, sp := range toReload {

		err := sp.LoadFile(sp.Path())
		if err == nil {
			err = sp.Compile()
		}

		if err != nil {
			logging.ErrLog.Printf("Failed to reload shader program '%s'. Err: %s\n", sp.Name(), err)
		} else {
			logging.InfoLog.Printf("Reloaded shader program '%s'\n", sp.Name())
		}

		results = append(results, ReloadResult{Program: sp, Err: err})
	}

	return results
}

func (w *Watcher) Close() error {

	select {
	case <-w.done:
		return nil
	default:
	}

	close(w.done)
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) watchEvents() {

	defer w.wg.Done()

	for {
		select {

		case <-w.done:
			return

		case event, ok := <-w.fsw.Events:

			if !ok {
				return
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			path, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}

			w.mu.Lock()
			if _, ok := w.programs[path]; ok {
				w.pending[path] = struct{}{}
			}
			w.mu.Unlock()

		case err, ok := <-w.fsw.Errors:

			if !ok {
				return
			}

			if !errors.Is(err, fsnotify.ErrEventOverflow) {
				logging.ErrLog.Println("Shader watcher error. Err: ", err)
				continue
			}

			// Events were lost so reload everything
			w.mu.Lock()
			for path := range w.programs {
				w.pending[path] = struct{}{}
			}
			w.mu.Unlock()
		}
	}
}
