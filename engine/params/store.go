package params

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Store holds the current parameters and reloads them when their file changes. Readers
// take a copy with Get; a file that fails to decode leaves the previous values in place.
type Store struct {
	mu       *sync.Mutex
	path     string
	current  Params
	onChange func(Params)

	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewStore loads path. An empty path keeps the defaults and never reloads.
//
// Parameters:
//   - path: the TOML parameter file, or ""
//   - options: functional options to configure the store
//
// Returns:
//   - *Store: the store
//   - error: an error if the initial load fails
func NewStore(path string, options ...StoreBuilderOption) (*Store, error) {
	s := &Store{
		mu:      &sync.Mutex{},
		path:    path,
		current: Default(),
	}
	for _, opt := range options {
		opt(s)
	}
	if path == "" {
		return s, nil
	}
	p, err := Load(path)
	if err != nil {
		return nil, err
	}
	s.current = p
	return s, nil
}

// Get returns a copy of the current parameters.
func (s *Store) Get() Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Path returns the watched file.
func (s *Store) Path() string {
	return s.path
}

// Reload decodes the file again and swaps the values in on success.
//
// Returns:
//   - error: the load error; the previous values stay current
func (s *Store) Reload() error {
	if s.path == "" {
		return nil
	}
	p, err := Load(s.path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.current = p
	cb := s.onChange
	s.mu.Unlock()
	if cb != nil {
		cb(p)
	}
	return nil
}

// Watch starts reloading on file changes. The directory is watched rather than the file
// so editors that replace the file on save are followed.
//
// Returns:
//   - error: an error if the watcher could not be created
func (s *Store) Watch() error {
	if s.path == "" || s.watcher != nil {
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create parameter watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(s.path)); err != nil {
		w.Close()
		return fmt.Errorf("failed to watch %s: %w", s.path, err)
	}
	s.watcher = w
	s.done = make(chan struct{})

	name := filepath.Clean(s.path)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			select {
			case <-s.done:
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != name || (!event.Has(fsnotify.Write) && !event.Has(fsnotify.Create)) {
					continue
				}
				if err := s.Reload(); err != nil {
					log.Printf("[Params] keeping previous values: %v", err)
					continue
				}
				log.Printf("[Params] reloaded %s", s.path)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Printf("[Params] watcher error: %v", err)
			}
		}
	}()
	return nil
}

// Close stops watching. It is safe to call on a store that never watched.
func (s *Store) Close() error {
	if s.watcher == nil {
		return nil
	}
	close(s.done)
	err := s.watcher.Close()
	s.wg.Wait()
	s.watcher = nil
	return err
}
