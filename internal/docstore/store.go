package docstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store provides thread-safe access to named JSON documents on disk.
// Every document is a single file; writes are whole-document overwrites
// serialized per document by a mutex.
type Store struct {
	dataDir string

	mu    sync.Mutex
	locks map[string]*sync.RWMutex
}

// New creates a document store rooted at dataDir
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &Store{
		dataDir: dataDir,
		locks:   make(map[string]*sync.RWMutex),
	}, nil
}

// DataDir returns the directory backing the store
func (s *Store) DataDir() string {
	return s.dataDir
}

func (s *Store) lockFor(name string) *sync.RWMutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[name]
	if !ok {
		lock = &sync.RWMutex{}
		s.locks[name] = lock
	}
	return lock
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dataDir, name+".json")
}

// Read unmarshals the named document into v. A document that does not
// exist yet leaves v untouched and returns nil, so callers see the
// zero value (empty list, default singleton).
func (s *Store) Read(name string, v interface{}) error {
	lock := s.lockFor(name)
	lock.RLock()
	defer lock.RUnlock()

	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read document %s: %w", name, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse document %s: %w", name, err)
	}

	return nil
}

// Write marshals v and overwrites the named document
func (s *Store) Write(name string, v interface{}) error {
	lock := s.lockFor(name)
	lock.Lock()
	defer lock.Unlock()

	return s.writeLocked(name, v)
}

// Update performs a read-modify-write cycle on the named document under
// its write lock. apply mutates v in place; returning an error aborts
// the cycle without writing.
func (s *Store) Update(name string, v interface{}, apply func() error) error {
	lock := s.lockFor(name)
	lock.Lock()
	defer lock.Unlock()

	data, err := os.ReadFile(s.path(name))
	if err == nil {
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse document %s: %w", name, err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read document %s: %w", name, err)
	}

	if err := apply(); err != nil {
		return err
	}

	return s.writeLocked(name, v)
}

func (s *Store) writeLocked(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document %s: %w", name, err)
	}

	if err := os.WriteFile(s.path(name), data, 0644); err != nil {
		return fmt.Errorf("failed to write document %s: %w", name, err)
	}

	return nil
}

// ReadRaw returns the raw bytes of the named document. A missing
// document yields its default representation so snapshot export never
// depends on which documents have been written yet.
func (s *Store) ReadRaw(name string) ([]byte, error) {
	lock := s.lockFor(name)
	lock.RLock()
	defer lock.RUnlock()

	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultRaw(name), nil
		}
		return nil, fmt.Errorf("failed to read document %s: %w", name, err)
	}

	return data, nil
}

// WriteRaw overwrites the named document with pre-marshaled JSON
func (s *Store) WriteRaw(name string, data []byte) error {
	if !json.Valid(data) {
		return fmt.Errorf("document %s: payload is not valid JSON", name)
	}

	lock := s.lockFor(name)
	lock.Lock()
	defer lock.Unlock()

	if err := os.WriteFile(s.path(name), data, 0644); err != nil {
		return fmt.Errorf("failed to write document %s: %w", name, err)
	}

	return nil
}
