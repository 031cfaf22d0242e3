package settings

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Store persists preferences. Implementations serialise their own
// writes; AddEntries must be atomic with respect to other calls on
// the same store.
type Store interface {
	// Load returns the stored preferences, or defaults when none
	// were saved yet.
	Load(ctx context.Context) (Preferences, error)

	// Save replaces the stored preferences.
	Save(ctx context.Context, prefs Preferences) error

	// AddEntries adds worth to the accumulated total and returns
	// the new total.
	AddEntries(ctx context.Context, worth int) (int, error)
}

// MemoryStore keeps preferences in memory.
type MemoryStore struct {
	mu    sync.Mutex
	prefs Preferences
	saves int
}

// NewMemoryStore creates a store holding prefs.
func NewMemoryStore(prefs Preferences) *MemoryStore {
	return &MemoryStore{prefs: prefs}
}

// Load returns the held preferences.
func (s *MemoryStore) Load(_ context.Context) (Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs, nil
}

// Save replaces the held preferences.
func (s *MemoryStore) Save(_ context.Context, prefs Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs = prefs
	s.saves++
	return nil
}

// AddEntries increments the total.
func (s *MemoryStore) AddEntries(_ context.Context, worth int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs.TotalEntries += worth
	s.saves++
	return s.prefs.TotalEntries, nil
}

// Saves returns the number of writes so far.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// FileStore persists preferences as a YAML document. Writes go
// through a temporary file and a rename so a crash never leaves
// a truncated file. Atomicity holds within one process only.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by path. The file is
// created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the file; a missing file yields defaults.
func (s *FileStore) Load(_ context.Context) (Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Save writes prefs to the file.
func (s *FileStore) Save(_ context.Context, prefs Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(prefs)
}

// AddEntries re-reads the file, adds worth and writes it back.
func (s *FileStore) AddEntries(_ context.Context, worth int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs, err := s.read()
	if err != nil {
		return 0, err
	}
	prefs.TotalEntries += worth
	if err := s.write(prefs); err != nil {
		return 0, err
	}
	return prefs.TotalEntries, nil
}

func (s *FileStore) read() (Preferences, error) {
	prefs := DefaultPreferences()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return prefs, nil
	}
	if err != nil {
		return prefs, fmt.Errorf(
			"failed to read preferences %s: %w", s.path, err,
		)
	}

	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return DefaultPreferences(), fmt.Errorf(
			"failed to parse preferences %s: %w", s.path, err,
		)
	}
	return prefs, nil
}

func (s *FileStore) write(prefs Preferences) error {
	data, err := yaml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".preferences-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf(
			"failed to replace preferences %s: %w", s.path, err,
		)
	}
	return nil
}
