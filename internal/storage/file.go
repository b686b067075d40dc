package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

const fileFormatVersion = "1.0"

// storeFile is the on-disk document written by FileBackend.
type storeFile struct {
	Version string            `json:"version"`
	Entries map[string]string `json:"entries"`
}

// FileBackend persists entries in a single JSON document. Every mutation
// rewrites the document atomically.
type FileBackend struct {
	path    string
	mu      sync.RWMutex
	version string
	entries map[string]string
}

// NewFileBackend creates a FileBackend and loads it from disk. A missing file
// starts an empty store.
func NewFileBackend(path string) (*FileBackend, error) {
	b := &FileBackend{
		path:    path,
		version: fileFormatVersion,
		entries: make(map[string]string),
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	if err := b.load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	return b, nil
}

// Path returns the document location.
func (b *FileBackend) Path() string {
	return b.path
}

func (b *FileBackend) load() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	data, err := os.ReadFile(b.path)
	if err != nil {
		return err
	}

	var file storeFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse store: %w", err)
	}

	if file.Version != "" {
		b.version = file.Version
	}
	b.entries = file.Entries
	if b.entries == nil {
		b.entries = make(map[string]string)
	}

	return nil
}

// save writes the document to disk atomically. Callers hold b.mu.
func (b *FileBackend) save() error {
	file := storeFile{
		Version: b.version,
		Entries: b.entries,
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store: %w", err)
	}

	tmpPath := b.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tmpPath, b.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

// Get implements Backend.
func (b *FileBackend) Get(key string) (string, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	value, ok := b.entries[key]
	return value, ok, nil
}

// Set implements Backend. The in-memory entry is rolled back when the write fails.
func (b *FileBackend) Set(key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	previous, existed := b.entries[key]
	b.entries[key] = value
	if err := b.save(); err != nil {
		if existed {
			b.entries[key] = previous
		} else {
			delete(b.entries, key)
		}
		return err
	}
	return nil
}

// Remove implements Backend.
func (b *FileBackend) Remove(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	previous, existed := b.entries[key]
	if !existed {
		return nil
	}
	delete(b.entries, key)
	if err := b.save(); err != nil {
		b.entries[key] = previous
		return err
	}
	return nil
}

// Clear implements Backend.
func (b *FileBackend) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	previous := b.entries
	b.entries = make(map[string]string)
	if err := b.save(); err != nil {
		b.entries = previous
		return err
	}
	return nil
}

// Keys implements Backend.
func (b *FileBackend) Keys() ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	keys := make([]string, 0, len(b.entries))
	for key := range b.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

var _ Backend = (*FileBackend)(nil)
