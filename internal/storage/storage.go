// Package storage provides the key-value persistence collaborator.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// KV is a minimal string key-value store. The schedule store keeps its
// whole snapshot under a single fixed key.
type KV interface {
	// Get returns the value for key and whether the key exists.
	Get(key string) (string, bool, error)
	// Set writes the value for key, overwriting any previous value.
	Set(key, value string) error
}

// File is a KV backed by one file per key under a data directory.
type File struct {
	dir string
}

// NewFile creates a file-backed KV rooted at dir. The directory is
// created on first write, not here.
func NewFile(dir string) *File {
	return &File{dir: dir}
}

// Dir returns the data directory.
func (f *File) Dir() string {
	return f.dir
}

func (f *File) path(key string) (string, error) {
	name := sanitizeKey(key)
	if name == "" {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(f.dir, name+".json"), nil
}

// Get reads the value for key. A missing file is an absent key, not an
// error.
func (f *File) Get(key string) (string, bool, error) {
	p, err := f.path(key)
	if err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %s: %w", p, err)
	}
	return string(data), true, nil
}

// Set writes the value for key, creating the data directory if needed.
func (f *File) Set(key, value string) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	data := []byte(value)
	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	if err := os.WriteFile(p, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", p, err)
	}
	return nil
}

// sanitizeKey maps a key to a safe file name.
func sanitizeKey(key string) string {
	var b strings.Builder
	for i := 0; i < len(key); i++ {
		c := key[i]
		valid := (c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') ||
			c == '.' || c == '_' || c == '-'
		if valid {
			b.WriteByte(c)
		} else {
			b.WriteByte('_')
		}
	}
	return strings.Trim(b.String(), "_")
}

// Memory is an in-memory KV for tests and ephemeral runs.
type Memory struct {
	values map[string]string
}

// NewMemory creates an empty in-memory KV.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get returns the stored value for key.
func (m *Memory) Get(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

// Set stores the value for key.
func (m *Memory) Set(key, value string) error {
	m.values[key] = value
	return nil
}
