package docstore

import (
	"bytes"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sync"
	"testing/fstest"
	"time"
)

// FileSystem abstracts filesystem operations for testability.
type FileSystem interface {
	// Stat returns file info for the given path.
	Stat(path string) (fs.FileInfo, error)
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// WriteFile replaces the content of the file at path.
	WriteFile(path string, data []byte, perm fs.FileMode) error
	// MkdirAll creates the directory at path along with any missing parents.
	MkdirAll(path string, perm fs.FileMode) error
}

// OSFS implements FileSystem using the standard library.
type OSFS struct{}

// NewOSFS creates a new OSFS instance.
func NewOSFS() *OSFS {
	return &OSFS{}
}

// Stat returns file info for the given path.
func (o *OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ReadFile reads the entire file at path.
func (o *OSFS) ReadFile(path string) ([]byte, error) {
	// #nosec G304 -- manifest paths are chosen by the user
	return os.ReadFile(path)
}

// WriteFile replaces the content of the file at path.
func (o *OSFS) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(path, data, perm)
}

// MkdirAll creates the directory at path along with any missing parents.
func (o *OSFS) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

// MemFS is an in-memory FileSystem backed by fstest.MapFS.
// Paths are cleaned and stripped of any leading slash.
type MemFS struct {
	mu    sync.RWMutex
	files fstest.MapFS
}

// NewMemFS creates an empty MemFS.
func NewMemFS() *MemFS {
	return &MemFS{files: make(fstest.MapFS)}
}

// Stat returns file info for the given path.
func (m *MemFS) Stat(name string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fs.Stat(m.files, toKey(name))
}

// ReadFile reads the entire file at path.
func (m *MemFS) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fs.ReadFile(m.files, toKey(name))
}

// WriteFile replaces the content of the file at path.
func (m *MemFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[toKey(name)] = &fstest.MapFile{
		Data:    bytes.Clone(data),
		Mode:    perm,
		ModTime: time.Now(),
	}
	return nil
}

// MkdirAll is a no-op: MapFS synthesizes parent directories.
func (m *MemFS) MkdirAll(_ string, _ fs.FileMode) error {
	return nil
}

func toKey(name string) string {
	key := path.Clean(filepath.ToSlash(name))
	for len(key) > 0 && key[0] == '/' {
		key = key[1:]
	}
	if key == "" {
		return "."
	}
	return key
}
