package mocks

import (
	"io/fs"
	"path/filepath"
	"sort"
	"sync"

	"github.com/user/frameseq/pkg/ports"
)

// FileSystem is an in-memory ports.FileSystem. Writes create their parent
// directory the way the OS adapter does, and are recorded in call order.
type FileSystem struct {
	mu     sync.RWMutex
	files  map[string][]byte
	dirs   map[string]bool
	writes []string

	WriteFileFunc func(path string, data []byte) error
	MkdirAllFunc  func(path string) error
}

// NewFileSystem creates an empty in-memory FileSystem.
func NewFileSystem() *FileSystem {
	return &FileSystem{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

func (m *FileSystem) ReadFile(path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

func (m *FileSystem) WriteFile(path string, data []byte) error {
	if m.WriteFileFunc != nil {
		if err := m.WriteFileFunc(path, data); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mkdirLocked(filepath.Dir(path))
	m.files[path] = append([]byte(nil), data...)
	m.writes = append(m.writes, path)
	return nil
}

func (m *FileSystem) MkdirAll(path string) error {
	if m.MkdirAllFunc != nil {
		if err := m.MkdirAllFunc(path); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mkdirLocked(path)
	return nil
}

func (m *FileSystem) mkdirLocked(path string) {
	for p := filepath.Clean(path); p != "." && p != string(filepath.Separator); p = filepath.Dir(p) {
		m.dirs[p] = true
	}
}

func (m *FileSystem) Exists(path string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.files[path]; ok {
		return true, nil
	}
	return m.dirs[filepath.Clean(path)], nil
}

// SetFile seeds a file without recording a write.
func (m *FileSystem) SetFile(path string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = data
}

// GetFile returns the contents of a file.
func (m *FileSystem) GetFile(path string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[path]
	return data, ok
}

// HasDir reports whether path was created, directly or as a parent.
func (m *FileSystem) HasDir(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dirs[filepath.Clean(path)]
}

// GetAllFiles returns a copy of every file by path.
func (m *FileSystem) GetAllFiles() map[string][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string][]byte, len(m.files))
	for k, v := range m.files {
		out[k] = v
	}
	return out
}

// Paths returns every stored file path in sorted order.
func (m *FileSystem) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Writes returns the paths passed to WriteFile, in call order.
func (m *FileSystem) Writes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.writes...)
}

var _ ports.FileSystem = (*FileSystem)(nil)
