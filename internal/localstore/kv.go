package localstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
)

// KV is the byte-level key-value backend the Store persists collections into.
type KV interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)
}

// MemoryKV keeps values in a map. It is the default backend for tests
// and for a local server that does not need to survive restarts.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryKV creates an empty MemoryKV
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

func (m *MemoryKV) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryKV) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryKV) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

const fileKVExt = ".json"

var validKey = regexp.MustCompile(`^[A-Za-z0-9_\-]+$`)

// ErrInvalidKey is returned for keys that cannot be used as file names
var ErrInvalidKey = errors.New("invalid key")

// FileKV stores each key as <dir>/<key>.json. Writes go through a temp
// file and a rename so a crash never leaves a half-written collection.
type FileKV struct {
	dir string
	mu  sync.Mutex
}

// NewFileKV creates the directory if needed and returns a FileKV over it
func NewFileKV(dir string) (*FileKV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create local store directory %s: %w", dir, err)
	}
	return &FileKV{dir: dir}, nil
}

func (f *FileKV) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(f.dir, key+fileKVExt), nil
}

func (f *FileKV) Get(key string) ([]byte, bool, error) {
	p, err := f.path(key)
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", p, err)
	}
	return data, true, nil
}

func (f *FileKV) Set(key string, value []byte) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", key, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to sync %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", key, err)
	}
	if err := os.Rename(tmpName, p); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", p, err)
	}
	return nil
}

func (f *FileKV) Delete(key string) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", p, err)
	}
	return nil
}

func (f *FileKV) Keys() ([]string, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", f.dir, err)
	}
	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileKVExt) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, fileKVExt))
	}
	sort.Strings(keys)
	return keys, nil
}
