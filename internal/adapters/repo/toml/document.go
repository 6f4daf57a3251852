package toml

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	FileMode        = 0o600
	DirMode         = 0o700
	tempFilePattern = ".dschat-*.toml.tmp"
)

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

// Document is a TOML file decoded into T. Writes go through a temp file and a
// rename so readers never see a partial file. Documents opened on the same
// path share one lock.
type Document[T any] struct {
	path string
	mu   *sync.RWMutex
}

func Open[T any](path string) (*Document[T], error) {
	if path == "" {
		return nil, errors.New("document path is empty")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve document path: %w", err)
	}
	absPath = filepath.Clean(absPath)

	return &Document[T]{path: absPath, mu: lockForPath(absPath)}, nil
}

func (d *Document[T]) Path() string {
	return d.path
}

// Load returns the zero T when the file does not exist yet.
func (d *Document[T]) Load() (T, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.read()
}

func (d *Document[T]) Save(value T) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.write(value)
}

// Update reads the document, applies fn and writes the result back while
// holding the write lock. Nothing is written when fn fails.
func (d *Document[T]) Update(fn func(*T) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	value, err := d.read()
	if err != nil {
		return err
	}
	if err := fn(&value); err != nil {
		return err
	}

	return d.write(value)
}

func (d *Document[T]) read() (T, error) {
	var value T

	data, err := os.ReadFile(d.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return value, nil
		}
		return value, fmt.Errorf("read %s: %w", d.path, err)
	}

	if err := toml.Unmarshal(data, &value); err != nil {
		return value, fmt.Errorf("decode %s: %w", d.path, err)
	}

	return value, nil
}

func (d *Document[T]) write(value T) error {
	dir := filepath.Dir(d.path)
	if err := os.MkdirAll(dir, DirMode); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	data, err := toml.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", d.path, err)
	}

	tempFile, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tempFile.Chmod(FileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tempName, d.path); err != nil {
		return fmt.Errorf("replace %s: %w", d.path, err)
	}

	cleanup = false
	return nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
