package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

const (
	dirPermissions  = 0o755
	filePermissions = 0o644
)

// FSStore is a filesystem-backed DocumentStore.
type FSStore struct {
	root string
	mu   sync.RWMutex
}

// NewFSStore creates a store rooted at dir. Nothing is created on disk until
// Reset, Ensure or Write is called.
func NewFSStore(dir string) *FSStore {
	return &FSStore{root: filepath.Clean(dir)}
}

// Root returns the output directory.
func (fs *FSStore) Root() string {
	return fs.root
}

// Reset removes the output directory and recreates it empty.
func (fs *FSStore) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := os.RemoveAll(fs.root); err != nil {
		return fmt.Errorf("remove directory %s: %w", fs.root, err)
	}
	if err := os.MkdirAll(fs.root, dirPermissions); err != nil {
		return fmt.Errorf("create directory %s: %w", fs.root, err)
	}
	return nil
}

// Ensure creates the output directory when missing.
func (fs *FSStore) Ensure(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(fs.root, dirPermissions); err != nil {
		return fmt.Errorf("create directory %s: %w", fs.root, err)
	}
	return nil
}

// Read returns the content of a document.
func (fs *FSStore) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := fs.path(name)
	if err != nil {
		return nil, err
	}
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	// #nosec G304 - p is validated to stay inside the output area
	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound{Name: name}
		}
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	return data, nil
}

// Write creates or replaces a document.
func (fs *FSStore) Write(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := fs.path(name)
	if err != nil {
		return err
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(p), dirPermissions); err != nil {
		return fmt.Errorf("create directory %s: %w", filepath.Dir(p), err)
	}
	// #nosec G306 - generated documentation is world readable
	if err := os.WriteFile(p, data, filePermissions); err != nil {
		return fmt.Errorf("write %s: %w", p, err)
	}
	return nil
}

// List returns regular files directly inside the root, sorted by name.
func (fs *FSStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	entries, err := os.ReadDir(fs.root)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", fs.root, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Remove deletes a document.
func (fs *FSStore) Remove(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := fs.path(name)
	if err != nil {
		return err
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := os.Remove(p); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound{Name: name}
		}
		return fmt.Errorf("remove %s: %w", p, err)
	}
	return nil
}

func (fs *FSStore) path(name string) (string, error) {
	cleaned, err := CleanName(name)
	if err != nil {
		return "", fmt.Errorf("%w: %q", err, name)
	}
	return filepath.Join(fs.root, filepath.FromSlash(cleaned)), nil
}
