package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MockStore is an in-memory DocumentStore for tests. Failures can be
// injected per operation and document name.
type MockStore struct {
	mu       sync.RWMutex
	root     string
	exists   bool
	files    map[string][]byte
	failures map[failureKey]error
	calls    MockCalls
	writes   []string
	removes  []string
}

// MockCalls tracks method invocations for test verification.
type MockCalls struct {
	Reset  int
	Ensure int
	Read   int
	Write  int
	List   int
	Remove int
}

type failureKey struct {
	op   Op
	name string
}

// NewMockStore creates an empty in-memory store.
func NewMockStore(root string) *MockStore {
	return &MockStore{
		root:     root,
		files:    make(map[string][]byte),
		failures: make(map[failureKey]error),
	}
}

// FailOn makes op fail with err. An empty name matches every document.
func (m *MockStore) FailOn(op Op, name string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[failureKey{op: op, name: name}] = err
}

// Seed stores a document without counting it as a write.
func (m *MockStore) Seed(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exists = true
	m.files[name] = append([]byte(nil), data...)
}

// Root returns the configured root.
func (m *MockStore) Root() string {
	return m.root
}

// Reset drops every document inside the root. Sidecar documents survive.
func (m *MockStore) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls.Reset++
	if err := m.fail(ctx, OpReset, ""); err != nil {
		return err
	}
	for name := range m.files {
		if !strings.HasPrefix(name, parentPrefix) {
			delete(m.files, name)
		}
	}
	m.exists = true
	return nil
}

// Ensure marks the root as existing.
func (m *MockStore) Ensure(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls.Ensure++
	if err := m.fail(ctx, OpEnsure, ""); err != nil {
		return err
	}
	m.exists = true
	return nil
}

// Read returns a copy of a stored document.
func (m *MockStore) Read(ctx context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls.Read++
	if err := m.fail(ctx, OpRead, name); err != nil {
		return nil, err
	}
	data, ok := m.files[name]
	if !ok {
		return nil, ErrNotFound{Name: name}
	}
	return append([]byte(nil), data...), nil
}

// Write stores a copy of data.
func (m *MockStore) Write(ctx context.Context, name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls.Write++
	if err := m.fail(ctx, OpWrite, name); err != nil {
		return err
	}
	cleaned, err := CleanName(name)
	if err != nil {
		return fmt.Errorf("%w: %q", err, name)
	}
	m.files[cleaned] = append([]byte(nil), data...)
	m.writes = append(m.writes, cleaned)
	return nil
}

// List returns documents directly inside the root, sorted.
func (m *MockStore) List(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls.List++
	if err := m.fail(ctx, OpList, ""); err != nil {
		return nil, err
	}
	if !m.exists {
		return nil, fmt.Errorf("list %s: directory does not exist", m.root)
	}
	var names []string
	for name := range m.files {
		if !strings.Contains(name, "/") {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Remove deletes a stored document.
func (m *MockStore) Remove(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls.Remove++
	if err := m.fail(ctx, OpRemove, name); err != nil {
		return err
	}
	if _, ok := m.files[name]; !ok {
		return ErrNotFound{Name: name}
	}
	delete(m.files, name)
	m.removes = append(m.removes, name)
	return nil
}

// Calls returns the invocation counters.
func (m *MockStore) Calls() MockCalls {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls
}

// ResetCalls zeroes counters and the write/remove logs.
func (m *MockStore) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = MockCalls{}
	m.writes = nil
	m.removes = nil
}

// Writes returns the names written since the last ResetCalls, in order.
func (m *MockStore) Writes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.writes...)
}

// Removes returns the names removed since the last ResetCalls, in order.
func (m *MockStore) Removes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.removes...)
}

// Get returns a stored document as a string, and whether it exists.
func (m *MockStore) Get(name string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[name]
	return string(data), ok
}

// Names returns every stored name, sidecars included, sorted.
func (m *MockStore) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.files))
	for name := range m.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *MockStore) fail(ctx context.Context, op Op, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err, ok := m.failures[failureKey{op: op, name: name}]; ok {
		return err
	}
	if err, ok := m.failures[failureKey{op: op}]; ok {
		return err
	}
	return nil
}
