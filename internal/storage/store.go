// Package storage persists rendered documents. The renderer only talks to a
// DocumentStore, so page generation can be exercised against the in-memory
// MockStore as well as the real filesystem.
package storage

import (
	"context"
	"errors"
	"path"
	"strings"
)

// DocumentStore owns one output directory. Names are root-relative and
// '/'-separated. A single leading "../" addresses a sidecar file next to the
// root (for example "../config/sidebar.json").
type DocumentStore interface {
	// Root returns the output directory.
	Root() string

	// Reset removes the output directory with all content and recreates it empty.
	Reset(ctx context.Context) error

	// Ensure creates the output directory if it does not exist.
	Ensure(ctx context.Context) error

	// Read returns the content of a document.
	// Returns ErrNotFound if the document doesn't exist.
	Read(ctx context.Context, name string) ([]byte, error)

	// Write creates or replaces a document, creating parent directories.
	Write(ctx context.Context, name string, data []byte) error

	// List returns the names of regular files directly inside the root, sorted.
	List(ctx context.Context) ([]string, error)

	// Remove deletes a document.
	// Returns ErrNotFound if the document doesn't exist.
	Remove(ctx context.Context, name string) error
}

// Op names a DocumentStore operation.
type Op string

const (
	OpReset  Op = "reset"
	OpEnsure Op = "ensure"
	OpRead   Op = "read"
	OpWrite  Op = "write"
	OpList   Op = "list"
	OpRemove Op = "remove"
)

// ErrNotFound is returned when a document doesn't exist.
type ErrNotFound struct {
	Name string
}

func (e ErrNotFound) Error() string {
	return "document not found: " + e.Name
}

// IsNotFound returns true if the error is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	var nf ErrNotFound
	return errors.As(err, &nf)
}

// ErrInvalidName is returned for names that escape the allowed area.
var ErrInvalidName = errors.New("invalid document name")

const parentPrefix = "../"

// CleanName validates and normalizes a document name.
func CleanName(name string) (string, error) {
	if name == "" || strings.HasPrefix(name, "/") || strings.Contains(name, "\\") {
		return "", ErrInvalidName
	}
	cleaned := path.Clean(name)
	rest := strings.TrimPrefix(cleaned, parentPrefix)
	if rest == "." || rest == ".." || rest == "" || strings.HasPrefix(rest, parentPrefix) || strings.Contains(rest, "/../") {
		return "", ErrInvalidName
	}
	return cleaned, nil
}
