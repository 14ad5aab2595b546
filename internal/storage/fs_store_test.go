package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFSStoreWriteReadList(t *testing.T) {
	ctx := context.Background()
	root := filepath.Join(t.TempDir(), "api")
	store := NewFSStore(root)

	if err := store.Ensure(ctx); err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}
	if err := store.Write(ctx, "b.md", []byte("B")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := store.Write(ctx, "a.md", []byte("A")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := store.Write(ctx, "../config/sidebar.json", []byte("[]\n")); err != nil {
		t.Fatalf("sidecar Write failed: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(root, "nested"), 0o750); err != nil {
		t.Fatal(err)
	}

	data, err := store.Read(ctx, "a.md")
	if err != nil || string(data) != "A" {
		t.Fatalf("Read = %q, %v", data, err)
	}

	names, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(names) != 2 || names[0] != "a.md" || names[1] != "b.md" {
		t.Errorf("List = %v, want [a.md b.md]", names)
	}

	if _, err := os.Stat(filepath.Join(filepath.Dir(root), "config", "sidebar.json")); err != nil {
		t.Errorf("sidecar not written next to root: %v", err)
	}
}

func TestFSStoreReadMissing(t *testing.T) {
	store := NewFSStore(t.TempDir())
	_, err := store.Read(context.Background(), "missing.md")
	if !IsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.Remove(context.Background(), "missing.md"); !IsNotFound(err) {
		t.Fatalf("expected ErrNotFound from Remove, got %v", err)
	}
}

func TestFSStoreResetRemovesEverything(t *testing.T) {
	ctx := context.Background()
	root := filepath.Join(t.TempDir(), "api")
	store := NewFSStore(root)
	if err := store.Write(ctx, "stray.md", []byte("x")); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(root, "sub", "deep"), 0o750); err != nil {
		t.Fatal(err)
	}

	if err := store.Reset(ctx); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("root missing after Reset: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty root, got %d entries", len(entries))
	}
}

func TestFSStoreRejectsEscapingNames(t *testing.T) {
	store := NewFSStore(t.TempDir())
	for _, name := range []string{"", "/etc/passwd", "../../x.md", "..", "a/../../../x", `a\b.md`} {
		err := store.Write(context.Background(), name, []byte("x"))
		if !errors.Is(err, ErrInvalidName) {
			t.Errorf("Write(%q) = %v, want ErrInvalidName", name, err)
		}
	}
}

func TestFSStoreCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := NewFSStore(t.TempDir())
	if err := store.Write(ctx, "a.md", nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCleanName(t *testing.T) {
	cases := map[string]string{
		"a.md":                   "a.md",
		"./a.md":                 "a.md",
		"../config/sidebar.json": "../config/sidebar.json",
		"x/../y.md":              "y.md",
	}
	for in, want := range cases {
		got, err := CleanName(in)
		if err != nil || got != want {
			t.Errorf("CleanName(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
}
