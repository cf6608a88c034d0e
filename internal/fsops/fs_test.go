package fsops

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAtomicWrite(t *testing.T) {
	fs := NewRealFS()
	dir := t.TempDir()

	t.Run("creates file with parent directories", func(t *testing.T) {
		path := filepath.Join(dir, "a", "b", "c.txt")
		if err := fs.AtomicWrite(path, []byte("hello"), 0644); err != nil {
			t.Fatalf("AtomicWrite failed: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read back: %v", err)
		}
		if string(data) != "hello" {
			t.Errorf("content = %q, want %q", data, "hello")
		}
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		path := filepath.Join(dir, "overwrite.txt")
		if err := fs.AtomicWrite(path, []byte("first"), 0644); err != nil {
			t.Fatalf("first write failed: %v", err)
		}
		if err := fs.AtomicWrite(path, []byte("second"), 0644); err != nil {
			t.Fatalf("second write failed: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read back: %v", err)
		}
		if string(data) != "second" {
			t.Errorf("content = %q, want %q", data, "second")
		}
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		sub := filepath.Join(dir, "tmpcheck")
		path := filepath.Join(sub, "file.txt")
		if err := fs.AtomicWrite(path, []byte("x"), 0644); err != nil {
			t.Fatalf("AtomicWrite failed: %v", err)
		}

		entries, err := os.ReadDir(sub)
		if err != nil {
			t.Fatalf("failed to read dir: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("expected 1 entry, got %d", len(entries))
		}
	})
}

func TestExists(t *testing.T) {
	fs := NewRealFS()
	dir := t.TempDir()

	exists, err := fs.Exists(filepath.Join(dir, "missing.txt"))
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("expected missing file to not exist")
	}

	path := filepath.Join(dir, "present.txt")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	exists, err = fs.Exists(path)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected file to exist")
	}
}

func TestRemove(t *testing.T) {
	fs := NewRealFS()
	dir := t.TempDir()

	path := filepath.Join(dir, "gone.txt")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	if err := fs.Remove(path); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := os.Lstat(path); !os.IsNotExist(err) {
		t.Errorf("expected file to be gone, got %v", err)
	}

	// Removing again surfaces the os error; idempotence is the engine's
	// concern, not this layer's.
	if err := fs.Remove(path); !os.IsNotExist(err) {
		t.Errorf("expected IsNotExist error, got %v", err)
	}
}
