package fs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOSFileSystemWriteFileReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.js")
	if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	fsys := NewOSFileSystem()
	if err := fsys.WriteFile(path, []byte("new"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "new" {
		t.Errorf("Expected new content, got %q", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected no temp files left behind, got %d entries", len(entries))
	}
}

func TestOSFileSystemWriteFileMissingDir(t *testing.T) {
	fsys := NewOSFileSystem()
	if err := fsys.WriteFile(filepath.Join(t.TempDir(), "missing", "main.js"), []byte("x"), 0644); err == nil {
		t.Error("Expected error for missing directory")
	}
}

func TestOSFileSystemFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.yaml")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}

	fsys := NewOSFileSystem()
	if !fsys.FileExists(path) {
		t.Error("Expected file to exist")
	}
	if fsys.FileExists(dir) {
		t.Error("Expected directory not to count as a file")
	}
	if fsys.FileExists(filepath.Join(dir, "missing")) {
		t.Error("Expected missing file to not exist")
	}
}
