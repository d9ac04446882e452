package osfilesystem

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSystem_WriteAndReadFile(t *testing.T) {
	fs := New()
	path := filepath.Join(t.TempDir(), "report.txt")

	if err := fs.WriteFile(path, []byte("Verification Report")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "Verification Report" {
		t.Errorf("expected %q, got %q", "Verification Report", data)
	}
}

func TestFileSystem_WriteFileCreatesParentDirs(t *testing.T) {
	fs := New()
	path := filepath.Join(t.TempDir(), "problematic_frames", "nested", "frame_00001_missing.png")

	if err := fs.WriteFile(path, []byte("png")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	exists, err := fs.Exists(path)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected file to exist")
	}
}

func TestFileSystem_MkdirAll(t *testing.T) {
	fs := New()
	dir := filepath.Join(t.TempDir(), "a", "b", "c")

	if err := fs.MkdirAll(dir); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if !info.IsDir() {
		t.Error("expected a directory")
	}
}

func TestFileSystem_Exists(t *testing.T) {
	fs := New()
	tmpDir := t.TempDir()

	path := filepath.Join(tmpDir, "test.txt")
	if err := os.WriteFile(path, []byte("test"), 0o644); err != nil {
		t.Fatal(err)
	}

	exists, err := fs.Exists(path)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected file to exist")
	}

	exists, err = fs.Exists(filepath.Join(tmpDir, "nonexistent.txt"))
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("expected file to not exist")
	}
}

func TestFileSystem_ReadMissing(t *testing.T) {
	fs := New()
	if _, err := fs.ReadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error reading missing file")
	}
}
