package fs

import (
	"path/filepath"
	"testing"

	"github.com/tidemark-io/tidelog/internal/ports"
)

func TestMedium_AppendAndSize(t *testing.T) {
	dir := t.TempDir()
	m := NewMedium()
	path := filepath.Join(dir, "log-000.tlg")

	s, err := m.Open(path, ports.ModeAppend)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := s.Write([]byte("hello")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.Sync(); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	size, err := s.Size()
	if err != nil || size != 5 {
		t.Fatalf("Size = (%d, %v), want (5, nil)", size, err)
	}
	s.Close()

	// Append mode continues where the file left off.
	s, err = m.Open(path, ports.ModeAppend)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	s.Write([]byte("!"))
	size, _ = s.Size()
	s.Close()
	if size != 6 {
		t.Fatalf("size after append = %d, want 6", size)
	}

	// Truncate mode starts over.
	s, err = m.Open(path, ports.ModeTruncate)
	if err != nil {
		t.Fatalf("truncate open: %v", err)
	}
	size, _ = s.Size()
	s.Close()
	if size != 0 {
		t.Fatalf("size after truncate = %d, want 0", size)
	}
}

func TestMedium_ExistsRemoveList(t *testing.T) {
	dir := t.TempDir()
	m := NewMedium()
	path := filepath.Join(dir, "a.tlg")

	if m.Exists(path) {
		t.Fatal("Exists on a missing file")
	}
	s, err := m.Open(path, ports.ModeTruncate)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	if !m.Exists(path) {
		t.Fatal("Exists after create")
	}
	names, err := m.List(dir)
	if err != nil || len(names) != 1 || names[0] != "a.tlg" {
		t.Fatalf("List = (%v, %v)", names, err)
	}

	if !m.Remove(path) {
		t.Fatal("Remove should succeed")
	}
	if m.Remove(path) {
		t.Fatal("Remove of a missing file should report false")
	}
}

func TestMedium_Rename(t *testing.T) {
	dir := t.TempDir()
	m := NewMedium()
	oldPath := filepath.Join(dir, "console.log")
	newPath := filepath.Join(dir, "console.log.1")

	s, _ := m.Open(oldPath, ports.ModeTruncate)
	s.Write([]byte("x"))
	s.Close()

	if err := m.Rename(oldPath, newPath); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if m.Exists(oldPath) || !m.Exists(newPath) {
		t.Fatal("rename did not move the file")
	}
}
