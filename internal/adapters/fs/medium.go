// Package fs implements the storage ports on the host file system. On-target
// builds replace this with a flash-backed medium.
package fs

import (
	"fmt"
	"os"

	"github.com/tidemark-io/tidelog/internal/ports"
)

// Medium implements ports.Medium over the operating system file system.
type Medium struct{}

// NewMedium creates a host file-system medium.
func NewMedium() *Medium { return &Medium{} }

// Open opens path in the given mode.
func (Medium) Open(path string, mode ports.OpenMode) (ports.Stream, error) {
	var flags int
	switch mode {
	case ports.ModeAppend:
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	case ports.ModeTruncate:
		flags = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	case ports.ModeRead:
		flags = os.O_RDONLY
	default:
		return nil, fmt.Errorf("unknown open mode %d", mode)
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, err
	}
	return &fileStream{f: f}, nil
}

// Exists reports whether path exists.
func (Medium) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Remove deletes path, reporting whether the delete succeeded.
func (Medium) Remove(path string) bool {
	return os.Remove(path) == nil
}

// Rename moves old to new, replacing new if present.
func (Medium) Rename(oldPath, newPath string) error {
	return os.Rename(oldPath, newPath)
}

// MkdirAll creates dir and any missing parents.
func (Medium) MkdirAll(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// List returns the file names directly under dir.
func (Medium) List(dir string) ([]string, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(ents))
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// fileStream adapts *os.File to ports.Stream.
type fileStream struct {
	f *os.File
}

func (s *fileStream) Read(p []byte) (int, error)  { return s.f.Read(p) }
func (s *fileStream) Write(p []byte) (int, error) { return s.f.Write(p) }
func (s *fileStream) Close() error                { return s.f.Close() }
func (s *fileStream) Sync() error                 { return s.f.Sync() }

func (s *fileStream) Size() (int64, error) {
	info, err := s.f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
