package fs

import (
	"os"
	"path/filepath"
)

const statusFileName = "status.txt"

// StatusFile implements ports.StatusSink with a single text file.
type StatusFile struct {
	dir string
}

// NewStatusFile creates a status sink rooted at dir.
func NewStatusFile(dir string) *StatusFile {
	return &StatusFile{dir: dir}
}

// SetStatus persists the status string atomically. A write to a temp file
// followed by rename prevents a torn status after a crash.
func (s *StatusFile) SetStatus(status string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(s.dir, statusFileName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(status+"\n"), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Path returns the full path to the status file.
func (s *StatusFile) Path() string {
	return filepath.Join(s.dir, statusFileName)
}
