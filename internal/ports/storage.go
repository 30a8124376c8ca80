package ports

import "io"

// OpenMode selects how a Stream is opened on the medium.
type OpenMode int

const (
	// ModeAppend opens for append, creating the file if absent.
	ModeAppend OpenMode = iota
	// ModeTruncate opens for write, truncating any existing content.
	ModeTruncate
	// ModeRead opens read-only.
	ModeRead
)

// Stream is one open file on the storage medium. Writes go through OS
// buffering; Sync pushes them to the medium so a power loss after a returned
// success cannot lose more than the in-flight frame.
type Stream interface {
	io.Reader
	io.Writer
	io.Closer

	// Sync flushes buffered writes to the medium.
	Sync() error

	// Size returns the current file size in bytes.
	Size() (int64, error)
}

// Medium is the removable flash storage the logger writes to. Exactly one
// writer holds a stream open for append at a time; readers are serialized
// against writes by the command/transfer surface.
type Medium interface {
	// Open opens path in the given mode.
	Open(path string, mode OpenMode) (Stream, error)

	// Exists reports whether path exists.
	Exists(path string) bool

	// Remove deletes path, reporting whether the delete succeeded.
	Remove(path string) bool

	// Rename moves old to new, replacing new if present.
	Rename(oldPath, newPath string) error

	// MkdirAll creates dir and any missing parents.
	MkdirAll(dir string) error

	// List returns the file names directly under dir.
	List(dir string) ([]string, error)
}
