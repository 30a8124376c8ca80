package domain

import "errors"

// Sentinel errors returned by the storage engine and the device loop.
// Callers check them with errors.Is.
var (
	// ErrReservedType is returned when a caller records type id 0, which is
	// reserved for the version frame. Nothing is written.
	ErrReservedType = errors.New("tidelog: frame type 0 is reserved")

	// ErrNoActiveLog is returned by Record when no log file is open, for
	// example after a failed open. The call fails cleanly; it never
	// dereferences an absent stream.
	ErrNoActiveLog = errors.New("tidelog: no active log file")

	// ErrLogOpen is returned by StartNewLog while a file is still open. The
	// manager never closes implicitly; the caller closes first.
	ErrLogOpen = errors.New("tidelog: a log file is already open")

	// ErrMediumAbsent is fatal at boot: the storage medium is missing or
	// unusable. Signaled upward to the external indicator loop.
	ErrMediumAbsent = errors.New("tidelog: storage medium not present")

	// ErrAlreadyRunning is returned when Start is called on a running device.
	ErrAlreadyRunning = errors.New("tidelog: already running")

	// ErrNotRunning is returned when Stop is called on a stopped device.
	ErrNotRunning = errors.New("tidelog: not running")
)
