package store

import (
	"fmt"
	"path/filepath"

	"github.com/tidemark-io/tidelog/internal/domain"
	"github.com/tidemark-io/tidelog/internal/ports"
	"github.com/tidemark-io/tidelog/pkg/log"
)

// MaxLogFiles bounds the logical file number range [0, MaxLogFiles).
const MaxLogFiles = 1000

// DefaultMaxLogFileSize is the rotation ceiling when none is configured.
const DefaultMaxLogFileSize = 4 << 20 // 4 MiB

// logFilePattern materializes a logical number as a file name.
const logFilePattern = "log-%03d.tlg"

// LogInfo describes one stored log file.
type LogInfo struct {
	Number int
	Size   int64
	Active bool
}

// Manager owns the single active log file. It allocates logical numbers,
// rotates when a write crosses the size ceiling, and deletes files on
// command. All methods run on the device's single poll goroutine; the
// manager does no locking of its own.
type Manager struct {
	medium  ports.Medium
	dir     string
	maxSize int64
	logger  log.Logger

	// limit exists so tests can exercise number exhaustion without
	// creating a thousand files.
	limit int

	current   ports.Stream
	writer    *FrameWriter
	curNumber int
}

// NewManager creates a lifecycle manager writing under dir. maxSize <= 0
// selects DefaultMaxLogFileSize.
func NewManager(medium ports.Medium, dir string, maxSize int64, logger log.Logger) *Manager {
	if maxSize <= 0 {
		maxSize = DefaultMaxLogFileSize
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Manager{
		medium:  medium,
		dir:     dir,
		maxSize: maxSize,
		logger:  logger,
		limit:   MaxLogFiles,
	}
}

// Path returns the file path for a logical number.
func (m *Manager) Path(number int) string {
	return filepath.Join(m.dir, fmt.Sprintf(logFilePattern, number))
}

// CurrentNumber returns the active file's logical number, if a file is open.
func (m *Manager) CurrentNumber() (int, bool) {
	if m.current == nil {
		return 0, false
	}
	return m.curNumber, true
}

// nextNumber scans from 0 and returns the first unoccupied logical number.
// When every number is taken it returns 0: overwriting the oldest file is the
// accepted trade-off so logging never halts.
func (m *Manager) nextNumber() int {
	for n := 0; n < m.limit; n++ {
		if !m.medium.Exists(m.Path(n)) {
			return n
		}
	}
	m.logger.Info("all log numbers occupied, reusing number 0")
	return 0
}

// StartNewLog allocates the next logical number, opens it truncated, and
// binds a fresh frame writer (which writes the version frame). The manager
// never closes implicitly: callers close the prior file first, and a call
// while a file is open fails with ErrLogOpen.
//
// On an open failure the current file stays unset and subsequent Record
// calls fail cleanly with ErrNoActiveLog.
func (m *Manager) StartNewLog() error {
	if m.current != nil {
		return domain.ErrLogOpen
	}
	number := m.nextNumber()
	path := m.Path(number)
	stream, err := m.medium.Open(path, ports.ModeTruncate)
	if err != nil {
		m.logger.Error("open log file failed", log.String("path", path), log.Err(err))
		return fmt.Errorf("open log %s: %w", path, err)
	}
	writer, err := NewFrameWriter(stream)
	if err != nil {
		stream.Close()
		m.medium.Remove(path)
		m.logger.Error("initialize log file failed", log.String("path", path), log.Err(err))
		return err
	}
	m.current = stream
	m.writer = writer
	m.curNumber = number
	m.logger.Info("log file opened", log.Int("number", number), log.String("path", path))
	return nil
}

// CloseCurrent releases the frame writer and closes the stream. Calling it
// with nothing open is a no-op.
func (m *Manager) CloseCurrent() {
	if m.current == nil {
		return
	}
	if err := m.current.Close(); err != nil {
		m.logger.Warn("close log file", log.Int("number", m.curNumber), log.Err(err))
	}
	m.current = nil
	m.writer = nil
}

// Record writes one frame to the active file. After a successful write it
// checks the file size; a write that crossed the ceiling triggers rotation.
// The crossing frame is fully present in the file that was active when it
// was written, so nothing is lost between the check and the rotation.
func (m *Manager) Record(typeID uint32, buf *domain.FrameBuffer) error {
	if m.writer == nil {
		return domain.ErrNoActiveLog
	}
	if err := m.writer.Write(typeID, buf); err != nil {
		if err != domain.ErrReservedType {
			m.logger.Error("record frame failed", log.Uint32("type", typeID), log.Err(err))
		}
		return err
	}
	size, err := m.current.Size()
	if err != nil {
		m.logger.Warn("log size check failed", log.Err(err))
		return nil
	}
	if size > m.maxSize {
		m.logger.Info("log file reached size ceiling, rotating",
			log.Int("number", m.curNumber), log.Int64("size", size))
		m.CloseCurrent()
		return m.StartNewLog()
	}
	return nil
}

// Remove deletes the file for a logical number and reports whether the
// delete succeeded. The currently open number is explicitly rejected rather
// than relying on delete-while-open file system semantics.
func (m *Manager) Remove(number int) bool {
	if number < 0 || number >= m.limit {
		return false
	}
	if m.current != nil && number == m.curNumber {
		m.logger.Warn("refusing to remove the active log file", log.Int("number", number))
		return false
	}
	return m.medium.Remove(m.Path(number))
}

// RemoveAll closes the current file, deletes every stored log file, and
// starts a fresh log so the device is never left without an active
// destination. It returns the number of successful deletes and the total
// number of files seen.
func (m *Manager) RemoveAll() (removed, total int) {
	m.CloseCurrent()
	for n := 0; n < m.limit; n++ {
		path := m.Path(n)
		if !m.medium.Exists(path) {
			continue
		}
		total++
		if m.medium.Remove(path) {
			removed++
		}
	}
	m.logger.Info("removed log files", log.Int("removed", removed), log.Int("total", total))
	if err := m.StartNewLog(); err != nil {
		m.logger.Error("restart logging after remove all", log.Err(err))
	}
	return removed, total
}

// List enumerates the stored log files in logical-number order.
func (m *Manager) List() []LogInfo {
	var infos []LogInfo
	for n := 0; n < m.limit; n++ {
		path := m.Path(n)
		if !m.medium.Exists(path) {
			continue
		}
		info := LogInfo{Number: n}
		if m.current != nil && n == m.curNumber {
			info.Active = true
			if size, err := m.current.Size(); err == nil {
				info.Size = size
			}
		} else if f, err := m.medium.Open(path, ports.ModeRead); err == nil {
			if size, err := f.Size(); err == nil {
				info.Size = size
			}
			f.Close()
		}
		infos = append(infos, info)
	}
	return infos
}
