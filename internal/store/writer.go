// Package store implements the tidelog storage engine: frame serialization
// to an open stream, the log file lifecycle with size-bounded rotation, and
// the generation-rotated console log.
package store

import (
	"encoding/binary"
	"fmt"

	"github.com/tidemark-io/tidelog/internal/domain"
	"github.com/tidemark-io/tidelog/internal/ports"
)

// FrameWriter serializes frames to one storage stream. Construction writes
// the version frame; that is the only implicit write. Each frame is flushed
// before Write returns, trading throughput for durability.
//
// The writer never retries or rotates; that is the Manager's job.
type FrameWriter struct {
	stream ports.Stream
}

// NewFrameWriter binds a writer to stream and writes the version frame
// (type id 0, format major/minor).
func NewFrameWriter(stream ports.Stream) (*FrameWriter, error) {
	w := &FrameWriter{stream: stream}
	version := domain.NewFrameBuffer()
	version.AppendUint32(domain.FormatMajor)
	version.AppendUint32(domain.FormatMinor)
	if err := w.emit(domain.FrameTypeVersion, version.Bytes()); err != nil {
		return nil, fmt.Errorf("write version frame: %w", err)
	}
	return w, nil
}

// Write appends one frame: type id, payload length, payload, then flush.
// Type id 0 is reserved and is rejected without writing any bytes.
func (w *FrameWriter) Write(typeID uint32, buf *domain.FrameBuffer) error {
	if typeID == domain.FrameTypeVersion {
		return domain.ErrReservedType
	}
	return w.emit(typeID, buf.Bytes())
}

// emit performs the three contiguous writes of one frame and syncs.
func (w *FrameWriter) emit(typeID uint32, payload []byte) error {
	var word [4]byte

	binary.LittleEndian.PutUint32(word[:], typeID)
	if _, err := w.stream.Write(word[:]); err != nil {
		return fmt.Errorf("write frame type: %w", err)
	}
	binary.LittleEndian.PutUint32(word[:], uint32(len(payload)))
	if _, err := w.stream.Write(word[:]); err != nil {
		return fmt.Errorf("write frame length: %w", err)
	}
	if _, err := w.stream.Write(payload); err != nil {
		return fmt.Errorf("write frame payload: %w", err)
	}
	if err := w.stream.Sync(); err != nil {
		return fmt.Errorf("sync frame: %w", err)
	}
	return nil
}
