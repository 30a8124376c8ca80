package domain

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Serialization format version written as the first frame of every log file.
const (
	FormatMajor uint32 = 1
	FormatMinor uint32 = 0
)

// FrameTypeVersion is reserved for the version frame the writer emits once
// at stream open. Callers cannot record it.
const FrameTypeVersion uint32 = 0

// Record type catalogue. Decoding of NMEA traffic into these records happens
// outside the storage engine; these ids define the boundary.
const (
	// FrameTypePosition: lat f64, lon f64, elapsed ms u32.
	FrameTypePosition uint32 = 1
	// FrameTypeDepth: depth metres f32, offset f32, elapsed ms u32.
	FrameTypeDepth uint32 = 2
	// FrameTypeSpeedHeading: speed knots f32, heading deg f32, elapsed ms u32.
	FrameTypeSpeedHeading uint32 = 3
	// FrameTypeBattery: volts f32, elapsed ms u32.
	FrameTypeBattery uint32 = 4
)

// frameHeaderSize is the on-disk header: type id u32 + payload length u32.
const frameHeaderSize = 8

// MaxFramePayload bounds a single frame payload. Anything larger indicates a
// corrupt stream when reading back.
const MaxFramePayload = 1 << 20

// Frame is the on-disk unit of one logged record.
type Frame struct {
	TypeID  uint32
	Payload []byte
}

// IsVersion reports whether this is the reserved version frame.
func (f Frame) IsVersion() bool { return f.TypeID == FrameTypeVersion }

// Version decodes the major/minor pair from a version frame payload.
func (f Frame) Version() (major, minor uint32, err error) {
	if !f.IsVersion() {
		return 0, 0, fmt.Errorf("frame type %d is not a version frame", f.TypeID)
	}
	if len(f.Payload) != 8 {
		return 0, 0, fmt.Errorf("version frame payload is %d bytes, want 8", len(f.Payload))
	}
	major = binary.LittleEndian.Uint32(f.Payload[0:4])
	minor = binary.LittleEndian.Uint32(f.Payload[4:8])
	return major, minor, nil
}

// ReadFrame decodes the next frame from r. It returns io.EOF cleanly at end
// of stream and io.ErrUnexpectedEOF for a truncated frame.
func ReadFrame(r io.Reader) (Frame, error) {
	var hdr [frameHeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return Frame{}, err
		}
		return Frame{}, fmt.Errorf("read frame header: %w", err)
	}
	typeID := binary.LittleEndian.Uint32(hdr[0:4])
	length := binary.LittleEndian.Uint32(hdr[4:8])
	if length > MaxFramePayload {
		return Frame{}, fmt.Errorf("frame payload length %d exceeds limit", length)
	}
	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return Frame{}, err
	}
	return Frame{TypeID: typeID, Payload: payload}, nil
}
