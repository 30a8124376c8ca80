package domain

import (
	"encoding/binary"
	"math"
)

// initialBufferCap is the capacity a FrameBuffer starts with on first append.
const initialBufferCap = 64

// FrameBuffer is an owned, growable byte sequence used to assemble one
// logical record before it is handed to the frame writer.
//
// Growth policy is part of the contract: when an append would exceed the
// current capacity, capacity doubles until the value fits. Capacity never
// shrinks. Doubling keeps the worst-case allocation count logarithmic in the
// record size, which matters on constrained targets.
//
// All multi-byte values are appended little-endian. A buffer is created per
// record, filled by the producer, passed by reference to the writer, and not
// retained past one write.
type FrameBuffer struct {
	buf []byte
}

// NewFrameBuffer returns an empty frame buffer.
func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{}
}

// Bytes returns the assembled payload. The slice is owned by the buffer and
// is only valid until the next append or Reset.
func (b *FrameBuffer) Bytes() []byte { return b.buf }

// Len returns the number of bytes appended so far.
func (b *FrameBuffer) Len() int { return len(b.buf) }

// Cap returns the current capacity.
func (b *FrameBuffer) Cap() int { return cap(b.buf) }

// Reset empties the buffer without releasing capacity.
func (b *FrameBuffer) Reset() { b.buf = b.buf[:0] }

// grow ensures room for n more bytes, doubling capacity until it fits.
func (b *FrameBuffer) grow(n int) {
	need := len(b.buf) + n
	if need <= cap(b.buf) {
		return
	}
	newCap := cap(b.buf)
	if newCap == 0 {
		newCap = initialBufferCap
	}
	for newCap < need {
		newCap *= 2
	}
	next := make([]byte, len(b.buf), newCap)
	copy(next, b.buf)
	b.buf = next
}

// AppendUint8 appends a single byte.
func (b *FrameBuffer) AppendUint8(v uint8) {
	b.grow(1)
	b.buf = append(b.buf, v)
}

// AppendUint16 appends v as two little-endian bytes.
func (b *FrameBuffer) AppendUint16(v uint16) {
	b.grow(2)
	b.buf = binary.LittleEndian.AppendUint16(b.buf, v)
}

// AppendUint32 appends v as four little-endian bytes.
func (b *FrameBuffer) AppendUint32(v uint32) {
	b.grow(4)
	b.buf = binary.LittleEndian.AppendUint32(b.buf, v)
}

// AppendUint64 appends v as eight little-endian bytes.
func (b *FrameBuffer) AppendUint64(v uint64) {
	b.grow(8)
	b.buf = binary.LittleEndian.AppendUint64(b.buf, v)
}

// AppendInt8 appends v as one byte, two's complement.
func (b *FrameBuffer) AppendInt8(v int8) { b.AppendUint8(uint8(v)) }

// AppendInt16 appends v as two little-endian bytes, two's complement.
func (b *FrameBuffer) AppendInt16(v int16) { b.AppendUint16(uint16(v)) }

// AppendInt32 appends v as four little-endian bytes, two's complement.
func (b *FrameBuffer) AppendInt32(v int32) { b.AppendUint32(uint32(v)) }

// AppendInt64 appends v as eight little-endian bytes, two's complement.
func (b *FrameBuffer) AppendInt64(v int64) { b.AppendUint64(uint64(v)) }

// AppendFloat32 appends the IEEE 754 bit pattern of v, little-endian.
func (b *FrameBuffer) AppendFloat32(v float32) { b.AppendUint32(math.Float32bits(v)) }

// AppendFloat64 appends the IEEE 754 bit pattern of v, little-endian.
func (b *FrameBuffer) AppendFloat64(v float64) { b.AppendUint64(math.Float64bits(v)) }
