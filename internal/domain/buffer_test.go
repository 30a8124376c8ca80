package domain

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestFrameBuffer_RoundTrip(t *testing.T) {
	b := NewFrameBuffer()
	b.AppendUint8(0xAB)
	b.AppendUint16(0xBEEF)
	b.AppendUint32(0xDEADBEEF)
	b.AppendUint64(0x0123456789ABCDEF)
	b.AppendInt8(-5)
	b.AppendInt16(-300)
	b.AppendInt32(-70000)
	b.AppendInt64(-5000000000)
	b.AppendFloat32(3.25)
	b.AppendFloat64(-123.456)

	want := 1 + 2 + 4 + 8 + 1 + 2 + 4 + 8 + 4 + 8
	if b.Len() != want {
		t.Fatalf("Len() = %d, want %d", b.Len(), want)
	}

	buf := b.Bytes()
	off := 0

	if got := buf[off]; got != 0xAB {
		t.Errorf("uint8 = %#x, want 0xAB", got)
	}
	off++
	if got := binary.LittleEndian.Uint16(buf[off:]); got != 0xBEEF {
		t.Errorf("uint16 = %#x, want 0xBEEF", got)
	}
	off += 2
	if got := binary.LittleEndian.Uint32(buf[off:]); got != 0xDEADBEEF {
		t.Errorf("uint32 = %#x, want 0xDEADBEEF", got)
	}
	off += 4
	if got := binary.LittleEndian.Uint64(buf[off:]); got != 0x0123456789ABCDEF {
		t.Errorf("uint64 = %#x", got)
	}
	off += 8
	if got := int8(buf[off]); got != -5 {
		t.Errorf("int8 = %d, want -5", got)
	}
	off++
	if got := int16(binary.LittleEndian.Uint16(buf[off:])); got != -300 {
		t.Errorf("int16 = %d, want -300", got)
	}
	off += 2
	if got := int32(binary.LittleEndian.Uint32(buf[off:])); got != -70000 {
		t.Errorf("int32 = %d, want -70000", got)
	}
	off += 4
	if got := int64(binary.LittleEndian.Uint64(buf[off:])); got != -5000000000 {
		t.Errorf("int64 = %d, want -5000000000", got)
	}
	off += 8
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[off:])); got != 3.25 {
		t.Errorf("float32 = %v, want 3.25", got)
	}
	off += 4
	if got := math.Float64frombits(binary.LittleEndian.Uint64(buf[off:])); got != -123.456 {
		t.Errorf("float64 = %v, want -123.456", got)
	}
}

func TestFrameBuffer_GrowthDoubles(t *testing.T) {
	b := NewFrameBuffer()
	if b.Cap() != 0 {
		t.Fatalf("fresh buffer cap = %d, want 0", b.Cap())
	}

	b.AppendUint8(1)
	if b.Cap() != 64 {
		t.Fatalf("cap after first append = %d, want 64", b.Cap())
	}

	for i := 0; i < 64; i++ {
		b.AppendUint8(byte(i))
	}
	if b.Cap() != 128 {
		t.Fatalf("cap after overflow = %d, want 128", b.Cap())
	}
}

func TestFrameBuffer_ResetKeepsCapacity(t *testing.T) {
	b := NewFrameBuffer()
	for i := 0; i < 100; i++ {
		b.AppendUint32(uint32(i))
	}
	capBefore := b.Cap()

	b.Reset()
	if b.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", b.Len())
	}
	if b.Cap() != capBefore {
		t.Errorf("Cap() after Reset = %d, want %d", b.Cap(), capBefore)
	}
}

func TestFrameBuffer_LargeAppendGrowsEnough(t *testing.T) {
	b := NewFrameBuffer()
	for i := 0; i < 1000; i++ {
		b.AppendFloat64(float64(i))
	}
	if b.Len() != 8000 {
		t.Fatalf("Len() = %d, want 8000", b.Len())
	}
	for i := 0; i < 1000; i++ {
		got := math.Float64frombits(binary.LittleEndian.Uint64(b.Bytes()[i*8:]))
		if got != float64(i) {
			t.Fatalf("value %d = %v", i, got)
		}
	}
}
