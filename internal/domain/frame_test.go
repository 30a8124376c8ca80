package domain

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"
)

func encodeFrame(typeID uint32, payload []byte) []byte {
	out := make([]byte, 8+len(payload))
	binary.LittleEndian.PutUint32(out[0:4], typeID)
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(payload)))
	copy(out[8:], payload)
	return out
}

func TestReadFrame(t *testing.T) {
	var stream bytes.Buffer
	stream.Write(encodeFrame(FrameTypeDepth, []byte{1, 2, 3, 4}))
	stream.Write(encodeFrame(FrameTypeBattery, nil))

	f1, err := ReadFrame(&stream)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if f1.TypeID != FrameTypeDepth || !bytes.Equal(f1.Payload, []byte{1, 2, 3, 4}) {
		t.Fatalf("frame 1 = %+v", f1)
	}

	f2, err := ReadFrame(&stream)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if f2.TypeID != FrameTypeBattery || len(f2.Payload) != 0 {
		t.Fatalf("frame 2 = %+v", f2)
	}

	if _, err := ReadFrame(&stream); err != io.EOF {
		t.Fatalf("expected io.EOF at end of stream, got %v", err)
	}
}

func TestReadFrame_Truncated(t *testing.T) {
	full := encodeFrame(FrameTypePosition, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	r := bytes.NewReader(full[:len(full)-3])

	if _, err := ReadFrame(r); err != io.ErrUnexpectedEOF {
		t.Fatalf("expected io.ErrUnexpectedEOF, got %v", err)
	}
}

func TestFrame_Version(t *testing.T) {
	payload := make([]byte, 8)
	binary.LittleEndian.PutUint32(payload[0:4], 1)
	binary.LittleEndian.PutUint32(payload[4:8], 0)

	f := Frame{TypeID: FrameTypeVersion, Payload: payload}
	if !f.IsVersion() {
		t.Fatal("IsVersion() = false for type 0")
	}
	major, minor, err := f.Version()
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if major != 1 || minor != 0 {
		t.Fatalf("version = %d.%d, want 1.0", major, minor)
	}

	data := Frame{TypeID: FrameTypeDepth}
	if _, _, err := data.Version(); err == nil {
		t.Fatal("Version() on a data frame should fail")
	}
}
