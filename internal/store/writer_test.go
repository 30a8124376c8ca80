package store

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/tidemark-io/tidelog/internal/domain"
)

// memStream implements ports.Stream in memory for writer tests.
type memStream struct {
	buf    bytes.Buffer
	syncs  int
	failed bool
	err    error
}

func (s *memStream) Read(p []byte) (int, error) { return s.buf.Read(p) }

func (s *memStream) Write(p []byte) (int, error) {
	if s.err != nil {
		s.failed = true
		return 0, s.err
	}
	return s.buf.Write(p)
}

func (s *memStream) Close() error { return nil }

func (s *memStream) Sync() error {
	s.syncs++
	return nil
}

func (s *memStream) Size() (int64, error) { return int64(s.buf.Len()), nil }

func readAllFrames(t *testing.T, data []byte) []domain.Frame {
	t.Helper()
	r := bytes.NewReader(data)
	var frames []domain.Frame
	for {
		f, err := domain.ReadFrame(r)
		if err == io.EOF {
			return frames
		}
		if err != nil {
			t.Fatalf("ReadFrame: %v", err)
		}
		frames = append(frames, f)
	}
}

func TestNewFrameWriter_WritesVersionFrameFirst(t *testing.T) {
	s := &memStream{}
	if _, err := NewFrameWriter(s); err != nil {
		t.Fatalf("NewFrameWriter: %v", err)
	}

	frames := readAllFrames(t, s.buf.Bytes())
	if len(frames) != 1 {
		t.Fatalf("got %d frames, want exactly one version frame", len(frames))
	}
	major, minor, err := frames[0].Version()
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if major != domain.FormatMajor || minor != domain.FormatMinor {
		t.Fatalf("version = %d.%d, want %d.%d", major, minor, domain.FormatMajor, domain.FormatMinor)
	}
	if s.syncs != 1 {
		t.Errorf("syncs = %d, want 1 (flush per frame)", s.syncs)
	}
}

func TestFrameWriter_RejectsReservedType(t *testing.T) {
	s := &memStream{}
	w, err := NewFrameWriter(s)
	if err != nil {
		t.Fatalf("NewFrameWriter: %v", err)
	}
	sizeBefore := s.buf.Len()

	buf := domain.NewFrameBuffer()
	buf.AppendUint32(42)
	if err := w.Write(domain.FrameTypeVersion, buf); !errors.Is(err, domain.ErrReservedType) {
		t.Fatalf("Write(0) error = %v, want ErrReservedType", err)
	}
	if s.buf.Len() != sizeBefore {
		t.Fatalf("rejected write emitted %d bytes", s.buf.Len()-sizeBefore)
	}
}

func TestFrameWriter_WriteRoundTrip(t *testing.T) {
	s := &memStream{}
	w, err := NewFrameWriter(s)
	if err != nil {
		t.Fatalf("NewFrameWriter: %v", err)
	}

	buf := domain.NewFrameBuffer()
	buf.AppendFloat32(17.5)
	buf.AppendUint32(12345)
	if err := w.Write(domain.FrameTypeDepth, buf); err != nil {
		t.Fatalf("Write: %v", err)
	}

	frames := readAllFrames(t, s.buf.Bytes())
	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(frames))
	}
	got := frames[1]
	if got.TypeID != domain.FrameTypeDepth {
		t.Errorf("type = %d, want %d", got.TypeID, domain.FrameTypeDepth)
	}
	if !bytes.Equal(got.Payload, buf.Bytes()) {
		t.Errorf("payload mismatch: %x vs %x", got.Payload, buf.Bytes())
	}
	if s.syncs != 2 {
		t.Errorf("syncs = %d, want 2", s.syncs)
	}
}

func TestFrameWriter_PropagatesStreamError(t *testing.T) {
	s := &memStream{}
	w, err := NewFrameWriter(s)
	if err != nil {
		t.Fatalf("NewFrameWriter: %v", err)
	}

	s.err = errors.New("device full")
	buf := domain.NewFrameBuffer()
	buf.AppendUint8(1)
	if err := w.Write(domain.FrameTypeBattery, buf); err == nil {
		t.Fatal("expected write error to propagate")
	}
	if !s.failed {
		t.Fatal("stream write was never attempted")
	}
}
