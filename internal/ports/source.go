package ports

import (
	"time"

	"github.com/tidemark-io/tidelog/internal/domain"
)

// EmitFunc records one framed record. The buffer is only valid for the
// duration of the call.
type EmitFunc func(typeID uint32, buf *domain.FrameBuffer) error

// Source is a polled producer of typed records. The device loop calls Poll
// once per scheduler tick; the source emits zero or more records that became
// ready since the previous call. Implementations own all of their state and
// must not block.
type Source interface {
	Poll(now time.Time, emit EmitFunc) error
}
