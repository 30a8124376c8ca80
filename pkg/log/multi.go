package log

// MultiLogger fans every message out to several loggers. The device uses it
// to mirror operational messages to the on-card console log and the local
// console.
type MultiLogger struct {
	targets []Logger
}

// NewMultiLogger creates a logger writing to all targets in order.
func NewMultiLogger(targets ...Logger) *MultiLogger {
	return &MultiLogger{targets: targets}
}

// Debug logs to all targets.
func (m *MultiLogger) Debug(msg string, fields ...Field) {
	for _, t := range m.targets {
		t.Debug(msg, fields...)
	}
}

// Info logs to all targets.
func (m *MultiLogger) Info(msg string, fields ...Field) {
	for _, t := range m.targets {
		t.Info(msg, fields...)
	}
}

// Warn logs to all targets.
func (m *MultiLogger) Warn(msg string, fields ...Field) {
	for _, t := range m.targets {
		t.Warn(msg, fields...)
	}
}

// Error logs to all targets.
func (m *MultiLogger) Error(msg string, fields ...Field) {
	for _, t := range m.targets {
		t.Error(msg, fields...)
	}
}
