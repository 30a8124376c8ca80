// Package log provides the structured logging abstraction used across
// tidelog. Core packages depend on the Logger interface; the CLI wires the
// zerolog console adapter and the device console log wires a file-backed
// adapter. Use NoopLogger in tests that do not assert on output.
package log
