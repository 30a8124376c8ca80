// Package conn implements the tidelog connectivity manager: the wireless
// mode selector and the polled connection state machine with bounded retry
// and safe-mode fallback.
package conn

// Mode is the wireless operating mode selected from persisted configuration.
type Mode int

const (
	// ModeAccessPoint hosts a local network. Requires nothing external, so
	// it is the safe default.
	ModeAccessPoint Mode = iota
	// ModeStation joins a configured network.
	ModeStation
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	if m == ModeStation {
		return "Station"
	}
	return "AccessPoint"
}

// SelectMode maps the persisted mode string to a Mode. Anything other than
// "station" (missing or unreadable configuration included) selects
// access-point mode, which keeps the device reachable without an external
// network.
func SelectMode(configured string) Mode {
	if configured == "station" {
		return ModeStation
	}
	return ModeAccessPoint
}
