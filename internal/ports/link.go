package ports

// LinkState is the wireless link status as reported by the driver.
type LinkState int

const (
	// LinkDown means no association with a network.
	LinkDown LinkState = iota
	// LinkUp means the station join completed or the access point is serving.
	LinkUp
)

// LinkDriver is the wireless capability interface. One implementation exists
// per target platform, selected at build configuration time.
//
// BeginJoin must not block: it issues the attempt and returns immediately.
// The connection state machine polls Status for the outcome, keeping the
// cooperative scheduler free during a slow or failing join.
type LinkDriver interface {
	// BeginJoin starts an asynchronous attempt to join the network.
	// An immediate error means the attempt could not even be issued.
	BeginJoin(ssid, password string) error

	// BeginAccessPoint brings up a local access point and returns the
	// assigned address.
	BeginAccessPoint(ssid, password string) (string, error)

	// Status reports the current link state.
	Status() LinkState

	// Stop tears down any join attempt or access point.
	Stop() error
}

// Restarter requests a device restart. Safe-mode fallback uses it after
// persisting the forced access-point configuration.
type Restarter interface {
	Restart()
}

// StatusSink persists a short human-readable status string, for example
// "AP-Enabled,Station-Join-Failed", for the operator-facing surface.
type StatusSink interface {
	SetStatus(status string) error
}
