package conn

import (
	"time"

	"github.com/tidemark-io/tidelog/internal/ports"
	"github.com/tidemark-io/tidelog/pkg/log"
)

// State is the connection state machine's single current state.
type State int

const (
	StateStopped State = iota
	StateAPMode
	StateStationConnecting
	StateStationConnected
	StateStationRetry
	StateSafeModeFallback
	StateConnectionCheck
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StateAPMode:
		return "APMode"
	case StateStationConnecting:
		return "StationConnecting"
	case StateStationConnected:
		return "StationConnected"
	case StateStationRetry:
		return "StationRetry"
	case StateSafeModeFallback:
		return "SafeModeFallback"
	case StateConnectionCheck:
		return "ConnectionCheck"
	default:
		return "Unknown"
	}
}

// Persisted status strings consumed by the operator-facing surface.
const (
	statusAPEnabled        = "AP-Enabled"
	statusStationConnected = "Station-Connected"
	statusJoinFailed       = "AP-Enabled,Station-Join-Failed"
)

// Settings holds the connectivity configuration sourced once at machine
// construction.
type Settings struct {
	APSSID          string
	APPassword      string
	StationSSID     string
	StationPassword string

	// RetryCount bounds join attempts after the initial one. Exhausting it
	// forces safe-mode fallback.
	RetryCount int

	// RetryDelay is the wait before reissuing a join, and the interval
	// between link checks once connected.
	RetryDelay time.Duration

	// ConnectTimeout is how long a single join attempt may remain pending.
	ConnectTimeout time.Duration

	// StatusCheckInterval is how often a pending join is polled.
	StatusCheckInterval time.Duration
}

// PersistModeFunc persists the wireless mode; safe-mode fallback uses it to
// force access-point mode before restarting.
type PersistModeFunc func(mode string) error

// Machine drives connection attempts, health checks, and safe-mode fallback.
// It is polled by Step once per scheduler tick and never blocks: join
// attempts are issued asynchronously through the link driver and completed
// by polling. All state is owned by the machine; the clock is injected so
// transitions are testable.
type Machine struct {
	link        ports.LinkDriver
	status      ports.StatusSink
	restarter   ports.Restarter
	persistMode PersistModeFunc
	logger      log.Logger
	settings    Settings
	now         func() time.Time

	state       State
	stateSince  time.Time
	lastAttempt time.Time
	lastCheck   time.Time
	retriesLeft int
	address     string
}

// NewMachine creates a stopped machine. now may be nil, selecting the wall
// clock.
func NewMachine(
	link ports.LinkDriver,
	status ports.StatusSink,
	restarter ports.Restarter,
	persistMode PersistModeFunc,
	settings Settings,
	logger log.Logger,
	now func() time.Time,
) *Machine {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	if now == nil {
		now = time.Now
	}
	return &Machine{
		link:        link,
		status:      status,
		restarter:   restarter,
		persistMode: persistMode,
		logger:      logger,
		settings:    settings,
		now:         now,
		state:       StateStopped,
	}
}

// State returns the current state, for status reporting.
func (m *Machine) State() State { return m.state }

// Address returns the access-point address once AP mode is up.
func (m *Machine) Address() string { return m.address }

// Start leaves Stopped for the given mode. In access-point mode it brings
// the local network up immediately; in station mode it issues the first join
// attempt and lets Step poll the outcome.
func (m *Machine) Start(mode Mode) {
	if m.state != StateStopped {
		return
	}
	switch mode {
	case ModeStation:
		m.retriesLeft = m.settings.RetryCount
		m.beginJoin()
	default:
		m.enterAPMode()
	}
}

// Step polls the machine once. It is called from the cooperative scheduler
// and performs at most one transition per call.
func (m *Machine) Step() {
	now := m.now()
	switch m.state {
	case StateStationConnecting:
		m.stepConnecting(now)
	case StateStationRetry:
		m.stepRetry(now)
	case StateStationConnected:
		// Entry persisted the status; move straight to periodic checking.
		m.transition(StateConnectionCheck, now)
		m.lastCheck = now
	case StateConnectionCheck:
		m.stepConnectionCheck(now)
	case StateStopped, StateAPMode, StateSafeModeFallback:
		// Stable states: nothing to poll.
	}
}

func (m *Machine) stepConnecting(now time.Time) {
	if now.Sub(m.lastCheck) < m.settings.StatusCheckInterval {
		return
	}
	m.lastCheck = now
	if m.link.Status() == ports.LinkUp {
		m.logger.Info("station joined network", log.String("ssid", m.settings.StationSSID))
		m.setStatus(statusStationConnected)
		// A fresh connection restores the full retry budget for future drops.
		m.retriesLeft = m.settings.RetryCount
		m.transition(StateStationConnected, now)
		return
	}
	if now.Sub(m.lastAttempt) > m.settings.ConnectTimeout {
		m.logger.Warn("join attempt timed out",
			log.Duration("timeout", m.settings.ConnectTimeout),
			log.Int("retries_left", m.retriesLeft))
		m.transition(StateStationRetry, now)
	}
}

func (m *Machine) stepRetry(now time.Time) {
	if now.Sub(m.stateSince) < m.settings.RetryDelay {
		return
	}
	if m.retriesLeft > 0 {
		m.retriesLeft--
		m.beginJoin()
		return
	}
	m.enterSafeModeFallback()
}

func (m *Machine) stepConnectionCheck(now time.Time) {
	if now.Sub(m.lastCheck) < m.settings.RetryDelay {
		return
	}
	m.lastCheck = now
	if m.link.Status() != ports.LinkUp {
		m.logger.Warn("station link lost", log.Int("retries_left", m.retriesLeft))
		m.transition(StateStationRetry, now)
	}
}

// beginJoin issues an asynchronous join attempt and enters
// StationConnecting. An immediate driver error is treated like any failed
// attempt: the timeout and retry path handles it.
func (m *Machine) beginJoin() {
	now := m.now()
	if err := m.link.BeginJoin(m.settings.StationSSID, m.settings.StationPassword); err != nil {
		m.logger.Warn("issue join attempt", log.Err(err))
	}
	m.lastAttempt = now
	m.lastCheck = now
	m.transition(StateStationConnecting, now)
}

func (m *Machine) enterAPMode() {
	now := m.now()
	addr, err := m.link.BeginAccessPoint(m.settings.APSSID, m.settings.APPassword)
	if err != nil {
		m.logger.Error("bring up access point", log.Err(err))
	} else {
		m.address = addr
		m.logger.Info("access point up",
			log.String("ssid", m.settings.APSSID), log.String("address", addr))
	}
	m.setStatus(statusAPEnabled)
	m.transition(StateAPMode, now)
}

// enterSafeModeFallback forces access-point mode, persists the failure
// status, and requests a restart. The state is terminal: the restart is the
// recovery.
func (m *Machine) enterSafeModeFallback() {
	m.logger.Error("join retries exhausted, falling back to access point",
		log.Int("retry_count", m.settings.RetryCount))
	if m.persistMode != nil {
		if err := m.persistMode("ap"); err != nil {
			m.logger.Error("persist access-point mode", log.Err(err))
		}
	}
	m.setStatus(statusJoinFailed)
	m.transition(StateSafeModeFallback, m.now())
	if m.restarter != nil {
		m.restarter.Restart()
	}
}

func (m *Machine) setStatus(status string) {
	if m.status == nil {
		return
	}
	if err := m.status.SetStatus(status); err != nil {
		m.logger.Warn("persist status", log.String("status", status), log.Err(err))
	}
}

func (m *Machine) transition(next State, now time.Time) {
	if next == m.state {
		return
	}
	m.logger.Debug("connection state transition",
		log.String("from", m.state.String()), log.String("to", next.String()))
	m.state = next
	m.stateSince = now
}
