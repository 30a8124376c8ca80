// Package link provides host-side LinkDriver implementations. The stub
// driver is scriptable and backs the CLI demo run and the connectivity
// tests; on-target builds supply a radio-backed driver instead.
package link

import (
	"sync"

	"github.com/tidemark-io/tidelog/internal/ports"
)

// defaultAPAddress is the address the stub reports for its access point.
const defaultAPAddress = "192.168.4.1"

// Stub is a scriptable wireless driver. ConnectAfter configures how many
// join attempts must be issued before the link reports up; zero means the
// join never succeeds.
type Stub struct {
	mu           sync.Mutex
	connectAfter int
	attempts     int
	up           bool
	apAddress    string
}

// NewStub creates a stub that reports the link up once connectAfter join
// attempts have been issued.
func NewStub(connectAfter int) *Stub {
	return &Stub{connectAfter: connectAfter, apAddress: defaultAPAddress}
}

// BeginJoin records the attempt and returns immediately, as a real radio
// driver issuing an asynchronous join would.
func (s *Stub) BeginJoin(ssid, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts++
	if s.connectAfter > 0 && s.attempts >= s.connectAfter {
		s.up = true
	}
	return nil
}

// BeginAccessPoint brings the stub access point up.
func (s *Stub) BeginAccessPoint(ssid, password string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.up = true
	return s.apAddress, nil
}

// Status reports the scripted link state.
func (s *Stub) Status() ports.LinkState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.up {
		return ports.LinkUp
	}
	return ports.LinkDown
}

// Stop tears the link down and clears the attempt counter.
func (s *Stub) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.up = false
	s.attempts = 0
	return nil
}

// SetUp forces the link state, simulating a drop or recovery.
func (s *Stub) SetUp(up bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.up = up
}

// Attempts returns how many join attempts have been issued.
func (s *Stub) Attempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts
}
