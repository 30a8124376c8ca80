// Package tidelog is the core firmware of a battery/solar powered marine
// data logger. It ingests typed navigation and depth records, stores them in
// an append-only binary frame log with size-bounded rotation on removable
// flash, and keeps a wireless command channel reachable through a bounded
// retry state machine with safe-mode fallback.
//
// Example usage:
//
//	cfg := tidelog.DefaultConfig()
//	cfg.DataDir = "/mnt/sd/tidelog"
//	cfg.Simulate = true
//	dev, err := tidelog.New(cfg, tidelog.WithLogger(log.NewConsole()))
//	if err != nil {
//	    // handle
//	}
//	if err := dev.Start(context.Background()); err != nil {
//	    // handle
//	}
//	defer dev.Stop()
package tidelog

import (
	"context"
	"sync"
	"time"

	"github.com/tidemark-io/tidelog/internal/adapters/fs"
	linkadapter "github.com/tidemark-io/tidelog/internal/adapters/link"
	"github.com/tidemark-io/tidelog/internal/adapters/sim"
	"github.com/tidemark-io/tidelog/internal/app"
	"github.com/tidemark-io/tidelog/internal/config"
	"github.com/tidemark-io/tidelog/internal/conn"
	"github.com/tidemark-io/tidelog/internal/domain"
	"github.com/tidemark-io/tidelog/internal/ports"
	"github.com/tidemark-io/tidelog/internal/store"
	"github.com/tidemark-io/tidelog/pkg/log"
)

// Config holds the device configuration. Use DefaultConfig for the device
// defaults.
type Config = config.Config

// ConnState is the connection state machine's observable state.
type ConnState = conn.State

// LogInfo describes one stored log file.
type LogInfo = store.LogInfo

// Sentinel errors, checked with errors.Is.
var (
	ErrAlreadyRunning = domain.ErrAlreadyRunning
	ErrNotRunning     = domain.ErrNotRunning
	ErrMediumAbsent   = domain.ErrMediumAbsent
)

// DefaultConfig returns a Config with the device defaults. DataDir must be
// set before New.
func DefaultConfig() Config { return config.DefaultConfig() }

// Option configures optional collaborators of a Device.
type Option func(*options)

type options struct {
	medium     ports.Medium
	link       ports.LinkDriver
	status     ports.StatusSink
	restarter  ports.Restarter
	sources    []ports.Source
	logger     log.Logger
	configPath string
	now        func() time.Time
}

// WithMedium replaces the host file-system storage medium.
func WithMedium(m ports.Medium) Option { return func(o *options) { o.medium = m } }

// WithLinkDriver replaces the wireless driver. The default is the host stub,
// which joins on the first attempt.
func WithLinkDriver(l ports.LinkDriver) Option { return func(o *options) { o.link = l } }

// WithStatusSink replaces the persisted status sink.
func WithStatusSink(s ports.StatusSink) Option { return func(o *options) { o.status = s } }

// WithRestarter replaces the restart requester used by safe-mode fallback.
// The default stops the run loop and relies on the process supervisor.
func WithRestarter(r ports.Restarter) Option { return func(o *options) { o.restarter = r } }

// WithSource adds a polled record source.
func WithSource(s ports.Source) Option {
	return func(o *options) { o.sources = append(o.sources, s) }
}

// WithLogger sets the structured logger. The default discards output; the
// on-card console log is written regardless.
func WithLogger(l log.Logger) Option { return func(o *options) { o.logger = l } }

// WithConfigPath tells safe-mode fallback where to persist the forced
// access-point mode.
func WithConfigPath(path string) Option { return func(o *options) { o.configPath = path } }

// Device is a running (or stoppable) logger instance.
type Device struct {
	inner *app.Device

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// funcRestarter adapts a plain function to ports.Restarter.
type funcRestarter func()

func (f funcRestarter) Restart() { f() }

// New validates cfg, wires default adapters for any collaborator not
// overridden by options, and returns a stopped Device.
func New(cfg Config, opts ...Option) (*Device, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.medium == nil {
		o.medium = fs.NewMedium()
	}
	if o.link == nil {
		o.link = linkadapter.NewStub(1)
	}
	if o.status == nil {
		o.status = fs.NewStatusFile(cfg.StatusDir)
	}
	if o.logger == nil {
		o.logger = log.NewNoopLogger()
	}
	if cfg.Simulate {
		o.sources = append(o.sources, sim.NewSource())
	}

	d := &Device{}
	if o.restarter == nil {
		// Host fallback: end the run loop and let the supervisor restart
		// the process with the rewritten configuration.
		o.restarter = funcRestarter(func() {
			o.logger.Warn("restart requested, stopping run loop")
			go d.Stop()
		})
	}

	d.inner = app.NewDevice(cfg, app.Deps{
		Medium:     o.medium,
		Link:       o.link,
		Status:     o.status,
		Restarter:  o.restarter,
		Sources:    o.sources,
		Logger:     o.logger,
		ConfigPath: o.configPath,
		Now:        o.now,
	})
	return d, nil
}

// Start boots the device and runs the poll loop in the background. It
// returns once the loop is running, or an error if already started.
func (d *Device) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return ErrAlreadyRunning
	}
	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.done = make(chan struct{})
	d.running = true
	go func() {
		defer close(d.done)
		_ = d.inner.Run(runCtx)
	}()
	return nil
}

// Run boots the device and blocks until the context is cancelled or boot
// fails. It is the single-call alternative to Start/Stop.
func (d *Device) Run(ctx context.Context) error {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return ErrAlreadyRunning
	}
	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.done = make(chan struct{})
	d.running = true
	d.mu.Unlock()

	defer func() {
		close(d.done)
		d.mu.Lock()
		d.running = false
		d.mu.Unlock()
	}()
	return d.inner.Run(runCtx)
}

// Stop cancels the run loop and waits for it to finish.
func (d *Device) Stop() error {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return ErrNotRunning
	}
	cancel, done := d.cancel, d.done
	d.running = false
	d.mu.Unlock()

	cancel()
	<-done
	return nil
}

// ConnState reports the connection machine state.
func (d *Device) ConnState() ConnState { return d.inner.ConnState() }

// Logs lists the stored log files. It returns nil before the device has
// booted.
func (d *Device) Logs() []LogInfo {
	s := d.inner.Store()
	if s == nil {
		return nil
	}
	return s.List()
}

// RemoveLog deletes the log file with the given logical number. Removing the
// active file is rejected.
func (d *Device) RemoveLog(number int) bool {
	s := d.inner.Store()
	if s == nil {
		return false
	}
	return s.Remove(number)
}

// RemoveAllLogs deletes every stored log file and starts a fresh one. It
// returns the successful delete count and the total seen.
func (d *Device) RemoveAllLogs() (removed, total int) {
	s := d.inner.Store()
	if s == nil {
		return 0, 0
	}
	return s.RemoveAll()
}
