// Package app assembles the tidelog subsystems into the device run loop: a
// single-goroutine cooperative scheduler that steps the connection machine
// and polls the record sources once per tick.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/tidemark-io/tidelog/internal/config"
	"github.com/tidemark-io/tidelog/internal/conn"
	"github.com/tidemark-io/tidelog/internal/domain"
	"github.com/tidemark-io/tidelog/internal/ports"
	"github.com/tidemark-io/tidelog/internal/store"
	"github.com/tidemark-io/tidelog/pkg/log"
)

// Deps are the platform collaborators the device core is wired to.
type Deps struct {
	Medium    ports.Medium
	Link      ports.LinkDriver
	Status    ports.StatusSink
	Restarter ports.Restarter
	Sources   []ports.Source
	Logger    log.Logger

	// ConfigPath, when set, lets safe-mode fallback persist the forced
	// access-point mode back to the config file.
	ConfigPath string

	// Now overrides the clock for tests.
	Now func() time.Time
}

// Device owns all mutable state of the logger firmware. Everything runs on
// the goroutine inside Run; nothing needs locking.
type Device struct {
	cfg     config.Config
	deps    Deps
	logger  log.Logger
	store   *store.Manager
	machine *conn.Machine
	console ports.Stream
}

// NewDevice wires a device from configuration and platform collaborators.
// The configuration must already be validated.
func NewDevice(cfg config.Config, deps Deps) *Device {
	if deps.Logger == nil {
		deps.Logger = log.NewNoopLogger()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Device{cfg: cfg, deps: deps, logger: deps.Logger}
}

// Store exposes the log file lifecycle manager to the command/transfer
// surface. Callers must serialize reads against the run loop.
func (d *Device) Store() *store.Manager { return d.store }

// ConnState reports the connection machine state for status queries.
func (d *Device) ConnState() conn.State {
	if d.machine == nil {
		return conn.StateStopped
	}
	return d.machine.State()
}

// Run boots the device and drives the cooperative poll loop until the
// context is cancelled. A missing storage medium is fatal and surfaces
// immediately; everything after boot degrades gracefully.
func (d *Device) Run(ctx context.Context) error {
	if err := d.boot(); err != nil {
		return err
	}
	defer d.shutdown()

	ticker := time.NewTicker(d.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			d.tick()
		}
	}
}

func (d *Device) boot() error {
	if err := d.deps.Medium.MkdirAll(d.cfg.DataDir); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMediumAbsent, err)
	}

	// Console first: every later failure is reported through it. The
	// console rotates one generation per restart.
	consoleStream, err := store.OpenConsole(d.deps.Medium, d.cfg.DataDir)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMediumAbsent, err)
	}
	d.console = consoleStream
	d.logger = log.NewMultiLogger(d.deps.Logger, log.NewWriter(consoleStream))
	d.logger.Info("device booting")

	d.store = store.NewManager(d.deps.Medium, d.cfg.DataDir, d.cfg.MaxLogFileSize, d.logger)
	if err := d.store.StartNewLog(); err != nil {
		// Reported, not fatal: Record calls fail cleanly until a later
		// StartNewLog succeeds.
		d.logger.Error("open initial log file", log.Err(err))
	}

	settings := conn.Settings{
		APSSID:              d.cfg.APSSID,
		APPassword:          d.cfg.APPassword,
		StationSSID:         d.cfg.StationSSID,
		StationPassword:     d.cfg.StationPassword,
		RetryCount:          d.cfg.RetryCount,
		RetryDelay:          d.cfg.RetryDelay,
		ConnectTimeout:      d.cfg.ConnectTimeout,
		StatusCheckInterval: d.cfg.StatusCheckInterval,
	}
	d.machine = conn.NewMachine(
		d.deps.Link, d.deps.Status, d.deps.Restarter,
		d.persistMode, settings, d.logger, d.deps.Now,
	)
	d.machine.Start(conn.SelectMode(d.cfg.WirelessMode))
	return nil
}

// tick runs one scheduler pass: connectivity first, then the sources.
func (d *Device) tick() {
	d.machine.Step()

	now := d.deps.Now()
	for _, src := range d.deps.Sources {
		if err := src.Poll(now, d.record); err != nil {
			d.logger.Warn("source poll", log.Err(err))
		}
	}
}

// record hands one framed record to the storage engine. Storage errors are
// reported and swallowed so a full or failing card cannot stop the loop.
func (d *Device) record(typeID uint32, buf *domain.FrameBuffer) error {
	if err := d.store.Record(typeID, buf); err != nil {
		d.logger.Warn("record failed", log.Uint32("type", typeID), log.Err(err))
	}
	return nil
}

// persistMode writes the wireless mode back to the config file, when one is
// configured. Safe-mode fallback depends on this surviving the restart.
func (d *Device) persistMode(mode string) error {
	if d.deps.ConfigPath == "" {
		return nil
	}
	return config.SaveWirelessMode(d.deps.ConfigPath, mode)
}

func (d *Device) shutdown() {
	if d.store != nil {
		d.store.CloseCurrent()
	}
	if d.deps.Link != nil {
		if err := d.deps.Link.Stop(); err != nil {
			d.logger.Warn("stop link", log.Err(err))
		}
	}
	d.logger.Info("device stopped")
	if d.console != nil {
		d.console.Close()
	}
}
