// Package config holds the device configuration: storage paths, rotation
// ceiling, and wireless credentials with their retry policy. Values layer in
// the usual precedence: command-line flags, then environment, then the TOML
// config file, then defaults.
package config

import (
	"fmt"
	"time"
)

// Wireless mode values as persisted in configuration.
const (
	ModeAccessPoint = "ap"
	ModeStation     = "station"
)

// Config is the full device configuration.
type Config struct {
	// DataDir holds the binary log files and the console log.
	DataDir string

	// StatusDir holds the persisted status string. Defaults to DataDir.
	StatusDir string

	// MaxLogFileSize is the rotation ceiling in bytes.
	MaxLogFileSize int64

	// TickInterval is the cooperative scheduler period.
	TickInterval time.Duration

	// WirelessMode selects "ap" or "station" at boot.
	WirelessMode string

	APSSID     string
	APPassword string

	StationSSID     string
	StationPassword string

	// RetryCount bounds station join retries before safe-mode fallback.
	RetryCount int

	// RetryDelay is the wait between join attempts and between link checks
	// once connected.
	RetryDelay time.Duration

	// ConnectTimeout bounds a single pending join attempt.
	ConnectTimeout time.Duration

	// StatusCheckInterval is how often a pending join is polled.
	StatusCheckInterval time.Duration

	// Simulate enables the built-in sensor simulator instead of real
	// NMEA sources.
	Simulate bool
}

// DefaultConfig returns a Config with the device defaults.
func DefaultConfig() Config {
	return Config{
		MaxLogFileSize:      4 << 20,
		TickInterval:        100 * time.Millisecond,
		WirelessMode:        ModeAccessPoint,
		APSSID:              "tidelog",
		APPassword:          "tidelog-setup",
		RetryCount:          5,
		RetryDelay:          10 * time.Second,
		ConnectTimeout:      15 * time.Second,
		StatusCheckInterval: 2 * time.Second,
	}
}

// Validate checks the configuration and fills derived defaults.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data-dir is required")
	}
	if c.StatusDir == "" {
		c.StatusDir = c.DataDir
	}
	if c.MaxLogFileSize <= 0 {
		return fmt.Errorf("max log file size must be positive")
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive")
	}
	switch c.WirelessMode {
	case "":
		c.WirelessMode = ModeAccessPoint
	case ModeAccessPoint, ModeStation:
	default:
		return fmt.Errorf("wireless mode must be %q or %q", ModeAccessPoint, ModeStation)
	}
	if c.WirelessMode == ModeStation && c.StationSSID == "" {
		return fmt.Errorf("station mode requires a station SSID")
	}
	if c.RetryCount < 0 {
		return fmt.Errorf("retry count must not be negative")
	}
	if c.RetryDelay <= 0 || c.ConnectTimeout <= 0 || c.StatusCheckInterval <= 0 {
		return fmt.Errorf("connectivity intervals must be positive")
	}
	return nil
}

// configSetter applies configuration values while respecting flag
// precedence: a value is skipped when its flag was set explicitly.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setInt64(flag string, value int64, dst *int64) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}
