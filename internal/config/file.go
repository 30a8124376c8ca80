package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	toml "github.com/pelletier/go-toml/v2"
)

// fileConfig mirrors Config with strings for durations to stay TOML
// friendly.
type fileConfig struct {
	DataDir             string `toml:"data_dir"`
	StatusDir           string `toml:"status_dir"`
	MaxLogFileSize      int64  `toml:"max_log_file_size"`
	TickInterval        string `toml:"tick_interval"`
	WirelessMode        string `toml:"wireless_mode"`
	APSSID              string `toml:"ap_ssid"`
	APPassword          string `toml:"ap_password"`
	StationSSID         string `toml:"station_ssid"`
	StationPassword     string `toml:"station_password"`
	RetryCount          int    `toml:"retry_count"`
	RetryDelay          string `toml:"retry_delay"`
	ConnectTimeout      string `toml:"connect_timeout"`
	StatusCheckInterval string `toml:"status_check_interval"`
	Simulate            *bool  `toml:"simulate"`
}

// LoadFileConfig reads and parses a TOML config file.
func LoadFileConfig(path string) (fileConfig, error) {
	var fc fileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// ApplyFileConfig applies file values to cfg, respecting explicitly set
// flags via the changed map.
func ApplyFileConfig(cfg *Config, fc fileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("data-dir", fc.DataDir, &cfg.DataDir)
	s.setString("status-dir", fc.StatusDir, &cfg.StatusDir)
	s.setInt64("max-log-file-size", fc.MaxLogFileSize, &cfg.MaxLogFileSize)
	s.setString("mode", fc.WirelessMode, &cfg.WirelessMode)
	s.setString("ap-ssid", fc.APSSID, &cfg.APSSID)
	s.setString("ap-password", fc.APPassword, &cfg.APPassword)
	s.setString("station-ssid", fc.StationSSID, &cfg.StationSSID)
	s.setString("station-password", fc.StationPassword, &cfg.StationPassword)
	s.setInt("retry-count", fc.RetryCount, &cfg.RetryCount)
	s.setBool("simulate", fc.Simulate, &cfg.Simulate)

	if err := s.setDuration("tick", fc.TickInterval, &cfg.TickInterval); err != nil {
		return err
	}
	if err := s.setDuration("retry-delay", fc.RetryDelay, &cfg.RetryDelay); err != nil {
		return err
	}
	if err := s.setDuration("connect-timeout", fc.ConnectTimeout, &cfg.ConnectTimeout); err != nil {
		return err
	}
	if err := s.setDuration("status-check-interval", fc.StatusCheckInterval, &cfg.StatusCheckInterval); err != nil {
		return err
	}
	return nil
}

// SaveWirelessMode rewrites the config file with the given wireless mode,
// preserving every other key. Safe-mode fallback calls this to force
// access-point mode before restarting; the write is atomic so a crash
// mid-save cannot leave an unreadable config (which would itself select AP
// mode, the safe default).
func SaveWirelessMode(path, mode string) error {
	fc, err := LoadFileConfig(path)
	if err != nil && !os.IsNotExist(err) {
		// Unreadable config: replace it, mode selection must survive.
		fc = fileConfig{}
	}
	fc.WirelessMode = mode

	b, err := toml.Marshal(fc)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// DefaultConfigPath returns the default configuration file path,
// ~/.tidelog/config.toml when the home directory is known.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".tidelog", "config.toml")
	}
	return ""
}

// FileExists checks whether a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// parseBool parses an environment boolean value.
func parseBool(v string) (bool, error) {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("parse %q: %w", v, err)
	}
	return b, nil
}

// parseInt parses an environment integer value.
func parseInt(v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", v, err)
	}
	return n, nil
}
