package config

import "os"

// ApplyEnvConfig applies TIDELOG_* environment variables to cfg. Environment
// overrides the config file but is itself overridden by explicitly set flags
// (checked via the changed map). Returns an error for unparseable values.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("data-dir", os.Getenv("TIDELOG_DATA_DIR"), &cfg.DataDir)
	s.setString("status-dir", os.Getenv("TIDELOG_STATUS_DIR"), &cfg.StatusDir)
	s.setString("mode", os.Getenv("TIDELOG_WIRELESS_MODE"), &cfg.WirelessMode)
	s.setString("ap-ssid", os.Getenv("TIDELOG_AP_SSID"), &cfg.APSSID)
	s.setString("ap-password", os.Getenv("TIDELOG_AP_PASSWORD"), &cfg.APPassword)
	s.setString("station-ssid", os.Getenv("TIDELOG_STATION_SSID"), &cfg.StationSSID)
	s.setString("station-password", os.Getenv("TIDELOG_STATION_PASSWORD"), &cfg.StationPassword)

	if err := s.setDuration("tick", os.Getenv("TIDELOG_TICK_INTERVAL"), &cfg.TickInterval); err != nil {
		return err
	}
	if err := s.setDuration("retry-delay", os.Getenv("TIDELOG_RETRY_DELAY"), &cfg.RetryDelay); err != nil {
		return err
	}
	if err := s.setDuration("connect-timeout", os.Getenv("TIDELOG_CONNECT_TIMEOUT"), &cfg.ConnectTimeout); err != nil {
		return err
	}
	if err := s.setDuration("status-check-interval", os.Getenv("TIDELOG_STATUS_CHECK_INTERVAL"), &cfg.StatusCheckInterval); err != nil {
		return err
	}

	if v := os.Getenv("TIDELOG_RETRY_COUNT"); v != "" && !changed["retry-count"] {
		n, err := parseInt(v)
		if err != nil {
			return err
		}
		if n >= 0 {
			cfg.RetryCount = n
		}
	}
	if v := os.Getenv("TIDELOG_MAX_LOG_FILE_SIZE"); v != "" && !changed["max-log-file-size"] {
		n, err := parseInt(v)
		if err != nil {
			return err
		}
		if n > 0 {
			cfg.MaxLogFileSize = int64(n)
		}
	}
	if v := os.Getenv("TIDELOG_SIMULATE"); v != "" && !changed["simulate"] {
		b, err := parseBool(v)
		if err != nil {
			return err
		}
		cfg.Simulate = b
	}
	return nil
}
