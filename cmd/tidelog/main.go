package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/tidemark-io/tidelog"
	"github.com/tidemark-io/tidelog/internal/config"
	"github.com/tidemark-io/tidelog/pkg/log"
)

const helpDescription = `
Marine data logger core: records navigation and depth traffic to an
append-only binary frame log on removable flash and keeps the wireless
command channel reachable through access-point fallback.

Highlights:
  - Size-bounded log rotation over 1000 logical file numbers; logging
    never halts, even with a full card.
  - Bounded station-join retries with safe-mode fallback to a local
    access point, so the device can always be reached.
  - Console log with three retained generations for post-mortem
    diagnostics across reboots.
`

var exampleUsage = strings.TrimSpace(`
  tidelog --data-dir /mnt/sd/tidelog --simulate
  tidelog --config ~/.tidelog/config.toml --mode station --station-ssid Marina
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := config.DefaultConfig()
	var cfgPath string

	logger := log.NewConsole()

	root := &cobra.Command{
		Use:     "tidelog",
		Short:   "Marine data logger with rotating frame storage and wireless fallback",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = config.DefaultConfigPath()
			}

			// Flags beat env beat file; track what was set explicitly.
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && config.FileExists(cfgFile) {
				fc, err := config.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := config.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}
			if err := config.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logCfg := cfg
			if logCfg.APPassword != "" {
				logCfg.APPassword = "*****"
			}
			if logCfg.StationPassword != "" {
				logCfg.StationPassword = "*****"
			}
			logger.Info("configuration",
				log.String("data_dir", logCfg.DataDir),
				log.String("mode", logCfg.WirelessMode),
				log.Bool("simulate", logCfg.Simulate))

			dev, err := tidelog.New(cfg,
				tidelog.WithLogger(logger),
				tidelog.WithConfigPath(cfgFile),
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if cfgFile != "" && config.FileExists(cfgFile) {
				// The file is reread at every boot, so a change announced
				// here takes effect on the next process start.
				watcher := config.NewWatcher(cfgFile, logger, func(next config.Config) {
					logger.Info("config change detected, takes effect on next boot",
						log.String("mode", next.WirelessMode))
				})
				go func() { _ = watcher.Run(ctx) }()
			}

			err = dev.Run(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	flags := root.Flags()
	flags.StringVar(&cfgPath, "config", "", "path to config file (default ~/.tidelog/config.toml)")
	flags.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory for log files on the storage medium")
	flags.StringVar(&cfg.StatusDir, "status-dir", cfg.StatusDir, "directory for the persisted status string (default data-dir)")
	flags.Int64Var(&cfg.MaxLogFileSize, "max-log-file-size", cfg.MaxLogFileSize, "rotation ceiling per log file in bytes")
	flags.DurationVar(&cfg.TickInterval, "tick", cfg.TickInterval, "scheduler tick interval")
	flags.StringVar(&cfg.WirelessMode, "mode", cfg.WirelessMode, "wireless mode: ap or station")
	flags.StringVar(&cfg.APSSID, "ap-ssid", cfg.APSSID, "access point SSID")
	flags.StringVar(&cfg.APPassword, "ap-password", cfg.APPassword, "access point password")
	flags.StringVar(&cfg.StationSSID, "station-ssid", cfg.StationSSID, "network SSID to join in station mode")
	flags.StringVar(&cfg.StationPassword, "station-password", cfg.StationPassword, "network password for station mode")
	flags.IntVar(&cfg.RetryCount, "retry-count", cfg.RetryCount, "station join retries before safe-mode fallback")
	flags.DurationVar(&cfg.RetryDelay, "retry-delay", cfg.RetryDelay, "delay between join attempts")
	flags.DurationVar(&cfg.ConnectTimeout, "connect-timeout", cfg.ConnectTimeout, "timeout for a single join attempt")
	flags.DurationVar(&cfg.StatusCheckInterval, "status-check-interval", cfg.StatusCheckInterval, "poll interval for a pending join")
	flags.BoolVar(&cfg.Simulate, "simulate", cfg.Simulate, "generate simulated sensor records")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
