package tidelog

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNew_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	// DataDir left empty.
	if _, err := New(cfg); err == nil {
		t.Fatal("New should reject a config without a data dir")
	}
}

func TestDevice_StartStopLifecycle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.TickInterval = 5 * time.Millisecond
	cfg.Simulate = true

	dev, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := dev.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := dev.Start(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("second Start = %v, want ErrAlreadyRunning", err)
	}

	// Let the loop boot and record the first simulated sweep.
	time.Sleep(50 * time.Millisecond)

	if err := dev.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := dev.Stop(); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("second Stop = %v, want ErrNotRunning", err)
	}

	logs := dev.Logs()
	if len(logs) != 1 || logs[0].Number != 0 {
		t.Fatalf("Logs = %+v, want one file numbered 0", logs)
	}
	if logs[0].Size < 16 {
		t.Errorf("log size = %d, want at least the version frame", logs[0].Size)
	}
	if !dev.RemoveLog(0) {
		t.Error("RemoveLog(0) should succeed after shutdown")
	}
}

func TestDevice_StopBeforeStart(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()

	dev, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := dev.Stop(); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("Stop = %v, want ErrNotRunning", err)
	}
	if logs := dev.Logs(); logs != nil {
		t.Errorf("Logs before boot = %+v, want nil", logs)
	}
}
