// Package sim provides a deterministic sensor simulator producing the same
// typed records the real NMEA decode path would. It backs the CLI demo run
// and the device-loop tests when no instruments are attached.
package sim

import (
	"math"
	"time"

	"github.com/tidemark-io/tidelog/internal/domain"
	"github.com/tidemark-io/tidelog/internal/ports"
)

// Emission periods per record type.
const (
	positionPeriod     = 1 * time.Second
	depthPeriod        = 2 * time.Second
	speedHeadingPeriod = 5 * time.Second
	batteryPeriod      = 30 * time.Second
)

// Source generates position, depth, and battery records from struct-owned
// phase state. All timing derives from the now value handed to Poll, so a
// test clock makes the output fully deterministic.
type Source struct {
	started bool
	start   time.Time

	nextPosition time.Time
	nextDepth    time.Time
	nextSpeed    time.Time
	nextBattery  time.Time

	lat float64
	lon float64
}

// NewSource creates a simulator anchored near the reference start position.
func NewSource() *Source {
	return &Source{
		lat: 59.3251,
		lon: 18.0711,
	}
}

// Poll emits every record whose period elapsed since the previous call.
func (s *Source) Poll(now time.Time, emit ports.EmitFunc) error {
	if !s.started {
		s.started = true
		s.start = now
		s.nextPosition = now
		s.nextDepth = now
		s.nextSpeed = now
		s.nextBattery = now
	}

	for !now.Before(s.nextPosition) {
		if err := s.emitPosition(s.nextPosition, emit); err != nil {
			return err
		}
		s.nextPosition = s.nextPosition.Add(positionPeriod)
	}
	for !now.Before(s.nextDepth) {
		if err := s.emitDepth(s.nextDepth, emit); err != nil {
			return err
		}
		s.nextDepth = s.nextDepth.Add(depthPeriod)
	}
	for !now.Before(s.nextSpeed) {
		if err := s.emitSpeedHeading(s.nextSpeed, emit); err != nil {
			return err
		}
		s.nextSpeed = s.nextSpeed.Add(speedHeadingPeriod)
	}
	for !now.Before(s.nextBattery) {
		if err := s.emitBattery(s.nextBattery, emit); err != nil {
			return err
		}
		s.nextBattery = s.nextBattery.Add(batteryPeriod)
	}
	return nil
}

// elapsedMillis is the run-time stamp carried in every record. The device
// trusts only elapsed run-time; absolute time is corrected post-hoc.
func (s *Source) elapsedMillis(at time.Time) uint32 {
	return uint32(at.Sub(s.start) / time.Millisecond)
}

func (s *Source) emitPosition(at time.Time, emit ports.EmitFunc) error {
	// Slow north-east drift, a few metres per tick.
	s.lat += 0.00002
	s.lon += 0.00003

	buf := domain.NewFrameBuffer()
	buf.AppendFloat64(s.lat)
	buf.AppendFloat64(s.lon)
	buf.AppendUint32(s.elapsedMillis(at))
	return emit(domain.FrameTypePosition, buf)
}

func (s *Source) emitDepth(at time.Time, emit ports.EmitFunc) error {
	phase := float64(at.Sub(s.start)) / float64(2*time.Minute)
	depth := 12.0 + 4.0*math.Sin(2*math.Pi*phase)

	buf := domain.NewFrameBuffer()
	buf.AppendFloat32(float32(depth))
	buf.AppendFloat32(0.3) // transducer offset
	buf.AppendUint32(s.elapsedMillis(at))
	return emit(domain.FrameTypeDepth, buf)
}

func (s *Source) emitSpeedHeading(at time.Time, emit ports.EmitFunc) error {
	phase := float64(at.Sub(s.start)) / float64(10*time.Minute)
	speed := 5.5 + 1.5*math.Sin(2*math.Pi*phase)
	heading := 42.0 + 10.0*math.Sin(2*math.Pi*phase)

	buf := domain.NewFrameBuffer()
	buf.AppendFloat32(float32(speed))
	buf.AppendFloat32(float32(heading))
	buf.AppendUint32(s.elapsedMillis(at))
	return emit(domain.FrameTypeSpeedHeading, buf)
}

func (s *Source) emitBattery(at time.Time, emit ports.EmitFunc) error {
	hours := at.Sub(s.start).Hours()
	volts := 12.6 - 0.05*hours
	if volts < 10.5 {
		volts = 10.5
	}

	buf := domain.NewFrameBuffer()
	buf.AppendFloat32(float32(volts))
	buf.AppendUint32(s.elapsedMillis(at))
	return emit(domain.FrameTypeBattery, buf)
}
