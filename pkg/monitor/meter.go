// Package monitor implements the input capture path: block-wise peak/RMS/
// correlation metering plus an optional pass-through to a monitoring
// output, grounded on the teacher's pkg/dsp/analysis meters and its
// pkg/dsp/buffer.WriteAheadBuffer for the forwarded-audio ring.
package monitor

import (
	"math"
	"sync/atomic"
)

// meterState is the cross-thread-readable snapshot of the capture path's
// metering: three float64 values encoded as bit patterns (the same
// pattern param.Parameter uses for its atomic float storage) plus a
// clipped flag, so the control thread can read current levels without
// ever blocking the capture thread.
type meterState struct {
	peakBits        atomic.Uint64
	rmsBits         atomic.Uint64
	correlationBits atomic.Uint64
	clipped         atomic.Bool
}

func (m *meterState) store(peak, rms, correlation float64, clipped bool) {
	m.peakBits.Store(math.Float64bits(peak))
	m.rmsBits.Store(math.Float64bits(rms))
	m.correlationBits.Store(math.Float64bits(correlation))
	if clipped {
		m.clipped.Store(true)
	}
}

// Peak returns the last-measured peak level, linear scale.
func (m *meterState) Peak() float64 { return math.Float64frombits(m.peakBits.Load()) }

// RMS returns the last-measured RMS level, linear scale.
func (m *meterState) RMS() float64 { return math.Float64frombits(m.rmsBits.Load()) }

// Correlation returns the last-measured stereo correlation, -1..1.
func (m *meterState) Correlation() float64 { return math.Float64frombits(m.correlationBits.Load()) }

// Clipped reports whether any sample has exceeded full scale since the
// last ClearClipped call.
func (m *meterState) Clipped() bool { return m.clipped.Load() }

// ClearClipped resets the clip-indicator latch.
func (m *meterState) ClearClipped() { m.clipped.Store(false) }

const clipThreshold = 1.0
