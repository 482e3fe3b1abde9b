package monitor

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/grainwave/dawcore/pkg/dsp/analysis"
	"github.com/grainwave/dawcore/pkg/dsp/buffer"
	"github.com/grainwave/dawcore/pkg/dsp/utility"
	"github.com/grainwave/dawcore/pkg/fx"
)

// Monitor is the live input capture path: it meters every block pulled
// from the input stream, and — when enabled — forwards a DC-blocked,
// effect-processed copy to an output ring for a second monitoring output
// stream, and/or appends raw frames to a recording buffer.
type Monitor struct {
	sampleRate float64

	peakMeter *analysis.PeakMeter
	rmsMeter  *analysis.RMSMeter
	corrMeter *analysis.CorrelationMeter
	state     meterState

	dcBlocker   *utility.DCBlocker
	passThrough *fx.Chain
	outRing     *buffer.WriteAheadBuffer

	monitorEnabled atomic.Bool
	recording      atomic.Bool

	recordMu  sync.Mutex
	recordBuf []float32

	scratchL, scratchR []float64
}

// New returns a Monitor for the given sample rate, with monitoring and
// recording both initially disabled.
func New(sampleRate float64) *Monitor {
	m := &Monitor{
		sampleRate:  sampleRate,
		peakMeter:   analysis.NewPeakMeter(sampleRate),
		rmsMeter:    analysis.NewRMSMeter(int(sampleRate * 0.1)), // 100ms RMS window
		corrMeter:   analysis.NewCorrelationMeter(int(sampleRate*0.05), sampleRate),
		dcBlocker:   utility.NewDCBlocker(2, 10, sampleRate),
		passThrough: fx.NewChain(),
		outRing:     buffer.NewWriteAheadBuffer(sampleRate, 2),
	}
	return m
}

// PassThrough returns the effect chain applied to forwarded monitor
// audio, so a caller can add gain/filter/etc. stages to it.
func (m *Monitor) PassThrough() *fx.Chain { return m.passThrough }

// SetMonitorEnabled enables or disables forwarding captured audio to the
// monitor output ring.
func (m *Monitor) SetMonitorEnabled(enabled bool) { m.monitorEnabled.Store(enabled) }

// MonitorEnabled reports whether monitor forwarding is active.
func (m *Monitor) MonitorEnabled() bool { return m.monitorEnabled.Load() }

// StartRecording clears the recording buffer and begins appending
// captured frames to it.
func (m *Monitor) StartRecording() {
	m.recordMu.Lock()
	m.recordBuf = m.recordBuf[:0]
	m.recordMu.Unlock()
	m.recording.Store(true)
}

// StopRecording stops appending frames and returns the interleaved
// stereo recording buffer captured since StartRecording. A call while not
// recording returns an empty buffer.
func (m *Monitor) StopRecording() []float32 {
	if !m.recording.Swap(false) {
		return nil
	}
	m.recordMu.Lock()
	defer m.recordMu.Unlock()
	out := make([]float32, len(m.recordBuf))
	copy(out, m.recordBuf)
	return out
}

// Peak returns the meter's current peak level, linear scale.
func (m *Monitor) Peak() float64 { return m.state.Peak() }

// RMS returns the meter's current RMS level, linear scale.
func (m *Monitor) RMS() float64 { return m.state.RMS() }

// Correlation returns the meter's current stereo correlation, -1..1.
func (m *Monitor) Correlation() float64 { return m.state.Correlation() }

// Clipped reports whether input has clipped since the last ClearClipped.
func (m *Monitor) Clipped() bool { return m.state.Clipped() }

// ClearClipped resets the clip-indicator latch.
func (m *Monitor) ClearClipped() { m.state.ClearClipped() }

// ReadMonitorOutput drains up to len(output) interleaved stereo samples
// forwarded by the capture thread, for the second output stream to
// consume. Returns the number of samples actually written.
func (m *Monitor) ReadMonitorOutput(output []float32) int {
	return m.outRing.Read(output)
}

// ProcessBlock is the capture thread's per-buffer entry point: it meters
// left/right (right may be nil for mono capture, in which case left is
// duplicated for correlation purposes), then conditionally forwards and
// records, doing the same bounded amount of work every call regardless of
// whether monitoring or recording is active.
func (m *Monitor) ProcessBlock(left, right []float32) {
	frames := len(left)
	if cap(m.scratchL) < frames {
		m.scratchL = make([]float64, frames)
		m.scratchR = make([]float64, frames)
	}
	sL := m.scratchL[:frames]
	sR := m.scratchR[:frames]

	clipped := false
	for i, s := range left {
		sL[i] = float64(s)
		if math.Abs(float64(s)) >= clipThreshold {
			clipped = true
		}
	}
	if right != nil {
		for i, s := range right {
			sR[i] = float64(s)
			if math.Abs(float64(s)) >= clipThreshold {
				clipped = true
			}
		}
	} else {
		copy(sR, sL)
	}

	m.peakMeter.Process(sL)
	m.rmsMeter.Process(sL)
	m.corrMeter.Process(sL, sR)
	m.state.store(m.peakMeter.GetPeak(), m.rmsMeter.GetRMS(), m.corrMeter.GetCorrelation(), clipped)

	if m.monitorEnabled.Load() {
		m.forward(left, right)
	}
	if m.recording.Load() {
		m.appendRecording(left, right)
	}
}

func (m *Monitor) forward(left, right []float32) {
	fl := append([]float32(nil), left...)
	var fr []float32
	if right != nil {
		fr = append([]float32(nil), right...)
	} else {
		fr = append([]float32(nil), left...)
	}

	m.dcBlocker.ProcessStereo(fl, fr)
	m.passThrough.ProcessStereo(fl, fr)

	interleaved := make([]float32, len(fl)*2)
	for i := range fl {
		interleaved[2*i] = fl[i]
		interleaved[2*i+1] = fr[i]
	}
	_ = m.outRing.Write(interleaved)
}

func (m *Monitor) appendRecording(left, right []float32) {
	m.recordMu.Lock()
	defer m.recordMu.Unlock()
	for i := range left {
		m.recordBuf = append(m.recordBuf, left[i])
		if right != nil {
			m.recordBuf = append(m.recordBuf, right[i])
		} else {
			m.recordBuf = append(m.recordBuf, left[i])
		}
	}
}
