package midifx

import (
	"math/rand"

	"github.com/grainwave/dawcore/pkg/framework/param"
	"github.com/grainwave/dawcore/pkg/midi"
)

// Humanize jitters note-on timing and velocity by a bounded random amount,
// drawn from a per-instance seeded generator so runs are reproducible and
// never touch the shared global RNG.
type Humanize struct {
	base
	timingMS    *param.Parameter // max +/- jitter in milliseconds
	velocityAmt *param.Parameter // max +/- velocity jitter (0-127 units)
	rng         *rand.Rand
}

const (
	paramHumanizeTiming   uint32 = 0
	paramHumanizeVelocity uint32 = 1
)

// NewHumanize returns a Humanize effect seeded deterministically from seed.
func NewHumanize(seed int64) *Humanize {
	h := &Humanize{base: newBase("Humanize"), rng: rand.New(rand.NewSource(seed))}
	h.timingMS = param.New(paramHumanizeTiming, "Timing").
		ShortName("Timing").Range(0, 50).Default(5).Unit("ms").Build()
	h.velocityAmt = param.New(paramHumanizeVelocity, "Velocity").
		ShortName("Vel").Range(0, 40).Default(10).Build()
	h.params.Add(h.timingMS, h.velocityAmt)
	return h
}

// Process jitters each note-on's offset and velocity within the configured
// bounds. Velocity is clamped to [1, 127]; offset is clamped to
// [0, bufferFrames) so a note never jitters out of the current buffer.
func (h *Humanize) Process(events []midi.Event, sampleRate, bpm float64, bufferFrames int32) []midi.Event {
	timingMS := h.timingMS.GetPlainValue()
	velAmt := h.velocityAmt.GetPlainValue()
	if timingMS <= 0 && velAmt <= 0 {
		return events
	}
	maxOffsetSamples := timingMS / 1000.0 * sampleRate

	out := make([]midi.Event, len(events))
	for i, e := range events {
		on, ok := e.(midi.NoteOnEvent)
		if !ok {
			out[i] = e
			continue
		}
		if maxOffsetSamples > 0 {
			jitter := int32((h.rng.Float64()*2 - 1) * maxOffsetSamples)
			newOffset := on.Offset + jitter
			if newOffset < 0 {
				newOffset = 0
			}
			if bufferFrames > 0 && newOffset >= bufferFrames {
				newOffset = bufferFrames - 1
			}
			on.Offset = newOffset
		}
		if velAmt > 0 {
			jitter := int((h.rng.Float64()*2 - 1) * velAmt)
			v := int(on.Velocity) + jitter
			if v < 1 {
				v = 1
			}
			if v > 127 {
				v = 127
			}
			on.Velocity = uint8(v)
		}
		out[i] = on
	}
	return out
}
