// Package drum808 implements the fixed 16-voice drum synthesizer of spec
// §4.4: a classic 808/909-style kit where each of 16 drum kinds maps from a
// fixed MIDI pitch, synthesized from oscillators, noise, and envelopes
// rather than sampled.
package drum808

import (
	"github.com/grainwave/dawcore/pkg/framework/param"
	voicealloc "github.com/grainwave/dawcore/pkg/framework/voice"
	"github.com/grainwave/dawcore/pkg/instrument"
)

// NumVoices is the fixed polyphony of the kit: enough for all 16 kinds to
// sound at once, matching spec §4.4.
const NumVoices = 16

var _ instrument.Instrument = (*Instrument)(nil)

type queuedNote struct {
	kind         Kind
	velocity     uint8
	sampleOffset int32
}

// Instrument is the 808 drum synthesizer: 16 generic voices managed by the
// framework's standard voice allocator, addressed by Kind instead of MIDI
// pitch.
type Instrument struct {
	sampleRate float64
	voices     []*voice
	alloc      *voicealloc.Allocator
	params     *param.Registry

	masterGain *param.Parameter

	queuedOn []queuedNote
}

// New returns a drum808 instrument rendering at sampleRate, with
// deterministic per-voice noise seeded from baseSeed+voice index.
func New(sampleRate float64, baseSeed int64) *Instrument {
	voices := make([]*voice, NumVoices)
	allocVoices := make([]voicealloc.Voice, NumVoices)
	for i := range voices {
		voices[i] = newVoice(sampleRate, baseSeed+int64(i))
		allocVoices[i] = voices[i]
	}

	alloc := voicealloc.NewAllocator(allocVoices)
	alloc.SetStealingMode(voicealloc.StealOldest)

	inst := &Instrument{
		sampleRate: sampleRate,
		voices:     voices,
		alloc:      alloc,
		params:     param.NewRegistry(),
	}
	inst.masterGain = param.New(0, "Master").ShortName("Master").Range(0, 2).Default(1).Build()
	inst.params.Add(inst.masterGain)
	return inst
}

// QueueNoteOn maps pitch to a drum kind and defers the trigger to Process,
// per instrument.Instrument. Unmapped pitches are ignored.
func (inst *Instrument) QueueNoteOn(pitch, velocity uint8, sampleOffset int32) {
	kind, ok := PitchToKind(pitch)
	if !ok {
		return
	}
	inst.queuedOn = append(inst.queuedOn, queuedNote{kind: kind, velocity: velocity, sampleOffset: sampleOffset})
}

// QueueNoteOff is a no-op: every 808 voice is a one-shot that decays on its
// own envelope (spec §4.4).
func (inst *Instrument) QueueNoteOff(pitch uint8, sampleOffset int32) {}

// AllNotesOff stops every voice immediately, used on transport loop wrap.
func (inst *Instrument) AllNotesOff() {
	inst.alloc.Reset()
}

// IsDrum always reports true for this instrument.
func (inst *Instrument) IsDrum() bool { return true }

// Params returns the instrument's parameter registry.
func (inst *Instrument) Params() *param.Registry { return inst.params }

// Process triggers every queued note at its sample offset (applying hi-hat
// choke before delegating to the allocator), sums all 16 voices, and clears
// the queue.
func (inst *Instrument) Process(output [][]float32, frames int) {
	for ch := range output {
		for i := range output[ch] {
			output[ch][i] = 0
		}
	}

	scratch := make([]float32, frames)
	gain := float32(inst.masterGain.GetPlainValue())

	// Trigger queued notes in sample-offset order so a choke interaction
	// within the same buffer resolves correctly.
	notes := inst.queuedOn
	inst.queuedOn = inst.queuedOn[:0]
	sortQueuedNotes(notes)

	start := 0
	for _, n := range notes {
		segStart := start
		segEnd := int(n.sampleOffset)
		if segEnd > frames {
			segEnd = frames
		}
		if segEnd > segStart {
			inst.renderSegment(output, segStart, segEnd, scratch, gain)
		}
		start = segEnd

		inst.choke(n.kind)
		inst.alloc.NoteOn(uint8(n.kind), n.velocity)
	}
	if start < frames {
		inst.renderSegment(output, start, frames, scratch, gain)
	}
}

func (inst *Instrument) renderSegment(output [][]float32, from, to int, scratch []float32, gain float32) {
	if to <= from {
		return
	}
	seg := scratch[:to-from]
	for _, v := range inst.voices {
		if !v.IsActive() {
			continue
		}
		v.Process(seg)
		for ch := range output {
			dst := output[ch][from:to]
			for i, s := range seg {
				dst[i] += s * gain
			}
		}
	}
}

// choke stops the currently active voice for the other hat kind when kind
// is one of ClosedHat/OpenHat — a closed or open hi-hat strike always cuts
// off whichever hat was already ringing.
func (inst *Instrument) choke(kind Kind) {
	var other Kind
	switch kind {
	case ClosedHat:
		other = OpenHat
	case OpenHat:
		other = ClosedHat
	default:
		return
	}
	for _, v := range inst.voices {
		if v.IsActive() && v.kind == other {
			v.Stop()
		}
	}
}

func sortQueuedNotes(notes []queuedNote) {
	for i := 1; i < len(notes); i++ {
		for j := i; j > 0 && notes[j-1].sampleOffset > notes[j].sampleOffset; j-- {
			notes[j-1], notes[j] = notes[j], notes[j-1]
		}
	}
}

// ActiveKickVoices reports how many voices are currently active and
// synthesizing Kick — used by tests asserting that 16 kick triggers
// collapse onto a single retriggered voice rather than stealing across
// kinds.
func (inst *Instrument) ActiveKickVoices() int {
	count := 0
	for _, v := range inst.voices {
		if v.IsActive() && v.kind == Kick {
			count++
		}
	}
	return count
}
