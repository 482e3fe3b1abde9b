package midifx

import (
	"math/rand"
	"sort"

	"github.com/grainwave/dawcore/pkg/framework/param"
	"github.com/grainwave/dawcore/pkg/midi"
)

// ArpPattern selects how held notes are ordered into the step sequence.
type ArpPattern int

const (
	ArpUp ArpPattern = iota
	ArpDown
	ArpUpDown
	ArpRandom
	ArpOrder // order notes were held in, not pitch order
)

type heldNote struct {
	pitch    uint8
	velocity uint8
}

// Arpeggiator turns a set of held notes into a stepped sequence spanning a
// configurable octave range. Held notes are tracked across Process calls;
// the step sequence advances on the effect's own running sample clock, the
// same pattern Echo uses for repeats that outlive a single buffer.
type Arpeggiator struct {
	base
	rate    *param.Parameter // steps per beat
	octaves *param.Parameter // 1-4
	gate    *param.Parameter // 0-1, fraction of a step the note stays on

	pattern ArpPattern
	rng     *rand.Rand

	held        []heldNote
	sequence    []heldNote
	sequenceIdx int
	dirty       bool

	clock        int64
	nextStepAt   int64
	activeNoteOff int64
	activeNote    uint8
	noteActive    bool
}

const (
	paramArpRate    uint32 = 0
	paramArpOctaves uint32 = 1
	paramArpGate    uint32 = 2
)

// NewArpeggiator returns an Arpeggiator effect seeded from seed, defaulted
// to Up pattern, one octave, 4 steps per beat, 80% gate.
func NewArpeggiator(seed int64, pattern ArpPattern) *Arpeggiator {
	a := &Arpeggiator{base: newBase("Arpeggiator"), pattern: pattern, rng: rand.New(rand.NewSource(seed))}
	a.rate = param.New(paramArpRate, "Rate").ShortName("Rate").Range(1, 16).Default(4).Build()
	a.octaves = param.New(paramArpOctaves, "Octaves").ShortName("Oct").Range(1, 4).Default(1).Steps(3).Build()
	a.gate = param.New(paramArpGate, "Gate").ShortName("Gate").Range(0.1, 1).Default(0.8).Build()
	a.params.Add(a.rate, a.octaves, a.gate)
	return a
}

func (a *Arpeggiator) addHeld(pitch, velocity uint8) {
	for _, h := range a.held {
		if h.pitch == pitch {
			return
		}
	}
	a.held = append(a.held, heldNote{pitch: pitch, velocity: velocity})
	a.dirty = true
}

func (a *Arpeggiator) removeHeld(pitch uint8) {
	for i, h := range a.held {
		if h.pitch == pitch {
			a.held = append(a.held[:i], a.held[i+1:]...)
			a.dirty = true
			return
		}
	}
}

func (a *Arpeggiator) rebuildSequence() {
	octaves := int(a.octaves.GetPlainValue())
	if octaves < 1 {
		octaves = 1
	}
	ordered := make([]heldNote, len(a.held))
	copy(ordered, a.held)
	if a.pattern != ArpOrder {
		sort.Slice(ordered, func(i, j int) bool { return ordered[i].pitch < ordered[j].pitch })
	}

	var up []heldNote
	for oct := 0; oct < octaves; oct++ {
		for _, h := range ordered {
			p := int(h.pitch) + 12*oct
			if p > 127 {
				continue
			}
			up = append(up, heldNote{pitch: uint8(p), velocity: h.velocity})
		}
	}

	switch a.pattern {
	case ArpDown:
		seq := make([]heldNote, len(up))
		for i, h := range up {
			seq[len(up)-1-i] = h
		}
		a.sequence = seq
	case ArpUpDown:
		seq := make([]heldNote, 0, len(up)*2)
		seq = append(seq, up...)
		for i := len(up) - 2; i > 0; i-- {
			seq = append(seq, up[i])
		}
		a.sequence = seq
	default: // Up, Random, Order all walk `up` (Random picks within it)
		a.sequence = up
	}
	if a.sequenceIdx >= len(a.sequence) {
		a.sequenceIdx = 0
	}
	a.dirty = false
}

// Process updates the held-note set from incoming note-on/note-off events,
// rebuilds the step sequence if it changed, and emits whatever steps (and
// gated note-offs) fall within this buffer.
func (a *Arpeggiator) Process(events []midi.Event, sampleRate, bpm float64, bufferFrames int32) []midi.Event {
	for _, e := range events {
		switch ev := e.(type) {
		case midi.NoteOnEvent:
			a.addHeld(ev.NoteNumber, ev.Velocity)
		case midi.NoteOffEvent:
			a.removeHeld(ev.NoteNumber)
		}
	}
	if a.dirty {
		a.rebuildSequence()
	}

	var out []midi.Event
	windowEnd := a.clock + int64(bufferFrames)

	if sampleRate > 0 && bpm > 0 && len(a.sequence) > 0 {
		samplesPerBeat := sampleRate * 60.0 / bpm
		rate := a.rate.GetPlainValue()
		if rate < 1 {
			rate = 1
		}
		stepSamples := int64(4 * samplesPerBeat / rate)
		if stepSamples < 1 {
			stepSamples = 1
		}
		gate := a.gate.GetPlainValue()

		// Emit a pending gated note-off first if it falls in this buffer.
		if a.noteActive && a.activeNoteOff >= a.clock && a.activeNoteOff < windowEnd {
			out = append(out, midi.NoteOffEvent{
				BaseEvent:  midi.BaseEvent{Offset: int32(a.activeNoteOff - a.clock)},
				NoteNumber: a.activeNote,
				Velocity:   64,
			})
			a.noteActive = false
		}

		for a.nextStepAt < windowEnd {
			if a.nextStepAt < a.clock {
				a.nextStepAt += stepSamples
				continue
			}
			idx := a.sequenceIdx
			if a.pattern == ArpRandom {
				idx = a.rng.Intn(len(a.sequence))
			}
			note := a.sequence[idx]
			offset := int32(a.nextStepAt - a.clock)
			out = append(out, midi.NoteOnEvent{BaseEvent: midi.BaseEvent{Offset: offset}, NoteNumber: note.pitch, Velocity: note.velocity})

			noteOffAt := a.nextStepAt + int64(float64(stepSamples)*gate)
			if noteOffAt < windowEnd {
				out = append(out, midi.NoteOffEvent{BaseEvent: midi.BaseEvent{Offset: int32(noteOffAt - a.clock)}, NoteNumber: note.pitch, Velocity: 64})
			} else {
				a.noteActive = true
				a.activeNote = note.pitch
				a.activeNoteOff = noteOffAt
			}

			if a.pattern != ArpRandom {
				a.sequenceIdx = (a.sequenceIdx + 1) % len(a.sequence)
			}
			a.nextStepAt += stepSamples
		}
	}

	a.clock = windowEnd
	return out
}
