package samplekit

import (
	"math"

	"github.com/grainwave/dawcore/pkg/framework/param"
	voicealloc "github.com/grainwave/dawcore/pkg/framework/voice"
	"github.com/grainwave/dawcore/pkg/instrument"
)

// NumVoices is the kit's fixed polyphony, per spec §4.5.
const NumVoices = 32

type queuedTrigger struct {
	slot         int
	velocity     uint8
	sampleOffset int32
}

// Instrument is the multi-sample kit: 32 voices shared across 144 slots,
// addressed either by MIDI pitch (QueueNoteOn, via PitchToSlot) or directly
// by pattern step (TriggerStep, for sequencer-driven playback with
// layered, velocity- or round-robin-style slots firing together).
type Instrument struct {
	kit    *Kit
	voices []*voice
	alloc  *voicealloc.Allocator
	params *param.Registry

	tuningSemitones *param.Parameter
	masterGain      *param.Parameter

	queued []queuedTrigger
}

var _ instrument.Instrument = (*Instrument)(nil)

// New returns a samplekit instrument backed by kit.
func New(kit *Kit) *Instrument {
	inst := &Instrument{kit: kit, params: param.NewRegistry()}

	inst.tuningSemitones = param.New(0, "Tuning").ShortName("Tune").Range(-24, 24).Default(0).Unit("st").Build()
	inst.masterGain = param.New(1, "Master").ShortName("Master").Range(0, 2).Default(1).Build()
	inst.params.Add(inst.tuningSemitones, inst.masterGain)

	voices := make([]*voice, NumVoices)
	allocVoices := make([]voicealloc.Voice, NumVoices)
	for i := range voices {
		voices[i] = newVoice(kit, inst.playbackRate)
		allocVoices[i] = voices[i]
	}
	inst.voices = voices
	inst.alloc = voicealloc.NewAllocator(allocVoices)
	inst.alloc.SetStealingMode(voicealloc.StealOldest)
	return inst
}

func (inst *Instrument) playbackRate() float64 {
	semis := inst.tuningSemitones.GetPlainValue()
	return math.Pow(2, semis/12.0)
}

// QueueNoteOn maps pitch to a slot via PitchToSlot and defers the trigger
// to Process.
func (inst *Instrument) QueueNoteOn(pitch, velocity uint8, sampleOffset int32) {
	inst.queued = append(inst.queued, queuedTrigger{slot: PitchToSlot(pitch), velocity: velocity, sampleOffset: sampleOffset})
}

// QueueNoteOff is a no-op: slots are one-shots (spec §4.5).
func (inst *Instrument) QueueNoteOff(pitch uint8, sampleOffset int32) {}

// TriggerStep fires every slot in the (step, layer) grid whose layer bit is
// set in activeLayers, the sequencer-pattern entry point distinct from
// pitch-mapped triggering.
func (inst *Instrument) TriggerStep(step int, velocity uint8, activeLayers uint16, sampleOffset int32) {
	for layer := 0; layer < LayersPerStep; layer++ {
		if activeLayers&(1<<uint(layer)) == 0 {
			continue
		}
		slot, err := SlotIndex(step, layer)
		if err != nil {
			continue
		}
		inst.queued = append(inst.queued, queuedTrigger{slot: slot, velocity: velocity, sampleOffset: sampleOffset})
	}
}

// AllNotesOff stops every voice immediately.
func (inst *Instrument) AllNotesOff() {
	inst.alloc.Reset()
}

// IsDrum reports true: a multi-sample kit is percussion-like in the sense
// that matters to MIDI-FX routing (no sustain/pitch-bend semantics).
func (inst *Instrument) IsDrum() bool { return true }

// Params returns the instrument's parameter registry.
func (inst *Instrument) Params() *param.Registry { return inst.params }

// Process triggers every queued slot at its sample offset and sums all 32
// voices into output.
func (inst *Instrument) Process(output [][]float32, frames int) {
	for ch := range output {
		for i := range output[ch] {
			output[ch][i] = 0
		}
	}

	notes := inst.queued
	inst.queued = inst.queued[:0]
	sortQueued(notes)

	scratch := make([]float32, frames)
	gain := float32(inst.masterGain.GetPlainValue())

	start := 0
	for _, n := range notes {
		segEnd := int(n.sampleOffset)
		if segEnd > frames {
			segEnd = frames
		}
		if segEnd > start {
			inst.renderSegment(output, start, segEnd, scratch, gain)
		}
		start = segEnd
		inst.alloc.NoteOn(uint8(n.slot), n.velocity)
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

func sortQueued(notes []queuedTrigger) {
	for i := 1; i < len(notes); i++ {
		for j := i; j > 0 && notes[j-1].sampleOffset > notes[j].sampleOffset; j-- {
			notes[j-1], notes[j] = notes[j], notes[j-1]
		}
	}
}

// ActiveVoiceCount reports how many voices are currently active, used by
// tests asserting polyphony/stealing behavior.
func (inst *Instrument) ActiveVoiceCount() int {
	n := 0
	for _, v := range inst.voices {
		if v.IsActive() {
			n++
		}
	}
	return n
}
