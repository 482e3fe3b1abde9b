package midifx

import (
	"testing"

	"github.com/grainwave/dawcore/pkg/midi"
	"github.com/stretchr/testify/require"
)

// TestArpeggiatorUpTwoOctaves matches the spec scenario: two held notes
// (60, 64), Up pattern, two octaves, produce the four-note sequence
// 60, 64, 72, 76 in ascending-octave-major order.
func TestArpeggiatorUpTwoOctaves(t *testing.T) {
	arp := NewArpeggiator(1, ArpUp)
	arp.octaves.SetPlainValue(2)
	arp.rate.SetPlainValue(8)
	arp.gate.SetPlainValue(0.8)

	events := []midi.Event{
		midi.NoteOnEvent{BaseEvent: midi.BaseEvent{Offset: 0}, NoteNumber: 60, Velocity: 100},
		midi.NoteOnEvent{BaseEvent: midi.BaseEvent{Offset: 0}, NoteNumber: 64, Velocity: 100},
	}

	var noteOns []uint8
	sampleRate, bpm := 44100.0, 120.0
	bufferFrames := int32(4410)
	for buf := 0; buf < 8 && len(noteOns) < 4; buf++ {
		in := events
		if buf > 0 {
			in = nil
		}
		out := arp.Process(in, sampleRate, bpm, bufferFrames)
		for _, e := range out {
			if on, ok := e.(midi.NoteOnEvent); ok {
				noteOns = append(noteOns, on.NoteNumber)
			}
		}
	}

	require.Equal(t, []uint8{60, 64, 72, 76}, noteOns)
}

// TestArpeggiatorStepSpacingMatchesRate matches spec §4.3's step duration
// formula, samples_per_beat * 4 / rate: at 120bpm/44100Hz with rate=8, steps
// land every 11025 samples, not every 2756 (the pre-fix, missing-×4 spacing).
func TestArpeggiatorStepSpacingMatchesRate(t *testing.T) {
	arp := NewArpeggiator(1, ArpUp)
	arp.rate.SetPlainValue(8)
	arp.gate.SetPlainValue(0.8)

	events := []midi.Event{
		midi.NoteOnEvent{BaseEvent: midi.BaseEvent{Offset: 0}, NoteNumber: 60, Velocity: 100},
	}

	sampleRate, bpm := 44100.0, 120.0
	bufferFrames := int32(22050)
	out := arp.Process(events, sampleRate, bpm, bufferFrames)

	var offsets []int32
	for _, e := range out {
		if on, ok := e.(midi.NoteOnEvent); ok {
			offsets = append(offsets, on.Offset)
		}
	}

	const expectedStepSamples = int32(4 * 22050 / 8) // 4 * samplesPerBeat / rate
	require.Equal(t, []int32{0, expectedStepSamples}, offsets)
}

func TestArpeggiatorReleasedNoteLeavesSequence(t *testing.T) {
	arp := NewArpeggiator(1, ArpUp)
	arp.Process([]midi.Event{
		midi.NoteOnEvent{BaseEvent: midi.BaseEvent{Offset: 0}, NoteNumber: 60, Velocity: 100},
		midi.NoteOnEvent{BaseEvent: midi.BaseEvent{Offset: 0}, NoteNumber: 64, Velocity: 100},
	}, 44100, 120, 512)
	arp.Process([]midi.Event{
		midi.NoteOffEvent{BaseEvent: midi.BaseEvent{Offset: 0}, NoteNumber: 64, Velocity: 64},
	}, 44100, 120, 512)

	require.Len(t, arp.held, 1)
	require.Equal(t, uint8(60), arp.held[0].pitch)
}
