package midifx

import (
	"testing"

	"github.com/grainwave/dawcore/pkg/midi"
	"github.com/stretchr/testify/require"
)

func TestChanceProbabilityOneKeepsEverything(t *testing.T) {
	c := NewChance(1)
	c.probability.SetPlainValue(1)

	events := make([]midi.Event, 0, 1000)
	for i := 0; i < 1000; i++ {
		events = append(events, midi.NoteOnEvent{BaseEvent: midi.BaseEvent{Offset: int32(i)}, NoteNumber: 60, Velocity: 100})
	}
	out := c.Process(events, 44100, 120, 4410)
	require.Len(t, out, 1000)
}

func TestChanceProbabilityZeroDropsEverything(t *testing.T) {
	c := NewChance(1)
	c.probability.SetPlainValue(0)

	events := make([]midi.Event, 0, 1000)
	for i := 0; i < 1000; i++ {
		events = append(events, midi.NoteOnEvent{BaseEvent: midi.BaseEvent{Offset: int32(i)}, NoteNumber: uint8(i % 128), Velocity: 100})
	}
	out := c.Process(events, 44100, 120, 4410)
	require.Empty(t, out)
}

func TestChanceDropsMatchingNoteOffAcrossBuffers(t *testing.T) {
	c := NewChance(7)
	c.probability.SetPlainValue(0)

	onOut := c.Process([]midi.Event{
		midi.NoteOnEvent{BaseEvent: midi.BaseEvent{Offset: 0}, NoteNumber: 60, Velocity: 100},
	}, 44100, 120, 512)
	require.Empty(t, onOut)

	offOut := c.Process([]midi.Event{
		midi.NoteOffEvent{BaseEvent: midi.BaseEvent{Offset: 0}, NoteNumber: 60, Velocity: 64},
	}, 44100, 120, 512)
	require.Empty(t, offOut)
}
