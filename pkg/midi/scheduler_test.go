package midi

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSchedulerExtractSingleNote(t *testing.T) {
	sched := NewScheduler()
	samplesPerTick := SamplesPerTick(44100, 120, 480)

	clip := ClipWindow{
		StartSample: 0,
		EndSample:   44100,
		PPQ:         480,
		Notes: []Note{
			{Pitch: 60, Velocity: 100, StartTick: 0, DurationTicks: 480},
		},
	}

	events := sched.Extract(clip, 0, 4410, samplesPerTick, 0, nil)
	require.Len(t, events, 1)

	on, ok := events[0].(NoteOnEvent)
	require.True(t, ok)
	require.Equal(t, uint8(60), on.NoteNumber)
	require.Equal(t, uint8(100), on.Velocity)
	require.Equal(t, int32(0), on.SampleOffset())
}

func TestSchedulerNoteOffEmittedEvenWithoutNoteOnInBuffer(t *testing.T) {
	sched := NewScheduler()
	samplesPerTick := SamplesPerTick(44100, 120, 480)

	clip := ClipWindow{
		StartSample: 0,
		EndSample:   44100,
		PPQ:         480,
		Notes: []Note{
			{Pitch: 60, Velocity: 100, StartTick: 0, DurationTicks: 480},
		},
	}

	noteOffSample := uint64(float64(480)*samplesPerTick + 0.5)
	events := sched.Extract(clip, noteOffSample-10, 20, samplesPerTick, 0, nil)
	require.Len(t, events, 1)
	off, ok := events[0].(NoteOffEvent)
	require.True(t, ok)
	require.Equal(t, uint8(60), off.NoteNumber)
	require.Equal(t, uint8(64), off.Velocity)
}

func TestSchedulerEarlyExitOnNoOverlap(t *testing.T) {
	sched := NewScheduler()
	clip := ClipWindow{StartSample: 1_000_000, EndSample: 2_000_000, PPQ: 480, Notes: []Note{
		{Pitch: 60, Velocity: 100, StartTick: 0, DurationTicks: 480},
	}}

	events := sched.Extract(clip, 0, 512, SamplesPerTick(44100, 120, 480), 0, nil)
	require.Empty(t, events)
}

func TestSchedulerBoundaryNoteEmittedOnce(t *testing.T) {
	sched := NewScheduler()
	samplesPerTick := SamplesPerTick(44100, 120, 480)
	clip := ClipWindow{
		StartSample: 0,
		EndSample:   44100,
		PPQ:         480,
		Notes: []Note{
			{Pitch: 72, Velocity: 90, StartTick: 480, DurationTicks: 10},
		},
	}
	noteOnSample := uint64(float64(480)*samplesPerTick + 0.5)

	first := sched.Extract(clip, noteOnSample-256, 256, samplesPerTick, 0, nil)
	second := sched.Extract(clip, noteOnSample, 256, samplesPerTick, 0, nil)

	total := 0
	for _, evs := range [][]Event{first, second} {
		for _, e := range evs {
			if _, ok := e.(NoteOnEvent); ok {
				total++
			}
		}
	}
	require.Equal(t, 1, total)
}
