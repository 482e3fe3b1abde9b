package midifx

import (
	"testing"

	"github.com/grainwave/dawcore/pkg/midi"
	"github.com/stretchr/testify/require"
)

// TestQuantizeGridMatchesFourTimesSamplesPerBeat matches spec §4.3's grid
// formula, samples_per_beat * 4 / grid_division: at 120bpm/44100Hz with a
// 1/16 grid, lines fall every 5512.5 samples, not every 1378.125 (the
// pre-fix, missing-×4 spacing).
func TestQuantizeGridMatchesFourTimesSamplesPerBeat(t *testing.T) {
	q := NewQuantize()
	q.gridDivision.SetPlainValue(16)
	q.strength.SetPlainValue(1)

	sampleRate, bpm := 44100.0, 120.0
	expectedGrid := 4 * (44100.0 * 60.0 / 120.0) / 16.0 // 5512.5

	events := []midi.Event{
		midi.NoteOnEvent{BaseEvent: midi.BaseEvent{Offset: int32(expectedGrid*3 + 40)}, NoteNumber: 60, Velocity: 100},
	}
	out := q.Process(events, sampleRate, bpm, 8192)

	require.Len(t, out, 1)
	on, ok := out[0].(midi.NoteOnEvent)
	require.True(t, ok)
	require.InDelta(t, expectedGrid*3, float64(on.Offset), 1)
}

func TestQuantizeGridDivisionSnapsToEnumeratedSet(t *testing.T) {
	require.Equal(t, 16.0, nearestGridDivision(15.9))
	require.Equal(t, 24.0, nearestGridDivision(21.0))
	require.Equal(t, 1.0, nearestGridDivision(0))
}
