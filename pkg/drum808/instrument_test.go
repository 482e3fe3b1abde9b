package drum808

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRepeatedKickRetriggersSingleVoice(t *testing.T) {
	inst := New(44100, 1)
	buf := [][]float32{make([]float32, 256)}

	for i := 0; i < 16; i++ {
		inst.QueueNoteOn(36, 100, 0)
		inst.Process(buf, 256)
	}

	require.LessOrEqual(t, inst.ActiveKickVoices(), 1)
}

func TestHiHatChoke(t *testing.T) {
	inst := New(44100, 1)
	buf := [][]float32{make([]float32, 256)}

	inst.QueueNoteOn(46, 100, 0) // open hat
	inst.Process(buf, 256)

	var openVoice *voice
	for _, v := range inst.voices {
		if v.IsActive() && v.kind == OpenHat {
			openVoice = v
		}
	}
	require.NotNil(t, openVoice, "open hat voice should be active")

	inst.QueueNoteOn(42, 100, 0) // closed hat chokes the open hat
	inst.Process(buf, 256)

	require.False(t, openVoice.IsActive(), "open hat should be choked by closed hat")
}

func TestUnmappedPitchIgnored(t *testing.T) {
	inst := New(44100, 1)
	buf := [][]float32{make([]float32, 256)}
	inst.QueueNoteOn(10, 100, 0)
	require.NotPanics(t, func() { inst.Process(buf, 256) })
}

func TestNoteOffIsNoop(t *testing.T) {
	inst := New(44100, 1)
	buf := [][]float32{make([]float32, 256)}
	inst.QueueNoteOn(36, 100, 0)
	inst.Process(buf, 256)
	require.Equal(t, 1, inst.ActiveKickVoices())

	inst.QueueNoteOff(36, 0)
	inst.Process(buf, 256)
	require.Equal(t, 1, inst.ActiveKickVoices(), "note-off must not silence a one-shot drum voice")
}
