package samplekit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func makeKitWithData() *Kit {
	kit := NewKit()
	for step := 0; step < StepsPerPattern; step++ {
		for layer := 0; layer < LayersPerStep; layer++ {
			data := make([]float32, 4410)
			for i := range data {
				data[i] = 0.5
			}
			kit.SetSlot(step, layer, data)
		}
	}
	return kit
}

func TestSlotIndexFormula(t *testing.T) {
	idx, err := SlotIndex(3, 5)
	require.NoError(t, err)
	require.Equal(t, 3*12+5, idx)
}

func TestPitchToSlotWraps(t *testing.T) {
	require.Equal(t, 0, PitchToSlot(36))
	require.Equal(t, 1, PitchToSlot(37))
	require.Equal(t, NumSlots-1, PitchToSlot(35))
}

func TestThirtyTwoDistinctSlotsFillAllVoices(t *testing.T) {
	kit := makeKitWithData()
	inst := New(kit)
	buf := [][]float32{make([]float32, 64)}

	for slot := 0; slot < 32; slot++ {
		step, layer := slot/LayersPerStep, slot%LayersPerStep
		inst.TriggerStep(step, 100, 1<<uint(layer), 0)
	}
	inst.Process(buf, 64)

	require.Equal(t, 32, inst.ActiveVoiceCount())
}

func TestThirtyThirdTriggerStealsOldest(t *testing.T) {
	kit := makeKitWithData()
	inst := New(kit)
	buf := [][]float32{make([]float32, 64)}

	for slot := 0; slot < 32; slot++ {
		step, layer := slot/LayersPerStep, slot%LayersPerStep
		inst.TriggerStep(step, 100, 1<<uint(layer), 0)
	}
	inst.Process(buf, 64)
	require.Equal(t, 32, inst.ActiveVoiceCount())

	inst.TriggerStep(2, 100, 1<<10, 0) // slot 2*12+10 = 34, a 33rd distinct slot
	inst.Process(buf, 64)

	require.Equal(t, 32, inst.ActiveVoiceCount(), "stealing keeps voice count at the 32-voice ceiling")
}

func TestTuningAffectsPlaybackRate(t *testing.T) {
	kit := makeKitWithData()
	inst := New(kit)
	inst.tuningSemitones.SetPlainValue(12)
	require.InDelta(t, 2.0, inst.playbackRate(), 0.0001)
}
