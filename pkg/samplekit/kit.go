// Package samplekit implements the 144-slot multi-sample kit of spec §4.5:
// a step/layer addressed sample grid (12 steps x 12 layers) that can be
// triggered either by MIDI pitch or directly by pattern step, played back
// through 32 voices of polyphony with linear-interpolated, tunable
// playback rate.
package samplekit

import "fmt"

// StepsPerPattern and LayersPerStep fix the 144-slot grid: slot = step*12 + layer.
const (
	StepsPerPattern = 12
	LayersPerStep   = 12
	NumSlots        = StepsPerPattern * LayersPerStep
)

// SlotIndex computes the flat slot index for a (step, layer) pair.
func SlotIndex(step, layer int) (int, error) {
	if step < 0 || step >= StepsPerPattern {
		return 0, fmt.Errorf("samplekit: step %d out of range [0,%d)", step, StepsPerPattern)
	}
	if layer < 0 || layer >= LayersPerStep {
		return 0, fmt.Errorf("samplekit: layer %d out of range [0,%d)", layer, LayersPerStep)
	}
	return step*LayersPerStep + layer, nil
}

// PitchToSlot maps an incoming MIDI pitch to a slot: (pitch-36) mod 144,
// wrapping so every pitch 0-127 addresses some slot even below 36.
func PitchToSlot(pitch uint8) int {
	idx := (int(pitch) - 36) % NumSlots
	if idx < 0 {
		idx += NumSlots
	}
	return idx
}

// Kit holds the 144 sample buffers. A nil entry is a silent/unassigned
// slot.
type Kit struct {
	slots [NumSlots][]float32
}

// NewKit returns an empty 144-slot kit.
func NewKit() *Kit {
	return &Kit{}
}

// SetSlot assigns samples (mono, interleaved if multi-channel content is
// pre-summed by the caller) to the slot at (step, layer).
func (k *Kit) SetSlot(step, layer int, samples []float32) error {
	idx, err := SlotIndex(step, layer)
	if err != nil {
		return err
	}
	k.slots[idx] = samples
	return nil
}

// Slot returns the sample data assigned to idx, or nil if unassigned.
func (k *Kit) Slot(idx int) []float32 {
	if idx < 0 || idx >= NumSlots {
		return nil
	}
	return k.slots[idx]
}
