package samplekit

import "github.com/grainwave/dawcore/pkg/dsp/interpolation"

// voice plays back one slot's sample data at a configurable rate (for the
// kit-wide tuning parameter), using linear interpolation between sample
// frames exactly the way pkg/dsp/interpolation is built for. Each voice
// keeps a reference to the shared Kit and a tuning-rate getter so
// TriggerNote — whose signature is fixed by voice.Voice — can look up the
// slot's sample data itself.
type voice struct {
	kit    *Kit
	rateFn func() float64

	slotIndex int
	velocity  uint8
	active    bool
	age       int64

	data     []float32
	position float64
	rate     float64
	amp      float64
}

func newVoice(kit *Kit, rateFn func() float64) *voice {
	return &voice{kit: kit, rateFn: rateFn, rate: 1.0}
}

func (v *voice) IsActive() bool        { return v.active }
func (v *voice) GetNote() uint8        { return uint8(v.slotIndex) }
func (v *voice) GetVelocity() uint8    { return v.velocity }
func (v *voice) GetAmplitude() float64 { return v.amp }
func (v *voice) GetAge() int64         { return v.age }

// TriggerNote starts playback of the slot indexed by note.
func (v *voice) TriggerNote(note uint8, velocity uint8) {
	v.slotIndex = int(note)
	v.velocity = velocity
	v.data = v.kit.Slot(v.slotIndex)
	v.rate = v.rateFn()
	if v.rate <= 0 {
		v.rate = 1.0
	}
	v.position = 0
	v.age = 0
	v.active = true
}

// ReleaseNote is a no-op: slots play as one-shots to their natural end,
// the same one-shot discipline drum808 uses.
func (v *voice) ReleaseNote() {}

func (v *voice) Stop() {
	v.active = false
	v.amp = 0
}

func (v *voice) Process(output []float32) {
	if !v.active || len(v.data) < 2 {
		for i := range output {
			output[i] = 0
		}
		return
	}

	velGain := float32(v.velocity) / 127.0
	peak := float32(0)
	for i := range output {
		idx := int(v.position)
		if idx >= len(v.data)-1 {
			output[i] = 0
			v.active = false
			continue
		}
		frac := float32(v.position - float64(idx))
		sample := interpolation.Linear(v.data[idx], v.data[idx+1], frac) * velGain
		output[i] = sample
		if a := abs32(sample); a > peak {
			peak = a
		}
		v.position += v.rate
		v.age++
	}
	v.amp = float64(peak)
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
