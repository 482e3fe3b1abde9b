package drum808

import (
	"github.com/grainwave/dawcore/pkg/dsp/envelope"
	"github.com/grainwave/dawcore/pkg/dsp/filter"
	"github.com/grainwave/dawcore/pkg/dsp/oscillator"
	"github.com/grainwave/dawcore/pkg/dsp/utility"
)

// voice is a single generic 808-style voice: it carries enough generators
// to synthesize any of the 16 kinds and is reconfigured on every trigger,
// so a fixed pool of these can be handed to voice.Allocator exactly the
// way a polyphonic instrument voice pool is — kind, not pitch, is the
// allocator's "note" key.
type voice struct {
	sampleRate float64

	kind     Kind
	velocity uint8
	active   bool
	age      int64

	osc1  *oscillator.Oscillator
	osc2  *oscillator.Oscillator
	noise *utility.NoiseGenerator
	flt   *filter.Biquad
	amp   *envelope.AR

	osc1Gain, osc2Gain, noiseGain float32
	useSquare2                    bool

	pitchStartHz, pitchEndHz float64
	pitchDecayCoef           float64
	pitchActive              bool
	pitchMult                float64

	attackSamples int64
	currentAmp    float64

	// clapBurstEnd staggers the clap's four noise bursts: each entry is
	// the sample age at which that burst's brief window of full-gain
	// noise ends. After the last one, noise gates open continuously for
	// the trailing decay "tail" burst.
	clapBurstEnd [4]int64
}

func newVoice(sampleRate float64, seed int64) *voice {
	v := &voice{
		sampleRate: sampleRate,
		osc1:       oscillator.New(sampleRate),
		osc2:       oscillator.New(sampleRate),
		noise:      utility.NewNoiseGenerator(utility.WhiteNoise),
		flt:        filter.NewBiquad(1),
		amp:        envelope.NewAR(sampleRate),
	}
	v.noise.SetSeed(seed)
	return v
}

// --- voice.Voice interface ---

func (v *voice) IsActive() bool      { return v.active }
func (v *voice) GetNote() uint8      { return uint8(v.kind) }
func (v *voice) GetVelocity() uint8  { return v.velocity }
func (v *voice) GetAmplitude() float64 { return v.currentAmp }
func (v *voice) GetAge() int64       { return v.age }

func (v *voice) TriggerNote(note uint8, velocity uint8) {
	v.kind = Kind(note)
	v.velocity = velocity
	v.age = 0
	v.active = true
	v.pitchMult = 1.0
	v.amp.Trigger()
	configureRecipe(v, v.kind, velocity)
}

// ReleaseNote is a no-op: every 808 voice is a one-shot, decaying on its
// own envelope regardless of note-off (spec §4.4).
func (v *voice) ReleaseNote() {}

func (v *voice) Stop() {
	v.active = false
	v.amp.Release()
	v.currentAmp = 0
}

func (v *voice) Process(output []float32) {
	if !v.active {
		for i := range output {
			output[i] = 0
		}
		return
	}

	startAge := v.age
	for i := range output {
		var sample float32
		if v.osc1Gain != 0 {
			if v.pitchActive {
				freq := v.pitchEndHz + (v.pitchStartHz-v.pitchEndHz)*v.pitchMult
				v.osc1.SetFrequency(freq)
				v.pitchMult *= v.pitchDecayCoef
			}
			sample += v.osc1Gain * v.osc1.Sine()
		}
		if v.osc2Gain != 0 {
			if v.useSquare2 {
				sample += v.osc2Gain * v.osc2.Square()
			} else {
				sample += v.osc2Gain * v.osc2.Sine()
			}
		}
		if v.noiseGain != 0 {
			gain := v.noiseGain
			if v.kind == Clap {
				gain *= v.clapGateAt(v.age)
			}
			sample += gain * v.noise.Next()
		}
		output[i] = sample
		v.age++
	}

	v.flt.Process(output, 0)
	for i := range output {
		if startAge+int64(i) == v.attackSamples {
			v.amp.Release()
		}
		output[i] *= v.amp.Next()
	}

	velGain := float32(v.velocity) / 127.0
	peak := float32(0)
	for i := range output {
		output[i] *= velGain
		if a := abs32(output[i]); a > peak {
			peak = a
		}
	}
	v.currentAmp = float64(peak)

	if v.age > v.attackSamples+int64(5*v.sampleRate) {
		v.active = false
	}
}

// clapGateAt returns the noise gate for a clap's staggered-burst attack:
// four brief full-gain windows (one per clapBurstEnd entry) separated by
// near-silence, then a continuously open gate for the decay tail once the
// last burst has passed.
func (v *voice) clapGateAt(age int64) float32 {
	burstWidth := int64(0.002 * v.sampleRate) // 2ms per burst
	for _, end := range v.clapBurstEnd {
		if age < end {
			if age >= end-burstWidth {
				return 1.0
			}
			return 0.05
		}
	}
	return 0.6
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
