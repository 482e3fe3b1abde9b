package drum808

import "math"

// configureRecipe sets up v's generators for kind, per the synthesis recipe
// table in spec §4.4: each kind composes pitched oscillator(s), noise, and
// a resonant filter differently, with a pitch-down sweep on the tonal
// percussion (kick/toms/congas) for the characteristic 808 "thump".
func configureRecipe(v *voice, kind Kind, velocity uint8) {
	sr := v.sampleRate
	v.osc1Gain, v.osc2Gain, v.noiseGain = 0, 0, 0
	v.useSquare2 = false
	v.pitchActive = false
	v.flt.Reset()

	switch kind {
	case Kick:
		v.osc1Gain = 1.0
		setPitchSweep(v, 220, 50, 0.06)
		v.flt.SetLowpass(sr, 180, 0.9)
		v.attackSamples = int64(0.002 * sr)

	case LowTom:
		v.osc1Gain = 1.0
		setPitchSweep(v, 180, 90, 0.12)
		v.flt.SetLowpass(sr, 400, 0.8)
		v.attackSamples = int64(0.003 * sr)

	case MidTom:
		v.osc1Gain = 1.0
		setPitchSweep(v, 260, 140, 0.1)
		v.flt.SetLowpass(sr, 600, 0.8)
		v.attackSamples = int64(0.003 * sr)

	case HighTom:
		v.osc1Gain = 1.0
		setPitchSweep(v, 340, 200, 0.09)
		v.flt.SetLowpass(sr, 900, 0.8)
		v.attackSamples = int64(0.003 * sr)

	case CongaLow:
		v.osc1Gain = 1.0
		setPitchSweep(v, 220, 180, 0.05)
		v.flt.SetBandpass(sr, 200, 1.2)
		v.attackSamples = int64(0.002 * sr)

	case CongaMid:
		v.osc1Gain = 1.0
		setPitchSweep(v, 300, 250, 0.05)
		v.flt.SetBandpass(sr, 280, 1.2)
		v.attackSamples = int64(0.002 * sr)

	case CongaHigh:
		v.osc1Gain = 1.0
		setPitchSweep(v, 420, 360, 0.04)
		v.flt.SetBandpass(sr, 400, 1.2)
		v.attackSamples = int64(0.002 * sr)

	case Claves:
		v.osc1Gain = 1.0
		v.osc1.SetFrequency(2500)
		v.flt.SetBandpass(sr, 2500, 4.0)
		v.attackSamples = int64(0.0005 * sr)
		v.amp.SetRelease(0.06)

	case Rim:
		v.osc1Gain = 0.6
		v.osc1.SetFrequency(1700)
		v.noiseGain = 0.6
		v.flt.SetBandpass(sr, 1800, 3.0)
		v.attackSamples = int64(0.0005 * sr)
		v.amp.SetRelease(0.04)

	case Cowbell:
		v.osc1Gain = 0.5
		v.osc2Gain = 0.5
		v.useSquare2 = true
		v.osc1.SetFrequency(540)
		v.osc2.SetFrequency(800)
		v.flt.SetBandpass(sr, 800, 2.0)
		v.attackSamples = int64(0.001 * sr)
		v.amp.SetRelease(0.25)

	case Snare:
		v.osc1Gain = 0.4
		v.osc1.SetFrequency(180)
		v.noiseGain = 0.8
		v.flt.SetHighpass(sr, 900, 0.9)
		v.attackSamples = int64(0.001 * sr)
		v.amp.SetRelease(0.18)

	case Clap:
		v.noiseGain = 0.9
		v.flt.SetBandpass(sr, 1200, 1.5)
		burst := int64(0.017 * sr) // ~750 samples at 44.1kHz between bursts
		v.clapBurstEnd = [4]int64{burst, burst * 2, burst * 3, burst * 4}
		v.attackSamples = int64(0.0005 * sr)
		v.amp.SetRelease(0.3)

	case ClosedHat:
		v.noiseGain = 0.8
		v.flt.SetHighpass(sr, 7000, 0.7)
		v.attackSamples = int64(0.0005 * sr)
		v.amp.SetRelease(0.04)

	case OpenHat:
		v.noiseGain = 0.8
		v.flt.SetHighpass(sr, 6000, 0.7)
		v.attackSamples = int64(0.0005 * sr)
		v.amp.SetRelease(0.5)

	case Crash:
		v.noiseGain = 0.7
		v.flt.SetHighpass(sr, 4000, 0.6)
		v.attackSamples = int64(0.001 * sr)
		v.amp.SetRelease(1.8)

	case Maracas:
		v.noiseGain = 0.6
		v.flt.SetBandpass(sr, 5000, 1.0)
		v.attackSamples = int64(0.0003 * sr)
		v.amp.SetRelease(0.05)

	default:
		v.noiseGain = 0.5
		v.flt.SetLowpass(sr, 1000, 0.7)
		v.attackSamples = int64(0.001 * sr)
	}

	v.amp.SetAttack(math.Max(0.0005, float64(v.attackSamples)/sr))
}

func setPitchSweep(v *voice, startHz, endHz, decaySeconds float64) {
	v.pitchActive = true
	v.pitchStartHz = startHz
	v.pitchEndHz = endHz
	v.pitchDecayCoef = math.Exp(-1.0 / (decaySeconds * v.sampleRate))
}
