package fx

import (
	"github.com/grainwave/dawcore/pkg/dsp/distortion"
	"github.com/grainwave/dawcore/pkg/framework/param"
)

// Distortion wraps the teacher's waveshaper in the chain's Effect shape,
// exposing drive and mix as automatable parameters and leaving the curve
// fixed at construction (soft clipping reads as the useful default for a
// general-purpose saturation stage; hard clip, foldback, and the rest stay
// available to a caller that wants a different curve().
type Distortion struct {
	base
	shaper *distortion.Waveshaper
	drive  *param.Parameter
	mix    *param.Parameter
}

const (
	paramDistortionDrive uint32 = 0
	paramDistortionMix   uint32 = 1
)

// NewDistortion returns a Distortion effect using the given waveshaping curve.
func NewDistortion(curve distortion.CurveType) *Distortion {
	d := &Distortion{base: newBase("Distortion"), shaper: distortion.NewWaveshaper(curve)}
	d.drive = param.New(paramDistortionDrive, "Drive").ShortName("Drive").Range(1, 20).Default(1).Build()
	d.mix = param.New(paramDistortionMix, "Mix").ShortName("Mix").Range(0, 1).Default(1).Build()
	d.params.Add(d.drive)
	d.params.Add(d.mix)
	return d
}

func (d *Distortion) ProcessStereo(left, right []float32) {
	d.shaper.SetDrive(float64(d.drive.GetPlainValue()))
	d.shaper.SetMix(float64(d.mix.GetPlainValue()))
	for i := range left {
		left[i] = float32(d.shaper.Process(float64(left[i])))
		if i < len(right) {
			right[i] = float32(d.shaper.Process(float64(right[i])))
		}
	}
}

func (d *Distortion) Reset() {}

// BitCrusher wraps the teacher's sample-rate/bit-depth reduction effect,
// the lo-fi counterpart to Distortion's analog-style saturation.
type BitCrusher struct {
	base
	crusher  *distortion.BitCrusher
	bitDepth *param.Parameter
	mix      *param.Parameter
}

const (
	paramBitCrusherDepth uint32 = 0
	paramBitCrusherMix   uint32 = 1
)

// NewBitCrusher returns a BitCrusher effect at the given sample rate.
func NewBitCrusher(sampleRate float64) *BitCrusher {
	b := &BitCrusher{base: newBase("BitCrusher"), crusher: distortion.NewBitCrusher(sampleRate)}
	b.bitDepth = param.New(paramBitCrusherDepth, "Bit Depth").ShortName("Bits").Range(1, 16).Default(16).Build()
	b.mix = param.New(paramBitCrusherMix, "Mix").ShortName("Mix").Range(0, 1).Default(1).Build()
	b.params.Add(b.bitDepth)
	b.params.Add(b.mix)
	return b
}

func (b *BitCrusher) ProcessStereo(left, right []float32) {
	b.crusher.SetBitDepth(int(b.bitDepth.GetPlainValue()))
	b.crusher.SetMix(float64(b.mix.GetPlainValue()))
	for i := range left {
		left[i] = float32(b.crusher.Process(float64(left[i])))
		if i < len(right) {
			right[i] = float32(b.crusher.Process(float64(right[i])))
		}
	}
}

func (b *BitCrusher) Reset() {}
