package fx

import (
	"github.com/grainwave/dawcore/pkg/dsp/dynamics"
	"github.com/grainwave/dawcore/pkg/framework/param"
)

// Compressor wraps dynamics.Compressor as a stereo chain stage.
type Compressor struct {
	base
	comp      *dynamics.Compressor
	threshold *param.Parameter
	ratio     *param.Parameter
	attack    *param.Parameter
	release   *param.Parameter
	makeup    *param.Parameter
}

// NewCompressor returns a compressor stage for the given sample rate.
func NewCompressor(sampleRate float64) *Compressor {
	c := &Compressor{base: newBase("Compressor"), comp: dynamics.NewCompressor(sampleRate)}

	c.threshold = param.New(0, "Threshold").ShortName("Thresh").Range(-60, 0).Default(-18).Unit("dB").Build()
	c.ratio = param.New(1, "Ratio").ShortName("Ratio").Range(1, 20).Default(4).Build()
	c.attack = param.New(2, "Attack").ShortName("Atk").Range(0.0001, 1).Default(0.01).Unit("s").Build()
	c.release = param.New(3, "Release").ShortName("Rel").Range(0.001, 2).Default(0.15).Unit("s").Build()
	c.makeup = param.New(4, "Makeup").ShortName("Makeup").Range(-12, 24).Default(0).Unit("dB").Build()
	c.params.Add(c.threshold, c.ratio, c.attack, c.release, c.makeup)

	c.applySettings()
	return c
}

func (c *Compressor) applySettings() {
	c.comp.SetThreshold(c.threshold.GetPlainValue())
	c.comp.SetRatio(c.ratio.GetPlainValue())
	c.comp.SetAttack(c.attack.GetPlainValue())
	c.comp.SetRelease(c.release.GetPlainValue())
	c.comp.SetMakeupGain(c.makeup.GetPlainValue())
}

func (c *Compressor) ProcessStereo(left, right []float32) {
	c.applySettings()
	c.comp.ProcessStereo(left, right, left, right)
}

func (c *Compressor) Reset() {
	c.comp.Reset()
}

// GainReductionDB reports the compressor's current gain reduction, for
// metering.
func (c *Compressor) GainReductionDB() float64 {
	return c.comp.GetGainReduction()
}
