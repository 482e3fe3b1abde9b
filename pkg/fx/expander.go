package fx

import (
	"github.com/grainwave/dawcore/pkg/dsp/dynamics"
	"github.com/grainwave/dawcore/pkg/framework/param"
)

// Expander wraps dynamics.Expander as a stereo chain stage.
type Expander struct {
	base
	exp       *dynamics.Expander
	threshold *param.Parameter
	ratio     *param.Parameter
	attack    *param.Parameter
	release   *param.Parameter
	rangeDB   *param.Parameter
}

// NewExpander returns a downward-expander stage for the given sample rate.
func NewExpander(sampleRate float64) *Expander {
	e := &Expander{base: newBase("Expander"), exp: dynamics.NewExpander(sampleRate)}

	e.threshold = param.New(0, "Threshold").ShortName("Thresh").Range(-80, 0).Default(-30).Unit("dB").Build()
	e.ratio = param.New(1, "Ratio").ShortName("Ratio").Range(1, 10).Default(2).Build()
	e.attack = param.New(2, "Attack").ShortName("Atk").Range(0.0001, 0.5).Default(0.005).Unit("s").Build()
	e.release = param.New(3, "Release").ShortName("Rel").Range(0.001, 2).Default(0.2).Unit("s").Build()
	e.rangeDB = param.New(4, "Range").ShortName("Range").Range(-96, 0).Default(-40).Unit("dB").Build()
	e.params.Add(e.threshold, e.ratio, e.attack, e.release, e.rangeDB)

	e.applySettings()
	return e
}

func (e *Expander) applySettings() {
	e.exp.SetThreshold(e.threshold.GetPlainValue())
	e.exp.SetRatio(e.ratio.GetPlainValue())
	e.exp.SetAttack(e.attack.GetPlainValue())
	e.exp.SetRelease(e.release.GetPlainValue())
	e.exp.SetRange(e.rangeDB.GetPlainValue())
}

func (e *Expander) ProcessStereo(left, right []float32) {
	e.applySettings()
	e.exp.ProcessStereo(left, right, left, right)
}

func (e *Expander) Reset() {
	e.exp.Reset()
}

// GainReductionDB reports the expander's current gain reduction, for
// metering.
func (e *Expander) GainReductionDB() float64 {
	return e.exp.GetGainReduction()
}
