package fx

import (
	"github.com/grainwave/dawcore/pkg/dsp/dynamics"
	"github.com/grainwave/dawcore/pkg/framework/param"
)

// Limiter wraps dynamics.Limiter as a stereo chain stage — the brickwall
// stage typically placed last on a master bus.
type Limiter struct {
	base
	lim       *dynamics.Limiter
	threshold *param.Parameter
	release   *param.Parameter
	truePeak  *param.Parameter
}

// NewLimiter returns a limiter stage for the given sample rate.
func NewLimiter(sampleRate float64) *Limiter {
	l := &Limiter{base: newBase("Limiter"), lim: dynamics.NewLimiter(sampleRate)}

	l.threshold = param.New(0, "Threshold").ShortName("Thresh").Range(-12, 0).Default(-0.3).Unit("dB").Build()
	l.release = param.New(1, "Release").ShortName("Rel").Range(0.001, 1).Default(0.05).Unit("s").Build()
	l.truePeak = param.New(2, "True Peak").ShortName("TP").Range(0, 1).Default(1).Steps(2).Build()
	l.params.Add(l.threshold, l.release, l.truePeak)

	l.applySettings()
	return l
}

func (l *Limiter) applySettings() {
	l.lim.SetThreshold(l.threshold.GetPlainValue())
	l.lim.SetRelease(l.release.GetPlainValue())
	l.lim.SetTruePeak(l.truePeak.GetPlainValue() >= 0.5)
}

func (l *Limiter) ProcessStereo(left, right []float32) {
	l.applySettings()
	l.lim.ProcessStereo(left, right, left, right)
}

func (l *Limiter) Reset() {
	l.lim.Reset()
}

// GainReductionDB reports the limiter's current gain reduction, for
// metering.
func (l *Limiter) GainReductionDB() float64 {
	return l.lim.GetGainReduction()
}
