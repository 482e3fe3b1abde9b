package fx

import (
	"github.com/grainwave/dawcore/pkg/dsp/delay"
	"github.com/grainwave/dawcore/pkg/framework/param"
)

// Delay is a stereo feedback delay built on delay.Line, one line per
// channel so left/right taps stay independent.
type Delay struct {
	base
	lineL, lineR *delay.Line
	sampleRate   float64
	timeMS       *param.Parameter
	feedback     *param.Parameter
	mix          *param.Parameter
}

// NewDelay returns a delay stage with up to 2 seconds of delay time.
func NewDelay(sampleRate float64) *Delay {
	d := &Delay{
		base:       newBase("Delay"),
		lineL:      delay.New(2.0, sampleRate),
		lineR:      delay.New(2.0, sampleRate),
		sampleRate: sampleRate,
	}

	d.timeMS = param.New(0, "Time").ShortName("Time").Range(1, 2000).Default(375).Unit("ms").Build()
	d.feedback = param.New(1, "Feedback").ShortName("Fdbk").Range(0, 0.95).Default(0.35).Build()
	d.mix = param.New(2, "Mix").ShortName("Mix").Range(0, 1).Default(0.3).Build()
	d.params.Add(d.timeMS, d.feedback, d.mix)
	return d
}

func (d *Delay) ProcessStereo(left, right []float32) {
	delaySamples := d.timeMS.GetPlainValue() / 1000.0 * d.sampleRate
	fb := float32(d.feedback.GetPlainValue())
	mix := float32(d.mix.GetPlainValue())

	for i := range left {
		wetL := d.lineL.Read(delaySamples)
		d.lineL.Write(left[i] + wetL*fb)
		left[i] = left[i]*(1-mix) + wetL*mix

		if i < len(right) {
			wetR := d.lineR.Read(delaySamples)
			d.lineR.Write(right[i] + wetR*fb)
			right[i] = right[i]*(1-mix) + wetR*mix
		}
	}
}

func (d *Delay) Reset() {
	d.lineL.Reset()
	d.lineR.Reset()
}
