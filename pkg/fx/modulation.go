package fx

import (
	"github.com/grainwave/dawcore/pkg/dsp/modulation"
	"github.com/grainwave/dawcore/pkg/framework/param"
)

// Chorus wraps the teacher's multi-voice chorus, driving true stereo
// output from each channel's own sample rather than collapsing to mono
// first — a track's chorus stage runs before the engine's own
// mono-collapse, so it still gets to use a stereo image.
type Chorus struct {
	base
	chorus *modulation.Chorus
	rate   *param.Parameter
	depth  *param.Parameter
	mix    *param.Parameter
}

const (
	paramChorusRate  uint32 = 0
	paramChorusDepth uint32 = 1
	paramChorusMix   uint32 = 2
)

// NewChorus returns a Chorus effect at the given sample rate.
func NewChorus(sampleRate float64) *Chorus {
	c := &Chorus{base: newBase("Chorus"), chorus: modulation.NewChorus(sampleRate)}
	c.rate = param.New(paramChorusRate, "Rate").ShortName("Rate").Range(0.1, 5).Default(0.5).Unit("Hz").Build()
	c.depth = param.New(paramChorusDepth, "Depth").ShortName("Depth").Range(0, 10).Default(2).Unit("ms").Build()
	c.mix = param.New(paramChorusMix, "Mix").ShortName("Mix").Range(0, 1).Default(0.5).Build()
	c.params.Add(c.rate)
	c.params.Add(c.depth)
	c.params.Add(c.mix)
	return c
}

func (c *Chorus) ProcessStereo(left, right []float32) {
	c.chorus.SetRate(float64(c.rate.GetPlainValue()))
	c.chorus.SetDepth(float64(c.depth.GetPlainValue()))
	c.chorus.SetMix(float64(c.mix.GetPlainValue()))
	for i := range left {
		var r float32
		if i < len(right) {
			r = right[i]
		}
		outL, outR := c.chorus.ProcessStereo(left[i], r)
		left[i] = outL
		if i < len(right) {
			right[i] = outR
		}
	}
}

func (c *Chorus) Reset() { c.chorus.Reset() }

// Flanger wraps the teacher's feedback-delay flanger.
type Flanger struct {
	base
	flanger  *modulation.Flanger
	rate     *param.Parameter
	depth    *param.Parameter
	feedback *param.Parameter
	mix      *param.Parameter
}

const (
	paramFlangerRate     uint32 = 0
	paramFlangerDepth    uint32 = 1
	paramFlangerFeedback uint32 = 2
	paramFlangerMix      uint32 = 3
)

// NewFlanger returns a Flanger effect at the given sample rate.
func NewFlanger(sampleRate float64) *Flanger {
	f := &Flanger{base: newBase("Flanger"), flanger: modulation.NewFlanger(sampleRate)}
	f.rate = param.New(paramFlangerRate, "Rate").ShortName("Rate").Range(0.05, 2).Default(0.2).Unit("Hz").Build()
	f.depth = param.New(paramFlangerDepth, "Depth").ShortName("Depth").Range(0, 10).Default(2).Unit("ms").Build()
	f.feedback = param.New(paramFlangerFeedback, "Feedback").ShortName("Fdbk").Range(-0.95, 0.95).Default(0.5).Build()
	f.mix = param.New(paramFlangerMix, "Mix").ShortName("Mix").Range(0, 1).Default(0.5).Build()
	f.params.Add(f.rate)
	f.params.Add(f.depth)
	f.params.Add(f.feedback)
	f.params.Add(f.mix)
	return f
}

func (f *Flanger) ProcessStereo(left, right []float32) {
	f.flanger.SetRate(float64(f.rate.GetPlainValue()))
	f.flanger.SetDepth(float64(f.depth.GetPlainValue()))
	f.flanger.SetFeedback(float64(f.feedback.GetPlainValue()))
	f.flanger.SetMix(float64(f.mix.GetPlainValue()))
	for i := range left {
		var r float32
		if i < len(right) {
			r = right[i]
		}
		outL, outR := f.flanger.ProcessStereo(left[i], r)
		left[i] = outL
		if i < len(right) {
			right[i] = outR
		}
	}
}

func (f *Flanger) Reset() { f.flanger.Reset() }
