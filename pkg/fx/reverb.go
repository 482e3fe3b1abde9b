package fx

import (
	"github.com/grainwave/dawcore/pkg/dsp/reverb"
	"github.com/grainwave/dawcore/pkg/framework/param"
)

// Reverb wraps reverb.Schroeder as a stereo chain stage.
type Reverb struct {
	base
	verb     *reverb.Schroeder
	roomSize *param.Parameter
	damping  *param.Parameter
	wet      *param.Parameter
	dry      *param.Parameter
	width    *param.Parameter
}

// NewReverb returns a Schroeder reverb stage for the given sample rate.
func NewReverb(sampleRate float64) *Reverb {
	r := &Reverb{base: newBase("Reverb"), verb: reverb.NewSchroeder(sampleRate)}

	r.roomSize = param.New(0, "Room Size").ShortName("Size").Range(0, 1).Default(0.5).Build()
	r.damping = param.New(1, "Damping").ShortName("Damp").Range(0, 1).Default(0.5).Build()
	r.wet = param.New(2, "Wet").ShortName("Wet").Range(0, 1).Default(0.3).Build()
	r.dry = param.New(3, "Dry").ShortName("Dry").Range(0, 1).Default(1).Build()
	r.width = param.New(4, "Width").ShortName("Width").Range(0, 1).Default(1).Build()
	r.params.Add(r.roomSize, r.damping, r.wet, r.dry, r.width)

	r.applySettings()
	return r
}

func (r *Reverb) applySettings() {
	r.verb.SetRoomSize(r.roomSize.GetPlainValue())
	r.verb.SetDamping(r.damping.GetPlainValue())
	r.verb.SetWetLevel(r.wet.GetPlainValue())
	r.verb.SetDryLevel(r.dry.GetPlainValue())
	r.verb.SetWidth(r.width.GetPlainValue())
}

func (r *Reverb) ProcessStereo(left, right []float32) {
	r.applySettings()
	for i := range left {
		var inR float32
		if i < len(right) {
			inR = right[i]
		}
		outL, outR := r.verb.ProcessStereo(left[i], inR)
		left[i] = outL
		if i < len(right) {
			right[i] = outR
		}
	}
}

func (r *Reverb) Reset() {
	r.verb.Reset()
}
