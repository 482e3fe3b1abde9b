package fx

import (
	"github.com/grainwave/dawcore/pkg/dsp/filter"
	"github.com/grainwave/dawcore/pkg/framework/param"
)

// FilterMode selects the Biquad's response curve.
type FilterMode int

const (
	FilterLowpass FilterMode = iota
	FilterHighpass
	FilterBandpass
	FilterNotch
	FilterPeakingEQ
	FilterLowShelf
	FilterHighShelf
)

// Filter is a stereo biquad filter stage with a mode, cutoff, resonance,
// and gain (used by the shelf/peaking modes) parameter.
type Filter struct {
	base
	sampleRate float64
	biquad     *filter.Biquad
	mode       *param.Parameter
	cutoff     *param.Parameter
	resonance  *param.Parameter
	gainDB     *param.Parameter
}

// NewFilter returns a lowpass-by-default stereo filter for the given
// sample rate.
func NewFilter(sampleRate float64) *Filter {
	f := &Filter{base: newBase("Filter"), sampleRate: sampleRate, biquad: filter.NewBiquad(2)}

	f.mode = param.New(0, "Mode").ShortName("Mode").Range(0, 6).Default(0).Steps(7).Build()
	f.cutoff = param.New(1, "Cutoff").ShortName("Cutoff").Range(20, 20000).Default(1000).Unit("Hz").Build()
	f.resonance = param.New(2, "Resonance").ShortName("Q").Range(0.1, 20).Default(0.707).Build()
	f.gainDB = param.New(3, "Gain").ShortName("Gain").Range(-24, 24).Default(0).Unit("dB").Build()
	f.params.Add(f.mode, f.cutoff, f.resonance, f.gainDB)

	f.applyCoefficients()
	return f
}

func (f *Filter) applyCoefficients() {
	mode := FilterMode(int(f.mode.GetPlainValue()))
	cutoff := f.cutoff.GetPlainValue()
	q := f.resonance.GetPlainValue()
	gainDB := f.gainDB.GetPlainValue()

	switch mode {
	case FilterLowpass:
		f.biquad.SetLowpass(f.sampleRate, cutoff, q)
	case FilterHighpass:
		f.biquad.SetHighpass(f.sampleRate, cutoff, q)
	case FilterBandpass:
		f.biquad.SetBandpass(f.sampleRate, cutoff, q)
	case FilterNotch:
		f.biquad.SetNotch(f.sampleRate, cutoff, q)
	case FilterPeakingEQ:
		f.biquad.SetPeakingEQ(f.sampleRate, cutoff, q, gainDB)
	case FilterLowShelf:
		f.biquad.SetLowShelf(f.sampleRate, cutoff, q, gainDB)
	case FilterHighShelf:
		f.biquad.SetHighShelf(f.sampleRate, cutoff, q, gainDB)
	}
}

// ProcessStereo filters left (channel 0) and right (channel 1) in place,
// recomputing coefficients from the current parameter values first.
func (f *Filter) ProcessStereo(left, right []float32) {
	f.applyCoefficients()
	f.biquad.Process(left, 0)
	f.biquad.Process(right, 1)
}

func (f *Filter) Reset() {
	f.biquad.Reset()
}
