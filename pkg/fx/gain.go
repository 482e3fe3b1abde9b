package fx

import (
	"github.com/grainwave/dawcore/pkg/dsp/gain"
	"github.com/grainwave/dawcore/pkg/framework/param"
)

// Gain applies a smoothed gain (in dB) to both channels, using
// param.Smoother so automated moves don't click — a concern a usable
// mixer needs even though the distilled spec doesn't name it.
type Gain struct {
	base
	gainDB   *param.Parameter
	smoother *param.Smoother
}

const paramGainDB uint32 = 0

// NewGain returns a unity-gain Gain effect.
func NewGain(smoothingRateSamples float64) *Gain {
	g := &Gain{base: newBase("Gain")}
	g.gainDB = param.New(paramGainDB, "Gain").ShortName("Gain").Range(-60, 12).Default(0).Unit("dB").Build()
	g.params.Add(g.gainDB)
	g.smoother = param.NewSmoother(param.LinearSmoothing, smoothingRateSamples)
	g.smoother.Reset(0)
	return g
}

func (g *Gain) ProcessStereo(left, right []float32) {
	g.smoother.SetTarget(g.gainDB.GetPlainValue())
	for i := range left {
		db := g.smoother.Next()
		linear := float32(gain.DbToLinear(db))
		left[i] = gain.Apply(left[i], linear)
		if i < len(right) {
			right[i] = gain.Apply(right[i], linear)
		}
	}
}

func (g *Gain) Reset() {
	g.smoother.Reset(g.gainDB.GetPlainValue())
}
