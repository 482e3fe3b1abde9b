package fx

import (
	"github.com/grainwave/dawcore/pkg/dsp/dynamics"
	"github.com/grainwave/dawcore/pkg/framework/param"
)

// Gate wraps dynamics.Gate as a stereo chain stage.
type Gate struct {
	base
	gate      *dynamics.Gate
	threshold *param.Parameter
	attack    *param.Parameter
	hold      *param.Parameter
	release   *param.Parameter
	rangeDB   *param.Parameter
}

// NewGate returns a noise gate stage for the given sample rate.
func NewGate(sampleRate float64) *Gate {
	g := &Gate{base: newBase("Gate"), gate: dynamics.NewGate(sampleRate)}

	g.threshold = param.New(0, "Threshold").ShortName("Thresh").Range(-80, 0).Default(-40).Unit("dB").Build()
	g.attack = param.New(1, "Attack").ShortName("Atk").Range(0.0001, 0.5).Default(0.002).Unit("s").Build()
	g.hold = param.New(2, "Hold").ShortName("Hold").Range(0, 1).Default(0.05).Unit("s").Build()
	g.release = param.New(3, "Release").ShortName("Rel").Range(0.001, 2).Default(0.1).Unit("s").Build()
	g.rangeDB = param.New(4, "Range").ShortName("Range").Range(-96, 0).Default(-60).Unit("dB").Build()
	g.params.Add(g.threshold, g.attack, g.hold, g.release, g.rangeDB)

	g.applySettings()
	return g
}

func (g *Gate) applySettings() {
	g.gate.SetThreshold(g.threshold.GetPlainValue())
	g.gate.SetAttack(g.attack.GetPlainValue())
	g.gate.SetHold(g.hold.GetPlainValue())
	g.gate.SetRelease(g.release.GetPlainValue())
	g.gate.SetRange(g.rangeDB.GetPlainValue())
}

func (g *Gate) ProcessStereo(left, right []float32) {
	g.applySettings()
	g.gate.ProcessStereo(left, right, left, right)
}

func (g *Gate) Reset() {
	g.gate.Reset()
}

// IsOpen reports whether the gate is currently passing signal.
func (g *Gate) IsOpen() bool {
	return g.gate.IsOpen()
}
