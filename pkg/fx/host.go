package fx

import "github.com/grainwave/dawcore/pkg/framework/param"

// ExternalProcessFunc renders one stereo buffer through an
// externally-hosted effect. Implementations are supplied by the caller —
// dawcore does not load, sandbox, or present UI for third-party plugins
// (Non-goal).
type ExternalProcessFunc func(left, right []float32)

// ExternalEffect adapts a host-supplied render callback to the Effect
// interface, standing in for a dynamically loaded native effect plugin
// without the loading or UI-embedding machinery that would require.
type ExternalEffect struct {
	base
	process ExternalProcessFunc
}

// NewExternalEffect wraps process as an Effect named name, exposing params
// as its automatable parameter set.
func NewExternalEffect(name string, process ExternalProcessFunc, params *param.Registry) *ExternalEffect {
	e := &ExternalEffect{base: newBase(name), process: process}
	if params != nil {
		e.params = params
	}
	return e
}

func (e *ExternalEffect) ProcessStereo(left, right []float32) {
	if e.process != nil {
		e.process(left, right)
	}
}

func (e *ExternalEffect) Reset() {}
