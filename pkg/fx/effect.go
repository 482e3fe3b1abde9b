// Package fx implements the stereo audio effect chain of spec §4.6 —
// gain, filter, dynamics, delay, and reverb — wrapping the teacher's DSP
// library rather than reimplementing any of it.
package fx

import "github.com/grainwave/dawcore/pkg/framework/param"

// Effect is one stage of an audio effect chain: it processes a stereo pair
// in place.
type Effect interface {
	ProcessStereo(left, right []float32)
	Reset()
	Name() string
	Bypassed() bool
	SetBypass(bool)
	Params() *param.Registry
}

// Chain is an ordered sequence of audio effects, generalizing
// pkg/framework/dsp.StereoChain with a chain-level BypassAll on top of
// each stage's own bypass.
type Chain struct {
	effects   []Effect
	bypassAll bool
}

// NewChain returns an empty effect chain.
func NewChain() *Chain {
	return &Chain{}
}

// Add appends an effect to the chain.
func (c *Chain) Add(e Effect) {
	c.effects = append(c.effects, e)
}

// Effects returns the chain's stages in processing order.
func (c *Chain) Effects() []Effect {
	return c.effects
}

// BypassAll reports whether the chain-level bypass is engaged.
func (c *Chain) BypassAll() bool { return c.bypassAll }

// SetBypassAll engages or releases the chain-level bypass.
func (c *Chain) SetBypassAll(bypass bool) { c.bypassAll = bypass }

// ProcessStereo runs left/right through every non-bypassed stage in order.
func (c *Chain) ProcessStereo(left, right []float32) {
	if c.bypassAll {
		return
	}
	for _, e := range c.effects {
		if e.Bypassed() {
			continue
		}
		e.ProcessStereo(left, right)
	}
}

// Reset resets every stage's internal state.
func (c *Chain) Reset() {
	for _, e := range c.effects {
		e.Reset()
	}
}
