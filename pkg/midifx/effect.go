// Package midifx implements the non-destructive MIDI effect chain that sits
// between a track's clips and its instrument: transpose, quantize, swing,
// humanize, chance, echo, arpeggiator, and harmonizer, per spec §4.3.
//
// Each Effect consumes one buffer's worth of sample-accurate midi.Events and
// returns the transformed set. Effects that need to reason about time beyond
// the current buffer (Echo, Arpeggiator, Swing) are told the buffer's frame
// count explicitly, since midi.Event offsets alone don't expose it.
package midifx

import (
	"github.com/grainwave/dawcore/pkg/framework/param"
	"github.com/grainwave/dawcore/pkg/midi"
)

// Effect is one stage of a MIDI-FX chain.
type Effect interface {
	// Process transforms events, returning the (possibly reordered,
	// added-to, or filtered) result. Implementations must not retain the
	// input slice across calls without copying it.
	Process(events []midi.Event, sampleRate, bpm float64, bufferFrames int32) []midi.Event
	Name() string
	Bypassed() bool
	SetBypass(bool)
	Params() *param.Registry
}

// MaxChainLength bounds the number of effects a single Chain may hold, per
// spec §4.3.
const MaxChainLength = 8

// Chain is an ordered, bounded sequence of MIDI effects applied in order.
// A chain-level BypassAll short-circuits every stage without touching
// per-effect bypass state, mirroring pkg/framework/dsp.Chain's bypass flag
// generalized from a buffer processor to an event-stream processor.
type Chain struct {
	effects    []Effect
	bypassAll  bool
}

// NewChain returns an empty MIDI-FX chain.
func NewChain() *Chain {
	return &Chain{effects: make([]Effect, 0, MaxChainLength)}
}

// Add appends an effect to the chain. It returns ErrChainFull once
// MaxChainLength stages are present.
func (c *Chain) Add(e Effect) error {
	if len(c.effects) >= MaxChainLength {
		return ErrChainFull
	}
	c.effects = append(c.effects, e)
	return nil
}

// Remove deletes the effect at index, shifting later stages down.
func (c *Chain) Remove(index int) error {
	if index < 0 || index >= len(c.effects) {
		return ErrEffectIndex
	}
	c.effects = append(c.effects[:index], c.effects[index+1:]...)
	return nil
}

// Effects returns the chain's stages in processing order.
func (c *Chain) Effects() []Effect {
	return c.effects
}

// Len reports the number of stages currently in the chain.
func (c *Chain) Len() int {
	return len(c.effects)
}

// BypassAll reports whether the chain-level bypass is engaged.
func (c *Chain) BypassAll() bool {
	return c.bypassAll
}

// SetBypassAll engages or releases the chain-level bypass.
func (c *Chain) SetBypassAll(bypass bool) {
	c.bypassAll = bypass
}

// Process runs events through every non-bypassed stage in order. With
// BypassAll set, or an empty chain, events pass through unchanged.
func (c *Chain) Process(events []midi.Event, sampleRate, bpm float64, bufferFrames int32) []midi.Event {
	if c.bypassAll || len(c.effects) == 0 {
		return events
	}
	for _, e := range c.effects {
		if e.Bypassed() {
			continue
		}
		events = e.Process(events, sampleRate, bpm, bufferFrames)
	}
	return events
}
