package instrument

import "github.com/grainwave/dawcore/pkg/framework/param"

// ExternalProcessFunc renders one buffer for an externally-hosted
// instrument. Implementations are supplied by the caller — dawcore does
// not load, sandbox, or present UI for third-party plugins (Non-goal).
type ExternalProcessFunc func(noteOns, noteOffs []QueuedNote, output [][]float32, frames int)

// QueuedNote is a pending note event with its sample offset within the
// buffer about to be rendered.
type QueuedNote struct {
	Note         uint8
	Velocity     uint8
	SampleOffset int32
}

// ExternalInstrument adapts a host-supplied render callback to the
// Instrument interface, standing in for a dynamically loaded plugin
// instrument without implementing the loading or UI-embedding machinery
// that would require (Non-goal).
type ExternalInstrument struct {
	process  ExternalProcessFunc
	params   *param.Registry
	isDrum   bool
	noteOns  []QueuedNote
	noteOffs []QueuedNote
}

// NewExternalInstrument wraps process as an Instrument, exposing params as
// its automatable parameter set.
func NewExternalInstrument(process ExternalProcessFunc, params *param.Registry, isDrum bool) *ExternalInstrument {
	if params == nil {
		params = param.NewRegistry()
	}
	return &ExternalInstrument{process: process, params: params, isDrum: isDrum}
}

func (e *ExternalInstrument) QueueNoteOn(note, velocity uint8, sampleOffset int32) {
	e.noteOns = append(e.noteOns, QueuedNote{Note: note, Velocity: velocity, SampleOffset: sampleOffset})
}

func (e *ExternalInstrument) QueueNoteOff(note uint8, sampleOffset int32) {
	e.noteOffs = append(e.noteOffs, QueuedNote{Note: note, SampleOffset: sampleOffset})
}

func (e *ExternalInstrument) AllNotesOff() {
	e.noteOns = e.noteOns[:0]
	e.noteOffs = e.noteOffs[:0]
}

func (e *ExternalInstrument) Process(output [][]float32, frames int) {
	if e.process != nil {
		e.process(e.noteOns, e.noteOffs, output, frames)
	}
	e.noteOns = e.noteOns[:0]
	e.noteOffs = e.noteOffs[:0]
}

func (e *ExternalInstrument) IsDrum() bool { return e.isDrum }

func (e *ExternalInstrument) Params() *param.Registry { return e.params }
