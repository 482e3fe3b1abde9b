// Package instrument defines the capability contract every sound source on
// a MIDI track implements — the built-in drum808/samplekit synths and any
// external plugin instrument alike — plus a registry keyed by instrument
// id, per spec §4 and §6.
package instrument

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/grainwave/dawcore/pkg/framework/param"
	"github.com/grainwave/dawcore/pkg/midi"
)

// ErrUnknownInstrument is returned by Registry.Get for an unregistered id.
var ErrUnknownInstrument = errors.New("instrument: unknown instrument id")

// Instrument is the capability set the render loop dispatches against: it
// queues note events (sample-accurately offset within the next Process
// call) and renders audio into a pre-allocated output buffer.
type Instrument interface {
	// QueueNoteOn schedules a note-on at the given sample offset within the
	// next Process call.
	QueueNoteOn(note, velocity uint8, sampleOffset int32)
	// QueueNoteOff schedules a note-off at the given sample offset within
	// the next Process call. Implementations for which note-off is
	// meaningless (most one-shot drum voices) treat this as a no-op.
	QueueNoteOff(note uint8, sampleOffset int32)
	// AllNotesOff immediately silences every voice, used on transport loop
	// wrap and stop.
	AllNotesOff()
	// Process renders frames worth of audio into output (mono or
	// pre-summed stereo, per the instrument's channel count), consuming
	// and clearing whatever was queued for this buffer.
	Process(output [][]float32, frames int)
	// IsDrum reports whether this instrument is a drum/percussion kit,
	// which changes how MIDI-FX effects like Harmonizer are normally
	// routed (a control-thread concern, not enforced here).
	IsDrum() bool
	// Params returns the instrument's parameter registry for automation
	// and persistence.
	Params() *param.Registry
}

// Registry maps instrument ids to live Instrument instances, under its own
// lock distinct from the Timeline's structural lock — instrument lookup
// happens on the render thread and must never block on control-thread
// track edits.
type Registry struct {
	mu          sync.RWMutex
	instruments map[uuid.UUID]Instrument
}

// NewRegistry returns an empty instrument registry.
func NewRegistry() *Registry {
	return &Registry{instruments: make(map[uuid.UUID]Instrument)}
}

// Register adds or replaces the instrument bound to id.
func (r *Registry) Register(id uuid.UUID, inst Instrument) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.instruments[id] = inst
}

// Unregister removes the instrument bound to id, if any.
func (r *Registry) Unregister(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.instruments, id)
}

// Get looks up the instrument bound to id.
func (r *Registry) Get(id uuid.UUID) (Instrument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inst, ok := r.instruments[id]
	if !ok {
		return nil, ErrUnknownInstrument
	}
	return inst, nil
}

// QueueEvents routes a buffer's worth of MIDI events to inst, dispatching
// note-on/note-off and ignoring everything else (CC routing to parameters
// is a control-thread concern layered above this package).
func QueueEvents(inst Instrument, events []midi.Event) {
	for _, e := range events {
		switch ev := e.(type) {
		case midi.NoteOnEvent:
			inst.QueueNoteOn(ev.NoteNumber, ev.Velocity, ev.SampleOffset())
		case midi.NoteOffEvent:
			inst.QueueNoteOff(ev.NoteNumber, ev.SampleOffset())
		}
	}
}
