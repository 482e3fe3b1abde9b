// Package persist implements structural Timeline persistence: a
// self-describing, field-name-preserving snapshot that round-trips
// tracks, transport, clip metadata, and FX chain parameters through
// gopkg.in/yaml.v3 — without the raw sample/note payloads spec §6
// excludes from the round-trip.
package persist

import "github.com/google/uuid"

// Snapshot is the structural state of a Timeline, excluding audio sample
// data and MIDI note contents.
type Snapshot struct {
	SampleRate uint32            `yaml:"sample_rate"`
	Transport  TransportSnapshot `yaml:"transport"`
	Tracks     []TrackSnapshot   `yaml:"tracks"`
}

// TransportSnapshot mirrors timeline.Transport's persisted fields.
type TransportSnapshot struct {
	State           string  `yaml:"state"`
	PositionSamples uint64  `yaml:"position_samples"`
	BPM             float64 `yaml:"bpm"`
	TimeSigNum      uint8   `yaml:"time_sig_num"`
	TimeSigDenom    uint8   `yaml:"time_sig_denom"`
	LoopEnabled     bool    `yaml:"loop_enabled"`
	LoopStart       uint64  `yaml:"loop_start"`
	LoopEnd         uint64  `yaml:"loop_end"`
}

// TrackSnapshot mirrors timeline.Track's persisted fields; AudioClips and
// MidiClips carry only clip metadata, never sample/note payloads.
type TrackSnapshot struct {
	ID           uuid.UUID           `yaml:"id"`
	Kind         string              `yaml:"kind"`
	Name         string              `yaml:"name"`
	Volume       float64             `yaml:"volume"`
	Pan          float64             `yaml:"pan"`
	Mute         bool                `yaml:"mute"`
	Solo         bool                `yaml:"solo"`
	Armed        bool                `yaml:"armed"`
	InstrumentID uuid.UUID           `yaml:"instrument_id,omitempty"`
	AudioClips   []AudioClipSnapshot `yaml:"audio_clips,omitempty"`
	MidiClips    []MidiClipSnapshot  `yaml:"midi_clips,omitempty"`
	MidiFX       []EffectSnapshot    `yaml:"midi_fx,omitempty"`
	AudioFX      []EffectSnapshot    `yaml:"audio_fx,omitempty"`
}

// AudioClipSnapshot is an AudioClip's structural metadata: position,
// length, and channel count, never the sample payload.
type AudioClipSnapshot struct {
	ID            uuid.UUID `yaml:"id"`
	StartSample   uint64    `yaml:"start_sample"`
	LengthSamples uint64    `yaml:"length_samples"`
	Channels      uint16    `yaml:"channels"`
}

// MidiClipSnapshot is a MidiClip's structural metadata: position, PPQ,
// and note count, never the note contents.
type MidiClipSnapshot struct {
	ID          uuid.UUID `yaml:"id"`
	StartSample uint64    `yaml:"start_sample"`
	PPQ         uint16    `yaml:"ppq"`
	NoteCount   int       `yaml:"note_count"`
}

// EffectSnapshot is one MIDI-FX or audio-FX chain stage: its name, bypass
// flag, and parameter values keyed by parameter ID.
type EffectSnapshot struct {
	Name     string             `yaml:"name"`
	Bypassed bool               `yaml:"bypassed"`
	Params   map[uint32]float64 `yaml:"params,omitempty"`
}
