package midi

// Note is a clip-local MIDI note, sorted by StartTick within its owning clip.
type Note struct {
	Pitch         uint8
	Velocity      uint8
	StartTick     uint64
	DurationTicks uint64
}

// EndTick returns the tick at which the note's duration elapses.
func (n Note) EndTick() uint64 {
	return n.StartTick + n.DurationTicks
}

// ClipWindow describes the portion of a MidiClip the scheduler needs to
// extract events from: its absolute sample span and its sorted notes.
type ClipWindow struct {
	StartSample uint64
	EndSample   uint64
	PPQ         uint16
	Notes       []Note
}

// Scheduler converts clip-local notes into sample-accurate Events for one
// render buffer, per spec §4.2.
type Scheduler struct{}

// NewScheduler creates a MIDI event scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// velocityNoteOff is the fixed velocity spec.md assigns to derived note-offs.
const velocityNoteOff uint8 = 64

// Extract appends events derived from clip in the window [bufferStart,
// bufferStart+bufferLen) to out, offsetting each event's sample offset by
// baseOffset. samplesPerTick must be sample_rate*60/(bpm*ppq).
//
// Note-offs are emitted regardless of whether the matching note-on fell in
// an earlier buffer — voice allocators are responsible for ignoring
// unmatched note-offs.
func (s *Scheduler) Extract(clip ClipWindow, bufferStart, bufferLen uint64, samplesPerTick float64, baseOffset int32, out []Event) []Event {
	bufferEnd := bufferStart + bufferLen
	if clip.EndSample <= bufferStart || clip.StartSample >= bufferEnd {
		return out
	}

	for _, note := range clip.Notes {
		noteOnSample := clip.StartSample + roundTicks(note.StartTick, samplesPerTick)
		noteOffSample := noteOnSample + roundTicks(note.DurationTicks, samplesPerTick)

		if noteOnSample >= bufferStart && noteOnSample < bufferEnd {
			out = append(out, NoteOnEvent{
				BaseEvent:  BaseEvent{EventChannel: 0, Offset: baseOffset + int32(noteOnSample-bufferStart)},
				NoteNumber: note.Pitch,
				Velocity:   note.Velocity,
			})
		}
		if noteOffSample >= bufferStart && noteOffSample < bufferEnd {
			out = append(out, NoteOffEvent{
				BaseEvent:  BaseEvent{EventChannel: 0, Offset: baseOffset + int32(noteOffSample-bufferStart)},
				NoteNumber: note.Pitch,
				Velocity:   velocityNoteOff,
			})
		}
	}

	return out
}

// SamplesPerTick computes sample_rate*60/(bpm*ppq).
func SamplesPerTick(sampleRate float64, bpm float64, ppq uint16) float64 {
	if bpm <= 0 || ppq == 0 {
		return 0
	}
	return sampleRate * 60.0 / (bpm * float64(ppq))
}

func roundTicks(ticks uint64, samplesPerTick float64) uint64 {
	v := float64(ticks) * samplesPerTick
	return uint64(v + 0.5)
}
