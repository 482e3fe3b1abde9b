package midifx

import (
	"github.com/grainwave/dawcore/pkg/framework/param"
	"github.com/grainwave/dawcore/pkg/midi"
)

// Transpose shifts note-on/note-off pitches by a fixed number of semitones.
type Transpose struct {
	base
	semitones *param.Parameter
}

const paramTransposeSemitones uint32 = 0

// NewTranspose returns a Transpose effect with semitones defaulted to 0
// (identity).
func NewTranspose() *Transpose {
	t := &Transpose{base: newBase("Transpose")}
	t.semitones = param.New(paramTransposeSemitones, "Semitones").
		ShortName("Semis").Range(-24, 24).Default(0).Unit("st").Steps(49).Build()
	t.params.Add(t.semitones)
	return t
}

// Process shifts every note-on/note-off's pitch, clamped to [0, 127].
func (t *Transpose) Process(events []midi.Event, sampleRate, bpm float64, bufferFrames int32) []midi.Event {
	semis := int(t.semitones.GetPlainValue())
	if semis == 0 {
		return events
	}
	out := make([]midi.Event, len(events))
	for i, e := range events {
		switch ev := e.(type) {
		case midi.NoteOnEvent:
			ev.NoteNumber = clampNote(int(ev.NoteNumber) + semis)
			out[i] = ev
		case midi.NoteOffEvent:
			ev.NoteNumber = clampNote(int(ev.NoteNumber) + semis)
			out[i] = ev
		default:
			out[i] = e
		}
	}
	return out
}

func clampNote(n int) uint8 {
	if n < 0 {
		return 0
	}
	if n > 127 {
		return 127
	}
	return uint8(n)
}
