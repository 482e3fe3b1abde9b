package midifx

import (
	"github.com/grainwave/dawcore/pkg/framework/param"
	"github.com/grainwave/dawcore/pkg/midi"
)

// Harmonizer adds one or two parallel voices above/below each played note,
// at configurable semitone intervals, passing the original note through
// untouched.
type Harmonizer struct {
	base
	interval1 *param.Parameter // semitones, 0 disables the voice
	interval2 *param.Parameter
}

const (
	paramHarmonizerInterval1 uint32 = 0
	paramHarmonizerInterval2 uint32 = 1
)

// NewHarmonizer returns a Harmonizer defaulted to a major third above
// (interval1=4) with the second voice disabled.
func NewHarmonizer() *Harmonizer {
	h := &Harmonizer{base: newBase("Harmonizer")}
	h.interval1 = param.New(paramHarmonizerInterval1, "Interval1").
		ShortName("Int1").Range(-24, 24).Default(4).Unit("st").Steps(49).Build()
	h.interval2 = param.New(paramHarmonizerInterval2, "Interval2").
		ShortName("Int2").Range(-24, 24).Default(0).Unit("st").Steps(49).Build()
	h.params.Add(h.interval1, h.interval2)
	return h
}

// Process appends a transposed copy of every note-on/note-off for each
// non-zero interval, alongside the original.
func (h *Harmonizer) Process(events []midi.Event, sampleRate, bpm float64, bufferFrames int32) []midi.Event {
	intervals := make([]int, 0, 2)
	if v := int(h.interval1.GetPlainValue()); v != 0 {
		intervals = append(intervals, v)
	}
	if v := int(h.interval2.GetPlainValue()); v != 0 {
		intervals = append(intervals, v)
	}
	if len(intervals) == 0 {
		return events
	}

	out := make([]midi.Event, 0, len(events)*(1+len(intervals)))
	for _, e := range events {
		out = append(out, e)
		switch ev := e.(type) {
		case midi.NoteOnEvent:
			for _, iv := range intervals {
				copyEv := ev
				copyEv.NoteNumber = clampNote(int(ev.NoteNumber) + iv)
				out = append(out, copyEv)
			}
		case midi.NoteOffEvent:
			for _, iv := range intervals {
				copyEv := ev
				copyEv.NoteNumber = clampNote(int(ev.NoteNumber) + iv)
				out = append(out, copyEv)
			}
		}
	}
	return out
}
