package midifx

import (
	"math"

	"github.com/grainwave/dawcore/pkg/framework/param"
	"github.com/grainwave/dawcore/pkg/midi"
)

// Swing delays every off-beat eighth note to add a shuffle feel. Note-ons
// landing on odd eighth-note subdivisions are pushed later by
// amount * subdivision/3, the classic swing-eighths ratio.
type Swing struct {
	base
	amount *param.Parameter // 0 = straight, 1 = maximum shuffle
}

const paramSwingAmount uint32 = 0

// NewSwing returns a Swing effect defaulted to no swing.
func NewSwing() *Swing {
	s := &Swing{base: newBase("Swing")}
	s.amount = param.New(paramSwingAmount, "Amount").
		ShortName("Swing").Range(0, 1).Default(0).Unit("%").Build()
	s.params.Add(s.amount)
	return s
}

// Process delays odd eighth-note subdivisions by amount*subdivision/3.
func (s *Swing) Process(events []midi.Event, sampleRate, bpm float64, bufferFrames int32) []midi.Event {
	amount := s.amount.GetPlainValue()
	if amount <= 0 || sampleRate <= 0 || bpm <= 0 {
		return events
	}
	subdivision := sampleRate * 60.0 / bpm / 2.0 // eighth note
	if subdivision <= 0 {
		return events
	}

	out := make([]midi.Event, len(events))
	for i, e := range events {
		on, ok := e.(midi.NoteOnEvent)
		if !ok {
			out[i] = e
			continue
		}
		index := int64(math.Floor(float64(on.Offset) / subdivision))
		if index%2 != 0 {
			on.Offset += int32(math.Round(amount * subdivision / 3.0))
		}
		out[i] = on
	}
	return out
}
