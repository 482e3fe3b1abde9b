package midifx

import (
	"math/rand"

	"github.com/grainwave/dawcore/pkg/framework/param"
	"github.com/grainwave/dawcore/pkg/midi"
)

// Chance randomly drops note events. Probability 0 drops every note; 1
// passes every note through unchanged. Because a note-off can arrive in a
// buffer after its note-on was decided, Chance remembers which pitches it
// dropped so the matching note-off is dropped too, keeping the instrument's
// note-on/note-off pairing intact.
type Chance struct {
	base
	probability *param.Parameter
	rng         *rand.Rand
	dropped     map[uint8]bool
}

const paramChanceProbability uint32 = 0

// NewChance returns a Chance effect seeded deterministically from seed,
// defaulted to probability 1 (nothing dropped).
func NewChance(seed int64) *Chance {
	c := &Chance{
		base:    newBase("Chance"),
		rng:     rand.New(rand.NewSource(seed)),
		dropped: make(map[uint8]bool),
	}
	c.probability = param.New(paramChanceProbability, "Probability").
		ShortName("Prob").Range(0, 1).Default(1).Unit("%").Build()
	c.params.Add(c.probability)
	return c
}

// Process keeps each note-on with probability p, dropping it and its
// matching note-off otherwise.
func (c *Chance) Process(events []midi.Event, sampleRate, bpm float64, bufferFrames int32) []midi.Event {
	p := c.probability.GetPlainValue()
	if p >= 1 {
		return events
	}

	out := make([]midi.Event, 0, len(events))
	for _, e := range events {
		switch ev := e.(type) {
		case midi.NoteOnEvent:
			if c.rng.Float64() < p {
				c.dropped[ev.NoteNumber] = false
				out = append(out, ev)
			} else {
				c.dropped[ev.NoteNumber] = true
			}
		case midi.NoteOffEvent:
			drop, tracked := c.dropped[ev.NoteNumber]
			delete(c.dropped, ev.NoteNumber)
			if tracked && drop {
				continue
			}
			out = append(out, ev)
		default:
			out = append(out, e)
		}
	}
	return out
}
