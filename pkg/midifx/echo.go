package midifx

import (
	"math"
	"sort"

	"github.com/grainwave/dawcore/pkg/framework/param"
	"github.com/grainwave/dawcore/pkg/midi"
)

// echoRepeat is a scheduled repeat of a note-on/note-off pair, in absolute
// sample time on the effect's own running clock.
type echoRepeat struct {
	atSample int64
	onOff    bool // true = note-on, false = note-off
	note     uint8
	velocity uint8
}

// Echo repeats incoming note-ons at a rhythmic interval, decaying velocity
// each repeat until it falls below an audible floor. It keeps its own
// running sample clock across Process calls since repeats routinely outlive
// the buffer that triggered them.
type Echo struct {
	base
	delayBeats *param.Parameter
	feedback   *param.Parameter // 0-1, velocity multiplier per repeat
	decay      *param.Parameter // 0-1, higher = fewer audible repeats

	clock   int64
	pending []echoRepeat
}

const (
	paramEchoDelayBeats uint32 = 0
	paramEchoFeedback   uint32 = 1
	paramEchoDecay      uint32 = 2

	// maxEchoRepeats bounds runaway repeat generation regardless of decay.
	maxEchoRepeats = 8
	// minEchoVelocity is the floor below which a repeat is inaudible and
	// scheduling stops.
	minEchoVelocity = 2.0
)

// NewEcho returns an Echo effect defaulted to a quarter-note delay with
// moderate feedback and decay.
func NewEcho() *Echo {
	e := &Echo{base: newBase("Echo")}
	e.delayBeats = param.New(paramEchoDelayBeats, "Delay").
		ShortName("Delay").Range(0.125, 4).Default(1).Unit("beats").Build()
	e.feedback = param.New(paramEchoFeedback, "Feedback").
		ShortName("FB").Range(0, 0.95).Default(0.5).Build()
	e.decay = param.New(paramEchoDecay, "Decay").
		ShortName("Decay").Range(0, 1).Default(0.5).Build()
	e.params.Add(e.delayBeats, e.feedback, e.decay)
	return e
}

// Process schedules a decaying series of repeats for each incoming note-on
// (and its eventual note-off at the same decaying velocity floor), then
// emits whatever pending repeats fall within the current buffer.
func (e *Echo) Process(events []midi.Event, sampleRate, bpm float64, bufferFrames int32) []midi.Event {
	if sampleRate > 0 && bpm > 0 {
		samplesPerBeat := sampleRate * 60.0 / bpm
		delaySamples := int64(e.delayBeats.GetPlainValue() * samplesPerBeat)
		feedback := e.feedback.GetPlainValue()
		decayFactor := 1.0 - e.decay.GetPlainValue()*0.5

		if delaySamples > 0 {
			for _, ev := range events {
				on, ok := ev.(midi.NoteOnEvent)
				if !ok {
					continue
				}
				vel := float64(on.Velocity)
				base := e.clock + int64(on.Offset)
				for i := 1; i <= maxEchoRepeats; i++ {
					vel *= feedback * decayFactor
					if vel < minEchoVelocity {
						break
					}
					at := base + delaySamples*int64(i)
					e.pending = append(e.pending, echoRepeat{atSample: at, onOff: true, note: on.NoteNumber, velocity: uint8(math.Round(vel))})
					e.pending = append(e.pending, echoRepeat{atSample: at + delaySamples/2, onOff: false, note: on.NoteNumber, velocity: 64})
				}
			}
		}
	}

	windowStart := e.clock
	windowEnd := e.clock + int64(bufferFrames)

	out := make([]midi.Event, len(events))
	copy(out, events)

	remaining := e.pending[:0]
	for _, r := range e.pending {
		if r.atSample >= windowStart && r.atSample < windowEnd {
			offset := int32(r.atSample - windowStart)
			if r.onOff {
				out = append(out, midi.NoteOnEvent{BaseEvent: midi.BaseEvent{Offset: offset}, NoteNumber: r.note, Velocity: r.velocity})
			} else {
				out = append(out, midi.NoteOffEvent{BaseEvent: midi.BaseEvent{Offset: offset}, NoteNumber: r.note, Velocity: r.velocity})
			}
			continue
		}
		remaining = append(remaining, r)
	}
	e.pending = remaining
	e.clock = windowEnd

	sort.SliceStable(out, func(i, j int) bool { return out[i].SampleOffset() < out[j].SampleOffset() })
	return out
}
