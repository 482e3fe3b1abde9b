package midifx

import (
	"fmt"
	"math"

	"github.com/grainwave/dawcore/pkg/framework/param"
	"github.com/grainwave/dawcore/pkg/midi"
)

// gridDivisions enumerates the note values a quantize grid can lock to:
// whole/half/third notes down through 32nds, including the dotted/triplet
// subdivisions (3, 6, 12, 24) a drum programmer actually reaches for.
var gridDivisions = []float64{1, 2, 3, 4, 6, 8, 12, 16, 24, 32}

// Quantize snaps note-on offsets to the nearest grid line, blended by
// strength. Note-offs are left untouched — only attack timing is corrected.
type Quantize struct {
	base
	gridDivision *param.Parameter // one of gridDivisions
	strength     *param.Parameter // 0 = no correction, 1 = full snap
}

const (
	paramQuantizeGrid     uint32 = 0
	paramQuantizeStrength uint32 = 1
)

// NewQuantize returns a Quantize effect defaulted to 1/16th grid, full
// strength.
func NewQuantize() *Quantize {
	q := &Quantize{base: newBase("Quantize")}

	options := make([]param.ChoiceOption, len(gridDivisions))
	for i, d := range gridDivisions {
		options[i] = param.ChoiceOption{Value: d, Name: fmt.Sprintf("1/%g", d)}
	}
	q.gridDivision = param.Choice(paramQuantizeGrid, "Grid", options).
		ShortName("Grid").Default(16).Build()

	q.strength = param.New(paramQuantizeStrength, "Strength").
		ShortName("Strength").Range(0, 1).Default(1).Unit("%").Build()
	q.params.Add(q.gridDivision, q.strength)
	return q
}

// nearestGridDivision snaps a raw parameter read to the closest enumerated
// division — the Parameter type itself only interpolates linearly between
// Min/Max, so a value drifting off the enumerated set (e.g. mid-automation)
// still resolves to a real grid line rather than an arbitrary fraction.
func nearestGridDivision(v float64) float64 {
	best := gridDivisions[0]
	bestDist := math.Abs(v - best)
	for _, d := range gridDivisions[1:] {
		if dist := math.Abs(v - d); dist < bestDist {
			best, bestDist = d, dist
		}
	}
	return best
}

// Process snaps each note-on's sample offset toward the nearest grid line.
func (q *Quantize) Process(events []midi.Event, sampleRate, bpm float64, bufferFrames int32) []midi.Event {
	if sampleRate <= 0 || bpm <= 0 {
		return events
	}
	division := nearestGridDivision(q.gridDivision.GetPlainValue())
	strength := q.strength.GetPlainValue()
	samplesPerBeat := sampleRate * 60.0 / bpm
	grid := 4 * samplesPerBeat / division
	if grid <= 0 {
		return events
	}

	out := make([]midi.Event, len(events))
	for i, e := range events {
		on, ok := e.(midi.NoteOnEvent)
		if !ok {
			out[i] = e
			continue
		}
		offset := float64(on.Offset)
		snapped := math.Round(offset/grid) * grid
		blended := offset + strength*(snapped-offset)
		on.Offset = int32(math.Round(blended))
		out[i] = on
	}
	return out
}
