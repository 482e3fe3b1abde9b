package timeline

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/grainwave/dawcore/pkg/midi"
)

// AudioClip is a span of recorded or imported audio placed on a track.
// Samples is interleaved by channel; its length must equal
// LengthSamples*Channels (enforced by Validate, not by the constructor,
// since clips are routinely built up sample-by-sample during recording).
type AudioClip struct {
	ID            uuid.UUID
	StartSample   uint64
	LengthSamples uint64
	Channels      uint16
	Samples       []float32
}

// NewAudioClip returns an empty AudioClip positioned at startSample.
func NewAudioClip(startSample uint64, channels uint16) *AudioClip {
	return &AudioClip{ID: uuid.New(), StartSample: startSample, Channels: channels}
}

// Validate checks the samples.len() == length*channels invariant.
func (c *AudioClip) Validate() error {
	want := c.LengthSamples * uint64(c.Channels)
	if uint64(len(c.Samples)) != want {
		return fmt.Errorf("timeline: %w: clip %s has %d samples, want %d (%d frames * %d channels)",
			ErrClipLength, c.ID, len(c.Samples), want, c.LengthSamples, c.Channels)
	}
	return nil
}

// EndSample returns the sample just past the clip's end on the timeline.
func (c *AudioClip) EndSample() uint64 {
	return c.StartSample + c.LengthSamples
}

// MidiClip is a span of MIDI notes placed on a track. Notes are kept sorted
// by StartTick at all times; AddNote/RemoveNote maintain the ordering so
// the scheduler can rely on it without re-sorting per buffer.
type MidiClip struct {
	ID          uuid.UUID
	StartSample uint64
	PPQ         uint16
	Notes       []midi.Note
}

// NewMidiClip returns an empty MidiClip positioned at startSample, default
// PPQ 480.
func NewMidiClip(startSample uint64) *MidiClip {
	return &MidiClip{ID: uuid.New(), StartSample: startSample, PPQ: 480}
}

// AddNote inserts note in StartTick order.
func (c *MidiClip) AddNote(note midi.Note) {
	idx := sort.Search(len(c.Notes), func(i int) bool { return c.Notes[i].StartTick > note.StartTick })
	c.Notes = append(c.Notes, midi.Note{})
	copy(c.Notes[idx+1:], c.Notes[idx:])
	c.Notes[idx] = note
}

// RemoveNote deletes the note at index, preserving order.
func (c *MidiClip) RemoveNote(index int) error {
	if index < 0 || index >= len(c.Notes) {
		return ErrClipNotFound
	}
	c.Notes = append(c.Notes[:index], c.Notes[index+1:]...)
	return nil
}

// EndTick returns the tick at which the clip's last note fully decays, or 0
// for an empty clip.
func (c *MidiClip) EndTick() uint64 {
	var maxEnd uint64
	for _, n := range c.Notes {
		if end := n.EndTick(); end > maxEnd {
			maxEnd = end
		}
	}
	return maxEnd
}

// Window builds the midi.ClipWindow the scheduler needs for sample-accurate
// extraction, given the samples-per-tick conversion for the current
// transport tempo.
func (c *MidiClip) Window(samplesPerTick float64) midi.ClipWindow {
	endSample := c.StartSample
	if endTick := c.EndTick(); endTick > 0 {
		endSample = c.StartSample + uint64(float64(endTick)*samplesPerTick+0.5)
	}
	return midi.ClipWindow{
		StartSample: c.StartSample,
		EndSample:   endSample,
		PPQ:         c.PPQ,
		Notes:       c.Notes,
	}
}
