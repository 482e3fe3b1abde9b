package timeline

import (
	"sort"

	"github.com/google/uuid"
	"github.com/grainwave/dawcore/pkg/fx"
	"github.com/grainwave/dawcore/pkg/midifx"
)

// Kind distinguishes what a Track carries and how the engine renders it.
type Kind int

const (
	KindAudio Kind = iota
	KindMidi
	KindMaster
)

func (k Kind) String() string {
	switch k {
	case KindAudio:
		return "audio"
	case KindMidi:
		return "midi"
	case KindMaster:
		return "master"
	default:
		return "unknown"
	}
}

// ParseKind parses a Kind's String() representation, defaulting to
// KindAudio for any unrecognized value.
func ParseKind(s string) Kind {
	switch s {
	case "midi":
		return KindMidi
	case "master":
		return KindMaster
	default:
		return KindAudio
	}
}

// Track is one lane of the timeline: a mixer strip (volume/pan/mute/solo)
// plus the clips, instrument binding, and MIDI-FX chain it owns.
type Track struct {
	ID    uuid.UUID
	Kind  Kind
	Name  string

	Volume float64 // linear gain, 1.0 = unity
	Pan    float64 // -1 (left) to 1 (right)
	Mute   bool
	Solo   bool
	Armed  bool

	AudioClips []*AudioClip
	MidiClips  []*MidiClip

	InstrumentID uuid.UUID // zero value means unset (KindAudio tracks never set this)
	MidiFX       *midifx.Chain
	AudioFX      *fx.Chain
}

// NewTrack returns a Track of the given kind with unity volume, centered
// pan, and empty (non-nil) MIDI-FX and audio-FX chains.
func NewTrack(kind Kind, name string) *Track {
	return &Track{
		ID:      uuid.New(),
		Kind:    kind,
		Name:    name,
		Volume:  1.0,
		MidiFX:  midifx.NewChain(),
		AudioFX: fx.NewChain(),
	}
}

// AddAudioClip inserts clip in StartSample order.
func (t *Track) AddAudioClip(clip *AudioClip) {
	idx := sort.Search(len(t.AudioClips), func(i int) bool { return t.AudioClips[i].StartSample > clip.StartSample })
	t.AudioClips = append(t.AudioClips, nil)
	copy(t.AudioClips[idx+1:], t.AudioClips[idx:])
	t.AudioClips[idx] = clip
}

// RemoveAudioClip deletes the clip with the given id, if present.
func (t *Track) RemoveAudioClip(id uuid.UUID) error {
	for i, c := range t.AudioClips {
		if c.ID == id {
			t.AudioClips = append(t.AudioClips[:i], t.AudioClips[i+1:]...)
			return nil
		}
	}
	return ErrClipNotFound
}

// AddMidiClip inserts clip in StartSample order.
func (t *Track) AddMidiClip(clip *MidiClip) {
	idx := sort.Search(len(t.MidiClips), func(i int) bool { return t.MidiClips[i].StartSample > clip.StartSample })
	t.MidiClips = append(t.MidiClips, nil)
	copy(t.MidiClips[idx+1:], t.MidiClips[idx:])
	t.MidiClips[idx] = clip
}

// RemoveMidiClip deletes the clip with the given id, if present.
func (t *Track) RemoveMidiClip(id uuid.UUID) error {
	for i, c := range t.MidiClips {
		if c.ID == id {
			t.MidiClips = append(t.MidiClips[:i], t.MidiClips[i+1:]...)
			return nil
		}
	}
	return ErrClipNotFound
}

// AudioClipsOverlapping returns every audio clip whose [start, end) span
// intersects [bufferStart, bufferStart+bufferLen).
func (t *Track) AudioClipsOverlapping(bufferStart, bufferLen uint64) []*AudioClip {
	bufferEnd := bufferStart + bufferLen
	var out []*AudioClip
	for _, c := range t.AudioClips {
		if c.EndSample() <= bufferStart || c.StartSample >= bufferEnd {
			continue
		}
		out = append(out, c)
	}
	return out
}

// MidiClipsOverlapping returns every MIDI clip whose window (given the
// current samples-per-tick conversion) intersects
// [bufferStart, bufferStart+bufferLen).
func (t *Track) MidiClipsOverlapping(bufferStart, bufferLen uint64, samplesPerTick float64) []*MidiClip {
	bufferEnd := bufferStart + bufferLen
	var out []*MidiClip
	for _, c := range t.MidiClips {
		w := c.Window(samplesPerTick)
		if w.EndSample <= bufferStart || w.StartSample >= bufferEnd {
			continue
		}
		out = append(out, c)
	}
	return out
}
