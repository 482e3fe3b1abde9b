// Package timeline models the DAW's session state: the Transport, the
// ordered list of Tracks, and the audio/MIDI clips each track owns.
//
// Mutation is serialized by Timeline's single lock; the render thread only
// ever try-locks it (see engine.Engine.Render), so control-thread edits
// never block audio.
package timeline

import "fmt"

// State is the transport's playback state.
type State int

const (
	Stopped State = iota
	Playing
	Recording
	Paused
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Recording:
		return "recording"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}

// ParseState parses a State's String() representation, defaulting to
// Stopped for any unrecognized value.
func ParseState(s string) State {
	switch s {
	case "playing":
		return Playing
	case "recording":
		return Recording
	case "paused":
		return Paused
	default:
		return Stopped
	}
}

// Transport holds process-wide playback state. It is owned exclusively by
// the Timeline that embeds it.
type Transport struct {
	State          State
	PositionSample uint64
	SampleRate     uint32
	BPM            float64
	TimeSigNum     uint8
	TimeSigDenom   uint8
	LoopEnabled    bool
	LoopStart      uint64
	LoopEnd        uint64
}

// MinBPM and MaxBPM bound Transport.BPM per spec §3.
const (
	MinBPM = 20.0
	MaxBPM = 300.0
)

// NewTransport returns a Transport with sane defaults: stopped, 120 BPM,
// 4/4, no loop.
func NewTransport(sampleRate uint32) *Transport {
	return &Transport{
		State:        Stopped,
		SampleRate:   sampleRate,
		BPM:          120,
		TimeSigNum:   4,
		TimeSigDenom: 4,
	}
}

// SetBPM clamps to [MinBPM, MaxBPM] per spec invariant.
func (t *Transport) SetBPM(bpm float64) {
	if bpm < MinBPM {
		bpm = MinBPM
	} else if bpm > MaxBPM {
		bpm = MaxBPM
	}
	t.BPM = bpm
}

// SetLoop sets the loop region, enforcing end > start whenever loop is
// enabled. An invalid region (end <= start) disables looping instead of
// panicking — user errors are clamped per spec §7.
func (t *Transport) SetLoop(enabled bool, start, end uint64) {
	if enabled && end <= start {
		t.LoopEnabled = false
		t.LoopStart = 0
		t.LoopEnd = 0
		return
	}
	t.LoopEnabled = enabled
	t.LoopStart = start
	t.LoopEnd = end
}

// Validate reports whether the transport's invariants hold.
func (t *Transport) Validate() error {
	if t.LoopEnabled && t.LoopEnd <= t.LoopStart {
		return fmt.Errorf("timeline: %w: loop_end %d <= loop_start %d", ErrLoopInvariant, t.LoopEnd, t.LoopStart)
	}
	if t.BPM < MinBPM || t.BPM > MaxBPM {
		return fmt.Errorf("timeline: %w: bpm %f out of [%f, %f]", ErrBPMInvariant, t.BPM, MinBPM, MaxBPM)
	}
	return nil
}
