package drum808

// Kind is one of the 16 fixed drum voices, also used as the voice
// allocator's "note" key so retrigger/steal-oldest falls straight out of
// pkg/framework/voice.Allocator's existing polyphony policy.
type Kind uint8

const (
	Kick Kind = iota
	Rim
	Snare
	Clap
	ClosedHat
	OpenHat
	LowTom
	MidTom
	HighTom
	Crash
	Cowbell
	CongaLow
	CongaMid
	CongaHigh
	Maracas
	Claves

	numKinds = int(Claves) + 1
)

// pitchToKind is the General-MIDI-adjacent drum map spec.md fixes: pitch 36
// is Kick, 38 Snare, 42/46 hats, and so on through the classic 808/909
// layout.
var pitchToKind = map[uint8]Kind{
	36: Kick,
	37: Rim,
	38: Snare,
	39: Clap,
	41: LowTom,
	42: ClosedHat,
	45: MidTom,
	46: OpenHat,
	48: HighTom,
	49: Crash,
	56: Cowbell,
	62: CongaHigh,
	63: CongaLow,
	64: CongaMid,
	70: Maracas,
	75: Claves,
}

// PitchToKind maps an incoming MIDI pitch to a drum kind. ok is false for
// any pitch outside the fixed map.
func PitchToKind(pitch uint8) (kind Kind, ok bool) {
	kind, ok = pitchToKind[pitch]
	return
}

func (k Kind) String() string {
	switch k {
	case Kick:
		return "kick"
	case Rim:
		return "rim"
	case Snare:
		return "snare"
	case Clap:
		return "clap"
	case ClosedHat:
		return "closed_hat"
	case OpenHat:
		return "open_hat"
	case LowTom:
		return "low_tom"
	case MidTom:
		return "mid_tom"
	case HighTom:
		return "high_tom"
	case Crash:
		return "crash"
	case Cowbell:
		return "cowbell"
	case CongaLow:
		return "conga_low"
	case CongaMid:
		return "conga_mid"
	case CongaHigh:
		return "conga_high"
	case Maracas:
		return "maracas"
	case Claves:
		return "claves"
	default:
		return "unknown"
	}
}
