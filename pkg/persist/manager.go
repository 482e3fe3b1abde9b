package persist

import (
	"io"

	"github.com/grainwave/dawcore/pkg/fx"
	"github.com/grainwave/dawcore/pkg/framework/param"
	"github.com/grainwave/dawcore/pkg/midifx"
	"github.com/grainwave/dawcore/pkg/timeline"
	"gopkg.in/yaml.v3"
)

// CustomSaveFunc lets a caller append engine-specific structural state
// beyond the track list — pattern/kit slot assignments, for instance —
// alongside the Timeline snapshot.
type CustomSaveFunc func(w io.Writer) error

// CustomLoadFunc is CustomSaveFunc's counterpart on load.
type CustomLoadFunc func(r io.Reader) error

// MidiFXFactory constructs a fresh midifx.Effect by its Name(), used on
// Load to recreate chain stages before their parameters are restored.
type MidiFXFactory func(name string) midifx.Effect

// AudioFXFactory is MidiFXFactory's counterpart for pkg/fx stages.
type AudioFXFactory func(name string) fx.Effect

// Manager saves and loads a Timeline's structural snapshot, keeping the
// teacher's save/load-function shape (state.Manager's CustomSave/
// CustomLoad hooks) while replacing its binary wire format with
// self-describing YAML.
type Manager struct {
	customSave CustomSaveFunc
	customLoad CustomLoadFunc
}

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{}
}

// SetCustomSaveFunc registers a hook invoked after the Timeline snapshot
// is written.
func (m *Manager) SetCustomSaveFunc(fn CustomSaveFunc) { m.customSave = fn }

// SetCustomLoadFunc registers a hook invoked after the Timeline snapshot
// is restored.
func (m *Manager) SetCustomLoadFunc(fn CustomLoadFunc) { m.customLoad = fn }

// Save serializes tl's structural state to w as YAML, then invokes the
// custom-save hook if one is registered.
func (m *Manager) Save(w io.Writer, tl *timeline.Timeline) error {
	tl.Lock()
	snap := buildSnapshot(tl)
	tl.Unlock()

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(snap); err != nil {
		return err
	}
	if m.customSave != nil {
		return m.customSave(w)
	}
	return nil
}

// Load decodes a Timeline snapshot from r and rebuilds tl's track list,
// transport, and FX chain parameters. Clip sample/note payloads are never
// restored — tracks come back with empty clip lists, per spec. midiFXNew
// and audioFXNew reconstruct chain stages by name before their parameter
// values are applied; either may be nil to skip FX chain restoration.
func (m *Manager) Load(r io.Reader, tl *timeline.Timeline, midiFXNew MidiFXFactory, audioFXNew AudioFXFactory) error {
	dec := yaml.NewDecoder(r)
	var snap Snapshot
	if err := dec.Decode(&snap); err != nil {
		return err
	}

	tl.Lock()
	applySnapshot(tl, snap, midiFXNew, audioFXNew)
	tl.Unlock()

	if m.customLoad != nil {
		return m.customLoad(r)
	}
	return nil
}

func buildSnapshot(tl *timeline.Timeline) Snapshot {
	transport := tl.Transport()
	snap := Snapshot{
		SampleRate: transport.SampleRate,
		Transport: TransportSnapshot{
			State:           transport.State.String(),
			PositionSamples: transport.PositionSample,
			BPM:             transport.BPM,
			TimeSigNum:      transport.TimeSigNum,
			TimeSigDenom:    transport.TimeSigDenom,
			LoopEnabled:     transport.LoopEnabled,
			LoopStart:       transport.LoopStart,
			LoopEnd:         transport.LoopEnd,
		},
	}

	for _, t := range tl.Tracks() {
		ts := TrackSnapshot{
			ID:           t.ID,
			Kind:         t.Kind.String(),
			Name:         t.Name,
			Volume:       t.Volume,
			Pan:          t.Pan,
			Mute:         t.Mute,
			Solo:         t.Solo,
			Armed:        t.Armed,
			InstrumentID: t.InstrumentID,
		}
		for _, c := range t.AudioClips {
			ts.AudioClips = append(ts.AudioClips, AudioClipSnapshot{
				ID: c.ID, StartSample: c.StartSample, LengthSamples: c.LengthSamples, Channels: c.Channels,
			})
		}
		for _, c := range t.MidiClips {
			ts.MidiClips = append(ts.MidiClips, MidiClipSnapshot{
				ID: c.ID, StartSample: c.StartSample, PPQ: c.PPQ, NoteCount: len(c.Notes),
			})
		}
		if t.MidiFX != nil {
			for _, e := range t.MidiFX.Effects() {
				ts.MidiFX = append(ts.MidiFX, snapshotMidiFXEffect(e))
			}
		}
		if t.AudioFX != nil {
			for _, e := range t.AudioFX.Effects() {
				ts.AudioFX = append(ts.AudioFX, snapshotAudioFXEffect(e))
			}
		}
		snap.Tracks = append(snap.Tracks, ts)
	}
	return snap
}

func snapshotMidiFXEffect(e midifx.Effect) EffectSnapshot {
	return EffectSnapshot{Name: e.Name(), Bypassed: e.Bypassed(), Params: snapshotParams(e.Params())}
}

func snapshotAudioFXEffect(e fx.Effect) EffectSnapshot {
	return EffectSnapshot{Name: e.Name(), Bypassed: e.Bypassed(), Params: snapshotParams(e.Params())}
}

func snapshotParams(reg *param.Registry) map[uint32]float64 {
	if reg == nil {
		return nil
	}
	out := make(map[uint32]float64)
	for _, p := range reg.All() {
		out[p.ID] = p.GetPlainValue()
	}
	return out
}

func applyParams(reg *param.Registry, values map[uint32]float64) {
	if reg == nil {
		return
	}
	for id, v := range values {
		if p := reg.Get(id); p != nil {
			p.SetPlainValue(v)
		}
	}
}

func applySnapshot(tl *timeline.Timeline, snap Snapshot, midiFXNew MidiFXFactory, audioFXNew AudioFXFactory) {
	transport := tl.Transport()
	transport.State = timeline.ParseState(snap.Transport.State)
	transport.SampleRate = snap.SampleRate
	transport.PositionSample = snap.Transport.PositionSamples
	transport.SetBPM(snap.Transport.BPM)
	transport.TimeSigNum = snap.Transport.TimeSigNum
	transport.TimeSigDenom = snap.Transport.TimeSigDenom
	transport.SetLoop(snap.Transport.LoopEnabled, snap.Transport.LoopStart, snap.Transport.LoopEnd)

	existing := append([]*timeline.Track(nil), tl.Tracks()...)
	for _, t := range existing {
		_ = tl.RemoveTrack(t.ID)
	}

	for _, ts := range snap.Tracks {
		track := timeline.NewTrack(timeline.ParseKind(ts.Kind), ts.Name)
		track.ID = ts.ID
		track.Volume = ts.Volume
		track.Pan = ts.Pan
		track.Mute = ts.Mute
		track.Solo = ts.Solo
		track.Armed = ts.Armed
		track.InstrumentID = ts.InstrumentID

		if midiFXNew != nil {
			for _, es := range ts.MidiFX {
				if eff := midiFXNew(es.Name); eff != nil {
					applyParams(eff.Params(), es.Params)
					eff.SetBypass(es.Bypassed)
					_ = track.MidiFX.Add(eff)
				}
			}
		}
		if audioFXNew != nil {
			for _, es := range ts.AudioFX {
				if eff := audioFXNew(es.Name); eff != nil {
					applyParams(eff.Params(), es.Params)
					eff.SetBypass(es.Bypassed)
					track.AudioFX.Add(eff)
				}
			}
		}

		tl.AddTrack(track)
	}
}
