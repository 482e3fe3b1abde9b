// Package engine implements the playback engine of spec §4.1: the
// render-thread callback invoked once per sound-card pull, turning a
// Timeline's tracks, clips, and instruments into one buffer of
// interleaved audio. Render-path scratch buffers are pre-allocated at
// construction and resized only on an explicit SetBlockSize call,
// following the teacher's pkg/framework/process.Context pattern of
// never allocating on the hot path.
package engine

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/grainwave/dawcore/internal/enginelog"
	"github.com/grainwave/dawcore/pkg/dsp/mix"
	"github.com/grainwave/dawcore/pkg/fx"
	"github.com/grainwave/dawcore/pkg/instrument"
	"github.com/grainwave/dawcore/pkg/midi"
	"github.com/grainwave/dawcore/pkg/timeline"
)

// Config configures an Engine at construction.
type Config struct {
	// MaxBlockSize bounds the largest frame count Render will ever be
	// asked to fill; scratch buffers are sized to it up front.
	MaxBlockSize int
	// Log receives render-thread diagnostics (instrument panics) through
	// its bounded non-blocking channel. A default (capacity 256, emitting
	// to logrus.StandardLogger()) is created when nil.
	Log *enginelog.Logger
}

// Engine is the render-thread entry point: one per Timeline/instrument
// registry pair, with a master effect chain applied after every track's
// contribution is summed.
type Engine struct {
	tl          *timeline.Timeline
	instruments *instrument.Registry
	masterFX    *fx.Chain
	scheduler   *midi.Scheduler
	log         *enginelog.Logger

	maxBlockSize int

	instMix  []float32 // mono, accumulates every instrument's downmixed output
	instOutL []float32 // reused per-instrument stereo render target
	instOutR []float32
	monoTmp  []float32 // scratch for the stereo->mono downmix of one instrument
	eventBuf []midi.Event
	masterL  []float32
	masterR  []float32
	audioMix []float32 // mono, accumulates every audio track's post-AudioFX contribution
	trackBuf []float32 // scratch for one audio track's raw (pre-AudioFX) samples
	trackL   []float32 // scratch for one audio track's AudioFX input/output, left
	trackR   []float32 // scratch for one audio track's AudioFX input/output, right
}

// New constructs an Engine rendering tl through instruments, with
// masterFX applied to the final mix. masterFX may be nil (no master
// processing).
func New(tl *timeline.Timeline, instruments *instrument.Registry, masterFX *fx.Chain, cfg Config) *Engine {
	log := cfg.Log
	if log == nil {
		log = enginelog.New(nil, enginelog.DefaultCapacity)
	}
	e := &Engine{
		tl:          tl,
		instruments: instruments,
		masterFX:    masterFX,
		scheduler:   midi.NewScheduler(),
		log:         log,
	}
	e.SetBlockSize(cfg.MaxBlockSize)
	return e
}

// SetBlockSize re-allocates render-path scratch to hold up to
// maxBlockSize frames. Never call this from the render thread itself.
func (e *Engine) SetBlockSize(maxBlockSize int) {
	if maxBlockSize < 1 {
		maxBlockSize = 1
	}
	e.maxBlockSize = maxBlockSize
	e.instMix = make([]float32, maxBlockSize)
	e.instOutL = make([]float32, maxBlockSize)
	e.instOutR = make([]float32, maxBlockSize)
	e.monoTmp = make([]float32, maxBlockSize)
	e.masterL = make([]float32, maxBlockSize)
	e.masterR = make([]float32, maxBlockSize)
	e.audioMix = make([]float32, maxBlockSize)
	e.trackBuf = make([]float32, maxBlockSize)
	e.trackL = make([]float32, maxBlockSize)
	e.trackR = make([]float32, maxBlockSize)
	e.eventBuf = make([]midi.Event, 0, 256)
}

// QueueLiveNoteOn queues a note-on directly onto instrumentID, bypassing
// clips and MIDI-FX entirely — the keyboard-preview path spec §4.1 step 1
// requires to keep working while the transport isn't playing.
func (e *Engine) QueueLiveNoteOn(instrumentID uuid.UUID, note, velocity uint8) {
	if inst, err := e.instruments.Get(instrumentID); err == nil {
		inst.QueueNoteOn(note, velocity, 0)
	}
}

// QueueLiveNoteOff is QueueLiveNoteOn's counterpart.
func (e *Engine) QueueLiveNoteOff(instrumentID uuid.UUID, note uint8) {
	if inst, err := e.instruments.Get(instrumentID); err == nil {
		inst.QueueNoteOff(note, 0)
	}
}

// Render fills output — one slice per channel, each at least frames long
// — with the next buffer of audio. It never returns an error: lock
// contention zeros the buffer, and a panicking instrument is logged and
// rendered as silence for that buffer only, per spec §4.1's failure
// semantics.
func (e *Engine) Render(output [][]float32, frames int) {
	if frames > e.maxBlockSize {
		frames = e.maxBlockSize
	}
	for ch := range output {
		if len(output[ch]) < frames {
			frames = len(output[ch])
		}
	}
	clearOutput(output, frames)
	if frames == 0 || len(output) == 0 {
		return
	}

	if !e.tl.TryLock() {
		return
	}
	defer e.tl.Unlock()

	transport := e.tl.Transport()
	playing := transport.State == timeline.Playing || transport.State == timeline.Recording

	sampleRate := float64(transport.SampleRate)
	bpm := transport.BPM
	loopEnabled := transport.LoopEnabled
	loopStart := transport.LoopStart
	loopEnd := transport.LoopEnd
	pos := transport.PositionSample

	var duration uint64
	if playing {
		duration = e.duration()
	}

	straddles := playing && loopEnabled && pos < loopEnd && pos+uint64(frames) > loopEnd

	instMix := e.instMix[:frames]
	for i := range instMix {
		instMix[i] = 0
	}

	for _, track := range e.tl.Tracks() {
		if track.Kind != timeline.KindMidi || track.Mute {
			continue
		}
		inst, err := e.instruments.Get(track.InstrumentID)
		if err != nil {
			continue
		}

		if playing {
			e.queueTrackEvents(track, inst, pos, frames, sampleRate, bpm, straddles, loopStart, loopEnd)
		}

		e.renderInstrument(inst, track, frames)

		outL := e.instOutL[:frames]
		outR := e.instOutR[:frames]
		if track.AudioFX != nil {
			track.AudioFX.ProcessStereo(outL, outR)
		}
		monoTmp := e.monoTmp[:frames]
		mix.SumWeighted([][]float32{outL, outR}, []float32{0.5, 0.5}, monoTmp)
		for i, v := range monoTmp {
			instMix[i] += v
		}
	}

	var newPos uint64
	if playing {
		newPos = e.mixAudioAndWrite(output, frames, instMix, pos, loopEnabled, loopStart, loopEnd, straddles)
	} else {
		for i := 0; i < frames; i++ {
			for ch := range output {
				output[ch][i] = instMix[i]
			}
		}
	}

	if playing && !loopEnabled && newPos >= duration {
		transport.State = timeline.Stopped
	}

	e.applyMasterFX(output, frames)

	if playing {
		transport.PositionSample = newPos
	}
}

// queueTrackEvents implements spec §4.1 steps 3-5 for one MIDI track: the
// loop-straddle choke, raw event collection from every clip (twice, with
// the appropriate base offsets, when the buffer straddles the loop), the
// MIDI-FX chain, and clamped dispatch onto the instrument.
func (e *Engine) queueTrackEvents(track *timeline.Track, inst instrument.Instrument, pos uint64, frames int, sampleRate, bpm float64, straddles bool, loopStart, loopEnd uint64) {
	if straddles && !inst.IsDrum() {
		inst.AllNotesOff()
	}

	e.eventBuf = e.eventBuf[:0]
	for _, clip := range track.MidiClips {
		spt := midi.SamplesPerTick(sampleRate, bpm, clip.PPQ)
		window := clip.Window(spt)
		if straddles {
			firstLen := loopEnd - pos
			e.eventBuf = e.scheduler.Extract(window, pos, firstLen, spt, 0, e.eventBuf)
			secondLen := uint64(frames) - firstLen
			e.eventBuf = e.scheduler.Extract(window, loopStart, secondLen, spt, int32(firstLen), e.eventBuf)
		} else {
			e.eventBuf = e.scheduler.Extract(window, pos, uint64(frames), spt, 0, e.eventBuf)
		}
	}

	events := track.MidiFX.Process(e.eventBuf, sampleRate, bpm, int32(frames))
	for _, ev := range events {
		switch v := ev.(type) {
		case midi.NoteOnEvent:
			off := v.Offset
			if off < 1 {
				off = 1
			}
			inst.QueueNoteOn(v.NoteNumber, v.Velocity, off)
		case midi.NoteOffEvent:
			inst.QueueNoteOff(v.NoteNumber, v.Offset)
		}
	}
}

// renderInstrument calls inst.Process, recovering from a panic (an
// external plugin's failure) by logging it and leaving the instrument's
// scratch output silent for this buffer.
func (e *Engine) renderInstrument(inst instrument.Instrument, track *timeline.Track, frames int) {
	outL := e.instOutL[:frames]
	outR := e.instOutR[:frames]
	for i := range outL {
		outL[i] = 0
		outR[i] = 0
	}

	defer func() {
		if r := recover(); r != nil {
			e.log.Error(logrus.Fields{"track_id": track.ID, "panic": r},
				"instrument process panicked, rendering silence")
			for i := range outL {
				outL[i] = 0
				outR[i] = 0
			}
		}
	}()
	inst.Process([][]float32{outL, outR}, frames)
}

// mixAudioAndWrite implements spec §4.1 steps 7-8: per-frame loop-wrapped
// audio-clip downmix (respecting mute/solo, and each track's own AudioFX
// chain before it joins the mix), instrument-mix addition, and replication
// across every output channel. Returns the advanced position.
func (e *Engine) mixAudioAndWrite(output [][]float32, frames int, instMix []float32, pos uint64, loopEnabled bool, loopStart, loopEnd uint64, straddles bool) uint64 {
	var wrapLen uint64
	if straddles {
		wrapLen = uint64(frames) - (loopEnd - pos)
	}

	audioMix := e.audioMix[:frames]
	for i := range audioMix {
		audioMix[i] = 0
	}

	trackBuf := e.trackBuf[:frames]
	trackL := e.trackL[:frames]
	trackR := e.trackR[:frames]

	for _, track := range e.tl.Tracks() {
		if track.Kind != timeline.KindAudio || !e.tl.Audible(track) {
			continue
		}
		clips := track.AudioClipsOverlapping(pos, uint64(frames))
		var wrapped []*timeline.AudioClip
		if straddles {
			wrapped = track.AudioClipsOverlapping(loopStart, wrapLen)
		}
		if len(clips) == 0 && len(wrapped) == 0 {
			continue
		}

		framePos := pos
		for i := 0; i < frames; i++ {
			effPos := framePos
			if loopEnabled && effPos >= loopEnd {
				effPos = loopStart + (effPos - loopEnd)
			}

			var sample float32
			if s, ok := audioSampleAt(clips, effPos); ok {
				sample += s
			}
			if s, ok := audioSampleAt(wrapped, effPos); ok {
				sample += s
			}
			trackBuf[i] = sample

			framePos++
			if loopEnabled && framePos >= loopEnd {
				framePos = loopStart + (framePos - loopEnd)
			}
		}

		copy(trackL, trackBuf)
		copy(trackR, trackBuf)
		if track.AudioFX != nil {
			track.AudioFX.ProcessStereo(trackL, trackR)
		}
		for i := 0; i < frames; i++ {
			audioMix[i] += (trackL[i] + trackR[i]) * 0.5
		}
	}

	framePos := pos
	for i := 0; i < frames; i++ {
		for ch := range output {
			output[ch][i] = audioMix[i] + instMix[i]
		}

		framePos++
		if loopEnabled && framePos >= loopEnd {
			framePos = loopStart + (framePos - loopEnd)
		}
	}
	return framePos
}

// applyMasterFX implements spec §4.1 step 9: down-mix the (already
// mono-collapsed, per-channel-replicated) output to a mono scratch pair,
// run it through the master chain, and write the result back to every
// channel. The chain is fed identical left/right content since its
// Effect interface requires a stereo pair; every stage's per-channel
// state evolves identically from there, so the two outputs stay equal.
func (e *Engine) applyMasterFX(output [][]float32, frames int) {
	if e.masterFX == nil || len(output) == 0 {
		return
	}
	masterL := e.masterL[:frames]
	masterR := e.masterR[:frames]
	copy(masterL, output[0][:frames])
	copy(masterR, output[0][:frames])

	e.masterFX.ProcessStereo(masterL, masterR)

	for i := 0; i < frames; i++ {
		v := (masterL[i] + masterR[i]) * 0.5
		for ch := range output {
			output[ch][i] = v
		}
	}
}

// duration derives the transport's end-of-timeline position: the furthest
// EndSample across every audio clip and every MIDI clip's computed
// window, using the current tempo. There is no stored duration field —
// it is always recomputed from the clips actually present.
func (e *Engine) duration() uint64 {
	transport := e.tl.Transport()
	sampleRate := float64(transport.SampleRate)
	bpm := transport.BPM

	sptByPPQ := make(map[uint16]float64)
	var maxEnd uint64
	for _, track := range e.tl.Tracks() {
		for _, c := range track.AudioClips {
			if end := c.EndSample(); end > maxEnd {
				maxEnd = end
			}
		}
		for _, c := range track.MidiClips {
			spt, ok := sptByPPQ[c.PPQ]
			if !ok {
				spt = midi.SamplesPerTick(sampleRate, bpm, c.PPQ)
				sptByPPQ[c.PPQ] = spt
			}
			if end := c.Window(spt).EndSample; end > maxEnd {
				maxEnd = end
			}
		}
	}
	return maxEnd
}

func audioSampleAt(clips []*timeline.AudioClip, pos uint64) (float32, bool) {
	for _, c := range clips {
		if pos < c.StartSample || pos >= c.EndSample() {
			continue
		}
		channels := int(c.Channels)
		if channels == 0 {
			return 0, true
		}
		base := int(pos-c.StartSample) * channels
		if base+channels > len(c.Samples) {
			return 0, true
		}
		var sum float32
		for ch := 0; ch < channels; ch++ {
			sum += c.Samples[base+ch]
		}
		return sum / float32(channels), true
	}
	return 0, false
}

func clearOutput(output [][]float32, frames int) {
	for ch := range output {
		n := frames
		if len(output[ch]) < n {
			n = len(output[ch])
		}
		for i := 0; i < n; i++ {
			output[ch][i] = 0
		}
	}
}
