// Command dawcore-demo exercises the playback engine end to end without a
// real sound-card stream (wiring one up is a Non-goal): a render thread
// pulls buffers from an engine.Engine on a ticker standing in for the
// audio callback, a capture thread drains the input monitor's output ring
// on its own ticker, and a control thread drives the transport, while a
// timeout on the shared context stops them all after a fixed run, the way
// the teacher's examples/simplesynth stands a processor up for manual
// exercise. These three and a fourth goroutine draining the engine log are
// coordinated with golang.org/x/sync/errgroup instead of a hand-rolled
// WaitGroup + done-channel, since all four must fail the run together if
// any one of them does.
package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/grainwave/dawcore/internal/enginelog"
	"github.com/grainwave/dawcore/pkg/drum808"
	"github.com/grainwave/dawcore/pkg/engine"
	"github.com/grainwave/dawcore/pkg/fx"
	"github.com/grainwave/dawcore/pkg/instrument"
	"github.com/grainwave/dawcore/pkg/midi"
	"github.com/grainwave/dawcore/pkg/monitor"
	"github.com/grainwave/dawcore/pkg/timeline"
)

const (
	sampleRate   = 44100
	blockFrames  = 512
	runDuration  = 3 * time.Second
	blockPeriod  = time.Second * time.Duration(blockFrames) / sampleRate
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, runDuration)
	defer cancel()

	tl := buildDemoTimeline()
	insts, trackID := buildDemoInstrument(tl)

	master := fx.NewChain()
	master.Add(fx.NewGain(64))

	log := enginelog.New(nil, enginelog.DefaultCapacity)
	eng := engine.New(tl, insts, master, engine.Config{MaxBlockSize: blockFrames * 2, Log: log})
	mon := monitor.New(sampleRate)
	mon.SetMonitorEnabled(true)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return renderLoop(gctx, eng, trackID) })
	g.Go(func() error { return captureLoop(gctx, mon) })
	g.Go(func() error { return controlLoop(gctx, tl) })
	g.Go(func() error { log.Run(gctx); return nil }) // control thread drains render-thread log entries

	if err := g.Wait(); err != nil && err != context.DeadlineExceeded && err != context.Canceled {
		fmt.Println("dawcore-demo: run ended with error:", err)
		return
	}
	fmt.Println("dawcore-demo: run complete")
}

// renderLoop stands in for the sound-card pull callback: one engine.Render
// per tick. Its output is not passed to the monitor; the capture loop
// drains the monitor independently.
func renderLoop(ctx context.Context, eng *engine.Engine, trackID uuid.UUID) error {
	ticker := time.NewTicker(blockPeriod)
	defer ticker.Stop()

	left := make([]float32, blockFrames)
	right := make([]float32, blockFrames)
	output := [][]float32{left, right}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			eng.Render(output, blockFrames)
		}
	}
}

// captureLoop stands in for a second input stream draining the monitor's
// write-ahead output ring on its own cadence.
func captureLoop(ctx context.Context, mon *monitor.Monitor) error {
	ticker := time.NewTicker(blockPeriod)
	defer ticker.Stop()

	out := make([]float32, blockFrames*2) // interleaved stereo
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			mon.ReadMonitorOutput(out)
		}
	}
}

// controlLoop starts playback, lets it run, and toggles looping partway
// through — the kind of structural edit the render thread's try-lock
// discipline exists to absorb without glitching.
func controlLoop(ctx context.Context, tl *timeline.Timeline) error {
	tl.Lock()
	tl.Transport().State = timeline.Playing
	tl.Unlock()

	select {
	case <-ctx.Done():
		return nil
	case <-time.After(runDuration / 2):
	}

	tl.Lock()
	tl.Transport().SetLoop(true, 0, sampleRate*2)
	tl.Unlock()

	<-ctx.Done()
	return nil
}

func buildDemoTimeline() *timeline.Timeline {
	tl := timeline.New(sampleRate)
	tl.Transport().SetBPM(128)
	return tl
}

func buildDemoInstrument(tl *timeline.Timeline) (*instrument.Registry, uuid.UUID) {
	track := timeline.NewTrack(timeline.KindMidi, "Drums")

	clip := timeline.NewMidiClip(0)
	for i, pitch := range []uint8{36, 42, 38, 42} {
		start := uint64(i) * 120
		clip.AddNote(midi.Note{Pitch: pitch, Velocity: 110, StartTick: start, DurationTicks: 60})
	}
	track.AddMidiClip(clip)

	kick := drum808.New(sampleRate, 1)
	track.InstrumentID = uuid.New()
	tl.AddTrack(track)

	insts := instrument.NewRegistry()
	insts.Register(track.InstrumentID, kick)
	return insts, track.InstrumentID
}
