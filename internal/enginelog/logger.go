// Package enginelog is the logging path the render and capture threads are
// allowed to use: Debug/Info/Warn/Error enqueue a structured entry onto a
// bounded channel and return immediately, dropping the entry rather than
// ever blocking the calling thread when the channel is full. A goroutine
// started by the control thread drains the channel and emits each entry
// through logrus — the same leveled-severity shape as the teacher's
// pkg/framework/debug.Logger, rebuilt around structured fields instead of
// hand-formatted strings, and moved off the real-time path entirely.
package enginelog

import (
	"context"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Level is an entry's severity, mirroring the teacher's LogLevel enum.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

type entry struct {
	level  Level
	msg    string
	fields logrus.Fields
}

// DefaultCapacity is used when New is given a non-positive capacity.
const DefaultCapacity = 256

// Logger is the real-time-safe front end. Its zero-allocation,
// never-blocks enqueue is the whole point: a render callback that panics
// or hits a degraded path can report it without risking an audio glitch
// on the logging call itself.
type Logger struct {
	entries chan entry
	dropped atomic.Uint64
	out     *logrus.Logger
}

// New returns a Logger backed by out (logrus.StandardLogger() if nil)
// with room for capacity pending entries.
func New(out *logrus.Logger, capacity int) *Logger {
	if out == nil {
		out = logrus.StandardLogger()
	}
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Logger{entries: make(chan entry, capacity), out: out}
}

func (l *Logger) enqueue(level Level, fields logrus.Fields, msg string) {
	select {
	case l.entries <- entry{level: level, msg: msg, fields: fields}:
	default:
		l.dropped.Add(1)
	}
}

// Debug enqueues a debug-level entry.
func (l *Logger) Debug(fields logrus.Fields, msg string) { l.enqueue(LevelDebug, fields, msg) }

// Info enqueues an info-level entry.
func (l *Logger) Info(fields logrus.Fields, msg string) { l.enqueue(LevelInfo, fields, msg) }

// Warn enqueues a warn-level entry.
func (l *Logger) Warn(fields logrus.Fields, msg string) { l.enqueue(LevelWarn, fields, msg) }

// Error enqueues an error-level entry.
func (l *Logger) Error(fields logrus.Fields, msg string) { l.enqueue(LevelError, fields, msg) }

// Dropped reports how many entries have been discarded because the
// channel was full — a control-thread health signal worth surfacing
// alongside monitor.Monitor's own overrun counters.
func (l *Logger) Dropped() uint64 { return l.dropped.Load() }

// Run drains entries and emits them through logrus until ctx is
// canceled, then drains whatever remains before returning. Call this
// once, from the control thread, never from render or capture.
func (l *Logger) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			l.drainRemaining()
			return
		case e := <-l.entries:
			l.emit(e)
		}
	}
}

func (l *Logger) drainRemaining() {
	for {
		select {
		case e := <-l.entries:
			l.emit(e)
		default:
			return
		}
	}
}

func (l *Logger) emit(e entry) {
	le := l.out.WithFields(e.fields)
	switch e.level {
	case LevelDebug:
		le.Debug(e.msg)
	case LevelInfo:
		le.Info(e.msg)
	case LevelWarn:
		le.Warn(e.msg)
	default:
		le.Error(e.msg)
	}
}
