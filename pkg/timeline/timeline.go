package timeline

import (
	"sync"

	"github.com/google/uuid"
)

// Timeline is the DAW session: an ordered list of tracks and the shared
// Transport. A single mutex serializes all structural mutation; the render
// thread only ever TryLocks it (see engine.Engine.Render) so a control-
// thread edit in progress never stalls audio — it just renders the
// previous snapshot for one more buffer.
type Timeline struct {
	mu        sync.Mutex
	tracks    []*Track
	transport *Transport
}

// New returns an empty Timeline with a fresh Transport at the given sample
// rate.
func New(sampleRate uint32) *Timeline {
	return &Timeline{transport: NewTransport(sampleRate)}
}

// Lock acquires the structural lock unconditionally. Only the control
// thread should call this.
func (tl *Timeline) Lock() {
	tl.mu.Lock()
}

// Unlock releases the structural lock.
func (tl *Timeline) Unlock() {
	tl.mu.Unlock()
}

// TryLock attempts to acquire the structural lock without blocking. The
// render thread uses this exclusively.
func (tl *Timeline) TryLock() bool {
	return tl.mu.TryLock()
}

// Transport returns the shared Transport. Callers must hold the lock (or be
// the render thread, which only reads it after a successful TryLock).
func (tl *Timeline) Transport() *Transport {
	return tl.transport
}

// Tracks returns the tracks in their current order. Callers must hold the
// lock.
func (tl *Timeline) Tracks() []*Track {
	return tl.tracks
}

// AddTrack appends track to the timeline. Caller must hold the lock.
func (tl *Timeline) AddTrack(t *Track) {
	tl.tracks = append(tl.tracks, t)
}

// RemoveTrack deletes the track with the given id. Caller must hold the
// lock.
func (tl *Timeline) RemoveTrack(id uuid.UUID) error {
	for i, t := range tl.tracks {
		if t.ID == id {
			tl.tracks = append(tl.tracks[:i], tl.tracks[i+1:]...)
			return nil
		}
	}
	return ErrTrackNotFound
}

// FindTrack looks up a track by id. Caller must hold the lock.
func (tl *Timeline) FindTrack(id uuid.UUID) (*Track, error) {
	for _, t := range tl.tracks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, ErrTrackNotFound
}

// AnySolo reports whether any track currently has Solo engaged, which
// changes mute discipline for every other track during mixdown.
func (tl *Timeline) AnySolo() bool {
	for _, t := range tl.tracks {
		if t.Solo {
			return true
		}
	}
	return false
}

// Audible reports whether t should be heard given the timeline's current
// solo state: muted tracks are never audible; with no track soloed, every
// unmuted track is audible; with at least one track soloed, only soloed
// tracks are audible.
func (tl *Timeline) Audible(t *Track) bool {
	if t.Mute {
		return false
	}
	if tl.AnySolo() {
		return t.Solo
	}
	return true
}
