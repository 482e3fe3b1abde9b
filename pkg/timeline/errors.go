package timeline

import "errors"

var (
	// ErrLoopInvariant is returned by Validate when loop_end <= loop_start
	// while looping is enabled.
	ErrLoopInvariant = errors.New("loop_end must be greater than loop_start")
	// ErrBPMInvariant is returned by Validate when bpm falls outside
	// [MinBPM, MaxBPM].
	ErrBPMInvariant = errors.New("bpm out of range")
	// ErrClipLength is returned when an AudioClip's sample slice doesn't
	// match length_samples*channels.
	ErrClipLength = errors.New("audio clip sample length mismatch")
	// ErrTrackNotFound is returned by Timeline lookups for an unknown id.
	ErrTrackNotFound = errors.New("track not found")
	// ErrClipNotFound is returned by Track lookups for an unknown clip id.
	ErrClipNotFound = errors.New("clip not found")
)
