package midifx

import "errors"

var (
	// ErrChainFull is returned by Chain.Add once MaxChainLength stages are
	// already present.
	ErrChainFull = errors.New("midifx: chain already holds the maximum number of effects")
	// ErrEffectIndex is returned by Chain.Remove for an out-of-range index.
	ErrEffectIndex = errors.New("midifx: effect index out of range")
)
