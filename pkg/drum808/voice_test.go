package drum808

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestClapHasFourBurstsSpacedSeventeenMilliseconds matches spec §4.4's
// "four ~17ms noise bursts" for the clap voice.
func TestClapHasFourBurstsSpacedSeventeenMilliseconds(t *testing.T) {
	sampleRate := 44100.0
	v := newVoice(sampleRate, 1)
	v.TriggerNote(uint8(Clap), 100)

	require.Len(t, v.clapBurstEnd, 4)

	expectedSpacing := int64(0.017 * sampleRate)
	for i, end := range v.clapBurstEnd {
		want := expectedSpacing * int64(i+1)
		require.InDelta(t, want, end, 1)
	}
}
