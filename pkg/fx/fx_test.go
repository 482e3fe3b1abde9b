package fx

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGainUnityIsIdentityOnceSmoothed(t *testing.T) {
	g := NewGain(1) // 1-sample smoothing: settles immediately
	left := []float32{0.5, -0.5, 0.25}
	right := []float32{0.1, 0.2, 0.3}
	wantL := append([]float32{}, left...)
	wantR := append([]float32{}, right...)

	g.ProcessStereo(left, right)

	require.InDeltaSlice(t, wantL, left, 1e-4)
	require.InDeltaSlice(t, wantR, right, 1e-4)
}

func TestGainAttenuatesTowardTarget(t *testing.T) {
	g := NewGain(1)
	g.gainDB.SetPlainValue(-6)
	buf := make([]float32, 256)
	for i := range buf {
		buf[i] = 1.0
	}
	right := make([]float32, 256)
	g.ProcessStereo(buf, right)

	expected := math.Pow(10, -6.0/20.0)
	require.InDelta(t, expected, float64(buf[255]), 0.01)
}

func TestFilterBypassedChainLeavesBufferUnchanged(t *testing.T) {
	chain := NewChain()
	f := NewFilter(44100)
	f.SetBypass(true)
	chain.Add(f)

	left := []float32{0.1, 0.2, 0.3}
	right := []float32{0.4, 0.5, 0.6}
	wantL := append([]float32{}, left...)
	wantR := append([]float32{}, right...)

	chain.ProcessStereo(left, right)

	require.Equal(t, wantL, left)
	require.Equal(t, wantR, right)
}

func TestChainBypassAllSkipsEveryStage(t *testing.T) {
	chain := NewChain()
	chain.Add(NewGain(1))
	chain.SetBypassAll(true)

	left := []float32{1, 1, 1}
	right := []float32{1, 1, 1}
	chain.ProcessStereo(left, right)

	require.Equal(t, []float32{1, 1, 1}, left)
	require.Equal(t, []float32{1, 1, 1}, right)
}

func TestLimiterCapsOutputNearThreshold(t *testing.T) {
	l := NewLimiter(44100)
	l.threshold.SetPlainValue(-6)
	buf := make([]float32, 4096)
	for i := range buf {
		buf[i] = 1.0
	}
	right := make([]float32, 4096)
	l.ProcessStereo(buf, right)

	thresholdLinear := math.Pow(10, -6.0/20.0)
	for _, s := range buf[2048:] {
		require.LessOrEqual(t, math.Abs(float64(s)), thresholdLinear*1.2)
	}
}

func TestReverbAddsEnergyAfterDryTap(t *testing.T) {
	r := NewReverb(44100)
	r.wet.SetPlainValue(1)
	r.dry.SetPlainValue(0)
	// The shortest comb delay is 29.7ms (1309 samples at 44.1kHz), so the
	// buffer must be longer than that for the wet signal to appear.
	left := make([]float32, 4096)
	right := make([]float32, 4096)
	left[0] = 1.0

	r.ProcessStereo(left, right)

	var energy float32
	for _, s := range left[1:] {
		energy += s * s
	}
	require.Greater(t, energy, float32(0))
}
