package sapex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sapex-sim/pathsim/sim"
)

func TestSelector_PicksLowerCompositeScoreOverFewerHops(t *testing.T) {
	cfg := sim.DefaultAlgoConfig()
	s := NewSelector(nil, cfg)

	shortButLossy := []string{"r1", "r2"}
	longerButClean := []string{"r1", "r3", "r4"}
	s.RegisterPath("a", "b", shortButLossy)
	s.RegisterPath("a", "b", longerButClean)

	// Feed enough outcomes that loss rate dominates the shorter path's score.
	for i := 0; i < 10; i++ {
		s.UpdatePathFeedback(shortButLossy, 10, i%2 == 0, 1000)
		s.UpdatePathFeedback(longerButClean, 12, false, 1000)
	}

	chosen, err := s.SelectPath("a", "b")
	require.NoError(t, err)
	assert.Equal(t, longerButClean, chosen)
}

func TestSelector_SkipsUnavailablePaths(t *testing.T) {
	cfg := sim.DefaultAlgoConfig()
	s := NewSelector(nil, cfg)
	s.RegisterPath("a", "b", []string{"r1"})
	s.RegisterPath("a", "b", []string{"r2"})
	s.MarkPathDown([]string{"r1"})

	chosen, err := s.SelectPath("a", "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"r2"}, chosen)
}

func TestSelector_NoAvailablePathErrors(t *testing.T) {
	s := NewSelector(nil, sim.DefaultAlgoConfig())
	_, err := s.SelectPath("a", "b")
	assert.Error(t, err)
}

func TestSelector_UMCCSuppressesSharedBottleneckCandidate(t *testing.T) {
	// This is engineered so the plain best-scoring candidate (A) is also the
	// one UMCC suppresses, because its cluster's representative (B, picked
	// by lowest avg latency) scores worse overall once loss is weighed in.
	// If suppression were a no-op, A would win; if it worked but scoring
	// afterward ignored the representative's own weaknesses, B would win.
	// Only a correct suppress-then-score pipeline picks clean.
	cfg := sim.DefaultAlgoConfig()
	cfg.UMCCEnabled = true
	cfg.UMCCRecentWindow = 2
	cfg.UMCCBaselineWindow = 4
	cfg.AlphaLossWeight = 100
	cfg.BetaThroughputWeight = 0
	s := NewSelector(nil, cfg)

	bestRawScore := []string{"r1", "bottleneck", "r2"} // A: higher latency, zero loss
	lowestLatency := []string{"r3", "bottleneck", "r4"} // B: lower latency, high loss
	clean := []string{"r5", "r6"}
	s.RegisterPath("a", "b", bestRawScore)
	s.RegisterPath("a", "b", lowestLatency)
	s.RegisterPath("a", "b", clean)

	degradedThroughput := []float64{100, 100, 100, 100, 10, 10}

	a := s.ensureCandidate(bestRawScore)
	for _, v := range []float64{28, 28, 28, 28, 50, 50} { // recent(50) > 1.5*baseline(28)
		a.RecordLatency(v)
	}
	for _, v := range degradedThroughput {
		a.RecordThroughput(v)
	}
	for i := 0; i < 4; i++ {
		a.RecordOutcome(true) // no loss
	}

	b := s.ensureCandidate(lowestLatency)
	for _, v := range []float64{8, 8, 8, 8, 14, 14} { // recent(14) > 1.5*baseline(8), but avg stays lower than A
		b.RecordLatency(v)
	}
	for _, v := range degradedThroughput {
		b.RecordThroughput(v)
	}
	for i := 0; i < 4; i++ {
		b.RecordOutcome(i%2 == 0) // 50% loss
	}

	s.ensureCandidate(clean).RecordLatency(45)

	require.InDelta(t, 35.33, a.AvgLatencyMs(), 0.1)
	require.InDelta(t, 10.0, b.AvgLatencyMs(), 0.1)
	require.Less(t, b.AvgLatencyMs(), a.AvgLatencyMs(), "B must be the cluster representative by latency")
	require.Less(t, a.AvgLatencyMs()+cfg.AlphaLossWeight*a.LossRate(), b.AvgLatencyMs()+cfg.AlphaLossWeight*b.LossRate(),
		"A must have the better raw composite score despite losing the representative pick")

	chosen, err := s.SelectPath("a", "b")
	require.NoError(t, err)
	assert.Equal(t, clean, chosen, "A scores best raw but is suppressed as a cluster duplicate; B survives but scores worse than clean")
}
