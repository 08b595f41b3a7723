package sapex

import (
	"fmt"
	"math"

	"github.com/sapex-sim/pathsim/sim"
)

// Selector is the sapex reference algorithm (SPEC_FULL.md §4): it ranks
// beacon-discovered paths by a composite score of latency, loss rate, and
// throughput, optionally suppressing redundant candidates that UMCC
// determines share a congested bottleneck. It embeds sim.BaseSelector for
// path storage and probe bookkeeping, the same way sim.ShortestPathSelector
// does, so the two algorithms are interchangeable behind sim.PathSelector.
type Selector struct {
	sim.BaseSelector
	cfg        sim.AlgoConfig
	candidates map[string]*PathCandidate
}

// NewSelector constructs a sapex Selector bound to topo and tuned by cfg.
func NewSelector(topo *sim.Topology, cfg sim.AlgoConfig) *Selector {
	return &Selector{
		BaseSelector: sim.NewBaseSelector(topo),
		cfg:          cfg,
		candidates:   make(map[string]*PathCandidate),
	}
}

func (s *Selector) ensureCandidate(path []string) *PathCandidate {
	sig := sim.PathSignature(path)
	c, ok := s.candidates[sig]
	if !ok {
		c = NewPathCandidate(append([]string(nil), path...), s.cfg.CandidateHistoryDepth)
		s.candidates[sig] = c
	}
	return c
}

// UpdateProbeResult folds the measured RTT into the probed path's candidate
// before delegating to BaseSelector's EWMA bookkeeping.
func (s *Selector) UpdateProbeResult(probeID string, rttMs float64) {
	if path, ok := s.PeekProbe(probeID); ok {
		s.ensureCandidate(path).RecordLatency(rttMs)
	}
	s.BaseSelector.UpdateProbeResult(probeID, rttMs)
}

// UpdatePathFeedback folds a data-packet outcome into the path's candidate
// (loss/delivery, and an approximate instantaneous throughput sample on
// success) before delegating to BaseSelector.
func (s *Selector) UpdatePathFeedback(path []string, latencyMs float64, lost bool, sizeBytes int) {
	c := s.ensureCandidate(path)
	c.RecordOutcome(!lost)
	if !lost && latencyMs > 0 {
		mbps := (float64(sizeBytes) * 8 / 1000) / latencyMs
		c.RecordThroughput(mbps)
	}
	s.BaseSelector.UpdatePathFeedback(path, latencyMs, lost, sizeBytes)
}

// SelectPath picks the available candidate with the lowest composite score,
// after optionally suppressing UMCC-detected shared-bottleneck duplicates
// (SPEC_FULL.md §4).
func (s *Selector) SelectPath(src, dst string) ([]string, error) {
	paths := s.Paths(src, dst)
	var available []*PathCandidate
	for _, p := range paths {
		if !s.IsPathAvailable(p) {
			continue
		}
		available = append(available, s.ensureCandidate(p))
	}
	if len(available) == 0 {
		return nil, fmt.Errorf("no available path from %q to %q", src, dst)
	}

	if s.cfg.UMCCEnabled {
		params := UMCCParams{
			RecentWindow:      s.cfg.UMCCRecentWindow,
			BaselineWindow:    s.cfg.UMCCBaselineWindow,
			RTTFactor:         s.cfg.UMCCRTTFactor,
			LossRateThreshold: s.cfg.UMCCLossRateThreshold,
			ThroughputFactor:  s.cfg.UMCCThroughputFactor,
		}
		var congested []*PathCandidate
		for _, c := range available {
			if IsCongested(c, params) {
				congested = append(congested, c)
			}
		}
		suppressed := SuppressSharedBottlenecks(congested, available)
		var filtered []*PathCandidate
		for _, c := range available {
			if !suppressed[c] {
				filtered = append(filtered, c)
			}
		}
		if len(filtered) > 0 {
			available = filtered
		}
	}

	var best *PathCandidate
	bestScore := math.Inf(1)
	for _, c := range available {
		score := s.score(c)
		if score < bestScore {
			bestScore = score
			best = c
		}
	}
	return best.RouterIDs, nil
}

// score implements avg_latency + alpha*loss_rate + beta/throughput
// (SPEC_FULL.md §4). A path with no observed throughput yet is not
// penalized, since it simply hasn't carried traffic long enough to measure.
func (s *Selector) score(c *PathCandidate) float64 {
	score := c.AvgLatencyMs() + s.cfg.AlphaLossWeight*c.LossRate()
	if tp := c.AvgThroughputMbps(); tp > 0 {
		score += s.cfg.BetaThroughputWeight / tp
	}
	return score
}
