package sapex

// UMCCParams configures the shared-bottleneck detector's thresholds (spec
// §4.9.1: RTT inflation ×1.5 and throughput degradation ×0.7, both relative
// to the baseline, and an absolute loss-rate threshold of 0.05 that is not
// baseline-relative).
type UMCCParams struct {
	RecentWindow      int
	BaselineWindow    int
	RTTFactor         float64
	LossRateThreshold float64
	ThroughputFactor  float64
}

// IsCongested applies UMCC's 2-of-3 threshold rule: a path is flagged
// congested when at least two of {RTT inflation, loss inflation, throughput
// degradation} hold (spec §4.9.1).
func IsCongested(c *PathCandidate, p UMCCParams) bool {
	votes := 0

	if baseline := mean(c.BaselineLatencies(p.BaselineWindow)); baseline > 0 {
		if recent := mean(c.RecentLatencies(p.RecentWindow)); recent > p.RTTFactor*baseline {
			votes++
		}
	}

	if recent := c.RecentLossRate(p.RecentWindow); recent > p.LossRateThreshold {
		votes++
	}

	if baseline := mean(c.BaselineThroughputs(p.BaselineWindow)); baseline > 0 {
		if recent := mean(c.RecentThroughputs(p.RecentWindow)); recent < p.ThroughputFactor*baseline {
			votes++
		}
	}

	return votes >= 2
}

// candidateRouterSet is the set form of a candidate's router-id path, used
// to compute shared-bottleneck interface sets.
func candidateRouterSet(c *PathCandidate) map[string]bool {
	set := make(map[string]bool, len(c.RouterIDs))
	for _, id := range c.RouterIDs {
		set[id] = true
	}
	return set
}

func intersectSets(a, b map[string]bool) map[string]bool {
	out := make(map[string]bool)
	for id := range a {
		if b[id] {
			out[id] = true
		}
	}
	return out
}

func traversesAny(c *PathCandidate, interfaces map[string]bool) bool {
	for _, id := range c.RouterIDs {
		if interfaces[id] {
			return true
		}
	}
	return false
}

func memberOf(set []*PathCandidate, c *PathCandidate) bool {
	for _, m := range set {
		if m == c {
			return true
		}
	}
	return false
}

// SuppressSharedBottlenecks implements spec §4.9.1's detection rule exactly:
// let C be the congested candidates for this AS pair. If |C| < 2 there is no
// bottleneck. Otherwise I = the intersection of router-id sets over C, then
// I is narrowed by subtracting every router used by a candidate not in C
// (among all candidates for the pair, congested or not) — a router also
// carried by a healthy alternate path is not "the" bottleneck. If I is
// non-empty, every C-member traversing a router in I shares the bottleneck;
// the best-avg-latency member is kept as representative and the rest are
// suppressed. The resolved cluster is then dropped from C and the whole
// rule repeats, so multiple independent bottlenecks can be found in one
// selection pass.
func SuppressSharedBottlenecks(congested, all []*PathCandidate) map[*PathCandidate]bool {
	suppressed := make(map[*PathCandidate]bool)
	remaining := make([]*PathCandidate, len(congested))
	copy(remaining, congested)

	for len(remaining) >= 2 {
		intersection := candidateRouterSet(remaining[0])
		for _, c := range remaining[1:] {
			intersection = intersectSets(intersection, candidateRouterSet(c))
		}
		if len(intersection) == 0 {
			break
		}

		for _, c := range all {
			if memberOf(remaining, c) {
				continue
			}
			for id := range candidateRouterSet(c) {
				delete(intersection, id)
			}
		}
		if len(intersection) == 0 {
			break
		}

		var cluster, rest []*PathCandidate
		for _, c := range remaining {
			if traversesAny(c, intersection) {
				cluster = append(cluster, c)
			} else {
				rest = append(rest, c)
			}
		}
		if len(cluster) < 2 {
			break
		}

		best := cluster[0]
		for _, member := range cluster[1:] {
			if member.AvgLatencyMs() < best.AvgLatencyMs() {
				best = member
			}
		}
		for _, member := range cluster {
			if member != best {
				suppressed[member] = true
			}
		}

		remaining = rest
	}
	return suppressed
}
