package sim

import "fmt"

// PathSelector is the pluggable path-selection contract (spec §4.7). Every
// algorithm — the bundled ShortestPathSelector reference and the sapex
// package's Selector — implements this against the same BaseSelector
// plumbing, so algorithms differ only in SelectPath's ranking policy.
type PathSelector interface {
	// RegisterPath records a beacon-discovered router path under (src,dst),
	// called from protocol.go's registerBeacon.
	RegisterPath(src, dst string, path []string)

	// Paths returns every path registered under (src,dst).
	Paths(src, dst string) [][]string

	// LeavesForCore returns every leaf AS id with a known segment from core.
	LeavesForCore(core string) []string

	// DiscoverPaths returns candidate paths between src and dst. When
	// useGraphTraversal is true it enumerates the full router graph instead
	// of relying on beacon-discovered segments (spec §4.7).
	DiscoverPaths(src, dst string, useGraphTraversal bool) [][]string

	// SelectPath picks one path for (src,dst) per the algorithm's ranking
	// policy, or an error if none is available.
	SelectPath(src, dst string) ([]string, error)

	// BeginProbe records that a probe with id probeID was sent down path at
	// time now, so a later UpdateProbeResult can compute its RTT.
	BeginProbe(probeID string, path []string, now float64)

	// UpdateProbeResult feeds back the measured RTT for a previously begun
	// probe.
	UpdateProbeResult(probeID string, rttMs float64)

	// UpdatePathFeedback feeds back one data-packet outcome (latency on
	// success, lost=true on loss) for path, for algorithms that maintain
	// per-path quality metrics.
	UpdatePathFeedback(path []string, latencyMs float64, lost bool, sizeBytes int)

	// MarkPathDown/MarkPathUp implement spec §4.6 path-down/up events and
	// return every (src,dst) pair affected, so callers can notify
	// registered applications.
	MarkPathDown(path []string) []PathKey
	MarkPathUp(path []string) []PathKey

	IsPathAvailable(path []string) bool

	// GetPathLatency returns the best current latency estimate for path, or
	// 0 if none has been observed yet.
	GetPathLatency(path []string) float64
}

const rttWindowSize = 20

// BaseSelector provides the path store, probe bookkeeping, and a simple
// latency EWMA shared by every PathSelector implementation (spec §4.7 "a
// common base handles path storage and probe RTT tracking; algorithms only
// override ranking"). sim/sapex embeds this the same way ShortestPathSelector
// does, preserving the teacher's sim -> sim/policy one-directional layering.
type BaseSelector struct {
	*PathStore
	Topology *Topology

	pendingProbes map[string]probeRecord
	rttWindow     map[string][]float64
	latencyEWMA   map[string]float64
}

type probeRecord struct {
	Path   []string
	SentAt float64
}

// NewBaseSelector constructs a BaseSelector bound to topo, used for
// graph-traversal path discovery.
func NewBaseSelector(topo *Topology) BaseSelector {
	return BaseSelector{
		PathStore:     NewPathStore(),
		Topology:      topo,
		pendingProbes: make(map[string]probeRecord),
		rttWindow:     make(map[string][]float64),
		latencyEWMA:   make(map[string]float64),
	}
}

func (b *BaseSelector) RegisterPath(src, dst string, path []string) { b.PathStore.Register(src, dst, path) }

func (b *BaseSelector) LeavesForCore(core string) []string { return b.PathStore.LeavesFor(core) }

func (b *BaseSelector) Paths(src, dst string) [][]string { return b.Get(src, dst) }

func (b *BaseSelector) DiscoverPaths(src, dst string, useGraphTraversal bool) [][]string {
	if useGraphTraversal {
		return b.Topology.AllSimplePaths(src, dst)
	}
	return b.Get(src, dst)
}

func (b *BaseSelector) BeginProbe(probeID string, path []string, now float64) {
	b.pendingProbes[probeID] = probeRecord{Path: path, SentAt: now}
}

// PeekProbe returns the path a pending probe was sent on without consuming
// it, so a composing selector (e.g. sapex.Selector) can route the
// eventual result to its own per-path bookkeeping before delegating to
// UpdateProbeResult.
func (b *BaseSelector) PeekProbe(probeID string) ([]string, bool) {
	rec, ok := b.pendingProbes[probeID]
	return rec.Path, ok
}

// UpdateProbeResult records rttMs into the bounded recent-RTT window for the
// probed path (spec §4.9 "probing"), dropping oldest samples beyond
// rttWindowSize, and folds it into the latency EWMA used by
// GetPathLatency/ShortestPathSelector.
func (b *BaseSelector) UpdateProbeResult(probeID string, rttMs float64) {
	rec, ok := b.pendingProbes[probeID]
	if !ok {
		return
	}
	delete(b.pendingProbes, probeID)
	sig := PathSignature(rec.Path)
	window := append(b.rttWindow[sig], rttMs)
	if len(window) > rttWindowSize {
		window = window[len(window)-rttWindowSize:]
	}
	b.rttWindow[sig] = window
	b.foldLatency(sig, rttMs)
}

// UpdatePathFeedback folds an observed data-packet latency into the EWMA.
// Losses are not folded into latency (spec §4.8 separates loss rate from
// latency tracking); algorithm-specific selectors override this to also
// maintain richer candidate metrics.
func (b *BaseSelector) UpdatePathFeedback(path []string, latencyMs float64, lost bool, sizeBytes int) {
	if lost {
		return
	}
	b.foldLatency(PathSignature(path), latencyMs)
}

const latencyEWMAAlpha = 0.2

func (b *BaseSelector) foldLatency(sig string, sample float64) {
	cur, ok := b.latencyEWMA[sig]
	if !ok {
		b.latencyEWMA[sig] = sample
		return
	}
	b.latencyEWMA[sig] = latencyEWMAAlpha*sample + (1-latencyEWMAAlpha)*cur
}

func (b *BaseSelector) GetPathLatency(path []string) float64 {
	return b.latencyEWMA[PathSignature(path)]
}

func (b *BaseSelector) MarkPathDown(path []string) []PathKey { return b.PathStore.MarkDown(path) }
func (b *BaseSelector) MarkPathUp(path []string) []PathKey   { return b.PathStore.MarkUp(path) }
func (b *BaseSelector) IsPathAvailable(path []string) bool   { return b.PathStore.IsAvailable(path) }

// ShortestPathSelector is the reference algorithm of spec §4.7: pick the
// available path with the fewest router hops, breaking ties by registration
// order (the first one discovered wins, for determinism).
type ShortestPathSelector struct {
	BaseSelector
}

// NewShortestPathSelector constructs the reference selector.
func NewShortestPathSelector(topo *Topology) *ShortestPathSelector {
	return &ShortestPathSelector{BaseSelector: NewBaseSelector(topo)}
}

func (s *ShortestPathSelector) SelectPath(src, dst string) ([]string, error) {
	candidates := s.Paths(src, dst)
	var best []string
	for _, p := range candidates {
		if !s.IsPathAvailable(p) {
			continue
		}
		if best == nil || len(p) < len(best) {
			best = p
		}
	}
	if best == nil {
		return nil, fmt.Errorf("no available path from %q to %q", src, dst)
	}
	return best, nil
}
