package sim

// beaconIntervalMs is the default period between successive beacon
// originations from a single core-AS border router (spec §4.4).
const beaconIntervalMs = 1000

// beaconEmitEvent periodically originates a fresh beacon at a core AS's
// border router and reschedules itself, modeling the task loop without
// goroutines (spec §5 "tasks are events that reschedule themselves").
type beaconEmitEvent struct {
	BaseEvent
	as     *AS
	router *Router
}

func (ev *beaconEmitEvent) Execute(e *Engine) {
	now := ev.Time()
	b := &Beacon{
		OriginAS:  ev.as.ID,
		Timestamp: now,
		Hops:      []HopInfo{{ASID: ev.as.ID, RouterID: ev.router.ID}},
		Segment:   SegmentCore,
		Path:      []string{ev.router.ID},
	}
	for _, link := range ev.router.Neighbors {
		link.Enqueue(e, b.Clone(), now)
	}
	if e.Ended() {
		return
	}
	e.Schedule(&beaconEmitEvent{
		BaseEvent: e.newBase(now+beaconIntervalMs, EventTypeBeaconEmit),
		as:        ev.as,
		router:    ev.router,
	})
}

// SeedBeaconEmission schedules the first origination for every border router
// of every core AS (spec §4.4). Called once at engine setup.
func SeedBeaconEmission(e *Engine) {
	for _, as := range e.Topology.CoreASes() {
		for _, r := range as.Routers {
			e.Schedule(&beaconEmitEvent{
				BaseEvent: e.newBase(0, EventTypeBeaconEmit),
				as:        as,
				router:    r,
			})
		}
	}
}

// registerBeacon implements spec §4.5's registration and combination step,
// triggered on every router receipt of a beacon (not at origination, since
// origination forwards without "receiving").
//
// Registration: the accumulated router path is stored as a core-to-leaf (or
// core-to-core) segment under (OriginAS, currentAS), and its reverse as a
// leaf-to-core segment under (currentAS, OriginAS).
//
// Combination: when the newly-registered segment makes currentAS a leaf
// freshly reachable from a core, every other leaf already reachable from
// that same core is stitched together through it, producing leaf-to-leaf
// paths without either leaf ever seeing the other's beacons directly.
func registerBeacon(e *Engine, b *Beacon, now float64) {
	origin := b.OriginAS
	current := b.Hops[len(b.Hops)-1].ASID
	if current == origin {
		return
	}

	e.Selector.RegisterPath(origin, current, b.Path)
	reverse := make([]string, len(b.Path))
	copy(reverse, b.Path)
	reversePath(reverse)
	e.Selector.RegisterPath(current, origin, reverse)

	originAS := e.Topology.ASes[origin]
	currentAS := e.Topology.ASes[current]
	if originAS == nil || currentAS == nil || !originAS.Core || currentAS.Core {
		return
	}
	combineLeafSegments(e, current, origin)
}

// combineLeafSegments stitches every (leaf,core) segment together with
// every (core,otherLeaf) segment to register leaf-to-leaf paths, deduping
// the pivot router when both legs meet at the same one (spec §4.5).
func combineLeafSegments(e *Engine, leaf, core string) {
	for _, other := range e.Selector.LeavesForCore(core) {
		if other == leaf {
			continue
		}
		for _, legIn := range e.Selector.Paths(leaf, core) {
			for _, legOut := range e.Selector.Paths(core, other) {
				combined := combinePaths(legIn, legOut)
				if combined == nil {
					continue
				}
				e.Selector.RegisterPath(leaf, other, combined)
				rev := make([]string, len(combined))
				copy(rev, combined)
				reversePath(rev)
				e.Selector.RegisterPath(other, leaf, rev)
			}
		}
	}
}

// combinePaths concatenates a leaf-to-core leg with a core-to-leaf leg,
// dropping the duplicate pivot router id when both legs share it.
func combinePaths(legIn, legOut []string) []string {
	if len(legIn) == 0 || len(legOut) == 0 {
		return nil
	}
	if legIn[len(legIn)-1] == legOut[0] {
		out := make([]string, 0, len(legIn)+len(legOut)-1)
		out = append(out, legIn...)
		out = append(out, legOut[1:]...)
		return out
	}
	out := make([]string, 0, len(legIn)+len(legOut))
	out = append(out, legIn...)
	out = append(out, legOut...)
	return out
}
