package sim

import "github.com/sirupsen/logrus"

// Engine is the single-threaded cooperative scheduler plus the simulation-wide
// state every event needs to reach: the network fabric, the active
// path-selection algorithm, the application registry, and the metrics
// accumulator. All mutation happens from within Execute(e *Engine) calls
// driven by RunUntil, so nothing here needs locking (spec §5).
type Engine struct {
	Clock   float64
	Horizon float64

	Topology *Topology
	Selector PathSelector
	Registry *ApplicationRegistry
	Metrics  *Metrics

	queue   *EventHeap
	nextSeq uint64
}

// NewEngine creates an Engine bound to a topology, a path-selection
// algorithm, and a simulation horizon (in ms).
func NewEngine(topo *Topology, selector PathSelector, horizon float64) *Engine {
	return &Engine{
		Horizon:  horizon,
		Topology: topo,
		Selector: selector,
		Registry: NewApplicationRegistry(),
		Metrics:  NewMetrics(),
		queue:    NewEventHeap(),
	}
}

// Ended reports whether the simulation has reached its horizon. Recurring
// tasks (beacon origination, probing, application retry) check this before
// scheduling their next iteration so the event queue does not grow forever
// past the point anything will ever run (spec §5 "Cancellation & timeouts").
func (e *Engine) Ended() bool { return e.Clock >= e.Horizon }

// nextEventID returns the next monotonic sequence number, used as the
// heap's deterministic tie-breaker (spec §4.1 "ties break by insertion order").
func (e *Engine) nextEventID() uint64 {
	e.nextSeq++
	return e.nextSeq
}

// Schedule enqueues ev to run at ev.Time(). If ev.Time() is not after the
// current clock, it runs immediately instead — this matches the
// EventManager rule that events timestamped at or before "now" fire without
// delay (spec §4.10 EventManager, §7 "Event references unknown path").
func (e *Engine) Schedule(ev Event) {
	if ev.Time() <= e.Clock {
		ev.Execute(e)
		return
	}
	e.queue.Schedule(ev)
}

// newBase is a convenience for building BaseEvent-backed events with a
// correctly assigned sequence number.
func (e *Engine) newBase(t float64, typ EventType) BaseEvent {
	return newBaseEvent(t, typ, e.nextEventID())
}

// RunUntil processes events with time <= t, advancing the clock to each
// event's timestamp as it is processed, then stops (spec §4.1).
func (e *Engine) RunUntil(t float64) {
	for {
		ev := e.queue.Peek()
		if ev == nil || ev.Time() > t {
			break
		}
		e.queue.PopNext()
		e.Clock = ev.Time()
		ev.Execute(e)
	}
	if t > e.Clock {
		e.Clock = t
	}
}

// Run advances the simulation to its configured horizon.
func (e *Engine) Run() {
	logrus.Infof("[%09.3f] simulation starting, horizon=%.3fms", e.Clock, e.Horizon)
	e.RunUntil(e.Horizon)
	logrus.Infof("[%09.3f] simulation horizon reached, draining", e.Clock)
}
