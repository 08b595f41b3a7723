package sim

import "container/heap"

// EventType identifies what kind of event a BaseEvent carries, for logging
// and type switches. It plays no part in scheduling order (spec §4.1 "ties
// break by insertion order").
type EventType int

const (
	EventTypeLinkDeliver EventType = iota
	EventTypeBeaconEmit
	EventTypeProbeEmit
	EventTypeEventManagerFire
	EventTypeAppSelect
	EventTypeAppSend
	EventTypeAppRetry
)

// Event is anything the scheduler can run at a point in simulated time.
type Event interface {
	Time() float64
	Seq() uint64
	Type() EventType
	Execute(e *Engine)
}

// BaseEvent provides the common fields every concrete event embeds.
type BaseEvent struct {
	time      float64
	seq       uint64
	eventType EventType
}

func newBaseEvent(t float64, eventType EventType, seq uint64) BaseEvent {
	return BaseEvent{time: t, seq: seq, eventType: eventType}
}

func (e *BaseEvent) Time() float64    { return e.time }
func (e *BaseEvent) Seq() uint64      { return e.seq }
func (e *BaseEvent) Type() EventType  { return e.eventType }

// EventHeap implements a priority queue with deterministic ordering:
// timestamp, then insertion order (sequence number) for ties (spec §4.1,
// §5(b): "same-time events resumed in insertion order").
type EventHeap struct {
	events []Event
}

// NewEventHeap creates a new, empty EventHeap.
func NewEventHeap() *EventHeap {
	h := &EventHeap{events: make([]Event, 0)}
	heap.Init(h)
	return h
}

func (h *EventHeap) Len() int { return len(h.events) }

func (h *EventHeap) Less(i, j int) bool {
	ei, ej := h.events[i], h.events[j]
	if ei.Time() != ej.Time() {
		return ei.Time() < ej.Time()
	}
	return ei.Seq() < ej.Seq()
}

func (h *EventHeap) Swap(i, j int) { h.events[i], h.events[j] = h.events[j], h.events[i] }

func (h *EventHeap) Push(x interface{}) { h.events = append(h.events, x.(Event)) }

func (h *EventHeap) Pop() interface{} {
	old := h.events
	n := len(old)
	item := old[n-1]
	h.events = old[:n-1]
	return item
}

// Schedule adds an event to the heap.
func (h *EventHeap) Schedule(e Event) { heap.Push(h, e) }

// PopNext removes and returns the earliest event, or nil if empty.
func (h *EventHeap) PopNext() Event {
	if h.Len() == 0 {
		return nil
	}
	return heap.Pop(h).(Event)
}

// Peek returns the earliest event without removing it, or nil if empty.
func (h *EventHeap) Peek() Event {
	if h.Len() == 0 {
		return nil
	}
	return h.events[0]
}
