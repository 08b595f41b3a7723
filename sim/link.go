package sim

import "github.com/sirupsen/logrus"

// Link is a directional, per-ordered-pair channel between two routers. It
// enqueues packets and delivers each after propagation plus transmission
// delay, with exactly one delivery task servicing the FIFO queue at a time
// (spec §4.2). Serializing service on the queue is what gives "total delay
// >= latency" and strict enqueue-order delivery.
type Link struct {
	From, To      *Router
	LatencyMs     float64
	BandwidthMbps float64

	queue []LinkPacket
	busy  bool
}

func newLink(from, to *Router, latencyMs, bandwidthMbps float64) *Link {
	return &Link{From: from, To: to, LatencyMs: latencyMs, BandwidthMbps: bandwidthMbps}
}

// transmissionMs is (size*8)/(bandwidth_mbps*1000) per spec §4.2.
func (l *Link) transmissionMs(pkt LinkPacket) float64 {
	bits := float64(pkt.SizeBytes()) * 8
	return bits / (l.BandwidthMbps * 1000)
}

// Enqueue appends pkt to the FIFO queue and starts the delivery task if idle.
func (l *Link) Enqueue(e *Engine, pkt LinkPacket, now float64) {
	l.queue = append(l.queue, pkt)
	if !l.busy {
		l.serviceNext(e, now)
	}
}

// serviceNext pops the head of the queue (if any) and schedules its
// delivery after latency+transmission; the next packet is not serviced
// until this one is delivered, which is what makes the queue FIFO-ordered
// and serializes bandwidth usage.
func (l *Link) serviceNext(e *Engine, now float64) {
	if len(l.queue) == 0 {
		l.busy = false
		return
	}
	l.busy = true
	pkt := l.queue[0]
	l.queue = l.queue[1:]
	deliverAt := now + l.LatencyMs + l.transmissionMs(pkt)
	e.Schedule(&linkDeliverEvent{
		BaseEvent: e.newBase(deliverAt, EventTypeLinkDeliver),
		link:      l,
		pkt:       pkt,
	})
}

type linkDeliverEvent struct {
	BaseEvent
	link *Link
	pkt  LinkPacket
}

func (ev *linkDeliverEvent) Execute(e *Engine) {
	link, pkt, now := ev.link, ev.pkt, ev.Time()
	switch p := pkt.(type) {
	case *Beacon:
		link.To.receiveBeacon(e, p, now)
	case *DataPacket:
		link.To.receiveDataPacket(e, p, now)
	default:
		logrus.Warnf("[%09.3f] link delivered packet of unknown kind", now)
	}
	link.serviceNext(e, now)
}
