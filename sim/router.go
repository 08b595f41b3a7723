package sim

import "github.com/sirupsen/logrus"

// Router is a border router: a globally unique id, an owning AS, and a
// mapping from neighbor router id to the outbound Link reaching it
// (spec §3). Every Link in this simulator crosses an AS boundary, since the
// topology's only notion of connectivity is declared inter-AS interfaces
// (spec §6) — there is no separate intra-AS fabric to model.
type Router struct {
	ID        string
	AS        *AS
	Neighbors map[string]*Link
}

func newRouter(id string, as *AS) *Router {
	return &Router{ID: id, AS: as, Neighbors: make(map[string]*Link)}
}

// indexOfRouter returns the first occurrence of id in path, or -1. Spec §4.3
// "Tie-break: if a router appears multiple times in a path (forbidden but
// defensively), use the first occurrence."
func indexOfRouter(path []string, id string) int {
	for i, r := range path {
		if r == id {
			return i
		}
	}
	return -1
}

// Send injects a packet that originates at this router (a host attached
// here sending, or a probe emitted here) as if it had just been "received"
// at index 0 of its own path. When index 0 is another router of the same
// AS, forwarding starts there, since no intra-AS fabric is modeled.
func (r *Router) Send(e *Engine, pkt *DataPacket, now float64) {
	if len(pkt.Path) > 0 && pkt.Path[0] != r.ID {
		if first := e.Topology.RouterByID(pkt.Path[0]); first != nil && first.AS == r.AS {
			first.forwardDataPacket(e, pkt, now)
			return
		}
	}
	r.forwardDataPacket(e, pkt, now)
}

// receiveBeacon implements the beaconing propagation invariants of spec §4.5.
func (r *Router) receiveBeacon(e *Engine, b *Beacon, now float64) {
	for _, asID := range b.ASSequence() {
		if asID == r.AS.ID {
			logrus.Debugf("[%09.3f] %s drops beacon from %s: AS loop", now, r.ID, b.OriginAS)
			return
		}
	}

	ingress := ""
	if len(b.Path) > 0 {
		ingress = b.Path[len(b.Path)-1]
	}
	b.Hops = append(b.Hops, HopInfo{
		ASID:          r.AS.ID,
		RouterID:      r.ID,
		IngressRouter: ingress,
	})
	b.Path = append(b.Path, r.ID)

	registerBeacon(e, b, now)

	for neighborID, link := range r.Neighbors {
		if indexOfRouter(b.Path, neighborID) >= 0 {
			continue
		}
		clone := b.Clone()
		link.Enqueue(e, clone, now)
	}
}

// receiveDataPacket implements spec §4.3's receive_packet branch for
// data/probe packets, including probe reflection at the terminal hop.
func (r *Router) receiveDataPacket(e *Engine, pkt *DataPacket, now float64) {
	idx := indexOfRouter(pkt.Path, r.ID)
	if idx < 0 {
		logrus.Warnf("[%09.3f] %s received packet not addressed to it, dropping", now, r.ID)
		return
	}

	if pkt.IsProbe && !pkt.Reflected && idx == len(pkt.Path)-1 {
		reversePath(pkt.Path)
		pkt.Reflected = true
		r.forwardDataPacket(e, pkt, now)
		return
	}

	if idx == len(pkt.Path)-1 {
		if pkt.IsProbe && pkt.Reflected {
			pkt.SourceHost.OnPacketReceived(e, pkt, now)
			return
		}
		if pkt.DestHost != nil && pkt.DestHost.AS == r.AS {
			pkt.DestHost.OnPacketReceived(e, pkt, now)
			return
		}
	}

	r.forwardDataPacket(e, pkt, now)
}

// forwardDataPacket locates the packet's position on its own path and
// enqueues it on the link to the next hop, counting a loss if that link
// does not exist (spec §4.3).
func (r *Router) forwardDataPacket(e *Engine, pkt *DataPacket, now float64) {
	idx := indexOfRouter(pkt.Path, r.ID)
	if idx < 0 || idx == len(pkt.Path)-1 {
		logrus.Warnf("[%09.3f] %s cannot forward packet: no next hop on path %v", now, r.ID, pkt.Path)
		pkt.SourceHost.RecordLoss(e, pkt, now)
		return
	}
	nextHop := pkt.Path[idx+1]
	link, ok := r.Neighbors[nextHop]
	if !ok {
		logrus.Debugf("[%09.3f] %s has no link to %s, dropping packet", now, r.ID, nextHop)
		pkt.SourceHost.RecordLoss(e, pkt, now)
		return
	}
	link.Enqueue(e, pkt, now)
}

func reversePath(path []string) {
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
}
