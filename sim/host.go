package sim

import "github.com/sirupsen/logrus"

// Host is an end host: a source/sink attached to a border router within an
// AS (spec §3). Hosts hold a non-owning reference to the active
// path-selection algorithm via the Engine passed into their event handlers
// rather than a strong back-reference, per spec §9 "back-references app<->algorithm".
type Host struct {
	ID     string // "<ASid>,<addr>"
	Addr   string
	AS     *AS
	Router *Router
}

// OnPacketReceived is called when a data or reflected-probe packet reaches
// this host. It feeds latency/loss observations back to the active
// path-selection algorithm (spec §4.10 step 5) and updates metrics.
func (h *Host) OnPacketReceived(e *Engine, pkt *DataPacket, now float64) {
	if pkt.IsProbe {
		h.onProbeReturn(e, pkt, now)
		return
	}
	latency := now - pkt.Timestamp
	e.Selector.UpdatePathFeedback(pkt.Path, latency, false, pkt.SizeBytes)
	e.Metrics.RecordReceived(latency)
	if pkt.App != nil {
		pkt.App.onPacketDelivered(e, now)
	}
	logrus.Debugf("[%09.3f] %s received %dB from %s via %v (latency=%.3fms)",
		now, h.ID, pkt.SizeBytes, pkt.SourceHost.ID, pkt.Path, latency)
}

// onProbeReturn handles a probe packet reflected back to its origin host
// (spec §4.9 "the receiving host calls update_probe_result").
func (h *Host) onProbeReturn(e *Engine, pkt *DataPacket, now float64) {
	rtt := now - pkt.Timestamp
	e.Selector.UpdateProbeResult(pkt.ProbeID, rtt)
	logrus.Debugf("[%09.3f] %s probe %s returned rtt=%.3fms", now, h.ID, pkt.ProbeID, rtt)
}

// RecordLoss is invoked by a router that could not forward a packet
// originated by this host's application (spec §4.3 "observable via
// feedback callback").
func (h *Host) RecordLoss(e *Engine, pkt *DataPacket, now float64) {
	if !pkt.IsProbe {
		e.Selector.UpdatePathFeedback(pkt.Path, 0, true, pkt.SizeBytes)
		e.Metrics.RecordLost()
	}
	if pkt.App != nil {
		pkt.App.onPacketLost(e, now)
	}
	logrus.Debugf("[%09.3f] forwarding drop for packet from %s along %v", now, h.ID, pkt.Path)
}
