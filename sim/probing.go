package sim

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// probeSizeBytes is the nominal size of a probe packet (spec §4.9).
const probeSizeBytes = 64

// DefaultProbeIntervalMs is the period between successive probes issued by
// one ProbeTask when no override is configured (spec §4.9).
const DefaultProbeIntervalMs = 2000

// ProbeTask periodically measures round-trip latency along every stored
// path between Source's AS and (DestAS, DestAddr), feeding results back to
// the active algorithm via BeginProbe/UpdateProbeResult (spec §4.9: "for
// each (src,dst) with at least one stored path, for each stored path...").
type ProbeTask struct {
	Source     *Host
	DestAS     string
	DestAddr   string
	IntervalMs float64
}

// SeedProbing schedules the first probe for every task.
func SeedProbing(e *Engine, tasks []*ProbeTask) {
	for _, t := range tasks {
		e.Schedule(&probeEmitEvent{BaseEvent: e.newBase(0, EventTypeProbeEmit), task: t})
	}
}

type probeEmitEvent struct {
	BaseEvent
	task *ProbeTask
}

func (ev *probeEmitEvent) Execute(e *Engine) {
	task, now := ev.task, ev.Time()

	dest, err := e.Topology.FindHost(task.DestAS, task.DestAddr)
	if err != nil {
		logrus.Debugf("[%09.3f] probe task from %s: %v", now, task.Source.ID, err)
	} else {
		for _, path := range e.Selector.Paths(task.Source.AS.ID, task.DestAS) {
			probeID := uuid.NewString()
			pathCopy := make([]string, len(path))
			copy(pathCopy, path)
			pkt := &DataPacket{
				SourceHost: task.Source,
				DestHost:   dest,
				Path:       pathCopy,
				sizeBytes:  probeSizeBytes,
				Timestamp:  now,
				IsProbe:    true,
				ProbeID:    probeID,
			}
			e.Selector.BeginProbe(probeID, pathCopy, now)
			task.Source.Router.Send(e, pkt, now)
		}
	}

	if e.Ended() {
		return
	}
	interval := task.IntervalMs
	if interval <= 0 {
		interval = DefaultProbeIntervalMs
	}
	e.Schedule(&probeEmitEvent{BaseEvent: e.newBase(now+interval, EventTypeProbeEmit), task: task})
}
