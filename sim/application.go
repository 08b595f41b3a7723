package sim

import "github.com/sirupsen/logrus"

// appRetryDelayMs is how long an Application waits before re-attempting
// path selection after select_path returns no available path (spec §4.11).
const appRetryDelayMs = 10

// Application drives one flow's worth of traffic: select a path, send
// packets paced to the path's bottleneck bandwidth until totalBytes is
// exhausted, and react to path-down notifications from the registry
// (spec §4.11). Delivery/loss callbacks are received but change nothing
// about sending. Modeled as self-rescheduling
// events rather than a goroutine, matching the engine's cooperative style.
type Application struct {
	ID              string
	Source          *Host
	DestAS          string
	DestAddr        string
	TotalBytes      int
	PacketSizeBytes int
	StartMs         float64

	dest      *Host
	path      []string
	bytesSent int
}

// NewApplication constructs a traffic flow originating at source and bound
// for (destAS, destAddr), ready to be started with Start.
func NewApplication(id string, source *Host, destAS, destAddr string, totalBytes, packetSizeBytes int, startMs float64) *Application {
	return &Application{
		ID:              id,
		Source:          source,
		DestAS:          destAS,
		DestAddr:        destAddr,
		TotalBytes:      totalBytes,
		PacketSizeBytes: packetSizeBytes,
		StartMs:         startMs,
	}
}

// Start schedules the application's first path-selection attempt.
func (a *Application) Start(e *Engine) {
	e.Schedule(&appSelectEvent{BaseEvent: e.newBase(a.StartMs, EventTypeAppSelect), app: a})
}

// onPacketDelivered and onPacketLost are the callbacks routed through
// DataPacket.App by Host.OnPacketReceived / Host.RecordLoss (spec §4.3).
// Neither drives retry logic: link-layer loss is not path unavailability,
// so the send loop simply continues pacing at the existing rate (spec §4.2
// "failure semantics: none at this layer").
func (a *Application) onPacketDelivered(e *Engine, now float64) {}
func (a *Application) onPacketLost(e *Engine, now float64)      {}

// onPathDown is invoked by the ApplicationRegistry when the path this
// application is currently using is marked down (spec §4.6, §4.10). The
// application drops its cached path and re-enters selection immediately.
func (a *Application) onPathDown(e *Engine, now float64) {
	if a.path == nil {
		return
	}
	e.Registry.Deregister(PathSignature(a.path), a)
	a.path = nil
	e.Schedule(&appSelectEvent{BaseEvent: e.newBase(now, EventTypeAppSelect), app: a})
}

func (a *Application) selectAndProceed(e *Engine, now float64) {
	if a.dest == nil {
		dest, err := e.Topology.FindHost(a.DestAS, a.DestAddr)
		if err != nil {
			logrus.Warnf("[%09.3f] application %s: %v, giving up", now, a.ID, err)
			return
		}
		a.dest = dest
	}

	path, err := e.Selector.SelectPath(a.Source.AS.ID, a.DestAS)
	if err != nil {
		if e.Ended() {
			return
		}
		e.Schedule(&appRetryEvent{BaseEvent: e.newBase(now+appRetryDelayMs, EventTypeAppRetry), app: a})
		return
	}
	a.path = path
	e.Registry.Register(PathSignature(path), a)
	e.Schedule(&appSendEvent{BaseEvent: e.newBase(now, EventTypeAppSend), app: a})
}

type appSelectEvent struct {
	BaseEvent
	app *Application
}

func (ev *appSelectEvent) Execute(e *Engine) { ev.app.selectAndProceed(e, ev.Time()) }

type appRetryEvent struct {
	BaseEvent
	app *Application
}

func (ev *appRetryEvent) Execute(e *Engine) { ev.app.selectAndProceed(e, ev.Time()) }

type appSendEvent struct {
	BaseEvent
	app *Application
}

func (ev *appSendEvent) Execute(e *Engine) {
	a, now := ev.app, ev.Time()
	if a.path == nil || a.bytesSent >= a.TotalBytes {
		return
	}

	size := a.PacketSizeBytes
	if remaining := a.TotalBytes - a.bytesSent; remaining < size {
		size = remaining
	}
	pathCopy := make([]string, len(a.path))
	copy(pathCopy, a.path)
	pkt := &DataPacket{
		SourceHost: a.Source,
		DestHost:   a.dest,
		Path:       pathCopy,
		sizeBytes:  size,
		Timestamp:  now,
		App:        a,
	}
	e.Metrics.RecordSent()
	a.Source.Router.Send(e, pkt, now)
	a.bytesSent += size

	if a.bytesSent >= a.TotalBytes || e.Ended() {
		return
	}
	e.Schedule(&appSendEvent{BaseEvent: e.newBase(now+a.interPacketGapMs(e), EventTypeAppSend), app: a})
}

// interPacketGapMs paces sends to the selected path's bottleneck bandwidth
// (spec §4.11 "inter-packet gap derived from bandwidth budget"). Falls back
// to sending back-to-back if the bottleneck is unknown.
func (a *Application) interPacketGapMs(e *Engine) float64 {
	bw := e.Topology.BottleneckBandwidthMbps(a.path)
	if bw <= 0 {
		return 0
	}
	bits := float64(a.PacketSizeBytes) * 8
	return bits / (bw * 1000)
}
