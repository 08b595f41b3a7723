package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHost_OnPacketReceivedRecordsLatencyAndFeedback(t *testing.T) {
	topo := topoWithCoreAndTwoLeaves()
	e := NewEngine(topo, NewShortestPathSelector(topo), 1000)
	src := &Host{ID: "src"}
	dst := &Host{ID: "dst"}
	pkt := &DataPacket{SourceHost: src, DestHost: dst, Path: []string{"r1", "r2"}, Timestamp: 10, sizeBytes: 500}

	dst.OnPacketReceived(e, pkt, 25)

	assert.Equal(t, 1, e.Metrics.TotalReceived)
	assert.InDelta(t, 15.0, e.Metrics.AverageLatencyMs(), 1e-9)
	assert.InDelta(t, 15.0, e.Selector.GetPathLatency(pkt.Path), 1e-9)
}

func TestHost_OnProbeReturnFeedsProbeResultNotMetrics(t *testing.T) {
	topo := topoWithCoreAndTwoLeaves()
	e := NewEngine(topo, NewShortestPathSelector(topo), 1000)
	src := &Host{ID: "src"}
	path := []string{"r1", "r2"}
	e.Selector.BeginProbe("probe-1", path, 0)

	pkt := &DataPacket{SourceHost: src, Path: path, Timestamp: 0, IsProbe: true, ProbeID: "probe-1"}
	src.OnPacketReceived(e, pkt, 7)

	assert.Equal(t, 0, e.Metrics.TotalReceived, "probe returns are not counted as delivered data")
	assert.InDelta(t, 7.0, e.Selector.GetPathLatency(path), 1e-9)
}

func TestHost_RecordLossUpdatesMetricsAndFeedback(t *testing.T) {
	topo := topoWithCoreAndTwoLeaves()
	e := NewEngine(topo, NewShortestPathSelector(topo), 1000)
	src := &Host{ID: "src"}
	path := []string{"r1", "r2"}
	pkt := &DataPacket{SourceHost: src, Path: path, Timestamp: 0}

	src.RecordLoss(e, pkt, 5)
	assert.Equal(t, 1, e.Metrics.TotalLost)
}

func TestHost_RecordLossOfProbeDoesNotCountAsDataLoss(t *testing.T) {
	topo := topoWithCoreAndTwoLeaves()
	e := NewEngine(topo, NewShortestPathSelector(topo), 1000)
	src := &Host{ID: "src"}
	pkt := &DataPacket{SourceHost: src, Path: []string{"r1"}, IsProbe: true}

	src.RecordLoss(e, pkt, 5)
	assert.Equal(t, 0, e.Metrics.TotalLost)
}
