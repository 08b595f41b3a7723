package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiveBeacon_DropsOnASLoop(t *testing.T) {
	topo := topoWithCoreAndTwoLeaves()
	e := NewEngine(topo, NewShortestPathSelector(topo), 1000)
	r := newRouter("core-br1", topo.ASes["core"])

	b := &Beacon{
		OriginAS: "core",
		Hops:     []HopInfo{{ASID: "core"}},
		Path:     []string{"some-other-core-router"},
	}
	r.receiveBeacon(e, b, 0)

	// The AS loop must be detected before any registration or forwarding,
	// so no path is registered for this drop.
	assert.Empty(t, e.Selector.Paths("core", "core"))
}

func TestForwardDataPacket_RecordsLossWithNoNextHop(t *testing.T) {
	e, r1, _, _, src, dst := minimalTwoRouterEngine(t)
	pkt := &DataPacket{SourceHost: src, DestHost: dst, Path: []string{r1.ID}, Timestamp: 0}
	r1.forwardDataPacket(e, pkt, 0)
	assert.Equal(t, 1, e.Metrics.TotalLost)
}

func TestForwardDataPacket_RecordsLossWhenLinkMissing(t *testing.T) {
	e, r1, _, _, src, dst := minimalTwoRouterEngine(t)
	pkt := &DataPacket{SourceHost: src, DestHost: dst, Path: []string{r1.ID, "ghost-router"}, Timestamp: 0}
	r1.forwardDataPacket(e, pkt, 0)
	assert.Equal(t, 1, e.Metrics.TotalLost)
}

func TestReceiveDataPacket_ProbeReflectsAtTerminalHop(t *testing.T) {
	e, r1, r2, _, src, _ := minimalTwoRouterEngine(t)
	pkt := &DataPacket{
		SourceHost: src,
		Path:       []string{r1.ID, r2.ID},
		Timestamp:  0,
		IsProbe:    true,
	}
	r2.receiveDataPacket(e, pkt, 5)

	require.True(t, pkt.Reflected)
	assert.Equal(t, []string{r2.ID, r1.ID}, pkt.Path)
}

func TestReversePath(t *testing.T) {
	p := []string{"r1", "r2", "r3"}
	reversePath(p)
	assert.Equal(t, []string{"r3", "r2", "r1"}, p)
}

func TestIndexOfRouter(t *testing.T) {
	path := []string{"r1", "r2", "r3"}
	assert.Equal(t, 1, indexOfRouter(path, "r2"))
	assert.Equal(t, -1, indexOfRouter(path, "ghost"))
}
