package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func topoWithCoreAndTwoLeaves() *Topology {
	topo := &Topology{
		ASes: map[string]*AS{
			"core":  newAS("core", true),
			"leafA": newAS("leafA", false),
			"leafB": newAS("leafB", false),
		},
	}
	return topo
}

func TestRegisterBeacon_RegistersForwardAndReverseSegments(t *testing.T) {
	topo := topoWithCoreAndTwoLeaves()
	e := NewEngine(topo, NewShortestPathSelector(topo), 1000)

	b := &Beacon{
		OriginAS: "core",
		Hops:     []HopInfo{{ASID: "core", RouterID: "core-br1"}, {ASID: "leafA", RouterID: "leafA-br1"}},
		Path:     []string{"core-br1", "leafA-br1"},
	}
	registerBeacon(e, b, 0)

	assert.Equal(t, [][]string{{"core-br1", "leafA-br1"}}, e.Selector.Paths("core", "leafA"))
	assert.Equal(t, [][]string{{"leafA-br1", "core-br1"}}, e.Selector.Paths("leafA", "core"))
}

func TestRegisterBeacon_CombinesSegmentsAcrossSharedCore(t *testing.T) {
	topo := topoWithCoreAndTwoLeaves()
	e := NewEngine(topo, NewShortestPathSelector(topo), 1000)

	toA := &Beacon{
		OriginAS: "core",
		Hops:     []HopInfo{{ASID: "core"}, {ASID: "leafA"}},
		Path:     []string{"core-br1", "leafA-br1"},
	}
	registerBeacon(e, toA, 0)

	toB := &Beacon{
		OriginAS: "core",
		Hops:     []HopInfo{{ASID: "core"}, {ASID: "leafB"}},
		Path:     []string{"core-br1", "leafB-br1"},
	}
	registerBeacon(e, toB, 0)

	combined := e.Selector.Paths("leafA", "leafB")
	require.Len(t, combined, 1)
	assert.Equal(t, []string{"leafA-br1", "core-br1", "leafB-br1"}, combined[0])

	reverse := e.Selector.Paths("leafB", "leafA")
	require.Len(t, reverse, 1)
	assert.Equal(t, []string{"leafB-br1", "core-br1", "leafA-br1"}, reverse[0])
}

func TestCombinePaths_DedupsSharedPivotRouter(t *testing.T) {
	got := combinePaths([]string{"leafA-br1", "core-br1"}, []string{"core-br1", "leafB-br1"})
	assert.Equal(t, []string{"leafA-br1", "core-br1", "leafB-br1"}, got)
}

func TestCombinePaths_ConcatenatesWhenPivotsDiffer(t *testing.T) {
	got := combinePaths([]string{"leafA-br1", "core-br1"}, []string{"core-br2", "leafB-br1"})
	assert.Equal(t, []string{"leafA-br1", "core-br1", "core-br2", "leafB-br1"}, got)
}

func TestCombinePaths_EmptyLegReturnsNil(t *testing.T) {
	assert.Nil(t, combinePaths(nil, []string{"r1"}))
	assert.Nil(t, combinePaths([]string{"r1"}, nil))
}
