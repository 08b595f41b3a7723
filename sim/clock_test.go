package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, horizon float64) *Engine {
	t.Helper()
	topo := &Topology{ASes: map[string]*AS{}, routersByID: map[string]*Router{}}
	return NewEngine(topo, NewShortestPathSelector(topo), horizon)
}

func TestEngine_RunUntilAdvancesClockAndExecutesInOrder(t *testing.T) {
	e := newTestEngine(t, 100)
	var order []float64
	e.Schedule(&recordingEvent{BaseEvent: e.newBase(30, EventTypeLinkDeliver), sink: &order})
	e.Schedule(&recordingEvent{BaseEvent: e.newBase(10, EventTypeLinkDeliver), sink: &order})

	e.RunUntil(20)
	assert.Equal(t, []float64{10}, order)
	assert.Equal(t, float64(20), e.Clock)

	e.RunUntil(50)
	assert.Equal(t, []float64{10, 30}, order)
	assert.Equal(t, float64(50), e.Clock)
}

func TestEngine_ScheduleAtOrBeforeNowRunsImmediately(t *testing.T) {
	e := newTestEngine(t, 100)
	e.Clock = 50
	var order []float64
	e.Schedule(&recordingEvent{BaseEvent: e.newBase(10, EventTypeLinkDeliver), sink: &order})
	require.Equal(t, []float64{10}, order)
}

func TestEngine_Ended(t *testing.T) {
	e := newTestEngine(t, 100)
	assert.False(t, e.Ended())
	e.RunUntil(100)
	assert.True(t, e.Ended())
}

type recordingEvent struct {
	BaseEvent
	sink *[]float64
}

func (ev *recordingEvent) Execute(_ *Engine) {
	*ev.sink = append(*ev.sink, ev.Time())
}
