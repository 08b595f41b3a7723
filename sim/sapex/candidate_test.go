package sapex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathCandidate_AveragesAndBoundsHistory(t *testing.T) {
	c := NewPathCandidate([]string{"r1", "r2"}, 3)
	c.RecordLatency(10)
	c.RecordLatency(20)
	c.RecordLatency(30)
	c.RecordLatency(40) // evicts the oldest sample (10)

	assert.InDelta(t, 30.0, c.AvgLatencyMs(), 1e-9) // mean(20,30,40)
}

func TestPathCandidate_LossRateTracksOutcomes(t *testing.T) {
	c := NewPathCandidate([]string{"r1"}, 20)
	assert.Equal(t, 0.0, c.LossRate())

	c.RecordOutcome(true)
	c.RecordOutcome(false)
	c.RecordOutcome(true)
	c.RecordOutcome(false)

	assert.InDelta(t, 0.5, c.LossRate(), 1e-9)
}

func TestPathCandidate_RecentVsBaselineWindows(t *testing.T) {
	c := NewPathCandidate([]string{"r1"}, 20)
	for _, v := range []float64{1, 1, 1, 1, 9, 9} {
		c.RecordLatency(v)
	}
	assert.InDelta(t, 1.0, mean(c.BaselineLatencies(4)), 1e-9)
	assert.InDelta(t, 9.0, mean(c.RecentLatencies(2)), 1e-9)
}

func TestPathCandidate_RecentLossRateIsolatesTailOutcomes(t *testing.T) {
	c := NewPathCandidate([]string{"r1"}, 20)
	c.RecordOutcome(true)
	c.RecordOutcome(true)
	c.RecordOutcome(false)
	c.RecordOutcome(false)

	assert.InDelta(t, 1.0, c.RecentLossRate(2), 1e-9)
	assert.InDelta(t, 0.0, c.BaselineLossRate(2), 1e-9)
}
