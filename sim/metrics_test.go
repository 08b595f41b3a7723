package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_AverageLatencyAndLossRate(t *testing.T) {
	m := NewMetrics()
	assert.Equal(t, 0.0, m.AverageLatencyMs())
	assert.Equal(t, 0.0, m.LossRate())

	m.RecordSent()
	m.RecordSent()
	m.RecordReceived(10)
	m.RecordReceived(20)
	m.RecordSent()
	m.RecordLost()

	assert.Equal(t, 3, m.TotalSent)
	assert.Equal(t, 2, m.TotalReceived)
	assert.Equal(t, 1, m.TotalLost)
	assert.InDelta(t, 15.0, m.AverageLatencyMs(), 1e-9)
	assert.InDelta(t, 1.0/3.0, m.LossRate(), 1e-9)
}
