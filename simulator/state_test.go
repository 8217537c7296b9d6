package simulator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mumbaisim/element"
	"mumbaisim/recorder"
)

var _ recorder.SimState = (*State)(nil)

func TestStateAdvance(t *testing.T) {
	s := NewState(0.5)
	require.Zero(t, s.Step())
	require.Zero(t, s.SimulationTime())

	for i := 0; i < 3; i++ {
		s.Advance()
	}

	require.Equal(t, 3, s.Step())
	require.InDelta(t, 1.5, s.SimulationTime(), 1e-9)
}

func TestStateDefaultsStepSeconds(t *testing.T) {
	s := NewState(0)
	s.Advance()
	require.InDelta(t, 1.0, s.SimulationTime(), 1e-9)
}

func TestStateUpdateStats(t *testing.T) {
	s := NewState(1)

	s.UpdateStats([]element.SensorReading{{Speed: 4}, {Speed: 8}}, 1)
	require.InDelta(t, 6.0, s.AverageSpeed(), 1e-9)

	s.UpdateStats(nil, 0)
	require.Zero(t, s.AverageSpeed())
}
