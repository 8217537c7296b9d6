package simulator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mumbaisim/config"
)

func TestNewFleetSpreadsVehicles(t *testing.T) {
	net := BuildRingNetwork(testNetworkConfig())
	fleet := NewFleet(config.VehicleConfig{Count: 10, SlowingProb: 0.1}, net)

	require.Len(t, fleet, 10)

	seen := make(map[string]bool)
	validTypes := map[string]bool{"car": true, "auto": true, "bus": true, "truck": true}
	spacing := net.Circumference() / 10

	for i, v := range fleet {
		require.False(t, seen[v.ID()], "duplicate plate %s", v.ID())
		seen[v.ID()] = true
		require.True(t, validTypes[v.Type()], "unexpected type %s", v.Type())
		require.InDelta(t, float64(i)*spacing, v.Arc(), 1e-9)
	}
}

func TestNewFleetEmpty(t *testing.T) {
	net := BuildRingNetwork(testNetworkConfig())
	require.Empty(t, NewFleet(config.VehicleConfig{Count: 0}, net))
}
