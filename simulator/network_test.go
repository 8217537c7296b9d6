package simulator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"mumbaisim/config"
)

func testNetworkConfig() config.NetworkConfig {
	return config.NetworkConfig{
		NumCells:       20,
		SignalInterval: 5,
		SignalCycle:    10,
		RadiusM:        100,
	}
}

func TestBuildRingNetwork(t *testing.T) {
	net := BuildRingNetwork(testNetworkConfig())

	require.Equal(t, 20, net.NumCells())
	require.Len(t, net.Signals, 4, "one signal every 5 cells")
	require.Equal(t, 20, net.Graph.Nodes().Len())
	require.InDelta(t, 2*math.Pi*100, net.Circumference(), 1e-9)

	// Every cell connects to its successor, closing the ring.
	for i := 0; i < 20; i++ {
		next := (i + 1) % 20
		require.True(t, net.Graph.HasEdgeFromTo(int64(i), int64(next)))
	}
}

func TestPositionLiesOnTheRing(t *testing.T) {
	net := BuildRingNetwork(testNetworkConfig())

	for _, arc := range []float64{0, 42.5, net.Circumference() - 1, net.Circumference() + 10, -5} {
		x, y, heading, laneID := net.Position(arc)
		require.InDelta(t, 100.0, math.Hypot(x, y), 1e-9, "arc %v", arc)
		require.GreaterOrEqual(t, heading, 0.0)
		require.Less(t, heading, 360.0)
		require.NotEmpty(t, laneID)
	}

	// At the origin the travel direction points straight up.
	_, _, heading, laneID := net.Position(0)
	require.InDelta(t, 90.0, heading, 1e-9)
	require.Equal(t, "ring_0_0", laneID)
}

func TestCellIndexWraps(t *testing.T) {
	net := BuildRingNetwork(testNetworkConfig())

	require.Equal(t, 0, net.CellIndexAt(0))
	require.Equal(t, 0, net.CellIndexAt(net.Circumference()))
	require.Equal(t, 1, net.CellIndexAt(net.CellLength()+0.1))
	require.Equal(t, 19, net.CellIndexAt(-0.1))
}

func TestArcDistanceWraps(t *testing.T) {
	net := BuildRingNetwork(testNetworkConfig())
	c := net.Circumference()

	require.InDelta(t, 20.0, net.ArcDistance(10, c-10), 1e-9)
	require.InDelta(t, 0.0, net.ArcDistance(5, 5+c), 1e-9)
	require.InDelta(t, 30.0, net.ArcDistance(100, 70), 1e-9)
}

func TestRedSignalAhead(t *testing.T) {
	net := BuildRingNetwork(testNetworkConfig())

	// Signals have not cycled yet, so every signal shows red.
	require.True(t, net.RedSignalAhead(net.Circumference()-10, 25))
	require.False(t, net.RedSignalAhead(net.CellLength()*2, 25), "next signal far beyond lookahead")

	// Force the first signal green and check the approach clears.
	sig := net.Signals[0]
	sig.SetCount(sig.Interval())
	sig.Cycle()
	require.True(t, sig.IsGreen())
	require.False(t, net.RedSignalAhead(net.Circumference()-10, 25))
}
