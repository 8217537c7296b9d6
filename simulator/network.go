package simulator

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/graph/simple"

	"mumbaisim/config"
	"mumbaisim/element"
)

// Speed limit applied to every cell of the ring, in m/s (60 km/h).
const ringSpeedLimit = 16.7

// Network is a ring road laid out on a circle. Cells are nodes of a
// directed graph; every signal_interval-th cell carries a traffic
// signal with staggered initial phases.
type Network struct {
	Graph   *simple.DirectedGraph
	Cells   []element.Cell
	Signals []*element.SignalCell

	radius        float64
	cellLength    float64
	circumference float64
}

// BuildRingNetwork creates the ring road described by cfg.
func BuildRingNetwork(cfg config.NetworkConfig) *Network {
	if cfg.NumCells <= 0 {
		panic("num_cells must be positive")
	}
	if cfg.SignalInterval <= 0 {
		panic("signal_interval must be positive")
	}
	if cfg.RadiusM <= 0 {
		panic("radius_m must be positive")
	}

	g := simple.NewDirectedGraph()
	cells := make([]element.Cell, 0, cfg.NumCells)
	var signals []*element.SignalCell

	circumference := 2 * math.Pi * cfg.RadiusM
	signalRatioCount := 0

	for i := 0; i < cfg.NumCells; i++ {
		theta := 2 * math.Pi * float64(i) / float64(cfg.NumCells)
		x := cfg.RadiusM * math.Cos(theta)
		y := cfg.RadiusM * math.Sin(theta)
		heading := headingDegrees(theta)
		laneID := fmt.Sprintf("ring_%d_0", i)

		var cell element.Cell
		if i%cfg.SignalInterval == 0 {
			// Alternate short and long green phases around the ring.
			greenRatio := 0.3
			if signalRatioCount%2 == 1 {
				greenRatio = 0.7
			}
			greenEnd := int(math.Round(float64(cfg.SignalCycle) * greenRatio))
			if greenEnd <= 0 {
				greenEnd = 1
			}

			sig := element.NewSignalCell(int64(i), laneID, x, y, heading, ringSpeedLimit,
				cfg.SignalCycle, [2]int{0, greenEnd})
			sig.SetCount(i%cfg.SignalCycle + 1)

			cell = sig
			signals = append(signals, sig)
			signalRatioCount++
		} else {
			cell = element.NewRoadCell(int64(i), laneID, x, y, heading, ringSpeedLimit)
		}

		g.AddNode(cell)
		cells = append(cells, cell)
	}

	for i := 0; i < cfg.NumCells-1; i++ {
		g.SetEdge(simple.Edge{F: cells[i], T: cells[i+1]})
	}
	g.SetEdge(simple.Edge{F: cells[cfg.NumCells-1], T: cells[0]})

	return &Network{
		Graph:         g,
		Cells:         cells,
		Signals:       signals,
		radius:        cfg.RadiusM,
		cellLength:    circumference / float64(cfg.NumCells),
		circumference: circumference,
	}
}

// NumCells returns the number of cells on the ring.
func (n *Network) NumCells() int {
	return len(n.Cells)
}

// Circumference returns the ring length in metres.
func (n *Network) Circumference() float64 {
	return n.circumference
}

// CellLength returns the arc length of one cell in metres.
func (n *Network) CellLength() float64 {
	return n.cellLength
}

// CellIndexAt returns the index of the cell covering the arc position.
func (n *Network) CellIndexAt(arc float64) int {
	idx := int(n.normalizeArc(arc) / n.cellLength)
	if idx >= len(n.Cells) {
		idx = len(n.Cells) - 1
	}
	return idx
}

// CellAt returns the cell covering the arc position.
func (n *Network) CellAt(arc float64) element.Cell {
	return n.Cells[n.CellIndexAt(arc)]
}

// Position maps an arc position to planar coordinates, travel heading
// in degrees and the lane identifier at that point.
func (n *Network) Position(arc float64) (x, y, heading float64, laneID string) {
	theta := n.normalizeArc(arc) / n.radius
	x = n.radius * math.Cos(theta)
	y = n.radius * math.Sin(theta)
	heading = headingDegrees(theta)
	laneID = n.CellAt(arc).LaneID()
	return x, y, heading, laneID
}

// SpeedLimitAt returns the speed limit at the arc position.
func (n *Network) SpeedLimitAt(arc float64) float64 {
	return n.CellAt(arc).MaxSpeed()
}

// RedSignalAhead reports whether a red signal lies within lookahead
// metres ahead of the arc position.
func (n *Network) RedSignalAhead(arc, lookahead float64) bool {
	pos := n.normalizeArc(arc)
	for _, sig := range n.Signals {
		sigArc := float64(sig.ID()) * n.cellLength
		dist := sigArc - pos
		if dist < 0 {
			dist += n.circumference
		}
		if dist <= lookahead && !sig.IsGreen() {
			return true
		}
	}
	return false
}

// ArcDistance returns the shortest distance between two arc positions
// on the ring, in either direction.
func (n *Network) ArcDistance(a, b float64) float64 {
	d := math.Abs(n.normalizeArc(a) - n.normalizeArc(b))
	if d > n.circumference/2 {
		d = n.circumference - d
	}
	return d
}

func (n *Network) normalizeArc(arc float64) float64 {
	m := math.Mod(arc, n.circumference)
	if m < 0 {
		m += n.circumference
	}
	return m
}

// headingDegrees converts a position angle on the circle to the
// counter-clockwise travel direction at that point, in [0, 360).
func headingDegrees(theta float64) float64 {
	deg := theta*180/math.Pi + 90
	return math.Mod(deg, 360)
}
