package simulator

import (
	"math/rand/v2"

	"mumbaisim/config"
	"mumbaisim/element"
)

// Hazard kinds seen on Mumbai roads, monsoon season included.
var hazardNames = []string{"pothole", "waterlogging", "vehicle_breakdown", "debris"}

// HazardGenerator spawns random road hazards and flags the vehicles
// near them. A fixed seed makes a run reproducible.
type HazardGenerator struct {
	rng      *rand.Rand
	prob     float64
	duration int
	radius   float64
	net      *Network
}

// NewHazardGenerator creates a generator for the given network.
func NewHazardGenerator(cfg config.HazardConfig, net *Network) *HazardGenerator {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	return &HazardGenerator{
		rng:      rand.New(rand.NewPCG(seed, seed)),
		prob:     cfg.Probability,
		duration: cfg.DurationSteps,
		radius:   cfg.RadiusM,
		net:      net,
	}
}

// Maybe rolls for a hazard at the current step. On occurrence it
// marks the vehicles within the hazard radius and returns the event;
// otherwise it returns nil.
func (h *HazardGenerator) Maybe(state *State, fleet []*element.Vehicle) *element.HazardEvent {
	if h.rng.Float64() >= h.prob {
		return nil
	}

	cellIdx := h.rng.IntN(h.net.NumCells())
	cell := h.net.Cells[cellIdx]
	hazardArc := float64(cellIdx) * h.net.CellLength()

	until := state.Step() + h.duration
	affected := 0
	for _, v := range fleet {
		if h.net.ArcDistance(v.Arc(), hazardArc) <= h.radius {
			v.MarkHazard(until)
			affected++
		}
	}

	return &element.HazardEvent{
		Timestamp: state.SimulationTime(),
		Name:      hazardNames[h.rng.IntN(len(hazardNames))],
		Metadata: map[string]any{
			"lane":     cell.LaneID(),
			"cell":     cell.ID(),
			"severity": 1 + h.rng.IntN(3),
			"affected": affected,
		},
	}
}
