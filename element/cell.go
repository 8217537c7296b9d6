package element

import (
	"sync"

	"gonum.org/v1/gonum/graph"
)

// Cell is one node of the road network graph.
type Cell interface {
	graph.Node
	LaneID() string
	MaxSpeed() float64
	Coordinates() (x, y float64)
	Heading() float64
}

// RoadCell is a plain road segment.
type RoadCell struct {
	id       int64
	laneID   string
	x, y     float64
	heading  float64
	maxSpeed float64
}

// NewRoadCell creates a new road segment. Heading is the travel
// direction at the cell, in degrees.
func NewRoadCell(id int64, laneID string, x, y, heading, maxSpeed float64) *RoadCell {
	if maxSpeed <= 0 {
		panic("max speed must be positive")
	}
	return &RoadCell{
		id:       id,
		laneID:   laneID,
		x:        x,
		y:        y,
		heading:  heading,
		maxSpeed: maxSpeed,
	}
}

// ID returns the cell ID.
func (c *RoadCell) ID() int64 {
	return c.id
}

// LaneID returns the lane identifier of the cell.
func (c *RoadCell) LaneID() string {
	return c.laneID
}

// MaxSpeed returns the speed limit of the cell, in m/s.
func (c *RoadCell) MaxSpeed() float64 {
	return c.maxSpeed
}

// Coordinates returns the planar position of the cell.
func (c *RoadCell) Coordinates() (float64, float64) {
	return c.x, c.y
}

// Heading returns the travel direction at the cell, in degrees.
func (c *RoadCell) Heading() float64 {
	return c.heading
}

// SignalCell is a road segment carrying a traffic signal.
//
// phase is true while the signal shows green. greenWindow is the
// range of cycle counts during which the phase is green; interval is
// the full cycle length and count the position within it.
type SignalCell struct {
	RoadCell

	mu          sync.RWMutex
	phase       bool
	greenWindow [2]int
	interval    int
	count       int
}

// NewSignalCell creates a new signalized road segment.
func NewSignalCell(id int64, laneID string, x, y, heading, maxSpeed float64, interval int, greenWindow [2]int) *SignalCell {
	if interval <= 0 {
		panic("interval must be positive")
	}
	if greenWindow[0] < 0 || greenWindow[1] <= greenWindow[0] || greenWindow[1] > interval {
		panic("invalid green window")
	}

	return &SignalCell{
		RoadCell:    *NewRoadCell(id, laneID, x, y, heading, maxSpeed),
		greenWindow: greenWindow,
		interval:    interval,
	}
}

// Cycle advances the signal by one tick and updates the phase.
func (s *SignalCell) Cycle() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.count++
	if s.count > s.interval {
		s.count = 1
	}
	s.phase = s.count > s.greenWindow[0] && s.count <= s.greenWindow[1]
}

// IsGreen returns the current phase state.
func (s *SignalCell) IsGreen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// SetCount positions the signal inside its cycle. Used to stagger
// initial phases across the ring.
func (s *SignalCell) SetCount(count int) {
	if count <= 0 || count > s.interval {
		panic("count must be between 1 and interval")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count = count
}

// Interval returns the full cycle length.
func (s *SignalCell) Interval() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.interval
}
