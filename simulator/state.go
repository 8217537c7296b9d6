package simulator

import (
	"log/slog"
	"sync"

	"mumbaisim/element"
)

// State is the simulation clock plus aggregate indicators used for
// periodic status logging. It is the shared batch context handed to
// output sinks.
type State struct {
	mu          sync.RWMutex
	simTime     float64
	step        int
	stepSeconds float64

	averageSpeed  float64
	activeHazards int
}

// NewState creates a clock advancing stepSeconds per step.
func NewState(stepSeconds float64) *State {
	if stepSeconds <= 0 {
		stepSeconds = 1.0
	}
	return &State{stepSeconds: stepSeconds}
}

// Advance moves the clock one step forward.
func (s *State) Advance() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step++
	s.simTime += s.stepSeconds
}

// SimulationTime returns the elapsed simulated time in seconds.
func (s *State) SimulationTime() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.simTime
}

// Step returns the current step counter.
func (s *State) Step() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.step
}

// UpdateStats caches fleet aggregates for status logging.
func (s *State) UpdateStats(readings []element.SensorReading, activeHazards int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(readings) == 0 {
		s.averageSpeed = 0
	} else {
		var sum float64
		for _, r := range readings {
			sum += r.Speed
		}
		s.averageSpeed = sum / float64(len(readings))
	}
	s.activeHazards = activeHazards
}

// AverageSpeed returns the fleet average speed of the last step.
func (s *State) AverageSpeed() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.averageSpeed
}

// LogStatus emits one status line with the cached aggregates.
func (s *State) LogStatus() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slog.Info("simulation status",
		"step", s.step,
		"sim_time", s.simTime,
		"avg_speed", s.averageSpeed,
		"active_hazards", s.activeHazards)
}
