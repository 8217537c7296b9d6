package simulator

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"mumbaisim/config"
	"mumbaisim/element"
	"mumbaisim/recorder"
	"mumbaisim/utils"
)

// How far ahead of a vehicle a red signal forces braking, in metres.
const signalLookaheadM = 25.0

// Engine drives the simulation loop: advance the clock, cycle the
// signals, update the fleet, sample sensors and hand the rows to
// every sink.
type Engine struct {
	cfg            config.SimulationConfig
	net            *Network
	fleet          []*element.Vehicle
	state          *State
	hazards        *HazardGenerator
	sinks          []recorder.Sink
	statusInterval int
}

// NewEngine wires a network, fleet and hazard generator to the given
// output sinks.
func NewEngine(cfg *config.Config, net *Network, fleet []*element.Vehicle, hazards *HazardGenerator, sinks ...recorder.Sink) *Engine {
	return &Engine{
		cfg:            cfg.Simulation,
		net:            net,
		fleet:          fleet,
		state:          NewState(cfg.Simulation.StepSeconds),
		hazards:        hazards,
		sinks:          sinks,
		statusInterval: cfg.Logging.StatusInterval,
	}
}

// State returns the simulation clock.
func (e *Engine) State() *State {
	return e.state
}

// Run executes the configured number of steps. Cancelling ctx stops
// the loop between steps and returns the context error.
func (e *Engine) Run(ctx context.Context) error {
	pool := utils.NewWorkerPool(runtime.GOMAXPROCS(0))
	defer pool.Stop()

	for i := 0; i < e.cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			slog.Info("simulation cancelled", "step", e.state.Step())
			return ctx.Err()
		default:
		}
		e.step(pool)
	}

	slog.Info("simulation completed", "steps", e.cfg.Steps, "sim_time", e.state.SimulationTime())
	return nil
}

func (e *Engine) step(pool *utils.WorkerPool) {
	e.state.Advance()

	for _, sig := range e.net.Signals {
		sig.Cycle()
	}

	e.updateFleet(pool)

	readings := e.collectReadings()
	for _, sink := range e.sinks {
		sink.WriteData(readings, e.state)
	}

	if ev := e.hazards.Maybe(e.state, e.fleet); ev != nil {
		slog.Info("hazard occurred", "name", ev.Name, "sim_time", ev.Timestamp)
		for _, sink := range e.sinks {
			sink.WriteHazardEvent(*ev)
		}
	}

	e.state.UpdateStats(readings, e.activeHazardCount())
	if e.statusInterval > 0 && e.state.Step()%e.statusInterval == 0 {
		e.state.LogStatus()
	}
}

// updateFleet moves every vehicle one step, fanned out over the pool.
func (e *Engine) updateFleet(pool *utils.WorkerPool) {
	var wg sync.WaitGroup
	dt := e.cfg.StepSeconds

	for _, v := range e.fleet {
		v := v
		wg.Add(1)
		ok := pool.Submit(func() {
			defer wg.Done()
			arc := v.Arc()
			limit := e.net.SpeedLimitAt(arc)
			blocked := e.net.RedSignalAhead(arc, signalLookaheadM)
			v.Update(dt, limit, blocked)
		})
		if !ok {
			wg.Done()
		}
	}
	wg.Wait()
}

// collectReadings builds the sensor batch for the current step.
func (e *Engine) collectReadings() []element.SensorReading {
	step := e.state.Step()
	readings := make([]element.SensorReading, 0, len(e.fleet))

	for _, v := range e.fleet {
		x, y, heading, laneID := e.net.Position(v.Arc())
		readings = append(readings, element.SensorReading{
			VehicleID:    v.ID(),
			Type:         v.Type(),
			X:            x,
			Y:            y,
			Speed:        v.Speed(),
			Acceleration: v.Acceleration(),
			Angle:        heading,
			LaneID:       laneID,
			HazardActive: v.HazardActive(step),
		})
	}
	return readings
}

func (e *Engine) activeHazardCount() int {
	step := e.state.Step()
	count := 0
	for _, v := range e.fleet {
		if v.HazardActive(step) {
			count++
		}
	}
	return count
}
