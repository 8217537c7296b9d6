package element

import (
	"math/rand/v2"
	"sync"
)

// Acceleration and braking rates for urban driving, in m/s².
const (
	accelRate = 1.5
	brakeRate = 3.0
)

// Vehicle is one simulated vehicle on the ring road. Position is kept
// as the arc length travelled from the network origin; planar
// coordinates are derived from the network geometry at sampling time.
type Vehicle struct {
	id          string
	vehicleType string
	maxSpeed    float64
	slowingProb float64

	mu           sync.RWMutex
	arc          float64
	speed        float64
	acceleration float64
	hazardUntil  int
}

// NewVehicle creates a new vehicle.
func NewVehicle(id, vehicleType string, maxSpeed, slowingProb float64) *Vehicle {
	if id == "" {
		panic("vehicle id must not be empty")
	}
	if maxSpeed <= 0 {
		panic("max speed must be positive")
	}
	if slowingProb < 0 || slowingProb > 1 {
		panic("slowing probability must be between 0 and 1")
	}

	return &Vehicle{
		id:          id,
		vehicleType: vehicleType,
		maxSpeed:    maxSpeed,
		slowingProb: slowingProb,
	}
}

// ID returns the vehicle identifier.
func (v *Vehicle) ID() string {
	return v.id
}

// Type returns the vehicle type.
func (v *Vehicle) Type() string {
	return v.vehicleType
}

// MaxSpeed returns the vehicle's own speed cap, in m/s.
func (v *Vehicle) MaxSpeed() float64 {
	return v.maxSpeed
}

// Arc returns the distance travelled along the ring, in metres.
func (v *Vehicle) Arc() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.arc
}

// SetArc places the vehicle at the given arc position.
func (v *Vehicle) SetArc(arc float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.arc = arc
}

// Speed returns the current speed, in m/s.
func (v *Vehicle) Speed() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.speed
}

// Acceleration returns the acceleration over the last update, in m/s².
func (v *Vehicle) Acceleration() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.acceleration
}

// Update advances the vehicle by one step of dt seconds. The rules
// follow the usual cellular-automaton scheme: accelerate toward the
// limit, brake when blocked, random slowdown with slowingProb.
func (v *Vehicle) Update(dt, speedLimit float64, blocked bool) {
	if dt <= 0 {
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	target := min(v.maxSpeed, speedLimit)
	prev := v.speed

	switch {
	case blocked:
		v.speed -= brakeRate * dt
	case v.speed < target:
		v.speed += accelRate * dt
	}
	if v.speed > target {
		v.speed = target
	}
	if rand.Float64() < v.slowingProb {
		v.speed -= accelRate * dt
	}
	if v.speed < 0 {
		v.speed = 0
	}

	v.acceleration = (v.speed - prev) / dt
	v.arc += v.speed * dt
}

// MarkHazard flags the vehicle as affected by a hazard until the
// given step. A later expiry never shortens an earlier one.
func (v *Vehicle) MarkHazard(untilStep int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if untilStep > v.hazardUntil {
		v.hazardUntil = untilStep
	}
}

// HazardActive reports whether a hazard flag is in effect at step.
func (v *Vehicle) HazardActive(step int) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.hazardUntil > 0 && step <= v.hazardUntil
}
