package simulator

import (
	"fmt"
	"math/rand/v2"

	"mumbaisim/config"
	"mumbaisim/element"
)

// vehicleClass describes one vehicle type in the fleet mix.
type vehicleClass struct {
	name     string
	weight   float64
	maxSpeed float64 // m/s
}

// Mumbai street mix: mostly cars and auto rickshaws.
var fleetMix = []vehicleClass{
	{"car", 0.50, 16.7},
	{"auto", 0.30, 11.1},
	{"bus", 0.10, 13.9},
	{"truck", 0.10, 12.5},
}

// NewFleet builds cfg.Count vehicles spread evenly around the ring,
// with Maharashtra-style registration plates as identifiers.
func NewFleet(cfg config.VehicleConfig, net *Network) []*element.Vehicle {
	fleet := make([]*element.Vehicle, 0, cfg.Count)
	if cfg.Count <= 0 {
		return fleet
	}

	spacing := net.Circumference() / float64(cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		class := pickClass()
		plate := fmt.Sprintf("MH01-%04d", i+1)

		v := element.NewVehicle(plate, class.name, class.maxSpeed, cfg.SlowingProb)
		v.SetArc(float64(i) * spacing)
		fleet = append(fleet, v)
	}
	return fleet
}

func pickClass() vehicleClass {
	r := rand.Float64()
	acc := 0.0
	for _, c := range fleetMix {
		acc += c.weight
		if r < acc {
			return c
		}
	}
	return fleetMix[0]
}
