package element

// SensorReading is one row of per-vehicle telemetry at a simulation
// step. Zero values stand in for fields a sensor did not report.
type SensorReading struct {
	VehicleID    string
	Type         string
	X            float64
	Y            float64
	Speed        float64
	Acceleration float64
	Angle        float64
	LaneID       string
	HazardActive bool
}

// HazardEvent describes one hazard occurrence on the road network.
// An empty Name is rendered as "unknown" by the recorder.
type HazardEvent struct {
	Timestamp float64
	Name      string
	Metadata  map[string]any
}
