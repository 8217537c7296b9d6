package element

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewVehicleValidation(t *testing.T) {
	require.Panics(t, func() { NewVehicle("", "car", 16.7, 0.1) })
	require.Panics(t, func() { NewVehicle("MH01-0001", "car", 0, 0.1) })
	require.Panics(t, func() { NewVehicle("MH01-0001", "car", 16.7, -0.1) })
	require.Panics(t, func() { NewVehicle("MH01-0001", "car", 16.7, 1.1) })

	v := NewVehicle("MH01-0001", "car", 16.7, 0.1)
	require.Equal(t, "MH01-0001", v.ID())
	require.Equal(t, "car", v.Type())
	require.Zero(t, v.Speed())
}

func TestUpdateAcceleratesTowardLimit(t *testing.T) {
	v := NewVehicle("MH01-0001", "car", 16.7, 0)

	for i := 0; i < 100; i++ {
		v.Update(1.0, 10.0, false)
	}

	require.InDelta(t, 10.0, v.Speed(), 1e-9, "speed settles at the lower of limit and max speed")
	require.Greater(t, v.Arc(), 0.0)
}

func TestUpdateBlockedBrakesToZero(t *testing.T) {
	v := NewVehicle("MH01-0001", "car", 16.7, 0)
	for i := 0; i < 50; i++ {
		v.Update(1.0, 16.7, false)
	}
	require.Greater(t, v.Speed(), 0.0)

	for i := 0; i < 50; i++ {
		v.Update(1.0, 16.7, true)
	}
	require.Zero(t, v.Speed())
}

func TestUpdateIgnoresNonPositiveDt(t *testing.T) {
	v := NewVehicle("MH01-0001", "car", 16.7, 0)
	v.Update(0, 10, false)
	require.Zero(t, v.Speed())
	require.Zero(t, v.Arc())
}

func TestHazardFlagWindow(t *testing.T) {
	v := NewVehicle("MH01-0001", "car", 16.7, 0)
	require.False(t, v.HazardActive(0))

	v.MarkHazard(10)
	require.True(t, v.HazardActive(5))
	require.True(t, v.HazardActive(10))
	require.False(t, v.HazardActive(11))

	// An earlier expiry never shortens a later one.
	v.MarkHazard(8)
	require.True(t, v.HazardActive(10))
}
