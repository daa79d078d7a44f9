package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeSlot_Occupancy(t *testing.T) {
	free := TimeSlot{StartTime: "10:00", Capacity: 2, Remaining: 2, IsAvailable: true}
	assert.False(t, free.IsFull())
	assert.False(t, free.IsPartiallyBooked())
	assert.Equal(t, 0.0, free.OccupancyRate())

	partial := TimeSlot{StartTime: "10:30", Capacity: 2, Remaining: 1, IsAvailable: true}
	assert.False(t, partial.IsFull())
	assert.True(t, partial.IsPartiallyBooked())
	assert.Equal(t, 50.0, partial.OccupancyRate())

	full := TimeSlot{StartTime: "11:00", Capacity: 2, Remaining: 0}
	assert.True(t, full.IsFull())
	assert.False(t, full.IsPartiallyBooked())
	assert.Equal(t, 100.0, full.OccupancyRate())
}

func TestTimeSlot_ZeroCapacity(t *testing.T) {
	slot := TimeSlot{StartTime: "10:00"}
	assert.True(t, slot.IsFull())
	assert.Equal(t, 0.0, slot.OccupancyRate())
}
