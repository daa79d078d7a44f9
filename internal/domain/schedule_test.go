package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilyassrachouady/rdvdb-booking-service/pkg/ptr"
	"github.com/ilyassrachouady/rdvdb-booking-service/pkg/types"
)

func TestGenerateSlots(t *testing.T) {
	tests := []struct {
		name     string
		open     types.TimeString
		close    types.TimeString
		interval int
		want     []types.TimeString
	}{
		{
			name:     "morning shift with 30 minute step",
			open:     "09:00",
			close:    "12:00",
			interval: 30,
			want:     []types.TimeString{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"},
		},
		{
			name:     "partial last interval is dropped",
			open:     "09:00",
			close:    "10:45",
			interval: 30,
			want:     []types.TimeString{"09:00", "09:30", "10:00"},
		},
		{
			name:     "open equals close",
			open:     "09:00",
			close:    "09:00",
			interval: 30,
			want:     []types.TimeString{},
		},
		{
			name:     "interval longer than the day",
			open:     "09:00",
			close:    "10:00",
			interval: 90,
			want:     []types.TimeString{},
		},
		{
			name:     "hour step",
			open:     "10:00",
			close:    "13:00",
			interval: 60,
			want:     []types.TimeString{"10:00", "11:00", "12:00"},
		},
		{
			name:     "close at midnight",
			open:     "23:00",
			close:    "24:00",
			interval: 30,
			want:     []types.TimeString{"23:00", "23:30"},
		},
		{
			name:     "slot end past midnight is dropped",
			open:     "23:30",
			close:    "24:00",
			interval: 45,
			want:     []types.TimeString{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GenerateSlots(tt.open, tt.close, tt.interval)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateSlots_CountAndOrdering(t *testing.T) {
	// Количество слотов равно ⌊(close-open)/interval⌋, времена строго возрастают
	// и все строго меньше времени закрытия
	open, close := types.TimeString("08:15"), types.TimeString("19:00")
	interval := 45

	slots, err := GenerateSlots(open, close, interval)
	require.NoError(t, err)

	openMin, _ := open.MinutesSinceMidnight()
	closeMin, _ := close.MinutesSinceMidnight()
	assert.Len(t, slots, (closeMin-openMin)/interval)

	for i, slot := range slots {
		assert.True(t, slot.IsBefore(close))
		if i > 0 {
			assert.True(t, slots[i-1].IsBefore(slot))
		}
	}
}

func TestGenerateSlots_InvalidInterval(t *testing.T) {
	_, err := GenerateSlots("09:00", "12:00", 0)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = GenerateSlots("09:00", "12:00", -30)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestWeeklySchedule_ForDate(t *testing.T) {
	schedule := WeeklySchedule{
		Monday: DaySchedule{
			IsOpen:    true,
			OpenTime:  ptr.Ptr(types.TimeString("09:00")),
			CloseTime: ptr.Ptr(types.TimeString("18:00")),
		},
		Sunday: DaySchedule{IsOpen: false},
	}

	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Monday, monday.Weekday())
	day := schedule.ForDate(monday)
	assert.True(t, day.IsOpen)
	assert.Equal(t, types.TimeString("09:00"), *day.OpenTime)

	sunday := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Sunday, sunday.Weekday())
	assert.False(t, schedule.ForDate(sunday).IsOpen)
}

func TestAppointment_IsActive(t *testing.T) {
	appt := Appointment{Status: StatusPending}
	assert.True(t, appt.IsActive())

	appt.Status = StatusConfirmed
	assert.True(t, appt.IsActive())

	appt.Status = StatusCancelled
	assert.False(t, appt.IsActive())
	assert.True(t, appt.IsCancelled())
	assert.False(t, appt.CanBeCancelled())
}
