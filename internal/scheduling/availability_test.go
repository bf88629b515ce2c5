package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-agenda-server/internal/models"
)

func weekdayDoctor() *models.Doctor {
	return &models.Doctor{
		AvailableFromWeekDay: 1, // Monday
		AvailableToWeekDay:   5, // Friday
		AvailableFromTime:    "08:00:00",
		AvailableToTime:      "12:00:00",
	}
}

func availableTimes(slots []Slot) []string {
	var times []string
	for _, slot := range slots {
		if slot.Available {
			times = append(times, slot.Time)
		}
	}
	return times
}

func TestComputeSlots_WeekdayInWindow(t *testing.T) {
	wednesday := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)

	slots := ComputeSlots(weekdayDoctor(), wednesday, nil)

	require.Len(t, slots, 33)
	for i, slot := range slots {
		assert.Equal(t, TimeGrid[i], slot.Time)
	}
	assert.Equal(t, []string{
		"08:00:00", "08:30:00", "09:00:00", "09:30:00",
		"10:00:00", "10:30:00", "11:00:00", "11:30:00",
	}, availableTimes(slots))
}

func TestComputeSlots_OutsideWeekdayRange(t *testing.T) {
	saturday := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)

	slots := ComputeSlots(weekdayDoctor(), saturday, nil)

	require.Len(t, slots, 33)
	assert.Empty(t, availableTimes(slots))
}

func TestComputeSlots_BookedSlotIsUnavailable(t *testing.T) {
	wednesday := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
	booked := []time.Time{time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)}

	slots := ComputeSlots(weekdayDoctor(), wednesday, booked)

	assert.Equal(t, []string{
		"08:00:00", "08:30:00", "09:30:00",
		"10:00:00", "10:30:00", "11:00:00", "11:30:00",
	}, availableTimes(slots))
}

func TestComputeSlots_WindowBoundaryIsHalfOpen(t *testing.T) {
	wednesday := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)

	slots := ComputeSlots(weekdayDoctor(), wednesday, nil)

	for _, slot := range slots {
		if slot.Time == "12:00:00" {
			assert.False(t, slot.Available, "the window's end time is excluded")
		}
	}
}

func TestComputeSlots_InvertedWindowNeverAvailable(t *testing.T) {
	doctor := weekdayDoctor()
	doctor.AvailableFromTime = "12:00:00"
	doctor.AvailableToTime = "08:00:00"
	wednesday := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)

	slots := ComputeSlots(doctor, wednesday, nil)

	require.Len(t, slots, 33)
	assert.Empty(t, availableTimes(slots))
}

func TestComputeSlots_Deterministic(t *testing.T) {
	wednesday := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
	booked := []time.Time{time.Date(2025, 6, 11, 10, 30, 0, 0, time.UTC)}

	first := ComputeSlots(weekdayDoctor(), wednesday, booked)
	second := ComputeSlots(weekdayDoctor(), wednesday, booked)

	assert.Equal(t, first, second)
}
