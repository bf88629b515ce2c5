package scheduling

import (
	"time"

	"clinic-agenda-server/internal/models"
)

// Slot is one entry of the booking grid for a given doctor and date.
type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// ComputeSlots walks the fixed grid and marks each slot's availability for
// the given doctor on the given calendar date. A slot is available when its
// time of day lies inside the doctor's [from, to) daily window, the date's
// weekday lies inside the inclusive [fromWeekDay, toWeekDay] range, and no
// booked time occupies it.
//
// Doctor data is taken as stored: a zero-width or inverted window simply
// yields no available slots. booked must hold the doctor's appointment times
// for that date; times on other dates are ignored by construction since only
// the time of day is compared.
func ComputeSlots(doctor *models.Doctor, date time.Time, booked []time.Time) []Slot {
	fromMinute, errFrom := MinuteOfDay(doctor.AvailableFromTime)
	toMinute, errTo := MinuteOfDay(doctor.AvailableToTime)
	windowValid := errFrom == nil && errTo == nil

	weekDay := int(date.Weekday())
	inWeek := doctor.AvailableFromWeekDay <= weekDay && weekDay <= doctor.AvailableToWeekDay

	occupied := make(map[string]struct{}, len(booked))
	for _, t := range booked {
		occupied[t.Format("15:04:05")] = struct{}{}
	}

	slots := make([]Slot, len(TimeGrid))
	for i, gridTime := range TimeGrid {
		minute, err := MinuteOfDay(gridTime)
		inWindow := windowValid && err == nil && minute >= fromMinute && minute < toMinute

		_, taken := occupied[gridTime]

		slots[i] = Slot{
			Time:      gridTime,
			Available: inWeek && inWindow && !taken,
		}
	}
	return slots
}
