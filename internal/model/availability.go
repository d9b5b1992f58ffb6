package model

import (
	"github.com/google/uuid"

	"github.com/turnomed/scheduling-api/internal/timegrid"
)

// TimeSlot is one bookable unit. Slots are derived on every query and
// never persisted.
type TimeSlot struct {
	StartTime   timegrid.Minutes `json:"start_time"`
	EndTime     timegrid.Minutes `json:"end_time"`
	IsAvailable bool             `json:"is_available"`
}

// Interval returns the slot's time-of-day range.
func (s TimeSlot) Interval() timegrid.Interval {
	return timegrid.Interval{Start: s.StartTime, End: s.EndTime}
}

// AvailableSlots is the availability query result for one doctor and day.
type AvailableSlots struct {
	DoctorID       uuid.UUID  `json:"doctor_id"`
	Date           Date       `json:"date"`
	AvailableSlots []TimeSlot `json:"available_slots"`
}
