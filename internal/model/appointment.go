package model

import (
	"github.com/google/uuid"

	"github.com/turnomed/scheduling-api/internal/timegrid"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// Appointment is the booking subsystem's record. This service never
// writes appointments; it only reads them to mark occupied slots.
type Appointment struct {
	Base
	DoctorID  uuid.UUID         `db:"doctor_id" json:"doctor_id"`
	PatientID uuid.UUID         `db:"patient_id" json:"patient_id"`
	Date      Date              `db:"appointment_date" json:"appointment_date"`
	StartTime timegrid.Minutes  `db:"start_time" json:"start_time"`
	EndTime   timegrid.Minutes  `db:"end_time" json:"end_time"`
	Status    AppointmentStatus `db:"status" json:"status"`
}

// Occupied reports whether the appointment still claims its time range.
func (a *Appointment) Occupied() bool {
	return a.Status != AppointmentStatusCancelled
}

// Interval returns the appointment's time-of-day range.
func (a *Appointment) Interval() timegrid.Interval {
	return timegrid.Interval{Start: a.StartTime, End: a.EndTime}
}
