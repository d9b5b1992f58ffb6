package model

import (
	"github.com/google/uuid"
)

// Default settings applied when a doctor has no explicit record yet.
const (
	DefaultAppointmentDuration = 30
	DefaultBreakBetween        = 0
	DefaultAdvanceBookingDays  = 30
)

// DoctorSettings drive slot generation: slot length, gap between slots,
// how far ahead booking is allowed and whether weekends are bookable.
// Exactly one record exists per doctor; it is created with defaults and
// updated in place.
type DoctorSettings struct {
	Base
	DoctorID                 uuid.UUID `db:"doctor_id" json:"doctor_id"`
	AppointmentDuration      int       `db:"appointment_duration" json:"appointment_duration"`
	BreakBetweenAppointments int       `db:"break_between_appointments" json:"break_between_appointments"`
	AdvanceBookingDays       int       `db:"advance_booking_days" json:"advance_booking_days"`
	AllowWeekendAppointments bool      `db:"allow_weekend_appointments" json:"allow_weekend_appointments"`
}

func DefaultDoctorSettings(doctorID uuid.UUID) *DoctorSettings {
	return &DoctorSettings{
		DoctorID:                 doctorID,
		AppointmentDuration:      DefaultAppointmentDuration,
		BreakBetweenAppointments: DefaultBreakBetween,
		AdvanceBookingDays:       DefaultAdvanceBookingDays,
		AllowWeekendAppointments: false,
	}
}

type UpdateDoctorSettingsRequest struct {
	AppointmentDuration      *int  `json:"appointment_duration" validate:"omitempty,gt=0"`
	BreakBetweenAppointments *int  `json:"break_between_appointments" validate:"omitempty,gte=0"`
	AdvanceBookingDays       *int  `json:"advance_booking_days" validate:"omitempty,gte=0"`
	AllowWeekendAppointments *bool `json:"allow_weekend_appointments"`
}
