package model

import (
	"github.com/google/uuid"

	"github.com/turnomed/scheduling-api/internal/timegrid"
)

type ExceptionType string

const (
	// ExceptionTypeBlocked removes availability: the whole day when no
	// time range is given, otherwise just the given range.
	ExceptionTypeBlocked ExceptionType = "blocked"
	// ExceptionTypeCustomHours replaces the weekly pattern for the date
	// with the given range.
	ExceptionTypeCustomHours ExceptionType = "custom_hours"
)

// AvailabilityException is a date-specific override of the recurring
// weekly schedule.
type AvailabilityException struct {
	Base
	DoctorID      uuid.UUID         `db:"doctor_id" json:"doctor_id"`
	ExceptionDate Date              `db:"exception_date" json:"exception_date"`
	StartTime     *timegrid.Minutes `db:"start_time" json:"start_time,omitempty"`
	EndTime       *timegrid.Minutes `db:"end_time" json:"end_time,omitempty"`
	ExceptionType ExceptionType     `db:"exception_type" json:"exception_type"`
	Reason        string            `db:"reason" json:"reason,omitempty"`
}

type CreateExceptionRequest struct {
	ExceptionDate Date              `json:"exception_date" validate:"required"`
	StartTime     *timegrid.Minutes `json:"start_time"`
	EndTime       *timegrid.Minutes `json:"end_time"`
	ExceptionType ExceptionType     `json:"exception_type" validate:"required,oneof=blocked custom_hours"`
	Reason        string            `json:"reason" validate:"max=500"`
}
