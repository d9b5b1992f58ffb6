package model

import (
	"github.com/google/uuid"

	"github.com/turnomed/scheduling-api/internal/timegrid"
)

// ScheduleEntry is one recurring working block in a doctor's week. A
// doctor may have several entries on the same weekday (split shifts);
// inactive entries are kept but ignored by availability computation.
type ScheduleEntry struct {
	Base
	DoctorID  uuid.UUID        `db:"doctor_id" json:"doctor_id"`
	DayOfWeek int              `db:"day_of_week" json:"day_of_week"`
	StartTime timegrid.Minutes `db:"start_time" json:"start_time"`
	EndTime   timegrid.Minutes `db:"end_time" json:"end_time"`
	IsActive  bool             `db:"is_active" json:"is_active"`
}

type WeeklySchedule struct {
	DoctorID  uuid.UUID        `json:"doctor_id"`
	Schedules []*ScheduleEntry `json:"schedules"`
}

type CreateScheduleEntryRequest struct {
	DayOfWeek int              `json:"day_of_week" validate:"min=0,max=6"`
	StartTime timegrid.Minutes `json:"start_time"`
	EndTime   timegrid.Minutes `json:"end_time"`
	IsActive  bool             `json:"is_active"`
}

// CreateWeeklyScheduleRequest replaces a doctor's full recurring week.
type CreateWeeklyScheduleRequest struct {
	Schedules []CreateScheduleEntryRequest `json:"schedules" validate:"required,min=1,dive"`
}

type UpdateScheduleEntryRequest struct {
	DayOfWeek *int              `json:"day_of_week" validate:"omitempty,min=0,max=6"`
	StartTime *timegrid.Minutes `json:"start_time"`
	EndTime   *timegrid.Minutes `json:"end_time"`
	IsActive  *bool             `json:"is_active"`
}
