package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/turnomed/scheduling-api/internal/model"
)

type ScheduleRepository interface {
	ReplaceForDoctor(ctx context.Context, doctorID uuid.UUID, entries []*model.ScheduleEntry) ([]*model.ScheduleEntry, error)
	ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.ScheduleEntry, error)
	Get(ctx context.Context, id uuid.UUID) (*model.ScheduleEntry, error)
	Update(ctx context.Context, entry *model.ScheduleEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type SettingsRepository interface {
	GetForDoctor(ctx context.Context, doctorID uuid.UUID) (*model.DoctorSettings, error)
	Create(ctx context.Context, settings *model.DoctorSettings) error
	Update(ctx context.Context, settings *model.DoctorSettings) error
}

type ExceptionRepository interface {
	Create(ctx context.Context, exception *model.AvailabilityException) error
	Get(ctx context.Context, id uuid.UUID) (*model.AvailabilityException, error)
	ListForDoctor(ctx context.Context, doctorID uuid.UUID, from, to *model.Date) ([]*model.AvailabilityException, error)
	ListForDate(ctx context.Context, doctorID uuid.UUID, date model.Date) ([]*model.AvailabilityException, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AppointmentRepository is a read-only view into the booking subsystem's
// table, used to mark occupied slots.
type AppointmentRepository interface {
	ListForDoctorDate(ctx context.Context, doctorID uuid.UUID, date model.Date) ([]*model.Appointment, error)
}

// ErrNotFound is returned by repositories when a row does not exist.
var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "not found" }
