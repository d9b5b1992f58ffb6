package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/turnomed/scheduling-api/internal/availability"
	"github.com/turnomed/scheduling-api/internal/model"
	"github.com/turnomed/scheduling-api/internal/repository"
	"github.com/turnomed/scheduling-api/internal/timegrid"
)

// Invalidator drops cached availability for a doctor after a schedule,
// settings or exception mutation.
type Invalidator interface {
	InvalidateDoctor(doctorID uuid.UUID)
}

type noopInvalidator struct{}

func (noopInvalidator) InvalidateDoctor(uuid.UUID) {}

// Service owns the persisted scheduling configuration: weekly entries,
// per-doctor settings and date exceptions.
type Service struct {
	scheduleRepo  repository.ScheduleRepository
	settingsRepo  repository.SettingsRepository
	exceptionRepo repository.ExceptionRepository
	invalidator   Invalidator
}

func NewService(
	scheduleRepo repository.ScheduleRepository,
	settingsRepo repository.SettingsRepository,
	exceptionRepo repository.ExceptionRepository,
	invalidator Invalidator,
) *Service {
	if invalidator == nil {
		invalidator = noopInvalidator{}
	}
	return &Service{
		scheduleRepo:  scheduleRepo,
		settingsRepo:  settingsRepo,
		exceptionRepo: exceptionRepo,
		invalidator:   invalidator,
	}
}

// ReplaceWeeklySchedule swaps the doctor's full recurring week in one
// transaction and makes sure the doctor has a settings record.
func (s *Service) ReplaceWeeklySchedule(ctx context.Context, doctorID uuid.UUID, req *model.CreateWeeklyScheduleRequest) ([]*model.ScheduleEntry, error) {
	entries := make([]*model.ScheduleEntry, 0, len(req.Schedules))
	for _, in := range req.Schedules {
		if err := validateEntry(in.DayOfWeek, in.StartTime, in.EndTime, in.IsActive); err != nil {
			return nil, err
		}
		entries = append(entries, &model.ScheduleEntry{
			DayOfWeek: in.DayOfWeek,
			StartTime: in.StartTime,
			EndTime:   in.EndTime,
			IsActive:  in.IsActive,
		})
	}

	created, err := s.scheduleRepo.ReplaceForDoctor(ctx, doctorID, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to replace weekly schedule: %w", err)
	}

	if _, err := s.GetSettings(ctx, doctorID); err != nil {
		return nil, err
	}

	s.invalidator.InvalidateDoctor(doctorID)
	log.Info().Str("doctor_id", doctorID.String()).Int("entries", len(created)).Msg("weekly schedule replaced")
	return created, nil
}

func (s *Service) GetWeeklySchedule(ctx context.Context, doctorID uuid.UUID) (*model.WeeklySchedule, error) {
	entries, err := s.scheduleRepo.ListForDoctor(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly schedule: %w", err)
	}
	return &model.WeeklySchedule{DoctorID: doctorID, Schedules: entries}, nil
}

func (s *Service) UpdateScheduleEntry(ctx context.Context, id uuid.UUID, req *model.UpdateScheduleEntryRequest) (*model.ScheduleEntry, error) {
	entry, err := s.scheduleRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule entry: %w", err)
	}

	if req.DayOfWeek != nil {
		entry.DayOfWeek = *req.DayOfWeek
	}
	if req.StartTime != nil {
		entry.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		entry.EndTime = *req.EndTime
	}
	if req.IsActive != nil {
		entry.IsActive = *req.IsActive
	}

	if err := validateEntry(entry.DayOfWeek, entry.StartTime, entry.EndTime, entry.IsActive); err != nil {
		return nil, err
	}

	if err := s.scheduleRepo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to update schedule entry: %w", err)
	}

	s.invalidator.InvalidateDoctor(entry.DoctorID)
	return entry, nil
}

func (s *Service) DeleteScheduleEntry(ctx context.Context, id uuid.UUID) error {
	entry, err := s.scheduleRepo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get schedule entry: %w", err)
	}

	if err := s.scheduleRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete schedule entry: %w", err)
	}

	s.invalidator.InvalidateDoctor(entry.DoctorID)
	return nil
}

// GetSettings returns the doctor's settings, creating the default record
// on first access so availability queries always find one.
func (s *Service) GetSettings(ctx context.Context, doctorID uuid.UUID) (*model.DoctorSettings, error) {
	settings, err := s.settingsRepo.GetForDoctor(ctx, doctorID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	settings = model.DefaultDoctorSettings(doctorID)
	if err := s.settingsRepo.Create(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to create default settings: %w", err)
	}
	log.Info().Str("doctor_id", doctorID.String()).Msg("default settings created")
	return settings, nil
}

func (s *Service) UpdateSettings(ctx context.Context, doctorID uuid.UUID, req *model.UpdateDoctorSettingsRequest) (*model.DoctorSettings, error) {
	settings, err := s.GetSettings(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	if req.AppointmentDuration != nil {
		settings.AppointmentDuration = *req.AppointmentDuration
	}
	if req.BreakBetweenAppointments != nil {
		settings.BreakBetweenAppointments = *req.BreakBetweenAppointments
	}
	if req.AdvanceBookingDays != nil {
		settings.AdvanceBookingDays = *req.AdvanceBookingDays
	}
	if req.AllowWeekendAppointments != nil {
		settings.AllowWeekendAppointments = *req.AllowWeekendAppointments
	}

	if settings.AppointmentDuration <= 0 {
		return nil, &availability.ValidationError{Field: "appointment_duration", Msg: "must be positive"}
	}
	if settings.BreakBetweenAppointments < 0 {
		return nil, &availability.ValidationError{Field: "break_between_appointments", Msg: "cannot be negative"}
	}
	if settings.AdvanceBookingDays < 0 {
		return nil, &availability.ValidationError{Field: "advance_booking_days", Msg: "cannot be negative"}
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	s.invalidator.InvalidateDoctor(doctorID)
	return settings, nil
}

func (s *Service) CreateException(ctx context.Context, doctorID uuid.UUID, req *model.CreateExceptionRequest) (*model.AvailabilityException, error) {
	if err := validateExceptionTimes(req); err != nil {
		return nil, err
	}

	exception := &model.AvailabilityException{
		DoctorID:      doctorID,
		ExceptionDate: req.ExceptionDate,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		ExceptionType: req.ExceptionType,
		Reason:        req.Reason,
	}
	if err := s.exceptionRepo.Create(ctx, exception); err != nil {
		return nil, fmt.Errorf("failed to create exception: %w", err)
	}

	s.invalidator.InvalidateDoctor(doctorID)
	log.Info().
		Str("doctor_id", doctorID.String()).
		Str("date", exception.ExceptionDate.String()).
		Str("type", string(exception.ExceptionType)).
		Msg("availability exception created")
	return exception, nil
}

func (s *Service) ListExceptions(ctx context.Context, doctorID uuid.UUID, from, to *model.Date) ([]*model.AvailabilityException, error) {
	exceptions, err := s.exceptionRepo.ListForDoctor(ctx, doctorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list exceptions: %w", err)
	}
	return exceptions, nil
}

func (s *Service) DeleteException(ctx context.Context, id uuid.UUID) error {
	exception, err := s.exceptionRepo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get exception: %w", err)
	}

	if err := s.exceptionRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete exception: %w", err)
	}

	s.invalidator.InvalidateDoctor(exception.DoctorID)
	return nil
}

func validateEntry(dayOfWeek int, start, end timegrid.Minutes, isActive bool) error {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return &availability.ValidationError{Field: "day_of_week", Msg: "must be between 0 (Sunday) and 6 (Saturday)"}
	}
	if !isActive {
		return nil
	}
	if !timegrid.NewInterval(start, end).IsValid() {
		return &availability.ValidationError{
			Field: "start_time",
			Msg:   fmt.Sprintf("%s must be before end_time %s", start.Clock(), end.Clock()),
		}
	}
	return nil
}

func validateExceptionTimes(req *model.CreateExceptionRequest) error {
	switch req.ExceptionType {
	case model.ExceptionTypeBlocked:
		// A full-day block carries no times; a partial block needs both.
		if req.StartTime == nil && req.EndTime == nil {
			return nil
		}
	case model.ExceptionTypeCustomHours:
	default:
		return &availability.ValidationError{Field: "exception_type", Msg: fmt.Sprintf("unknown type %q", req.ExceptionType)}
	}

	if req.StartTime == nil || req.EndTime == nil {
		return &availability.ValidationError{Field: "exception_type", Msg: fmt.Sprintf("%s requires both start_time and end_time", req.ExceptionType)}
	}
	if !timegrid.NewInterval(*req.StartTime, *req.EndTime).IsValid() {
		return &availability.ValidationError{
			Field: "start_time",
			Msg:   fmt.Sprintf("%s must be before end_time %s", req.StartTime.Clock(), req.EndTime.Clock()),
		}
	}
	return nil
}
