package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/turnomed/scheduling-api/internal/model"
	"github.com/turnomed/scheduling-api/internal/repository"
)

func (r *settingsRepository) GetForDoctor(ctx context.Context, doctorID uuid.UUID) (*model.DoctorSettings, error) {
	query := `
		SELECT id, doctor_id, appointment_duration, break_between_appointments,
			   advance_booking_days, allow_weekend_appointments,
			   created_at, updated_at
		FROM doctor_settings
		WHERE doctor_id = $1
	`
	var settings model.DoctorSettings
	if err := r.db.GetContext(ctx, &settings, query, doctorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get doctor settings: %w", err)
	}
	return &settings, nil
}

func (r *settingsRepository) Create(ctx context.Context, settings *model.DoctorSettings) error {
	query := `
		INSERT INTO doctor_settings (
			id, doctor_id, appointment_duration, break_between_appointments,
			advance_booking_days, allow_weekend_appointments,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	settings.ID = uuid.New()
	settings.CreatedAt = time.Now()
	settings.UpdatedAt = time.Now()

	if _, err := r.db.ExecContext(ctx, query,
		settings.ID,
		settings.DoctorID,
		settings.AppointmentDuration,
		settings.BreakBetweenAppointments,
		settings.AdvanceBookingDays,
		settings.AllowWeekendAppointments,
		settings.CreatedAt,
		settings.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to create doctor settings: %w", err)
	}
	return nil
}

func (r *settingsRepository) Update(ctx context.Context, settings *model.DoctorSettings) error {
	query := `
		UPDATE doctor_settings
		SET appointment_duration = $1, break_between_appointments = $2,
			advance_booking_days = $3, allow_weekend_appointments = $4,
			updated_at = $5
		WHERE doctor_id = $6
	`
	settings.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		settings.AppointmentDuration,
		settings.BreakBetweenAppointments,
		settings.AdvanceBookingDays,
		settings.AllowWeekendAppointments,
		settings.UpdatedAt,
		settings.DoctorID,
	)
	if err != nil {
		return fmt.Errorf("failed to update doctor settings: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}
