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

func (r *scheduleRepository) ReplaceForDoctor(ctx context.Context, doctorID uuid.UUID, entries []*model.ScheduleEntry) ([]*model.ScheduleEntry, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM doctor_schedules WHERE doctor_id = $1`, doctorID); err != nil {
		return nil, fmt.Errorf("failed to clear existing schedule: %w", err)
	}

	query := `
		INSERT INTO doctor_schedules (
			id, doctor_id, day_of_week, start_time, end_time, is_active,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	now := time.Now()
	for _, entry := range entries {
		entry.ID = uuid.New()
		entry.DoctorID = doctorID
		entry.CreatedAt = now
		entry.UpdatedAt = now

		if _, err := tx.ExecContext(ctx, query,
			entry.ID,
			entry.DoctorID,
			entry.DayOfWeek,
			entry.StartTime,
			entry.EndTime,
			entry.IsActive,
			entry.CreatedAt,
			entry.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to insert schedule entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit schedule: %w", err)
	}
	return entries, nil
}

func (r *scheduleRepository) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.ScheduleEntry, error) {
	query := `
		SELECT id, doctor_id, day_of_week, start_time, end_time, is_active,
			   created_at, updated_at
		FROM doctor_schedules
		WHERE doctor_id = $1
		ORDER BY day_of_week, start_time
	`
	var entries []*model.ScheduleEntry
	if err := r.db.SelectContext(ctx, &entries, query, doctorID); err != nil {
		return nil, fmt.Errorf("failed to list schedule entries: %w", err)
	}
	return entries, nil
}

func (r *scheduleRepository) Get(ctx context.Context, id uuid.UUID) (*model.ScheduleEntry, error) {
	query := `
		SELECT id, doctor_id, day_of_week, start_time, end_time, is_active,
			   created_at, updated_at
		FROM doctor_schedules
		WHERE id = $1
	`
	var entry model.ScheduleEntry
	if err := r.db.GetContext(ctx, &entry, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get schedule entry: %w", err)
	}
	return &entry, nil
}

func (r *scheduleRepository) Update(ctx context.Context, entry *model.ScheduleEntry) error {
	query := `
		UPDATE doctor_schedules
		SET day_of_week = $1, start_time = $2, end_time = $3, is_active = $4, updated_at = $5
		WHERE id = $6
	`
	entry.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		entry.DayOfWeek,
		entry.StartTime,
		entry.EndTime,
		entry.IsActive,
		entry.UpdatedAt,
		entry.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update schedule entry: %w", err)
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

func (r *scheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM doctor_schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule entry: %w", err)
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
