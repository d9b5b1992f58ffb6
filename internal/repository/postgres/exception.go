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

func (r *exceptionRepository) Create(ctx context.Context, exception *model.AvailabilityException) error {
	query := `
		INSERT INTO availability_exceptions (
			id, doctor_id, exception_date, start_time, end_time,
			exception_type, reason, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	exception.ID = uuid.New()
	exception.CreatedAt = time.Now()
	exception.UpdatedAt = time.Now()

	if _, err := r.db.ExecContext(ctx, query,
		exception.ID,
		exception.DoctorID,
		exception.ExceptionDate,
		exception.StartTime,
		exception.EndTime,
		exception.ExceptionType,
		exception.Reason,
		exception.CreatedAt,
		exception.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to create availability exception: %w", err)
	}
	return nil
}

func (r *exceptionRepository) Get(ctx context.Context, id uuid.UUID) (*model.AvailabilityException, error) {
	query := `
		SELECT id, doctor_id, exception_date, start_time, end_time,
			   exception_type, reason, created_at, updated_at
		FROM availability_exceptions
		WHERE id = $1
	`
	var exception model.AvailabilityException
	if err := r.db.GetContext(ctx, &exception, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get availability exception: %w", err)
	}
	return &exception, nil
}

func (r *exceptionRepository) ListForDoctor(ctx context.Context, doctorID uuid.UUID, from, to *model.Date) ([]*model.AvailabilityException, error) {
	query := `
		SELECT id, doctor_id, exception_date, start_time, end_time,
			   exception_type, reason, created_at, updated_at
		FROM availability_exceptions
		WHERE doctor_id = $1
	`
	args := []interface{}{doctorID}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND exception_date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND exception_date <= $%d", len(args))
	}
	query += " ORDER BY exception_date"

	var exceptions []*model.AvailabilityException
	if err := r.db.SelectContext(ctx, &exceptions, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list availability exceptions: %w", err)
	}
	return exceptions, nil
}

func (r *exceptionRepository) ListForDate(ctx context.Context, doctorID uuid.UUID, date model.Date) ([]*model.AvailabilityException, error) {
	query := `
		SELECT id, doctor_id, exception_date, start_time, end_time,
			   exception_type, reason, created_at, updated_at
		FROM availability_exceptions
		WHERE doctor_id = $1 AND exception_date = $2
		ORDER BY created_at
	`
	var exceptions []*model.AvailabilityException
	if err := r.db.SelectContext(ctx, &exceptions, query, doctorID, date); err != nil {
		return nil, fmt.Errorf("failed to list exceptions for date: %w", err)
	}
	return exceptions, nil
}

func (r *exceptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM availability_exceptions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete availability exception: %w", err)
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
