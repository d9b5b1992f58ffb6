package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/turnomed/scheduling-api/internal/model"
)

func (r *appointmentRepository) ListForDoctorDate(ctx context.Context, doctorID uuid.UUID, date model.Date) ([]*model.Appointment, error) {
	query := `
		SELECT id, doctor_id, patient_id, appointment_date, start_time, end_time,
			   status, created_at, updated_at
		FROM appointments
		WHERE doctor_id = $1 AND appointment_date = $2 AND status != $3
		ORDER BY start_time
	`
	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, doctorID, date, model.AppointmentStatusCancelled); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}
