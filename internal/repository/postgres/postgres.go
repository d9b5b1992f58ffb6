package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/turnomed/scheduling-api/internal/repository"
)

type scheduleRepository struct {
	db *sqlx.DB
}

type settingsRepository struct {
	db *sqlx.DB
}

type exceptionRepository struct {
	db *sqlx.DB
}

type appointmentRepository struct {
	db *sqlx.DB
}

func NewScheduleRepository(db *sqlx.DB) repository.ScheduleRepository {
	return &scheduleRepository{db: db}
}

func NewSettingsRepository(db *sqlx.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

func NewExceptionRepository(db *sqlx.DB) repository.ExceptionRepository {
	return &exceptionRepository{db: db}
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}
