package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turnomed/scheduling-api/internal/availability"
	"github.com/turnomed/scheduling-api/internal/model"
	"github.com/turnomed/scheduling-api/internal/repository"
	"github.com/turnomed/scheduling-api/internal/timegrid"
)

type fakeScheduleRepo struct {
	entries map[uuid.UUID]*model.ScheduleEntry
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{entries: make(map[uuid.UUID]*model.ScheduleEntry)}
}

func (r *fakeScheduleRepo) ReplaceForDoctor(_ context.Context, doctorID uuid.UUID, entries []*model.ScheduleEntry) ([]*model.ScheduleEntry, error) {
	for id, e := range r.entries {
		if e.DoctorID == doctorID {
			delete(r.entries, id)
		}
	}
	for _, e := range entries {
		e.ID = uuid.New()
		e.DoctorID = doctorID
		r.entries[e.ID] = e
	}
	return entries, nil
}

func (r *fakeScheduleRepo) ListForDoctor(_ context.Context, doctorID uuid.UUID) ([]*model.ScheduleEntry, error) {
	var out []*model.ScheduleEntry
	for _, e := range r.entries {
		if e.DoctorID == doctorID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeScheduleRepo) Get(_ context.Context, id uuid.UUID) (*model.ScheduleEntry, error) {
	e, ok := r.entries[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *fakeScheduleRepo) Update(_ context.Context, entry *model.ScheduleEntry) error {
	if _, ok := r.entries[entry.ID]; !ok {
		return repository.ErrNotFound
	}
	r.entries[entry.ID] = entry
	return nil
}

func (r *fakeScheduleRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.entries[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

type fakeSettingsRepo struct {
	settings map[uuid.UUID]*model.DoctorSettings
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{settings: make(map[uuid.UUID]*model.DoctorSettings)}
}

func (r *fakeSettingsRepo) GetForDoctor(_ context.Context, doctorID uuid.UUID) (*model.DoctorSettings, error) {
	s, ok := r.settings[doctorID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSettingsRepo) Create(_ context.Context, s *model.DoctorSettings) error {
	r.settings[s.DoctorID] = s
	return nil
}

func (r *fakeSettingsRepo) Update(_ context.Context, s *model.DoctorSettings) error {
	if _, ok := r.settings[s.DoctorID]; !ok {
		return repository.ErrNotFound
	}
	r.settings[s.DoctorID] = s
	return nil
}

type fakeExceptionRepo struct {
	exceptions map[uuid.UUID]*model.AvailabilityException
}

func newFakeExceptionRepo() *fakeExceptionRepo {
	return &fakeExceptionRepo{exceptions: make(map[uuid.UUID]*model.AvailabilityException)}
}

func (r *fakeExceptionRepo) Create(_ context.Context, exc *model.AvailabilityException) error {
	exc.ID = uuid.New()
	r.exceptions[exc.ID] = exc
	return nil
}

func (r *fakeExceptionRepo) Get(_ context.Context, id uuid.UUID) (*model.AvailabilityException, error) {
	exc, ok := r.exceptions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return exc, nil
}

func (r *fakeExceptionRepo) ListForDoctor(_ context.Context, doctorID uuid.UUID, from, to *model.Date) ([]*model.AvailabilityException, error) {
	var out []*model.AvailabilityException
	for _, exc := range r.exceptions {
		if exc.DoctorID != doctorID {
			continue
		}
		if from != nil && exc.ExceptionDate.Before(from.Time) {
			continue
		}
		if to != nil && exc.ExceptionDate.After(to.Time) {
			continue
		}
		out = append(out, exc)
	}
	return out, nil
}

func (r *fakeExceptionRepo) ListForDate(_ context.Context, doctorID uuid.UUID, date model.Date) ([]*model.AvailabilityException, error) {
	var out []*model.AvailabilityException
	for _, exc := range r.exceptions {
		if exc.DoctorID == doctorID && exc.ExceptionDate.Equal(date.Time) {
			out = append(out, exc)
		}
	}
	return out, nil
}

func (r *fakeExceptionRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.exceptions[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.exceptions, id)
	return nil
}

type recordingInvalidator struct {
	doctors []uuid.UUID
}

func (r *recordingInvalidator) InvalidateDoctor(doctorID uuid.UUID) {
	r.doctors = append(r.doctors, doctorID)
}

func newTestService() (*Service, *fakeScheduleRepo, *fakeSettingsRepo, *fakeExceptionRepo, *recordingInvalidator) {
	scheduleRepo := newFakeScheduleRepo()
	settingsRepo := newFakeSettingsRepo()
	exceptionRepo := newFakeExceptionRepo()
	inv := &recordingInvalidator{}
	svc := NewService(scheduleRepo, settingsRepo, exceptionRepo, inv)
	return svc, scheduleRepo, settingsRepo, exceptionRepo, inv
}

func mins(s string) timegrid.Minutes {
	m, err := timegrid.Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

func TestReplaceWeeklySchedule(t *testing.T) {
	svc, _, settingsRepo, _, inv := newTestService()
	doctorID := uuid.New()

	created, err := svc.ReplaceWeeklySchedule(context.Background(), doctorID, &model.CreateWeeklyScheduleRequest{
		Schedules: []model.CreateScheduleEntryRequest{
			{DayOfWeek: 1, StartTime: mins("09:00"), EndTime: mins("12:00"), IsActive: true},
			{DayOfWeek: 1, StartTime: mins("14:00"), EndTime: mins("18:00"), IsActive: true},
		},
	})
	require.NoError(t, err)
	assert.Len(t, created, 2)

	// Defaults are provisioned alongside the first schedule.
	settings, ok := settingsRepo.settings[doctorID]
	require.True(t, ok)
	assert.Equal(t, model.DefaultAppointmentDuration, settings.AppointmentDuration)

	assert.Contains(t, inv.doctors, doctorID)
}

func TestReplaceWeeklyScheduleValidation(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	var verr *availability.ValidationError

	_, err := svc.ReplaceWeeklySchedule(context.Background(), uuid.New(), &model.CreateWeeklyScheduleRequest{
		Schedules: []model.CreateScheduleEntryRequest{
			{DayOfWeek: 7, StartTime: mins("09:00"), EndTime: mins("12:00"), IsActive: true},
		},
	})
	require.ErrorAs(t, err, &verr)

	_, err = svc.ReplaceWeeklySchedule(context.Background(), uuid.New(), &model.CreateWeeklyScheduleRequest{
		Schedules: []model.CreateScheduleEntryRequest{
			{DayOfWeek: 1, StartTime: mins("12:00"), EndTime: mins("09:00"), IsActive: true},
		},
	})
	require.ErrorAs(t, err, &verr)
}

func TestUpdateScheduleEntry(t *testing.T) {
	svc, scheduleRepo, _, _, inv := newTestService()
	doctorID := uuid.New()

	created, err := svc.ReplaceWeeklySchedule(context.Background(), doctorID, &model.CreateWeeklyScheduleRequest{
		Schedules: []model.CreateScheduleEntryRequest{
			{DayOfWeek: 1, StartTime: mins("09:00"), EndTime: mins("12:00"), IsActive: true},
		},
	})
	require.NoError(t, err)

	newEnd := mins("13:00")
	updated, err := svc.UpdateScheduleEntry(context.Background(), created[0].ID, &model.UpdateScheduleEntryRequest{
		EndTime: &newEnd,
	})
	require.NoError(t, err)
	assert.Equal(t, newEnd, updated.EndTime)
	assert.Equal(t, newEnd, scheduleRepo.entries[created[0].ID].EndTime)
	assert.GreaterOrEqual(t, len(inv.doctors), 2)

	// Patching into an inverted range is rejected.
	badEnd := mins("08:00")
	_, err = svc.UpdateScheduleEntry(context.Background(), created[0].ID, &model.UpdateScheduleEntryRequest{
		EndTime: &badEnd,
	})
	var verr *availability.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestDeleteScheduleEntry(t *testing.T) {
	svc, scheduleRepo, _, _, _ := newTestService()
	doctorID := uuid.New()

	created, err := svc.ReplaceWeeklySchedule(context.Background(), doctorID, &model.CreateWeeklyScheduleRequest{
		Schedules: []model.CreateScheduleEntryRequest{
			{DayOfWeek: 1, StartTime: mins("09:00"), EndTime: mins("12:00"), IsActive: true},
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteScheduleEntry(context.Background(), created[0].ID))
	assert.Empty(t, scheduleRepo.entries)

	err = svc.DeleteScheduleEntry(context.Background(), created[0].ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetSettingsCreatesDefaults(t *testing.T) {
	svc, _, settingsRepo, _, _ := newTestService()
	doctorID := uuid.New()

	settings, err := svc.GetSettings(context.Background(), doctorID)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultAppointmentDuration, settings.AppointmentDuration)
	assert.Equal(t, model.DefaultAdvanceBookingDays, settings.AdvanceBookingDays)
	assert.False(t, settings.AllowWeekendAppointments)
	assert.Len(t, settingsRepo.settings, 1)

	// Second read returns the stored record, no duplicate create.
	_, err = svc.GetSettings(context.Background(), doctorID)
	require.NoError(t, err)
	assert.Len(t, settingsRepo.settings, 1)
}

func TestUpdateSettings(t *testing.T) {
	svc, _, _, _, inv := newTestService()
	doctorID := uuid.New()

	duration := 45
	weekend := true
	settings, err := svc.UpdateSettings(context.Background(), doctorID, &model.UpdateDoctorSettingsRequest{
		AppointmentDuration:      &duration,
		AllowWeekendAppointments: &weekend,
	})
	require.NoError(t, err)
	assert.Equal(t, 45, settings.AppointmentDuration)
	assert.True(t, settings.AllowWeekendAppointments)
	assert.Contains(t, inv.doctors, doctorID)

	bad := -1
	_, err = svc.UpdateSettings(context.Background(), doctorID, &model.UpdateDoctorSettingsRequest{
		BreakBetweenAppointments: &bad,
	})
	var verr *availability.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestCreateExceptionValidation(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	doctorID := uuid.New()
	date := model.NewDate(2026, time.March, 2)
	var verr *availability.ValidationError

	// Full-day block needs no times.
	exc, err := svc.CreateException(context.Background(), doctorID, &model.CreateExceptionRequest{
		ExceptionDate: date,
		ExceptionType: model.ExceptionTypeBlocked,
		Reason:        "conference",
	})
	require.NoError(t, err)
	assert.Equal(t, doctorID, exc.DoctorID)

	// Custom hours require both times.
	start := mins("14:00")
	_, err = svc.CreateException(context.Background(), doctorID, &model.CreateExceptionRequest{
		ExceptionDate: date,
		ExceptionType: model.ExceptionTypeCustomHours,
		StartTime:     &start,
	})
	require.ErrorAs(t, err, &verr)

	end := mins("13:00")
	_, err = svc.CreateException(context.Background(), doctorID, &model.CreateExceptionRequest{
		ExceptionDate: date,
		ExceptionType: model.ExceptionTypeCustomHours,
		StartTime:     &start,
		EndTime:       &end,
	})
	require.ErrorAs(t, err, &verr)
}

func TestDeleteException(t *testing.T) {
	svc, _, _, exceptionRepo, inv := newTestService()
	doctorID := uuid.New()

	exc, err := svc.CreateException(context.Background(), doctorID, &model.CreateExceptionRequest{
		ExceptionDate: model.NewDate(2026, time.March, 2),
		ExceptionType: model.ExceptionTypeBlocked,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteException(context.Background(), exc.ID))
	assert.Empty(t, exceptionRepo.exceptions)
	assert.Contains(t, inv.doctors, doctorID)
}
