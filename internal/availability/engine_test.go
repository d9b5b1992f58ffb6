package availability

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turnomed/scheduling-api/internal/model"
)

// Engine fixed at Thursday 2026-01-01; the Monday under test is 4 days out.
func testEngine() *Engine {
	return NewEngineAt(func() time.Time {
		return time.Date(2026, time.January, 1, 8, 0, 0, 0, time.UTC)
	})
}

func testSettings() *model.DoctorSettings {
	return &model.DoctorSettings{
		AppointmentDuration:      30,
		BreakBetweenAppointments: 10,
		AdvanceBookingDays:       30,
		AllowWeekendAppointments: false,
	}
}

func mondayMorningInput(doctorID uuid.UUID) ComputeInput {
	return ComputeInput{
		DoctorID: doctorID,
		Date:     monday,
		Entries:  []*model.ScheduleEntry{entry(1, "09:00", "12:00", true)},
		Settings: testSettings(),
	}
}

func slotStarts(slots []model.TimeSlot) []string {
	starts := make([]string, len(slots))
	for i, s := range slots {
		starts[i] = s.StartTime.Clock()
	}
	return starts
}

func TestComputeAvailableSlotsBasic(t *testing.T) {
	doctorID := uuid.New()
	result, resolution, err := testEngine().ComputeAvailableSlots(mondayMorningInput(doctorID))
	require.NoError(t, err)

	assert.Equal(t, doctorID, result.DoctorID)
	assert.Equal(t, monday, result.Date)
	assert.Equal(t, ResolutionNone, resolution)
	assert.Equal(t, []string{"09:00", "09:40", "10:20", "11:00"}, slotStarts(result.AvailableSlots))
	for _, s := range result.AvailableSlots {
		assert.True(t, s.IsAvailable)
	}
}

func TestComputeAvailableSlotsMissingSettings(t *testing.T) {
	in := mondayMorningInput(uuid.New())
	in.Settings = nil

	_, _, err := testEngine().ComputeAvailableSlots(in)
	var cerr *ConfigurationError
	require.ErrorAs(t, err, &cerr)
}

func TestComputeAvailableSlotsInvalidDuration(t *testing.T) {
	in := mondayMorningInput(uuid.New())
	in.Settings.AppointmentDuration = 0

	_, _, err := testEngine().ComputeAvailableSlots(in)
	var cerr *ConfigurationError
	require.ErrorAs(t, err, &cerr)
}

func TestComputeAvailableSlotsWeekendPolicy(t *testing.T) {
	in := mondayMorningInput(uuid.New())
	in.Date = saturday
	in.Entries = []*model.ScheduleEntry{entry(6, "09:00", "12:00", true)}

	result, _, err := testEngine().ComputeAvailableSlots(in)
	require.NoError(t, err)
	assert.Empty(t, result.AvailableSlots)

	in.Settings.AllowWeekendAppointments = true
	result, _, err = testEngine().ComputeAvailableSlots(in)
	require.NoError(t, err)
	assert.Len(t, result.AvailableSlots, 4)
}

func TestComputeAvailableSlotsBookingHorizon(t *testing.T) {
	eng := testEngine()

	in := mondayMorningInput(uuid.New())
	in.Settings.AdvanceBookingDays = 3 // Monday is 4 days from "today"

	result, _, err := eng.ComputeAvailableSlots(in)
	require.NoError(t, err)
	assert.Empty(t, result.AvailableSlots)

	// Past dates are likewise empty, not an error.
	in = mondayMorningInput(uuid.New())
	in.Date = model.NewDate(2025, time.December, 29) // Monday before "today"
	result, _, err = eng.ComputeAvailableSlots(in)
	require.NoError(t, err)
	assert.Empty(t, result.AvailableSlots)
}

func TestComputeAvailableSlotsBlockedDay(t *testing.T) {
	in := mondayMorningInput(uuid.New())
	in.Exceptions = []*model.AvailabilityException{
		exception(model.ExceptionTypeBlocked, nil, nil),
	}

	result, resolution, err := testEngine().ComputeAvailableSlots(in)
	require.NoError(t, err)
	assert.Equal(t, ResolutionBlockedDay, resolution)
	assert.Empty(t, result.AvailableSlots)
}

func TestComputeAvailableSlotsCustomHours(t *testing.T) {
	in := mondayMorningInput(uuid.New())
	in.Exceptions = []*model.AvailabilityException{
		exception(model.ExceptionTypeCustomHours, clock("14:00"), clock("15:00")),
	}

	result, resolution, err := testEngine().ComputeAvailableSlots(in)
	require.NoError(t, err)
	assert.Equal(t, ResolutionCustomHours, resolution)
	// Slots come only from 14:00-15:00; 09:00-12:00 is ignored.
	assert.Equal(t, []string{"14:00"}, slotStarts(result.AvailableSlots))
}

func TestComputeAvailableSlotsIgnoresOtherDatesExceptions(t *testing.T) {
	in := mondayMorningInput(uuid.New())
	exc := exception(model.ExceptionTypeBlocked, nil, nil)
	exc.ExceptionDate = model.NewDate(2026, time.January, 6)
	in.Exceptions = []*model.AvailabilityException{exc}

	result, _, err := testEngine().ComputeAvailableSlots(in)
	require.NoError(t, err)
	assert.Len(t, result.AvailableSlots, 4)
}

func TestComputeAvailableSlotsOccupancy(t *testing.T) {
	in := mondayMorningInput(uuid.New())
	in.Existing = []*model.Appointment{
		{StartTime: *clock("10:20"), EndTime: *clock("10:50"), Status: model.AppointmentStatusScheduled},
	}

	result, _, err := testEngine().ComputeAvailableSlots(in)
	require.NoError(t, err)
	require.Len(t, result.AvailableSlots, 4)

	for _, s := range result.AvailableSlots {
		if s.StartTime.Clock() == "10:20" {
			assert.False(t, s.IsAvailable)
		} else {
			assert.True(t, s.IsAvailable, s.StartTime.Clock())
		}
	}
}

func TestComputeAvailableSlotsCancelledAppointmentFreesSlot(t *testing.T) {
	in := mondayMorningInput(uuid.New())
	in.Existing = []*model.Appointment{
		{StartTime: *clock("10:20"), EndTime: *clock("10:50"), Status: model.AppointmentStatusCancelled},
	}

	result, _, err := testEngine().ComputeAvailableSlots(in)
	require.NoError(t, err)
	for _, s := range result.AvailableSlots {
		assert.True(t, s.IsAvailable)
	}
}

func TestComputeAvailableSlotsNoSchedule(t *testing.T) {
	in := ComputeInput{
		DoctorID: uuid.New(),
		Date:     monday,
		Settings: testSettings(),
	}

	result, _, err := testEngine().ComputeAvailableSlots(in)
	require.NoError(t, err)
	assert.Empty(t, result.AvailableSlots)
}

func TestMarkOccupiedCopies(t *testing.T) {
	candidates := []model.TimeSlot{
		{StartTime: *clock("09:00"), EndTime: *clock("09:30"), IsAvailable: true},
	}
	marked := MarkOccupied(candidates, []*model.Appointment{
		{StartTime: *clock("09:00"), EndTime: *clock("09:30"), Status: model.AppointmentStatusConfirmed},
	})

	assert.False(t, marked[0].IsAvailable)
	// The shared candidate grid stays untouched.
	assert.True(t, candidates[0].IsAvailable)
}
