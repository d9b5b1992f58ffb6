package availability

import (
	"time"

	"github.com/google/uuid"

	"github.com/turnomed/scheduling-api/internal/model"
	"github.com/turnomed/scheduling-api/internal/timegrid"
)

// Engine derives bookable time slots for a doctor and date from a
// snapshot of the doctor's weekly schedule, settings, date exceptions
// and existing appointments. It is pure: no I/O, no mutation, safe for
// concurrent use.
type Engine struct {
	now func() time.Time
}

func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// NewEngineAt fixes the engine's notion of "today", used by tests and
// replay tooling.
func NewEngineAt(now func() time.Time) *Engine {
	return &Engine{now: now}
}

// ComputeInput is the full snapshot an availability query needs. All
// fields are read-only to the engine.
type ComputeInput struct {
	DoctorID   uuid.UUID
	Date       model.Date
	Entries    []*model.ScheduleEntry
	Settings   *model.DoctorSettings
	Exceptions []*model.AvailabilityException
	Existing   []*model.Appointment
}

// ComputeAvailableSlots resolves the weekly pattern, applies exceptions,
// generates candidate slots and marks those overlapping an existing
// appointment as unavailable. Dates outside the booking horizon and
// weekends (when disallowed) yield an empty slot list, not an error.
// The returned Resolution names the exception policy that was applied.
func (e *Engine) ComputeAvailableSlots(in ComputeInput) (*model.AvailableSlots, Resolution, error) {
	if err := validateSettings(in.Settings); err != nil {
		return nil, ResolutionNone, err
	}

	result := &model.AvailableSlots{
		DoctorID:       in.DoctorID,
		Date:           in.Date,
		AvailableSlots: []model.TimeSlot{},
	}

	if in.Date.IsWeekend() && !in.Settings.AllowWeekendAppointments {
		return result, ResolutionNone, nil
	}
	if !e.withinHorizon(in.Date, in.Settings.AdvanceBookingDays) {
		return result, ResolutionNone, nil
	}

	working, err := e.resolveWorkingIntervals(in)
	if err != nil {
		return nil, ResolutionNone, err
	}

	slots := generateAll(working.intervals, in.Settings.AppointmentDuration, in.Settings.BreakBetweenAppointments)
	markOccupied(slots, in.Existing)

	result.AvailableSlots = append(result.AvailableSlots, slots...)
	return result, working.resolution, nil
}

// CandidateSlots returns the slot grid before occupancy marking. The
// grid depends only on schedule, settings and exceptions, which makes it
// cacheable per (doctor, date) while occupancy stays fresh.
func (e *Engine) CandidateSlots(in ComputeInput) ([]model.TimeSlot, Resolution, error) {
	if err := validateSettings(in.Settings); err != nil {
		return nil, ResolutionNone, err
	}
	if in.Date.IsWeekend() && !in.Settings.AllowWeekendAppointments {
		return []model.TimeSlot{}, ResolutionNone, nil
	}
	if !e.withinHorizon(in.Date, in.Settings.AdvanceBookingDays) {
		return []model.TimeSlot{}, ResolutionNone, nil
	}
	working, err := e.resolveWorkingIntervals(in)
	if err != nil {
		return nil, ResolutionNone, err
	}
	return generateAll(working.intervals, in.Settings.AppointmentDuration, in.Settings.BreakBetweenAppointments), working.resolution, nil
}

// MarkOccupied applies existing appointments to a copy of the candidate
// grid, flipping overlapping slots to unavailable.
func MarkOccupied(candidates []model.TimeSlot, existing []*model.Appointment) []model.TimeSlot {
	slots := make([]model.TimeSlot, len(candidates))
	copy(slots, candidates)
	markOccupied(slots, existing)
	return slots
}

type workingSet struct {
	intervals  []timegrid.Interval
	resolution Resolution
}

func (e *Engine) resolveWorkingIntervals(in ComputeInput) (workingSet, error) {
	weekly, err := ResolveWeekly(in.Entries, in.Date)
	if err != nil {
		return workingSet{}, err
	}
	working, resolution, err := ApplyExceptions(weekly, exceptionsFor(in.Exceptions, in.Date))
	if err != nil {
		return workingSet{}, err
	}
	return workingSet{intervals: working, resolution: resolution}, nil
}

func (e *Engine) withinHorizon(date model.Date, advanceDays int) bool {
	today := model.DateOf(e.now())
	diff := date.DaysSince(today)
	return diff >= 0 && diff <= advanceDays
}

func validateSettings(settings *model.DoctorSettings) error {
	if settings == nil {
		return newConfigurationError("doctor has no scheduling settings")
	}
	if settings.AppointmentDuration <= 0 {
		return newConfigurationError("appointment duration must be positive, got %d", settings.AppointmentDuration)
	}
	if settings.BreakBetweenAppointments < 0 {
		return newConfigurationError("break between appointments cannot be negative, got %d", settings.BreakBetweenAppointments)
	}
	if settings.AdvanceBookingDays < 0 {
		return newConfigurationError("advance booking days cannot be negative, got %d", settings.AdvanceBookingDays)
	}
	return nil
}

// exceptionsFor filters to the queried date; repositories already scope
// their queries but the engine does not rely on that.
func exceptionsFor(exceptions []*model.AvailabilityException, date model.Date) []*model.AvailabilityException {
	var out []*model.AvailabilityException
	for _, exc := range exceptions {
		if exc.ExceptionDate.Equal(date.Time) {
			out = append(out, exc)
		}
	}
	return out
}

func markOccupied(slots []model.TimeSlot, existing []*model.Appointment) {
	for i := range slots {
		for _, apt := range existing {
			if !apt.Occupied() {
				continue
			}
			if slots[i].Interval().Overlaps(apt.Interval()) {
				slots[i].IsAvailable = false
				break
			}
		}
	}
}
