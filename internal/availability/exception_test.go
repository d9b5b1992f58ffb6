package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turnomed/scheduling-api/internal/model"
	"github.com/turnomed/scheduling-api/internal/timegrid"
)

func clock(s string) *timegrid.Minutes {
	m, err := timegrid.Parse(s)
	if err != nil {
		panic(err)
	}
	return &m
}

func exception(typ model.ExceptionType, start, end *timegrid.Minutes) *model.AvailabilityException {
	return &model.AvailabilityException{
		ExceptionDate: monday,
		StartTime:     start,
		EndTime:       end,
		ExceptionType: typ,
	}
}

var weeklyMorning = []timegrid.Interval{{Start: 540, End: 720}} // 09:00-12:00

func TestApplyExceptionsPassThrough(t *testing.T) {
	got, resolution, err := ApplyExceptions(weeklyMorning, nil)
	require.NoError(t, err)
	assert.Equal(t, ResolutionNone, resolution)
	assert.Equal(t, weeklyMorning, got)
}

func TestApplyExceptionsFullDayBlock(t *testing.T) {
	got, resolution, err := ApplyExceptions(weeklyMorning, []*model.AvailabilityException{
		exception(model.ExceptionTypeBlocked, nil, nil),
	})
	require.NoError(t, err)
	assert.Equal(t, ResolutionBlockedDay, resolution)
	assert.Empty(t, got)
}

func TestApplyExceptionsCustomHoursReplace(t *testing.T) {
	got, resolution, err := ApplyExceptions(weeklyMorning, []*model.AvailabilityException{
		exception(model.ExceptionTypeCustomHours, clock("14:00"), clock("15:00")),
	})
	require.NoError(t, err)
	assert.Equal(t, ResolutionCustomHours, resolution)
	// Replaces, never merges with, the weekly pattern.
	assert.Equal(t, []timegrid.Interval{{Start: 840, End: 900}}, got)
}

func TestApplyExceptionsMultipleCustomHoursUnion(t *testing.T) {
	got, resolution, err := ApplyExceptions(weeklyMorning, []*model.AvailabilityException{
		exception(model.ExceptionTypeCustomHours, clock("14:00"), clock("16:00")),
		exception(model.ExceptionTypeCustomHours, clock("15:00"), clock("17:00")),
	})
	require.NoError(t, err)
	assert.Equal(t, ResolutionCustomHours, resolution)
	assert.Equal(t, []timegrid.Interval{{Start: 840, End: 1020}}, got)
}

func TestApplyExceptionsBlockedWinsOverCustomHours(t *testing.T) {
	got, resolution, err := ApplyExceptions(weeklyMorning, []*model.AvailabilityException{
		exception(model.ExceptionTypeCustomHours, clock("14:00"), clock("15:00")),
		exception(model.ExceptionTypeBlocked, nil, nil),
	})
	require.NoError(t, err)
	assert.Equal(t, ResolutionBlockedDay, resolution)
	assert.Empty(t, got)
}

func TestApplyExceptionsBlockedRangeSubtracts(t *testing.T) {
	got, resolution, err := ApplyExceptions(weeklyMorning, []*model.AvailabilityException{
		exception(model.ExceptionTypeBlocked, clock("10:00"), clock("11:00")),
	})
	require.NoError(t, err)
	assert.Equal(t, ResolutionBlockedRange, resolution)
	assert.Equal(t, []timegrid.Interval{
		{Start: 540, End: 600},
		{Start: 660, End: 720},
	}, got)
}

func TestApplyExceptionsMalformedCustomHours(t *testing.T) {
	var verr *ValidationError

	_, _, err := ApplyExceptions(weeklyMorning, []*model.AvailabilityException{
		exception(model.ExceptionTypeCustomHours, clock("14:00"), nil),
	})
	require.ErrorAs(t, err, &verr)

	_, _, err = ApplyExceptions(weeklyMorning, []*model.AvailabilityException{
		exception(model.ExceptionTypeCustomHours, clock("15:00"), clock("14:00")),
	})
	require.ErrorAs(t, err, &verr)
}
