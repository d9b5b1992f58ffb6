package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turnomed/scheduling-api/internal/model"
	"github.com/turnomed/scheduling-api/internal/timegrid"
)

// 2026-01-05 is a Monday; weekday numbering is 0=Sunday.
var (
	monday   = model.NewDate(2026, time.January, 5)
	saturday = model.NewDate(2026, time.January, 3)
	sunday   = model.NewDate(2026, time.January, 4)
)

func entry(day int, start, end string, active bool) *model.ScheduleEntry {
	s, err := timegrid.Parse(start)
	if err != nil {
		panic(err)
	}
	e, err := timegrid.Parse(end)
	if err != nil {
		panic(err)
	}
	return &model.ScheduleEntry{DayOfWeek: day, StartTime: s, EndTime: e, IsActive: active}
}

func TestResolveWeeklyMatchesWeekday(t *testing.T) {
	entries := []*model.ScheduleEntry{
		entry(1, "09:00", "12:00", true),
		entry(2, "14:00", "18:00", true),
	}

	got, err := ResolveWeekly(entries, monday)
	require.NoError(t, err)
	assert.Equal(t, []timegrid.Interval{{Start: 540, End: 720}}, got)
}

func TestResolveWeeklyDayOff(t *testing.T) {
	entries := []*model.ScheduleEntry{
		entry(2, "09:00", "12:00", true),
	}

	got, err := ResolveWeekly(entries, monday)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestResolveWeeklyIgnoresInactive(t *testing.T) {
	entries := []*model.ScheduleEntry{
		entry(1, "09:00", "12:00", false),
	}

	got, err := ResolveWeekly(entries, monday)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestResolveWeeklySplitShifts(t *testing.T) {
	entries := []*model.ScheduleEntry{
		entry(1, "14:00", "18:00", true),
		entry(1, "09:00", "12:00", true),
	}

	got, err := ResolveWeekly(entries, monday)
	require.NoError(t, err)
	assert.Equal(t, []timegrid.Interval{
		{Start: 540, End: 720},
		{Start: 840, End: 1080},
	}, got)
}

func TestResolveWeeklyMergesOverlaps(t *testing.T) {
	entries := []*model.ScheduleEntry{
		entry(1, "09:00", "13:00", true),
		entry(1, "12:00", "15:00", true),
	}

	got, err := ResolveWeekly(entries, monday)
	require.NoError(t, err)
	assert.Equal(t, []timegrid.Interval{{Start: 540, End: 900}}, got)
}

func TestResolveWeeklyRejectsInvertedRange(t *testing.T) {
	entries := []*model.ScheduleEntry{
		entry(1, "12:00", "09:00", true),
	}

	_, err := ResolveWeekly(entries, monday)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestResolveWeeklySundayConvention(t *testing.T) {
	entries := []*model.ScheduleEntry{
		entry(0, "10:00", "12:00", true),
	}

	got, err := ResolveWeekly(entries, sunday)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = ResolveWeekly(entries, monday)
	require.NoError(t, err)
	assert.Empty(t, got)
}
