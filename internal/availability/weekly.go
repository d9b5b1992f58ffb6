package availability

import (
	"github.com/turnomed/scheduling-api/internal/model"
	"github.com/turnomed/scheduling-api/internal/timegrid"
)

// ResolveWeekly maps a calendar date to the doctor's recurring working
// intervals for that weekday. Entries use the 0=Sunday convention, which
// matches time.Weekday directly; the conversion happens here and nowhere
// else. Split shifts yield multiple intervals; overlapping entries are
// union-merged so slot generation never covers a minute twice.
func ResolveWeekly(entries []*model.ScheduleEntry, date model.Date) ([]timegrid.Interval, error) {
	weekday := date.WeekdayNumber()

	var intervals []timegrid.Interval
	for _, entry := range entries {
		if !entry.IsActive || entry.DayOfWeek != weekday {
			continue
		}
		iv := timegrid.NewInterval(entry.StartTime, entry.EndTime)
		if !iv.IsValid() {
			return nil, newValidationError("schedule_entry",
				"start_time %s must be before end_time %s", entry.StartTime.Clock(), entry.EndTime.Clock())
		}
		intervals = append(intervals, iv)
	}

	return timegrid.Merge(intervals), nil
}
