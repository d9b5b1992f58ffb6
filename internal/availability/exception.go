package availability

import (
	"github.com/turnomed/scheduling-api/internal/model"
	"github.com/turnomed/scheduling-api/internal/timegrid"
)

// Resolution names the policy the exception resolver applied, so callers
// can log how a day's availability was derived.
type Resolution string

const (
	// ResolutionNone means no exception existed and the weekly pattern
	// passed through unchanged.
	ResolutionNone Resolution = "weekly"
	// ResolutionBlockedDay means a full-day block cleared the schedule.
	ResolutionBlockedDay Resolution = "blocked_day"
	// ResolutionBlockedRange means one or more timed blocks were
	// subtracted from the working intervals.
	ResolutionBlockedRange Resolution = "blocked_range"
	// ResolutionCustomHours means custom-hours exceptions replaced the
	// weekly pattern entirely.
	ResolutionCustomHours Resolution = "custom_hours"
)

// ApplyExceptions overrides the resolved weekly intervals with any
// exceptions recorded for the date. Precedence, most restrictive first:
// a full-day block clears everything; timed blocks are subtracted from
// whatever custom hours or weekly intervals remain; custom hours replace
// (never merge with) the weekly pattern, multiple custom-hours
// exceptions union together.
func ApplyExceptions(weekly []timegrid.Interval, exceptions []*model.AvailabilityException) ([]timegrid.Interval, Resolution, error) {
	if len(exceptions) == 0 {
		return weekly, ResolutionNone, nil
	}

	var custom []timegrid.Interval
	var blockedRanges []timegrid.Interval
	for _, exc := range exceptions {
		switch exc.ExceptionType {
		case model.ExceptionTypeBlocked:
			if exc.StartTime == nil && exc.EndTime == nil {
				return nil, ResolutionBlockedDay, nil
			}
			iv, err := exceptionInterval(exc)
			if err != nil {
				return nil, ResolutionNone, err
			}
			blockedRanges = append(blockedRanges, iv)
		case model.ExceptionTypeCustomHours:
			iv, err := exceptionInterval(exc)
			if err != nil {
				return nil, ResolutionNone, err
			}
			custom = append(custom, iv)
		default:
			return nil, ResolutionNone, newValidationError("exception_type",
				"unknown exception type %q", exc.ExceptionType)
		}
	}

	resolution := ResolutionNone
	working := weekly
	if len(custom) > 0 {
		working = timegrid.Merge(custom)
		resolution = ResolutionCustomHours
	}
	if len(blockedRanges) > 0 {
		working = subtractAll(working, blockedRanges)
		resolution = ResolutionBlockedRange
	}

	return working, resolution, nil
}

func exceptionInterval(exc *model.AvailabilityException) (timegrid.Interval, error) {
	if exc.StartTime == nil || exc.EndTime == nil {
		return timegrid.Interval{}, newValidationError("exception",
			"%s exception for %s requires both start_time and end_time", exc.ExceptionType, exc.ExceptionDate)
	}
	iv := timegrid.NewInterval(*exc.StartTime, *exc.EndTime)
	if !iv.IsValid() {
		return timegrid.Interval{}, newValidationError("exception",
			"start_time %s must be before end_time %s", exc.StartTime.Clock(), exc.EndTime.Clock())
	}
	return iv, nil
}

func subtractAll(working, blocked []timegrid.Interval) []timegrid.Interval {
	for _, b := range blocked {
		var next []timegrid.Interval
		for _, iv := range working {
			next = append(next, iv.Sub(b)...)
		}
		working = next
	}
	return working
}
