package availability

import (
	"github.com/turnomed/scheduling-api/internal/model"
	"github.com/turnomed/scheduling-api/internal/timegrid"
)

// GenerateSlots partitions a working interval into fixed-length slots
// separated by a gap. Slots never overlap and never extend past the
// interval end; an interval shorter than the duration yields none, as
// does a non-positive duration or a negative gap.
func GenerateSlots(iv timegrid.Interval, duration, gap int) []model.TimeSlot {
	if duration <= 0 || gap < 0 {
		return nil
	}
	var slots []model.TimeSlot
	for cursor := iv.Start; cursor.Add(duration) <= iv.End; cursor = cursor.Add(duration + gap) {
		slots = append(slots, model.TimeSlot{
			StartTime:   cursor,
			EndTime:     cursor.Add(duration),
			IsAvailable: true,
		})
	}
	return slots
}

// generateAll runs the generator over each working interval in order and
// concatenates the results.
func generateAll(intervals []timegrid.Interval, duration, gap int) []model.TimeSlot {
	var slots []model.TimeSlot
	for _, iv := range intervals {
		slots = append(slots, GenerateSlots(iv, duration, gap)...)
	}
	return slots
}
