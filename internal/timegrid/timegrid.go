package timegrid

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// Minutes is a time of day expressed as minutes since midnight (0-1439).
// It is the only time-of-day representation used inside the scheduling
// engine; "HH:MM" strings exist at the JSON and SQL boundaries only.
type Minutes int

const (
	MinutesPerDay = 24 * 60
	clockLayout   = "15:04"
)

// Parse converts an "HH:MM" string to Minutes.
func Parse(s string) (Minutes, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return Minutes(t.Hour()*60 + t.Minute()), nil
}

// Clock formats the value as "HH:MM".
func (m Minutes) Clock() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

func (m Minutes) Valid() bool {
	return m >= 0 && m < MinutesPerDay
}

// Add advances the time of day by a duration in minutes. The result may
// exceed the end of the day; callers bound it against their interval.
func (m Minutes) Add(d int) Minutes {
	return m + Minutes(d)
}

func (m Minutes) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Clock())
}

func (m *Minutes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("time of day must be an \"HH:MM\" string: %w", err)
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Scan accepts Postgres TIME columns, which arrive as time.Time, string
// or []byte depending on the driver.
func (m *Minutes) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*m = Minutes(v.Hour()*60 + v.Minute())
		return nil
	case []byte:
		return m.scanString(string(v))
	case string:
		return m.scanString(v)
	default:
		return fmt.Errorf("cannot scan %T into timegrid.Minutes", src)
	}
}

func (m *Minutes) scanString(s string) error {
	// TIME columns include seconds; trim to HH:MM.
	if len(s) > 5 {
		s = s[:5]
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Minutes) Value() (driver.Value, error) {
	return m.Clock() + ":00", nil
}

// Interval is a half-open time-of-day range [Start, End).
type Interval struct {
	Start Minutes
	End   Minutes
}

func NewInterval(start, end Minutes) Interval {
	return Interval{Start: start, End: end}
}

// Duration returns the interval length in minutes.
func (iv Interval) Duration() int {
	return int(iv.End - iv.Start)
}

func (iv Interval) IsValid() bool {
	return iv.Start.Valid() && iv.End.Valid() && iv.Start < iv.End
}

func (iv Interval) Contains(m Minutes) bool {
	return m >= iv.Start && m < iv.End
}

// Overlaps reports whether the two half-open intervals share any minute.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

// Sub removes other from iv, yielding zero, one or two remaining
// intervals.
func (iv Interval) Sub(other Interval) []Interval {
	if !iv.Overlaps(other) {
		return []Interval{iv}
	}
	var out []Interval
	if other.Start > iv.Start {
		out = append(out, Interval{Start: iv.Start, End: other.Start})
	}
	if other.End < iv.End {
		out = append(out, Interval{Start: other.End, End: iv.End})
	}
	return out
}

// Merge sorts intervals by start and unions any that overlap or touch, so
// downstream slot generation never sees the same minute twice.
func Merge(ivs []Interval) []Interval {
	if len(ivs) == 0 {
		return nil
	}
	sorted := make([]Interval, len(ivs))
	copy(sorted, ivs)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start == sorted[j].Start {
			return sorted[i].End < sorted[j].End
		}
		return sorted[i].Start < sorted[j].Start
	})

	merged := []Interval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if iv.Start <= last.End {
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}
