// Package interval provides the time interval value type shared by silence
// detection and segment planning. Intervals are half-open ranges in seconds.
package interval

import (
	"errors"
	"fmt"
)

// ErrInvalidInterval is returned when an interval has non-positive length
// or a negative start after validation or clamping.
var ErrInvalidInterval = errors.New("invalid interval: end must be greater than start and start must be >= 0")

// Interval is a half-open time range [Start, End) in seconds.
type Interval struct {
	Start float64
	End   float64
}

// New creates an Interval, validating that start >= 0 and end > start.
func New(start, end float64) (Interval, error) {
	if start < 0 || end <= start {
		return Interval{}, fmt.Errorf("%w: start=%.3f end=%.3f", ErrInvalidInterval, start, end)
	}
	return Interval{Start: start, End: end}, nil
}

// Duration returns the interval length in seconds.
func (i Interval) Duration() float64 {
	return i.End - i.Start
}

// Overlaps reports whether two intervals share any portion of the timeline.
// Touching intervals ([0,5) and [5,10)) do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}

// Clamp constrains the interval to [0, limit]. It returns ErrInvalidInterval
// if the clamped interval is empty or inverted.
func (i Interval) Clamp(limit float64) (Interval, error) {
	start := i.Start
	end := i.End
	if start < 0 {
		start = 0
	}
	if end > limit {
		end = limit
	}
	if end <= start {
		return Interval{}, fmt.Errorf("%w: clamped to [%.3f, %.3f] within [0, %.3f]", ErrInvalidInterval, start, end, limit)
	}
	return Interval{Start: start, End: end}, nil
}

// MergeAdjacent coalesces overlapping or touching intervals in an ordered
// slice. The input must be sorted by start time; the result preserves order
// and is non-overlapping.
func MergeAdjacent(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}

	merged := make([]Interval, 0, len(intervals))
	current := intervals[0]

	for _, next := range intervals[1:] {
		if next.Start <= current.End {
			if next.End > current.End {
				current.End = next.End
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}

	return append(merged, current)
}
