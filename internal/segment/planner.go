// Package segment plans which portions of a timeline to keep after
// silence-based trimming.
package segment

import (
	"github.com/reelcut/reelcut-api/internal/interval"
)

// Plan converts ordered silence intervals into the ordered list of keep
// segments covering the non-silent timeline. Each silence interval keeps
// padding seconds of footage on both of its edges so speech is not clipped.
//
// Walking the silences in order: a keep segment runs from the cursor to the
// silence start plus padding, but only when that upper bound is ahead of the
// cursor (padding can otherwise push a segment into negative length). The
// cursor then advances to the silence end minus padding. Footage after the
// last silence is kept up to duration.
//
// All segments are clamped into [0, duration]; segments that collapse under
// clamping are dropped. No silences yields a single segment spanning the
// whole duration. The result is ordered, non-overlapping, and monotonic.
func Plan(silences []interval.Interval, duration, padding float64) []interval.Interval {
	if duration <= 0 {
		return nil
	}

	var raw []interval.Interval
	cursor := 0.0

	for _, s := range silences {
		keepEnd := s.Start + padding
		if keepEnd > cursor {
			raw = append(raw, interval.Interval{Start: cursor, End: keepEnd})
		}
		cursor = s.End - padding
	}

	if cursor < duration {
		raw = append(raw, interval.Interval{Start: cursor, End: duration})
	}

	segments := make([]interval.Interval, 0, len(raw))
	for _, seg := range raw {
		clamped, err := seg.Clamp(duration)
		if err != nil {
			continue
		}
		segments = append(segments, clamped)
	}

	return segments
}
