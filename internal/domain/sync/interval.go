package sync

import (
	"fmt"
	"time"
)

// DefaultWindow is the default sub-interval size used when splitting a fetch
// range for parallel-safe paging.
const DefaultWindow = 24 * time.Hour

// Interval is a half-open [Start, End) slice of the overall fetch range.
type Interval struct {
	Start time.Time
	End   time.Time
}

// String returns a compact representation for logs and error messages.
func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s)", i.Start.Format(time.RFC3339), i.End.Format(time.RFC3339))
}

// Duration returns the interval length.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// SplitRange splits [start, end] into contiguous, non-overlapping intervals of
// at most step each. The final interval is clamped to end, so the last slice
// may be shorter when the range is not evenly divisible. An equal start and
// end yield an empty slice; a start after end is rejected with ErrInvalidRange.
func SplitRange(start, end time.Time, step time.Duration) ([]Interval, error) {
	if start.After(end) {
		return nil, ErrInvalidRange
	}
	if step <= 0 {
		step = DefaultWindow
	}

	var intervals []Interval
	for cur := start; cur.Before(end); {
		next := cur.Add(step)
		if next.After(end) {
			next = end
		}
		intervals = append(intervals, Interval{Start: cur, End: next})
		cur = next
	}
	return intervals, nil
}
