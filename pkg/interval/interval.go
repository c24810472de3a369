// Package interval implements half-open [start, end) time intervals in UTC
// and the set operations the availability engine is built on. Overlap uses
// strict inequalities, so intervals that merely touch at an edge do not
// conflict.
package interval

import (
	"sort"
	"time"
)

// Interval is a half-open [Start, End) span of absolute time.
type Interval struct {
	Start time.Time
	End   time.Time
}

// New returns the interval [start, end).
func New(start, end time.Time) Interval {
	return Interval{Start: start, End: end}
}

// IsValid reports whether the interval has positive length.
func (i Interval) IsValid() bool {
	return i.Start.Before(i.End)
}

// Duration returns the length of the interval.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Overlaps reports whether i and other share at least one instant.
// Touching edges ([a,b) and [b,c)) do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Contains reports whether other lies entirely inside i.
func (i Interval) Contains(other Interval) bool {
	return !other.Start.Before(i.Start) && !other.End.After(i.End)
}

// Expand widens the interval by before on the left and after on the right.
func (i Interval) Expand(before, after time.Duration) Interval {
	return Interval{Start: i.Start.Add(-before), End: i.End.Add(after)}
}

// Clamp trims i to bounds. The result may be invalid (empty) if i lies
// entirely outside bounds.
func (i Interval) Clamp(bounds Interval) Interval {
	out := i
	if out.Start.Before(bounds.Start) {
		out.Start = bounds.Start
	}
	if out.End.After(bounds.End) {
		out.End = bounds.End
	}
	return out
}

// Merge normalizes a set of intervals into a minimal sorted disjoint set:
// invalid intervals are dropped, the rest are sorted by start, and
// overlapping or adjacent intervals are coalesced. Merge is idempotent -
// merging an already merged set returns an identical set.
func Merge(intervals []Interval) []Interval {
	valid := make([]Interval, 0, len(intervals))
	for _, iv := range intervals {
		if iv.IsValid() {
			valid = append(valid, iv)
		}
	}
	if len(valid) == 0 {
		return []Interval{}
	}

	sort.Slice(valid, func(a, b int) bool {
		return valid[a].Start.Before(valid[b].Start)
	})

	merged := make([]Interval, 0, len(valid))
	current := valid[0]
	for _, iv := range valid[1:] {
		// Примыкающие интервалы (current.End == iv.Start) тоже склеиваем
		if !iv.Start.After(current.End) {
			if iv.End.After(current.End) {
				current.End = iv.End
			}
			continue
		}
		merged = append(merged, current)
		current = iv
	}
	merged = append(merged, current)

	return merged
}

// Subtract removes the busy set from each of the base intervals and returns
// the remaining free intervals in ascending order. busy must be sorted and
// disjoint (the output of Merge).
func Subtract(base []Interval, busy []Interval) []Interval {
	free := make([]Interval, 0, len(base))

	for _, b := range base {
		if !b.IsValid() {
			continue
		}
		cursor := b.Start
		for _, bz := range busy {
			if !bz.End.After(cursor) {
				continue
			}
			if !bz.Start.Before(b.End) {
				break
			}
			if bz.Start.After(cursor) {
				free = append(free, Interval{Start: cursor, End: bz.Start})
			}
			if bz.End.After(cursor) {
				cursor = bz.End
			}
		}
		if cursor.Before(b.End) {
			free = append(free, Interval{Start: cursor, End: b.End})
		}
	}

	return free
}
