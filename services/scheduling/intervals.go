package scheduling

import "sort"

// interval is a half-open [start,end) range in minutes from midnight.
type interval struct {
	start int
	end   int
}

// expand widens the interval by buf minutes on both sides, clamped at 0.
func (iv interval) expand(buf int) interval {
	s := iv.start - buf
	if s < 0 {
		s = 0
	}
	return interval{start: s, end: iv.end + buf}
}

// mergeIntervals coalesces overlapping or touching intervals into a sorted
// minimal set.
func mergeIntervals(xs []interval) []interval {
	if len(xs) == 0 {
		return nil
	}
	sorted := make([]interval, len(xs))
	copy(sorted, xs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].start < sorted[j].start })

	merged := []interval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if iv.start <= last.end {
			if iv.end > last.end {
				last.end = iv.end
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// subtractIntervals returns the free sub-intervals of window after removing
// busy. busy must be merged (sorted, non-overlapping).
func subtractIntervals(window interval, busy []interval) []interval {
	var free []interval
	cursor := window.start
	for _, b := range busy {
		if b.end <= cursor || b.start >= window.end {
			continue
		}
		if b.start > cursor {
			free = append(free, interval{start: cursor, end: b.start})
		}
		if b.end > cursor {
			cursor = b.end
		}
	}
	if cursor < window.end {
		free = append(free, interval{start: cursor, end: window.end})
	}
	return free
}

// covers reports whether candidate lies fully inside any of the free
// intervals.
func covers(free []interval, candidate interval) bool {
	for _, f := range free {
		if candidate.start >= f.start && candidate.end <= f.end {
			return true
		}
	}
	return false
}

// gridStartsWithin enumerates candidate start times on the grid inside a free
// interval. A start s qualifies when the session plus its trailing travel
// buffer, [s, s+duration+buffer), still fits in the interval.
func gridStartsWithin(free interval, durationMin, bufferMin, gridMin int) []int {
	if durationMin <= 0 || gridMin <= 0 {
		return nil
	}
	first := free.start
	if rem := first % gridMin; rem != 0 {
		first += gridMin - rem
	}
	var starts []int
	for s := first; s+durationMin+bufferMin <= free.end; s += gridMin {
		starts = append(starts, s)
	}
	return starts
}
