package detect

import (
	"math"
	"sort"
)

// Aggregate merges the detectors' raw output into the final report
// sequence. Events describing the same vehicle pair and conflict type at
// near-identical instants (within the dedup tolerance) collapse to the
// single worst event; the survivors are ordered by timestamp, then
// descending severity, then pair, then type.
//
// Dedup is deterministic: within a duplicate group the highest severity
// wins, ties break on earliest representative time, then smallest
// measured metric. Nothing else is dropped.
func Aggregate(events []Event, p Params) []Event {
	if len(events) == 0 {
		return nil
	}

	// Sort a copy so grouping scans adjacent candidates and the result
	// does not depend on detector or worker completion order.
	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool { return lessEvent(sorted[i], sorted[j]) })

	out := make([]Event, 0, len(sorted))
	for _, ev := range sorted {
		if i := duplicateIndex(out, ev, p.DedupTolerance); i >= 0 {
			if betterDuplicate(ev, out[i]) {
				out[i] = ev
			}
			continue
		}
		out = append(out, ev)
	}

	sort.Slice(out, func(i, j int) bool { return lessEvent(out[i], out[j]) })
	return out
}

// duplicateIndex finds an already-kept event that ev duplicates: same
// pair, same type, representative times within tol. Kept events are
// time-ordered, so scanning back until the tolerance is exceeded is
// enough.
func duplicateIndex(kept []Event, ev Event, tol float64) int {
	for i := len(kept) - 1; i >= 0; i-- {
		if ev.Time()-kept[i].Time() > tol {
			return -1
		}
		if kept[i].Pair() == ev.Pair() && kept[i].Type == ev.Type &&
			math.Abs(kept[i].Time()-ev.Time()) <= tol {
			return i
		}
	}
	return -1
}

// betterDuplicate reports whether a should replace b within a duplicate
// group.
func betterDuplicate(a, b Event) bool {
	if a.Severity.rank() != b.Severity.rank() {
		return a.Severity.rank() > b.Severity.rank()
	}
	if a.Time() != b.Time() {
		return a.Time() < b.Time()
	}
	return a.Distance < b.Distance
}

// lessEvent is the canonical report ordering.
func lessEvent(a, b Event) bool {
	if a.Time() != b.Time() {
		return a.Time() < b.Time()
	}
	if a.Severity.rank() != b.Severity.rank() {
		return a.Severity.rank() > b.Severity.rank()
	}
	if a.Pair() != b.Pair() {
		return a.Pair() < b.Pair()
	}
	if a.Type != b.Type {
		return a.Type < b.Type
	}
	return a.Distance < b.Distance
}
