package airspace

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// MinSampleStep is the floor for the sampling cadence. Degenerate native
// steps (single-waypoint trajectories, sub-decisecond waypoint spacing)
// are clamped up to this to bound sample counts.
const MinSampleStep = 0.1

// PositionSample is an ephemeral snapshot of one vehicle's interpolated
// position at a sample instant.
type PositionSample struct {
	VehicleID string
	Time      float64
	Pos       r3.Vec
}

// PairSample holds both vehicles' interpolated positions at one shared
// sample instant. The spatial and altitude detectors operate on these.
type PairSample struct {
	Time float64
	A    r3.Vec
	B    r3.Vec
}

// Overlap computes the intersection of two trajectories' time spans.
// ok is false when the spans do not intersect; a single shared instant
// (start == end) counts as overlap.
func Overlap(a, b Trajectory) (start, end float64, ok bool) {
	aStart, aEnd := a.Span()
	bStart, bEnd := b.Span()
	start = max(aStart, bStart)
	end = min(aEnd, bEnd)
	return start, end, start <= end
}

// defaultPairStep picks the sampling cadence for a pair: the smaller of
// the two native waypoint cadences, clamped to MinSampleStep.
func defaultPairStep(a, b Trajectory) float64 {
	step := a.NativeStep()
	if bs := b.NativeStep(); bs > 0 && (step == 0 || bs < step) {
		step = bs
	}
	if step < MinSampleStep {
		step = MinSampleStep
	}
	return step
}

// sampleTimes generates the shared instants for [start, end] at the given
// step. The end of the interval is always included so boundary waypoints
// are never skipped by step rounding.
func sampleTimes(start, end, step float64) []float64 {
	if end < start {
		return nil
	}
	if end == start {
		return []float64{start}
	}
	n := int((end-start)/step) + 1
	times := make([]float64, 0, n+1)
	for i := 0; i < n; i++ {
		times = append(times, start+float64(i)*step)
	}
	if last := times[len(times)-1]; end-last > 1e-9 {
		times = append(times, end)
	}
	return times
}

// SamplePair produces paired position samples for two trajectories at
// identical timestamps across their overlapping interval. step <= 0 means
// use the pair's native cadence. No overlap yields nil: the pair simply
// cannot conflict, which is not an error.
func SamplePair(a, b Trajectory, step float64) []PairSample {
	start, end, ok := Overlap(a, b)
	if !ok {
		return nil
	}
	if step <= 0 {
		step = defaultPairStep(a, b)
	}

	times := sampleTimes(start, end, step)
	samples := make([]PairSample, 0, len(times))
	for _, t := range times {
		posA, errA := a.PositionAt(t)
		posB, errB := b.PositionAt(t)
		if errA != nil || errB != nil {
			// Times come from the computed overlap, so both lookups are
			// in range; float noise at the boundary is skipped, not fatal.
			continue
		}
		samples = append(samples, PairSample{Time: t, A: posA, B: posB})
	}
	return samples
}

// Sample produces position samples for a single trajectory across its
// whole span. The temporal detector and the visualizer consume these.
func Sample(tr Trajectory, step float64) []PositionSample {
	start, end := tr.Span()
	if step <= 0 {
		step = tr.NativeStep()
		if step < MinSampleStep {
			step = MinSampleStep
		}
	}

	times := sampleTimes(start, end, step)
	samples := make([]PositionSample, 0, len(times))
	for _, t := range times {
		pos, err := tr.PositionAt(t)
		if err != nil {
			continue
		}
		samples = append(samples, PositionSample{VehicleID: tr.VehicleID, Time: t, Pos: pos})
	}
	return samples
}

// HorizontalDist returns the XY-plane distance between two positions.
func HorizontalDist(a, b r3.Vec) float64 {
	return r3.Norm(r3.Vec{X: a.X - b.X, Y: a.Y - b.Y})
}
