package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/conflict.report/internal/airspace"
)

// shiftedPair builds the schedule-slip scenario: B flies A's exact path
// shifted later by offset seconds. Speed is 10 m/s so simultaneous
// separation stays comfortably above the spatial threshold.
func shiftedPair(t *testing.T, offset float64) (airspace.Trajectory, airspace.Trajectory) {
	t.Helper()
	a := mustTrajectory(t, "uav-a", []airspace.Waypoint{
		wp(0, 0, 100, 0),
		wp(1000, 0, 100, 100),
	})
	b := mustTrajectory(t, "uav-b", []airspace.Waypoint{
		wp(0, 0, 100, offset),
		wp(1000, 0, 100, 100+offset),
	})
	return a, b
}

func TestDetectTemporalShiftedPath(t *testing.T) {
	t.Parallel()

	a, b := shiftedPair(t, 5)
	p := DefaultParams()
	p.SampleStep = 10

	events := DetectTemporal(a, b, p)
	require.NotEmpty(t, events)
	for _, ev := range events {
		assert.Equal(t, ConflictTemporal, ev.Type)
		assert.InDelta(t, 5, ev.TimeOffset, 1e-9)
		assert.NotEqual(t, ev.Time1, ev.Time2)
		assert.Less(t, ev.Distance, p.SpatialThreshold)
	}

	// At identical timestamps the two vehicles are 50m apart, so the
	// same pair produces no spatial events: the detectors partition the
	// near-miss cleanly.
	assert.Empty(t, DetectSpatial(a, b, p))
}

func TestDetectTemporalExcludesSimultaneous(t *testing.T) {
	t.Parallel()

	// Identical paths flown at identical times: pure spatial conflict,
	// zero time offset everywhere. The temporal detector must stay quiet.
	a, b := shiftedPair(t, 0)
	p := DefaultParams()
	p.SampleStep = 10

	assert.Empty(t, DetectTemporal(a, b, p))
	assert.NotEmpty(t, DetectSpatial(a, b, p))
}

func TestDetectTemporalEpsilonBoundary(t *testing.T) {
	t.Parallel()

	p := DefaultParams()
	p.SampleStep = 10
	p.TemporalEpsilon = 5

	// Offset exactly at the epsilon is still "simultaneous".
	a, b := shiftedPair(t, 5)
	assert.Empty(t, DetectTemporal(a, b, p))

	// Offset above the epsilon is temporal territory.
	a, b = shiftedPair(t, 6)
	p.SampleStep = 2
	assert.NotEmpty(t, DetectTemporal(a, b, p))
}

func TestDetectTemporalWindowBoundary(t *testing.T) {
	t.Parallel()

	p := DefaultParams()
	p.SampleStep = 10

	// Offset exactly at the window is excluded (strict inequality).
	a, b := shiftedPair(t, p.TimeWindow)
	assert.Empty(t, DetectTemporal(a, b, p))

	// Offset beyond the window is excluded.
	a, b = shiftedPair(t, p.TimeWindow+10)
	assert.Empty(t, DetectTemporal(a, b, p))
}

func TestDetectTemporalSeverityTracksDistance(t *testing.T) {
	t.Parallel()

	// B revisits A's position 8 seconds later with a 5m lateral offset:
	// distance 5 puts it in the high band regardless of the offset size.
	a := mustTrajectory(t, "uav-a", []airspace.Waypoint{
		wp(0, 0, 100, 0),
		wp(1000, 0, 100, 100),
	})
	b := mustTrajectory(t, "uav-b", []airspace.Waypoint{
		wp(0, 5, 100, 8),
		wp(1000, 5, 100, 108),
	})
	p := DefaultParams()
	p.SampleStep = 10

	events := DetectTemporal(a, b, p)
	require.NotEmpty(t, events)
	for _, ev := range events {
		assert.Equal(t, SeverityHigh, ev.Severity)
		assert.InDelta(t, 5, ev.Distance, 1e-9)
		assert.InDelta(t, 8, ev.TimeOffset, 1e-9)
	}
}
