package airspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTrajectory(t *testing.T, id string, wps []Waypoint) Trajectory {
	t.Helper()
	tr, err := NewTrajectory(id, wps)
	require.NoError(t, err)
	return tr
}

func TestOverlap(t *testing.T) {
	t.Parallel()

	a := mustTrajectory(t, "a", []Waypoint{wp(0, 0, 0, 0), wp(10, 0, 0, 10)})
	b := mustTrajectory(t, "b", []Waypoint{wp(0, 0, 0, 5), wp(10, 0, 0, 15)})
	c := mustTrajectory(t, "c", []Waypoint{wp(0, 0, 0, 20), wp(10, 0, 0, 30)})
	d := mustTrajectory(t, "d", []Waypoint{wp(0, 0, 0, 10), wp(10, 0, 0, 12)})

	t.Run("partial overlap", func(t *testing.T) {
		t.Parallel()
		start, end, ok := Overlap(a, b)
		require.True(t, ok)
		assert.Equal(t, 5.0, start)
		assert.Equal(t, 10.0, end)
	})

	t.Run("disjoint spans", func(t *testing.T) {
		t.Parallel()
		_, _, ok := Overlap(a, c)
		assert.False(t, ok)
	})

	t.Run("single shared instant counts as overlap", func(t *testing.T) {
		t.Parallel()
		start, end, ok := Overlap(a, d)
		require.True(t, ok)
		assert.Equal(t, 10.0, start)
		assert.Equal(t, 10.0, end)
	})
}

func TestSamplePair(t *testing.T) {
	t.Parallel()

	t.Run("no overlap yields no samples", func(t *testing.T) {
		t.Parallel()
		a := mustTrajectory(t, "a", []Waypoint{wp(0, 0, 0, 0), wp(10, 0, 0, 10)})
		b := mustTrajectory(t, "b", []Waypoint{wp(0, 0, 0, 20), wp(10, 0, 0, 30)})
		assert.Nil(t, SamplePair(a, b, 1))
	})

	t.Run("shared timestamps across the overlap", func(t *testing.T) {
		t.Parallel()
		a := mustTrajectory(t, "a", []Waypoint{wp(0, 0, 0, 0), wp(100, 0, 0, 10)})
		b := mustTrajectory(t, "b", []Waypoint{wp(0, 50, 0, 4), wp(100, 50, 0, 14)})

		samples := SamplePair(a, b, 2)
		require.NotEmpty(t, samples)
		assert.Equal(t, 4.0, samples[0].Time)
		assert.Equal(t, 10.0, samples[len(samples)-1].Time)
		for i := 1; i < len(samples); i++ {
			assert.Greater(t, samples[i].Time, samples[i-1].Time)
		}
		// Both positions interpolated at the same instant.
		assert.InDelta(t, 40, samples[0].A.X, 1e-9)
		assert.InDelta(t, 0, samples[0].B.X, 1e-9)
	})

	t.Run("endpoint included when step does not divide the span", func(t *testing.T) {
		t.Parallel()
		a := mustTrajectory(t, "a", []Waypoint{wp(0, 0, 0, 0), wp(10, 0, 0, 10)})
		b := mustTrajectory(t, "b", []Waypoint{wp(0, 1, 0, 0), wp(10, 1, 0, 10)})

		samples := SamplePair(a, b, 3)
		require.NotEmpty(t, samples)
		assert.Equal(t, 10.0, samples[len(samples)-1].Time)
	})

	t.Run("default step uses smaller native cadence", func(t *testing.T) {
		t.Parallel()
		a := mustTrajectory(t, "a", []Waypoint{wp(0, 0, 0, 0), wp(10, 0, 0, 2), wp(20, 0, 0, 4)})
		b := mustTrajectory(t, "b", []Waypoint{wp(0, 1, 0, 0), wp(20, 1, 0, 4)})

		samples := SamplePair(a, b, 0)
		// Cadence 2s (a's native step) across [0, 4].
		require.Len(t, samples, 3)
		assert.Equal(t, []float64{0, 2, 4}, []float64{samples[0].Time, samples[1].Time, samples[2].Time})
	})

	t.Run("degenerate single-instant overlap", func(t *testing.T) {
		t.Parallel()
		a := mustTrajectory(t, "a", []Waypoint{wp(0, 0, 0, 0), wp(10, 0, 0, 10)})
		b := mustTrajectory(t, "b", []Waypoint{wp(10, 0, 0, 10), wp(20, 0, 0, 20)})

		samples := SamplePair(a, b, 0)
		require.Len(t, samples, 1)
		assert.Equal(t, 10.0, samples[0].Time)
		assert.Equal(t, samples[0].A, samples[0].B)
	})
}

func TestSampleSingleTrajectory(t *testing.T) {
	t.Parallel()

	tr := mustTrajectory(t, "uav-9", []Waypoint{wp(0, 0, 100, 0), wp(100, 0, 100, 10)})
	samples := Sample(tr, 5)
	require.Len(t, samples, 3)
	for _, s := range samples {
		assert.Equal(t, "uav-9", s.VehicleID)
		assert.Equal(t, 100.0, s.Pos.Z)
	}
	assert.Equal(t, 0.0, samples[0].Time)
	assert.Equal(t, 10.0, samples[2].Time)
}

func TestHorizontalDist(t *testing.T) {
	t.Parallel()

	a := wp(0, 0, 100, 0)
	b := wp(3, 4, 500, 0)
	assert.Equal(t, 5.0, HorizontalDist(a.Pos, b.Pos))
}
