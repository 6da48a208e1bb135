package detect

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func spatialEvent(v1, v2 string, at float64, sev Severity, dist float64) Event {
	return newPairEvent(ConflictSpatial, sev, v1, v2, at, at,
		r3.Vec{X: at}, r3.Vec{X: at, Y: dist}, dist, 0)
}

func TestAggregateDedupKeepsWorst(t *testing.T) {
	t.Parallel()

	p := DefaultParams()
	events := []Event{
		spatialEvent("a", "b", 5.0, SeverityLow, 25),
		spatialEvent("a", "b", 5.2, SeverityHigh, 4),
		spatialEvent("a", "b", 5.4, SeverityMedium, 12),
	}

	out := Aggregate(events, p)
	require.Len(t, out, 1)
	assert.Equal(t, SeverityHigh, out[0].Severity)
	assert.Equal(t, 4.0, out[0].Distance)
}

func TestAggregateSeparatesByPairTypeAndTime(t *testing.T) {
	t.Parallel()

	p := DefaultParams()
	temporal := newPairEvent(ConflictTemporal, SeverityLow, "a", "b", 5.0, 9.0,
		r3.Vec{}, r3.Vec{}, 22, 4)
	events := []Event{
		spatialEvent("a", "b", 5.0, SeverityLow, 25),
		spatialEvent("a", "c", 5.0, SeverityLow, 25), // different pair
		temporal,                                     // same pair+instant, different type
		spatialEvent("a", "b", 50.0, SeverityLow, 25), // same pair, far later
	}

	out := Aggregate(events, p)
	assert.Len(t, out, 4)
}

func TestAggregateOrdering(t *testing.T) {
	t.Parallel()

	p := DefaultParams()
	events := []Event{
		spatialEvent("a", "b", 30, SeverityLow, 25),
		spatialEvent("c", "d", 10, SeverityLow, 28),
		spatialEvent("a", "b", 10, SeverityHigh, 3),
		spatialEvent("e", "f", 20, SeverityMedium, 15),
	}

	out := Aggregate(events, p)
	require.Len(t, out, 4)

	// Timestamp ascending; severity breaks ties descending.
	assert.Equal(t, 10.0, out[0].Time())
	assert.Equal(t, SeverityHigh, out[0].Severity)
	assert.Equal(t, 10.0, out[1].Time())
	assert.Equal(t, SeverityLow, out[1].Severity)
	assert.Equal(t, 20.0, out[2].Time())
	assert.Equal(t, 30.0, out[3].Time())
}

func TestAggregateDeterministic(t *testing.T) {
	t.Parallel()

	p := DefaultParams()
	events := []Event{
		spatialEvent("a", "b", 10, SeverityHigh, 3),
		spatialEvent("c", "d", 10, SeverityHigh, 7),
		spatialEvent("a", "b", 10.3, SeverityMedium, 12),
		spatialEvent("e", "f", 4, SeverityLow, 28),
	}

	// Same multiset in reversed input order must aggregate identically.
	reversed := make([]Event, len(events))
	for i, ev := range events {
		reversed[len(events)-1-i] = ev
	}

	first := Aggregate(events, p)
	second := Aggregate(reversed, p)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("aggregation depends on input order (-first +second):\n%s", diff)
	}
}

func TestAggregateEmpty(t *testing.T) {
	t.Parallel()
	assert.Nil(t, Aggregate(nil, DefaultParams()))
	assert.Nil(t, Aggregate([]Event{}, DefaultParams()))
}
