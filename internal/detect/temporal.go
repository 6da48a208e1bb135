package detect

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/conflict.report/internal/airspace"
)

// DetectTemporal flags near-misses caused by schedule slippage: the two
// vehicles pass through the same region at different times. Each sampled
// position of one trajectory is compared against every sampled position
// of the other; a pair is flagged when spatial separation is under the
// spatial threshold and the time offset lies strictly between the
// temporal epsilon and the time window.
//
// Offsets at or below the epsilon count as simultaneous presence, which
// is the spatial detector's territory; flagging them here would
// double-count every spatial conflict.
func DetectTemporal(a, b airspace.Trajectory, p Params) []Event {
	samplesA := airspace.Sample(a, p.SampleStep)
	samplesB := airspace.Sample(b, p.SampleStep)

	var events []Event
	for _, sa := range samplesA {
		for _, sb := range samplesB {
			offset := math.Abs(sa.Time - sb.Time)
			if offset <= p.TemporalEpsilon || offset >= p.TimeWindow {
				continue
			}
			d := r3.Norm(r3.Sub(sa.Pos, sb.Pos))
			if d >= p.SpatialThreshold {
				continue
			}
			events = append(events, newPairEvent(
				ConflictTemporal, severityForSeparation(d),
				a.VehicleID, b.VehicleID,
				sa.Time, sb.Time,
				sa.Pos, sb.Pos,
				d, offset,
			))
		}
	}
	return events
}
