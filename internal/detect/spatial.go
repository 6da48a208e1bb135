package detect

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/conflict.report/internal/airspace"
)

// newPairEvent builds an event with the vehicle pair in canonical lexical
// order, swapping the per-vehicle times and positions alongside the IDs so
// the fields stay matched.
func newPairEvent(typ ConflictType, sev Severity, idA, idB string, tA, tB float64, posA, posB r3.Vec, distance, offset float64) Event {
	if idB < idA {
		idA, idB = idB, idA
		tA, tB = tB, tA
		posA, posB = posB, posA
	}
	return Event{
		Type:       typ,
		Severity:   sev,
		Vehicle1:   idA,
		Vehicle2:   idB,
		Time1:      tA,
		Time2:      tB,
		Pos1:       posA,
		Pos2:       posB,
		Distance:   distance,
		TimeOffset: offset,
	}
}

// DetectSpatial flags instants where two vehicles are simultaneously
// closer than the spatial threshold in 3D. The threshold comparison is
// strict: a separation exactly at the threshold is nominal and produces
// no event.
func DetectSpatial(a, b airspace.Trajectory, p Params) []Event {
	var events []Event
	for _, s := range airspace.SamplePair(a, b, p.SampleStep) {
		d := r3.Norm(r3.Sub(s.A, s.B))
		if d >= p.SpatialThreshold {
			continue
		}
		events = append(events, newPairEvent(
			ConflictSpatial, severityForSeparation(d),
			a.VehicleID, b.VehicleID,
			s.Time, s.Time,
			s.A, s.B,
			d, 0,
		))
	}
	return events
}
