package detect

import (
	"math"

	"github.com/banshee-data/conflict.report/internal/airspace"
)

// DetectAltitude flags instants where two vehicles share horizontal
// position but lack vertical separation. It is the spatial check
// decomposed into XY and Z components, kept separate because planners
// toggle it independently and its severity bands run against vertical
// separation alone. Both gates are strict inequalities.
func DetectAltitude(a, b airspace.Trajectory, p Params) []Event {
	var events []Event
	for _, s := range airspace.SamplePair(a, b, p.SampleStep) {
		if airspace.HorizontalDist(s.A, s.B) >= p.HorizontalTolerance {
			continue
		}
		vsep := math.Abs(s.A.Z - s.B.Z)
		if vsep >= p.AltitudeThreshold {
			continue
		}
		events = append(events, newPairEvent(
			ConflictAltitude, severityForSeparation(vsep),
			a.VehicleID, b.VehicleID,
			s.Time, s.Time,
			s.A, s.B,
			vsep, 0,
		))
	}
	return events
}
