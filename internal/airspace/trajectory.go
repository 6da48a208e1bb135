package airspace

import (
	"encoding/json"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// Waypoint is a single timestamped position on a planned path.
// Positions are metres in a local ENU-style frame; Time is seconds
// since the mission epoch.
type Waypoint struct {
	Pos  r3.Vec
	Time float64
}

// Dist returns the 3D Euclidean distance to another waypoint in metres.
func (w Waypoint) Dist(other Waypoint) float64 {
	return r3.Norm(r3.Sub(w.Pos, other.Pos))
}

// waypointJSON matches the mission file wire format: flat x/y/z/timestamp.
type waypointJSON struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	Timestamp float64 `json:"timestamp"`
}

// MarshalJSON encodes the waypoint in the flat mission-file shape.
func (w Waypoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(waypointJSON{X: w.Pos.X, Y: w.Pos.Y, Z: w.Pos.Z, Timestamp: w.Time})
}

// UnmarshalJSON decodes the flat mission-file shape.
func (w *Waypoint) UnmarshalJSON(data []byte) error {
	var wire waypointJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	w.Pos = r3.Vec{X: wire.X, Y: wire.Y, Z: wire.Z}
	w.Time = wire.Timestamp
	return nil
}

// InvalidTrajectoryError reports a malformed waypoint sequence. A
// trajectory that fails construction must never reach the detectors.
type InvalidTrajectoryError struct {
	VehicleID string
	Reason    string
}

func (e *InvalidTrajectoryError) Error() string {
	return fmt.Sprintf("invalid trajectory for vehicle %q: %s", e.VehicleID, e.Reason)
}

// OutOfRangeError reports a position query outside a trajectory's time span.
type OutOfRangeError struct {
	VehicleID  string
	Time       float64
	Start, End float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("time %.3fs outside trajectory span [%.3f, %.3f] for vehicle %q",
		e.Time, e.Start, e.End, e.VehicleID)
}

// Trajectory is one vehicle's planned path: an ordered, strictly
// time-increasing waypoint sequence. Build it with NewTrajectory and
// treat it as read-only afterwards.
type Trajectory struct {
	VehicleID string
	Waypoints []Waypoint
}

// NewTrajectory validates and constructs a trajectory. The waypoint slice
// is copied and sorted by timestamp; duplicate timestamps or an empty
// sequence yield an *InvalidTrajectoryError.
func NewTrajectory(vehicleID string, waypoints []Waypoint) (Trajectory, error) {
	if len(waypoints) == 0 {
		return Trajectory{}, &InvalidTrajectoryError{VehicleID: vehicleID, Reason: "no waypoints"}
	}

	wps := make([]Waypoint, len(waypoints))
	copy(wps, waypoints)
	sort.Slice(wps, func(i, j int) bool { return wps[i].Time < wps[j].Time })

	for i := 1; i < len(wps); i++ {
		if wps[i].Time == wps[i-1].Time {
			return Trajectory{}, &InvalidTrajectoryError{
				VehicleID: vehicleID,
				Reason:    fmt.Sprintf("duplicate timestamp %.3fs", wps[i].Time),
			}
		}
	}

	return Trajectory{VehicleID: vehicleID, Waypoints: wps}, nil
}

// Validate re-checks the trajectory invariants. The detection engine calls
// this up front so hand-built Trajectory values fail fast rather than
// corrupting a run.
func (tr Trajectory) Validate() error {
	if len(tr.Waypoints) == 0 {
		return &InvalidTrajectoryError{VehicleID: tr.VehicleID, Reason: "no waypoints"}
	}
	for i := 1; i < len(tr.Waypoints); i++ {
		if tr.Waypoints[i].Time <= tr.Waypoints[i-1].Time {
			return &InvalidTrajectoryError{
				VehicleID: tr.VehicleID,
				Reason:    fmt.Sprintf("waypoints not strictly time-ordered at index %d", i),
			}
		}
	}
	return nil
}

// Span returns the trajectory's first and last waypoint timestamps.
func (tr Trajectory) Span() (start, end float64) {
	return tr.Waypoints[0].Time, tr.Waypoints[len(tr.Waypoints)-1].Time
}

// NativeStep returns the median spacing between consecutive waypoint
// timestamps, or 0 for a single-waypoint trajectory. The sampler uses it
// as the default sampling cadence.
func (tr Trajectory) NativeStep() float64 {
	if len(tr.Waypoints) < 2 {
		return 0
	}
	gaps := make([]float64, 0, len(tr.Waypoints)-1)
	for i := 1; i < len(tr.Waypoints); i++ {
		gaps = append(gaps, tr.Waypoints[i].Time-tr.Waypoints[i-1].Time)
	}
	sort.Float64s(gaps)
	return gaps[len(gaps)/2]
}

// PositionAt returns the interpolated position at time t. A timestamp that
// exactly matches a waypoint returns that waypoint's stored position;
// anything else inside the span is linearly interpolated between the two
// bracketing waypoints. Times outside the span return an *OutOfRangeError.
func (tr Trajectory) PositionAt(t float64) (r3.Vec, error) {
	start, end := tr.Span()
	if t < start || t > end {
		return r3.Vec{}, &OutOfRangeError{VehicleID: tr.VehicleID, Time: t, Start: start, End: end}
	}

	// Binary search for the first waypoint at or after t.
	i := sort.Search(len(tr.Waypoints), func(i int) bool {
		return tr.Waypoints[i].Time >= t
	})
	if tr.Waypoints[i].Time == t {
		return tr.Waypoints[i].Pos, nil
	}

	w1, w2 := tr.Waypoints[i-1], tr.Waypoints[i]
	frac := (t - w1.Time) / (w2.Time - w1.Time)
	return r3.Add(w1.Pos, r3.Scale(frac, r3.Sub(w2.Pos, w1.Pos))), nil
}
