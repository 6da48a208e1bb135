package detect

import (
	"encoding/json"

	"gonum.org/v1/gonum/spatial/r3"
)

// ConflictType tags which detector produced an event.
type ConflictType string

const (
	ConflictSpatial  ConflictType = "spatial"
	ConflictTemporal ConflictType = "temporal"
	ConflictAltitude ConflictType = "altitude"
)

// Severity classifies how close a conflict came to collision.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// rank orders severities for sorting and dedup; higher is worse.
func (s Severity) rank() int {
	switch s {
	case SeverityHigh:
		return 2
	case SeverityMedium:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether s is as severe as min.
func (s Severity) AtLeast(min Severity) bool {
	return s.rank() >= min.rank()
}

// severityForSeparation maps a measured separation in metres onto the
// shared high/medium/low bands. Callers guarantee sep is strictly below
// the governing threshold. Bands are monotonic: smaller separation never
// yields a lower severity.
func severityForSeparation(sep float64) Severity {
	switch {
	case sep < severityHighCutoff:
		return SeverityHigh
	case sep < severityMediumCutoff:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// Event is one detected instance of unsafe proximity between two
// vehicles. Events are immutable values; the aggregator produces new
// slices rather than mutating them. Vehicle1/Vehicle2 are stored in
// lexical order so the pair key is canonical regardless of which
// trajectory came first.
type Event struct {
	Type     ConflictType `json:"conflict_type"`
	Severity Severity     `json:"severity"`

	Vehicle1 string `json:"vehicle1_id"`
	Vehicle2 string `json:"vehicle2_id"`

	// Time1/Time2 are the implicated instants for each vehicle in seconds.
	// They are equal for spatial and altitude events and differ for
	// temporal events.
	Time1 float64 `json:"time1"`
	Time2 float64 `json:"time2"`

	Pos1 r3.Vec `json:"-"`
	Pos2 r3.Vec `json:"-"`

	// Distance is the measured 3D separation in metres (vertical
	// separation for altitude events).
	Distance float64 `json:"distance"`

	// TimeOffset is the absolute schedule offset in seconds; zero for
	// spatial and altitude events.
	TimeOffset float64 `json:"time_offset"`
}

// Time returns the event's representative instant: the earlier of the two
// implicated times. The aggregator orders by it.
func (e Event) Time() float64 {
	return min(e.Time1, e.Time2)
}

// Pair returns the canonical "v1|v2" pair key.
func (e Event) Pair() string {
	return e.Vehicle1 + "|" + e.Vehicle2
}

// eventJSON is the export shape: positions flattened to x/y/z objects so
// the report contract is independent of the internal vector type.
type eventJSON struct {
	Type       ConflictType `json:"conflict_type"`
	Severity   Severity     `json:"severity"`
	Vehicle1   string       `json:"vehicle1_id"`
	Vehicle2   string       `json:"vehicle2_id"`
	Time1      float64      `json:"time1"`
	Time2      float64      `json:"time2"`
	Pos1       position     `json:"position1"`
	Pos2       position     `json:"position2"`
	Distance   float64      `json:"distance"`
	TimeOffset float64      `json:"time_offset"`
}

type position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// MarshalJSON implements the conflict-event export contract.
func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(eventJSON{
		Type:       e.Type,
		Severity:   e.Severity,
		Vehicle1:   e.Vehicle1,
		Vehicle2:   e.Vehicle2,
		Time1:      e.Time1,
		Time2:      e.Time2,
		Pos1:       position{X: e.Pos1.X, Y: e.Pos1.Y, Z: e.Pos1.Z},
		Pos2:       position{X: e.Pos2.X, Y: e.Pos2.Y, Z: e.Pos2.Z},
		Distance:   e.Distance,
		TimeOffset: e.TimeOffset,
	})
}

// UnmarshalJSON restores an event from the export shape.
func (e *Event) UnmarshalJSON(data []byte) error {
	var wire eventJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*e = Event{
		Type:       wire.Type,
		Severity:   wire.Severity,
		Vehicle1:   wire.Vehicle1,
		Vehicle2:   wire.Vehicle2,
		Time1:      wire.Time1,
		Time2:      wire.Time2,
		Pos1:       r3.Vec{X: wire.Pos1.X, Y: wire.Pos1.Y, Z: wire.Pos1.Z},
		Pos2:       r3.Vec{X: wire.Pos2.X, Y: wire.Pos2.Y, Z: wire.Pos2.Z},
		Distance:   wire.Distance,
		TimeOffset: wire.TimeOffset,
	}
	return nil
}
