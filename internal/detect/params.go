package detect

import "fmt"

// Default detection thresholds. These mirror the planner-facing defaults:
// 30 m lateral separation, 15 s schedule-slip window, 20 m vertical
// separation.
const (
	DefaultSpatialThreshold    = 30.0
	DefaultTimeWindow          = 15.0
	DefaultAltitudeThreshold   = 20.0
	DefaultHorizontalTolerance = 15.0
	DefaultTemporalEpsilon     = 0.5
	DefaultDedupTolerance      = 0.5
)

// Severity cutoffs shared by all detectors: a measured separation under
// 10 m is high, under 20 m is medium, anything else under the governing
// threshold is low.
const (
	severityHighCutoff   = 10.0
	severityMediumCutoff = 20.0
)

// ConfigError reports an invalid detection parameter. It indicates a
// caller bug and is surfaced before any detection work starts.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid detection config: %s %s", e.Field, e.Reason)
}

// Params is the full configuration surface of one analysis run. The zero
// value is not usable; start from DefaultParams.
type Params struct {
	// SpatialThreshold is the minimum safe 3D separation in metres.
	// Separations strictly below it produce spatial events.
	SpatialThreshold float64 `json:"spatial_threshold"`

	// TimeWindow is the schedule-slip window in seconds for temporal
	// conflicts. Only time offsets strictly below it are flagged.
	TimeWindow float64 `json:"time_window"`

	// AltitudeThreshold is the minimum safe vertical separation in metres.
	AltitudeThreshold float64 `json:"altitude_threshold"`

	// HorizontalTolerance is the XY gate for the altitude detector: two
	// vehicles count as sharing horizontal position when their XY distance
	// is strictly below it.
	HorizontalTolerance float64 `json:"horizontal_tolerance"`

	// SampleStep is the sampling cadence in seconds. Zero means use the
	// smaller of the pair's native waypoint cadences.
	SampleStep float64 `json:"sample_step,omitempty"`

	// TemporalEpsilon separates the temporal detector's territory from the
	// spatial detector's: time offsets at or below it are treated as
	// simultaneous and left to the spatial pass.
	TemporalEpsilon float64 `json:"temporal_epsilon"`

	// DedupTolerance is the timestamp tolerance in seconds within which
	// the aggregator treats same-pair same-type events as duplicates.
	DedupTolerance float64 `json:"dedup_tolerance"`

	// Per-detector toggles.
	EnableSpatial  bool `json:"enable_spatial"`
	EnableTemporal bool `json:"enable_temporal"`
	EnableAltitude bool `json:"enable_altitude"`

	// Workers bounds the pair fan-out; zero means GOMAXPROCS.
	Workers int `json:"workers,omitempty"`
}

// DefaultParams returns the standard configuration with all detectors
// enabled.
func DefaultParams() Params {
	return Params{
		SpatialThreshold:    DefaultSpatialThreshold,
		TimeWindow:          DefaultTimeWindow,
		AltitudeThreshold:   DefaultAltitudeThreshold,
		HorizontalTolerance: DefaultHorizontalTolerance,
		TemporalEpsilon:     DefaultTemporalEpsilon,
		DedupTolerance:      DefaultDedupTolerance,
		EnableSpatial:       true,
		EnableTemporal:      true,
		EnableAltitude:      true,
	}
}

// Validate checks every parameter and returns a *ConfigError on the first
// violation. Thresholds must be positive; windows, tolerances and worker
// counts must not be negative.
func (p Params) Validate() error {
	switch {
	case p.SpatialThreshold <= 0:
		return &ConfigError{Field: "spatial_threshold", Reason: "must be positive"}
	case p.TimeWindow <= 0:
		return &ConfigError{Field: "time_window", Reason: "must be positive"}
	case p.AltitudeThreshold <= 0:
		return &ConfigError{Field: "altitude_threshold", Reason: "must be positive"}
	case p.HorizontalTolerance <= 0:
		return &ConfigError{Field: "horizontal_tolerance", Reason: "must be positive"}
	case p.SampleStep < 0:
		return &ConfigError{Field: "sample_step", Reason: "must not be negative"}
	case p.TemporalEpsilon < 0:
		return &ConfigError{Field: "temporal_epsilon", Reason: "must not be negative"}
	case p.TemporalEpsilon >= p.TimeWindow:
		return &ConfigError{Field: "temporal_epsilon", Reason: "must be below time_window"}
	case p.DedupTolerance < 0:
		return &ConfigError{Field: "dedup_tolerance", Reason: "must not be negative"}
	case p.Workers < 0:
		return &ConfigError{Field: "workers", Reason: "must not be negative"}
	}
	return nil
}
