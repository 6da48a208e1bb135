// Package detect owns the conflict-detection engine: the spatial,
// temporal and altitude detectors, severity classification, event
// aggregation and the per-pair parallel fan-out.
//
// Detectors are pure functions over immutable airspace.Trajectory pairs;
// the engine validates inputs up front and either returns the complete
// aggregated event list or fails with no partial result. Identical inputs
// always produce an identical event sequence.
//
// No I/O is allowed in this package: loading, persistence and
// visualization live in their own packages and consume the event list.
package detect
