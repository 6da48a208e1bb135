// Package airspace owns the planned-flight data model: timestamped 3D
// waypoints, per-vehicle trajectories with continuous-time position via
// linear interpolation, and the shared-timestamp pair sampler that the
// conflict detectors consume.
//
// Trajectories are immutable once constructed. No detection logic or
// persistence code is allowed in this package.
package airspace
