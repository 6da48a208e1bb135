package mission

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/conflict.report/internal/airspace"
)

// Demo returns the built-in demo mission: three crossing flight paths
// with a deliberate conflict zone around (50, 25) at t≈5-6s. Used when
// no mission input is supplied or the supplied files yield nothing.
func Demo() []airspace.Trajectory {
	wp := func(x, y, z, t float64) airspace.Waypoint {
		return airspace.Waypoint{Pos: r3.Vec{X: x, Y: y, Z: z}, Time: t}
	}

	alpha, _ := airspace.NewTrajectory("DEMO_Alpha", []airspace.Waypoint{
		wp(0, 0, 100, 0),
		wp(50, 25, 120, 5),
		wp(100, 50, 100, 10),
	})
	beta, _ := airspace.NewTrajectory("DEMO_Beta", []airspace.Waypoint{
		wp(0, 50, 80, 1),
		wp(50, 25, 110, 6),
		wp(100, 0, 90, 11),
	})
	gamma, _ := airspace.NewTrajectory("DEMO_Gamma", []airspace.Waypoint{
		wp(25, 0, 150, 0),
		wp(75, 50, 130, 8),
		wp(100, 100, 110, 12),
	})

	return []airspace.Trajectory{alpha, beta, gamma}
}
