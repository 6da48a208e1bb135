// Command deconflict analyses planned UAV trajectories for spatial,
// temporal and altitude conflicts and writes a deconfliction report.
//
// With no mission input it falls back to the built-in demo mission, so
// `deconflict` on its own produces a complete example run.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/banshee-data/conflict.report/internal/airspace"
	"github.com/banshee-data/conflict.report/internal/detect"
	"github.com/banshee-data/conflict.report/internal/mission"
	"github.com/banshee-data/conflict.report/internal/monitor"
	"github.com/banshee-data/conflict.report/internal/monitoring"
	"github.com/banshee-data/conflict.report/internal/report"
	"github.com/banshee-data/conflict.report/internal/storage/sqlite"
)

var (
	missionFile    = flag.String("mission", "data/primary_mission.json", "Primary mission JSON file")
	simulatedFiles = flag.String("simulated", "data/simulated_drones.json", "Comma-separated simulated traffic JSON files")
	outputFile     = flag.String("output", "data/detected_conflicts.json", "Conflict report output path")
	dbPath         = flag.String("db", "", "Optional sqlite database to persist the run")
	plotsDir       = flag.String("plots", "", "Optional directory for PNG plots")
	serveAddr      = flag.String("serve", "", "Optional listen address for the interactive viewer (e.g. :8080)")

	spatialThreshold  = flag.Float64("spatial-threshold", detect.DefaultSpatialThreshold, "Minimum safe 3D separation in metres")
	timeWindow        = flag.Float64("time-window", detect.DefaultTimeWindow, "Schedule-slip window in seconds")
	altitudeThreshold = flag.Float64("altitude-threshold", detect.DefaultAltitudeThreshold, "Minimum safe vertical separation in metres")
	sampleStep        = flag.Float64("sample-step", 0, "Sampling step in seconds (0 = native waypoint cadence)")
	disableSpatial    = flag.Bool("disable-spatial", false, "Skip the spatial detector")
	disableTemporal   = flag.Bool("disable-temporal", false, "Skip the temporal detector")
	disableAltitude   = flag.Bool("disable-altitude", false, "Skip the altitude detector")
	workers           = flag.Int("workers", 0, "Pair fan-out worker count (0 = GOMAXPROCS)")
)

func main() {
	flag.Parse()

	params := detect.DefaultParams()
	params.SpatialThreshold = *spatialThreshold
	params.TimeWindow = *timeWindow
	params.AltitudeThreshold = *altitudeThreshold
	params.SampleStep = *sampleStep
	params.EnableSpatial = !*disableSpatial
	params.EnableTemporal = !*disableTemporal
	params.EnableAltitude = !*disableAltitude
	params.Workers = *workers
	if err := params.Validate(); err != nil {
		log.Fatalf("deconflict: %v", err)
	}

	trajectories := loadTrajectories()
	monitoring.Logf("deconflict: analysing %d trajectories", len(trajectories))

	run := sqlite.NewRun(len(trajectories), params)
	started := time.Now()
	events, err := detect.Run(trajectories, params)
	if err != nil {
		log.Fatalf("deconflict: analysis failed: %v", err)
	}
	run.DurationMillis = time.Since(started).Milliseconds()

	rep := report.Build(events)
	fmt.Print(report.Text(rep))

	if *outputFile != "" {
		if err := report.SaveJSON(*outputFile, rep); err != nil {
			log.Fatalf("deconflict: %v", err)
		}
		monitoring.Logf("deconflict: report written to %s", *outputFile)
	}

	if *dbPath != "" {
		store, err := sqlite.NewStore(*dbPath)
		if err != nil {
			log.Fatalf("deconflict: %v", err)
		}
		defer store.Close()
		if err := store.SaveRun(run, events); err != nil {
			log.Fatalf("deconflict: %v", err)
		}
		monitoring.Logf("deconflict: run %s persisted to %s", run.ID, *dbPath)
	}

	if *plotsDir != "" {
		plotter := monitor.NewPlotter(trajectories, events, params.SampleStep)
		if err := plotter.WritePlots(*plotsDir); err != nil {
			log.Fatalf("deconflict: %v", err)
		}
		monitoring.Logf("deconflict: plots written to %s", *plotsDir)
	}

	if *serveAddr != "" {
		ws := monitor.NewWebServer(trajectories, events, params.SampleStep)
		if err := ws.Serve(*serveAddr); err != nil {
			log.Fatalf("deconflict: viewer failed: %v", err)
		}
	}
}

// loadTrajectories merges the primary mission and simulated traffic
// files, falling back to the demo mission when nothing loads.
func loadTrajectories() []airspace.Trajectory {
	paths := []string{*missionFile}
	for _, p := range strings.Split(*simulatedFiles, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}

	trajectories, err := mission.LoadAll(paths...)
	if err != nil {
		log.Fatalf("deconflict: failed to load mission data: %v", err)
	}
	if len(trajectories) == 0 {
		monitoring.Logf("deconflict: no trajectory data found, using demo mission")
		trajectories = mission.Demo()
	}
	return trajectories
}
