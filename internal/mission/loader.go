// Package mission loads planned-flight input for analysis runs: JSON
// mission files in the planner exchange format, with built-in demo
// trajectories as a fallback when no usable input exists. The detection
// core never sees raw files; it receives validated airspace.Trajectory
// values from here.
package mission

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/banshee-data/conflict.report/internal/airspace"
	"github.com/banshee-data/conflict.report/internal/monitoring"
)

// maxFileSize bounds mission files to keep a corrupt input from
// exhausting memory.
const maxFileSize = 8 * 1024 * 1024

// missionFile is the exchange format:
//
//	{"drones": {"<vehicle id>": [{"x":0,"y":0,"z":100,"timestamp":0}, ...]}}
type missionFile struct {
	Drones map[string][]airspace.Waypoint `json:"drones"`
}

// Load parses one mission file into trajectories, sorted by vehicle ID
// for deterministic run input. The path must end in .json and stay under
// the size bound.
func Load(path string) ([]airspace.Trajectory, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("mission file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat mission file: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("mission file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read mission file: %w", err)
	}

	var mf missionFile
	if err := json.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("failed to parse mission JSON: %w", err)
	}

	ids := make([]string, 0, len(mf.Drones))
	for id := range mf.Drones {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	trajectories := make([]airspace.Trajectory, 0, len(ids))
	for _, id := range ids {
		tr, err := airspace.NewTrajectory(id, mf.Drones[id])
		if err != nil {
			return nil, fmt.Errorf("mission file %s: %w", cleanPath, err)
		}
		trajectories = append(trajectories, tr)
	}
	return trajectories, nil
}

// LoadAll merges trajectories from several mission files (typically the
// primary mission plus simulated traffic). Missing files are skipped with
// a log line; any other failure aborts the load. Duplicate vehicle IDs
// across files are rejected.
func LoadAll(paths ...string) ([]airspace.Trajectory, error) {
	var all []airspace.Trajectory
	seen := make(map[string]string)

	for _, path := range paths {
		if path == "" {
			continue
		}
		trs, err := Load(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				monitoring.Logf("mission: %s not found, skipping", path)
				continue
			}
			return nil, err
		}
		for _, tr := range trs {
			if prev, ok := seen[tr.VehicleID]; ok {
				return nil, fmt.Errorf("vehicle %q defined in both %s and %s", tr.VehicleID, prev, path)
			}
			seen[tr.VehicleID] = path
			all = append(all, tr)
		}
		monitoring.Logf("mission: loaded %d trajectories from %s", len(trs), path)
	}
	return all, nil
}
