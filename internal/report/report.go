// Package report serializes an analysis run's conflict events for
// downstream consumers: a JSON export with a severity summary, and a
// plain-text report for the terminal.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/banshee-data/conflict.report/internal/detect"
)

// Summary counts events per severity band.
type Summary struct {
	Total  int `json:"total_conflicts"`
	High   int `json:"high_severity"`
	Medium int `json:"medium_severity"`
	Low    int `json:"low_severity"`
}

// Report is the persisted export shape: the ordered event list plus the
// severity summary.
type Report struct {
	Conflicts []detect.Event `json:"conflicts"`
	Summary   Summary        `json:"summary"`
}

// Build assembles a Report from an aggregated event list.
func Build(events []detect.Event) Report {
	r := Report{Conflicts: events}
	r.Summary.Total = len(events)
	for _, ev := range events {
		switch ev.Severity {
		case detect.SeverityHigh:
			r.Summary.High++
		case detect.SeverityMedium:
			r.Summary.Medium++
		case detect.SeverityLow:
			r.Summary.Low++
		}
	}
	return r
}

// SaveJSON writes the report to path as indented JSON.
func SaveJSON(path string, r Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// FilterMinSeverity returns the events at or above the given severity,
// preserving order.
func FilterMinSeverity(events []detect.Event, min detect.Severity) []detect.Event {
	var out []detect.Event
	for _, ev := range events {
		if ev.Severity.AtLeast(min) {
			out = append(out, ev)
		}
	}
	return out
}

// Text renders a human-readable conflict report grouped by severity.
func Text(r Report) string {
	if r.Summary.Total == 0 {
		return "No conflicts detected.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Conflict Detection Report\n%s\n\n", strings.Repeat("=", 50))
	fmt.Fprintf(&b, "Total conflicts detected: %d\n\n", r.Summary.Total)

	for _, sev := range []detect.Severity{detect.SeverityHigh, detect.SeverityMedium, detect.SeverityLow} {
		group := bySeverity(r.Conflicts, sev)
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s SEVERITY CONFLICTS (%d):\n%s\n",
			strings.ToUpper(string(sev)), len(group), strings.Repeat("-", 40))
		for _, ev := range group {
			fmt.Fprintf(&b, "Vehicles: %s vs %s\n", ev.Vehicle1, ev.Vehicle2)
			fmt.Fprintf(&b, "Type: %s\n", ev.Type)
			if ev.Type == detect.ConflictTemporal {
				fmt.Fprintf(&b, "Times: %.1fs and %.1fs (offset %.1fs)\n", ev.Time1, ev.Time2, ev.TimeOffset)
			} else {
				fmt.Fprintf(&b, "Time: %.1fs\n", ev.Time1)
			}
			fmt.Fprintf(&b, "Separation: %.2fm\n", ev.Distance)
			fmt.Fprintf(&b, "Positions: (%.1f, %.1f, %.1f) and (%.1f, %.1f, %.1f)\n\n",
				ev.Pos1.X, ev.Pos1.Y, ev.Pos1.Z, ev.Pos2.X, ev.Pos2.Y, ev.Pos2.Z)
		}
	}
	return b.String()
}

func bySeverity(events []detect.Event, sev detect.Severity) []detect.Event {
	var out []detect.Event
	for _, ev := range events {
		if ev.Severity == sev {
			out = append(out, ev)
		}
	}
	return out
}
