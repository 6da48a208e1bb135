// Package monitor renders analysis results for humans: an interactive
// 3D trajectory/conflict view served over HTTP, and static PNG plots.
// It is debug-grade presentation glue; nothing here feeds back into
// detection.
package monitor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/conflict.report/internal/airspace"
	"github.com/banshee-data/conflict.report/internal/detect"
	"github.com/banshee-data/conflict.report/internal/monitoring"
)

// WebServer serves the interactive conflict viewer for one analysis run.
// No auth: this is a local planning tool, same as the sensor debug
// dashboards it is modelled on.
type WebServer struct {
	trajectories []airspace.Trajectory
	events       []detect.Event
	sampleStep   float64
	logf         func(format string, v ...interface{})
}

// NewWebServer builds a viewer over one run's inputs and results.
func NewWebServer(trajectories []airspace.Trajectory, events []detect.Event, sampleStep float64) *WebServer {
	return &WebServer{
		trajectories: trajectories,
		events:       events,
		sampleStep:   sampleStep,
		logf:         monitoring.Prefixed("monitor"),
	}
}

// Handler returns the viewer's route table.
func (ws *WebServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", ws.handleTrajectoryChart)
	mux.HandleFunc("/api/conflicts", ws.handleConflictsJSON)
	mux.HandleFunc("/api/trajectories", ws.handleTrajectoriesJSON)
	return mux
}

// Serve blocks on ListenAndServe at addr.
func (ws *WebServer) Serve(addr string) error {
	ws.logf("serving conflict viewer on %s", addr)
	server := &http.Server{Addr: addr, Handler: ws.Handler()}
	return server.ListenAndServe()
}

func (ws *WebServer) writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// handleConflictsJSON returns the run's aggregated event list.
func (ws *WebServer) handleConflictsJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(ws.events); err != nil {
		ws.logf("failed to encode conflicts: %v", err)
	}
}

// trajectoryJSON is the /api/trajectories response element.
type trajectoryJSON struct {
	VehicleID string              `json:"vehicle_id"`
	Waypoints []airspace.Waypoint `json:"waypoints"`
}

// handleTrajectoriesJSON returns the run's input waypoints.
func (ws *WebServer) handleTrajectoriesJSON(w http.ResponseWriter, r *http.Request) {
	out := make([]trajectoryJSON, 0, len(ws.trajectories))
	for _, tr := range ws.trajectories {
		out = append(out, trajectoryJSON{VehicleID: tr.VehicleID, Waypoints: tr.Waypoints})
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		ws.logf("failed to encode trajectories: %v", err)
	}
}

// handleTrajectoryChart renders the 3D view: one line per vehicle through
// its sampled path, plus a scatter overlay of conflict locations.
func (ws *WebServer) handleTrajectoryChart(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	line := charts.NewLine3D()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "UAV Trajectories",
			Theme:     "dark",
			Width:     "1200px",
			Height:    "800px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Planned Trajectories and Conflicts",
			Subtitle: fmt.Sprintf("vehicles=%d conflicts=%d", len(ws.trajectories), len(ws.events)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: "X (m)"}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: "Y (m)"}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: "Alt (m)"}),
	)

	for _, tr := range ws.trajectories {
		samples := airspace.Sample(tr, ws.sampleStep)
		data := make([]opts.Chart3DData, 0, len(samples))
		for _, s := range samples {
			data = append(data, opts.Chart3DData{Value: []interface{}{s.Pos.X, s.Pos.Y, s.Pos.Z}})
		}
		line.AddSeries(tr.VehicleID, data)
	}

	scatter := charts.NewScatter3D()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "800px", Theme: "dark"}),
		charts.WithTitleOpts(opts.Title{Title: "Conflict Locations"}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: "X (m)"}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: "Y (m)"}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: "Alt (m)"}),
	)
	for _, sev := range []detect.Severity{detect.SeverityHigh, detect.SeverityMedium, detect.SeverityLow} {
		var data []opts.Chart3DData
		for _, ev := range ws.events {
			if ev.Severity != sev {
				continue
			}
			mid := midpoint(ev)
			data = append(data, opts.Chart3DData{Value: []interface{}{mid[0], mid[1], mid[2]}})
		}
		if len(data) > 0 {
			scatter.AddSeries(string(sev), data)
		}
	}

	page := components.NewPage()
	page.AddCharts(line, scatter)

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// midpoint locates a conflict marker between the two implicated positions.
func midpoint(ev detect.Event) [3]float64 {
	return [3]float64{
		(ev.Pos1.X + ev.Pos2.X) / 2,
		(ev.Pos1.Y + ev.Pos2.Y) / 2,
		(ev.Pos1.Z + ev.Pos2.Z) / 2,
	}
}
