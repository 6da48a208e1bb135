package monitor

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/conflict.report/internal/airspace"
	"github.com/banshee-data/conflict.report/internal/detect"
)

// trajectoryPalette cycles across vehicles in plot series order.
var trajectoryPalette = []color.RGBA{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff},
}

var conflictColor = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}

// Plotter writes static PNG plots of a run: a top-down XY view and an
// altitude-vs-time view, both with conflict markers.
type Plotter struct {
	trajectories []airspace.Trajectory
	events       []detect.Event
	sampleStep   float64
}

// NewPlotter builds a plotter over one run's inputs and results.
func NewPlotter(trajectories []airspace.Trajectory, events []detect.Event, sampleStep float64) *Plotter {
	return &Plotter{trajectories: trajectories, events: events, sampleStep: sampleStep}
}

// WritePlots renders trajectories_xy.png and altitude_time.png into dir.
func (pl *Plotter) WritePlots(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create plot dir: %w", err)
	}
	if err := pl.writeXYPlot(filepath.Join(dir, "trajectories_xy.png")); err != nil {
		return err
	}
	return pl.writeAltitudePlot(filepath.Join(dir, "altitude_time.png"))
}

func (pl *Plotter) writeXYPlot(path string) error {
	p := plot.New()
	p.Title.Text = "Planned Trajectories (top-down)"
	p.X.Label.Text = "X (m)"
	p.Y.Label.Text = "Y (m)"
	p.Legend.Top = true

	for i, tr := range pl.trajectories {
		pts := make(plotter.XYs, 0, len(tr.Waypoints))
		for _, s := range airspace.Sample(tr, pl.sampleStep) {
			pts = append(pts, plotter.XY{X: s.Pos.X, Y: s.Pos.Y})
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("failed to build line for %s: %w", tr.VehicleID, err)
		}
		line.Color = trajectoryPalette[i%len(trajectoryPalette)]
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(tr.VehicleID, line)
	}

	if scatter, err := conflictScatter(pl.events, func(ev detect.Event) plotter.XY {
		mid := midpoint(ev)
		return plotter.XY{X: mid[0], Y: mid[1]}
	}); err != nil {
		return err
	} else if scatter != nil {
		p.Add(scatter)
		p.Legend.Add("conflicts", scatter)
	}

	if err := p.Save(10*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func (pl *Plotter) writeAltitudePlot(path string) error {
	p := plot.New()
	p.Title.Text = "Altitude Profiles"
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Altitude (m)"
	p.Legend.Top = true

	for i, tr := range pl.trajectories {
		samples := airspace.Sample(tr, pl.sampleStep)
		pts := make(plotter.XYs, 0, len(samples))
		for _, s := range samples {
			pts = append(pts, plotter.XY{X: s.Time, Y: s.Pos.Z})
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("failed to build altitude line for %s: %w", tr.VehicleID, err)
		}
		line.Color = trajectoryPalette[i%len(trajectoryPalette)]
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(tr.VehicleID, line)
	}

	if scatter, err := conflictScatter(pl.events, func(ev detect.Event) plotter.XY {
		return plotter.XY{X: ev.Time(), Y: (ev.Pos1.Z + ev.Pos2.Z) / 2}
	}); err != nil {
		return err
	} else if scatter != nil {
		p.Add(scatter)
		p.Legend.Add("conflicts", scatter)
	}

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// conflictScatter projects events into plot space; nil when there are no
// events to mark.
func conflictScatter(events []detect.Event, project func(detect.Event) plotter.XY) (*plotter.Scatter, error) {
	if len(events) == 0 {
		return nil, nil
	}
	pts := make(plotter.XYs, 0, len(events))
	for _, ev := range events {
		pts = append(pts, project(ev))
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, fmt.Errorf("failed to build conflict scatter: %w", err)
	}
	scatter.GlyphStyle.Color = conflictColor
	scatter.GlyphStyle.Radius = vg.Points(3)
	return scatter, nil
}
