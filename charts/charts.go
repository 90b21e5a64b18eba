// Package charts renders the four diagnostic panels comparing observed
// algorithm behavior with reference complexity curves.
package charts

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/PlakarKorp/dnc-benchmarks/report"
)

// Options controls the size and resolution of the composite image.
type Options struct {
	Width  vg.Length
	Height vg.Length
	DPI    int
}

// DefaultOptions returns a 15x12 inch figure at 300 DPI.
func DefaultOptions() Options {
	return Options{
		Width:  15 * vg.Inch,
		Height: 12 * vg.Inch,
		DPI:    300,
	}
}

// Panel is one chart of the composite together with the labels of the
// series drawn on it.
type Panel struct {
	Title      string
	Plot       *plot.Plot
	Series     []string
	References []string
}

var (
	gray      = color.NRGBA{R: 128, G: 128, B: 128, A: 178}
	red       = color.NRGBA{R: 255, G: 0, B: 0, A: 178}
	gridColor = color.NRGBA{R: 176, G: 176, B: 176, A: 77}
	dashes    = []vg.Length{vg.Points(6), vg.Points(3)}
)

type metric struct {
	ylabel string
	value  func(report.Measurement) float64
}

var (
	timeMetric = metric{"Time (microseconds)", func(m report.Measurement) float64 {
		return m.TimeMicros()
	}}
	depthMetric = metric{"Maximum Recursion Depth", func(m report.Measurement) float64 {
		return float64(m.MaxDepth)
	}}
	comparisonMetric = metric{"Number of Comparisons", func(m report.Measurement) float64 {
		return float64(m.Comparisons)
	}}
)

type reference struct {
	label string
	color color.Color
	f     func(n float64) float64
}

func nlogn(scale float64) func(float64) float64 {
	return func(n float64) float64 { return n * math.Log2(n) / scale }
}

func linear(scale float64) func(float64) float64 {
	return func(n float64) float64 { return n / scale }
}

// Panels builds the four charts for r, in row-major order:
// time (linear), time (log-log), recursion depth, comparisons (log-log).
func Panels(r *report.Report) ([]*Panel, error) {
	colors, err := seriesColors(len(r.Algorithms()))
	if err != nil {
		return nil, err
	}

	logRange := floats.LogSpan(make([]float64, 50), 1e2, 1e5)
	linRange := floats.Span(make([]float64, 100), 100, 50000)

	specs := []struct {
		title  string
		metric metric
		log    bool
		xs     []float64
		refs   []reference
	}{
		{
			title:  "Time vs Input Size (Linear Scale)",
			metric: timeMetric,
		},
		{
			title:  "Time vs Input Size (Log-Log Scale)",
			metric: timeMetric,
			log:    true,
			xs:     logRange,
			refs: []reference{
				{"O(n log n)", gray, nlogn(1000)},
				{"O(n)", red, linear(1000)},
			},
		},
		{
			title:  "Recursion Depth vs Input Size",
			metric: depthMetric,
			xs:     linRange,
			refs: []reference{
				{"log₂(n)", gray, math.Log2},
			},
		},
		{
			title:  "Comparisons vs Input Size (Log-Log Scale)",
			metric: comparisonMetric,
			log:    true,
			xs:     logRange,
			refs: []reference{
				{"O(n log n)", gray, nlogn(1)},
				{"O(n)", red, linear(1)},
			},
		},
	}

	panels := make([]*Panel, 0, len(specs))
	for _, s := range specs {
		p := newPlot(s.title, s.metric.ylabel, s.log)
		panel := &Panel{Title: s.title, Plot: p}

		for i, algorithm := range r.Algorithms() {
			pts := points(r.Measurements(algorithm), s.metric, s.log)
			if len(pts) == 0 {
				continue
			}
			line, scatter, err := plotter.NewLinePoints(pts)
			if err != nil {
				return nil, fmt.Errorf("%s: %s: %w", s.title, algorithm, err)
			}
			c := colors[i%len(colors)]
			line.Color = c
			line.Width = vg.Points(2)
			scatter.Color = c
			scatter.Shape = draw.CircleGlyph{}
			scatter.Radius = vg.Points(2)

			p.Add(line, scatter)
			p.Legend.Add(algorithm, line, scatter)
			panel.Series = append(panel.Series, algorithm)
		}

		for _, ref := range s.refs {
			pts := make(plotter.XYs, len(s.xs))
			for i, x := range s.xs {
				pts[i].X = x
				pts[i].Y = ref.f(x)
			}
			line, err := plotter.NewLine(pts)
			if err != nil {
				return nil, fmt.Errorf("%s: %s: %w", s.title, ref.label, err)
			}
			line.Color = ref.color
			line.Width = vg.Points(1.5)
			line.Dashes = dashes

			p.Add(line)
			p.Legend.Add(ref.label, line)
			panel.References = append(panel.References, ref.label)
		}
		panels = append(panels, panel)
	}
	return panels, nil
}

func newPlot(title, ylabel string, logScale bool) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Input Size (n)"
	p.Y.Label.Text = ylabel

	if logScale {
		p.X.Scale = plot.LogScale{}
		p.Y.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	grid := plotter.NewGrid()
	grid.Vertical.Color = gridColor
	grid.Horizontal.Color = gridColor
	p.Add(grid)

	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.Padding = vg.Points(2)
	return p
}

// points extracts (n, value) pairs. Non-positive pairs cannot be placed on a
// log axis and are dropped there.
func points(rows []report.Measurement, m metric, logScale bool) plotter.XYs {
	pts := make(plotter.XYs, 0, len(rows))
	for _, row := range rows {
		x, y := float64(row.N), m.value(row)
		if logScale && (x <= 0 || y <= 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: x, Y: y})
	}
	return pts
}

func seriesColors(n int) ([]color.Color, error) {
	palette, err := brewer.GetPalette(brewer.TypeQualitative, "Set1", 9)
	if err != nil {
		return nil, err
	}
	colors := palette.Colors()
	if n > 0 && n < len(colors) {
		colors = colors[:n]
	}
	return colors, nil
}

// Render draws the panels of r as a 2x2 grid and writes the PNG to w.
func Render(w io.Writer, r *report.Report, opts Options) error {
	panels, err := Panels(r)
	if err != nil {
		return err
	}

	img := vgimg.NewWith(vgimg.UseWH(opts.Width, opts.Height), vgimg.UseDPI(opts.DPI))
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows:      2,
		Cols:      2,
		PadX:      vg.Millimeter * 6,
		PadY:      vg.Millimeter * 6,
		PadTop:    vg.Millimeter * 3,
		PadBottom: vg.Millimeter * 3,
		PadLeft:   vg.Millimeter * 3,
		PadRight:  vg.Millimeter * 3,
	}
	grid := [][]*plot.Plot{
		{panels[0].Plot, panels[1].Plot},
		{panels[2].Plot, panels[3].Plot},
	}
	canvases := plot.Align(grid, tiles, dc)
	for row := range grid {
		for col := range grid[row] {
			grid[row][col].Draw(canvases[row][col])
		}
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// Save renders r to filename, replacing any existing file.
func Save(filename string, r *report.Report, opts Options) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := Render(f, r, opts); err != nil {
		f.Close()
		return fmt.Errorf("failed to save %s: %w", filename, err)
	}
	return f.Close()
}
