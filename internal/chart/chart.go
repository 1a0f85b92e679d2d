// Package chart renders sampled response curves as HTML pages and PNG images.
package chart

import (
	"fmt"
	"io"
	"math"

	"github.com/RMahshie/basscalc/internal/transfer"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Line is one named curve. NaN entries in Y are drawn as gaps.
type Line struct {
	Name string
	X    []float64
	Y    []float64
}

// FromPoints builds a Line from sampled points. y maps a valid point to the
// plotted value; invalid points become gaps.
func FromPoints(name string, points []transfer.Point, y func(transfer.Point) float64) Line {
	l := Line{Name: name, X: make([]float64, len(points)), Y: make([]float64, len(points))}
	for i, p := range points {
		l.X[i] = p.Frequency
		l.Y[i] = math.NaN()
		if p.Valid {
			l.Y[i] = y(p)
		}
	}
	return l
}

// Level plots the magnitude in dB
func Level(p transfer.Point) float64 {
	return p.Level()
}

// Magnitude plots the linear magnitude
func Magnitude(p transfer.Point) float64 {
	return p.Magnitude
}

// Options control axis labelling
type Options struct {
	Title  string
	YLabel string
	LogX   bool
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// segments splits a line at its gaps
func (l Line) segments() []plotter.XYs {
	var out []plotter.XYs
	var cur plotter.XYs
	for i := range l.X {
		if !finite(l.Y[i]) {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: l.X[i], Y: l.Y[i]})
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// HTML writes an interactive chart page
func HTML(w io.Writer, o Options, lines ...Line) error {
	xType := "value"
	if o.LogX {
		xType = "log"
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: o.Title,
			Width:     "1000px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{Title: o.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Hz", Type: xType}),
		charts.WithYAxisOpts(opts.YAxis{Name: o.YLabel}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside", XAxisIndex: []int{0}}),
	)

	for _, l := range lines {
		data := make([]opts.LineData, len(l.X))
		for i := range l.X {
			if finite(l.Y[i]) {
				data[i] = opts.LineData{Value: []interface{}{l.X[i], l.Y[i]}}
			} else {
				data[i] = opts.LineData{Value: []interface{}{l.X[i], "-"}}
			}
		}
		line.AddSeries(l.Name, data)
	}

	if err := line.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// PNG writes a static chart image of the given size
func PNG(w io.Writer, o Options, width, height vg.Length, lines ...Line) error {
	p := plot.New()
	p.Title.Text = o.Title
	p.X.Label.Text = "Frequency (Hz)"
	p.Y.Label.Text = o.YLabel
	if o.LogX {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	p.Add(plotter.NewGrid())

	for i, l := range lines {
		for j, seg := range l.segments() {
			pl, err := plotter.NewLine(seg)
			if err != nil {
				return fmt.Errorf("failed to build line %q: %w", l.Name, err)
			}
			pl.Color = plotutil.Color(i)
			p.Add(pl)
			if j == 0 {
				p.Legend.Add(l.Name, pl)
			}
		}
	}

	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("failed to render plot: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write plot: %w", err)
	}
	return nil
}
