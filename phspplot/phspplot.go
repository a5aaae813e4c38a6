/*
 * phspplot.go, part of egsphsp.
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package phspplot draws phase-space file contents to image files: energy spectra
//and the positions of particles on the scoring plane. The format is taken from the
//extension of the file name (png, svg, pdf, eps...).
package phspplot

import (
	"fmt"
	"image/color"

	phsp "github.com/rmera/egsphsp"
	"github.com/rmera/egsphsp/histo"
	"github.com/rmera/egsphsp/stats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// DefaultWidth is the side of the (square) plots.
const DefaultWidth = 12 * vg.Centimeter

var speciesColors = [...]color.Color{
	stats.Electron: color.RGBA{R: 200, A: 255},
	stats.Photon:   color.RGBA{G: 130, B: 30, A: 255},
	stats.Positron: color.RGBA{B: 220, A: 255},
}

type options struct {
	width vg.Length
	logY  bool
}

// Option configures the plots.
type Option func(*options)

// WithWidth sets the side of the plot, in centimeters.
func WithWidth(cm float64) Option {
	return func(o *options) {
		if cm > 0 {
			o.width = vg.Length(cm) * vg.Centimeter
		}
	}
}

// WithLogY draws the spectra with a logarithmic y axis.
func WithLogY(logY bool) Option {
	return func(o *options) {
		o.logY = logY
	}
}

func newOptions(opts []Option) options {
	o := options{width: DefaultWidth}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

// bins turns a histogram into the bins gonum/plot draws.
func bins(D *histo.Data) []plotter.HistogramBin {
	div := D.CopyDividers()
	h := D.View()
	ret := make([]plotter.HistogramBin, len(h))
	for i, v := range h {
		ret[i] = plotter.HistogramBin{Min: div[i], Max: div[i+1], Weight: v}
	}
	return ret
}

// EnergySpectrum plots the kinetic energy spectra of S, one outline per kind
// of particle present in the file.
func EnergySpectrum(S *stats.Summary, title, filename string, opts ...Option) error {
	o := newOptions(opts)
	p := basicPlot(title, "Kinetic energy (MeV)", "Particles")
	drawn := 0
	for sp, D := range S.Spectrum {
		if D == nil || D.Sum() == 0 {
			continue
		}
		b := bins(D)
		h := &plotter.Histogram{
			Bins:      b,
			Width:     b[0].Max - b[0].Min,
			LineStyle: plotter.DefaultLineStyle,
			LogY:      o.logY,
		}
		h.LineStyle.Color = speciesColors[sp]
		p.Add(h)
		p.Legend.Add(stats.Species(sp).String(), h)
		drawn++
	}
	if drawn == 0 {
		return fmt.Errorf("phspplot.EnergySpectrum: no particles in range to plot")
	}
	if o.logY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	p.Legend.Top = true
	if err := p.Save(o.width, o.width, filename); err != nil {
		return fmt.Errorf("phspplot.EnergySpectrum: %w", err)
	}
	return nil
}

// Positions draws the particles on the x-y plane, colored by kind.
func Positions(ps []phsp.Particle, title, filename string, opts ...Option) error {
	o := newOptions(opts)
	if len(ps) == 0 {
		return fmt.Errorf("phspplot.Positions: no particles to plot")
	}
	p := basicPlot(title, "x (cm)", "y (cm)")
	var xys [3]plotter.XYs
	for _, v := range ps {
		sp := stats.SpeciesOf(v.Latch)
		xys[sp] = append(xys[sp], plotter.XY{X: float64(v.X), Y: float64(v.Y)})
	}
	for sp, pts := range xys {
		if len(pts) == 0 {
			continue
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("phspplot.Positions: %w", err)
		}
		s.GlyphStyle.Color = speciesColors[sp]
		s.GlyphStyle.Radius = vg.Points(1)
		p.Add(s)
		p.Legend.Add(stats.Species(sp).String(), s)
	}
	if err := p.Save(o.width, o.width, filename); err != nil {
		return fmt.Errorf("phspplot.Positions: %w", err)
	}
	return nil
}
