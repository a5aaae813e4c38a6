/*
 * stats_command.go, part of egsphsp.
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

package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/rmera/egsphsp/histo"
	"github.com/rmera/egsphsp/stats"
)

// statsFlags are shared by the stats and plot commands.
type statsFlags struct {
	bins       int
	emin, emax float64
}

func (f *statsFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.bins, "bins", "b", 0, "Bins of the energy spectra (default from the configuration)")
	cmd.Flags().Float64Var(&f.emin, "emin", 0, "Lower end of the energy spectra, in MeV")
	cmd.Flags().Float64Var(&f.emax, "emax", 0, "Upper end of the energy spectra, in MeV (default from the header)")
}

func (f *statsFlags) options(ctx *commandContext) []stats.Option {
	cfg := ctx.cfg()
	bins := f.bins
	if bins <= 0 {
		bins = cfg.Plot.Bins
	}
	opts := []stats.Option{
		stats.WithBins(bins),
		stats.WithChunkSize(cfg.Stream.ChunkSize),
		stats.WithLogger(ctx.logger()),
	}
	if f.emax > f.emin {
		opts = append(opts, stats.WithEnergyRange(f.emin, f.emax))
	}
	return opts
}

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var flags statsFlags
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats FILE",
		Short: "Summarize the particles in a phase-space file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			S, err := stats.Collect(args[0], flags.options(ctx)...)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, summaryJSON(args[0], S))
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, keyValueTable(summaryRows(S)))
			fmt.Fprintln(out, momentsTable(S))
			for _, msg := range S.Checks() {
				fmt.Fprintln(out, "warning:", msg)
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the summary as JSON")
	return cmd
}

func summaryRows(S *stats.Summary) [][]string {
	H := S.Header
	return [][]string{
		{"Mode", H.Mode.String()},
		{"Records", humanize.Comma(S.Records)},
		{"Photons", humanize.Comma(S.Count[stats.Photon])},
		{"Electrons", humanize.Comma(S.Count[stats.Electron])},
		{"Positrons", humanize.Comma(S.Count[stats.Positron])},
		{"New histories", humanize.Comma(S.NewHistories)},
		{"Multiple crossers", humanize.Comma(S.MultiPass)},
		{"Brem/annihilation", humanize.Comma(S.Brem)},
		{"Moving towards -z", humanize.Comma(S.Backward)},
		{"Weight sum", number(S.WeightSum)},
		{"Min kinetic E (MeV)", number(S.MinKinetic)},
		{"Max kinetic E (MeV)", number(S.MaxKinetic)},
		{"Min charged kinetic E (MeV)", number(S.MinChargedKinetic)},
		{"Source particles", number(float64(H.TotalParticlesInSource))},
	}
}

func momentsTable(S *stats.Summary) string {
	named := []struct {
		name string
		m    stats.Moments
	}{
		{"x (cm)", S.X},
		{"y (cm)", S.Y},
		{"x cos", S.XCos},
		{"y cos", S.YCos},
		{"kinetic E (MeV)", S.Kinetic},
	}
	rows := make([][]string, 0, len(named))
	for _, v := range named {
		rows = append(rows, []string{v.name, number(v.m.Mean), number(v.m.StdDev)})
	}
	return renderTable([]string{"Quantity", "Mean", "Std. dev."}, rows, 1)
}

type momentsOut struct {
	Mean   any     `json:"mean"`
	StdDev any     `json:"stddev"`
	Weight float64 `json:"weight"`
}

func momentsJSON(m stats.Moments) momentsOut {
	return momentsOut{Mean: jsonNumber(m.Mean), StdDev: jsonNumber(m.StdDev), Weight: m.Weight}
}

func summaryJSON(name string, S *stats.Summary) map[string]any {
	H := S.Header
	spectra := map[string]*histo.Data{}
	for sp, D := range S.Spectrum {
		if D != nil {
			spectra[stats.Species(sp).String()] = D
		}
	}
	return map[string]any{
		"file": name,
		"header": map[string]any{
			"mode":                      H.Mode.String(),
			"total_particles":           H.TotalParticles,
			"total_photons":             H.TotalPhotons,
			"min_energy":                jsonNumber(float64(H.MinEnergy)),
			"max_energy":                jsonNumber(float64(H.MaxEnergy)),
			"total_particles_in_source": jsonNumber(float64(H.TotalParticlesInSource)),
		},
		"records":             S.Records,
		"photons":             S.Count[stats.Photon],
		"electrons":           S.Count[stats.Electron],
		"positrons":           S.Count[stats.Positron],
		"new_histories":       S.NewHistories,
		"multiple_crossers":   S.MultiPass,
		"brem":                S.Brem,
		"backward":            S.Backward,
		"weight_sum":          jsonNumber(S.WeightSum),
		"min_kinetic":         jsonNumber(S.MinKinetic),
		"max_kinetic":         jsonNumber(S.MaxKinetic),
		"min_charged_kinetic": jsonNumber(S.MinChargedKinetic),
		"x":                   momentsJSON(S.X),
		"y":                   momentsJSON(S.Y),
		"x_cos":               momentsJSON(S.XCos),
		"y_cos":               momentsJSON(S.YCos),
		"kinetic":             momentsJSON(S.Kinetic),
		"spectra":             spectra,
		"checks":              S.Checks(),
	}
}
