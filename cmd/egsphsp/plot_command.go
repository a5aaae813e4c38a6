/*
 * plot_command.go, part of egsphsp.
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
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rmera/egsphsp/phspplot"
	"github.com/rmera/egsphsp/stats"
)

func newPlotCommand(ctx *commandContext) *cobra.Command {
	var flags statsFlags
	var prefix, format string
	var width float64
	var logY bool
	cmd := &cobra.Command{
		Use:   "plot FILE",
		Short: "Plot the energy spectra and the x-y positions of the particles in a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.cfg()
			name := args[0]
			if prefix == "" {
				prefix = strings.TrimSuffix(name, filepath.Ext(name))
			}
			format = strings.TrimPrefix(strings.ToLower(format), ".")
			switch format {
			case "png", "svg", "pdf":
			default:
				return fmt.Errorf("unsupported plot format %q", format)
			}
			if width <= 0 {
				width = cfg.Plot.WidthCm
			}
			opts := append(flags.options(ctx), stats.WithSample(cfg.Plot.Sample))
			S, err := stats.Collect(name, opts...)
			if err != nil {
				return err
			}
			popts := []phspplot.Option{phspplot.WithWidth(width), phspplot.WithLogY(logY)}
			title := filepath.Base(name)
			spectrum := prefix + "_spectrum." + format
			if err := phspplot.EnergySpectrum(S, title, spectrum, popts...); err != nil {
				return err
			}
			positions := prefix + "_positions." + format
			if err := phspplot.Positions(S.Sample, title, positions, phspplot.WithWidth(width)); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Wrote", spectrum)
			fmt.Fprintf(out, "Wrote %s (%d of %d particles)\n", positions, len(S.Sample), S.Records)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "Prefix of the output files (default: FILE without its extension)")
	cmd.Flags().StringVarP(&format, "format", "f", "png", "Image format: png, svg or pdf")
	cmd.Flags().Float64VarP(&width, "width", "w", 0, "Plot width in cm (default from the configuration)")
	cmd.Flags().BoolVar(&logY, "log-y", false, "Logarithmic particle counts in the spectra")
	return cmd
}
