/*
 * info_command.go, part of egsphsp.
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

	phsp "github.com/rmera/egsphsp"
)

func newInfoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE...",
		Short: "Show and validate the headers of phase-space files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			headers := []string{"File", "Mode", "Particles", "Photons", "Min E (MeV)", "Max E (MeV)", "Source particles", "Size"}
			var rows [][]string
			var failed int
			for _, name := range args {
				H, err := phsp.OpenHeader(name)
				if err != nil {
					ctx.logger().Error("invalid phase-space file", "file", name, "error", err)
					failed++
					continue
				}
				rows = append(rows, []string{
					name,
					H.Mode.String(),
					humanize.Comma(int64(H.TotalParticles)),
					humanize.Comma(int64(H.TotalPhotons)),
					number(float64(H.MinEnergy)),
					number(float64(H.MaxEnergy)),
					number(float64(H.TotalParticlesInSource)),
					humanize.Bytes(uint64(H.FileLength())),
				})
			}
			if len(rows) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, 2))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files are not valid phase-space files", failed, len(args))
			}
			return nil
		},
	}
}
