/*
 * compare_command.go, part of egsphsp.
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

	"github.com/spf13/cobra"

	"github.com/rmera/egsphsp/stats"
)

func newCompareCommand(ctx *commandContext) *cobra.Command {
	var tol float64
	cmd := &cobra.Command{
		Use:   "compare A B",
		Short: "Compare two phase-space files record by record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			D, err := stats.Compare(args[0], args[1], tol,
				stats.WithChunkSize(ctx.cfg().Stream.ChunkSize), stats.WithLogger(ctx.logger()))
			if err != nil {
				return err
			}
			rows := [][]string{
				{"Records", fmt.Sprint(D.Records)},
				{"Headers equal", yesNo(D.A == D.B)},
				{"Differing records", fmt.Sprint(D.Differing)},
				{"Latch differences", fmt.Sprint(D.LatchDiffs)},
			}
			if D.First >= 0 {
				rows = append(rows, []string{"First differing record", fmt.Sprint(D.First)})
			}
			for f := stats.Field(0); f < stats.NumFields; f++ {
				rows = append(rows, []string{"Max deviation " + f.String(), number(D.MaxDev[f])})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, keyValueTable(rows))
			if !D.Equal() {
				return fmt.Errorf("%s and %s differ (tolerance %g)", args[0], args[1], tol)
			}
			fmt.Fprintln(out, "Files are equal")
			return nil
		},
	}
	cmd.Flags().Float64VarP(&tol, "tol", "t", 0, "Absolute tolerance for the floating point fields")
	return cmd
}
