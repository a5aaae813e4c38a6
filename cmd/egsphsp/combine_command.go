/*
 * combine_command.go, part of egsphsp.
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
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	phsp "github.com/rmera/egsphsp"
	"github.com/rmera/egsphsp/combine"
)

func newCombineCommand(ctx *commandContext) *cobra.Command {
	var output string
	var deleteInputs bool
	cmd := &cobra.Command{
		Use:   "combine INPUT... --output FILE",
		Short: "Concatenate phase-space files of the same mode into one",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return errors.New("--output is required")
			}
			err := ctx.withLockFile(output, func() error {
				return combine.Combine(args, output, deleteInputs, combine.WithLogger(ctx.logger()))
			})
			if err != nil {
				return err
			}
			H, err := phsp.OpenHeader(output)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s: %s records (%s photons) from %d files, %s\n", output,
				humanize.Comma(int64(H.TotalParticles)), humanize.Comma(int64(H.TotalPhotons)), len(args),
				humanize.Bytes(uint64(H.FileLength())))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Combined file to write")
	cmd.Flags().BoolVarP(&deleteInputs, "delete-inputs", "d", false, "Delete each input once it has been copied")
	return cmd
}
