/*
 * compress_commands.go, part of egsphsp.
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
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/rmera/egsphsp/archive"
)

func newCompressCommand(ctx *commandContext) *cobra.Command {
	var level int
	cmd := &cobra.Command{
		Use:   "compress SRC DST",
		Short: "Compress a phase-space file; the codec comes from the DST extension (.zst, .gz, .flate, .lzw)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("level") {
				level = ctx.cfg().Archive.CompressionLevel
			}
			if err := archive.Compress(args[0], args[1], level, archive.WithLogger(ctx.logger())); err != nil {
				return err
			}
			return reportSizes(cmd, args[0], args[1])
		},
	}
	cmd.Flags().IntVarP(&level, "level", "l", 0, "Compression level, 0 for the codec default")
	return cmd
}

func newDecompressCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "decompress SRC DST",
		Short: "Restore a compressed phase-space file and validate it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := archive.Decompress(args[0], args[1], archive.WithLogger(ctx.logger())); err != nil {
				return err
			}
			return reportSizes(cmd, args[0], args[1])
		},
	}
}

func reportSizes(cmd *cobra.Command, src, dst string) error {
	si, err := os.Stat(src)
	if err != nil {
		return err
	}
	di, err := os.Stat(dst)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) -> %s (%s)\n", src, humanize.Bytes(uint64(si.Size())), dst, humanize.Bytes(uint64(di.Size())))
	return nil
}
