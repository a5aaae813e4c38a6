/*
 * transform_commands.go, part of egsphsp.
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
	"math"

	"github.com/spf13/cobra"

	phsp "github.com/rmera/egsphsp"
	"github.com/rmera/egsphsp/affine"
	"github.com/rmera/egsphsp/stream"
)

// transformFlags are shared by translate, rotate and reflect.
type transformFlags struct {
	inPlace bool
}

func (f *transformFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.inPlace, "in-place", "i", false, "Rewrite SRC instead of writing DST")
}

// args checks that there is a destination unless the transform is in place.
func (f *transformFlags) args(cmd *cobra.Command, args []string) error {
	if f.inPlace {
		if len(args) != 1 {
			return fmt.Errorf("with --in-place, give only the file to rewrite (got %d arguments)", len(args))
		}
		return nil
	}
	if len(args) != 2 {
		return fmt.Errorf("need SRC and DST, or --in-place and SRC (got %d arguments)", len(args))
	}
	return nil
}

// run applies T to the file(s) in args, locking the file rewritten in place.
func (f *transformFlags) run(ctx *commandContext, what string, T *affine.Transform, args []string) error {
	log := ctx.logger()
	opts := []stream.Option{
		stream.WithChunkSize(ctx.cfg().Stream.ChunkSize),
		stream.WithLogger(log),
	}
	log.Debug("transform", "operation", what, "matrix", T.String())
	if !f.inPlace {
		return stream.Apply(args[0], args[1], T, false, opts...)
	}
	src := args[0]
	//make sure the file exists before the lock creates it.
	if _, err := phsp.OpenHeader(src); err != nil {
		return err
	}
	return ctx.withLock(src, func() error {
		return stream.Apply(src, "", T, true, opts...)
	})
}

func newTransformCommands(ctx *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newTranslateCommand(ctx),
		newRotateCommand(ctx),
		newReflectCommand(ctx),
	}
}

func newTranslateCommand(ctx *commandContext) *cobra.Command {
	var flags transformFlags
	var dx, dy float64
	cmd := &cobra.Command{
		Use:   "translate SRC [DST]",
		Short: "Move every particle by (x, y) cm",
		Args:  flags.args,
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.run(ctx, "translate", affine.Translation(dx, dy), args)
		},
	}
	flags.register(cmd)
	cmd.Flags().Float64VarP(&dx, "x", "x", 0, "Translation along x, in cm")
	cmd.Flags().Float64VarP(&dy, "y", "y", 0, "Translation along y, in cm")
	return cmd
}

func newRotateCommand(ctx *commandContext) *cobra.Command {
	var flags transformFlags
	var angle float64
	var radians bool
	cmd := &cobra.Command{
		Use:   "rotate SRC [DST]",
		Short: "Rotate every particle counter-clockwise about the z axis",
		Args:  flags.args,
		RunE: func(cmd *cobra.Command, args []string) error {
			theta := angle
			if !radians {
				theta = angle * math.Pi / 180
			}
			return flags.run(ctx, "rotate", affine.Rotation(theta), args)
		},
	}
	flags.register(cmd)
	cmd.Flags().Float64VarP(&angle, "angle", "a", 0, "Rotation angle, in degrees")
	cmd.Flags().BoolVar(&radians, "radians", false, "The angle is in radians")
	return cmd
}

func newReflectCommand(ctx *commandContext) *cobra.Command {
	var flags transformFlags
	var vx, vy float64
	cmd := &cobra.Command{
		Use:   "reflect SRC [DST]",
		Short: "Reflect every particle across the line through the origin along (x, y)",
		Args:  flags.args,
		RunE: func(cmd *cobra.Command, args []string) error {
			T, err := affine.Reflection(vx, vy)
			if err != nil {
				return err
			}
			return flags.run(ctx, "reflect", T, args)
		},
	}
	flags.register(cmd)
	cmd.Flags().Float64VarP(&vx, "x", "x", 1, "x component of the mirror line direction")
	cmd.Flags().Float64VarP(&vy, "y", "y", 0, "y component of the mirror line direction")
	return cmd
}
