/*
 * affine.go, part of egsphsp.
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

package affine

import (
	"errors"
	"fmt"
	"math"

	phsp "github.com/rmera/egsphsp"
	"gonum.org/v1/gonum/mat"
)

// ErrSingular is returned when inverting a transform that has no inverse.
var ErrSingular = errors.New("singular transform")

// PointMapper applies the full affine map, linear part plus translation.
// It is what positions go through.
type PointMapper interface {
	MapPoint(x, y float64) (float64, float64)
}

// VectorMapper applies only the 2x2 linear part. Directions go through it,
// since translating a direction cosine makes no physical sense.
type VectorMapper interface {
	MapVector(u, v float64) (float64, float64)
}

// Mapper is what the record engine needs: both capabilities, sharing one linear block.
type Mapper interface {
	PointMapper
	VectorMapper
}

// Transform is a 2-D affine transform stored as a 3x3 matrix acting on
// homogeneous coordinates (x, y, 1). The bottom row is always 0 0 1.
// A Transform is immutable once built.
type Transform struct {
	m *mat.Dense
	c [6]float64 //row-major copy of the top two rows, for the hot path
}

func fromDense(d *mat.Dense) *Transform {
	T := &Transform{m: d}
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			T.c[3*i+j] = d.At(i, j)
		}
	}
	return T
}

// Identity returns the transform that changes nothing.
func Identity() *Transform {
	return fromDense(mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}))
}

// New builds a Transform from any 3x3 matrix whose bottom row is 0 0 1.
// The matrix is copied.
func New(m mat.Matrix) (*Transform, error) {
	r, c := m.Dims()
	if r != 3 || c != 3 {
		return nil, fmt.Errorf("affine: need a 3x3 matrix, got %dx%d", r, c)
	}
	if m.At(2, 0) != 0 || m.At(2, 1) != 0 || m.At(2, 2) != 1 {
		return nil, fmt.Errorf("affine: bottom row must be 0 0 1, got %g %g %g", m.At(2, 0), m.At(2, 1), m.At(2, 2))
	}
	return fromDense(mat.DenseCopyOf(m)), nil
}

// Translation moves points by (dx, dy).
func Translation(dx, dy float64) *Transform {
	return fromDense(mat.NewDense(3, 3, []float64{
		1, 0, dx,
		0, 1, dy,
		0, 0, 1,
	}))
}

// Rotation turns points counter-clockwise by theta radians about the origin.
func Rotation(theta float64) *Transform {
	s, c := math.Sincos(theta)
	return fromDense(mat.NewDense(3, 3, []float64{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}))
}

// Reflection mirrors points across the line through the origin with direction
// (vx, vy). The direction is normalized first, so its length does not matter,
// but it can not be zero.
func Reflection(vx, vy float64) (*Transform, error) {
	norm := math.Hypot(vx, vy)
	if norm == 0 {
		return nil, phsp.NewError(phsp.ErrDegenerateVector, "", fmt.Sprintf("(%g, %g)", vx, vy), nil, "Reflection")
	}
	vx /= norm
	vy /= norm
	return fromDense(mat.NewDense(3, 3, []float64{
		vx*vx - vy*vy, 2 * vx * vy, 0,
		2 * vx * vy, vy*vy - vx*vx, 0,
		0, 0, 1,
	})), nil
}

// Compose returns a transform that applies ts in order: ts[0] first.
// Composing nothing gives the identity.
func Compose(ts ...*Transform) *Transform {
	ret := mat.DenseCopyOf(Identity().m)
	for _, t := range ts {
		ret.Mul(t.m, ret)
	}
	return fromDense(ret)
}

// Inverse returns the transform that undoes T.
func (T *Transform) Inverse() (*Transform, error) {
	inv := mat.NewDense(3, 3, nil)
	if err := inv.Inverse(T.m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingular, err)
	}
	//clean up round-off in the bottom row so the result passes New's checks.
	inv.Set(2, 0, 0)
	inv.Set(2, 1, 0)
	inv.Set(2, 2, 1)
	return fromDense(inv), nil
}

// At returns the element in row i, column j of the 3x3 matrix.
func (T *Transform) At(i, j int) float64 {
	return T.m.At(i, j)
}

// Matrix returns a copy of the 3x3 matrix.
func (T *Transform) Matrix() *mat.Dense {
	return mat.DenseCopyOf(T.m)
}

// MapPoint applies the full affine transform to the point (x, y).
func (T *Transform) MapPoint(x, y float64) (float64, float64) {
	c := &T.c
	return c[0]*x + c[1]*y + c[2], c[3]*x + c[4]*y + c[5]
}

// MapVector applies only the linear part to the vector (u, v).
func (T *Transform) MapVector(u, v float64) (float64, float64) {
	c := &T.c
	return c[0]*u + c[1]*v, c[3]*u + c[4]*v
}

// Linear reports whether T has no translation part.
func (T *Transform) Linear() bool {
	return T.c[2] == 0 && T.c[5] == 0
}

func (T *Transform) String() string {
	return fmt.Sprintf("%v", mat.Formatted(T.m, mat.Squeeze()))
}
