/*
 * moments.go, part of egsphsp.
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

package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// batchSize is how many values are buffered before they are folded into
// the running moments.
const batchSize = 4096

// Moments are the weighted mean and population standard deviation of one quantity.
// Weight is the sum of the weights that went into them.
type Moments struct {
	Mean   float64
	StdDev float64
	Weight float64
}

// accumulator computes weighted moments of a stream of values. Values are
// buffered, each full batch is reduced with gonum, and the batch results are
// merged into the running totals.
type accumulator struct {
	x, w []float64
	W    float64 //total weight so far
	mean float64
	m2   float64 //sum of w*(x-mean)^2
}

func (A *accumulator) add(x, w float64) {
	A.x = append(A.x, x)
	A.w = append(A.w, w)
	if len(A.x) >= batchSize {
		A.flush()
	}
}

func (A *accumulator) flush() {
	if len(A.x) == 0 {
		return
	}
	if wb := floats.Sum(A.w); wb > 0 {
		mb, vb := stat.PopMeanVariance(A.x, A.w)
		W := A.W + wb
		d := mb - A.mean
		A.mean += d * wb / W
		A.m2 += vb*wb + d*d*A.W*wb/W
		A.W = W
	}
	A.x = A.x[:0]
	A.w = A.w[:0]
}

func (A *accumulator) moments() Moments {
	A.flush()
	if A.W == 0 {
		return Moments{Mean: math.NaN(), StdDev: math.NaN()}
	}
	return Moments{Mean: A.mean, StdDev: math.Sqrt(A.m2 / A.W), Weight: A.W}
}
