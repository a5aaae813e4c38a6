/*
 * merge.go, part of egsphsp.
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

package phsp

import (
	"fmt"
	"math"
)

// Reductions used to merge header fields.
func sum[T int32 | float32](a, b T) T     { return a + b }
func minimum[T int32 | float32](a, b T) T { return min(a, b) }
func maximum[T int32 | float32](a, b T) T { return max(a, b) }

// mergeRule combines one header field of a and b into dst.
type mergeRule struct {
	field string
	apply func(dst *Header, a, b Header)
}

// mergePolicy lists, per field, how two headers are combined. Counts and the
// source weight add up, the energy bounds are reduced with min and max.
var mergePolicy = []mergeRule{
	{"total_particles", func(d *Header, a, b Header) { d.TotalParticles = sum(a.TotalParticles, b.TotalParticles) }},
	{"total_photons", func(d *Header, a, b Header) { d.TotalPhotons = sum(a.TotalPhotons, b.TotalPhotons) }},
	{"min_energy", func(d *Header, a, b Header) { d.MinEnergy = minimum(a.MinEnergy, b.MinEnergy) }},
	{"max_energy", func(d *Header, a, b Header) { d.MaxEnergy = maximum(a.MaxEnergy, b.MaxEnergy) }},
	{"total_particles_in_source", func(d *Header, a, b Header) {
		d.TotalParticlesInSource = sum(a.TotalParticlesInSource, b.TotalParticlesInSource)
	}},
}

// Merge returns the header describing the concatenation of the records of a
// and b. Neither argument is modified.
func Merge(a, b Header) (Header, error) {
	if a.Mode != b.Mode {
		return Header{}, NewError(ErrModeMismatch, "", fmt.Sprintf("%s vs %s", a.Mode, b.Mode), nil, "Merge")
	}
	if int64(a.TotalParticles)+int64(b.TotalParticles) > math.MaxInt32 ||
		int64(a.TotalPhotons)+int64(b.TotalPhotons) > math.MaxInt32 {
		return Header{}, NewError(ErrBadLength, "", "merged counts overflow int32", nil, "Merge")
	}
	ret := Header{Mode: a.Mode}
	for _, r := range mergePolicy {
		r.apply(&ret, a, b)
	}
	return ret, nil
}
