/*
 * doc.go, part of egsphsp.
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

/*
Package phsp reads, validates and writes EGSnrc phase-space files.

A phase-space file is a header record followed by N particle records, all of the
same length and all little-endian. The header occupies the first record slot:

	offset  size  field
	0       5     mode tag, "MODE0" or "MODE2"
	5       4     total_particles (int32)
	9       4     total_photons (int32)
	13      4     max_energy (float32)
	17      4     min_energy (float32)
	21      4     total_particles_in_source (float32)
	25      -     zero padding up to the record length

MODE0 records are 28 bytes long, MODE2 records carry an extra zlast field and are
32 bytes long:

	offset  field
	0       latch (uint32)
	4       total_energy (float32), negative for the first particle of a new history
	8       x_cm
	12      y_cm
	16      x_cos
	20      y_cos
	24      weight, its sign carries the sign of the z direction cosine
	28      zlast (MODE2 only)

A valid file is exactly (total_particles+1)*record_length bytes long.

The geometric transforms live in the affine package, the chunked record engine in
stream, and file merging in combine.
*/
package phsp
