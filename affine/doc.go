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
Package affine implements the 2-D affine transforms that are applied to the x-y plane of
phase-space particles. A Transform is a 3x3 gonum matrix acting on homogeneous coordinates.

Positions receive the whole transform (MapPoint), while direction cosines only receive the
2x2 linear block (MapVector). The two are separate methods so callers can not apply a
translation to a direction by accident.

None of the transforms here touch z, so the sign of the z direction cosine (carried by the
record weight) is never changed.
*/
package affine
