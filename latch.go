/*
 * latch.go, part of egsphsp.
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

// Latch holds the bit flags of a record, as BEAMnrc writes them to a phase-space file:
//
//	bit 0      bremsstrahlung or positron annihilation happened in the history
//	bits 1-23  bit regions the particle has been in or interacted in
//	bits 24-28 bit region where a secondary was created, 0 for primaries
//	bit 29     positive charge
//	bit 30     negative charge
//	bit 31     the particle crossed the scoring plane more than once
type Latch uint32

const (
	latchBrem           Latch = 1
	latchRegions        Latch = 0xfffffe
	latchCreationRegion Latch = 0x1f000000
	latchPositive       Latch = 1 << 29
	latchNegative       Latch = 1 << 30
	latchMultiPass      Latch = 1 << 31
)

// NewLatch assembles a latch. charge must be -1, 0 or 1; regions uses bits 1-23
// and creationRegion 0-31.
func NewLatch(multiPass bool, charge int, brem bool, regions uint32, creationRegion uint32) Latch {
	var L Latch
	if multiPass {
		L |= latchMultiPass
	}
	switch charge {
	case -1:
		L |= latchNegative
	case 1:
		L |= latchPositive
	}
	if brem {
		L |= latchBrem
	}
	L |= Latch(regions) & latchRegions
	L |= Latch(creationRegion<<24) & latchCreationRegion
	return L
}

// Charge returns -1 for electrons, 1 for positrons and 0 for photons.
func (L Latch) Charge() int {
	switch {
	case L&latchNegative != 0:
		return -1
	case L&latchPositive != 0:
		return 1
	}
	return 0
}

func (L Latch) Brem() bool             { return L&latchBrem != 0 }
func (L Latch) Regions() uint32        { return uint32(L & latchRegions) }
func (L Latch) CreationRegion() uint32 { return uint32(L&latchCreationRegion) >> 24 }
func (L Latch) MultiPass() bool        { return L&latchMultiPass != 0 }
