/*
 * record.go, part of egsphsp.
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
	"encoding/binary"
	"math"
)

// Byte offsets of the record fields.
const (
	OffsetLatch       = 0
	OffsetTotalEnergy = 4
	OffsetX           = 8
	OffsetY           = 12
	OffsetXCos        = 16
	OffsetYCos        = 20
	OffsetWeight      = 24
	OffsetZLast       = 28 //MODE2 only
)

// Record is a view over the bytes of one particle record. It does not own or
// copy the bytes, so setters write straight into the underlying buffer.
// len(Record) is the record length of the file it came from.
type Record []byte

func (R Record) f32(off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(R[off:]))
}

func (R Record) setf32(off int, v float32) {
	binary.LittleEndian.PutUint32(R[off:], math.Float32bits(v))
}

func (R Record) Latch() Latch {
	return Latch(binary.LittleEndian.Uint32(R[OffsetLatch:]))
}

func (R Record) TotalEnergy() float32 { return R.f32(OffsetTotalEnergy) }
func (R Record) X() float32           { return R.f32(OffsetX) }
func (R Record) Y() float32           { return R.f32(OffsetY) }
func (R Record) XCos() float32        { return R.f32(OffsetXCos) }
func (R Record) YCos() float32        { return R.f32(OffsetYCos) }
func (R Record) Weight() float32      { return R.f32(OffsetWeight) }

// ZLast returns the zlast field and true for MODE2 records, 0 and false otherwise.
func (R Record) ZLast() (float32, bool) {
	if len(R) < RecordLengthMode2 {
		return 0, false
	}
	return R.f32(OffsetZLast), true
}

// SetPosition overwrites x_cm and y_cm.
func (R Record) SetPosition(x, y float32) {
	R.setf32(OffsetX, x)
	R.setf32(OffsetY, y)
}

// SetDirection overwrites x_cos and y_cos.
func (R Record) SetDirection(u, v float32) {
	R.setf32(OffsetXCos, u)
	R.setf32(OffsetYCos, v)
}

// NewHistory is true for the first particle scored by a new primary history,
// which EGSnrc marks with a negative total energy.
func (R Record) NewHistory() bool {
	return math.Signbit(float64(R.TotalEnergy()))
}

// ZSign returns -1 if the particle moves towards negative z, 1 otherwise.
func (R Record) ZSign() int {
	if math.Signbit(float64(R.Weight())) {
		return -1
	}
	return 1
}

// Particle is the decoded, owned form of a record. The streaming code never
// builds these; they are for small files, tests and tools.
type Particle struct {
	Latch       Latch
	TotalEnergy float32
	X, Y        float32
	XCos, YCos  float32
	Weight      float32
	ZLast       float32 //ignored for MODE0
}

// Particle decodes the record.
func (R Record) Particle() Particle {
	p := Particle{
		Latch:       R.Latch(),
		TotalEnergy: R.TotalEnergy(),
		X:           R.X(),
		Y:           R.Y(),
		XCos:        R.XCos(),
		YCos:        R.YCos(),
		Weight:      R.Weight(),
	}
	p.ZLast, _ = R.ZLast()
	return p
}

// Put encodes p into R. zlast is written only if R is long enough to hold it.
func (R Record) Put(p Particle) {
	binary.LittleEndian.PutUint32(R[OffsetLatch:], uint32(p.Latch))
	R.setf32(OffsetTotalEnergy, p.TotalEnergy)
	R.SetPosition(p.X, p.Y)
	R.SetDirection(p.XCos, p.YCos)
	R.setf32(OffsetWeight, p.Weight)
	if len(R) >= RecordLengthMode2 {
		R.setf32(OffsetZLast, p.ZLast)
	}
}
