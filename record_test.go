/*
 * record_test.go, part of egsphsp.
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
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestRecordFields(Te *testing.T) {
	p := Particle{
		Latch:       NewLatch(true, -1, true, 0x6, 3),
		TotalEnergy: -1.25,
		X:           1.5,
		Y:           -2.5,
		XCos:        0.6,
		YCos:        -0.8,
		Weight:      -0.75,
		ZLast:       42,
	}
	r0 := make(Record, RecordLengthMode0)
	r0.Put(p)
	got := r0.Particle()
	want := p
	want.ZLast = 0
	if got != want {
		Te.Errorf("MODE0: got %+v, want %+v", got, want)
	}
	if _, ok := r0.ZLast(); ok {
		Te.Error("MODE0 record reports a zlast")
	}
	r2 := make(Record, RecordLengthMode2)
	r2.Put(p)
	if got := r2.Particle(); got != p {
		Te.Errorf("MODE2: got %+v, want %+v", got, p)
	}
	if !r2.NewHistory() || r2.ZSign() != -1 {
		Te.Errorf("NewHistory %v ZSign %d", r2.NewHistory(), r2.ZSign())
	}
	//the setters must only touch their own 8 bytes.
	before := bytes.Clone(r2)
	r2.SetPosition(9, 9)
	r2.SetDirection(0, 1)
	if !bytes.Equal(before[:OffsetX], r2[:OffsetX]) || !bytes.Equal(before[OffsetWeight:], r2[OffsetWeight:]) {
		Te.Errorf("setters touched other fields:\n%v\n%v", before, r2)
	}
}

func TestLatch(Te *testing.T) {
	tests := []struct {
		multi  bool
		charge int
		brem   bool
		reg    uint32
		cr     uint32
	}{
		{false, 0, false, 0, 0},
		{true, -1, false, 0x2, 1},
		{false, 1, true, 0xfffffe, 31},
		{true, 0, true, 0x10, 0},
	}
	for _, t := range tests {
		L := NewLatch(t.multi, t.charge, t.brem, t.reg, t.cr)
		if L.MultiPass() != t.multi || L.Charge() != t.charge || L.Brem() != t.brem ||
			L.Regions() != t.reg || L.CreationRegion() != t.cr {
			Te.Errorf("%+v: got latch %#x multi=%v charge=%d brem=%v reg=%#x cr=%d", t, uint32(L),
				L.MultiPass(), L.Charge(), L.Brem(), L.Regions(), L.CreationRegion())
		}
	}
}

func TestWriteReadFile(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "w.egsphsp1")
	h := Header{Mode: Mode0, TotalParticles: 2, TotalPhotons: 1, MinEnergy: 1, MaxEnergy: 2, TotalParticlesInSource: 5}
	ps := []Particle{
		{Latch: NewLatch(false, 0, false, 0, 0), TotalEnergy: -2, X: 1, Y: 2, XCos: 0, YCos: 1, Weight: 1},
		{Latch: NewLatch(false, -1, false, 0, 0), TotalEnergy: 1, X: -1, Y: -2, XCos: 1, YCos: 0, Weight: -1},
	}
	if err := WriteFile(name, h, ps); err != nil {
		Te.Fatal(err)
	}
	info, err := os.Stat(name)
	if err != nil {
		Te.Fatal(err)
	}
	if info.Size() != h.FileLength() {
		Te.Errorf("file is %d bytes, want %d", info.Size(), h.FileLength())
	}
	gh, gps, err := ReadFile(name)
	if err != nil {
		Te.Fatal(err)
	}
	if gh != h || len(gps) != 2 || gps[0] != ps[0] || gps[1] != ps[1] {
		Te.Errorf("read back %v %+v", gh, gps)
	}
	h.TotalParticles = 3
	if err := WriteFile(name, h, ps); !errors.Is(err, ErrRecordCountMismatch) {
		Te.Errorf("got %v, want ErrRecordCountMismatch", err)
	}
}
