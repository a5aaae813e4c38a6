/*
 * header_test.go, part of egsphsp.
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
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHeaderRoundTrip(Te *testing.T) {
	headers := []Header{
		{Mode: Mode0},
		{Mode: Mode0, TotalParticles: 352, TotalPhotons: 303, MinEnergy: 0.01, MaxEnergy: 6.0, TotalParticlesInSource: 1e6},
		{Mode: Mode2, TotalParticles: math.MaxInt32, TotalPhotons: 1, MinEnergy: 0.189, MaxEnergy: 20, TotalParticlesInSource: 0.5},
		{Mode: Mode2, TotalParticles: -3, TotalPhotons: -1, MinEnergy: float32(math.Inf(-1)), MaxEnergy: float32(math.Inf(1))},
	}
	for _, h := range headers {
		b := h.Bytes()
		if len(b) != h.RecordLength() {
			Te.Errorf("%v: encoded to %d bytes, want %d", h, len(b), h.RecordLength())
		}
		if !bytes.Equal(b[HeaderSize:], make([]byte, len(b)-HeaderSize)) {
			Te.Errorf("%v: padding is not zero: %v", h, b[HeaderSize:])
		}
		got, err := ParseHeader(b)
		if err != nil {
			Te.Fatal(err)
		}
		if got != h {
			Te.Errorf("round trip: got %v, want %v", got, h)
		}
	}
}

func TestHeaderLayout(Te *testing.T) {
	h := Header{Mode: Mode2, TotalParticles: 1, TotalPhotons: 2, MinEnergy: 0.5, MaxEnergy: 4, TotalParticlesInSource: 3}
	b := h.Bytes()
	if string(b[:5]) != "MODE2" {
		Te.Errorf("mode tag %q", b[:5])
	}
	want := []byte{
		1, 0, 0, 0, //particles
		2, 0, 0, 0, //photons
		0, 0, 0x80, 0x40, //max energy 4.0
		0, 0, 0, 0x3f, //min energy 0.5
		0, 0, 0x40, 0x40, //source 3.0
	}
	if !bytes.Equal(b[5:HeaderSize], want) {
		Te.Errorf("header fields %v, want %v", b[5:HeaderSize], want)
	}
	if len(b) != RecordLengthMode2 {
		Te.Errorf("MODE2 header slot is %d bytes", len(b))
	}
}

func TestParseHeaderBadMode(Te *testing.T) {
	for _, tag := range []string{"MODE1", "mode0", "MODE ", "\x00\x00\x00\x00\x00", "XXXXX"} {
		b := Header{Mode: Mode0}.Bytes()
		copy(b, tag)
		_, err := ParseHeader(b)
		if !errors.Is(err, ErrBadMode) {
			Te.Errorf("tag %q: got %v, want ErrBadMode", tag, err)
		}
	}
	if _, err := ParseHeader([]byte("MODE0")); !errors.Is(err, ErrBadLength) {
		Te.Errorf("short header: got %v, want ErrBadLength", err)
	}
}

func TestValidate(Te *testing.T) {
	for _, mode := range []Mode{Mode0, Mode2} {
		for _, n := range []int32{0, 1, 352, 100000} {
			h := Header{Mode: mode, TotalParticles: n}
			L := int64(mode.RecordLength())
			if err := h.Validate((int64(n) + 1) * L); err != nil {
				Te.Errorf("%v n=%d: exact length rejected: %v", mode, n, err)
			}
			if err := h.Validate((int64(n)+1)*L - 1); !errors.Is(err, ErrBadLength) {
				Te.Errorf("%v n=%d: short length: got %v, want ErrBadLength", mode, n, err)
			}
			if err := h.Validate((int64(n)+1)*L + 1); !errors.Is(err, ErrBadLength) {
				Te.Errorf("%v n=%d: long length: got %v, want ErrBadLength", mode, n, err)
			}
		}
	}
	if err := (Header{Mode: Mode0, TotalParticles: -1}).Validate(0); !errors.Is(err, ErrBadLength) {
		Te.Errorf("negative count: got %v", err)
	}
}

func TestMerge(Te *testing.T) {
	a := Header{Mode: Mode0, TotalParticles: 352, TotalPhotons: 303, MinEnergy: 0.2, MaxEnergy: 5.5, TotalParticlesInSource: 1000}
	b := Header{Mode: Mode0, TotalParticles: 352, TotalPhotons: 303, MinEnergy: 0.1, MaxEnergy: 4.0, TotalParticlesInSource: 2500.5}
	m, err := Merge(a, b)
	if err != nil {
		Te.Fatal(err)
	}
	want := Header{Mode: Mode0, TotalParticles: 704, TotalPhotons: 606, MinEnergy: 0.1, MaxEnergy: 5.5, TotalParticlesInSource: 3500.5}
	if m != want {
		Te.Errorf("merged %v, want %v", m, want)
	}
	if a.TotalParticles != 352 || b.MinEnergy != 0.1 {
		Te.Errorf("inputs modified: %v %v", a, b)
	}
	if _, err := Merge(a, Header{Mode: Mode2}); !errors.Is(err, ErrModeMismatch) {
		Te.Errorf("got %v, want ErrModeMismatch", err)
	}
	big := Header{Mode: Mode0, TotalParticles: math.MaxInt32}
	if _, err := Merge(big, Header{Mode: Mode0, TotalParticles: 1}); !errors.Is(err, ErrBadLength) {
		Te.Errorf("overflow: got %v", err)
	}
}

func TestOpenHeader(Te *testing.T) {
	dir := Te.TempDir()
	name := filepath.Join(dir, "good.egsphsp1")
	h := Header{Mode: Mode2, TotalParticles: 3, TotalPhotons: 1, MinEnergy: 0.1, MaxEnergy: 2, TotalParticlesInSource: 10}
	ps := []Particle{{X: 1}, {X: 2}, {X: 3}}
	if err := WriteFile(name, h, ps); err != nil {
		Te.Fatal(err)
	}
	got, err := OpenHeader(name)
	if err != nil {
		Te.Fatal(err)
	}
	if got != h {
		Te.Errorf("got %v, want %v", got, h)
	}

	raw, err := os.ReadFile(name)
	if err != nil {
		Te.Fatal(err)
	}
	short := filepath.Join(dir, "short.egsphsp1")
	if err := os.WriteFile(short, raw[:len(raw)-1], 0o644); err != nil {
		Te.Fatal(err)
	}
	_, err = OpenHeader(short)
	if !errors.Is(err, ErrBadLength) {
		Te.Fatalf("got %v, want ErrBadLength", err)
	}
	if !strings.Contains(err.Error(), short) {
		Te.Errorf("error does not name the file: %v", err)
	}

	_, err = OpenHeader(filepath.Join(dir, "nope"))
	if !errors.Is(err, ErrIO) || !errors.Is(err, os.ErrNotExist) {
		Te.Errorf("missing file: got %v", err)
	}
}

func TestErrorDecorate(Te *testing.T) {
	err := NewError(ErrTruncatedFile, "a.egsphsp1", "3 bytes left", nil, "pump")
	Decorate(err, "Transform")
	trail := err.Decorate("")
	if len(trail) != 2 || trail[0] != "pump" || trail[1] != "Transform" {
		Te.Errorf("trail %v", trail)
	}
	if !err.Critical() || err.FileName() != "a.egsphsp1" || err.Kind() != ErrTruncatedFile {
		Te.Errorf("accessors: %v %q %v", err.Critical(), err.FileName(), err.Kind())
	}
	plain := Decorate(errors.New("boom"), "x")
	if !errors.Is(plain, ErrIO) {
		Te.Errorf("foreign errors should become ErrIO: %v", plain)
	}
	if Decorate(nil, "x") != nil {
		Te.Error("Decorate(nil) should be nil")
	}
}
