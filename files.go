/*
 * files.go, part of egsphsp.
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
	"bufio"
	"fmt"
	"io"
	"os"
)

// Write writes a complete phase-space file to w: the header followed by one
// record per particle. The header's particle count must match len(particles).
func Write(w io.Writer, H Header, particles []Particle) error {
	if int(H.TotalParticles) != len(particles) {
		return NewError(ErrRecordCountMismatch, "", fmt.Sprintf("header says %d particles, got %d", H.TotalParticles, len(particles)), nil, "Write")
	}
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(H.Bytes()); err != nil {
		return IOError("", "writing header", err, "Write")
	}
	rec := make(Record, H.RecordLength())
	for _, p := range particles {
		rec.Put(p)
		if _, err := bw.Write(rec); err != nil {
			return IOError("", "writing record", err, "Write")
		}
	}
	if err := bw.Flush(); err != nil {
		return IOError("", "flush", err, "Write")
	}
	return nil
}

// WriteFile creates (or truncates) the named file and writes H and particles to it.
func WriteFile(name string, H Header, particles []Particle) error {
	out, err := os.Create(name)
	if err != nil {
		return IOError(name, "create", err, "WriteFile")
	}
	if err := Write(out, H, particles); err != nil {
		out.Close()
		setFileName(err, name)
		return Decorate(err, "WriteFile")
	}
	if err := out.Close(); err != nil {
		return IOError(name, "close", err, "WriteFile")
	}
	return nil
}

// ReadFile reads a whole phase-space file into memory. It is meant for small
// files; the stream package processes large ones without loading them.
func ReadFile(name string) (Header, []Particle, error) {
	f, err := os.Open(name)
	if err != nil {
		return Header{}, nil, IOError(name, "open", err, "ReadFile")
	}
	defer f.Close()
	H, err := FileHeader(f)
	if err != nil {
		return H, nil, Decorate(err, "ReadFile")
	}
	L := H.RecordLength()
	r := bufio.NewReader(io.NewSectionReader(f, int64(L), H.RecordsLength()))
	particles := make([]Particle, H.TotalParticles)
	rec := make(Record, L)
	for i := range particles {
		if _, err := io.ReadFull(r, rec); err != nil {
			return H, nil, IOError(name, fmt.Sprintf("reading record %d", i), err, "ReadFile")
		}
		particles[i] = rec.Particle()
	}
	return H, particles, nil
}
