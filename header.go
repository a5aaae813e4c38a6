/*
 * header.go, part of egsphsp.
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
	"fmt"
	"io"
	"math"
	"os"
)

// HeaderSize is the number of meaningful bytes in a header. The rest of the
// header record slot is zero padding.
const HeaderSize = 25

const (
	RecordLengthMode0 = 28
	RecordLengthMode2 = 32
)

// header field offsets. EGSnrc stores the maximum energy before the minimum.
const (
	hMode           = 0
	hTotalParticles = 5
	hTotalPhotons   = 9
	hMaxEnergy      = 13
	hMinEnergy      = 17
	hTotalInSource  = 21
)

// Mode is the record layout variant of a file.
type Mode int

const (
	Mode0 Mode = iota //no zlast
	Mode2             //trailing zlast field
)

var modeTags = [...]string{Mode0: "MODE0", Mode2: "MODE2"}

func (M Mode) String() string {
	if M < 0 || int(M) >= len(modeTags) {
		return fmt.Sprintf("Mode(%d)", int(M))
	}
	return modeTags[M]
}

// RecordLength returns the length in bytes of one record (and of the header slot).
func (M Mode) RecordLength() int {
	if M == Mode2 {
		return RecordLengthMode2
	}
	return RecordLengthMode0
}

// ParseMode returns the Mode for a 5-byte tag.
func ParseMode(tag []byte) (Mode, error) {
	for m, t := range modeTags {
		if string(tag) == t {
			return Mode(m), nil
		}
	}
	return 0, NewError(ErrBadMode, "", fmt.Sprintf("%q", tag), nil, "ParseMode")
}

// Header is the first record of a phase-space file.
type Header struct {
	Mode                   Mode
	TotalParticles         int32
	TotalPhotons           int32
	MinEnergy              float32
	MaxEnergy              float32
	TotalParticlesInSource float32 //accumulated source weight, not necessarily integral
}

// RecordLength returns the record length implied by the header's mode.
func (H Header) RecordLength() int {
	return H.Mode.RecordLength()
}

// FileLength is the exact length in bytes a file with this header must have.
func (H Header) FileLength() int64 {
	return (int64(H.TotalParticles) + 1) * int64(H.RecordLength())
}

// RecordsLength is the length in bytes of the particle records region.
func (H Header) RecordsLength() int64 {
	return int64(H.TotalParticles) * int64(H.RecordLength())
}

func (H Header) String() string {
	return fmt.Sprintf("%s particles=%d photons=%d energy=[%g, %g] source=%g",
		H.Mode, H.TotalParticles, H.TotalPhotons, H.MinEnergy, H.MaxEnergy, H.TotalParticlesInSource)
}

// ParseHeader decodes the first HeaderSize bytes of b.
func ParseHeader(b []byte) (Header, error) {
	var H Header
	if len(b) < HeaderSize {
		return H, NewError(ErrBadLength, "", fmt.Sprintf("header needs %d bytes, got %d", HeaderSize, len(b)), nil, "ParseHeader")
	}
	m, err := ParseMode(b[hMode : hMode+5])
	if err != nil {
		return H, Decorate(err, "ParseHeader")
	}
	le := binary.LittleEndian
	H.Mode = m
	H.TotalParticles = int32(le.Uint32(b[hTotalParticles:]))
	H.TotalPhotons = int32(le.Uint32(b[hTotalPhotons:]))
	H.MaxEnergy = math.Float32frombits(le.Uint32(b[hMaxEnergy:]))
	H.MinEnergy = math.Float32frombits(le.Uint32(b[hMinEnergy:]))
	H.TotalParticlesInSource = math.Float32frombits(le.Uint32(b[hTotalInSource:]))
	return H, nil
}

// Validate checks the header against the length of the file it came from.
func (H Header) Validate(fileLength int64) error {
	if H.TotalParticles < 0 {
		return NewError(ErrBadLength, "", fmt.Sprintf("negative particle count %d", H.TotalParticles), nil, "Validate")
	}
	if want := H.FileLength(); fileLength != want {
		return NewError(ErrBadLength, "", fmt.Sprintf("%d particles of %d bytes need %d bytes, file has %d",
			H.TotalParticles, H.RecordLength(), want, fileLength), nil, "Validate")
	}
	return nil
}

// Bytes encodes the header as a full record slot: the header fields followed
// by zero padding up to the record length.
func (H Header) Bytes() []byte {
	b := make([]byte, H.RecordLength())
	H.Put(b)
	return b
}

// Put encodes the header fields into the first HeaderSize bytes of b, which
// must be at least that long. Bytes past HeaderSize are left alone.
func (H Header) Put(b []byte) {
	le := binary.LittleEndian
	copy(b[hMode:], H.Mode.String())
	le.PutUint32(b[hTotalParticles:], uint32(H.TotalParticles))
	le.PutUint32(b[hTotalPhotons:], uint32(H.TotalPhotons))
	le.PutUint32(b[hMaxEnergy:], math.Float32bits(H.MaxEnergy))
	le.PutUint32(b[hMinEnergy:], math.Float32bits(H.MinEnergy))
	le.PutUint32(b[hTotalInSource:], math.Float32bits(H.TotalParticlesInSource))
}

// ReadHeader reads and parses the header at the start of r, and validates it
// against size, the total length of the file.
func ReadHeader(r io.ReaderAt, size int64) (Header, error) {
	b := make([]byte, HeaderSize)
	if _, err := r.ReadAt(b, 0); err != nil {
		if err == io.EOF {
			return Header{}, NewError(ErrBadLength, "", fmt.Sprintf("file has %d bytes, header needs %d", size, HeaderSize), nil, "ReadHeader")
		}
		return Header{}, IOError("", "reading header", err, "ReadHeader")
	}
	H, err := ParseHeader(b)
	if err != nil {
		return H, Decorate(err, "ReadHeader")
	}
	if err := H.Validate(size); err != nil {
		return H, Decorate(err, "ReadHeader")
	}
	return H, nil
}

// FileHeader reads and validates the header of an open file.
func FileHeader(f *os.File) (Header, error) {
	info, err := f.Stat()
	if err != nil {
		return Header{}, IOError(f.Name(), "stat", err, "FileHeader")
	}
	H, err := ReadHeader(f, info.Size())
	if err != nil {
		setFileName(err, f.Name())
		return H, Decorate(err, "FileHeader")
	}
	return H, nil
}

// OpenHeader opens the named file just to read and validate its header.
func OpenHeader(name string) (Header, error) {
	f, err := os.Open(name)
	if err != nil {
		return Header{}, IOError(name, "open", err, "OpenHeader")
	}
	defer f.Close()
	H, err := FileHeader(f)
	return H, Decorate(err, "OpenHeader")
}

// setFileName fills in the file name of err if it is an *Error that lacks one.
func setFileName(err error, name string) {
	if E, ok := err.(*Error); ok && E.filename == "" {
		E.filename = name
	}
}
