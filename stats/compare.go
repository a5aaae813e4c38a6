/*
 * compare.go, part of egsphsp.
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
	"bufio"
	"fmt"
	"io"
	"math"
	"os"

	phsp "github.com/rmera/egsphsp"
	"github.com/rmera/egsphsp/stream"
	"gonum.org/v1/gonum/floats/scalar"
)

// Field names the float fields of a record, in record order.
type Field int

const (
	TotalEnergy Field = iota
	X
	Y
	XCos
	YCos
	Weight
	ZLast
	NumFields
)

var fieldNames = [...]string{"total_energy", "x_cm", "y_cm", "x_cos", "y_cos", "weight", "zlast"}

func (F Field) String() string {
	if F < 0 || F >= NumFields {
		return fmt.Sprintf("Field(%d)", int(F))
	}
	return fieldNames[F]
}

func fields(p phsp.Particle) [NumFields]float32 {
	return [NumFields]float32{p.TotalEnergy, p.X, p.Y, p.XCos, p.YCos, p.Weight, p.ZLast}
}

// Diff is the result of comparing two files record by record.
type Diff struct {
	A, B       phsp.Header
	Tolerance  float64
	Records    int64
	Differing  int64 //records with a latch change or a field off by more than the tolerance
	First      int64 //index of the first differing record, -1 if none
	LatchDiffs int64
	MaxDev     [NumFields]float64
}

// Equal is true if the headers are identical and no record differs.
func (D *Diff) Equal() bool {
	return D.A == D.B && D.Differing == 0
}

// deviation is |a-b|, 0 for bit-identical values (NaNs included) and +Inf
// when only one of them is a NaN.
func deviation(a, b float32) float64 {
	if math.Float32bits(a) == math.Float32bits(b) {
		return 0
	}
	d := math.Abs(float64(a) - float64(b))
	if math.IsNaN(d) {
		return math.Inf(1)
	}
	return d
}

// Compare reads the files a and b side by side and reports how their records
// differ. Fields within tol of each other count as equal, latches must match
// exactly. The files must have the same mode and particle count.
func Compare(a, b string, tol float64, opts ...Option) (*Diff, error) {
	o := newOptions(opts)
	fb, err := os.Open(b)
	if err != nil {
		return nil, phsp.IOError(b, "open", err, "Compare")
	}
	defer fb.Close()
	Hb, err := phsp.FileHeader(fb)
	if err != nil {
		return nil, phsp.Decorate(err, "Compare")
	}
	Ha, err := phsp.OpenHeader(a)
	if err != nil {
		return nil, phsp.Decorate(err, "Compare")
	}
	if Ha.Mode != Hb.Mode {
		return nil, phsp.NewError(phsp.ErrModeMismatch, b, fmt.Sprintf("%s has %s records, %s has %s", a, Ha.Mode, b, Hb.Mode), nil, "Compare")
	}
	if Ha.TotalParticles != Hb.TotalParticles {
		return nil, phsp.NewError(phsp.ErrRecordCountMismatch, b, fmt.Sprintf("%d particles vs %d", Ha.TotalParticles, Hb.TotalParticles), nil, "Compare")
	}
	L := Hb.RecordLength()
	rb := bufio.NewReaderSize(io.NewSectionReader(fb, int64(L), Hb.RecordsLength()), max(o.chunk, L))
	recB := make(phsp.Record, L)
	D := &Diff{A: Ha, B: Hb, Tolerance: tol, First: -1}
	visit := func(R phsp.Record) error {
		if _, err := io.ReadFull(rb, recB); err != nil {
			return phsp.IOError(b, fmt.Sprintf("reading record %d", D.Records), err, "Compare")
		}
		pa, pb := R.Particle(), recB.Particle()
		differs := false
		if pa.Latch != pb.Latch {
			D.LatchDiffs++
			differs = true
		}
		va, vb := fields(pa), fields(pb)
		for i := range va {
			d := deviation(va[i], vb[i])
			D.MaxDev[i] = math.Max(D.MaxDev[i], d)
			if d != 0 && !scalar.EqualWithinAbs(float64(va[i]), float64(vb[i]), tol) {
				differs = true
			}
		}
		if differs {
			if D.First < 0 {
				D.First = D.Records
			}
			D.Differing++
		}
		D.Records++
		return nil
	}
	if _, err := stream.Scan(a, visit, o.streamOpts()...); err != nil {
		return nil, phsp.Decorate(err, "Compare")
	}
	o.logger.Info("files compared", "a", a, "b", b, "records", D.Records, "differing", D.Differing)
	return D, nil
}
