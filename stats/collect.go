/*
 * collect.go, part of egsphsp.
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

//Package stats goes through the records of phase-space files to describe them: how
//many particles of each kind there are, their energy spectra, the weighted moments of
//their positions and directions, and how two files differ.
package stats

import (
	"fmt"
	"math"

	phsp "github.com/rmera/egsphsp"
	"github.com/rmera/egsphsp/histo"
	"github.com/rmera/egsphsp/stream"
)

// ElectronMass is the electron rest energy in MeV. Charged particles are stored
// with their total energy, so it is subtracted to get the kinetic energy.
const ElectronMass = 0.51099895

// Species indexes the per-particle-kind fields of a Summary.
type Species int

const (
	Electron Species = iota
	Photon
	Positron
)

var speciesNames = [...]string{"electron", "photon", "positron"}

func (S Species) String() string {
	if S < 0 || int(S) >= len(speciesNames) {
		return fmt.Sprintf("Species(%d)", int(S))
	}
	return speciesNames[S]
}

// SpeciesOf returns the kind of particle a latch describes.
func SpeciesOf(L phsp.Latch) Species {
	return Species(L.Charge() + 1)
}

// Kinetic returns the kinetic energy of the particle in a record.
func Kinetic(R phsp.Record) float64 {
	E := math.Abs(float64(R.TotalEnergy()))
	if R.Latch().Charge() != 0 {
		E -= ElectronMass
	}
	return E
}

// Summary describes the records of one file.
type Summary struct {
	Header  phsp.Header
	Records int64
	Count   [3]int64 //by Species

	NewHistories int64 //records with a negative energy
	MultiPass    int64
	Brem         int64
	Backward     int64 //moving towards negative z
	WeightSum    float64

	MinKinetic, MaxKinetic float64
	MinChargedKinetic      float64 //NaN if there are no charged particles

	X, Y, XCos, YCos, Kinetic Moments //weighted by |weight|

	Spectrum [3]*histo.Data //kinetic energy, by Species
	Sample   []phsp.Particle
}

// Checks returns a message for every way in which the records disagree with the header.
func (S *Summary) Checks() []string {
	var ret []string
	H := S.Header
	if S.Records != int64(H.TotalParticles) {
		ret = append(ret, fmt.Sprintf("header says %d particles, found %d", H.TotalParticles, S.Records))
	}
	if S.Count[Photon] != int64(H.TotalPhotons) {
		ret = append(ret, fmt.Sprintf("header says %d photons, found %d", H.TotalPhotons, S.Count[Photon]))
	}
	if S.Records == 0 {
		return ret
	}
	if !close32(S.MaxKinetic, H.MaxEnergy) {
		ret = append(ret, fmt.Sprintf("header max energy is %g MeV, largest kinetic energy found is %g MeV", H.MaxEnergy, S.MaxKinetic))
	}
	if !math.IsNaN(S.MinChargedKinetic) && !close32(S.MinChargedKinetic, H.MinEnergy) {
		ret = append(ret, fmt.Sprintf("header min energy is %g MeV, smallest electron kinetic energy found is %g MeV", H.MinEnergy, S.MinChargedKinetic))
	}
	return ret
}

// close32 compares a computed energy with one stored as float32 in a header.
func close32(x float64, h float32) bool {
	return math.Abs(x-float64(h)) <= 1e-5*math.Max(1, math.Abs(float64(h)))
}

// collector is the per-record state of Collect.
type collector struct {
	S      *Summary
	acc    [5]accumulator //x, y, xcos, ycos, kinetic
	energy [3][]float64   //spectrum batches, by Species
	stride int64
	max    int
}

func (C *collector) visit(R phsp.Record) error {
	S := C.S
	L := R.Latch()
	sp := SpeciesOf(L)
	S.Count[sp]++
	if R.NewHistory() {
		S.NewHistories++
	}
	if L.MultiPass() {
		S.MultiPass++
	}
	if L.Brem() {
		S.Brem++
	}
	if R.ZSign() < 0 {
		S.Backward++
	}
	w := float64(R.Weight())
	S.WeightSum += w
	w = math.Abs(w)
	ke := Kinetic(R)
	S.MinKinetic = math.Min(S.MinKinetic, ke)
	S.MaxKinetic = math.Max(S.MaxKinetic, ke)
	if sp != Photon {
		S.MinChargedKinetic = math.Min(S.MinChargedKinetic, ke)
	}
	C.acc[0].add(float64(R.X()), w)
	C.acc[1].add(float64(R.Y()), w)
	C.acc[2].add(float64(R.XCos()), w)
	C.acc[3].add(float64(R.YCos()), w)
	C.acc[4].add(ke, w)
	C.energy[sp] = append(C.energy[sp], ke)
	if len(C.energy[sp]) >= batchSize {
		C.flushSpectrum(sp)
	}
	if C.max > 0 && S.Records%C.stride == 0 && len(S.Sample) < C.max {
		S.Sample = append(S.Sample, R.Particle())
	}
	S.Records++
	return nil
}

func (C *collector) flushSpectrum(sp Species) {
	C.S.Spectrum[sp].AddData(C.energy[sp]...)
	C.energy[sp] = C.energy[sp][:0]
}

// Collect goes once through the records of the named file and summarizes them.
// Unless WithEnergyRange is given, the spectra span from 0 to the maximum energy
// in the header, or to the largest energy in the file if the header has no
// usable maximum (which costs a second pass).
func Collect(name string, opts ...Option) (*Summary, error) {
	o := newOptions(opts)
	H, err := phsp.OpenHeader(name)
	if err != nil {
		return nil, phsp.Decorate(err, "Collect")
	}
	lo, hi := o.lo, o.hi
	if !o.rangeSet {
		lo, hi = 0, float64(H.MaxEnergy)
		if !(hi > 0) || math.IsInf(hi, 0) {
			hi, err = maxKinetic(name, o)
			if err != nil {
				return nil, phsp.Decorate(err, "Collect")
			}
			o.logger.Warn("header has no usable max energy, took it from the records", "file", name, "header_max", H.MaxEnergy, "max", hi)
		}
		//the last divider is exclusive
		hi = math.Max(hi*(1+1e-6), math.SmallestNonzeroFloat32)
	}
	S := &Summary{
		Header:            H,
		MinKinetic:        math.Inf(1),
		MaxKinetic:        math.Inf(-1),
		MinChargedKinetic: math.Inf(1),
	}
	div := histo.Uniform(o.bins, lo, hi)
	for i := range S.Spectrum {
		S.Spectrum[i] = histo.NewData(div, nil, i)
	}
	C := &collector{S: S, max: o.sample, stride: 1}
	if o.sample > 0 && int64(H.TotalParticles) > int64(o.sample) {
		C.stride = int64(H.TotalParticles) / int64(o.sample)
	}
	if _, err := stream.Scan(name, C.visit, o.streamOpts()...); err != nil {
		return nil, phsp.Decorate(err, "Collect")
	}
	for sp := range C.energy {
		C.flushSpectrum(Species(sp))
	}
	S.X, S.Y = C.acc[0].moments(), C.acc[1].moments()
	S.XCos, S.YCos = C.acc[2].moments(), C.acc[3].moments()
	S.Kinetic = C.acc[4].moments()
	if math.IsInf(S.MinChargedKinetic, 1) {
		S.MinChargedKinetic = math.NaN()
	}
	if S.Records == 0 {
		S.MinKinetic, S.MaxKinetic = math.NaN(), math.NaN()
	}
	for _, msg := range S.Checks() {
		o.logger.Warn("header and records disagree", "file", name, "detail", msg)
	}
	o.logger.Info("statistics collected", "file", name, "records", S.Records, "photons", S.Count[Photon],
		"electrons", S.Count[Electron], "positrons", S.Count[Positron])
	return S, nil
}

func maxKinetic(name string, o options) (float64, error) {
	top := 0.0
	_, err := stream.Scan(name, func(R phsp.Record) error {
		if ke := Kinetic(R); ke > top {
			top = ke
		}
		return nil
	}, o.streamOpts()...)
	return top, err
}
