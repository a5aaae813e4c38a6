/*
 * histo.go, part of egsphsp.
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

//Package histo implements fixed-bin histograms that can be filled incrementally,
//one batch of data at a time.
package histo

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//Data is a histogram. Bin i counts the values v with dividers[i] <= v < dividers[i+1].
//Values outside the dividers are not binned, but they are counted as under or overflow.
type Data struct {
	id         int
	normalized bool
	total      int //every value ever added, binned or not
	under      int
	over       int
	dividers   []float64
	histo      []float64
}

type jsonData struct {
	ID         int       `json:"id"`
	Normalized bool      `json:"normalized"`
	Total      int       `json:"total"`
	Underflow  int       `json:"underflow"`
	Overflow   int       `json:"overflow"`
	Dividers   []float64 `json:"dividers"`
	Histo      []float64 `json:"histo"`
}

func (D *Data) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonData{
		ID:         D.id,
		Normalized: D.normalized,
		Total:      D.total,
		Underflow:  D.under,
		Overflow:   D.over,
		Dividers:   D.dividers,
		Histo:      D.histo,
	})
}

func (D *Data) UnmarshalJSON(b []byte) error {
	var a jsonData
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if len(a.Dividers) < 2 || len(a.Histo) != len(a.Dividers)-1 {
		return fmt.Errorf("histo: %d dividers can not delimit %d bins", len(a.Dividers), len(a.Histo))
	}
	D.id = a.ID
	D.normalized = a.Normalized
	D.total = a.Total
	D.under = a.Underflow
	D.over = a.Overflow
	D.dividers = a.Dividers
	D.histo = a.Histo
	return nil
}

//NewData returns a new histogram with the given dividers, which must be sorted and
//at least 2. rawdata can be nil, in which case the histogram starts empty. rawdata is
//not modified. If an ID is given, it will be set, otherwise the ID is -1.
func NewData(dividers []float64, rawdata []float64, ID ...int) *Data {
	if len(dividers) < 2 || !sort.Float64sAreSorted(dividers) {
		panic("histo.NewData: need at least 2 sorted dividers")
	}
	d := &Data{id: -1}
	//copy, so nobody can change it from outside
	d.dividers = append([]float64(nil), dividers...)
	d.histo = make([]float64, len(dividers)-1)
	if len(ID) > 0 {
		d.id = ID[0]
	}
	if rawdata != nil {
		//AddData sorts its argument
		d.AddData(append([]float64(nil), rawdata...)...)
	}
	return d
}

//Uniform returns dividers for n bins of equal width between lo and hi.
func Uniform(n int, lo, hi float64) []float64 {
	return floats.Span(make([]float64, n+1), lo, hi)
}

//ID returns the ID of the histogram
func (D *Data) ID() int {
	return D.id
}

//Total returns the number of values added, including those that fell outside the dividers.
func (D *Data) Total() int {
	return D.total
}

//Outside returns the number of values that were below the first divider and
//at or above the last one.
func (D *Data) Outside() (under, over int) {
	return D.under, D.over
}

//AddData adds the given values to the histogram. point is sorted in place.
func (D *Data) AddData(point ...float64) {
	if len(point) == 0 {
		return
	}
	var norma bool
	if D.normalized {
		norma = true
		D.UnNormalize()
	}
	sort.Float64s(point)
	//stat.Histogram panics on values out of the dividers' range,
	//so those are cut off here.
	last := D.dividers[len(D.dividers)-1]
	lo := sort.SearchFloat64s(point, D.dividers[0])
	hi := sort.SearchFloat64s(point, last)
	//NaNs sort first, and are neither under nor over.
	nans := sort.Search(len(point), func(i int) bool { return !math.IsNaN(point[i]) })
	D.under += lo - nans
	D.over += len(point) - hi
	D.total += len(point)
	if lo < hi {
		floats.Add(D.histo, stat.Histogram(nil, D.dividers, point[lo:hi], nil))
	}
	if nans > 0 {
		log.Printf("histo.AddData: %d NaN values ignored", nans)
	}
	//if it was normalized, we should return it to that state
	if norma {
		D.Normalize()
	}
}

//Normalized Returns true if the histogram is normalized
func (D *Data) Normalized() bool {
	return D.normalized
}

//Normalize scales the histogram so the bins add up to the fraction of
//values that fell inside the dividers.
func (D *Data) Normalize() {
	D.normaunnorma(true)
}

//UnNormalize turns the bins back into counts.
func (D *Data) UnNormalize() {
	D.normaunnorma(false)
}

func (D *Data) normaunnorma(normalize bool) {
	if D.total <= 0 || D.normalized == normalize {
		return
	}
	n := float64(D.total)
	D.normalized = false
	if normalize {
		n = 1 / float64(D.total)
		D.normalized = true
	}
	floats.Scale(n, D.histo)
}

//CopyDividers copies the dividers of the histogram into dest, if given
//and large enough, or into a new slice.
func (D *Data) CopyDividers(dest ...[]float64) []float64 {
	d := getCopySlice(len(D.dividers), dest...)
	copy(d, D.dividers)
	return d
}

//Copy copies the bins of the histogram
func (D *Data) Copy(dest ...[]float64) []float64 {
	d := getCopySlice(len(D.histo), dest...)
	copy(d, D.histo)
	return d
}

//View returns the bins themselves, not a copy.
func (D *Data) View() []float64 {
	return D.histo
}

//Add adds the bins of b to the receiver. Both must have the same dividers and
//neither can be normalized.
func (D *Data) Add(b *Data) error {
	if !floats.Equal(D.dividers, b.dividers) {
		return fmt.Errorf("histo.Data.Add: dividers must match in added histograms")
	}
	if D.normalized || b.normalized {
		return fmt.Errorf("histo.Data.Add: can't add normalized histograms")
	}
	floats.Add(D.histo, b.histo)
	D.total += b.total
	D.under += b.under
	D.over += b.over
	return nil
}

//Sum returns the sum of all bins
func (D *Data) Sum() float64 {
	return floats.Sum(D.histo)
}

//String prints a -hopefully- pretty string representation of
//the histogram. The representation uses 3 lines of text.
func (D *Data) String() string {
	ret := fmt.Sprintf("ID: %d, Normalized: %v, TotalData: %d (under: %d, over: %d)\n", D.id, D.normalized, D.total, D.under, D.over)
	d := make([]string, 0, len(D.histo))
	h := make([]string, 0, len(D.histo))
	for i, v := range D.histo {
		d = append(d, fmt.Sprintf("%4.2f-%4.2f", D.dividers[i], D.dividers[i+1]))
		h = append(h, fmt.Sprintf("%9.3f", v))
	}
	return ret + fmt.Sprintf("%s\n%s", strings.Join(d, " "), strings.Join(h, " "))
}

func getCopySlice(N int, dest ...[]float64) []float64 {
	if len(dest) > 0 && len(dest[0]) >= N {
		return dest[0][:N]
	}
	return make([]float64, N)
}
