/*
 * options.go, part of egsphsp.
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
	"io"
	"log/slog"

	"github.com/rmera/egsphsp/stream"
)

// DefaultBins is the number of bins of the energy spectra.
const DefaultBins = 100

type options struct {
	bins     int
	lo, hi   float64
	rangeSet bool
	sample   int
	chunk    int
	logger   *slog.Logger
}

// Option configures Collect and Compare.
type Option func(*options)

// WithBins sets the number of bins of the energy spectra. Values below 1 are ignored.
func WithBins(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.bins = n
		}
	}
}

// WithEnergyRange sets the kinetic energy range, in MeV, of the spectra. By default
// it goes from 0 to the maximum energy in the header.
func WithEnergyRange(lo, hi float64) Option {
	return func(o *options) {
		if hi > lo {
			o.lo, o.hi, o.rangeSet = lo, hi, true
		}
	}
}

// WithSample makes Collect keep about n particles, evenly spread over the file.
func WithSample(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.sample = n
		}
	}
}

// WithChunkSize sets the read size used to go through the files.
func WithChunkSize(n int) Option {
	return func(o *options) {
		o.chunk = n
	}
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) options {
	o := options{bins: DefaultBins, chunk: stream.DefaultChunkSize}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

func (o options) streamOpts() []stream.Option {
	return []stream.Option{stream.WithChunkSize(o.chunk), stream.WithLogger(o.logger)}
}
