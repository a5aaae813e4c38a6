/*
 * combine.go, part of egsphsp.
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

//Package combine concatenates the particle records of several phase-space files of the
//same mode under one merged header.
package combine

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	phsp "github.com/rmera/egsphsp"
)

type options struct {
	logger *slog.Logger
}

// Option configures Combine.
type Option func(*options)

// WithLogger sets the logger for progress messages. By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

// input is a validated input file.
type input struct {
	name   string
	header phsp.Header
	info   fs.FileInfo
}

// MergedHeader validates the header of every input and folds them, in order,
// into the header of their concatenation. It fails on the first input whose
// mode differs from the ones before it.
func MergedHeader(inputs []string) (phsp.Header, error) {
	H, _, err := scanInputs(inputs)
	return H, phsp.Decorate(err, "MergedHeader")
}

func scanInputs(names []string) (phsp.Header, []input, error) {
	if len(names) == 0 {
		return phsp.Header{}, nil, phsp.NewError(phsp.ErrEmptyInputSet, "", "", nil, "scanInputs")
	}
	ins := make([]input, 0, len(names))
	var merged phsp.Header
	for i, name := range names {
		H, err := phsp.OpenHeader(name)
		if err != nil {
			return merged, nil, phsp.Decorate(err, "scanInputs")
		}
		info, err := os.Stat(name)
		if err != nil {
			return merged, nil, phsp.IOError(name, "stat", err, "scanInputs")
		}
		ins = append(ins, input{name: name, header: H, info: info})
		if i == 0 {
			merged = H
			continue
		}
		merged, err = phsp.Merge(merged, H)
		if err != nil {
			var E *phsp.Error
			if errors.As(err, &E) {
				return merged, nil, phsp.NewError(E.Kind(), name, fmt.Sprintf("input %d can not be merged with the ones before it", i+1), err, "scanInputs")
			}
			return merged, nil, phsp.Decorate(err, "scanInputs")
		}
	}
	return merged, ins, nil
}

// Combine writes to output the merged header of inputs followed by the record
// regions of every input, byte for byte, in the order given. With
// deleteInputsAfter, each input is removed once its records are on disk.
//
// Nothing is created unless every input header is valid and all modes agree.
// A failure after that leaves output with the full merged header but only the
// records copied so far.
func Combine(inputs []string, output string, deleteInputsAfter bool, opts ...Option) error {
	o := newOptions(opts)
	merged, ins, err := scanInputs(inputs)
	if err != nil {
		return phsp.Decorate(err, "Combine")
	}
	if err := refuseInput(ins, output); err != nil {
		return phsp.Decorate(err, "Combine")
	}
	out, err := os.Create(output)
	if err != nil {
		return phsp.IOError(output, "create", err, "Combine")
	}
	defer out.Close()
	if _, err := out.Write(merged.Bytes()); err != nil {
		return phsp.IOError(output, "writing header", err, "Combine")
	}
	o.logger.Debug("merged header written", "file", output, "header", merged.String())
	for i, in := range ins {
		n, err := appendRecords(out, in)
		if err != nil {
			o.logger.Error("combine failed, output holds a partial record region", "file", output, "input", in.name, "inputs_done", i, "error", err)
			return phsp.Decorate(err, "Combine")
		}
		o.logger.Info("input appended", "input", in.name, "bytes", n, "records", in.header.TotalParticles)
		if !deleteInputsAfter || listedLater(ins, i) {
			continue
		}
		if err := out.Sync(); err != nil {
			return phsp.IOError(output, "sync", err, "Combine")
		}
		if err := os.Remove(in.name); err != nil {
			return phsp.IOError(in.name, "remove", err, "Combine")
		}
		o.logger.Debug("input removed", "input", in.name)
	}
	if err := out.Close(); err != nil {
		return phsp.IOError(output, "close", err, "Combine")
	}
	o.logger.Info("combine complete", "file", output, "inputs", len(ins), "records", merged.TotalParticles, "mode", merged.Mode)
	return nil
}

// appendRecords copies the record region of in to the end of out.
func appendRecords(out io.Writer, in input) (int64, error) {
	f, err := os.Open(in.name)
	if err != nil {
		return 0, phsp.IOError(in.name, "open", err, "appendRecords")
	}
	defer f.Close()
	if _, err := f.Seek(int64(in.header.RecordLength()), io.SeekStart); err != nil {
		return 0, phsp.IOError(in.name, "seek", err, "appendRecords")
	}
	want := in.header.RecordsLength()
	n, err := io.Copy(out, io.LimitReader(f, want))
	if err != nil {
		return n, phsp.IOError(in.name, "copying records", err, "appendRecords")
	}
	if n != want {
		return n, phsp.NewError(phsp.ErrTruncatedFile, in.name, fmt.Sprintf("copied %d of %d record bytes", n, want), nil, "appendRecords")
	}
	return n, nil
}

// listedLater reports whether the input at i appears again later in ins, in
// which case it must survive until that copy is done.
func listedLater(ins []input, i int) bool {
	for _, other := range ins[i+1:] {
		if os.SameFile(ins[i].info, other.info) {
			return true
		}
	}
	return false
}

func refuseInput(ins []input, output string) error {
	info, err := os.Stat(output)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return phsp.IOError(output, "stat", err, "refuseInput")
	}
	for _, in := range ins {
		if os.SameFile(in.info, info) {
			return phsp.NewError(phsp.ErrOutputIsInput, output, "", nil, "refuseInput")
		}
	}
	return nil
}
