/*
 * errors.go, part of egsphsp.
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
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every error returned by this module wraps exactly one of these,
// so callers can tell them apart with errors.Is.
var (
	ErrIO                  = errors.New("i/o failure")
	ErrBadMode             = errors.New("unrecognized mode tag")
	ErrBadLength           = errors.New("file length does not match header")
	ErrModeMismatch        = errors.New("incompatible modes")
	ErrDegenerateVector    = errors.New("zero-length direction vector")
	ErrTruncatedFile       = errors.New("partial record at end of file")
	ErrRecordCountMismatch = errors.New("record count does not match header")
	ErrEmptyInputSet       = errors.New("no input files")
	ErrOutputIsInput       = errors.New("output file is also an input")
)

// Error is the error type for all the packages in this module. It carries the
// kind of failure, the file involved (if any), the underlying cause (if any)
// and a trail of the functions it went through on its way up.
type Error struct {
	message  string
	filename string //the file that has problems, or empty string if none.
	deco     []string
	critical bool
	kind     error
	cause    error
}

// NewError returns an error of the given kind. cause can be nil.
func NewError(kind error, filename, message string, cause error, caller string) *Error {
	E := &Error{message: message, filename: filename, critical: true, kind: kind, cause: cause}
	if caller != "" {
		E.deco = []string{caller}
	}
	return E
}

// IOError wraps a failed read, write, seek, open or remove.
func IOError(filename, op string, cause error, caller string) *Error {
	return NewError(ErrIO, filename, op, cause, caller)
}

func (E *Error) Error() string {
	var b strings.Builder
	if E.filename != "" {
		fmt.Fprintf(&b, "phsp file %s error: ", E.filename)
	} else {
		b.WriteString("phsp error: ")
	}
	b.WriteString(E.kind.Error())
	if E.message != "" {
		b.WriteString(": " + E.message)
	}
	if E.cause != nil {
		b.WriteString(": " + E.cause.Error())
	}
	return b.String()
}

// Decorate adds the name of a caller to the error trail and returns the trail.
// An empty string just returns the current trail.
func (E *Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (E *Error) Unwrap() []error {
	if E.cause == nil {
		return []error{E.kind}
	}
	return []error{E.kind, E.cause}
}

// Kind returns the sentinel error for this failure.
func (E *Error) Kind() error { return E.kind }

// FileName returns the file the failure is associated with.
func (E *Error) FileName() string { return E.filename }

// Critical is always true: no failure in this module is recoverable within an operation.
func (E *Error) Critical() bool { return E.critical }

// Decorate adds caller to the trail of err if it is an *Error. Any other
// non-nil error is wrapped as an ErrIO failure.
func Decorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	var E *Error
	if errors.As(err, &E) {
		E.Decorate(caller)
		return err
	}
	return IOError("", "", err, caller)
}
