/*
 * pump.go, part of egsphsp.
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

package stream

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	phsp "github.com/rmera/egsphsp"
)

// State is the stage a pump is in.
type State int

const (
	Idle State = iota
	HeaderValidated
	Streaming
	Done
	Failed
)

var stateNames = [...]string{"idle", "header-validated", "streaming", "done", "failed"}

func (S State) String() string {
	if S < 0 || int(S) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(S))
	}
	return stateNames[S]
}

// pump reads the records region of a file in chunks, hands every whole record to
// visit and then, if flush is not nil, hands over the processed span together with
// its offset from the start of the records region.
type pump struct {
	name  string //for error messages only
	L     int    //record length
	chunk int
	want  int64 //records the header promises

	visit func(rec phsp.Record) error
	flush func(span []byte, off int64) error

	buf     []byte
	pending int //bytes of an incomplete record at the front of buf
	read    int64
	records int64
	chunks  int
	state   State
	log     *slog.Logger
}

func newPump(name string, H phsp.Header, o options) *pump {
	L := H.RecordLength()
	return &pump{
		name:  name,
		L:     L,
		chunk: o.chunkSize,
		want:  int64(H.TotalParticles),
		buf:   make([]byte, o.chunkSize+L),
		state: HeaderValidated,
		log:   o.logger,
	}
}

func (P *pump) fail(err error) error {
	P.state = Failed
	return err
}

// run pumps r until it is exhausted. A read of zero bytes is taken as the end of
// the stream, as is io.EOF.
func (P *pump) run(r io.Reader) error {
	P.state = Streaming
	var base int64 //offset of buf[0] in the records region
	for {
		n, rerr := r.Read(P.buf[P.pending : P.pending+P.chunk])
		if n > 0 {
			P.read += int64(n)
			P.chunks++
			total := P.pending + n
			whole := total - total%P.L
			if err := P.process(P.buf[:whole], base); err != nil {
				return P.fail(err)
			}
			P.pending = copy(P.buf, P.buf[whole:total])
			base += int64(whole)
			P.log.Debug("chunk processed", "file", P.name, "chunk", P.chunks, "bytes", n, "records", P.records, "pending", P.pending)
		}
		if rerr != nil && !errors.Is(rerr, io.EOF) {
			return P.fail(phsp.IOError(P.name, fmt.Sprintf("reading chunk %d", P.chunks+1), rerr, "pump"))
		}
		if rerr != nil || n == 0 {
			break
		}
	}
	if P.pending != 0 {
		return P.fail(phsp.NewError(phsp.ErrTruncatedFile, P.name,
			fmt.Sprintf("%d bytes left after %d whole records of %d bytes", P.pending, P.records, P.L), nil, "pump"))
	}
	if P.records != P.want {
		return P.fail(phsp.NewError(phsp.ErrRecordCountMismatch, P.name,
			fmt.Sprintf("header says %d records, read %d", P.want, P.records), nil, "pump"))
	}
	P.state = Done
	return nil
}

// process visits every record of span, which holds only whole records, and then flushes it.
func (P *pump) process(span []byte, off int64) error {
	if len(span) == 0 {
		return nil
	}
	for i := 0; i < len(span); i += P.L {
		if err := P.visit(phsp.Record(span[i : i+P.L])); err != nil {
			var E *phsp.Error
			if errors.As(err, &E) {
				E.Decorate("pump")
				return err
			}
			return fmt.Errorf("%s: record %d: %w", P.name, P.records, err)
		}
		P.records++
	}
	if P.flush == nil {
		return nil
	}
	return P.flush(span, off)
}
