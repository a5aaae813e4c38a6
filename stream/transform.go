/*
 * transform.go, part of egsphsp.
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
	"io/fs"
	"os"

	phsp "github.com/rmera/egsphsp"
	"github.com/rmera/egsphsp/affine"
)

// mapRecord returns a visitor that applies t to the position and direction of a
// record. All four inputs are read before anything is written.
func mapRecord(t affine.Mapper) func(phsp.Record) error {
	return func(R phsp.Record) error {
		x, y := float64(R.X()), float64(R.Y())
		u, v := float64(R.XCos()), float64(R.YCos())
		nx, ny := t.MapPoint(x, y)
		nu, nv := t.MapVector(u, v)
		R.SetPosition(float32(nx), float32(ny))
		R.SetDirection(float32(nu), float32(nv))
		return nil
	}
}

// Apply transforms the records of src. With inPlace, src itself is rewritten and
// dst is ignored; otherwise the result goes to dst.
func Apply(src, dst string, t affine.Mapper, inPlace bool, opts ...Option) error {
	if inPlace {
		return phsp.Decorate(TransformInPlace(src, t, opts...), "Apply")
	}
	return phsp.Decorate(Transform(src, dst, t, opts...), "Apply")
}

// Transform writes to dst a copy of src with t applied to every record. The header
// is copied verbatim. dst is created or truncated, and can not be src.
func Transform(src, dst string, t affine.Mapper, opts ...Option) error {
	o := newOptions(opts)
	in, err := os.Open(src)
	if err != nil {
		return phsp.IOError(src, "open", err, "Transform")
	}
	defer in.Close()
	H, err := phsp.FileHeader(in)
	if err != nil {
		return phsp.Decorate(err, "Transform")
	}
	if err := refuseSame(in, dst); err != nil {
		return phsp.Decorate(err, "Transform")
	}
	hdr := make([]byte, H.RecordLength())
	if _, err := io.ReadFull(in, hdr); err != nil {
		return phsp.IOError(src, "reading header", err, "Transform")
	}
	out, err := os.Create(dst)
	if err != nil {
		return phsp.IOError(dst, "create", err, "Transform")
	}
	if _, err := out.Write(hdr); err != nil {
		out.Close()
		return phsp.IOError(dst, "writing header", err, "Transform")
	}
	P := newPump(src, H, o)
	P.visit = mapRecord(t)
	P.flush = func(span []byte, _ int64) error {
		if _, err := out.Write(span); err != nil {
			return phsp.IOError(dst, "writing records", err, "Transform")
		}
		return nil
	}
	if err := P.run(in); err != nil {
		out.Close()
		o.logger.Error("transform failed", "src", src, "dst", dst, "state", P.state, "records", P.records, "error", err)
		return phsp.Decorate(err, "Transform")
	}
	if err := out.Close(); err != nil {
		return phsp.IOError(dst, "close", err, "Transform")
	}
	o.logger.Info("transform complete", "src", src, "dst", dst, "mode", H.Mode, "records", P.records, "chunks", P.chunks)
	return nil
}

// TransformInPlace applies t to every record of the named file, overwriting it.
// The header is not touched.
func TransformInPlace(name string, t affine.Mapper, opts ...Option) error {
	o := newOptions(opts)
	f, err := os.OpenFile(name, os.O_RDWR, 0)
	if err != nil {
		return phsp.IOError(name, "open", err, "TransformInPlace")
	}
	defer f.Close()
	H, err := phsp.FileHeader(f)
	if err != nil {
		return phsp.Decorate(err, "TransformInPlace")
	}
	start := int64(H.RecordLength())
	if _, err := f.Seek(start, io.SeekStart); err != nil {
		return phsp.IOError(name, "seek", err, "TransformInPlace")
	}
	P := newPump(name, H, o)
	P.visit = mapRecord(t)
	//WriteAt does not move the offset Read uses.
	P.flush = func(span []byte, off int64) error {
		if _, err := f.WriteAt(span, start+off); err != nil {
			return phsp.IOError(name, fmt.Sprintf("writing %d bytes at %d", len(span), start+off), err, "TransformInPlace")
		}
		return nil
	}
	if err := P.run(f); err != nil {
		o.logger.Error("in-place transform failed, file may be partially rewritten", "file", name, "state", P.state, "records", P.records, "error", err)
		return phsp.Decorate(err, "TransformInPlace")
	}
	if err := f.Close(); err != nil {
		return phsp.IOError(name, "close", err, "TransformInPlace")
	}
	o.logger.Info("in-place transform complete", "file", name, "mode", H.Mode, "records", P.records, "chunks", P.chunks)
	return nil
}

// Scan calls fn on every record of the named file, in order, and returns the
// file's header. The records passed to fn are only valid during the call.
// Scan stops at the first error fn returns.
func Scan(name string, fn func(rec phsp.Record) error, opts ...Option) (phsp.Header, error) {
	o := newOptions(opts)
	f, err := os.Open(name)
	if err != nil {
		return phsp.Header{}, phsp.IOError(name, "open", err, "Scan")
	}
	defer f.Close()
	H, err := phsp.FileHeader(f)
	if err != nil {
		return H, phsp.Decorate(err, "Scan")
	}
	if _, err := f.Seek(int64(H.RecordLength()), io.SeekStart); err != nil {
		return H, phsp.IOError(name, "seek", err, "Scan")
	}
	P := newPump(name, H, o)
	P.visit = fn
	if err := P.run(f); err != nil {
		return H, err
	}
	o.logger.Debug("scan complete", "file", name, "records", P.records, "chunks", P.chunks)
	return H, nil
}

// refuseSame fails if dst names the same file as the open file in.
func refuseSame(in *os.File, dst string) error {
	dinfo, err := os.Stat(dst)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return phsp.IOError(dst, "stat", err, "refuseSame")
	}
	sinfo, err := in.Stat()
	if err != nil {
		return phsp.IOError(in.Name(), "stat", err, "refuseSame")
	}
	if os.SameFile(sinfo, dinfo) {
		return phsp.NewError(phsp.ErrOutputIsInput, dst, "use the in-place transform to rewrite a file", nil, "refuseSame")
	}
	return nil
}
