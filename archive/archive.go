/*
 * archive.go, part of egsphsp.
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

//Package archive compresses and decompresses whole phase-space files. The codec is
//chosen from the name of the compressed file.
package archive

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"compress/lzw"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	phsp "github.com/rmera/egsphsp"
)

// Codec is a compression format.
type Codec int

const (
	Zstd Codec = iota
	Gzip
	Flate
	LZW
)

const lzwLitwidth = 8

var codecNames = [...]string{"zstd", "gzip", "flate", "lzw"}

func (C Codec) String() string {
	if C < 0 || int(C) >= len(codecNames) {
		return fmt.Sprintf("Codec(%d)", int(C))
	}
	return codecNames[C]
}

var suffixes = map[string]Codec{
	".zst":   Zstd,
	".zstd":  Zstd,
	".gz":    Gzip,
	".flate": Flate,
	".lzw":   LZW,
}

// CodecFor returns the codec for a file name, and false if the extension is not a known one.
func CodecFor(name string) (Codec, bool) {
	c, ok := suffixes[strings.ToLower(filepath.Ext(name))]
	return c, ok
}

// Suffix returns the usual extension for files compressed with C.
func (C Codec) Suffix() string {
	switch C {
	case Gzip:
		return ".gz"
	case Flate:
		return ".flate"
	case LZW:
		return ".lzw"
	}
	return ".zst"
}

// zstd.Decoder's Close returns nothing, so it is not an io.ReadCloser.
type zstdReadCloser struct {
	*zstd.Decoder
}

func (z zstdReadCloser) Close() error {
	z.Decoder.Close()
	return nil
}

// writer returns a compressing writer over w. level <= 0 means the codec's default.
func (C Codec) writer(w io.Writer, level int) (io.WriteCloser, error) {
	switch C {
	case Gzip:
		if level <= 0 {
			level = gzip.DefaultCompression
		}
		return gzip.NewWriterLevel(w, min(level, gzip.BestCompression))
	case Flate:
		if level <= 0 {
			level = flate.DefaultCompression
		}
		return flate.NewWriter(w, min(level, flate.BestCompression))
	case LZW:
		return lzw.NewWriter(w, lzw.MSB, lzwLitwidth), nil
	}
	zlevel := zstd.SpeedDefault
	if level > 0 {
		zlevel = zstd.EncoderLevelFromZstd(level)
	}
	return zstd.NewWriter(w, zstd.WithEncoderLevel(zlevel))
}

func (C Codec) reader(r io.Reader) (io.ReadCloser, error) {
	switch C {
	case Gzip:
		return gzip.NewReader(r)
	case Flate:
		return flate.NewReader(r), nil
	case LZW:
		return lzw.NewReader(r, lzw.MSB, lzwLitwidth), nil
	}
	d, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	return zstdReadCloser{d}, nil
}

type options struct {
	logger *slog.Logger
}

// Option configures Compress and Decompress.
type Option func(*options)

// WithLogger sets the logger. By default nothing is logged.
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

// Compress writes a compressed copy of the phase-space file src to dst. src is
// validated first. The codec comes from the extension of dst; zstd is used if
// the extension is not a known one. level <= 0 means the codec's default level.
func Compress(src, dst string, level int, opts ...Option) error {
	o := newOptions(opts)
	H, err := phsp.OpenHeader(src)
	if err != nil {
		return phsp.Decorate(err, "Compress")
	}
	codec, ok := CodecFor(dst)
	if !ok {
		o.logger.Warn("unknown compressed file extension, using zstd", "file", dst)
	}
	if err := refuseSame(src, dst); err != nil {
		return phsp.Decorate(err, "Compress")
	}
	in, err := os.Open(src)
	if err != nil {
		return phsp.IOError(src, "open", err, "Compress")
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return phsp.IOError(dst, "create", err, "Compress")
	}
	defer out.Close()
	bw := bufio.NewWriter(out)
	cw, err := codec.writer(bw, level)
	if err != nil {
		return phsp.IOError(dst, "starting "+codec.String()+" stream", err, "Compress")
	}
	n, err := io.Copy(cw, in)
	if err != nil {
		return phsp.IOError(dst, "compressing", err, "Compress")
	}
	if err := cw.Close(); err != nil {
		return phsp.IOError(dst, "finishing "+codec.String()+" stream", err, "Compress")
	}
	if err := bw.Flush(); err != nil {
		return phsp.IOError(dst, "flush", err, "Compress")
	}
	if err := out.Close(); err != nil {
		return phsp.IOError(dst, "close", err, "Compress")
	}
	if n != H.FileLength() {
		return phsp.NewError(phsp.ErrBadLength, src, fmt.Sprintf("compressed %d bytes, header promises %d", n, H.FileLength()), nil, "Compress")
	}
	o.logger.Info("file compressed", "src", src, "dst", dst, "codec", codec, "bytes", n, "records", H.TotalParticles)
	return nil
}

// Decompress restores the phase-space file compressed in src to dst, and then
// validates the restored file. The codec comes from the extension of src.
func Decompress(src, dst string, opts ...Option) error {
	o := newOptions(opts)
	codec, ok := CodecFor(src)
	if !ok {
		o.logger.Warn("unknown compressed file extension, trying zstd", "file", src)
	}
	if err := refuseSame(src, dst); err != nil {
		return phsp.Decorate(err, "Decompress")
	}
	in, err := os.Open(src)
	if err != nil {
		return phsp.IOError(src, "open", err, "Decompress")
	}
	defer in.Close()
	cr, err := codec.reader(bufio.NewReader(in))
	if err != nil {
		return phsp.IOError(src, "starting "+codec.String()+" stream", err, "Decompress")
	}
	defer cr.Close()
	out, err := os.Create(dst)
	if err != nil {
		return phsp.IOError(dst, "create", err, "Decompress")
	}
	defer out.Close()
	n, err := io.Copy(out, cr)
	if err != nil {
		return phsp.IOError(src, "decompressing", err, "Decompress")
	}
	if err := out.Close(); err != nil {
		return phsp.IOError(dst, "close", err, "Decompress")
	}
	H, err := phsp.OpenHeader(dst)
	if err != nil {
		return phsp.Decorate(err, "Decompress")
	}
	o.logger.Info("file decompressed", "src", src, "dst", dst, "codec", codec, "bytes", n, "records", H.TotalParticles)
	return nil
}

func refuseSame(src, dst string) error {
	dinfo, err := os.Stat(dst)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return phsp.IOError(dst, "stat", err, "refuseSame")
	}
	sinfo, err := os.Stat(src)
	if err != nil {
		return phsp.IOError(src, "stat", err, "refuseSame")
	}
	if os.SameFile(sinfo, dinfo) {
		return phsp.NewError(phsp.ErrOutputIsInput, dst, "", nil, "refuseSame")
	}
	return nil
}
