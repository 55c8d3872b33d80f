// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package zlib

import (
	"errors"
	"io"
)

// Writer compresses the data written to it into a zlib stream.
//
// Don't forget to call Close() for the writer after all data has been
// written. Otherwise the trailer will be missing.
type Writer struct {
	w   io.Writer
	d   *Deflater
	buf []byte
	cfg WriterConfig
	err error
}

// NewWriter creates a writer using the default compression level.
func NewWriter(w io.Writer) (*Writer, error) {
	return NewWriterConfig(w, WriterConfig{})
}

// NewWriterLevel creates a writer with the given compression level.
func NewWriterLevel(w io.Writer, level int) (*Writer, error) {
	return NewWriterConfig(w, WriterConfig{
		Level:     level,
		ZeroLevel: level == NoCompression,
	})
}

// NewWriterConfig creates a writer using the parameters provided by cfg.
func NewWriterConfig(w io.Writer, cfg WriterConfig) (*Writer, error) {
	if w == nil {
		return nil, errors.New("zlib: writer must not be nil")
	}
	cfg.SetDefaults()
	if err := cfg.Verify(); err != nil {
		return nil, err
	}
	d, err := NewDeflater(cfg.Level, cfg.WindowBits, cfg.Strategy)
	if err != nil {
		return nil, err
	}
	z := &Writer{
		w:   w,
		d:   d,
		buf: make([]byte, cfg.BufferSize),
		cfg: cfg,
	}
	if err = z.setDictionary(); err != nil {
		return nil, err
	}
	return z, nil
}

func (z *Writer) setDictionary() error {
	if z.cfg.Dictionary == nil {
		return nil
	}
	return z.d.SetDictionary(z.cfg.Dictionary)
}

// deflate runs the deflater until all of p has been consumed and the
// flush has been carried out.
func (z *Writer) deflate(p []byte, flush Flush) (n int, err error) {
	if z.err != nil {
		return 0, z.err
	}
	for {
		nd, ns, err := z.d.Deflate(z.buf, p[n:], flush)
		n += ns
		if nd > 0 {
			if _, werr := z.w.Write(z.buf[:nd]); werr != nil {
				z.err = werr
				return n, werr
			}
		}
		switch err {
		case nil, io.EOF:
			return n, nil
		case ErrShortDst:
			continue
		}
		z.err = err
		return n, err
	}
}

// Write compresses p. All of p is consumed unless an error is returned.
func (z *Writer) Write(p []byte) (n int, err error) {
	return z.deflate(p, NoFlush)
}

// Flush writes all pending output and aligns the stream to a byte
// boundary, so a reader can decompress all the data written so far.
func (z *Writer) Flush() error {
	_, err := z.deflate(nil, SyncFlush)
	return err
}

// Close completes the stream and writes the trailer. The underlying
// writer is not closed.
func (z *Writer) Close() error {
	if z.err == ErrClosed {
		return nil
	}
	if _, err := z.deflate(nil, Finish); err != nil {
		return err
	}
	z.err = ErrClosed
	return nil
}

// Reset discards the state of the writer and makes it equivalent to a
// new writer writing to w.
func (z *Writer) Reset(w io.Writer) error {
	z.w = w
	z.err = nil
	z.d.Reset()
	return z.setDictionary()
}

// Checksum returns the Adler-32 checksum of the data written so far.
func (z *Writer) Checksum() uint32 {
	return z.d.Checksum()
}
