// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package zlib

import (
	"errors"
	"io"
)

// Reader decompresses a zlib stream read from an underlying reader.
// The reader may read beyond the end of the zlib stream.
type Reader struct {
	r   io.Reader
	f   *Inflater
	buf []byte
	// unconsumed input in buf
	in  []byte
	eof bool
	cfg ReaderConfig
	err error
}

// NewReader creates a reader using the default configuration.
func NewReader(r io.Reader) (*Reader, error) {
	return NewReaderConfig(r, ReaderConfig{})
}

// NewReaderConfig creates a reader using the parameters of cfg.
func NewReaderConfig(r io.Reader, cfg ReaderConfig) (*Reader, error) {
	if r == nil {
		return nil, errors.New("zlib: reader must not be nil")
	}
	cfg.SetDefaults()
	if err := cfg.Verify(); err != nil {
		return nil, err
	}
	f, err := NewInflater(cfg.WindowBits)
	if err != nil {
		return nil, err
	}
	z := &Reader{
		r:   r,
		f:   f,
		buf: make([]byte, cfg.BufferSize),
		cfg: cfg,
	}
	return z, nil
}

// fillBuffer reads new input.
func (z *Reader) fillBuffer() error {
	if z.eof {
		return io.ErrUnexpectedEOF
	}
	n, err := z.r.Read(z.buf)
	z.in = z.buf[:n]
	switch err {
	case nil:
	case io.EOF:
		z.eof = true
	default:
		return err
	}
	return nil
}

// Read decompresses data into p. Truncated streams result in
// io.ErrUnexpectedEOF.
func (z *Reader) Read(p []byte) (n int, err error) {
	if z.err != nil {
		return 0, z.err
	}
	for {
		nd, ns, err := z.f.Inflate(p[n:], z.in)
		z.in = z.in[ns:]
		n += nd
		switch err {
		case ErrShortDst:
			return n, nil
		case ErrShortSrc:
			if n > 0 {
				return n, nil
			}
			if err = z.fillBuffer(); err != nil {
				z.err = err
				return n, err
			}
			continue
		case io.EOF:
			z.err = io.EOF
			if n > 0 {
				return n, nil
			}
			return 0, io.EOF
		case ErrNeedDictionary:
			if z.cfg.Dictionary == nil {
				z.err = err
				return n, err
			}
			if err = z.f.SetDictionary(z.cfg.Dictionary); err != nil {
				z.err = err
				return n, err
			}
			continue
		}
		z.err = err
		return n, err
	}
}

// Close closes the reader; it doesn't close the underlying reader. The
// error of a failed decompression is returned.
func (z *Reader) Close() error {
	if z.err == io.EOF || z.err == nil || z.err == ErrClosed {
		z.err = ErrClosed
		return nil
	}
	return z.err
}

// Reset discards the state of the reader and makes it equivalent to a
// new reader reading from r.
func (z *Reader) Reset(r io.Reader) {
	z.r = r
	z.f.Reset()
	z.in = nil
	z.eof = false
	z.err = nil
}

// Checksum returns the Adler-32 checksum of the data decompressed so far.
func (z *Reader) Checksum() uint32 {
	return z.f.Checksum()
}
