// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package zlib

import (
	"errors"
	"io"

	"github.com/ulikunitz/zlib/adler32"
)

// errWindowFull is returned by a state if the output window has no space
// left.
var errWindowFull = errors.New("zlib: output window full")

// istate is a state of the inflater. The method step carries out as
// much work as possible and returns the next state. The error is
// ErrShortSrc if more input is required and errWindowFull if the output
// window must be flushed. Other errors are final.
type istate interface {
	step(f *Inflater) (istate, error)
}

// Inflater decompresses zlib streams. Input and output buffers are
// provided by the caller; the Inflater keeps all partial state between
// the calls of Inflate.
type Inflater struct {
	maxWindowBits int

	br  bitReader
	out outWindow
	st  istate

	// reusable decoding tables for dynamic blocks
	lit, dist, codeLens huffman

	adler    uint32
	totalOut int64
}

// NewInflater creates a new inflater that accepts streams with a window
// of up to 1 << wbits bytes.
func NewInflater(wbits int) (*Inflater, error) {
	if err := verifyWindowBits(wbits); err != nil {
		return nil, err
	}
	f := &Inflater{maxWindowBits: wbits}
	f.Reset()
	return f, nil
}

// Reset prepares the inflater for a new stream.
func (f *Inflater) Reset() {
	f.br.reset()
	f.out.init(0)
	f.st = &stHeader{}
	f.adler = adler32.Init
	f.totalOut = 0
}

// Checksum returns the Adler-32 checksum of the output produced so far.
func (f *Inflater) Checksum() uint32 { return f.adler }

// TotalIn returns the number of compressed bytes consumed.
func (f *Inflater) TotalIn() int64 { return f.br.offset }

// TotalOut returns the number of bytes decompressed.
func (f *Inflater) TotalOut() int64 { return f.totalOut }

// SetDictionary provides the preset dictionary after Inflate returned
// ErrNeedDictionary. ErrDictionary is returned if the checksum of the
// dictionary doesn't match the dictionary id of the stream or the
// inflater doesn't need a dictionary.
func (f *Inflater) SetDictionary(dict []byte) error {
	s, ok := f.st.(*stNeedDict)
	if !ok {
		return ErrDictionary
	}
	if adler32.Checksum(dict) != s.id {
		return ErrDictionary
	}
	f.out.setHistory(dict)
	f.st = &stBlockHeader{}
	return nil
}

// flushOut copies pending output into p and updates the checksum.
func (f *Inflater) flushOut(p []byte) int {
	n := f.out.read(p)
	f.adler = adler32.Update(f.adler, p[:n])
	f.totalOut += int64(n)
	return n
}

// Inflate decompresses src into dst and returns the number of bytes
// written and consumed.
//
// ErrShortSrc reports that all of src has been consumed and more input
// is required. ErrShortDst reports that dst is full. After the trailer
// has been verified io.EOF is returned; bytes following the stream are
// not consumed as far as they have been provided in the same call.
// Invalid data results in a *FormatError, which will be returned by all
// further calls. ErrNeedDictionary asks for a call of SetDictionary.
func (f *Inflater) Inflate(dst, src []byte) (nDst, nSrc int, err error) {
	f.br.src = src
	f.br.nSrc = 0
	defer func() {
		nSrc = f.br.nSrc
		f.br.src = nil
	}()
	for {
		nDst += f.flushOut(dst[nDst:])
		f.st, err = f.st.step(f)
		switch err {
		case nil:
			continue
		case errWindowFull:
			if nDst == len(dst) {
				return nDst, nSrc, ErrShortDst
			}
			continue
		case ErrShortSrc:
			nDst += f.flushOut(dst[nDst:])
			if f.out.pending > 0 {
				return nDst, nSrc, ErrShortDst
			}
			return nDst, nSrc, ErrShortSrc
		case io.EOF:
			f.br.unread()
			return nDst, nSrc, io.EOF
		}
		return nDst, nSrc, err
	}
}

// fail creates a FormatError and the terminal error state.
func (f *Inflater) fail(kind ErrorKind, tree string) (istate, error) {
	err := &FormatError{Kind: kind, Tree: tree, Offset: f.br.offset}
	return &stBad{err: err}, err
}

// stHeader reads the zlib header.
type stHeader struct{}

func (s *stHeader) step(f *Inflater) (istate, error) {
	if !f.br.need(16) {
		return s, ErrShortSrc
	}
	b0 := byte(f.br.readBits(8))
	b1 := byte(f.br.readBits(8))
	h, err := parseHeader(b0, b1, f.maxWindowBits)
	if err != nil {
		fe := err.(*FormatError)
		return f.fail(fe.Kind, "")
	}
	f.out.init(1 << uint(h.windowBits))
	if h.dict {
		return &stDictID{}, nil
	}
	return &stBlockHeader{}, nil
}

// stDictID reads the dictionary id.
type stDictID struct{}

func (s *stDictID) step(f *Inflater) (istate, error) {
	if !f.br.need(32) {
		return s, ErrShortSrc
	}
	var id uint32
	for i := 0; i < 4; i++ {
		id = id<<8 | f.br.readBits(8)
	}
	return &stNeedDict{id: id}, nil
}

// stNeedDict waits for the dictionary.
type stNeedDict struct {
	id uint32
}

func (s *stNeedDict) step(f *Inflater) (istate, error) {
	return s, ErrNeedDictionary
}

// stTrailer verifies the checksum after all output has been copied out.
type stTrailer struct{}

func (s *stTrailer) step(f *Inflater) (istate, error) {
	if f.out.pending > 0 {
		return s, errWindowFull
	}
	f.br.align()
	if !f.br.need(32) {
		return s, ErrShortSrc
	}
	var sum uint32
	for i := 0; i < 4; i++ {
		sum = sum<<8 | f.br.readBits(8)
	}
	if sum != f.adler {
		return f.fail(BadChecksum, "")
	}
	return &stDone{}, io.EOF
}

// stDone is the state after a complete stream.
type stDone struct{}

func (s *stDone) step(f *Inflater) (istate, error) {
	return s, io.EOF
}

// stBad is the terminal error state.
type stBad struct {
	err error
}

func (s *stBad) step(f *Inflater) (istate, error) {
	return s, s.err
}
