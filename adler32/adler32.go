// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

// Package adler32 implements the Adler-32 checksum used by the zlib
// format.
//
// The checksum consists of two 16-bit sums modulo 65521. The function
// Update can be used to fold the checksum over consecutive byte slices;
// the result is the same as computing it over the concatenation.
package adler32

import (
	"errors"
	"hash"
)

const (
	// base is the largest prime smaller than 65536.
	base = 65521
	// nmax is the largest n such that
	// 255 * n * (n+1) / 2 + (n+1) * (base-1) <= 2^32-1.
	nmax = 5552
)

// Init is the checksum value of an empty byte sequence.
const Init uint32 = 1

// Size is the size of an Adler-32 checksum in bytes.
const Size = 4

// Update adds the bytes in p to the running checksum adler and returns
// the new value. An empty p returns adler unchanged.
func Update(adler uint32, p []byte) uint32 {
	s1, s2 := adler&0xffff, adler>>16
	for len(p) > 0 {
		n := len(p)
		if n > nmax {
			n = nmax
		}
		q := p[:n]
		p = p[n:]
		for len(q) >= 8 {
			s1 += uint32(q[0])
			s2 += s1
			s1 += uint32(q[1])
			s2 += s1
			s1 += uint32(q[2])
			s2 += s1
			s1 += uint32(q[3])
			s2 += s1
			s1 += uint32(q[4])
			s2 += s1
			s1 += uint32(q[5])
			s2 += s1
			s1 += uint32(q[6])
			s2 += s1
			s1 += uint32(q[7])
			s2 += s1
			q = q[8:]
		}
		for _, c := range q {
			s1 += uint32(c)
			s2 += s1
		}
		s1 %= base
		s2 %= base
	}
	return s2<<16 | s1
}

// Checksum returns the Adler-32 checksum of p.
func Checksum(p []byte) uint32 { return Update(Init, p) }

// digest implements hash.Hash32.
type digest uint32

// New returns a hash.Hash32 computing the Adler-32 checksum. Its Sum
// method appends the checksum in big-endian byte order, which is the
// order used by the zlib trailer.
func New() hash.Hash32 {
	d := digest(Init)
	return &d
}

func (d *digest) Reset() { *d = digest(Init) }

func (d *digest) Size() int { return Size }

func (d *digest) BlockSize() int { return 4 }

func (d *digest) Write(p []byte) (n int, err error) {
	*d = digest(Update(uint32(*d), p))
	return len(p), nil
}

func (d *digest) Sum32() uint32 { return uint32(*d) }

func (d *digest) Sum(b []byte) []byte {
	s := uint32(*d)
	return append(b, byte(s>>24), byte(s>>16), byte(s>>8), byte(s))
}

// errShort indicates that a checksum cannot be read from the slice.
var errShort = errors.New("adler32: slice shorter than 4 bytes")

// Get reads a big-endian checksum from the first four bytes of p.
func Get(p []byte) (uint32, error) {
	if len(p) < Size {
		return 0, errShort
	}
	return uint32(p[0])<<24 | uint32(p[1])<<16 | uint32(p[2])<<8 |
		uint32(p[3]), nil
}

// Put writes the checksum x into p using big-endian encoding. The slice
// p must have space for four bytes.
func Put(p []byte, x uint32) {
	_ = p[3]
	p[0] = byte(x >> 24)
	p[1] = byte(x >> 16)
	p[2] = byte(x >> 8)
	p[3] = byte(x)
}
