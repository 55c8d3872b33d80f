// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package zlib

// bitReader reads bits least-significant bit first from the input of
// the current Inflate call. Bits loaded into the accumulator are kept
// across calls, so a decoding step that lacks input can be repeated
// later without loss.
type bitReader struct {
	bits  uint64
	nbits uint

	src []byte
	// bytes consumed from src
	nSrc int
	// total number of bytes loaded
	offset int64
}

// reset clears the accumulator.
func (r *bitReader) reset() {
	*r = bitReader{}
}

// fill loads bytes until at least n bits are available or the input is
// exhausted.
func (r *bitReader) fill(n uint) {
	for r.nbits < n && len(r.src) > 0 {
		r.bits |= uint64(r.src[0]) << r.nbits
		r.src = r.src[1:]
		r.nSrc++
		r.offset++
		r.nbits += 8
	}
}

// need reports whether n bits are available, loading bytes if
// necessary.
func (r *bitReader) need(n uint) bool {
	r.fill(n)
	return r.nbits >= n
}

// peek returns the lowest n bits without consuming them.
func (r *bitReader) peek(n uint) uint32 {
	return uint32(r.bits & (1<<n - 1))
}

// drop consumes n bits.
func (r *bitReader) drop(n uint) {
	r.bits >>= n
	r.nbits -= n
}

// readBits consumes and returns n bits. The bits must be available.
func (r *bitReader) readBits(n uint) uint32 {
	v := r.peek(n)
	r.drop(n)
	return v
}

// align drops the bits up to the next byte boundary.
func (r *bitReader) align() {
	r.drop(r.nbits % 8)
}

// readBytes copies whole bytes into p, taking them first from the
// accumulator and then directly from the input. The reader must be
// aligned. It returns the number of bytes copied.
func (r *bitReader) readBytes(p []byte) int {
	n := 0
	for r.nbits >= 8 && n < len(p) {
		p[n] = byte(r.bits)
		r.drop(8)
		n++
	}
	k := copy(p[n:], r.src)
	r.src = r.src[k:]
	r.nSrc += k
	r.offset += int64(k)
	return n + k
}

// unread returns the whole bytes in the accumulator to the input of the
// current call as far as possible.
func (r *bitReader) unread() {
	k := int(r.nbits / 8)
	if k > r.nSrc {
		k = r.nSrc
	}
	r.nSrc -= k
	r.offset -= int64(k)
	r.nbits -= uint(k) * 8
	r.bits &= 1<<r.nbits - 1
}

// decodeSym decodes the next symbol using h without consuming the code.
// It returns the symbol and the length of its code. The error is
// ErrShortSrc if more input is required or errInvalidCode if the bits
// don't form a code.
func (r *bitReader) decodeSym(h *huffman) (sym int, n uint, err error) {
	r.fill(maxBits)
	if e := h.fast[r.bits&fastMask]; e != 0 {
		n = uint(e & 0xf)
		if n > r.nbits {
			return 0, 0, ErrShortSrc
		}
		return int(e >> 4), n, nil
	}
	code, first, index := 0, 0, 0
	for l := 1; l <= h.maxLen; l++ {
		if uint(l) > r.nbits {
			return 0, 0, ErrShortSrc
		}
		code |= int(r.bits>>uint(l-1)) & 1
		count := int(h.count[l])
		if code-first < count {
			return int(h.symbol[index+code-first]), uint(l), nil
		}
		index += count
		first = (first + count) << 1
		code <<= 1
	}
	return 0, 0, errInvalidCode
}
