// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package zlib

// zlib header constants
const (
	deflateMethod = 8
	// preset dictionary flag in the FLG byte
	flagDict = 0x20
	// size of the header without dictionary id
	headerLen = 2
	// size of the dictionary id and the trailer
	dictIDLen  = 4
	trailerLen = 4
)

// header describes the zlib stream header.
type header struct {
	// base 2 logarithm of the window size
	windowBits int
	// compression level hint in the range 0..3
	levelFlags int
	// dictionary flag
	dict bool
}

// levelFlags computes the FLEVEL field of the header.
func levelFlags(level int, strategy Strategy) int {
	switch {
	case strategy == HuffmanOnly || level < 2:
		return 0
	case level < 6:
		return 1
	case level == 6:
		return 2
	}
	return 3
}

// bytes returns the two bytes of the header.
func (h header) bytes() [2]byte {
	cmf := byte(h.windowBits-8)<<4 | deflateMethod
	flg := byte(h.levelFlags << 6)
	if h.dict {
		flg |= flagDict
	}
	flg += byte(31 - (uint(cmf)<<8|uint(flg))%31)
	return [2]byte{cmf, flg}
}

// parseHeader parses the two header bytes. It returns a FormatError if
// the header is invalid or the window is larger than 1 << maxWindowBits.
func parseHeader(b0, b1 byte, maxWindowBits int) (h header, err error) {
	if (uint(b0)<<8|uint(b1))%31 != 0 {
		return h, &FormatError{Kind: BadHeaderCheck}
	}
	if b0&0x0f != deflateMethod {
		return h, &FormatError{Kind: BadMethod}
	}
	h.windowBits = int(b0>>4) + 8
	if h.windowBits > maxWindowBits {
		return h, &FormatError{Kind: BadWindowSize}
	}
	h.levelFlags = int(b1 >> 6)
	h.dict = b1&flagDict != 0
	return h, nil
}

// validHeader checks the two bytes for the standard header with the
// default window size and without dictionary. The accepted second bytes
// are 0x01, 0x5e, 0x9c and 0xda.
func validHeader(b0, b1 byte) bool {
	if b0 != 0x78 || b1&flagDict != 0 {
		return false
	}
	return (uint(b0)<<8|uint(b1))%31 == 0
}
