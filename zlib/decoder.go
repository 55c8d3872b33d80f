// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package zlib

import "errors"

// errInvalidCode is returned by decodeSym for bits that are not a code of
// the Huffman table.
var errInvalidCode = errors.New("zlib: invalid code")

const (
	// codes up to fastBits long are decoded with a single table lookup
	fastBits = 9
	fastMask = 1<<fastBits - 1
)

// huffman is a canonical Huffman decoding table. Short codes are found
// in the fast table, whose entries contain the symbol shifted left by 4
// and the code length; a zero entry marks a code longer than fastBits.
// Longer codes are decoded bit by bit using the number of codes per
// length and the symbols sorted by code.
type huffman struct {
	count  [maxBits + 1]uint16
	symbol [288]uint16
	fast   [1 << fastBits]uint16
	maxLen int
	// number of symbols with codes
	n int
}

// init builds the decoding tables for the code lengths given. It returns
// the number of unused codes at the maximum length; a negative value
// indicates an over-subscribed set of lengths. A positive value
// indicates an incomplete code.
func (h *huffman) init(lens []uint8) (left int) {
	*h = huffman{}
	for _, l := range lens {
		h.count[l]++
	}
	h.n = len(lens) - int(h.count[0])
	h.count[0] = 0
	for l := maxBits; l > 0; l-- {
		if h.count[l] != 0 {
			h.maxLen = l
			break
		}
	}

	left = 1
	for l := 1; l <= maxBits; l++ {
		left <<= 1
		left -= int(h.count[l])
		if left < 0 {
			return left
		}
	}

	// offsets of the first symbol of each length in symbol
	var offs [maxBits + 2]int
	for l := 1; l <= maxBits; l++ {
		offs[l+1] = offs[l] + int(h.count[l])
	}
	for s, l := range lens {
		if l != 0 {
			h.symbol[offs[l]] = uint16(s)
			offs[l]++
		}
	}

	// fill the fast table with the canonical codes
	code, index := 0, 0
	for l := 1; l <= fastBits && l <= h.maxLen; l++ {
		for k := 0; k < int(h.count[l]); k++ {
			e := h.symbol[index]<<4 | uint16(l)
			step := 1 << uint(l)
			for i := int(reverse(uint16(code), uint8(l))); i < len(h.fast); i += step {
				h.fast[i] = e
			}
			code++
			index++
		}
		code <<= 1
	}
	return left
}

// single reports whether the table contains exactly one code of length
// one. Such an incomplete code is accepted for the literal/length and
// distance tables.
func (h *huffman) single() bool {
	return h.n == 1 && h.maxLen == 1
}

// fixed decoding tables
var fixedLit, fixedDist huffman

func init() {
	var lens [288]uint8
	for i := range lens {
		switch {
		case i < 144:
			lens[i] = 8
		case i < 256:
			lens[i] = 9
		case i < 280:
			lens[i] = 7
		default:
			lens[i] = 8
		}
	}
	fixedLit.init(lens[:])
	for i := 0; i < dCodes; i++ {
		lens[i] = 5
	}
	fixedDist.init(lens[:dCodes])
}
