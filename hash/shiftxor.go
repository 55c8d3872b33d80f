// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package hash

import "fmt"

// ShiftXor is the rolling hash of zlib. The hash of a sequence is
// computed by shifting the current value left by Shift bits, xoring the
// new byte in and masking the result to Bits bits.
type ShiftXor struct {
	Bits  int
	Shift uint
	Mask  uint32
	N     int
}

// NewShiftXor creates a shift-xor hash for n-byte sequences with hash
// values of the given number of bits. The shift is chosen so that after n
// additions the oldest byte has been shifted out of the mask.
func NewShiftXor(n, bits int) *ShiftXor {
	if n <= 0 {
		panic("number of bytes n must be positive")
	}
	if !(8 <= bits && bits <= 24) {
		panic(fmt.Errorf("hash bits %d out of range [8..24]", bits))
	}
	return &ShiftXor{
		Bits:  bits,
		Shift: uint((bits + n - 1) / n),
		Mask:  1<<uint(bits) - 1,
		N:     n,
	}
}

// AddYoung adds a "young" byte to the hash provided.
func (r *ShiftXor) AddYoung(h uint32, b byte) uint32 {
	return ((h << r.Shift) ^ uint32(b)) & r.Mask
}

// RemoveOldest returns h unchanged, because the oldest byte has already
// been shifted out by the masking in AddYoung.
func (r *ShiftXor) RemoveOldest(h uint32, b byte) uint32 {
	return h
}

// Len returns the length of the byte sequence this hash supports.
func (r *ShiftXor) Len() int {
	return r.N
}

// Size returns the number of different hash values.
func (r *ShiftXor) Size() int {
	return 1 << uint(r.Bits)
}
