// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package zlib

// bitWriter packs bit strings least-significant bit first into the
// pending output buffer. At most 16 bits are kept in the accumulator
// between calls.
type bitWriter struct {
	out   []byte
	bits  uint32
	nbits uint
}

// reset clears the accumulator and the output buffer.
func (w *bitWriter) reset() {
	w.out = w.out[:0]
	w.bits = 0
	w.nbits = 0
}

// writeBits writes the n lowest bits of v. The value n must not exceed
// 16.
func (w *bitWriter) writeBits(v uint32, n uint) {
	w.bits |= v << w.nbits
	w.nbits += n
	if w.nbits >= 16 {
		w.out = append(w.out, byte(w.bits), byte(w.bits>>8))
		w.bits >>= 16
		w.nbits -= 16
	}
}

// writeCode writes the Huffman code for symbol c of the given tree.
func (w *bitWriter) writeCode(c int, tree []treeNode) {
	w.writeBits(uint32(tree[c].code), uint(tree[c].len))
}

// flush writes all complete bytes of the accumulator. At most 7 bits
// remain.
func (w *bitWriter) flush() {
	if w.nbits >= 8 {
		w.out = append(w.out, byte(w.bits))
		w.bits >>= 8
		w.nbits -= 8
	}
}

// align writes the accumulator padded with zero bits to the next byte
// boundary.
func (w *bitWriter) align() {
	if w.nbits > 8 {
		w.out = append(w.out, byte(w.bits), byte(w.bits>>8))
	} else if w.nbits > 0 {
		w.out = append(w.out, byte(w.bits))
	}
	w.bits = 0
	w.nbits = 0
}

// writeBytes appends p to the output. The writer must be byte aligned.
func (w *bitWriter) writeBytes(p []byte) {
	if w.nbits != 0 {
		panic("zlib: writeBytes on unaligned bit writer")
	}
	w.out = append(w.out, p...)
}

// writeUint16BE appends x in big-endian byte order. It is used for the
// zlib header and trailer.
func (w *bitWriter) writeUint16BE(x uint16) {
	w.writeBytes([]byte{byte(x >> 8), byte(x)})
}

// writeUint16LE appends x in little-endian byte order as required for
// the length fields of stored blocks.
func (w *bitWriter) writeUint16LE(x uint16) {
	w.writeBytes([]byte{byte(x), byte(x >> 8)})
}
