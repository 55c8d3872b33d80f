// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package zlib

import (
	"github.com/ulikunitz/lz"
	"github.com/ulikunitz/zlib/xlog"
)

// litBufSize is the maximum number of symbols, literals and matches,
// collected for a single block.
const litBufSize = 1 << 14

// blockWriter collects the literals and matches of a block and encodes
// the block as stored, static or dynamic block. The tally is kept in an
// lz.Block: every sequence contains the number of literals preceding the
// match, the match length and the distance.
type blockWriter struct {
	bw bitWriter

	dynLTree [heapSize]treeNode
	dynDTree [2*dCodes + 1]treeNode
	blTree   [2*blCodes + 1]treeNode

	lDesc  treeDesc
	dDesc  treeDesc
	blDesc treeDesc

	tb treeBuilder

	blk lz.Block
	// number of literals after the last sequence
	litLen uint32
	// number of symbols in the tally
	symbols int
	// number of matches in the tally
	matches int
}

// init initializes the block writer. Existing buffers are reused.
func (w *blockWriter) init() {
	w.lDesc = treeDesc{dyn: w.dynLTree[:], stat: &staticLDesc}
	w.dDesc = treeDesc{dyn: w.dynDTree[:], stat: &staticDDesc}
	w.blDesc = treeDesc{dyn: w.blTree[:], stat: &staticBLDesc}
	if w.blk.Literals == nil {
		w.blk.Literals = make([]byte, 0, litBufSize)
		w.blk.Sequences = make([]lz.Seq, 0, litBufSize/2)
	}
	w.bw.reset()
	w.initBlock()
}

// initBlock resets the tally and the frequencies for a new block.
func (w *blockWriter) initBlock() {
	for n := 0; n < lCodes; n++ {
		w.dynLTree[n].freq = 0
	}
	for n := 0; n < dCodes; n++ {
		w.dynDTree[n].freq = 0
	}
	for n := 0; n < blCodes; n++ {
		w.blTree[n].freq = 0
	}
	w.dynLTree[endBlock].freq = 1
	w.tb.optLen = 0
	w.tb.staticLen = 0
	w.blk.Literals = w.blk.Literals[:0]
	w.blk.Sequences = w.blk.Sequences[:0]
	w.litLen = 0
	w.symbols = 0
	w.matches = 0
}

// tallyLit records a literal byte. It returns true if the tally buffer
// is full.
func (w *blockWriter) tallyLit(c byte) bool {
	w.blk.Literals = append(w.blk.Literals, c)
	w.litLen++
	w.dynLTree[c].freq++
	w.symbols++
	return w.symbols == litBufSize-1
}

// tallyMatch records a match with distance dist and length mlen. It
// returns true if the tally buffer is full.
func (w *blockWriter) tallyMatch(dist, mlen int) bool {
	w.blk.Sequences = append(w.blk.Sequences, lz.Seq{
		LitLen:   w.litLen,
		MatchLen: uint32(mlen),
		Offset:   uint32(dist),
	})
	w.litLen = 0
	w.matches++
	w.symbols++
	w.dynLTree[int(lengthCodeTab[mlen-minMatch])+literals+1].freq++
	w.dynDTree[dCode(dist-1)].freq++
	return w.symbols == litBufSize-1
}

// notCompressing estimates whether a block should be flushed early. It
// is evaluated every 8192 symbols and returns true if the literals
// dominate and the estimated output is already less than half of the
// input of the block.
func (w *blockWriter) notCompressing(inLen int) bool {
	if w.symbols&0x1fff != 0 {
		return false
	}
	outLen := w.symbols * 8
	for dcode := 0; dcode < dCodes; dcode++ {
		outLen += int(w.dynDTree[dcode].freq) *
			(5 + int(extraDBits[dcode]))
	}
	outLen >>= 3
	return w.matches < w.symbols/2 && outLen < inLen/2
}

// scanTree scans a literal or distance tree to determine the
// frequencies of the codes in the bit length tree.
func (w *blockWriter) scanTree(tree []treeNode, maxCode int) {
	prevLen := -1
	nextLen := int(tree[0].len)
	count := 0
	maxCount, minCount := 7, 4
	if nextLen == 0 {
		maxCount, minCount = 138, 3
	}
	// guard
	tree[maxCode+1].len = 0xff

	for n := 0; n <= maxCode; n++ {
		curLen := nextLen
		nextLen = int(tree[n+1].len)
		count++
		if count < maxCount && curLen == nextLen {
			continue
		} else if count < minCount {
			w.blTree[curLen].freq += uint32(count)
		} else if curLen != 0 {
			if curLen != prevLen {
				w.blTree[curLen].freq++
			}
			w.blTree[rep3to6].freq++
		} else if count <= 10 {
			w.blTree[repZero3to10].freq++
		} else {
			w.blTree[repZero11to138].freq++
		}
		count = 0
		prevLen = curLen
		switch {
		case nextLen == 0:
			maxCount, minCount = 138, 3
		case curLen == nextLen:
			maxCount, minCount = 6, 3
		default:
			maxCount, minCount = 7, 4
		}
	}
}

// sendTree sends a literal or distance tree in compressed form, using
// the codes of the bit length tree.
func (w *blockWriter) sendTree(tree []treeNode, maxCode int) {
	prevLen := -1
	nextLen := int(tree[0].len)
	count := 0
	maxCount, minCount := 7, 4
	if nextLen == 0 {
		maxCount, minCount = 138, 3
	}
	bl := w.blTree[:]

	for n := 0; n <= maxCode; n++ {
		curLen := nextLen
		nextLen = int(tree[n+1].len)
		count++
		if count < maxCount && curLen == nextLen {
			continue
		} else if count < minCount {
			for ; count > 0; count-- {
				w.bw.writeCode(curLen, bl)
			}
		} else if curLen != 0 {
			if curLen != prevLen {
				w.bw.writeCode(curLen, bl)
				count--
			}
			w.bw.writeCode(rep3to6, bl)
			w.bw.writeBits(uint32(count-3), 2)
		} else if count <= 10 {
			w.bw.writeCode(repZero3to10, bl)
			w.bw.writeBits(uint32(count-3), 3)
		} else {
			w.bw.writeCode(repZero11to138, bl)
			w.bw.writeBits(uint32(count-11), 7)
		}
		count = 0
		prevLen = curLen
		switch {
		case nextLen == 0:
			maxCount, minCount = 138, 3
		case curLen == nextLen:
			maxCount, minCount = 6, 3
		default:
			maxCount, minCount = 7, 4
		}
	}
}

// buildBLTree constructs the Huffman tree for the bit lengths and
// returns the index in blOrder of the last bit length code to send.
func (w *blockWriter) buildBLTree() int {
	w.scanTree(w.dynLTree[:], w.lDesc.maxCode)
	w.scanTree(w.dynDTree[:], w.dDesc.maxCode)
	w.tb.buildTree(&w.blDesc)

	// The format requires at least 4 bit length codes.
	maxBLIndex := blCodes - 1
	for ; maxBLIndex >= 3; maxBLIndex-- {
		if w.blTree[blOrder[maxBLIndex]].len != 0 {
			break
		}
	}
	// bit lengths of the bl tree and the counts
	w.tb.optLen += 3*(maxBLIndex+1) + 5 + 5 + 4
	return maxBLIndex
}

// sendAllTrees sends the header for a block using dynamic Huffman trees:
// the counts, the bit lengths of the bit length tree and the compressed
// literal and distance trees.
func (w *blockWriter) sendAllTrees(lcodes, dcodes, blcodes int) {
	w.bw.writeBits(uint32(lcodes-257), 5)
	w.bw.writeBits(uint32(dcodes-1), 5)
	w.bw.writeBits(uint32(blcodes-4), 4)
	for rank := 0; rank < blcodes; rank++ {
		w.bw.writeBits(uint32(w.blTree[blOrder[rank]].len), 3)
	}
	w.sendTree(w.dynLTree[:], lcodes-1)
	w.sendTree(w.dynDTree[:], dcodes-1)
}

// sendLit writes a single literal.
func (w *blockWriter) sendLit(c byte, ltree []treeNode) {
	w.bw.writeCode(int(c), ltree)
}

// sendMatch writes the length and distance codes and their extra bits.
func (w *blockWriter) sendMatch(dist, mlen int, ltree, dtree []treeNode) {
	lc := mlen - minMatch
	code := int(lengthCodeTab[lc])
	w.bw.writeCode(code+literals+1, ltree)
	if extra := uint(extraLBits[code]); extra != 0 {
		w.bw.writeBits(uint32(lc-baseLength[code]), extra)
	}
	dist--
	code = dCode(dist)
	w.bw.writeCode(code, dtree)
	if extra := uint(extraDBits[code]); extra != 0 {
		w.bw.writeBits(uint32(dist-baseDist[code]), extra)
	}
}

// compressBlock sends the tallied symbols using the given trees.
func (w *blockWriter) compressBlock(ltree, dtree []treeNode) {
	lits := w.blk.Literals
	for _, s := range w.blk.Sequences {
		for _, c := range lits[:s.LitLen] {
			w.sendLit(c, ltree)
		}
		lits = lits[s.LitLen:]
		w.sendMatch(int(s.Offset), int(s.MatchLen), ltree, dtree)
	}
	for _, c := range lits {
		w.sendLit(c, ltree)
	}
	w.bw.writeCode(endBlock, ltree)
}

// storedBlock writes the data as stored blocks. Data longer than the
// maximum length of a stored block is split. Only the last block
// carries the final flag if last is set.
func (w *blockWriter) storedBlock(data []byte, last bool) {
	for {
		n := len(data)
		if n > maxStoredLen {
			n = maxStoredLen
		}
		final := last && n == len(data)
		w.bw.writeBits(storedBlock<<1|b2u(final), 3)
		w.bw.align()
		w.bw.writeUint16LE(uint16(n))
		w.bw.writeUint16LE(^uint16(n))
		w.bw.writeBytes(data[:n])
		data = data[n:]
		if len(data) == 0 {
			return
		}
	}
}

// b2u converts a boolean into 0 or 1.
func b2u(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// flushBlock determines the best encoding for the current block and
// writes it. The argument stored contains the input data of the block;
// it is nil if the data is no longer available in the window. The
// argument storedLen is the length of the block input in any case. If
// last is set the block gets the final flag and the bit writer is
// aligned.
func (w *blockWriter) flushBlock(stored []byte, storedLen int, last bool,
	level int) {
	var optLenb, staticLenb int
	maxBLIndex := 0
	if level > 0 {
		w.tb.buildTree(&w.lDesc)
		w.tb.buildTree(&w.dDesc)
		maxBLIndex = w.buildBLTree()

		// block lengths in bytes including the 3 header bits
		optLenb = (w.tb.optLen + 3 + 7) >> 3
		staticLenb = (w.tb.staticLen + 3 + 7) >> 3
		if staticLenb <= optLenb {
			optLenb = staticLenb
		}
	} else {
		optLenb = storedLen + 5
		staticLenb = optLenb
	}

	switch {
	case stored != nil && storedLen+4 <= optLenb:
		// 4: two words for the lengths
		xlog.Printf(debug, "stored block %d bytes last %t",
			storedLen, last)
		w.storedBlock(stored, last)
	case staticLenb == optLenb:
		xlog.Printf(debug, "static block %d symbols %d bytes",
			w.symbols, staticLenb)
		w.bw.writeBits(staticTrees<<1|b2u(last), 3)
		w.compressBlock(staticLTree[:], staticDTree[:])
	default:
		xlog.Printf(debug, "dynamic block %d symbols %d bytes",
			w.symbols, optLenb)
		w.bw.writeBits(dynamicTrees<<1|b2u(last), 3)
		w.sendAllTrees(w.lDesc.maxCode+1, w.dDesc.maxCode+1,
			maxBLIndex+1)
		w.compressBlock(w.dynLTree[:], w.dynDTree[:])
	}
	w.initBlock()
	if last {
		w.bw.align()
	}
}

// alignBlock writes an empty static block and flushes the complete
// bytes. It is used for the partial flush.
func (w *blockWriter) alignBlock() {
	w.bw.writeBits(staticTrees<<1, 3)
	w.bw.writeCode(endBlock, staticLTree[:])
	w.bw.flush()
}

// syncBlock writes an empty stored block, which aligns the output to a
// byte boundary.
func (w *blockWriter) syncBlock() {
	w.storedBlock(nil, false)
}
